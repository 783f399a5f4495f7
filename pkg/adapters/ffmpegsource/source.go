// Package ffmpegsource opens videos for frame capture using the ffmpeg and
// ffprobe executables.
//
// Each seek runs one ffmpeg process that decodes a single frame at the
// requested time and writes it as PNG to stdout.
package ffmpegsource

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"
	"sync"

	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/ports"
)

// seekBackoff lists how far before the requested time a seek is retried
// when no frame is decoded, as happens when seeking to the very end.
var seekBackoff = []float64{0.25, 0.5, 1.0}

// Options configures the video source.
type Options struct {
	FFmpegPath  string
	FFprobePath string

	// Probers are tried, in order, before ffprobe.
	Probers []ports.MetadataProber

	// Runner overrides command execution, mainly for tests.
	Runner Runner
}

// Opener implements ports.VideoOpener.
type Opener struct {
	opts   Options
	logger ports.Logger

	once        sync.Once
	ffmpegPath  string
	ffprobePath string
	findErr     error
}

// New creates a new Opener.
func New(opts Options, logger ports.Logger) *Opener {
	if opts.Runner == nil {
		opts.Runner = ExecRunner
	}
	return &Opener{
		opts:   opts,
		logger: logger.WithComponent("ffmpeg"),
	}
}

// Ensure Opener implements ports.VideoOpener
var _ ports.VideoOpener = (*Opener)(nil)

// Available reports whether ffmpeg and ffprobe can be found.
func (o *Opener) Available() bool {
	return o.resolve() == nil
}

func (o *Opener) resolve() error {
	o.once.Do(func() {
		o.ffmpegPath, o.findErr = findExecutable("ffmpeg", o.opts.FFmpegPath)
		if o.findErr != nil {
			return
		}
		custom := o.opts.FFprobePath
		if custom == "" {
			custom = siblingProbe(o.opts.FFmpegPath)
		}
		o.ffprobePath, o.findErr = findExecutable("ffprobe", custom)
	})
	return o.findErr
}

// Open prepares the video at path.
func (o *Opener) Open(ctx context.Context, path string) (ports.Video, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrDecodeFailed, err)
	}
	if err := o.resolve(); err != nil {
		return nil, err
	}
	return &video{
		path:        path,
		ffmpegPath:  o.ffmpegPath,
		ffprobePath: o.ffprobePath,
		probers:     o.opts.Probers,
		run:         o.opts.Runner,
		logger:      o.logger,
	}, nil
}

type video struct {
	path        string
	ffmpegPath  string
	ffprobePath string
	probers     []ports.MetadataProber
	run         Runner
	logger      ports.Logger

	// One decoder per source
	mu    sync.Mutex
	meta  pipeline.VideoMetadata
	first image.Image
}

// Metadata returns the display size and duration of the video.
func (v *video) Metadata(ctx context.Context) (pipeline.VideoMetadata, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, p := range v.probers {
		meta, err := p.Probe(ctx, v.path)
		if err == nil && meta.Width > 0 && meta.Height > 0 && meta.Duration > 0 {
			v.meta = meta
			return meta, nil
		}
		if err != nil {
			v.logger.Debug("Fast probe skipped: %s", err)
		}
	}

	out, err := v.run(ctx, v.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		v.path,
	)
	if err != nil {
		return pipeline.VideoMetadata{}, fmt.Errorf("%w: ffprobe: %v", ports.ErrDecodeFailed, err)
	}

	meta, err := ParseProbeJSON(out)
	if err != nil {
		return pipeline.VideoMetadata{}, fmt.Errorf("%w: %v", ports.ErrDecodeFailed, err)
	}
	v.meta = meta
	return meta, nil
}

// LoadData decodes the first frame to confirm the stream is decodable.
func (v *video) LoadData(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	img, err := v.decodeAt(ctx, 0)
	if err != nil {
		return err
	}
	if img == nil {
		return fmt.Errorf("%w: no frame at start of stream", ports.ErrDecodeFailed)
	}
	v.first = img
	return nil
}

// SeekFrame decodes the frame shown at seconds.
func (v *video) SeekFrame(ctx context.Context, seconds float64) (image.Image, float64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if seconds <= 0 && v.first != nil {
		return v.first, 0, nil
	}

	img, err := v.decodeAt(ctx, seconds)
	if err != nil {
		return nil, 0, err
	}
	if img != nil {
		return img, seconds, nil
	}

	for _, back := range seekBackoff {
		at := seconds - back
		if at < 0 {
			at = 0
		}
		v.logger.Debug("Frame at %.3fs is empty, retrying at %.3fs", seconds, at)
		img, err := v.decodeAt(ctx, at)
		if err != nil {
			return nil, 0, err
		}
		if img != nil {
			return img, at, nil
		}
		if at == 0 {
			break
		}
	}

	return nil, 0, fmt.Errorf("%w: no frame near %.3fs", ports.ErrDecodeFailed, seconds)
}

// decodeAt returns nil without error when ffmpeg produced no frame.
func (v *video) decodeAt(ctx context.Context, seconds float64) (image.Image, error) {
	out, err := v.run(ctx, v.ffmpegPath,
		"-v", "error",
		"-ss", strconv.FormatFloat(seconds, 'f', 3, 64),
		"-i", v.path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ports.ErrDecodeFailed, err)
	}
	if len(out) == 0 {
		return nil, nil
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("%w: decode frame: %v", ports.ErrDecodeFailed, err)
	}
	return img, nil
}

// Close releases the cached frame.
func (v *video) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.first = nil
	return nil
}
