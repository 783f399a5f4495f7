// Package gifencoder provides an animated GIF encoder.
//
// Frames are quantized to per-frame palettes on a worker pool and written
// as one looping GIF.
package gifencoder

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"sort"
	"sync"

	"golang.org/x/image/draw"

	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/ports"
)

// Encoder implements ports.AnimationEncoder.
type Encoder struct {
	logger ports.Logger
	// Dither enables Floyd-Steinberg error diffusion when mapping to the palette.
	Dither bool
}

// New creates a new Encoder with dithering enabled.
func New(logger ports.Logger) *Encoder {
	return &Encoder{
		logger: logger.WithComponent("gif"),
		Dither: true,
	}
}

// Ensure Encoder implements ports.AnimationEncoder
var _ ports.AnimationEncoder = (*Encoder)(nil)

// Available always reports true; the encoder has no external requirements.
func (e *Encoder) Available() bool {
	return true
}

// indexedFrame holds a quantized frame with its original index for sorting.
type indexedFrame struct {
	index int
	frame *image.Paletted
}

// Render encodes frames into a GIF that loops forever.
//
// opts.Quality is the pixel sampling stride used to build each palette:
// 1 samples every pixel, larger values are faster and coarser.
func (e *Encoder) Render(ctx context.Context, frames []image.Image, opts pipeline.AnimationOptions, onProgress func(float64)) (pipeline.EncodedAnimation, error) {
	if len(frames) == 0 {
		return pipeline.EncodedAnimation{}, fmt.Errorf("%w: no frames", ports.ErrEncodeFailed)
	}
	if onProgress == nil {
		onProgress = func(float64) {}
	}

	bounds := image.Rect(0, 0, frames[0].Bounds().Dx(), frames[0].Bounds().Dy())
	for i, f := range frames {
		b := f.Bounds()
		if b.Dx() != bounds.Dx() || b.Dy() != bounds.Dy() {
			return pipeline.EncodedAnimation{}, fmt.Errorf("%w: frame %d is %dx%d, expected %dx%d",
				ports.ErrEncodeFailed, i, b.Dx(), b.Dy(), bounds.Dx(), bounds.Dy())
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	quality := opts.Quality
	if quality <= 0 {
		quality = 1
	}

	e.logger.Debug("Quantizing %d frames with %d workers", len(frames), workers)

	paletted, err := e.quantizeAll(ctx, frames, bounds, workers, quality, onProgress)
	if err != nil {
		return pipeline.EncodedAnimation{}, err
	}

	delay := opts.DelayMs / 10
	anim := &gif.GIF{
		Image:     paletted,
		Delay:     make([]int, len(paletted)),
		Disposal:  make([]byte, len(paletted)),
		LoopCount: 0,
		Config: image.Config{
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
		},
	}
	for i := range anim.Delay {
		anim.Delay[i] = delay
		anim.Disposal[i] = gif.DisposalNone
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return pipeline.EncodedAnimation{}, fmt.Errorf("%w: %v", ports.ErrEncodeFailed, err)
	}
	onProgress(1)

	return pipeline.EncodedAnimation{
		Data:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Frames: len(paletted),
	}, nil
}

// quantizeAll runs the worker pool. Progress is reported from this
// goroutine only, once per finished frame.
func (e *Encoder) quantizeAll(
	ctx context.Context,
	frames []image.Image,
	bounds image.Rectangle,
	workers, quality int,
	onProgress func(float64),
) ([]*image.Paletted, error) {
	numFrames := len(frames)
	jobs := make(chan int, numFrames)
	results := make(chan indexedFrame, numFrames)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					return
				}
				results <- indexedFrame{index: idx, frame: e.quantize(frames[idx], bounds, quality)}
			}
		}()
	}

	for i := 0; i < numFrames; i++ {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]indexedFrame, 0, numFrames)
	for r := range results {
		collected = append(collected, r)
		// The final GIF write accounts for the last step
		onProgress(float64(len(collected)) / float64(numFrames+1))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(collected) != numFrames {
		return nil, fmt.Errorf("%w: quantized %d of %d frames", ports.ErrEncodeFailed, len(collected), numFrames)
	}

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].index < collected[j].index
	})

	out := make([]*image.Paletted, numFrames)
	for i, r := range collected {
		out[i] = r.frame
	}
	return out, nil
}

// quantize maps one frame onto its own palette.
func (e *Encoder) quantize(src image.Image, bounds image.Rectangle, quality int) *image.Paletted {
	palette := buildPalette(src, 256, quality)
	dst := image.NewPaletted(bounds, palette)

	var drawer draw.Drawer = draw.Src
	if e.Dither {
		drawer = draw.FloydSteinberg
	}
	drawer.Draw(dst, bounds, src, src.Bounds().Min)
	return dst
}
