// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"errors"
	"image"

	"github.com/user/framegrid/pkg/pipeline"
)

var (
	// ErrDecodeFailed is returned when a video or image cannot be decoded.
	ErrDecodeFailed = errors.New("decode failed")

	// ErrNoVideoStream is returned when a media file has no video track.
	ErrNoVideoStream = errors.New("no video stream")
)

// VideoOpener opens video files for frame capture.
type VideoOpener interface {
	// Open prepares the file at path for metadata loading and seeking.
	Open(ctx context.Context, path string) (Video, error)
}

// Video is an opened video source. Each call blocks until its single
// result is available and returns exactly once.
type Video interface {
	// Metadata loads the header and returns dimensions and duration.
	Metadata(ctx context.Context) (pipeline.VideoMetadata, error)

	// LoadData verifies that frame data can be decoded.
	LoadData(ctx context.Context) error

	// SeekFrame seeks to the timestamp in seconds and rasterizes the visible
	// frame at the video's native size. It returns the frame and the
	// position actually seeked to.
	SeekFrame(ctx context.Context, seconds float64) (image.Image, float64, error)

	// Close releases the source.
	Close() error
}

// MetadataProber reads video metadata without decoding frames.
type MetadataProber interface {
	// Probe returns dimensions and duration of the video at path.
	Probe(ctx context.Context, path string) (pipeline.VideoMetadata, error)
}
