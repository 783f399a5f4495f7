// Package mocks provides hand-written test doubles for the ports interfaces.
package mocks

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"

	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/ports"
)

// ErrOverlappingSeek is returned by Video when a seek starts while another is pending.
var ErrOverlappingSeek = errors.New("mocks: seek issued while another seek is pending")

// VideoOpener is a mock implementation of ports.VideoOpener.
type VideoOpener struct {
	Video    *Video
	OpenErr  error
	OpenedAt []string
}

func (m *VideoOpener) Open(ctx context.Context, path string) (ports.Video, error) {
	m.OpenedAt = append(m.OpenedAt, path)
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	return m.Video, nil
}

var _ ports.VideoOpener = (*VideoOpener)(nil)

// Video is a mock implementation of ports.Video.
// Frames are solid images whose red channel encodes the seek index.
type Video struct {
	Meta pipeline.VideoMetadata

	MetadataErr error
	LoadDataErr error
	// SeekErrAt makes the seek with this call index fail (-1 disables).
	SeekErrAt int
	SeekErr   error

	// Recorded calls for verification
	mu       sync.Mutex
	pending  bool
	Seeks    []float64
	Closed   bool
	Overlaps int
}

// NewVideo creates a mock video with the given size and duration.
func NewVideo(width, height int, duration float64) *Video {
	return &Video{
		Meta:      pipeline.VideoMetadata{Width: width, Height: height, Duration: duration},
		SeekErrAt: -1,
	}
}

func (m *Video) Metadata(ctx context.Context) (pipeline.VideoMetadata, error) {
	if m.MetadataErr != nil {
		return pipeline.VideoMetadata{}, m.MetadataErr
	}
	return m.Meta, nil
}

func (m *Video) LoadData(ctx context.Context) error {
	return m.LoadDataErr
}

func (m *Video) SeekFrame(ctx context.Context, seconds float64) (image.Image, float64, error) {
	m.mu.Lock()
	if m.pending {
		m.Overlaps++
		m.mu.Unlock()
		return nil, 0, ErrOverlappingSeek
	}
	m.pending = true
	index := len(m.Seeks)
	m.Seeks = append(m.Seeks, seconds)
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.pending = false
		m.mu.Unlock()
	}()

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if index == m.SeekErrAt {
		return nil, 0, m.SeekErr
	}

	img := image.NewRGBA(image.Rect(0, 0, m.Meta.Width, m.Meta.Height))
	fill := color.RGBA{R: uint8(index * 20), G: 0, B: 0, A: 255}
	for y := 0; y < m.Meta.Height; y++ {
		for x := 0; x < m.Meta.Width; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	return img, seconds, nil
}

func (m *Video) Close() error {
	m.Closed = true
	return nil
}

var _ ports.Video = (*Video)(nil)

// MetadataProber is a mock implementation of ports.MetadataProber.
type MetadataProber struct {
	Meta pipeline.VideoMetadata
	Err  error

	// Recorded calls for verification
	Paths []string
}

func (m *MetadataProber) Probe(ctx context.Context, path string) (pipeline.VideoMetadata, error) {
	m.Paths = append(m.Paths, path)
	if m.Err != nil {
		return pipeline.VideoMetadata{}, m.Err
	}
	return m.Meta, nil
}

var _ ports.MetadataProber = (*MetadataProber)(nil)
