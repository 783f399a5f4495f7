package mocks

import (
	"context"
	"image"

	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/ports"
)

// AnimationEncoder is a mock implementation of ports.AnimationEncoder.
type AnimationEncoder struct {
	Unavailable bool
	RenderFunc  func(ctx context.Context, frames []image.Image, opts pipeline.AnimationOptions, onProgress func(float64)) (pipeline.EncodedAnimation, error)

	// Recorded calls for verification
	RenderCalled bool
	Frames       []image.Image
	Options      pipeline.AnimationOptions
}

func (m *AnimationEncoder) Available() bool {
	return !m.Unavailable
}

func (m *AnimationEncoder) Render(ctx context.Context, frames []image.Image, opts pipeline.AnimationOptions, onProgress func(float64)) (pipeline.EncodedAnimation, error) {
	m.RenderCalled = true
	m.Frames = frames
	m.Options = opts
	if m.RenderFunc != nil {
		return m.RenderFunc(ctx, frames, opts, onProgress)
	}

	for i := range frames {
		onProgress(float64(i+1) / float64(len(frames)))
	}

	var width, height int
	if len(frames) > 0 {
		width = frames[0].Bounds().Dx()
		height = frames[0].Bounds().Dy()
	}
	// Minimal GIF header
	return pipeline.EncodedAnimation{
		Data:   []byte("GIF89a"),
		Width:  width,
		Height: height,
		Frames: len(frames),
	}, nil
}

var _ ports.AnimationEncoder = (*AnimationEncoder)(nil)
