package ports

import (
	"context"
	"errors"
	"image"

	"github.com/user/framegrid/pkg/pipeline"
)

var (
	// ErrEncoderUnavailable is returned when the animation encoder cannot be used.
	ErrEncoderUnavailable = errors.New("animation encoder unavailable")

	// ErrEncodeFailed is returned when rendering the animation fails.
	ErrEncodeFailed = errors.New("animation encode failed")
)

// AnimationEncoder abstracts the animated image encoder.
type AnimationEncoder interface {
	// Available reports whether the encoder can be used.
	Available() bool

	// Render encodes frames, in order, into one looping animation.
	// onProgress receives the render fraction in [0, 1]; calls are serialized.
	Render(ctx context.Context, frames []image.Image, opts pipeline.AnimationOptions, onProgress func(float64)) (pipeline.EncodedAnimation, error)
}
