// Package animate implements the animation encoding stage.
package animate

import (
	"context"
	"fmt"
	"image"

	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/ports"
	"github.com/user/framegrid/pkg/progress"
)

// Encoder progress p in [0, 1] is shown as BaseProgress + SpanProgress*p.
const (
	BaseProgress = 90
	SpanProgress = 10
)

// Input contains the slices to animate and the run's indicator.
type Input struct {
	Slices   []pipeline.SheetSlice
	Options  pipeline.AnimationOptions
	Progress *progress.Indicator
}

// Stage encodes sheet slices into a looping animation.
type Stage struct {
	encoder ports.AnimationEncoder
	logger  ports.Logger
}

// NewStage creates a new animate stage.
func NewStage(encoder ports.AnimationEncoder, logger ports.Logger) *Stage {
	return &Stage{
		encoder: encoder,
		logger:  logger.WithComponent("animate"),
	}
}

// Execute renders the slices in order, one animation frame per slice.
func (s *Stage) Execute(ctx context.Context, input Input) (pipeline.EncodedAnimation, error) {
	if len(input.Slices) == 0 {
		return pipeline.EncodedAnimation{}, fmt.Errorf("no slices to animate")
	}
	if !s.encoder.Available() {
		return pipeline.EncodedAnimation{}, ports.ErrEncoderUnavailable
	}

	frames := make([]image.Image, len(input.Slices))
	for i, sl := range input.Slices {
		frames[i] = sl.Image
	}

	opts := input.Options
	if opts.DelayMs <= 0 || opts.Workers <= 0 || opts.Quality <= 0 {
		defaults := pipeline.DefaultAnimationOptions()
		if opts.DelayMs <= 0 {
			opts.DelayMs = defaults.DelayMs
		}
		if opts.Workers <= 0 {
			opts.Workers = defaults.Workers
		}
		if opts.Quality <= 0 {
			opts.Quality = defaults.Quality
		}
	}

	s.logger.Debug("Encoding %d frames, delay %dms, %d workers, quality %d",
		len(frames), opts.DelayMs, opts.Workers, opts.Quality)

	anim, err := s.encoder.Render(ctx, frames, opts, func(p float64) {
		if input.Progress != nil {
			input.Progress.SetPercent(BaseProgress + SpanProgress*p)
		}
	})
	if err != nil {
		return pipeline.EncodedAnimation{}, fmt.Errorf("render animation: %w", err)
	}

	s.logger.Debug("Encoded %d bytes", len(anim.Data))
	return anim, nil
}
