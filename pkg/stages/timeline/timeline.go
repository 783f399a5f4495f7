// Package timeline implements the frame timeline stage.
package timeline

import (
	"context"
	"fmt"
	"math"

	"github.com/user/framegrid/pkg/pipeline"
)

// Stage computes capture timestamps for a video of known duration.
type Stage struct{}

// NewStage creates a new timeline stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute returns the frame timeline for a duration in seconds.
func (s *Stage) Execute(ctx context.Context, duration float64) (pipeline.FrameTimeline, error) {
	return Compute(duration)
}

// Compute returns GridFrames timestamps i*(duration/(GridFrames-1)),
// so the first is 0 and the last is the duration.
func Compute(duration float64) (pipeline.FrameTimeline, error) {
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrInvalidDuration, duration)
	}

	interval := duration / float64(pipeline.GridFrames-1)
	timeline := make(pipeline.FrameTimeline, pipeline.GridFrames)
	for i := range timeline {
		timeline[i] = float64(i) * interval
	}
	return timeline, nil
}
