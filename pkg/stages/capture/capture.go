// Package capture implements the sequential frame capture stage.
package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/ports"
	"github.com/user/framegrid/pkg/progress"
)

// Progress reported before the first frame and added per captured frame.
const (
	BaseProgress     = 20
	PerFrameProgress = 8
)

// Input contains what the capture stage needs for one run.
type Input struct {
	Video    ports.Video
	Timeline pipeline.FrameTimeline
	Machine  *pipeline.SamplerMachine
	Grid     *pipeline.FrameGrid
	Progress *progress.Indicator

	// FrameTimeout bounds each seek. Zero waits indefinitely.
	FrameTimeout time.Duration
}

// Result lists the frames in capture order.
type Result struct {
	Frames []pipeline.FrameImage
}

// Stage seeks and captures one frame per timeline entry, strictly in order.
type Stage struct {
	sink   ports.DebugSink
	logger ports.Logger
}

// NewStage creates a new capture stage.
func NewStage(sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		sink:   sink,
		logger: logger.WithComponent("capture"),
	}
}

// Execute captures every timeline entry. Each seek's result is awaited
// before the next seek is issued.
func (s *Stage) Execute(ctx context.Context, input Input) (Result, error) {
	result := Result{
		Frames: make([]pipeline.FrameImage, 0, len(input.Timeline)),
	}

	for i, ts := range input.Timeline {
		if err := input.Machine.BeginCapture(i); err != nil {
			return result, err
		}

		s.logger.Debug("Extracting frame %d at %.3fs", i, ts)
		frame, err := s.captureOne(ctx, input, i, ts)
		if err != nil {
			return result, fmt.Errorf("capture frame %d: %w", i, err)
		}

		input.Grid.Append(frame)
		result.Frames = append(result.Frames, frame)

		if s.sink.Enabled() {
			s.sink.SaveFrame(i, frame.Image)
		}

		if err := input.Machine.CaptureDone(i); err != nil {
			return result, err
		}

		input.Progress.SetBody(l10n.F("Frame %d of %d", i+1, len(input.Timeline)))
		input.Progress.SetPercent(float64(BaseProgress + PerFrameProgress*(i+1)))
	}

	s.logger.Debug("Captured %d frames", len(result.Frames))
	return result, nil
}

func (s *Stage) captureOne(ctx context.Context, input Input, index int, ts float64) (pipeline.FrameImage, error) {
	seekCtx := ctx
	if input.FrameTimeout > 0 {
		var cancel context.CancelFunc
		seekCtx, cancel = context.WithTimeout(ctx, input.FrameTimeout)
		defer cancel()
	}

	img, actual, err := input.Video.SeekFrame(seekCtx, ts)
	if err != nil {
		return pipeline.FrameImage{}, err
	}
	s.logger.Debug("Seeked to %.3fs", actual)

	return pipeline.FrameImage{
		Index:        index,
		TimestampSec: ts,
		Image:        img,
	}, nil
}
