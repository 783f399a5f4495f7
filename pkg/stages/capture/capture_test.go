package capture

import (
	"context"
	"errors"
	"testing"

	"github.com/user/framegrid/pkg/adapters/logger"
	"github.com/user/framegrid/pkg/mocks"
	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/progress"
	"github.com/user/framegrid/pkg/stages/timeline"
)

func newInput(t *testing.T, video *mocks.Video, rec *progress.Recorder) Input {
	t.Helper()

	tl, err := timeline.Compute(video.Meta.Duration)
	if err != nil {
		t.Fatal(err)
	}

	m := pipeline.NewSamplerMachine(pipeline.GridFrames)
	m.Start()
	m.MetadataLoaded()
	m.DataLoaded()

	ind := progress.New()
	ind.SetPercent(BaseProgress)
	ind.Subscribe(rec)

	return Input{
		Video:    video,
		Timeline: tl,
		Machine:  m,
		Grid:     &pipeline.FrameGrid{},
		Progress: ind,
	}
}

func TestStage_Execute(t *testing.T) {
	video := mocks.NewVideo(64, 36, 16)
	rec := &progress.Recorder{}
	input := newInput(t, video, rec)
	sink := mocks.NewDebugSink(true)

	stage := NewStage(sink, logger.NewNoop())
	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Frames) != pipeline.GridFrames {
		t.Fatalf("expected %d frames, got %d", pipeline.GridFrames, len(result.Frames))
	}
	if len(input.Grid.Frames) != pipeline.GridFrames {
		t.Errorf("expected frames appended to the grid, got %d", len(input.Grid.Frames))
	}

	expectedSeeks := []float64{0, 2, 4, 6, 8, 10, 12, 14, 16}
	for i, ts := range expectedSeeks {
		if video.Seeks[i] != ts {
			t.Errorf("seek %d: expected %v, got %v", i, ts, video.Seeks[i])
		}
		if result.Frames[i].Index != i || result.Frames[i].TimestampSec != ts {
			t.Errorf("frame %d: unexpected %+v", i, result.Frames[i])
		}
	}
	if video.Overlaps != 0 {
		t.Errorf("expected strictly sequential seeks, got %d overlaps", video.Overlaps)
	}

	// Native frame size
	if b := result.Frames[0].Image.Bounds(); b.Dx() != 64 || b.Dy() != 36 {
		t.Errorf("expected 64x36 frames, got %dx%d", b.Dx(), b.Dy())
	}

	if len(sink.Frames) != pipeline.GridFrames {
		t.Errorf("expected %d debug frames, got %d", pipeline.GridFrames, len(sink.Frames))
	}

	if input.Machine.Captured() != pipeline.GridFrames {
		t.Errorf("expected machine to record %d captures, got %d", pipeline.GridFrames, input.Machine.Captured())
	}
}

func TestStage_Execute_ProgressSteps(t *testing.T) {
	video := mocks.NewVideo(8, 8, 4)
	rec := &progress.Recorder{}
	input := newInput(t, video, rec)

	if _, err := NewStage(mocks.NewDebugSink(false), logger.NewNoop()).Execute(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []float64{20, 28, 36, 44, 52, 60, 68, 76, 84, 92}
	got := rec.Percents()
	if len(got) != len(expected) {
		t.Fatalf("expected progress %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("progress[%d]: expected %v, got %v", i, expected[i], got[i])
		}
	}
}

func TestStage_Execute_SeekError(t *testing.T) {
	video := mocks.NewVideo(8, 8, 4)
	video.SeekErrAt = 3
	video.SeekErr = errors.New("corrupt packet")

	input := newInput(t, video, &progress.Recorder{})
	result, err := NewStage(mocks.NewDebugSink(false), logger.NewNoop()).Execute(context.Background(), input)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, video.SeekErr) {
		t.Errorf("expected wrapped seek error, got %v", err)
	}
	if len(result.Frames) != 3 {
		t.Errorf("expected 3 frames before the failure, got %d", len(result.Frames))
	}
	if len(video.Seeks) != 4 {
		t.Errorf("expected no seeks after the failing one, got %d", len(video.Seeks))
	}
}

func TestStage_Execute_RequiresLoadedData(t *testing.T) {
	video := mocks.NewVideo(8, 8, 4)
	input := newInput(t, video, &progress.Recorder{})
	input.Machine = pipeline.NewSamplerMachine(pipeline.GridFrames)

	_, err := NewStage(mocks.NewDebugSink(false), logger.NewNoop()).Execute(context.Background(), input)
	if !errors.Is(err, pipeline.ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	if len(video.Seeks) != 0 {
		t.Errorf("expected no seeks, got %d", len(video.Seeks))
	}
}

func TestStage_Execute_Cancelled(t *testing.T) {
	video := mocks.NewVideo(8, 8, 4)
	input := newInput(t, video, &progress.Recorder{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStage(mocks.NewDebugSink(false), logger.NewNoop()).Execute(ctx, input)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
