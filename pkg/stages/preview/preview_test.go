package preview

import (
	"context"
	"image"
	"testing"

	"github.com/user/framegrid/pkg/adapters/logger"
	"github.com/user/framegrid/pkg/mocks"
	"github.com/user/framegrid/pkg/pipeline"
)

func testGrid(w, h int) *pipeline.FrameGrid {
	grid := &pipeline.FrameGrid{}
	for i := 0; i < pipeline.GridFrames; i++ {
		grid.Append(pipeline.FrameImage{
			Index:        i,
			TimestampSec: float64(i) * 2,
			Image:        image.NewRGBA(image.Rect(0, 0, w, h)),
		})
	}
	return grid
}

func TestStage_Execute(t *testing.T) {
	renderer := &mocks.Renderer{}
	stage := NewStage(renderer, logger.NewNoop())

	img, err := stage.Execute(context.Background(), Input{Grid: testGrid(160, 90)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b := img.Bounds(); b.Dx() != 480 || b.Dy() != 270 {
		t.Errorf("expected 480x270 preview, got %dx%d", b.Dx(), b.Dy())
	}

	canvas := renderer.Canvases[0]
	expected := []image.Point{
		{0, 0}, {160, 0}, {320, 0},
		{0, 90}, {160, 90}, {320, 90},
		{0, 180}, {160, 180}, {320, 180},
	}
	if len(canvas.Draws) != len(expected) {
		t.Fatalf("expected %d draws, got %d", len(expected), len(canvas.Draws))
	}
	for i, p := range expected {
		if canvas.Draws[i] != p {
			t.Errorf("draw %d: expected %v, got %v", i, p, canvas.Draws[i])
		}
	}
	if len(canvas.Texts) != 0 {
		t.Errorf("expected no labels, got %v", canvas.Texts)
	}
}

func TestStage_Execute_ScaledWithLabels(t *testing.T) {
	renderer := &mocks.Renderer{}
	stage := NewStage(renderer, logger.NewNoop())

	img, err := stage.Execute(context.Background(), Input{
		Grid:      testGrid(1920, 1080),
		CellWidth: 320,
		Gap:       10,
		Labels:    true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 3*320 + 4*10, 3*180 + 4*10
	if b := img.Bounds(); b.Dx() != 1000 || b.Dy() != 580 {
		t.Errorf("expected 1000x580 preview, got %dx%d", b.Dx(), b.Dy())
	}

	texts := renderer.Canvases[0].Texts
	if len(texts) != 9 || texts[0] != "00:00.00" || texts[8] != "00:16.00" {
		t.Errorf("unexpected labels %v", texts)
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		sec  float64
		want string
	}{
		{0, "00:00.00"},
		{1.5, "00:01.50"},
		{61.25, "01:01.25"},
		{599.999, "10:00.00"},
	}
	for _, tt := range tests {
		if got := formatTimestamp(tt.sec); got != tt.want {
			t.Errorf("formatTimestamp(%v) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}

func TestStage_Execute_Empty(t *testing.T) {
	stage := NewStage(&mocks.Renderer{}, logger.NewNoop())
	if _, err := stage.Execute(context.Background(), Input{Grid: &pipeline.FrameGrid{}}); err == nil {
		t.Error("expected error for empty grid")
	}
}
