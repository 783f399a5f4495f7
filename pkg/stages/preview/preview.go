// Package preview implements the contact-sheet preview stage.
package preview

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/ports"
)

// Input contains the filled grid and preview styling.
type Input struct {
	Grid *pipeline.FrameGrid

	// CellWidth scales each frame to this width. Zero keeps the source size.
	CellWidth int
	Gap       int
	Labels    bool
	// Background fills the gaps. Nil means white.
	Background color.Color
}

// Stage draws the captured frames as a 3x3 contact sheet image.
type Stage struct {
	renderer ports.Renderer
	logger   ports.Logger
}

// NewStage creates a new preview stage.
func NewStage(renderer ports.Renderer, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		logger:   logger.WithComponent("preview"),
	}
}

// Execute composes the grid frames in row-major order.
func (s *Stage) Execute(ctx context.Context, input Input) (image.Image, error) {
	if input.Grid == nil || len(input.Grid.Frames) == 0 {
		return nil, fmt.Errorf("no frames to preview")
	}

	first := input.Grid.Frames[0].Image.Bounds()
	cellW, cellH := first.Dx(), first.Dy()
	if input.CellWidth > 0 && input.CellWidth != cellW {
		cellH = cellH * input.CellWidth / cellW
		cellW = input.CellWidth
	}
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("invalid cell size %dx%d", cellW, cellH)
	}

	n := pipeline.GridSize
	width := n*cellW + (n+1)*input.Gap
	height := n*cellH + (n+1)*input.Gap

	s.logger.Debug("Composing %dx%d preview from %d frames", width, height, len(input.Grid.Frames))

	bg := input.Background
	if bg == nil {
		bg = color.White
	}
	canvas := s.renderer.CreateCanvas(width, height, bg)
	for i, frame := range input.Grid.Frames {
		if i >= pipeline.GridFrames {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		col, row := i%n, i/n
		x := input.Gap + col*(cellW+input.Gap)
		y := input.Gap + row*(cellH+input.Gap)
		canvas.DrawImageScaled(frame.Image, x, y, cellW, cellH)

		if input.Labels {
			label := formatTimestamp(frame.TimestampSec)
			canvas.DrawRect(x, y+cellH-18, 7*len(label)+8, 18, color.RGBA{A: 160})
			canvas.DrawText(label, x+4, y+cellH-5, color.White)
		}
	}

	return canvas.ToImage(), nil
}

// formatTimestamp renders seconds as mm:ss.cc.
func formatTimestamp(sec float64) string {
	centis := int(sec*100 + 0.5)
	return fmt.Sprintf("%02d:%02d.%02d", centis/6000, centis/100%60, centis%100)
}
