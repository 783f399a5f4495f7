// Package slice implements the sheet slicing stage.
package slice

import (
	"context"
	"fmt"
	"image"

	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/ports"
)

// Stage cuts a sheet into a 3x3 grid of equally sized tiles.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new slice stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("slice"),
	}
}

// Execute returns nine tiles in row-major order. Tiles are floor(W/3) by
// floor(H/3); remainder pixels on the right and bottom edges are dropped.
func (s *Stage) Execute(ctx context.Context, sheet image.Image) ([]pipeline.SheetSlice, error) {
	if sheet == nil {
		return nil, fmt.Errorf("slice: %w", ports.ErrDecodeFailed)
	}

	bounds := sheet.Bounds()
	tileW := bounds.Dx() / pipeline.GridSize
	tileH := bounds.Dy() / pipeline.GridSize
	if tileW == 0 || tileH == 0 {
		return nil, fmt.Errorf("sheet %dx%d is too small to split into %dx%d tiles",
			bounds.Dx(), bounds.Dy(), pipeline.GridSize, pipeline.GridSize)
	}

	if bounds.Dx()%pipeline.GridSize != 0 || bounds.Dy()%pipeline.GridSize != 0 {
		s.logger.Warn("Sheet size %dx%d is not divisible by %d, trimming edge pixels",
			bounds.Dx(), bounds.Dy(), pipeline.GridSize)
	}

	slices := make([]pipeline.SheetSlice, 0, pipeline.GridFrames)
	for y := 0; y < pipeline.GridSize; y++ {
		for x := 0; x < pipeline.GridSize; x++ {
			select {
			case <-ctx.Done():
				return slices, ctx.Err()
			default:
			}

			min := bounds.Min.Add(image.Pt(x*tileW, y*tileH))
			rect := image.Rectangle{Min: min, Max: min.Add(image.Pt(tileW, tileH))}

			tile := s.renderer.CropImage(sheet, rect)
			slices = append(slices, pipeline.SheetSlice{
				X:     x,
				Y:     y,
				Rect:  rect,
				Image: tile,
			})

			if s.sink.Enabled() {
				s.sink.SaveSlice(x, y, tile)
			}
		}
	}

	s.logger.Debug("Split sheet into %d tiles of %dx%d", len(slices), tileW, tileH)
	return slices, nil
}
