// Package layout implements the print layout calculation stage.
package layout

import (
	"context"
	"fmt"

	"github.com/user/framegrid/pkg/pipeline"
)

// Stage calculates the print geometry of a frame sheet.
// This is a pure function with no external dependencies.
type Stage struct{}

// NewStage creates a new layout stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute calculates the layout geometry from the source dimensions.
func (s *Stage) Execute(ctx context.Context, input pipeline.Dimension) (pipeline.LayoutGeometry, error) {
	if input.Width <= 0 || input.Height <= 0 {
		return pipeline.LayoutGeometry{}, fmt.Errorf("invalid source size %dx%d", input.Width, input.Height)
	}
	return ComputeGeometry(input.Width, input.Height), nil
}

// ComputeGeometry performs the layout calculation.
// This is exposed as a standalone function for testing and reuse.
//
// The sheet is a 3x3 grid of frames of the source size, so its aspect ratio
// (3H)/(3W) reduces to H/W. The grid is fit to a letter page in the
// source's orientation: when the grid is relatively taller than the page
// the width is limited by the page height, otherwise it spans the page width.
func ComputeGeometry(width, height int) pipeline.LayoutGeometry {
	orientation := pipeline.Portrait
	pageWidth, pageHeight := pipeline.LetterShortIn, pipeline.LetterLongIn
	if width > height {
		orientation = pipeline.Landscape
		pageWidth, pageHeight = pipeline.LetterLongIn, pipeline.LetterShortIn
	}

	gridAspect := float64(height*pipeline.GridSize) / float64(width*pipeline.GridSize)
	pageAspect := pageHeight / pageWidth

	printWidth := pageWidth
	if gridAspect > pageAspect {
		printWidth = pageHeight / gridAspect
	}

	return pipeline.LayoutGeometry{
		SourceWidth:  width,
		SourceHeight: height,
		Orientation:  orientation,
		GridAspect:   gridAspect,
		PageWidthIn:  pageWidth,
		PageHeightIn: pageHeight,
		PageAspect:   pageAspect,
		PrintWidthIn: printWidth,
	}
}
