package ports

import (
	"context"

	"github.com/user/framegrid/pkg/pipeline"
)

// Printer is the platform print function.
type Printer interface {
	// Print renders the print page HTML and returns the printed document.
	// The geometry selects paper size and orientation.
	Print(ctx context.Context, html string, geom pipeline.LayoutGeometry) ([]byte, error)
}
