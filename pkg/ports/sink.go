package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveLayoutJSON saves the layout geometry as JSON.
	SaveLayoutJSON(data []byte) error

	// SaveTimelineJSON saves the computed frame timeline as JSON.
	SaveTimelineJSON(data []byte) error

	// SaveFrame saves a captured frame.
	SaveFrame(index int, img image.Image) error

	// SaveSlice saves a sheet slice at grid cell (x, y).
	SaveSlice(x, y int, img image.Image) error

	// SavePrintHTML saves the generated print page.
	SavePrintHTML(data []byte) error
}
