package pipeline

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strconv"
)

// GridSize is the number of rows and columns in a frame sheet.
const GridSize = 3

// GridFrames is the number of cells in a frame sheet.
const GridFrames = GridSize * GridSize

var (
	// ErrInvalidDuration is returned when a timeline is requested for a
	// non-positive or non-finite duration.
	ErrInvalidDuration = errors.New("pipeline: invalid duration")
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height.
type Dimension struct {
	Width  int
	Height int
}

// MediaSource is a user-selected file consumed once by a pipeline run.
type MediaSource struct {
	Path string // Local path of the uploaded or selected file
	Name string // Display name (original file name)
}

// NewMediaSource creates a MediaSource named after the path's base name.
func NewMediaSource(path string) MediaSource {
	return MediaSource{Path: path, Name: filepath.Base(path)}
}

// =============================================================================
// Frame-Sampler Types
// =============================================================================

// VideoMetadata is what a video source reports once its header is loaded.
type VideoMetadata struct {
	Width    int
	Height   int
	Duration float64 // seconds
}

// FrameTimeline holds the capture timestamps in seconds, in capture order.
type FrameTimeline []float64

// Interval returns the spacing between consecutive timestamps.
func (t FrameTimeline) Interval() float64 {
	if len(t) < 2 {
		return 0
	}
	return t[1] - t[0]
}

// Orientation is the print orientation of a frame sheet.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
)

// Letter page dimensions in inches, per orientation.
const (
	LetterLongIn  = 10.5
	LetterShortIn = 8.0
)

// LayoutGeometry is the print sizing derived from the source aspect ratio.
type LayoutGeometry struct {
	SourceWidth  int
	SourceHeight int
	Orientation  Orientation
	GridAspect   float64 // grid height / grid width
	PageWidthIn  float64
	PageHeightIn float64
	PageAspect   float64 // page height / page width
	PrintWidthIn float64
}

// PrintWidthCSS formats the print width as a CSS length.
func (g LayoutGeometry) PrintWidthCSS() string {
	return strconv.FormatFloat(g.PrintWidthIn, 'f', -1, 64) + "in"
}

// FrameImage is a rasterized still captured at a timeline position.
type FrameImage struct {
	Index        int
	TimestampSec float64
	Image        image.Image
}

// FrameGrid is the display container for captured frames.
// It carries the layout hints consumed by the print stylesheet.
type FrameGrid struct {
	PrintWidth  string // value of --print-width
	Orientation Orientation
	Geometry    LayoutGeometry
	Frames      []FrameImage
}

// SetLayout publishes layout hints on the container.
func (g *FrameGrid) SetLayout(geom LayoutGeometry) {
	g.Geometry = geom
	g.PrintWidth = geom.PrintWidthCSS()
	g.Orientation = geom.Orientation
}

// Append adds a captured frame to the container.
func (g *FrameGrid) Append(frame FrameImage) {
	g.Frames = append(g.Frames, frame)
}

// =============================================================================
// Sheet-Splitter Types
// =============================================================================

// SheetSlice is one cell of a 3x3 sprite sheet.
type SheetSlice struct {
	X     int             // column index
	Y     int             // row index
	Rect  image.Rectangle // source rectangle in sheet coordinates
	Image image.Image     // independent copy with (0,0) origin
}

// String returns the cell coordinates as "x,y".
func (s SheetSlice) String() string {
	return fmt.Sprintf("%d,%d", s.X, s.Y)
}

// AnimationOptions configures the animation encoder.
type AnimationOptions struct {
	DelayMs int // per-frame delay
	Workers int // parallel quantization workers
	Quality int // pixel sample interval, 1 is best
}

// DefaultAnimationOptions returns the fixed encoder settings of the splitter.
func DefaultAnimationOptions() AnimationOptions {
	return AnimationOptions{
		DelayMs: 200,
		Workers: 2,
		Quality: 10,
	}
}

// EncodedAnimation is the encoder's output artifact.
type EncodedAnimation struct {
	Data   []byte
	Width  int
	Height int
	Frames int
}
