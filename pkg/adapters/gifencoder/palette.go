package gifencoder

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
)

// buildPalette returns at most maxColors colors for img.
// With stride > 1 the palette is built from a nearest-neighbor sample that
// keeps one pixel in stride along each axis.
func buildPalette(img image.Image, maxColors, stride int) color.Palette {
	src := img
	if stride > 1 {
		b := img.Bounds()
		w := max(1, b.Dx()/stride)
		h := max(1, b.Dy()/stride)
		sample := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.NearestNeighbor.Scale(sample, sample.Bounds(), img, b, draw.Src, nil)
		src = sample
	}

	q := quantize.MedianCutQuantizer{Aggregation: quantize.Mean}
	return q.Quantize(make(color.Palette, 0, maxColors), src)
}
