// Package printsheet builds the print page for a filled frame grid and hands
// it to the printer.
package printsheet

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"time"

	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/ports"
)

// DefaultSettleDelay is the pause between the final frame and printing.
const DefaultSettleDelay = 500 * time.Millisecond

// Input contains the filled grid and the pause before printing.
type Input struct {
	Grid        *pipeline.FrameGrid
	SettleDelay time.Duration
}

// Result holds the generated page and the printed document.
type Result struct {
	HTML     string
	Document []byte
}

// Stage renders the print page and invokes the printer exactly once.
type Stage struct {
	renderer ports.Renderer
	printer  ports.Printer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new print stage.
func NewStage(renderer ports.Renderer, printer ports.Printer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		printer:  printer,
		sink:     sink,
		logger:   logger.WithComponent("printsheet"),
	}
}

// Execute waits for the settle delay, then prints the grid.
func (s *Stage) Execute(ctx context.Context, input Input) (Result, error) {
	var result Result

	if input.Grid == nil || len(input.Grid.Frames) == 0 {
		return result, fmt.Errorf("no frames to print")
	}

	html, err := s.BuildHTML(input.Grid)
	if err != nil {
		return result, err
	}
	result.HTML = html

	if s.sink.Enabled() {
		s.sink.SavePrintHTML([]byte(html))
	}

	if input.SettleDelay > 0 {
		timer := time.NewTimer(input.SettleDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return result, ctx.Err()
		case <-timer.C:
		}
	}

	s.logger.Debug("Printing %s sheet at width %s", input.Grid.Orientation, input.Grid.PrintWidth)
	doc, err := s.printer.Print(ctx, html, input.Grid.Geometry)
	if err != nil {
		return result, fmt.Errorf("print sheet: %w", err)
	}
	result.Document = doc

	return result, nil
}

type pageData struct {
	Title       string
	PrintWidth  string
	Orientation string
	PageWidth   string
	PageHeight  string
	Frames      []frameData
}

type frameData struct {
	Index     int
	Timestamp string
	Src       template.URL
}

// BuildHTML renders the print page for the grid. Frames are embedded as PNG
// data URIs.
func (s *Stage) BuildHTML(grid *pipeline.FrameGrid) (string, error) {
	geom := grid.Geometry
	data := pageData{
		Title:       "framegrid",
		PrintWidth:  grid.PrintWidth,
		Orientation: string(grid.Orientation),
		PageWidth:   formatInches(geom.PageWidthIn),
		PageHeight:  formatInches(geom.PageHeightIn),
	}

	for _, f := range grid.Frames {
		png, err := s.renderer.EncodeImage(f.Image, ports.FormatPNG, 0)
		if err != nil {
			return "", fmt.Errorf("encode frame %d: %w", f.Index, err)
		}
		data.Frames = append(data.Frames, frameData{
			Index:     f.Index,
			Timestamp: fmt.Sprintf("%.2fs", f.TimestampSec),
			Src:       template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render print page: %w", err)
	}
	return buf.String(), nil
}

func formatInches(v float64) string {
	return fmt.Sprintf("%gin", v)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: {{.PageWidth}} {{.PageHeight}}; margin: 0; }
html, body { margin: 0; padding: 0; background: #fff; }
.grid {
  display: grid;
  grid-template-columns: repeat(3, 1fr);
  width: var(--print-width);
  margin: 0 auto;
}
.grid .frame { display: block; width: 100%; height: auto; }
</style>
</head>
<body style="--print-orientation: {{.Orientation}}">
<div class="grid" style="--print-width: {{.PrintWidth}}; --print-orientation: {{.Orientation}}">
{{- range .Frames}}
<img class="frame" data-index="{{.Index}}" alt="{{.Timestamp}}" src="{{.Src}}">
{{- end}}
</div>
</body>
</html>
`))
