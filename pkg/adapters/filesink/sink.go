// Package filesink writes intermediate results to a debug directory.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/framegrid/pkg/ports"
)

// Sink saves debug output to files under a base directory:
//
//	layout.json, timeline.json, print.html
//	frames/frame-NN.png
//	slices/slice-Y-X.png
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveLayoutJSON saves the layout geometry.
func (s *Sink) SaveLayoutJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "layout.json"), data)
}

// SaveTimelineJSON saves the seek timeline.
func (s *Sink) SaveTimelineJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "timeline.json"), data)
}

// SavePrintHTML saves the generated print page.
func (s *Sink) SavePrintHTML(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "print.html"), data)
}

// SaveFrame saves a captured video frame.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	return s.savePNG("frames", fmt.Sprintf("frame-%02d.png", index), img)
}

// SaveSlice saves the sheet tile at column x, row y.
func (s *Sink) SaveSlice(x, y int, img image.Image) error {
	return s.savePNG("slices", fmt.Sprintf("slice-%d-%d.png", y, x), img)
}

func (s *Sink) savePNG(subdir, name string, img image.Image) error {
	dir := filepath.Join(s.baseDir, subdir)
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.fs.WriteFile(filepath.Join(dir, name), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
