// Package nullsink provides a debug sink that discards everything.
package nullsink

import (
	"image"

	"github.com/user/framegrid/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveLayoutJSON does nothing.
func (s *Sink) SaveLayoutJSON(data []byte) error { return nil }

// SaveTimelineJSON does nothing.
func (s *Sink) SaveTimelineJSON(data []byte) error { return nil }

// SaveFrame does nothing.
func (s *Sink) SaveFrame(index int, img image.Image) error { return nil }

// SaveSlice does nothing.
func (s *Sink) SaveSlice(x, y int, img image.Image) error { return nil }

// SavePrintHTML does nothing.
func (s *Sink) SavePrintHTML(data []byte) error { return nil }

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
