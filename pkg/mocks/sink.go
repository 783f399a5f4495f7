package mocks

import (
	"image"
	"sync"

	"github.com/user/framegrid/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	LayoutJSON   []byte
	TimelineJSON []byte
	PrintHTML    []byte
	Frames       map[int]image.Image
	Slices       map[image.Point]image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled: enabled,
		Frames:  make(map[int]image.Image),
		Slices:  make(map[image.Point]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveLayoutJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LayoutJSON = data
	return nil
}

func (m *DebugSink) SaveTimelineJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TimelineJSON = data
	return nil
}

func (m *DebugSink) SaveFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames[index] = img
	return nil
}

func (m *DebugSink) SaveSlice(x, y int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Slices[image.Pt(x, y)] = img
	return nil
}

func (m *DebugSink) SavePrintHTML(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PrintHTML = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool                              { return false }
func (m *NullSink) SaveLayoutJSON(data []byte) error           { return nil }
func (m *NullSink) SaveTimelineJSON(data []byte) error         { return nil }
func (m *NullSink) SaveFrame(index int, img image.Image) error { return nil }
func (m *NullSink) SaveSlice(x, y int, img image.Image) error  { return nil }
func (m *NullSink) SavePrintHTML(data []byte) error            { return nil }

var _ ports.DebugSink = (*NullSink)(nil)
