package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/ports"
)

// Printer is a mock implementation of ports.Printer.
type Printer struct {
	mu sync.Mutex

	PrintFunc func(ctx context.Context, html string, geom pipeline.LayoutGeometry) ([]byte, error)

	// Recorded calls for verification
	Calls    int
	HTML     string
	Geometry pipeline.LayoutGeometry
	CalledAt time.Time
}

func (m *Printer) Print(ctx context.Context, html string, geom pipeline.LayoutGeometry) ([]byte, error) {
	m.mu.Lock()
	m.Calls++
	m.HTML = html
	m.Geometry = geom
	m.CalledAt = time.Now()
	m.mu.Unlock()

	if m.PrintFunc != nil {
		return m.PrintFunc(ctx, html, geom)
	}
	return []byte("%PDF-1.4"), nil
}

var _ ports.Printer = (*Printer)(nil)
