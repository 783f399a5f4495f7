// Package progress provides the progress indicator shown while a pipeline runs.
//
// An Indicator is owned by a single run and passed into it explicitly; it
// holds the title, body text and fill percentage, and notifies observers on
// every change.
package progress

import (
	"sync"
)

// Snapshot is the visible state of an indicator.
type Snapshot struct {
	Title   string  `json:"title"`
	Body    string  `json:"body"`
	Percent float64 `json:"percent"`
	Visible bool    `json:"visible"`
}

// Observer receives indicator snapshots.
type Observer interface {
	Update(s Snapshot)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(s Snapshot)

// Update implements Observer.
func (f ObserverFunc) Update(s Snapshot) {
	f(s)
}

// Indicator is a progress indicator with title, body and a 0-100 fill.
type Indicator struct {
	mu        sync.Mutex
	snap      Snapshot
	observers []Observer
}

// New creates a hidden indicator.
func New(observers ...Observer) *Indicator {
	return &Indicator{observers: observers}
}

// Subscribe adds an observer. It does not receive the current snapshot.
func (i *Indicator) Subscribe(o Observer) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.observers = append(i.observers, o)
}

// Show makes the indicator visible with the given text at 0%.
func (i *Indicator) Show(title, body string) {
	i.update(func(s *Snapshot) {
		s.Title = title
		s.Body = body
		s.Percent = 0
		s.Visible = true
	})
}

// SetBody replaces the body text.
func (i *Indicator) SetBody(body string) {
	i.update(func(s *Snapshot) {
		s.Body = body
	})
}

// SetPercent sets the fill, clamped to [0, 100].
func (i *Indicator) SetPercent(percent float64) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	i.update(func(s *Snapshot) {
		s.Percent = percent
	})
}

// Hide hides the indicator, keeping its last text and fill.
func (i *Indicator) Hide() {
	i.update(func(s *Snapshot) {
		s.Visible = false
	})
}

// Snapshot returns the current state.
func (i *Indicator) Snapshot() Snapshot {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.snap
}

func (i *Indicator) update(fn func(s *Snapshot)) {
	i.mu.Lock()
	fn(&i.snap)
	snap := i.snap
	observers := append([]Observer(nil), i.observers...)
	i.mu.Unlock()

	for _, o := range observers {
		o.Update(snap)
	}
}

// Recorder is an Observer that keeps every snapshot it receives.
type Recorder struct {
	mu        sync.Mutex
	snapshots []Snapshot
}

// Update implements Observer.
func (r *Recorder) Update(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, s)
}

// Snapshots returns a copy of the recorded snapshots.
func (r *Recorder) Snapshots() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Snapshot(nil), r.snapshots...)
}

// Percents returns the distinct fill values in the order they were reached.
func (r *Recorder) Percents() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []float64
	for _, s := range r.snapshots {
		if len(out) == 0 || out[len(out)-1] != s.Percent {
			out = append(out, s.Percent)
		}
	}
	return out
}
