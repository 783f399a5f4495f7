package pipeline

import (
	"errors"
	"fmt"
)

// ErrIllegalTransition is returned when a sampler step is attempted out of order.
var ErrIllegalTransition = errors.New("pipeline: illegal state transition")

// SamplerState is a state of the frame-sampler run.
type SamplerState int

const (
	StateIdle SamplerState = iota
	StateAwaitingMetadata
	StateAwaitingData
	StateCapturingFrame
	StateDone
	StateFailed
)

// String returns the state name.
func (s SamplerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingMetadata:
		return "awaiting_metadata"
	case StateAwaitingData:
		return "awaiting_data"
	case StateCapturingFrame:
		return "capturing_frame"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SamplerMachine sequences a frame-sampler run.
//
// Frame i+1 can only be requested after frame i's capture has completed:
// BeginCapture(i) requires that exactly i frames are captured and that no
// capture is in flight.
type SamplerMachine struct {
	state     SamplerState
	dataReady bool
	inFlight  bool
	frame     int // index of the frame being or last captured
	captured  int
	total     int
	err       error
}

// NewSamplerMachine creates a machine expecting total captures.
func NewSamplerMachine(total int) *SamplerMachine {
	return &SamplerMachine{state: StateIdle, frame: -1, total: total}
}

// State returns the current state.
func (m *SamplerMachine) State() SamplerState { return m.state }

// Frame returns the index of the current (or last) capture, -1 before the first.
func (m *SamplerMachine) Frame() int { return m.frame }

// Captured returns the number of completed captures.
func (m *SamplerMachine) Captured() int { return m.captured }

// Err returns the failure cause once the machine is Failed.
func (m *SamplerMachine) Err() error { return m.err }

// Start moves Idle to AwaitingMetadata.
func (m *SamplerMachine) Start() error {
	return m.transition(StateIdle, StateAwaitingMetadata)
}

// MetadataLoaded moves AwaitingMetadata to AwaitingData.
func (m *SamplerMachine) MetadataLoaded() error {
	return m.transition(StateAwaitingMetadata, StateAwaitingData)
}

// DataLoaded marks the frame data as available for seeking.
func (m *SamplerMachine) DataLoaded() error {
	if m.state != StateAwaitingData || m.dataReady {
		return m.illegal("data loaded")
	}
	m.dataReady = true
	return nil
}

// BeginCapture enters CapturingFrame(i).
func (m *SamplerMachine) BeginCapture(i int) error {
	switch {
	case m.state == StateAwaitingData && m.dataReady && i == 0:
	case m.state == StateCapturingFrame && !m.inFlight && i == m.captured && i < m.total:
	default:
		return m.illegal(fmt.Sprintf("begin capture %d", i))
	}
	m.state = StateCapturingFrame
	m.inFlight = true
	m.frame = i
	return nil
}

// CaptureDone completes CapturingFrame(i).
func (m *SamplerMachine) CaptureDone(i int) error {
	if m.state != StateCapturingFrame || !m.inFlight || i != m.frame {
		return m.illegal(fmt.Sprintf("capture done %d", i))
	}
	m.inFlight = false
	m.captured++
	return nil
}

// Finish moves to Done once every frame is captured.
func (m *SamplerMachine) Finish() error {
	if m.state != StateCapturingFrame || m.inFlight || m.captured != m.total {
		return m.illegal("finish")
	}
	m.state = StateDone
	return nil
}

// Fail moves any non-terminal state to Failed and records the cause.
func (m *SamplerMachine) Fail(cause error) error {
	if m.state == StateDone || m.state == StateFailed {
		return m.illegal("fail")
	}
	m.state = StateFailed
	m.inFlight = false
	m.err = cause
	return nil
}

func (m *SamplerMachine) transition(from, to SamplerState) error {
	if m.state != from {
		return m.illegal(to.String())
	}
	m.state = to
	return nil
}

func (m *SamplerMachine) illegal(step string) error {
	return fmt.Errorf("%w: %s from %s", ErrIllegalTransition, step, m.state)
}
