package pipeline

import (
	"errors"
	"testing"
)

func TestSamplerMachine_HappyPath(t *testing.T) {
	m := NewSamplerMachine(GridFrames)

	if m.State() != StateIdle {
		t.Fatalf("initial state: expected idle, got %s", m.State())
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.MetadataLoaded(); err != nil {
		t.Fatalf("MetadataLoaded: %v", err)
	}
	if err := m.DataLoaded(); err != nil {
		t.Fatalf("DataLoaded: %v", err)
	}

	for i := 0; i < GridFrames; i++ {
		if err := m.BeginCapture(i); err != nil {
			t.Fatalf("BeginCapture(%d): %v", i, err)
		}
		if m.State() != StateCapturingFrame || m.Frame() != i {
			t.Fatalf("expected capturing_frame(%d), got %s(%d)", i, m.State(), m.Frame())
		}
		if err := m.CaptureDone(i); err != nil {
			t.Fatalf("CaptureDone(%d): %v", i, err)
		}
	}

	if err := m.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if m.State() != StateDone {
		t.Errorf("expected done, got %s", m.State())
	}
	if m.Captured() != GridFrames {
		t.Errorf("expected %d captured, got %d", GridFrames, m.Captured())
	}
}

func TestSamplerMachine_NextFrameBeforeCaptureCompletes(t *testing.T) {
	m := readyMachine(t)

	if err := m.BeginCapture(0); err != nil {
		t.Fatalf("BeginCapture(0): %v", err)
	}
	err := m.BeginCapture(1)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("expected ErrIllegalTransition, got %v", err)
	}
}

func TestSamplerMachine_IllegalTransitions(t *testing.T) {
	tests := []struct {
		name string
		step func(m *SamplerMachine) error
	}{
		{"metadata before start", func(m *SamplerMachine) error { return m.MetadataLoaded() }},
		{"data before metadata", func(m *SamplerMachine) error {
			m.Start()
			return m.DataLoaded()
		}},
		{"capture before data", func(m *SamplerMachine) error {
			m.Start()
			m.MetadataLoaded()
			return m.BeginCapture(0)
		}},
		{"skip a frame", func(m *SamplerMachine) error {
			m.Start()
			m.MetadataLoaded()
			m.DataLoaded()
			m.BeginCapture(0)
			m.CaptureDone(0)
			return m.BeginCapture(2)
		}},
		{"finish early", func(m *SamplerMachine) error {
			m.Start()
			m.MetadataLoaded()
			m.DataLoaded()
			m.BeginCapture(0)
			m.CaptureDone(0)
			return m.Finish()
		}},
		{"done wrong frame", func(m *SamplerMachine) error {
			m.Start()
			m.MetadataLoaded()
			m.DataLoaded()
			m.BeginCapture(0)
			return m.CaptureDone(1)
		}},
		{"start twice", func(m *SamplerMachine) error {
			m.Start()
			return m.Start()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSamplerMachine(GridFrames)
			if err := tt.step(m); !errors.Is(err, ErrIllegalTransition) {
				t.Errorf("expected ErrIllegalTransition, got %v", err)
			}
		})
	}
}

func TestSamplerMachine_Fail(t *testing.T) {
	m := NewSamplerMachine(GridFrames)
	m.Start()

	cause := errors.New("decode failed")
	if err := m.Fail(cause); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	if m.State() != StateFailed {
		t.Errorf("expected failed, got %s", m.State())
	}
	if m.Err() != cause {
		t.Errorf("expected cause to be recorded, got %v", m.Err())
	}
	if err := m.MetadataLoaded(); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("expected no transitions out of failed, got %v", err)
	}
	if err := m.Fail(cause); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("expected second Fail to be rejected, got %v", err)
	}
}

func TestSamplerState_String(t *testing.T) {
	if StateCapturingFrame.String() != "capturing_frame" {
		t.Errorf("unexpected name %q", StateCapturingFrame.String())
	}
	if SamplerState(99).String() != "unknown" {
		t.Errorf("unexpected name %q", SamplerState(99).String())
	}
}

func readyMachine(t *testing.T) *SamplerMachine {
	t.Helper()
	m := NewSamplerMachine(GridFrames)
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}
	if err := m.MetadataLoaded(); err != nil {
		t.Fatal(err)
	}
	if err := m.DataLoaded(); err != nil {
		t.Fatal(err)
	}
	return m
}
