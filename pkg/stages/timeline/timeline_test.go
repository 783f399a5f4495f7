package timeline

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/user/framegrid/pkg/pipeline"
)

func TestCompute_SixteenSeconds(t *testing.T) {
	got, err := Compute(16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []float64{0, 2, 4, 6, 8, 10, 12, 14, 16}
	if len(got) != len(expected) {
		t.Fatalf("expected %d timestamps, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("timeline[%d]: expected %v, got %v", i, expected[i], got[i])
		}
	}
	if got.Interval() != 2 {
		t.Errorf("expected interval 2, got %v", got.Interval())
	}
}

func TestCompute_Properties(t *testing.T) {
	durations := []float64{0.001, 0.5, 1, 3.3333, 9.97, 16, 59.94, 3600, 86400.123}

	for _, d := range durations {
		got, err := Compute(d)
		if err != nil {
			t.Fatalf("duration %v: unexpected error: %v", d, err)
		}
		if len(got) != pipeline.GridFrames {
			t.Errorf("duration %v: expected %d entries, got %d", d, pipeline.GridFrames, len(got))
		}
		if got[0] != 0 {
			t.Errorf("duration %v: first entry should be 0, got %v", d, got[0])
		}
		if math.Abs(got[len(got)-1]-d) > 1e-9*d {
			t.Errorf("duration %v: last entry should equal duration, got %v", d, got[len(got)-1])
		}
		for i := 1; i < len(got); i++ {
			if got[i] < got[i-1] {
				t.Errorf("duration %v: timeline decreases at %d: %v < %v", d, i, got[i], got[i-1])
			}
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	a, _ := Compute(12.345)
	b, _ := Compute(12.345)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("timeline[%d] differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestCompute_InvalidDuration(t *testing.T) {
	for _, d := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := Compute(d); !errors.Is(err, pipeline.ErrInvalidDuration) {
			t.Errorf("duration %v: expected ErrInvalidDuration, got %v", d, err)
		}
	}
}

func TestStage_Execute(t *testing.T) {
	got, err := NewStage().Execute(context.Background(), 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[1] != 1 {
		t.Errorf("expected 1s interval, got %v", got[1])
	}
}
