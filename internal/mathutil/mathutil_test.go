package mathutil

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi float64
		expected  float64
	}{
		{20, 5, 25, 20},
		{-20, 5, 25, 5},
		{40, 5, 25, 25},
		{5, 5, 25, 5},
		{25, 5, 25, 25},
		{math.NaN(), 5, 25, 5},
	}

	for _, tt := range tests {
		result := Clamp(tt.v, tt.lo, tt.hi)
		if result != tt.expected {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, result, tt.expected)
		}
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		v        float64
		places   int
		expected float64
	}{
		{17.1428, 2, 17.14},
		{1.905, 1, 1.9},
		{-3.456, 1, -3.5},
		{100, 0, 100},
	}

	for _, tt := range tests {
		result := RoundTo(tt.v, tt.places)
		if math.Abs(result-tt.expected) > 1e-9 {
			t.Errorf("RoundTo(%v, %d) = %v, want %v", tt.v, tt.places, result, tt.expected)
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(1.2, 2.0, 0); got != 1.2 {
		t.Errorf("Lerp(1.2, 2.0, 0) = %v", got)
	}
	if got := Lerp(1.2, 2.0, 1); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("Lerp(1.2, 2.0, 1) = %v", got)
	}
	if got := Lerp(-110, 110, 0.5); got != 0 {
		t.Errorf("Lerp(-110, 110, 0.5) = %v", got)
	}
}
