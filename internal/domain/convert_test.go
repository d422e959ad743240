package domain_test

import (
	"errors"
	"math"
	"testing"

	"proteinflip/internal/domain"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestConvertWeight(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from, to string
		want     float64
	}{
		{"kg to lb", 100.0, "kg", "lb", 220.46226218},
		{"lb to kg", 220.46226218, "lb", "kg", 100.0},
		{"same unit kg", 80.0, "kg", "kg", 80.0},
		{"same unit lb", 180.0, "lb", "lb", 180.0},
		{"unknown units", 50.0, "st", "kg", 50.0},
		{"zero value", 0, "kg", "lb", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ConvertWeight(tc.value, tc.from, tc.to)
			if !almostEqual(got, tc.want, 0.001) {
				t.Errorf("ConvertWeight(%v, %q, %q) = %v; want %v",
					tc.value, tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestSuggestGoal(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		unit   string
		want   int
	}{
		{"80 kg", 80, "kg", 136},
		{"70 kg", 70, "kg", 119},
		{"176 lb", 176, "lb", 136},
		{"rounds half up", 0.5, "kg", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := domain.SuggestGoal(tc.weight, tc.unit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("SuggestGoal(%v, %q) = %d; want %d", tc.weight, tc.unit, got, tc.want)
			}
		})
	}
}

func TestSuggestGoal_Invalid(t *testing.T) {
	if _, err := domain.SuggestGoal(80, "st"); !errors.Is(err, domain.ErrInvalidUnit) {
		t.Errorf("expected ErrInvalidUnit, got %v", err)
	}
	for _, w := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		if _, err := domain.SuggestGoal(w, "kg"); !errors.Is(err, domain.ErrInvalidWeight) {
			t.Errorf("expected error for weight %v", w)
		}
	}
}
