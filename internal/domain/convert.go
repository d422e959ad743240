package domain

import (
	"errors"
	"math"
)

// Weight units accepted by the goal helper.
const (
	UnitKg = "kg"
	UnitLb = "lb"
)

const lbToKg = 0.45359237

// GramsPerKg is the protein target per kilogram of body weight used by SuggestGoal.
const GramsPerKg = 1.7

// ErrInvalidUnit indicates a weight unit other than "kg" or "lb".
var ErrInvalidUnit = errors.New("unit must be \"kg\" or \"lb\"")

// ErrInvalidWeight indicates a body weight that is not a positive number.
var ErrInvalidWeight = errors.New("weight must be > 0")

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == UnitKg && to == UnitLb {
		return v / lbToKg
	}
	if from == UnitLb && to == UnitKg {
		return v * lbToKg
	}
	return v
}

// SuggestGoal returns a daily protein goal in grams for a body weight,
// rounded to the nearest gram.
func SuggestGoal(weight float64, unit string) (int, error) {
	if unit != UnitKg && unit != UnitLb {
		return 0, ErrInvalidUnit
	}
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return 0, ErrInvalidWeight
	}
	kg := ConvertWeight(weight, unit, UnitKg)
	return int(math.Round(kg * GramsPerKg)), nil
}
