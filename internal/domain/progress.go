package domain

// Status is the progress tier of a day's total relative to the goal.
type Status string

const (
	// StatusUnset means no goal is configured, so progress is undefined.
	StatusUnset Status = ""
	StatusLow   Status = "low"
	StatusNear  Status = "near"
	StatusHit   Status = "hit"
)

// Tier thresholds, as fractions of the goal.
const (
	nearNumerator   = 6
	nearDenominator = 10
)

// Progress describes how far a total is toward the goal.
type Progress struct {
	Current int     `json:"current"`
	Goal    int     `json:"goal"`
	Ratio   float64 `json:"ratio"`
	Status  Status  `json:"status"`
}

// Configured reports whether a goal exists to measure against.
func (p Progress) Configured() bool {
	return p.Status != StatusUnset
}

// Classify returns the status tier for current against goal. A boundary value
// belongs to the tier above it: 60 of 100 is near, 100 of 100 is hit.
func Classify(current, goal int) Status {
	if goal <= 0 {
		return StatusUnset
	}
	switch {
	case current >= goal:
		return StatusHit
	case current >= nearThreshold(goal):
		return StatusNear
	default:
		return StatusLow
	}
}

// nearThreshold is the smallest total at or above the near fraction of goal,
// computed without overflowing for any positive goal.
func nearThreshold(goal int) int {
	q, r := goal/nearDenominator, goal%nearDenominator
	return q*nearNumerator + (r*nearNumerator+nearDenominator-1)/nearDenominator
}

// ProgressOf computes the capped ratio and tier for current against goal.
func ProgressOf(current, goal int) Progress {
	p := Progress{Current: current, Goal: goal, Status: Classify(current, goal)}
	if p.Status == StatusUnset {
		return p
	}
	p.Ratio = float64(current) / float64(goal)
	if p.Ratio > 1 {
		p.Ratio = 1
	}
	if p.Ratio < 0 {
		p.Ratio = 0
	}
	return p
}

// Label returns the short text the views show for a status.
func (s Status) Label() string {
	switch s {
	case StatusHit:
		return "Goal hit"
	case StatusNear:
		return "Nearly there"
	case StatusLow:
		return "Low"
	default:
		return "No goal set"
	}
}
