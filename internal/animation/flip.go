package animation

import (
	"strconv"
	"time"
)

// FlipHalf is the duration of each half of a flip.
const FlipHalf = 150 * time.Millisecond

// FlipPhase is the state of a FlipDigit.
type FlipPhase int

const (
	// FlipIdle shows a single glyph at rest.
	FlipIdle FlipPhase = iota
	// FlipFoldTop folds the top flap away; the old glyph is still shown.
	FlipFoldTop
	// FlipRevealBottom drops the bottom flap into place showing the new glyph.
	FlipRevealBottom
)

func (p FlipPhase) String() string {
	switch p {
	case FlipFoldTop:
		return "fold-top"
	case FlipRevealBottom:
		return "reveal-bottom"
	default:
		return "idle"
	}
}

// FlipDigit is a split-flap digit: Idle → FoldTop → RevealBottom → Idle.
// The shown glyph swaps between the two halves.
type FlipDigit struct {
	shown   rune
	pending rune
	phase   FlipPhase
	elapsed time.Duration
}

// NewFlipDigit returns a digit resting on r.
func NewFlipDigit(r rune) FlipDigit {
	return FlipDigit{shown: r, pending: r}
}

// Glyph returns the glyph currently shown on both flaps.
func (d FlipDigit) Glyph() rune { return d.shown }

// Phase returns the current state.
func (d FlipDigit) Phase() FlipPhase { return d.phase }

// Set asks the digit to flip to r. A change that arrives mid-flip is picked
// up by the running flip, or by another flip once this one lands.
func (d *FlipDigit) Set(r rune) {
	d.pending = r
	if d.phase == FlipIdle && r != d.shown {
		d.phase = FlipFoldTop
		d.elapsed = 0
	}
}

// Advance moves the flip forward by dt.
func (d *FlipDigit) Advance(dt time.Duration) {
	if d.phase == FlipIdle {
		return
	}
	d.elapsed += dt
	for d.phase != FlipIdle && d.elapsed >= FlipHalf {
		d.elapsed -= FlipHalf
		switch d.phase {
		case FlipFoldTop:
			d.shown = d.pending
			d.phase = FlipRevealBottom
		case FlipRevealBottom:
			if d.pending != d.shown {
				d.phase = FlipFoldTop
			} else {
				d.phase = FlipIdle
				d.elapsed = 0
			}
		}
	}
}

// Fraction returns how far through the current phase the digit is, in [0, 1].
func (d FlipDigit) Fraction() float64 {
	if d.phase == FlipIdle {
		return 0
	}
	return float64(d.elapsed) / float64(FlipHalf)
}

// Angles returns the top and bottom flap rotation in degrees. At rest both
// are 0; the top folds to -90 with an ease-in and the bottom falls from 90
// with an ease-out.
func (d FlipDigit) Angles() (top, bottom float64) {
	t := d.Fraction()
	switch d.phase {
	case FlipFoldTop:
		return -90 * t * t, 0
	case FlipRevealBottom:
		out := 1 - (1-t)*(1-t)
		return 0, 90 * (1 - out)
	default:
		return 0, 0
	}
}

// SplitFlap is a row of flip digits showing a non-negative integer,
// right-aligned so that units stay in the same column.
type SplitFlap struct {
	digits []FlipDigit
	value  int
}

// NewSplitFlap returns a display resting on v.
func NewSplitFlap(v int) *SplitFlap {
	s := &SplitFlap{value: v}
	for _, r := range strconv.Itoa(v) {
		s.digits = append(s.digits, NewFlipDigit(r))
	}
	return s
}

// Value returns the value the display is flipping to.
func (s *SplitFlap) Value() int { return s.value }

// SetValue flips each changed digit. New leading digits flip in from blank;
// dropped leading digits disappear.
func (s *SplitFlap) SetValue(v int) {
	s.value = v
	text := []rune(strconv.Itoa(v))
	switch n := len(text) - len(s.digits); {
	case n > 0:
		grown := make([]FlipDigit, 0, len(text))
		for i := 0; i < n; i++ {
			grown = append(grown, NewFlipDigit(' '))
		}
		s.digits = append(grown, s.digits...)
	case n < 0:
		s.digits = s.digits[-n:]
	}
	for i, r := range text {
		s.digits[i].Set(r)
	}
}

// Advance moves every digit forward by dt and reports whether any is still
// flipping.
func (s *SplitFlap) Advance(dt time.Duration) bool {
	for i := range s.digits {
		s.digits[i].Advance(dt)
	}
	return s.Animating()
}

// Animating reports whether any digit is mid-flip.
func (s *SplitFlap) Animating() bool {
	for _, d := range s.digits {
		if d.phase != FlipIdle {
			return true
		}
	}
	return false
}

// Digits returns a copy of the digits, most significant first.
func (s *SplitFlap) Digits() []FlipDigit {
	out := make([]FlipDigit, len(s.digits))
	copy(out, s.digits)
	return out
}

// String returns the glyphs currently shown.
func (s *SplitFlap) String() string {
	rs := make([]rune, len(s.digits))
	for i, d := range s.digits {
		rs[i] = d.shown
	}
	return string(rs)
}
