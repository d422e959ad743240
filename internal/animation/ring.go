package animation

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// FPS is the frame rate the UI drives sequencers at.
const FPS = 60

const settleEpsilon = 0.0005

// Ring springs the progress indicator toward its target ratio.
type Ring struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

// NewRing returns a ring resting at ratio.
func NewRing(ratio float64) *Ring {
	return &Ring{
		spring: harmonica.NewSpring(harmonica.FPS(FPS), 6.0, 0.8),
		pos:    ratio,
		target: ratio,
	}
}

// SetTarget sets the ratio to spring toward, clamped to [0, 1].
func (r *Ring) SetTarget(ratio float64) {
	r.target = math.Max(0, math.Min(1, ratio))
}

// Target returns the ratio being sprung toward.
func (r *Ring) Target() float64 { return r.target }

// Value returns the displayed ratio.
func (r *Ring) Value() float64 { return r.pos }

// Settled reports whether the ring has come to rest on its target.
func (r *Ring) Settled() bool {
	return r.pos == r.target && r.vel == 0
}

// Update advances the spring by one frame and returns the displayed ratio.
func (r *Ring) Update() float64 {
	if r.Settled() {
		return r.pos
	}
	r.pos, r.vel = r.spring.Update(r.pos, r.vel, r.target)
	if math.Abs(r.pos-r.target) < settleEpsilon && math.Abs(r.vel) < settleEpsilon {
		r.pos, r.vel = r.target, 0
	}
	return r.pos
}
