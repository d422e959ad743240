// Package animation holds the frame-driven sequencers behind the animated
// displays. Sequencers only hold the value they were told to show; they
// never read from or write to the ledger.
package animation

import "time"

const (
	// StepInterval is the time between counter steps.
	StepInterval = 40 * time.Millisecond
	maxSteps     = 30
)

// Counter walks a displayed number toward a target in at most 30 steps.
type Counter struct {
	value   int
	target  int
	step    int
	elapsed time.Duration
	running bool
}

// NewCounter returns a counter resting at v.
func NewCounter(v int) *Counter {
	return &Counter{value: v, target: v}
}

// Value returns the displayed number.
func (c *Counter) Value() int { return c.value }

// Target returns the number the counter is heading to.
func (c *Counter) Target() int { return c.target }

// Running reports whether steps remain.
func (c *Counter) Running() bool { return c.running }

// Animate starts stepping from the current value toward target.
func (c *Counter) Animate(target int) {
	c.target = target
	c.elapsed = 0
	delta := target - c.value
	if delta == 0 {
		c.running = false
		return
	}
	dist := abs(delta)
	steps := min(dist, maxSteps)
	c.step = max(1, dist/steps)
	if delta < 0 {
		c.step = -c.step
	}
	c.running = true
}

// Jump shows v immediately.
func (c *Counter) Jump(v int) {
	c.value, c.target = v, v
	c.running = false
	c.elapsed = 0
}

// Advance moves the counter forward by dt, taking one step per
// StepInterval. It reports whether the counter is still running.
func (c *Counter) Advance(dt time.Duration) bool {
	if !c.running {
		return false
	}
	c.elapsed += dt
	for c.running && c.elapsed >= StepInterval {
		c.elapsed -= StepInterval
		c.value += c.step
		if (c.step > 0 && c.value >= c.target) || (c.step < 0 && c.value <= c.target) {
			c.value = c.target
			c.running = false
			c.elapsed = 0
		}
	}
	return c.running
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
