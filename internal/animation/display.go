package animation

import "time"

// FrameInterval is the time between frames at FPS.
const FrameInterval = time.Second / FPS

// Display combines the counter, the split-flap digits and the ring for the
// home screen. The counter walks the number; the digits flip to whatever the
// counter shows.
type Display struct {
	Counter *Counter
	Flap    *SplitFlap
	Ring    *Ring
}

// NewDisplay returns a display resting on total and ratio.
func NewDisplay(total int, ratio float64) *Display {
	return &Display{
		Counter: NewCounter(total),
		Flap:    NewSplitFlap(total),
		Ring:    NewRing(ratio),
	}
}

// Show starts animating toward total and ratio.
func (d *Display) Show(total int, ratio float64) {
	d.Counter.Animate(total)
	d.Ring.SetTarget(ratio)
}

// Frame advances everything by one frame of dt and reports whether another
// frame is needed.
func (d *Display) Frame(dt time.Duration) bool {
	d.Counter.Advance(dt)
	if d.Flap.Value() != d.Counter.Value() {
		d.Flap.SetValue(d.Counter.Value())
	}
	d.Flap.Advance(dt)
	d.Ring.Update()
	return d.Animating()
}

// Animating reports whether any part is still moving.
func (d *Display) Animating() bool {
	return d.Counter.Running() || d.Flap.Animating() || !d.Ring.Settled()
}
