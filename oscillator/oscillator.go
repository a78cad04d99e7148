// Package oscillator builds periodic values used while a subject rests in a
// state: a pulsing brightness, a rotating hue, a breathing glow.
package oscillator

import (
	"math"
	"slices"
	"time"
)

// Pause holds the oscillator at phase At for Duration every period.
type Pause struct {
	Duration time.Duration
	At       float64
}

// Oscillator maps a unit phase onto a value. It is either resting at a
// constant or driven by a shape function.
type Oscillator struct {
	resting bool
	value   float64
	fn      func(float64) float64
	pauses  []Pause
	shift   float64
}

// Resting never varies.
func Resting(v float64) Oscillator {
	return Oscillator{resting: true, value: v}
}

// Wrap ramps linearly from a to b and jumps back to a.
func Wrap(a, b float64) Oscillator {
	return Interpolate(func(p float64) float64 {
		return a + (b-a)*p
	})
}

// Wave swings smoothly from a to b and back on a cosine.
func Wave(a, b float64) Oscillator {
	return Interpolate(func(p float64) float64 {
		return a + (b-a)*(1-math.Cos(2*math.Pi*p))/2
	})
}

// Zigzag ramps linearly from a to b and back again.
func Zigzag(a, b float64) Oscillator {
	return Interpolate(func(p float64) float64 {
		if p < 0.5 {
			return a + (b-a)*2*p
		}
		return a + (b-a)*2*(1-p)
	})
}

// Interpolate drives the oscillator with an arbitrary unit-phase function.
func Interpolate(fn func(float64) float64) Oscillator {
	return Oscillator{fn: fn}
}

// Shift offsets the phase by x before the shape is evaluated.
func (o Oscillator) Shift(x float64) Oscillator {
	o.shift = wrapPhase(o.shift + x)
	return o
}

// Pause inserts a hold of d when the phase reaches at. The period grows by d.
func (o Oscillator) Pause(d time.Duration, at float64) Oscillator {
	if d < 0 {
		d = 0
	}
	pauses := make([]Pause, 0, len(o.pauses)+1)
	pauses = append(pauses, Pause{Duration: d, At: wrapPhase(at)})
	o.pauses = append(pauses, o.pauses...)
	return o
}

// At evaluates the shape at phase p.
func (o Oscillator) At(p float64) float64 {
	if o.resting || o.fn == nil {
		return o.value
	}
	return o.fn(wrapPhase(p + o.shift))
}

// pauseTotal is the time added to each period by pauses.
func (o Oscillator) pauseTotal() time.Duration {
	var total time.Duration
	for _, p := range o.pauses {
		total += p.Duration
	}
	return total
}

// sortedPauses orders pauses by phase; ties keep insertion order.
func (o Oscillator) sortedPauses() []Pause {
	pauses := slices.Clone(o.pauses)
	slices.SortStableFunc(pauses, func(a, b Pause) int {
		switch {
		case a.At < b.At:
			return -1
		case a.At > b.At:
			return 1
		}
		return 0
	})
	return pauses
}

// wrapPhase wraps p into [0,1], leaving 1 itself alone so a finished period
// can hold its end value.
func wrapPhase(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	if p < 0 || p > 1 {
		p -= math.Floor(p)
	}
	return p
}
