package animator

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledanim/curve"
	"github.com/matt-g-everett/ledanim/sprite"
	"github.com/matt-g-everett/ledanim/timeline"
)

// Named durations for common transitions.
const (
	Immediately = time.Duration(0)
	VeryQuickly = 100 * time.Millisecond
	Quickly     = 200 * time.Millisecond
	Slowly      = 400 * time.Millisecond
	VerySlowly  = 500 * time.Millisecond
)

// GoTo interrupts whatever tl is doing and heads for v over d.
func GoTo[T comparable](tl timeline.Timeline[T], d time.Duration, v T) timeline.Timeline[T] {
	return tl.Interrupt(timeline.TransitionTo(d, v))
}

func eased(progress float64) float64 {
	tr := curve.Transition{From: 0, To: 1, Duration: time.Second, Departure: curve.DefaultDeparture, Arrival: curve.DefaultArrival}
	p, _ := tr.At(progress)
	return p
}

var colorCurve = timeline.Curve[colorful.Color, colorful.Color]{
	Rest: func(c colorful.Color, _ time.Duration) colorful.Color { return c },
	Transition: func(from colorful.Color, _, target colorful.Color, span timeline.Span) colorful.Color {
		return from.BlendHcl(target, eased(span.Progress)).Clamped()
	},
}

// Color blends between state colours in HCL space on the default ease.
func Color[T comparable](tl timeline.Timeline[T], lookup func(T) colorful.Color) colorful.Color {
	return timeline.Foldp(tl, lookup, colorCurve)
}

var linearCurve = timeline.Curve[float64, float64]{
	Rest: func(v float64, _ time.Duration) float64 { return v },
	Transition: func(from float64, _, target float64, span timeline.Span) float64 {
		return from + (target-from)*span.Progress
	},
}

// Linear interpolates between state values without easing.
func Linear[T comparable](tl timeline.Timeline[T], lookup func(T) float64) float64 {
	return timeline.Foldp(tl, lookup, linearCurve)
}

// Step picks the sprite frame for the state being entered, or the rest cycle
// of the state already reached.
func Step[T comparable, F any](tl timeline.Timeline[T], lookup func(T) sprite.Frames[F]) F {
	seg := tl.Segment()
	frames := lookup(seg.To)
	if seg.Resting {
		return frames.Step(1, seg.RestElapsed)
	}
	return frames.Step(seg.Progress, 0)
}
