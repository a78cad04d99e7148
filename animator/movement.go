// Package animator turns timelines into rendered values: positions with
// velocity, colours, plain numbers and sprite frames. It also bundles the
// timelines of a model so a render loop can advance them together.
package animator

import (
	"time"

	"github.com/matt-g-everett/ledanim/curve"
	"github.com/matt-g-everett/ledanim/oscillator"
	"github.com/matt-g-everett/ledanim/timeline"
)

type movementKind int

const (
	positionKind movementKind = iota
	oscillateKind
)

// Movement is the value a state projects onto for Move. It is either a fixed
// position or an oscillation, each with its own personality.
type Movement struct {
	kind      movementKind
	departure curve.Departure
	arrival   curve.Arrival
	value     float64
	osc       oscillator.Timed
}

// At is a fixed position with the default personality.
func At(v float64) Movement {
	return Position(curve.DefaultDeparture, curve.DefaultArrival, v)
}

// Position is a fixed position.
func Position(d curve.Departure, a curve.Arrival, v float64) Movement {
	return Movement{kind: positionKind, departure: d.Clamped(), arrival: a.Clamped(), value: v}
}

// Oscillate moves to the start of osc and runs it while resting.
func Oscillate(d curve.Departure, a curve.Arrival, osc oscillator.Timed) Movement {
	return Movement{kind: oscillateKind, departure: d.Clamped(), arrival: a.Clamped(), osc: osc}
}

// Departure is the personality used when leaving this movement.
func (m Movement) Departure() curve.Departure { return m.departure }

// Arrival is the personality used when arriving at this movement.
func (m Movement) Arrival() curve.Arrival { return m.arrival }

// Target is where a transition into m heads for.
func (m Movement) Target() float64 {
	if m.kind == oscillateKind {
		return m.osc.Start()
	}
	return m.value
}

// Rest is the motion after resting at m for elapsed.
func (m Movement) Rest(elapsed time.Duration) Motion {
	if m.kind == oscillateKind {
		return Motion{Position: m.osc.Value(elapsed), Velocity: m.osc.Velocity(elapsed)}
	}
	return Motion{Position: m.value}
}

// Settled reports whether m stops changing after resting for elapsed. A
// wobbly arrival is still springing until its settle time has passed.
func (m Movement) Settled(elapsed time.Duration) bool {
	settle := m.arrival.Settle()
	if elapsed < settle {
		return false
	}
	return m.kind != oscillateKind || m.osc.Done(elapsed-settle)
}

// Motion is a position and its velocity in units per second.
type Motion struct {
	Position float64
	Velocity float64
}

var motionCurve = timeline.Curve[Movement, Motion]{
	Rest: func(m Movement, elapsed time.Duration) Motion {
		return m.Rest(elapsed)
	},
	Transition: func(from Motion, previous, target Movement, span timeline.Span) Motion {
		pos, vel := transition(from, previous, target, span).AtElapsed(span.Elapsed)
		return Motion{Position: pos, Velocity: vel}
	},
	Overrun: func(from Motion, previous, target Movement, span timeline.Span) time.Duration {
		return transition(from, previous, target, span).Overrun()
	},
}

func transition(from Motion, previous, target Movement, span timeline.Span) curve.Transition {
	return curve.Transition{
		From:      from.Position,
		To:        target.Target(),
		Velocity:  from.Velocity,
		Duration:  span.Duration,
		Departure: previous.departure,
		Arrival:   target.arrival,
	}
}

// Move evaluates the timeline as a position with velocity.
func Move[T comparable](tl timeline.Timeline[T], lookup func(T) Movement) Motion {
	return timeline.Foldp(tl, lookup, motionCurve)
}
