// Package timeline schedules discrete state changes over time and answers
// what a subject looks like at any instant.
//
// A Timeline is a value. Queue, Interrupt and Advance return a new Timeline
// and never modify the receiver, so an older value stays valid for diffing.
// Time is always supplied by the caller; successive calls to Advance must not
// go backwards.
package timeline

import (
	"slices"
	"time"
)

// Event is a single scheduled transition into Target.
type Event[T comparable] struct {
	// Duration is the time taken to move into Target.
	Duration time.Duration
	Target   T
	// Dwell is extra time spent at Target before the next event begins.
	Dwell time.Duration
}

// Line is one uninterrupted run of events. It starts at StartsAt from the
// value it inherited when it was spliced into the timetable.
type Line[T comparable] struct {
	StartsAt time.Time
	From     T
	First    Event[T]
	Rest     []Event[T]
}

// Events returns every event of the line in order.
func (l Line[T]) Events() []Event[T] {
	events := make([]Event[T], 0, len(l.Rest)+1)
	events = append(events, l.First)
	return append(events, l.Rest...)
}

// FirstArrival is when the first event of the line reaches its target.
func (l Line[T]) FirstArrival() time.Time {
	return l.StartsAt.Add(l.First.Duration)
}

// Last returns the final event of the line.
func (l Line[T]) Last() Event[T] {
	if len(l.Rest) == 0 {
		return l.First
	}
	return l.Rest[len(l.Rest)-1]
}

// End is when the last event of the line has arrived and finished dwelling.
func (l Line[T]) End() time.Time {
	end := l.StartsAt.Add(l.First.Duration + l.First.Dwell)
	for _, e := range l.Rest {
		end = end.Add(e.Duration + e.Dwell)
	}
	return end
}

// Timetable is the ordered list of lines, oldest first. Only the last line
// can extend into the future; earlier lines are history kept for queries.
type Timetable[T comparable] []Line[T]

// governing returns the index of the line in charge at t, or -1 when t is
// before every line.
func (tt Timetable[T]) governing(t time.Time) int {
	for i := len(tt) - 1; i >= 0; i-- {
		if !tt[i].StartsAt.After(t) {
			return i
		}
	}
	return -1
}

// Timeline holds the scheduled history and future of one animated subject.
type Timeline[T comparable] struct {
	initial      T
	origin       time.Time
	now          time.Time
	started      bool
	events       Timetable[T]
	queued       *Schedule[T]
	interruption []Schedule[T]
	running      bool
}

// Init creates a timeline resting at initial.
func Init[T comparable](initial T) Timeline[T] {
	return Timeline[T]{initial: initial}
}

// Initial is the state the timeline was created with.
func (tl Timeline[T]) Initial() T { return tl.initial }

// Now is the time of the last Advance.
func (tl Timeline[T]) Now() time.Time { return tl.now }

// Running reports whether further advances are expected to change anything.
func (tl Timeline[T]) Running() bool { return tl.running }

// Events returns a copy of the timetable.
func (tl Timeline[T]) Events() Timetable[T] { return slices.Clone(tl.events) }

// Queued returns the schedule waiting for the live line to finish.
func (tl Timeline[T]) Queued() (Schedule[T], bool) {
	if tl.queued == nil {
		return Schedule[T]{}, false
	}
	return *tl.queued, true
}

// Interruptions returns the pending interruptions, most recent first.
func (tl Timeline[T]) Interruptions() []Schedule[T] { return slices.Clone(tl.interruption) }

// At returns the timeline as it would be observed at t without applying any
// pending queue or interruption. It is meant for what-if projections.
func (tl Timeline[T]) At(t time.Time) Timeline[T] {
	tl.now = t
	return tl
}

func clampDuration(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
