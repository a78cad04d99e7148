package timeline

import "time"

// Segment describes the transition a timeline is in at some instant.
type Segment[T comparable] struct {
	// From is the state held before the transition began.
	From T
	// To is the target of the transition.
	To T
	// Start and Arrival bound the transition.
	Start   time.Time
	Arrival time.Time
	// Progress runs from 0 at Start to 1 at Arrival.
	Progress float64
	// Resting is set once To has been reached (or nothing has been
	// scheduled yet), RestElapsed then counts the time spent there.
	Resting     bool
	RestElapsed time.Duration

	line       int
	first      bool
	restBefore time.Duration
}

// Duration is the length of the transition.
func (s Segment[T]) Duration() time.Duration { return s.Arrival.Sub(s.Start) }

// Segment locates the transition straddling the timeline's now.
func (tl Timeline[T]) Segment() Segment[T] {
	return tl.segmentIn(tl.events, tl.now)
}

func (tl Timeline[T]) segmentIn(tt Timetable[T], t time.Time) Segment[T] {
	g := tt.governing(t)
	if g < 0 {
		from := tl.initial
		if len(tt) > 0 {
			from = tt[0].From
		}
		var rest time.Duration
		if tl.started && t.After(tl.origin) {
			rest = t.Sub(tl.origin)
		}
		return Segment[T]{
			From: from, To: from,
			Start: t, Arrival: t,
			Resting: true, RestElapsed: rest,
			line: -1,
		}
	}

	line := tt[g]
	from := line.From
	start := line.StartsAt
	var restBefore time.Duration
	if g == 0 && tl.started && start.After(tl.origin) {
		restBefore = start.Sub(tl.origin)
	}

	events := line.Events()
	for i, e := range events {
		arrival := start.Add(e.Duration)
		if t.Before(arrival) {
			return Segment[T]{
				From: from, To: e.Target,
				Start: start, Arrival: arrival,
				Progress:   float64(t.Sub(start)) / float64(e.Duration),
				line:       g,
				first:      i == 0,
				restBefore: restBefore,
			}
		}
		depart := arrival.Add(e.Dwell)
		if i == len(events)-1 || !t.After(depart) {
			return Segment[T]{
				From: from, To: e.Target,
				Start: start, Arrival: arrival,
				Progress: 1,
				Resting:  true, RestElapsed: t.Sub(arrival),
				line:       g,
				first:      i == 0,
				restBefore: restBefore,
			}
		}
		from, start, restBefore = e.Target, depart, e.Dwell
	}
	panic("unreachable: a line always has at least one event")
}

// currentIn is the state most recently arrived at by t.
func (tl Timeline[T]) currentIn(tt Timetable[T], t time.Time) T {
	seg := tl.segmentIn(tt, t)
	if seg.Resting {
		return seg.To
	}
	return seg.From
}

// Current is the state most recently arrived at. It switches to a new value
// when a transition completes.
func Current[T comparable](tl Timeline[T]) T {
	return tl.currentIn(tl.events, tl.now)
}

// Previous is the state held immediately before the latest transition began.
func Previous[T comparable](tl Timeline[T]) T {
	return tl.Segment().From
}

// Upcoming is the target of the latest transition, reached or not.
func Upcoming[T comparable](tl Timeline[T]) T {
	return tl.Segment().To
}

// Progress is how far the timeline is through its current transition.
func Progress[T comparable](tl Timeline[T]) float64 {
	return tl.Segment().Progress
}

// Span is the timing handed to a curve while a transition is under way.
type Span struct {
	Progress float64
	Elapsed  time.Duration
	Duration time.Duration
}

// Curve turns a timeline walk into a rendered state S from projected values V.
type Curve[V, S any] struct {
	// Rest is the state when resting at v, elapsed since arrival.
	Rest func(v V, elapsed time.Duration) S
	// Transition is the state part way from `from`, the state when the
	// transition began, towards target. previous is the projected value
	// being left.
	Transition func(from S, previous, target V, span Span) S
	// Overrun is optional. It reports how long a transition keeps moving
	// after its arrival; Transition is evaluated until then and Rest takes
	// over afterwards.
	Overrun func(from S, previous, target V, span Span) time.Duration
}

// Foldp evaluates the timeline at its now. lookup projects discrete states
// onto the values the curve understands. When the current transition began
// by interrupting another, the curve starts from wherever the interrupted
// transition had got to, so the output has no jump.
func Foldp[T comparable, V, S any](tl Timeline[T], lookup func(T) V, c Curve[V, S]) S {
	return foldIn(tl, tl.events, tl.now, lookup, c)
}

func foldIn[T comparable, V, S any](tl Timeline[T], tt Timetable[T], t time.Time, lookup func(T) V, c Curve[V, S]) S {
	seg := tl.segmentIn(tt, t)
	if seg.Resting && (seg.line < 0 || c.Overrun == nil) {
		return c.Rest(lookup(seg.To), seg.RestElapsed)
	}

	from := departure(tl, tt, seg, lookup, c)
	previous, target := lookup(seg.From), lookup(seg.To)
	span := Span{
		Progress: seg.Progress,
		Elapsed:  t.Sub(seg.Start),
		Duration: seg.Duration(),
	}
	if seg.Resting {
		over := c.Overrun(from, previous, target, span)
		if seg.RestElapsed >= over {
			return c.Rest(target, seg.RestElapsed-over)
		}
	}
	return c.Transition(from, previous, target, span)
}

// departure is the state seg's transition starts from.
func departure[T comparable, V, S any](tl Timeline[T], tt Timetable[T], seg Segment[T], lookup func(T) V, c Curve[V, S]) S {
	switch {
	case seg.first && seg.line > 0:
		return foldIn(tl, tt[:seg.line], seg.Start, lookup, c)
	case !seg.first && c.Overrun != nil:
		// The previous event in the line may still be settling.
		return foldIn(tl, tt, seg.Start, lookup, c)
	}
	return c.Rest(lookup(seg.From), seg.restBefore)
}

// Arrived reports whether the latest transition has reached its target.
func Arrived[T comparable](tl Timeline[T]) bool {
	return tl.Segment().Resting
}
