package timeline

import (
	"slices"
	"time"
)

// Step is one entry of a schedule request: a wait or a transition.
type Step[T comparable] struct {
	duration time.Duration
	target   T
	wait     bool
}

// Wait holds whatever state is current for d.
func Wait[T comparable](d time.Duration) Step[T] {
	return Step[T]{duration: clampDuration(d), wait: true}
}

// TransitionTo moves into target over d.
func TransitionTo[T comparable](d time.Duration, target T) Step[T] {
	return Step[T]{duration: clampDuration(d), target: target}
}

// Schedule is a freshly built run of events that has not been merged into a
// timeline yet.
type Schedule[T comparable] struct {
	// Delay is the time before Start begins.
	Delay  time.Duration
	Start  Event[T]
	Events []Event[T]
}

// Build folds steps into a schedule. Waits before the first transition become
// the delay, later waits extend the dwell of the last event, and a transition
// to the same target as the last event only extends its dwell. The second
// result is false when steps contain no transition at all.
func Build[T comparable](steps ...Step[T]) (Schedule[T], bool) {
	var (
		s       Schedule[T]
		started bool
	)
	for _, step := range steps {
		switch {
		case !started && step.wait:
			s.Delay += step.duration
		case !started:
			s.Start = Event[T]{Duration: step.duration, Target: step.target}
			started = true
		case step.wait:
			s = s.wait(step.duration)
		default:
			s = s.transition(Event[T]{Duration: step.duration, Target: step.target})
		}
	}
	return s, started
}

// Len is the number of events in the schedule.
func (s Schedule[T]) Len() int { return len(s.Events) + 1 }

func (s Schedule[T]) lastTarget() T {
	if n := len(s.Events); n > 0 {
		return s.Events[n-1].Target
	}
	return s.Start.Target
}

// wait must only be called on a schedule whose Events slice is not shared.
func (s Schedule[T]) wait(d time.Duration) Schedule[T] {
	if n := len(s.Events); n > 0 {
		s.Events[n-1].Dwell += d
	} else {
		s.Start.Dwell += d
	}
	return s
}

func (s Schedule[T]) transition(e Event[T]) Schedule[T] {
	if e.Target == s.lastTarget() {
		return s.wait(e.Duration + e.Dwell)
	}
	s.Events = append(s.Events, e)
	return s
}

// extend appends other onto the tail of s. The delay of other becomes dwell
// on the last event of s.
func (s Schedule[T]) extend(other Schedule[T]) Schedule[T] {
	s.Events = slices.Clone(s.Events)
	s = s.wait(other.Delay)
	s = s.transition(other.Start)
	for _, e := range other.Events {
		s = s.transition(e)
	}
	return s
}

// Queue builds steps and queues them behind the live line. Steps that
// contain only waits leave the timeline untouched.
func (tl Timeline[T]) Queue(steps ...Step[T]) Timeline[T] {
	s, ok := Build(steps...)
	if !ok {
		return tl
	}
	return tl.QueueSchedule(s)
}

// QueueSchedule installs s to start once the live line finishes. If a
// schedule is already queued, s is folded onto its tail.
func (tl Timeline[T]) QueueSchedule(s Schedule[T]) Timeline[T] {
	var q Schedule[T]
	if tl.queued == nil {
		q = s
		q.Events = slices.Clone(s.Events)
	} else {
		q = tl.queued.extend(s)
	}
	tl.queued = &q
	tl.running = true
	return tl
}

// Interrupt builds steps and abandons the current future in favour of them
// at the next Advance. Steps that contain only waits leave the timeline
// untouched.
func (tl Timeline[T]) Interrupt(steps ...Step[T]) Timeline[T] {
	s, ok := Build(steps...)
	if !ok {
		return tl
	}
	return tl.InterruptSchedule(s)
}

// InterruptSchedule pushes s onto the interruption stack. Interruptions are
// resolved in the order they were issued at the next Advance, so the most
// recent one wins.
func (tl Timeline[T]) InterruptSchedule(s Schedule[T]) Timeline[T] {
	stack := make([]Schedule[T], 0, len(tl.interruption)+1)
	stack = append(stack, s)
	tl.interruption = append(stack, tl.interruption...)
	tl.running = true
	return tl
}
