package timeline

import (
	"slices"
	"time"
)

// Advance moves the timeline to now. Pending interruptions are spliced in as
// new lines starting at now, otherwise a queued schedule is appended once the
// live line has finished. History that no query at now can reach is pruned.
func (tl Timeline[T]) Advance(now time.Time) Timeline[T] {
	if !tl.started {
		tl.origin = now
	}

	switch {
	case len(tl.interruption) > 0:
		events := tl.events
		// The stack is most-recent-first; resolve in the order issued.
		for i := len(tl.interruption) - 1; i >= 0; i-- {
			events = tl.splice(events, now, tl.interruption[i])
		}
		tl.events = events
		tl.interruption = nil
		tl.queued = nil
	case tl.queued != nil:
		if start, ok := tl.queueStart(now); ok {
			tl.events = tl.appendLine(tl.events, start, *tl.queued)
			tl.queued = nil
		}
	}

	tl.now = now
	tl.started = true
	tl.events = tl.events.prune(now)
	tl.running = tl.queued != nil || tl.events.end().After(now)
	return tl
}

// queueStart decides when a queued schedule begins. A live line that ended
// since the previous advance is continued seamlessly; a timeline that was
// already at rest starts the queued schedule at now.
func (tl Timeline[T]) queueStart(now time.Time) (time.Time, bool) {
	if len(tl.events) == 0 {
		return now, true
	}
	end := tl.events.end()
	if end.After(now) {
		return time.Time{}, false
	}
	if tl.started && end.Before(tl.now) {
		return now, true
	}
	return end, true
}

// splice adds s as a new line at now plus its delay. Lines that would only
// have started at or after that instant never became visible and are
// dropped; earlier lines stay as history.
func (tl Timeline[T]) splice(events Timetable[T], now time.Time, s Schedule[T]) Timetable[T] {
	start := now.Add(s.Delay)
	from := tl.currentIn(events, start)
	kept := make(Timetable[T], 0, len(events)+1)
	for _, l := range events {
		if l.StartsAt.Before(start) {
			kept = append(kept, l)
		}
	}
	return append(kept, newLine(start, from, s))
}

func (tl Timeline[T]) appendLine(events Timetable[T], at time.Time, s Schedule[T]) Timetable[T] {
	start := at.Add(s.Delay)
	line := newLine(start, tl.currentIn(events, start), s)
	out := make(Timetable[T], 0, len(events)+1)
	out = append(out, events...)
	return append(out, line)
}

func newLine[T comparable](start time.Time, from T, s Schedule[T]) Line[T] {
	return Line[T]{
		StartsAt: start,
		From:     from,
		First:    s.Start,
		Rest:     slices.Clone(s.Events),
	}
}

// end is when the last line finishes, or the zero time for an empty timetable.
func (tt Timetable[T]) end() time.Time {
	if len(tt) == 0 {
		return time.Time{}
	}
	return tt[len(tt)-1].End()
}

// prune drops lines that a query at now can no longer reach. The governing
// line is always kept. While its first transition is still under way the
// line it interrupted is needed to know where that transition started, and
// so on back through any chain of interruptions.
func (tt Timetable[T]) prune(now time.Time) Timetable[T] {
	g := tt.governing(now)
	if g <= 0 {
		return tt
	}
	keep, t := g, now
	for keep > 0 && t.Before(tt[keep].FirstArrival()) {
		t = tt[keep].StartsAt
		keep--
	}
	if keep == 0 {
		return tt
	}
	return slices.Clone(tt[keep:])
}
