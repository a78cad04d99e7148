package timeline

import "time"

// EventSnapshot is an event placed on the absolute time axis.
type EventSnapshot[T comparable] struct {
	Target    T         `json:"target"`
	Start     time.Time `json:"start"`
	Arrival   time.Time `json:"arrival"`
	Departure time.Time `json:"departure"`
}

// LineSnapshot is a line placed on the absolute time axis.
type LineSnapshot[T comparable] struct {
	StartsAt time.Time          `json:"startsAt"`
	From     T                  `json:"from"`
	Events   []EventSnapshot[T] `json:"events"`
}

// Snapshot is a read-only view of a timeline for inspection tools.
type Snapshot[T comparable] struct {
	Now           time.Time         `json:"now"`
	Initial       T                 `json:"initial"`
	Current       T                 `json:"current"`
	Upcoming      T                 `json:"upcoming"`
	Progress      float64           `json:"progress"`
	Running       bool              `json:"running"`
	Queued        int               `json:"queued"`
	Interruptions int               `json:"interruptions"`
	Lines         []LineSnapshot[T] `json:"lines"`
}

// Describe lays out the timeline for visualisation.
func Describe[T comparable](tl Timeline[T]) Snapshot[T] {
	seg := tl.Segment()
	snap := Snapshot[T]{
		Now:           tl.now,
		Initial:       tl.initial,
		Current:       Current(tl),
		Upcoming:      seg.To,
		Progress:      seg.Progress,
		Running:       tl.running,
		Interruptions: len(tl.interruption),
		Lines:         make([]LineSnapshot[T], 0, len(tl.events)),
	}
	if tl.queued != nil {
		snap.Queued = tl.queued.Len()
	}
	for _, l := range tl.events {
		ls := LineSnapshot[T]{StartsAt: l.StartsAt, From: l.From}
		start := l.StartsAt
		for _, e := range l.Events() {
			arrival := start.Add(e.Duration)
			departure := arrival.Add(e.Dwell)
			ls.Events = append(ls.Events, EventSnapshot[T]{
				Target:    e.Target,
				Start:     start,
				Arrival:   arrival,
				Departure: departure,
			})
			start = departure
		}
		snap.Lines = append(snap.Lines, ls)
	}
	return snap
}
