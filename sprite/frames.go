// Package sprite picks which item of a frame list to show while a subject
// moves into a state and while it rests there.
package sprite

import (
	"math"
	"time"
)

type kind int

const (
	single kind = iota
	hold
	walk
	withRest
)

// Frames is a tree of items. Build it with Single, Hold, Walk and WithRest.
type Frames[T any] struct {
	kind     kind
	item     T
	count    int
	children []Frames[T]
	rest     Resting[T]
	size     int
}

// Single shows item for one frame.
func Single[T any](item T) Frames[T] {
	return Frames[T]{kind: single, item: item, count: 1, size: 1}
}

// Hold shows item for count frames. Counts below one are treated as one.
func Hold[T any](count int, item T) Frames[T] {
	if count < 1 {
		count = 1
	}
	return Frames[T]{kind: hold, item: item, count: count, size: count}
}

// Walk shows start followed by each child in order.
func Walk[T any](start T, children ...Frames[T]) Frames[T] {
	all := make([]Frames[T], 0, len(children)+1)
	all = append(all, Single(start))
	all = append(all, children...)
	return Frames[T]{kind: walk, children: all, size: sizeOf(all)}
}

// WithRest plays transition while moving and cycles rest once arrived.
func WithRest[T any](rest Resting[T], transition Frames[T]) Frames[T] {
	return Frames[T]{kind: withRest, children: []Frames[T]{transition}, rest: rest, size: transition.Size()}
}

// Size is the number of frames, at least one.
func (f Frames[T]) Size() int {
	if f.size < 1 {
		return 1
	}
	return f.size
}

// ItemAt resolves a frame index. Negative indexes clamp to the first frame
// and indexes past the end resolve to the last item.
func (f Frames[T]) ItemAt(i int) T {
	if i < 0 {
		i = 0
	}
	if i >= f.Size() {
		return f.Last()
	}
	switch f.kind {
	case single, hold:
		return f.item
	default:
		return resolve(f.children, i, f.Last)
	}
}

// Last is the structurally last item of the tree.
func (f Frames[T]) Last() T {
	switch f.kind {
	case single, hold:
		return f.item
	default:
		if len(f.children) == 0 {
			var zero T
			return zero
		}
		return f.children[len(f.children)-1].Last()
	}
}

// Step picks the item for a transition at progress, then for a rest lasting
// rest once progress reaches one.
func (f Frames[T]) Step(progress float64, rest time.Duration) T {
	if progress < 1 {
		if math.IsNaN(progress) || progress < 0 {
			progress = 0
		}
		return f.ItemAt(int(math.Floor(progress*float64(f.Size()))) - 1)
	}
	if f.kind == withRest && len(f.rest.children) > 0 {
		return f.rest.at(rest)
	}
	return f.Last()
}

func sizeOf[T any](children []Frames[T]) int {
	n := 0
	for _, c := range children {
		n += c.Size()
	}
	return n
}

func resolve[T any](children []Frames[T], i int, last func() T) T {
	for _, c := range children {
		if i < c.Size() {
			return c.ItemAt(i)
		}
		i -= c.Size()
	}
	return last()
}

// Period is how a rest cycle repeats.
type Period struct {
	duration time.Duration
	repeat   int
	loop     bool
}

// Loop cycles every d for as long as the subject rests.
func Loop(d time.Duration) Period {
	return Period{duration: d, loop: true}
}

// Repeat cycles n times, each lasting d, then shows the last frame.
func Repeat(n int, d time.Duration) Period {
	if n < 0 {
		n = 0
	}
	return Period{duration: d, repeat: n}
}

// Resting is the frame cycle shown once a state has been reached.
type Resting[T any] struct {
	period   Period
	children []Frames[T]
	size     int
}

// Cycle plays children in order once per period.
func Cycle[T any](p Period, children ...Frames[T]) Resting[T] {
	return Resting[T]{period: p, children: children, size: sizeOf(children)}
}

// Duration is the length of one cycle.
func (r Resting[T]) Duration() time.Duration { return r.period.duration }

// Stable reports whether the cycle no longer changes after elapsed.
func (r Resting[T]) Stable(elapsed time.Duration) bool {
	if r.period.duration <= 0 || len(r.children) == 0 {
		return true
	}
	if r.period.loop {
		return false
	}
	return elapsed >= time.Duration(r.period.repeat)*r.period.duration
}

func (r Resting[T]) last() T {
	return r.children[len(r.children)-1].Last()
}

func (r Resting[T]) at(elapsed time.Duration) T {
	d := r.period.duration
	if d <= 0 {
		return r.last()
	}
	if elapsed < 0 {
		elapsed = 0
	}
	phase := 1.0
	if r.period.loop || int64(elapsed/d) < int64(r.period.repeat) {
		phase = float64(elapsed%d) / float64(d)
	}
	return resolve(r.children, int(math.Floor(phase*float64(r.size))), r.last)
}

// Rest returns the rest cycle of a WithRest tree.
func (f Frames[T]) Rest() (Resting[T], bool) {
	return f.rest, f.kind == withRest
}
