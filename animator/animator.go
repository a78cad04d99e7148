package animator

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/matt-g-everett/ledanim/timeline"
)

type watcher[M any] struct {
	name    string
	running func(M) bool
	advance func(M, time.Time) M
}

// Animator bundles the timelines held in a model of type M.
type Animator[M any] struct {
	watchers []watcher[M]
}

// New creates an empty animator.
func New[M any]() Animator[M] {
	return Animator[M]{}
}

// Watch adds a timeline read with get and written back with set.
func Watch[M any, T comparable](a Animator[M], name string, get func(M) timeline.Timeline[T], set func(M, timeline.Timeline[T]) M) Animator[M] {
	return WatchWith(a, name, get, set, nil)
}

// WatchWith is Watch for timelines whose states keep changing while at rest.
// animating reports whether state still changes after resting for elapsed.
func WatchWith[M any, T comparable](
	a Animator[M],
	name string,
	get func(M) timeline.Timeline[T],
	set func(M, timeline.Timeline[T]) M,
	animating func(state T, elapsed time.Duration) bool,
) Animator[M] {
	w := watcher[M]{
		name: name,
		running: func(m M) bool {
			tl := get(m)
			if tl.Running() {
				return true
			}
			if animating == nil {
				return false
			}
			seg := tl.Segment()
			return seg.Resting && animating(seg.To, seg.RestElapsed)
		},
		advance: func(m M, now time.Time) M {
			tl := get(m)
			next := tl.Advance(now)
			if tl.Running() && !next.Running() {
				log.Debug().Str("timeline", name).Time("now", now).Msg("timeline settled")
			}
			return set(m, next)
		},
	}

	watchers := make([]watcher[M], 0, len(a.watchers)+1)
	watchers = append(watchers, a.watchers...)
	return Animator[M]{watchers: append(watchers, w)}
}

// Len is the number of watched timelines.
func (a Animator[M]) Len() int { return len(a.watchers) }

// NeedsAnotherFrame reports whether any watched timeline will change if
// advanced.
func (a Animator[M]) NeedsAnotherFrame(m M) bool {
	for _, w := range a.watchers {
		if w.running(m) {
			return true
		}
	}
	return false
}

// Advance moves every watched timeline to now.
func (a Animator[M]) Advance(now time.Time, m M) M {
	for _, w := range a.watchers {
		m = w.advance(m, now)
	}
	return m
}
