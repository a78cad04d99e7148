package stream

import (
	"time"

	"github.com/matt-g-everett/ledanim/animator"
	"github.com/matt-g-everett/ledanim/timeline"
)

// Projection is the strip state at one instant of a what-if mood change.
type Projection struct {
	Offset   time.Duration
	Mood     Mood
	Progress float64
	Colour   string
	Level    float64
}

// Project previews a change from one mood to another over duration without
// driving a strip. It returns n samples spread over horizon.
func Project(moods Moods, from, to Mood, duration time.Duration, n int, horizon time.Duration) []Projection {
	start := time.Unix(0, 0)
	tl := timeline.Init(from).Advance(start)
	tl = animator.GoTo(tl, duration, to).Advance(start)

	step := time.Duration(0)
	if n > 0 {
		step = horizon / time.Duration(n)
	}
	i := 0
	return timeline.Sample(tl, n, horizon, func(at timeline.Timeline[Mood]) Projection {
		i++
		return Projection{
			Offset:   step * time.Duration(i),
			Mood:     timeline.Current(at),
			Progress: timeline.Progress(at),
			Colour:   animator.Color(at, moods.Colour).Clamped().Hex(),
			Level:    animator.Move(at, moods.Level).Position,
		}
	})
}
