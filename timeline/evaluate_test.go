package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var levels = map[string]float64{"A": 0, "B": 10, "C": 20, "D": 100}

func level(s string) float64 { return levels[s] }

var linearCurve = Curve[float64, float64]{
	Rest: func(v float64, _ time.Duration) float64 { return v },
	Transition: func(from float64, _, target float64, span Span) float64 {
		return from + (target-from)*span.Progress
	},
}

func TestFoldpStartsInterruptionFromInFlightValue(t *testing.T) {
	tl := Init("A").Queue(TransitionTo(time.Second, "B")).Advance(ms(0)).Advance(ms(500))
	require.InDelta(t, 5, Foldp(tl, level, linearCurve), 1e-9)

	tl = tl.Interrupt(TransitionTo(time.Second, "D")).Advance(ms(500))
	assert.InDelta(t, 5, Foldp(tl, level, linearCurve), 1e-9, "no jump at the interruption")

	tl = tl.Advance(ms(1000))
	assert.InDelta(t, 52.5, Foldp(tl, level, linearCurve), 1e-9)

	tl = tl.Advance(ms(2000))
	assert.InDelta(t, 100, Foldp(tl, level, linearCurve), 1e-9)
}

func TestFoldpRestElapsed(t *testing.T) {
	var got time.Duration
	c := Curve[float64, float64]{
		Rest: func(v float64, elapsed time.Duration) float64 {
			got = elapsed
			return v
		},
		Transition: linearCurve.Transition,
	}
	tl := Init("A").Queue(TransitionTo(time.Second, "B")).Advance(ms(0)).Advance(ms(1750))
	assert.InDelta(t, 10, Foldp(tl, level, c), 1e-9)
	assert.Equal(t, 750*time.Millisecond, got)
}

// slowCurve takes half a second longer than each transition's duration.
func slowCurve(rested *time.Duration) Curve[float64, float64] {
	const over = 500 * time.Millisecond
	return Curve[float64, float64]{
		Rest: func(v float64, elapsed time.Duration) float64 {
			*rested = elapsed
			return v
		},
		Transition: func(from float64, _, target float64, span Span) float64 {
			f := float64(span.Elapsed) / float64(span.Duration+over)
			return from + (target-from)*min(f, 1)
		},
		Overrun: func(float64, float64, float64, Span) time.Duration { return over },
	}
}

func TestFoldpOverrunKeepsTransitionAfterArrival(t *testing.T) {
	rested := time.Duration(-1)
	c := slowCurve(&rested)
	tl := Init("A").Queue(TransitionTo(time.Second, "B")).Advance(ms(0))

	assert.InDelta(t, 10*1250.0/1500, Foldp(tl.At(ms(1250)), level, c), 1e-9)
	assert.True(t, Arrived(tl.At(ms(1250))))
	assert.Equal(t, time.Duration(-1), rested, "still moving after arrival")

	assert.InDelta(t, 10, Foldp(tl.At(ms(1750)), level, c), 1e-9)
	assert.Equal(t, 250*time.Millisecond, rested)
}

func TestFoldpInterruptDuringOverrun(t *testing.T) {
	var rested time.Duration
	c := slowCurve(&rested)
	tl := Init("A").Queue(TransitionTo(time.Second, "B")).Advance(ms(0)).Advance(ms(1250))
	before := Foldp(tl, level, c)

	tl = tl.Interrupt(TransitionTo(time.Second, "D")).Advance(ms(1250))
	assert.InDelta(t, before, Foldp(tl, level, c), 1e-9, "no jump at the interruption")
}

func TestFoldpNextEventStartsFromOverrun(t *testing.T) {
	var rested time.Duration
	c := slowCurve(&rested)
	tl := Init("A").Queue(
		TransitionTo(time.Second, "B"),
		TransitionTo(time.Second, "C"),
	).Advance(ms(0))

	// The second event starts at 1s while the first is still a third short.
	start := Foldp(tl.At(ms(1000)), level, c)
	assert.InDelta(t, 10*1000.0/1500, start, 1e-9)
	assert.InDelta(t, start+(20-start)*500.0/1500, Foldp(tl.At(ms(1500)), level, c), 1e-9)
}

func TestProgressIsMonotonic(t *testing.T) {
	tl := Init("A").Queue(TransitionTo(time.Second, "B")).Advance(ms(0))
	assert.Zero(t, Progress(tl))

	samples := Sample(tl, 50, 1500*time.Millisecond, Progress[string])
	require.Len(t, samples, 50)
	for i := 1; i < len(samples); i++ {
		assert.GreaterOrEqual(t, samples[i], samples[i-1])
	}
	assert.Equal(t, 1.0, Progress(tl.At(ms(1000))))
}

func TestSampleDoesNotAdvance(t *testing.T) {
	tl := Init("A").Queue(TransitionTo(time.Second, "B")).Advance(ms(0))
	got := Sample(tl, 4, time.Second, Progress[string])
	assert.InDeltaSlice(t, []float64{0.25, 0.5, 0.75, 1}, got, 1e-9)
	assert.Equal(t, ms(0), tl.Now())
	assert.Nil(t, Sample(tl, 0, time.Second, Progress[string]))
}

func TestDescribe(t *testing.T) {
	tl := Init("A").Queue(
		TransitionTo(time.Second, "B"),
		Wait[string](500*time.Millisecond),
		TransitionTo(time.Second, "C"),
	).Advance(ms(0)).Advance(ms(200))
	tl = tl.Interrupt(TransitionTo(time.Second, "D"))

	snap := Describe(tl)
	assert.Equal(t, "A", snap.Current)
	assert.Equal(t, "B", snap.Upcoming)
	assert.Equal(t, 1, snap.Interruptions)
	assert.True(t, snap.Running)
	require.Len(t, snap.Lines, 1)

	events := snap.Lines[0].Events
	require.Len(t, events, 2)
	assert.Equal(t, ms(1000), events[0].Arrival)
	assert.Equal(t, ms(1500), events[0].Departure)
	assert.Equal(t, ms(1500), events[1].Start)
	assert.Equal(t, ms(2500), events[1].Arrival)
}

func TestArrived(t *testing.T) {
	tl := Init("A")
	assert.True(t, Arrived(tl), "nothing scheduled")

	tl = tl.Queue(TransitionTo(time.Second, "B")).Advance(ms(0))
	assert.False(t, Arrived(tl))
	assert.True(t, Arrived(tl.At(ms(1000))))
}
