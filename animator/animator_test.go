package animator

import (
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/ledanim/curve"
	"github.com/matt-g-everett/ledanim/oscillator"
	"github.com/matt-g-everett/ledanim/sprite"
	"github.com/matt-g-everett/ledanim/timeline"
)

var t0 = time.Unix(2000, 0)

func ms(n int) time.Time {
	return t0.Add(time.Duration(n) * time.Millisecond)
}

func linearAt(v float64) Movement {
	return Position(curve.Departure{}, curve.Arrival{}, v)
}

var positions = map[string]Movement{
	"off":  linearAt(0),
	"half": linearAt(10),
	"full": linearAt(100),
	"glow": Oscillate(curve.Departure{}, curve.Arrival{}, oscillator.Wave(0, 10).Loop(time.Second)),
}

func position(s string) Movement { return positions[s] }

func running(from, to string) timeline.Timeline[string] {
	return timeline.Init(from).Queue(timeline.TransitionTo(time.Second, to)).Advance(ms(0))
}

func TestMoveLinear(t *testing.T) {
	tl := running("off", "half")
	m := Move(tl.Advance(ms(500)), position)
	assert.InDelta(t, 5, m.Position, 1e-6)
	assert.InDelta(t, 10, m.Velocity, 1e-3)

	m = Move(tl.Advance(ms(1000)), position)
	assert.InDelta(t, 10, m.Position, 1e-9)
	assert.Zero(t, m.Velocity)
}

func TestMoveDefaultPersonalityEndpoints(t *testing.T) {
	lookup := func(s string) Movement {
		if s == "on" {
			return At(1)
		}
		return At(0)
	}
	tl := timeline.Init("off").Queue(timeline.TransitionTo(time.Second, "on")).Advance(ms(0))
	assert.InDelta(t, 0, Move(tl, lookup).Position, 1e-9)
	mid := Move(tl.Advance(ms(500)), lookup).Position
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 1.0)
	assert.InDelta(t, 1, Move(tl.Advance(ms(1000)), lookup).Position, 1e-9)
}

func TestMoveInterruptionCarriesVelocity(t *testing.T) {
	tl := running("off", "half").Advance(ms(500))
	before := Move(tl, position)

	tl = GoTo(tl, time.Second, "full").Advance(ms(500))
	after := Move(tl, position)
	assert.InDelta(t, before.Position, after.Position, 1e-6)
	assert.InDelta(t, before.Velocity, after.Velocity, 0.01)

	end := Move(tl.Advance(ms(1500)), position)
	assert.InDelta(t, 100, end.Position, 1e-9)
}

func TestMoveOscillatesAtRest(t *testing.T) {
	tl := running("off", "glow")
	assert.InDelta(t, 0, Move(tl.Advance(ms(1000)), position).Position, 1e-9)
	assert.InDelta(t, 10, Move(tl.Advance(ms(1500)), position).Position, 1e-9)
	assert.InDelta(t, 5, Move(tl.Advance(ms(2250)), position).Position, 1e-9)
}

func TestMoveWobblyArrivalOutlastsShortEvent(t *testing.T) {
	springy := curve.Arrival{Wobbliness: 1}
	lookup := func(s string) Movement {
		if s == "on" {
			return Position(curve.Departure{}, springy, 10)
		}
		return linearAt(0)
	}
	settle := springy.Settle()
	require.Greater(t, settle, time.Second)

	tl := timeline.Init("off").Queue(timeline.TransitionTo(100*time.Millisecond, "on")).Advance(ms(0))
	assert.Less(t, Move(tl.Advance(ms(25)), lookup).Position, 1.0, "the spring keeps its own pace")

	arrived := tl.Advance(ms(100))
	require.True(t, timeline.Arrived(arrived))
	m := Move(arrived, lookup)
	assert.Greater(t, m.Velocity, 1.0, "still moving when the event ends")
	assert.InDelta(t, Move(tl.Advance(ms(99)), lookup).Position, m.Position, 0.5)

	peak := 0.0
	for i := 100; i < 2000; i += 10 {
		peak = max(peak, Move(tl.Advance(ms(i)), lookup).Position)
	}
	assert.Greater(t, peak, 10.5)

	done := Move(tl.Advance(t0.Add(100*time.Millisecond+settle+10*time.Millisecond)), lookup)
	assert.Equal(t, 10.0, done.Position)
	assert.Zero(t, done.Velocity)

	assert.False(t, lookup("on").Settled(50*time.Millisecond))
	assert.True(t, lookup("on").Settled(settle))
	assert.True(t, lookup("off").Settled(0))
}

func TestColor(t *testing.T) {
	red, _ := colorful.Hex("#ff0000")
	blue, _ := colorful.Hex("#0000ff")
	lookup := func(s string) colorful.Color {
		if s == "blue" {
			return blue
		}
		return red
	}

	tl := timeline.Init("red").Queue(timeline.TransitionTo(time.Second, "blue")).Advance(ms(0))
	start := Color(tl, lookup)
	assert.InDelta(t, 1, start.R, 1e-3)
	assert.InDelta(t, 0, start.B, 1e-3)

	mid := Color(tl.Advance(ms(500)), lookup)
	assert.NotEqual(t, red, mid)
	assert.NotEqual(t, blue, mid)

	assert.Equal(t, blue, Color(tl.Advance(ms(1000)), lookup))
}

func TestLinear(t *testing.T) {
	lookup := func(s string) float64 { return map[string]float64{"a": 2, "b": 4}[s] }
	tl := timeline.Init("a").Queue(timeline.TransitionTo(time.Second, "b")).Advance(ms(0))
	assert.InDelta(t, 3, Linear(tl.Advance(ms(500)), lookup), 1e-9)
}

func TestStep(t *testing.T) {
	frames := map[string]sprite.Frames[int]{
		"idle": sprite.Single(0),
		"spin": sprite.WithRest(
			sprite.Cycle(sprite.Loop(400*time.Millisecond), sprite.Single(10), sprite.Single(11)),
			sprite.Walk(1, sprite.Single(2), sprite.Single(3), sprite.Single(4)),
		),
	}
	lookup := func(s string) sprite.Frames[int] { return frames[s] }

	tl := timeline.Init("idle").Queue(timeline.TransitionTo(time.Second, "spin")).Advance(ms(0))
	assert.Equal(t, 1, Step(tl.Advance(ms(100)), lookup))
	assert.Equal(t, 2, Step(tl.Advance(ms(600)), lookup))
	assert.Equal(t, 10, Step(tl.Advance(ms(1000)), lookup))
	assert.Equal(t, 11, Step(tl.Advance(ms(1300)), lookup))
	assert.Equal(t, 0, Step(timeline.Init("idle"), lookup))
}

func TestGoTo(t *testing.T) {
	tl := GoTo(timeline.Init("a"), Quickly, "b")
	stack := tl.Interruptions()
	require.Len(t, stack, 1)
	assert.Equal(t, Quickly, stack[0].Start.Duration)
	assert.Equal(t, "b", stack[0].Start.Target)
}

type model struct {
	level timeline.Timeline[string]
	glow  timeline.Timeline[string]
}

func TestAnimatorBundle(t *testing.T) {
	a := Watch(New[model](), "level",
		func(m model) timeline.Timeline[string] { return m.level },
		func(m model, tl timeline.Timeline[string]) model { m.level = tl; return m },
	)
	a = WatchWith(a, "glow",
		func(m model) timeline.Timeline[string] { return m.glow },
		func(m model, tl timeline.Timeline[string]) model { m.glow = tl; return m },
		func(s string, elapsed time.Duration) bool { return !position(s).Settled(elapsed) },
	)
	require.Equal(t, 2, a.Len())

	m := model{level: timeline.Init("off"), glow: timeline.Init("off")}
	assert.False(t, a.NeedsAnotherFrame(m))

	m.level = GoTo(m.level, time.Second, "full")
	assert.True(t, a.NeedsAnotherFrame(m))

	m = a.Advance(ms(0), m)
	assert.True(t, a.NeedsAnotherFrame(m))
	assert.Equal(t, ms(0), m.glow.Now())

	m = a.Advance(ms(1000), m)
	assert.False(t, a.NeedsAnotherFrame(m))
	assert.Equal(t, "full", timeline.Current(m.level))

	m.glow = GoTo(m.glow, VeryQuickly, "glow")
	m = a.Advance(ms(1100), m)
	m = a.Advance(ms(1200), m)
	assert.False(t, m.glow.Running())
	assert.True(t, a.NeedsAnotherFrame(m), "looping oscillator keeps animating at rest")
}
