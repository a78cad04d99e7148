package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Unix(5000, 0)

func ms(n int) time.Time {
	return t0.Add(time.Duration(n) * time.Millisecond)
}

func testMoods(t *testing.T) Moods {
	t.Helper()
	linear := &DepartureConfig{}
	moods, err := BuildMoods(map[string]MoodConfig{
		"off":  {Colour: "#000000", Departure: linear},
		"red":  {Colour: "#ff0000", Departure: linear, Arrival: &ArrivalConfig{}},
		"blue": {Colour: "#0000ff", Departure: linear, Arrival: &ArrivalConfig{}},
		"glow": {
			Colour:  "#ff0000",
			Pattern: PatternConfig{Kind: "twinkle", Frames: 4, Period: time.Second, Particles: 2},
		},
	}, 8)
	require.NoError(t, err)
	return moods
}

func TestControllerIdle(t *testing.T) {
	c := NewController(testMoods(t), "off", 8)
	f := c.CalculateFrame(ms(0))
	require.Equal(t, 8, f.Len())
	for i := 0; i < f.Len(); i++ {
		r, g, b := f.Pixel(i).RGB255()
		assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
	}
	assert.False(t, c.NeedsAnotherFrame())
	assert.Equal(t, Mood("off"), c.Current())
}

func TestControllerChange(t *testing.T) {
	c := NewController(testMoods(t), "off", 8)
	c.CalculateFrame(ms(0))

	assert.Error(t, c.Change("disco", time.Second, true, 0))
	require.NoError(t, c.Change("red", time.Second, true, 0))
	assert.True(t, c.NeedsAnotherFrame())
	assert.True(t, c.Running())

	start := c.CalculateFrame(ms(0))
	assert.InDelta(t, 0, start.Pixel(0).R, 0.01)

	mid := c.CalculateFrame(ms(500))
	assert.Greater(t, mid.Pixel(0).R, 0.05)
	assert.Less(t, mid.Pixel(0).R, 0.99)

	end := c.CalculateFrame(ms(1000))
	assert.InDelta(t, 1, end.Pixel(0).R, 0.01)
	assert.InDelta(t, 0, end.Pixel(0).B, 0.01)
	assert.Equal(t, Mood("red"), c.Current())
	assert.False(t, c.Running())
	assert.False(t, c.NeedsAnotherFrame())
}

func TestControllerQueuesBehindCurrentChange(t *testing.T) {
	c := NewController(testMoods(t), "off", 8)
	c.CalculateFrame(ms(0))
	require.NoError(t, c.Change("red", time.Second, true, 0))
	c.CalculateFrame(ms(0))
	require.NoError(t, c.Change("blue", time.Second, false, 500*time.Millisecond))

	c.CalculateFrame(ms(1200))
	assert.Equal(t, Mood("red"), c.Current())

	snap := c.Snapshot()
	require.NotEmpty(t, snap.Lines)
	last := snap.Lines[len(snap.Lines)-1]
	assert.Equal(t, ms(1500), last.StartsAt, "queued change waits after the current one ends")
	assert.True(t, c.Running())

	f := c.CalculateFrame(ms(2500))
	assert.Equal(t, Mood("blue"), c.Current())
	assert.InDelta(t, 1, f.Pixel(0).B, 0.01)
}

func TestControllerKeepsAnimatingRestingMood(t *testing.T) {
	c := NewController(testMoods(t), "glow", 8)
	c.CalculateFrame(ms(0))
	assert.True(t, c.NeedsAnotherFrame(), "twinkle cycles at rest")
	assert.False(t, c.Running())
}

func TestControlMessage(t *testing.T) {
	m, err := ParseControl([]byte(`{"mood":"blue","duration":"250ms","interrupt":true}`))
	require.NoError(t, err)
	assert.Equal(t, ControlMessage{Mood: "blue", Duration: "250ms", Interrupt: true}, m)

	_, err = ParseControl([]byte(`{"duration":"1s"}`))
	assert.Error(t, err)
	_, err = ParseControl([]byte(`{`))
	assert.Error(t, err)

	c := NewController(testMoods(t), "off", 8)
	require.NoError(t, m.Apply(c))
	q := c.Timeline().Interruptions()
	require.Len(t, q, 1)
	assert.Equal(t, 250*time.Millisecond, q[0].Start.Duration)

	bad := ControlMessage{Mood: "blue", Wait: "soon"}
	assert.ErrorContains(t, bad.Apply(c), "soon")

	queued := ControlMessage{Mood: "red", Duration: "1s", Wait: "2s"}
	require.NoError(t, queued.Apply(c))
	s, ok := c.Timeline().Queued()
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, s.Delay)
}
