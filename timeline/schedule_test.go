package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCoalescesRepeatedTargets(t *testing.T) {
	cases := []struct {
		name  string
		steps []Step[string]
		start Event[string]
		rest  []Event[string]
	}{
		{
			name:  "adjacent",
			steps: []Step[string]{TransitionTo(time.Second, "a"), TransitionTo(2*time.Second, "a")},
			start: Event[string]{Duration: time.Second, Target: "a", Dwell: 2 * time.Second},
		},
		{
			name: "after a wait",
			steps: []Step[string]{
				TransitionTo(time.Second, "a"),
				Wait[string](500 * time.Millisecond),
				TransitionTo(2*time.Second, "a"),
			},
			start: Event[string]{Duration: time.Second, Target: "a", Dwell: 2500 * time.Millisecond},
		},
		{
			name: "later event",
			steps: []Step[string]{
				TransitionTo(time.Second, "a"),
				TransitionTo(time.Second, "b"),
				TransitionTo(300*time.Millisecond, "b"),
			},
			start: Event[string]{Duration: time.Second, Target: "a"},
			rest:  []Event[string]{{Duration: time.Second, Target: "b", Dwell: 300 * time.Millisecond}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, ok := Build(c.steps...)
			require.True(t, ok)
			assert.Equal(t, c.start, s.Start)
			assert.Equal(t, c.rest, s.Events)
		})
	}
}

func TestBuildLeadingWaits(t *testing.T) {
	_, ok := Build(Wait[string](100 * time.Millisecond))
	assert.False(t, ok, "waits alone build nothing")

	_, ok = Build[string]()
	assert.False(t, ok)

	s, ok := Build(
		Wait[string](100*time.Millisecond),
		Wait[string](50*time.Millisecond),
		TransitionTo(time.Second, "a"),
	)
	require.True(t, ok)
	assert.Equal(t, 150*time.Millisecond, s.Delay)
	assert.Equal(t, "a", s.Start.Target)
}

func TestBuildClampsNegativeDurations(t *testing.T) {
	s, ok := Build(Wait[string](-time.Second), TransitionTo(-time.Second, "a"), Wait[string](-time.Second))
	require.True(t, ok)
	assert.Zero(t, s.Delay)
	assert.Zero(t, s.Start.Duration)
	assert.Zero(t, s.Start.Dwell)
}

func TestQueueExtendsPendingSchedule(t *testing.T) {
	first := Init("A").Queue(TransitionTo(time.Second, "B"))
	second := first.Queue(Wait[string](200*time.Millisecond), TransitionTo(time.Second, "C"))

	q, ok := second.Queued()
	require.True(t, ok)
	assert.Equal(t, Event[string]{Duration: time.Second, Target: "B", Dwell: 200 * time.Millisecond}, q.Start)
	assert.Equal(t, []Event[string]{{Duration: time.Second, Target: "C"}}, q.Events)
	assert.True(t, second.Running())

	q, ok = first.Queued()
	require.True(t, ok)
	assert.Empty(t, q.Events, "earlier value must not see the extension")
	assert.Zero(t, q.Start.Dwell)
}

func TestQueueOfOnlyWaitsIsNoop(t *testing.T) {
	tl := Init("A").Queue(Wait[string](time.Second))
	_, ok := tl.Queued()
	assert.False(t, ok)
	assert.False(t, tl.Running())

	tl = tl.Interrupt(Wait[string](time.Second))
	assert.Empty(t, tl.Interruptions())
}

func TestInterruptStacksMostRecentFirst(t *testing.T) {
	tl := Init("A").
		Interrupt(TransitionTo(time.Second, "B")).
		Interrupt(TransitionTo(time.Second, "C"))

	stack := tl.Interruptions()
	require.Len(t, stack, 2)
	assert.Equal(t, "C", stack[0].Start.Target)
	assert.Equal(t, "B", stack[1].Start.Target)
	assert.True(t, tl.Running())
}
