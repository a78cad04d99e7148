package oscillator

import (
	"math"
	"time"
)

// Policy is how often a timed oscillator plays.
type Policy int

const (
	PlayOnce Policy = iota
	PlayLoop
	PlayRepeat
)

// Timed is an oscillator with a period and repeat policy, ready to be
// evaluated against time spent resting.
type Timed struct {
	osc    Oscillator
	active time.Duration
	period time.Duration
	policy Policy
	count  int
	pauses []Pause
}

// Once plays a single period of length d, plus pauses, then holds.
func (o Oscillator) Once(d time.Duration) Timed {
	return o.timed(d, PlayOnce, 1)
}

// Loop repeats a period of length d, plus pauses, for as long as the subject
// rests.
func (o Oscillator) Loop(d time.Duration) Timed {
	return o.timed(d, PlayLoop, 0)
}

// Repeat plays n periods of length d, plus pauses, then holds. It always
// plays at least one period.
func (o Oscillator) Repeat(n int, d time.Duration) Timed {
	if n < 1 {
		n = 1
	}
	return o.timed(d, PlayRepeat, n)
}

func (o Oscillator) timed(d time.Duration, policy Policy, count int) Timed {
	if d < 0 {
		d = 0
	}
	return Timed{
		osc:    o,
		active: d,
		period: d + o.pauseTotal(),
		policy: policy,
		count:  count,
		pauses: o.sortedPauses(),
	}
}

// Static is a timed oscillator that always reports v.
func Static(v float64) Timed {
	return Resting(v).Once(0)
}

// Period is the full length of one period including pauses.
func (t Timed) Period() time.Duration { return t.period }

// Done reports whether the oscillator has stopped changing after elapsed.
func (t Timed) Done(elapsed time.Duration) bool {
	if t.osc.resting {
		return true
	}
	switch t.policy {
	case PlayLoop:
		return t.period <= 0
	case PlayRepeat:
		return t.period <= 0 || elapsed >= time.Duration(t.count)*t.period
	default:
		return elapsed >= t.period
	}
}

// Phase is the unit phase of the shape after elapsed, pauses included.
func (t Timed) Phase(elapsed time.Duration) float64 {
	if t.period <= 0 || t.Done(elapsed) {
		return 1
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return t.within(elapsed % t.period)
}

// within maps time inside one period onto the shape's phase, holding at each
// pause point.
func (t Timed) within(tau time.Duration) float64 {
	var cursor time.Duration
	prev := 0.0
	for _, p := range t.pauses {
		moving := time.Duration((p.At - prev) * float64(t.active))
		if tau < cursor+moving {
			return prev + t.fraction(tau-cursor)
		}
		cursor += moving
		if tau < cursor+p.Duration {
			return p.At
		}
		cursor += p.Duration
		prev = p.At
	}
	return math.Min(1, prev+t.fraction(tau-cursor))
}

func (t Timed) fraction(d time.Duration) float64 {
	if t.active <= 0 {
		return 0
	}
	return float64(d) / float64(t.active)
}

// Value evaluates the oscillator after elapsed.
func (t Timed) Value(elapsed time.Duration) float64 {
	return t.osc.At(t.Phase(elapsed))
}

// Start is the value at the beginning of the first period.
func (t Timed) Start() float64 {
	return t.osc.At(0)
}

const velocityStep = time.Millisecond

// Velocity is the rate of change per second after elapsed, estimated over a
// millisecond either side.
func (t Timed) Velocity(elapsed time.Duration) float64 {
	if t.Done(elapsed) {
		return 0
	}
	lo := elapsed - velocityStep
	if lo < 0 {
		lo = 0
	}
	hi := elapsed + velocityStep
	return (t.Value(hi) - t.Value(lo)) / (hi - lo).Seconds()
}
