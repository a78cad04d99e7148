package curve

import (
	"math"
	"time"
)

// Departure shapes how a value leaves a state.
type Departure struct {
	// Late delays the start of movement by this fraction of the duration.
	Late float64
	// Slowly eases out of the start: 0 is linear, 1 the gentlest start.
	Slowly float64
}

// Arrival shapes how a value reaches a state.
type Arrival struct {
	// Early arrives this fraction of the duration before the end.
	Early float64
	// Slowly eases into the target: 0 is linear, 1 the gentlest landing.
	Slowly float64
	// Wobbliness replaces the eased landing with a spring: 0 settles without
	// overshoot, 1 overshoots the most.
	Wobbliness float64
}

var (
	// DefaultDeparture matches the standard ease-in-out start.
	DefaultDeparture = Departure{Slowly: 0.4}
	// DefaultArrival matches the standard ease-in-out landing.
	DefaultArrival = Arrival{Slowly: 0.8}
)

// Clamped returns d with every parameter in [0,1].
func (d Departure) Clamped() Departure {
	return Departure{Late: Clamp01(d.Late), Slowly: Clamp01(d.Slowly)}
}

// Clamped returns a with every parameter in [0,1].
func (a Arrival) Clamped() Arrival {
	return Arrival{Early: Clamp01(a.Early), Slowly: Clamp01(a.Slowly), Wobbliness: Clamp01(a.Wobbliness)}
}

// Settle is how long a wobbly arrival from rest keeps moving after it
// begins, or 0 for an eased arrival.
func (a Arrival) Settle() time.Duration {
	w := Clamp01(a.Wobbliness)
	if w <= 0 {
		return 0
	}
	return NewSpring(w, 0).Settle()
}

// Window returns the fraction of the duration spent holding before moving
// and after arriving. When late and early overlap they are scaled down
// together so the moving window never inverts.
func Window(d Departure, a Arrival) (late, early float64) {
	late, early = Clamp01(d.Late), Clamp01(a.Early)
	if sum := late + early; sum > 1 {
		late, early = late/sum, early/sum
	}
	return late, early
}

// Transition is a one dimensional move shaped by departure and arrival
// personality.
type Transition struct {
	From, To float64
	// Velocity is the velocity at the start, in units per second. It lets an
	// interrupted movement carry on smoothly.
	Velocity  float64
	Duration  time.Duration
	Departure Departure
	Arrival   Arrival
}

// At returns the position and velocity (units per second) at progress
// through Duration. A wobbly arrival can still be moving at progress 1; see
// Overrun.
func (tr Transition) At(progress float64) (pos, vel float64) {
	return tr.AtElapsed(time.Duration(Clamp01(progress) * float64(tr.Duration)))
}

// AtElapsed returns the position and velocity at elapsed time since the
// transition began. Eased transitions are done at Duration; springs run for
// Duration plus Overrun.
func (tr Transition) AtElapsed(elapsed time.Duration) (pos, vel float64) {
	if w := Clamp01(tr.Arrival.Wobbliness); w > 0 {
		return tr.spring(elapsed, w)
	}
	if tr.Duration <= 0 || elapsed >= tr.Duration {
		return tr.To, 0
	}
	return tr.eased(elapsed.Seconds() / tr.Duration.Seconds())
}

// Overrun is how long a wobbly arrival keeps moving after Duration. A spring
// never runs faster than its own settle time.
func (tr Transition) Overrun() time.Duration {
	w := Clamp01(tr.Arrival.Wobbliness)
	if w <= 0 || math.Abs(tr.To-tr.From) < 1e-9 {
		return 0
	}
	late, _ := Window(tr.Departure, tr.Arrival)
	_, seconds := tr.springMotion(w)
	end := tr.Duration.Seconds()*late + seconds
	over := time.Duration(end*float64(time.Second)) - tr.Duration
	if over < time.Millisecond {
		return 0
	}
	return over
}

func (tr Transition) eased(p float64) (pos, vel float64) {
	p = Clamp01(p)
	late, early := Window(tr.Departure, tr.Arrival)
	window := 1 - late - early

	switch {
	case p >= 1:
		return tr.To, 0
	case p <= late && late > 0:
		return tr.From, 0
	case p >= 1-early && early > 0:
		return tr.To, 0
	case window <= 0:
		if p < late {
			return tr.From, 0
		}
		return tr.To, 0
	}

	local := (p - late) / window
	seconds := tr.Duration.Seconds() * window
	b := tr.ease(seconds)
	y, slope := b.ValueAt(local)
	return y, slope / seconds
}

// ease builds the Bezier in (normalised time, value) space. Slowly pulls the
// control point along the time axis towards the far anchor.
func (tr Transition) ease(seconds float64) Bezier {
	d := tr.Departure.Clamped()
	a := tr.Arrival.Clamped()

	p1 := Point{X: d.Slowly, Y: tr.From}
	if tr.Velocity != 0 {
		p1.X = math.Max(p1.X, 1.0/3)
		p1.Y = tr.From + tr.Velocity*seconds*p1.X
	}
	return NewBezier(
		Point{X: 0, Y: tr.From},
		p1,
		Point{X: 1 - a.Slowly, Y: tr.To},
		Point{X: 1, Y: tr.To},
	)
}

// springMotion picks the spring for a wobbly arrival and how many real
// seconds it plays over: the moving window, stretched to the spring's settle
// time when the window is shorter.
func (tr Transition) springMotion(wobbliness float64) (Spring, float64) {
	late, early := Window(tr.Departure, tr.Arrival)
	window := tr.Duration.Seconds() * (1 - late - early)

	natural := NewSpring(wobbliness, 0)
	scale := math.Max(1, window/natural.Settle().Seconds())
	s := natural
	if tr.Velocity != 0 {
		// Velocity relative to the span, in simulated seconds.
		s = NewSpring(wobbliness, tr.Velocity/(tr.To-tr.From)*scale)
	}
	return s, s.Settle().Seconds() * scale
}

func (tr Transition) spring(elapsed time.Duration, wobbliness float64) (pos, vel float64) {
	span := tr.To - tr.From
	if math.Abs(span) < 1e-9 {
		return tr.To, 0
	}

	late, _ := Window(tr.Departure, tr.Arrival)
	local := elapsed.Seconds() - tr.Duration.Seconds()*late
	if local < 0 || (local == 0 && late > 0) {
		return tr.From, 0
	}

	s, seconds := tr.springMotion(wobbliness)
	y, slope := s.At(local / seconds)
	return tr.From + span*y, span * slope / seconds
}
