package curve

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
	gocurve "honnef.co/go/curve"
)

const (
	springFPS         = 120
	springFrequency   = 2 * math.Pi
	springMaxDuration = 10 * time.Second
	settlePosition    = 0.005
	settleVelocity    = 0.05
	springAccuracy    = 1e-3
	springCacheSize   = 256
)

// Spring is a damped spring moving from 0 to 1, simulated once with harmonica
// and fitted to a chain of Bezier segments over normalised time. The chain
// breaks wherever the velocity changes sign so each segment is monotonic.
type Spring struct {
	settle   time.Duration
	segments []Bezier
}

// NewSpring simulates a unit move. wobbliness in [0,1] maps onto damping
// from critically damped down to 0.2. velocity is the starting velocity in
// units per simulated second.
func NewSpring(wobbliness, velocity float64) Spring {
	key := springKey{Clamp01(wobbliness), velocity}
	springs.Lock()
	s, ok := springs.m[key]
	springs.Unlock()
	if ok {
		return s
	}

	s = fitSpring(simulate(key.wobbliness, velocity))

	springs.Lock()
	if len(springs.m) >= springCacheSize {
		springs.m = map[springKey]Spring{}
	}
	springs.m[key] = s
	springs.Unlock()
	return s
}

type springKey struct {
	wobbliness, velocity float64
}

var springs = struct {
	sync.Mutex
	m map[springKey]Spring
}{m: map[springKey]Spring{}}

// Settle is the simulated time taken to come to rest.
func (s Spring) Settle() time.Duration { return s.settle }

// Segments returns the number of Bezier segments in the chain.
func (s Spring) Segments() int { return len(s.segments) }

// At returns the position and its slope with respect to normalised time x.
func (s Spring) At(x float64) (pos, slope float64) {
	if x >= 1 || len(s.segments) == 0 {
		return 1, 0
	}
	if x < 0 {
		x = 0
	}
	for _, b := range s.segments {
		if x <= b.P3.X {
			return b.ValueAt(x)
		}
	}
	return 1, 0
}

// trajectory is the sampled spring, evenly spaced dt apart. It is fitted as
// the graph (t/total, pos) so its parameter is normalised time.
type trajectory struct {
	dt       float64
	pos, vel []float64
}

func simulate(wobbliness, velocity float64) trajectory {
	damping := 1 - 0.8*wobbliness
	dt := harmonica.FPS(springFPS)
	h := harmonica.NewSpring(dt, springFrequency, damping)

	tr := trajectory{dt: dt, pos: []float64{0}, vel: []float64{velocity}}
	pos, vel, t := 0.0, velocity, 0.0
	for t < springMaxDuration.Seconds() {
		pos, vel = h.Update(pos, vel, 1)
		t += dt
		tr.pos = append(tr.pos, pos)
		tr.vel = append(tr.vel, vel)
		if math.Abs(1-pos) < settlePosition && math.Abs(vel) < settleVelocity {
			break
		}
	}

	// Land exactly on the target.
	last := len(tr.pos) - 1
	tr.pos[last], tr.vel[last] = 1, 0
	return tr
}

func (tr trajectory) total() float64 {
	return tr.dt * float64(len(tr.pos)-1)
}

// sample interpolates between the two samples either side of u with a cubic
// Hermite, returning the position and d(pos)/du.
func (tr trajectory) sample(u float64) (pos, slope float64) {
	total := tr.total()
	t := Clamp01(u) * total
	i := int(t / tr.dt)
	if i > len(tr.pos)-2 {
		i = len(tr.pos) - 2
	}
	s := t/tr.dt - float64(i)
	p0, p1 := tr.pos[i], tr.pos[i+1]
	m0, m1 := tr.vel[i]*tr.dt, tr.vel[i+1]*tr.dt

	s2, s3 := s*s, s*s*s
	pos = (2*s3-3*s2+1)*p0 + (s3-2*s2+s)*m0 + (-2*s3+3*s2)*p1 + (s3-s2)*m1
	ds := (6*s2-6*s)*p0 + (3*s2-4*s+1)*m0 + (-6*s2+6*s)*p1 + (3*s2-2*s)*m1
	return pos, ds / tr.dt * total
}

func (tr trajectory) SamplePtDeriv(u float64) (gocurve.Point, gocurve.Vec2) {
	pos, slope := tr.sample(u)
	return gocurve.Pt(u, pos), gocurve.Vec2{X: 1, Y: slope}
}

func (tr trajectory) SamplePtTangent(u, sign float64) gocurve.CurveFitSample {
	p, d := tr.SamplePtDeriv(u)
	return gocurve.CurveFitSample{Point: p, Tangent: d}
}

// BreakCusp reports the first turning point strictly inside (start, end).
func (tr trajectory) BreakCusp(start, end float64) (float64, bool) {
	total := tr.total()
	first := int(math.Floor(start*total/tr.dt)) + 1
	if first < 1 {
		first = 1
	}
	for i := first; i < len(tr.vel); i++ {
		a, b := tr.vel[i-1], tr.vel[i]
		if a*b >= 0 {
			continue
		}
		t := (float64(i-1) + a/(a-b)) * tr.dt
		u := t / total
		if u >= end {
			return 0, false
		}
		if u > start {
			return u, true
		}
	}
	return 0, false
}

func fitSpring(tr trajectory) Spring {
	s := Spring{settle: time.Duration(tr.total() * float64(time.Second))}
	var cur Point
	for el := range gocurve.FitToBezPath(tr, springAccuracy) {
		switch el.Kind {
		case gocurve.MoveToKind:
			cur = el.P0
		case gocurve.CubicToKind:
			s.segments = append(s.segments, NewBezier(cur, el.P0, el.P1, el.P2))
			cur = el.P2
		}
	}
	return s
}
