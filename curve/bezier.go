// Package curve holds the numeric routines behind transitions: cubic Bezier
// evaluation, personality-shaped easing and springs approximated by Bezier
// chains.
package curve

import (
	"math"

	gocurve "honnef.co/go/curve"
)

// Point is a control point. X is normalised time, Y the value.
type Point = gocurve.Point

// Bezier is a cubic Bezier segment in (normalised time, value) space.
type Bezier struct {
	gocurve.CubicBez
}

// NewBezier builds the segment with the given control points.
func NewBezier(p0, p1, p2, p3 Point) Bezier {
	return Bezier{gocurve.CubicBez{P0: p0, P1: p1, P2: p2, P3: p3}}
}

// At evaluates the curve at parameter t.
func (b Bezier) At(t float64) Point {
	return b.Eval(t)
}

// Derivative is the first derivative with respect to t.
func (b Bezier) Derivative(t float64) Point {
	mt := 1 - t
	d0, d1, d2 := b.P1.Sub(b.P0), b.P2.Sub(b.P1), b.P3.Sub(b.P2)
	return Point{
		X: 3 * (mt*mt*d0.X + 2*mt*t*d1.X + t*t*d2.X),
		Y: 3 * (mt*mt*d0.Y + 2*mt*t*d1.Y + t*t*d2.Y),
	}
}

// SolveX finds the parameter whose X equals x. X must be monotonic in t.
func (b Bezier) SolveX(x float64) float64 {
	lo, hi := b.P0.X, b.P3.X
	if x <= lo {
		return 0
	}
	if x >= hi {
		return 1
	}

	// X(t) - x in power basis.
	c0 := b.P0.X - x
	c1 := 3 * (b.P1.X - b.P0.X)
	c2 := 3 * (b.P2.X - 2*b.P1.X + b.P0.X)
	c3 := b.P3.X - 3*b.P2.X + 3*b.P1.X - b.P0.X
	roots, n := gocurve.SolveCubic(c0, c1, c2, c3)
	for _, t := range roots[:n] {
		if t >= -1e-9 && t <= 1+1e-9 {
			return clamp(t, 0, 1)
		}
	}

	// Rounding can push the root just outside [0,1]; bisect instead.
	a, c := 0.0, 1.0
	t := 0.5
	for i := 0; i < 50; i++ {
		dx := b.At(t).X - x
		if math.Abs(dx) < 1e-12 {
			break
		}
		if dx > 0 {
			c = t
		} else {
			a = t
		}
		t = (a + c) / 2
	}
	return t
}

// ValueAt returns Y and dY/dX at the point whose X equals x.
func (b Bezier) ValueAt(x float64) (y, slope float64) {
	t := b.SolveX(x)
	y = b.At(t).Y

	// dX/dt vanishes at the ends of an eased curve; nudge inwards.
	ts := clamp(t, 1e-6, 1-1e-6)
	d := b.Derivative(ts)
	if math.Abs(d.X) < 1e-12 {
		return y, 0
	}
	return y, d.Y / d.X
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 clamps x into [0,1]. NaN becomes 0.
func Clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return clamp(x, 0, 1)
}
