package stream

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// A GradientTrail spreads a gradient along the strip, shifted by Offset pixels.
type GradientTrail struct {
	Gradient    GradientTable
	TrailLength int
	Offset      float64
}

// Draw implements Pattern. The mood colour supplies chroma and luminance, the
// gradient the hue.
func (g GradientTrail) Draw(f *Frame, colour colorful.Color, level float64) {
	_, chroma, luminance := dim(colour, level).Hcl()
	trail := float64(max(1, g.TrailLength))
	numPixels := len(f.pixels)
	for i := 0; i < numPixels; i++ {
		t := math.Mod(float64(i+numPixels)-g.Offset, trail) / trail
		if t < 0 {
			t += 1
		}
		f.pixels[i] = g.Gradient.GetColor(t, chroma, luminance).Clamped()
	}
}

// TrailFrames moves the gradient one whole trail length over frames.
func TrailFrames(gradient GradientTable, trailLength, frames int) []Pattern {
	if frames < 1 {
		frames = 1
	}
	out := make([]Pattern, frames)
	for i := range out {
		out[i] = GradientTrail{
			Gradient:    gradient,
			TrailLength: trailLength,
			Offset:      float64(trailLength) * float64(i) / float64(frames),
		}
	}
	return out
}
