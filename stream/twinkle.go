package stream

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledanim/util"
)

const (
	// maxTwinkleLuminance is how bright a fully lit particle gets.
	maxTwinkleLuminance = 0.6
	// minTwinkleSaturation bounds how washed out a cycle's glints can be.
	minTwinkleSaturation = 0.5
)

// A Twinkle lights a random set of particles over the mood colour.
type Twinkle struct {
	Seed      int64
	Particles int
	// Gain lifts the particles from the background (0) to full glint (1).
	Gain float64
	// Saturation scales the chroma of a full glint. 0 keeps the mood's
	// chroma.
	Saturation float64
}

// Draw implements Pattern.
func (t Twinkle) Draw(f *Frame, colour colorful.Color, level float64) {
	back := dim(colour, level)
	f.Fill(back)
	if len(f.pixels) == 0 {
		return
	}

	g := glint(back, t.Gain, t.Saturation)
	rnd := rand.New(rand.NewSource(t.Seed))
	for i := 0; i < t.Particles; i++ {
		f.pixels[rnd.Intn(len(f.pixels))] = g
	}
}

func glint(c colorful.Color, gain, saturation float64) colorful.Color {
	h, chroma, l := c.Hcl()
	if saturation > 0 {
		// Wash out towards saturation as the glint brightens.
		chroma *= 1 - gain*(1-saturation)
	}

	// Calculate the difference to the max luminance we want
	lumDiff := maxTwinkleLuminance - l
	return colorful.Hcl(h, chroma, l+(lumDiff*gain)).Clamped()
}

// cycleSaturations picks a glint saturation for each cycle.
func cycleSaturations(seed int64, cycles int) []float64 {
	rnd := rand.New(rand.NewSource(seed))
	out := make([]float64, cycles)
	for i := range out {
		out[i] = util.RandomiseSaturation(rnd, minTwinkleSaturation, 1)
	}
	return out
}

// TwinkleFrames builds a scintillation: one set of particles per cycle whose
// gain rises and falls through ease, cycles sets in a row.
func TwinkleFrames(frames, cycles, particles int, seed int64, ease func(float64) float64) []Pattern {
	if frames < 1 {
		frames = 1
	}
	if cycles < 1 {
		cycles = 1
	}
	lut := util.GenerateLut(frames, ease)
	sats := cycleSaturations(seed, cycles)
	out := make([]Pattern, 0, frames*cycles)
	for c := 0; c < cycles; c++ {
		for _, gain := range lut {
			out = append(out, Twinkle{Seed: seed + int64(c), Particles: particles, Gain: gain, Saturation: sats[c]})
		}
	}
	return out
}
