package stream

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledanim/util"
)

// A MultiTwinkle scatters a palette across the strip and scintillates some
// of the pixels. A particle swaps to a new palette colour at the peak of its
// glint, so the strip slowly reshuffles.
type MultiTwinkle struct {
	Palette []colorful.Color
	// Seed picks the background, Cycle the particles and their next colour.
	Seed      int64
	Cycle     int64
	Particles int
	Gain      float64
	// Saturation scales the chroma of a full glint. 0 keeps the pixel's
	// chroma.
	Saturation float64
	// Turned is set once the glint has peaked.
	Turned bool
}

func (t MultiTwinkle) backColour(rnd *rand.Rand) colorful.Color {
	return t.Palette[rnd.Intn(len(t.Palette))]
}

// Draw implements Pattern. The mood colour is used when the palette is empty.
func (t MultiTwinkle) Draw(f *Frame, colour colorful.Color, level float64) {
	if len(t.Palette) == 0 {
		Twinkle{Seed: t.Seed + t.Cycle, Particles: t.Particles, Gain: t.Gain, Saturation: t.Saturation}.Draw(f, colour, level)
		return
	}

	back := rand.New(rand.NewSource(t.Seed))
	for i := range f.pixels {
		f.pixels[i] = dim(t.backColour(back), level)
	}
	if len(f.pixels) == 0 {
		return
	}

	rnd := rand.New(rand.NewSource(t.Seed + t.Cycle + 1))
	for i := 0; i < t.Particles; i++ {
		p := rnd.Intn(len(f.pixels))
		next := dim(t.backColour(rnd), level)
		if t.Turned {
			f.pixels[p] = next
		}
		f.pixels[p] = glint(f.pixels[p], t.Gain, t.Saturation)
	}
}

// MultiTwinkleFrames builds cycles scintillations over a palette background.
func MultiTwinkleFrames(palette []colorful.Color, frames, cycles, particles int, seed int64, ease func(float64) float64) []Pattern {
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
		for i, gain := range lut {
			out = append(out, MultiTwinkle{
				Palette:    palette,
				Seed:       seed,
				Cycle:      int64(c),
				Particles:  particles,
				Gain:       gain,
				Saturation: sats[c],
				Turned:     i > len(lut)/2,
			})
		}
	}
	return out
}
