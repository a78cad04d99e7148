package stream

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledanim/stream/stripe"
)

// An InfinityStripe scrolls a repeating band of stripes along the strip.
type InfinityStripe struct {
	Band   []stripe.Stripe
	Offset float64
}

func bandLength(band []stripe.Stripe) int {
	n := 0
	for _, s := range band {
		n += s.Length
	}
	return n
}

// Draw implements Pattern. Stripe colours are dimmed by level; the mood
// colour is not used.
func (s InfinityStripe) Draw(f *Frame, _ colorful.Color, level float64) {
	total := float64(bandLength(s.Band))
	if total <= 0 {
		f.Fill(colorful.Color{})
		return
	}

	for i := range f.pixels {
		pos := math.Mod(float64(i)+s.Offset, total)
		if pos < 0 {
			pos += total
		}
		end := 0.0
		for _, st := range s.Band {
			end += float64(st.Length)
			if pos < end {
				f.pixels[i] = dim(st.Colour, level)
				break
			}
		}
	}
}

// StripeFrames scrolls one whole band over frames.
func StripeFrames(gen *stripe.RandomStripeGenerator, numPixels, frames int) []Pattern {
	if frames < 1 {
		frames = 1
	}
	band := gen.Band(numPixels)
	total := float64(bandLength(band))
	out := make([]Pattern, frames)
	for i := range out {
		out[i] = InfinityStripe{Band: band, Offset: total * float64(i) / float64(frames)}
	}
	return out
}
