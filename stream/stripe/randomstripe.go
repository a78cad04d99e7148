package stripe

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Stripe is a run of one colour.
type Stripe struct {
	Colour colorful.Color
	Length int
}

type RandomStripeGenerator struct {
	rnd       *rand.Rand
	palette   []colorful.Color
	current   int
	stripeMin int
	stripeMax int
}

// NewRandomStripeGenerator picks from palette, or from random hues when the
// palette is empty. Stripe lengths fall in [stripeMin, stripeMax).
func NewRandomStripeGenerator(seed int64, palette []colorful.Color, stripeMin, stripeMax int) *RandomStripeGenerator {
	g := new(RandomStripeGenerator)
	g.rnd = rand.New(rand.NewSource(seed))
	g.palette = palette
	g.current = -1
	g.stripeMin = max(1, stripeMin)
	g.stripeMax = max(g.stripeMin+1, stripeMax)
	return g
}

func (g *RandomStripeGenerator) CreateStripe() Stripe {
	var colour colorful.Color
	switch len(g.palette) {
	case 0:
		colour = colorful.Hsl(g.rnd.Float64()*360.0, 1.0, 0.2)
	case 1:
		g.current = 0
		colour = g.palette[0]
	default:
		// Choose a new colour that's different from the previous colour
		for {
			newCurrent := g.rnd.Intn(len(g.palette))
			if newCurrent != g.current {
				g.current = newCurrent
				break
			}
		}

		colour = g.palette[g.current]
	}

	stripeLength := g.rnd.Intn(g.stripeMax-g.stripeMin) + g.stripeMin
	return Stripe{colour, stripeLength}
}

// Band creates stripes until they cover at least length pixels.
func (g *RandomStripeGenerator) Band(length int) []Stripe {
	var band []Stripe
	for covered := 0; covered < length || len(band) == 0; {
		s := g.CreateStripe()
		band = append(band, s)
		covered += s.Length
	}
	return band
}
