package stream

import (
	"github.com/lucasb-eyer/go-colorful"
)

// A Pattern draws one still of an animation. A mood cycles through its
// patterns as sprite frames, so drawing must depend on nothing but the
// pattern's own fields and the arguments.
type Pattern interface {
	Draw(f *Frame, colour colorful.Color, level float64)
}

// Solid fills the strip with the mood colour.
type Solid struct{}

// Draw implements Pattern.
func (Solid) Draw(f *Frame, colour colorful.Color, level float64) {
	f.Fill(dim(colour, level))
}

// dim scales the light output of c by level.
func dim(c colorful.Color, level float64) colorful.Color {
	if level < 0 {
		level = 0
	}
	r, g, b := c.LinearRgb()
	return colorful.LinearRgb(r*level, g*level, b*level).Clamped()
}
