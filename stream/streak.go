package stream

import (
	"math"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"
)

// A Streak is a band of accent colour at Position that fades in then out
// as it crosses the strip.
type Streak struct {
	Colour   colorful.Color
	Position float64
	Length   float64
	Gain     float64
}

// Draw implements Pattern.
func (s Streak) Draw(f *Frame, colour colorful.Color, level float64) {
	f.Fill(dim(colour, level))

	bias := ease.InOutQuad(math.Max(0, math.Min(1, s.Gain)))
	start := max(0, int(math.Ceil(s.Position)))
	end := min(len(f.pixels)-1, int(math.Floor(s.Position+s.Length)))
	for i := start; i <= end; i++ {
		f.pixels[i] = f.pixels[i].BlendHcl(s.Colour, bias).Clamped()
	}
}

// StreakFrames sweeps a streak from before the first pixel to past the last.
// The streak is brightest half way across.
func StreakFrames(accent colorful.Color, numPixels, length, frames int) []Pattern {
	if frames < 1 {
		frames = 1
	}
	out := make([]Pattern, frames)
	span := float64(numPixels + length)
	for i := range out {
		p := float64(i) / float64(frames)
		gain := 1 - math.Abs(2*p-1)
		out[i] = Streak{
			Colour:   accent,
			Position: p*span - float64(length),
			Length:   float64(length),
			Gain:     gain,
		}
	}
	return out
}
