package util

import (
	"math/rand"
	"strings"

	"github.com/fogleman/ease"
)

// Easing functions by name, as written in mood configs.
var easings = map[string]func(float64) float64{
	"linear":       ease.Linear,
	"inquad":       ease.InQuad,
	"outquad":      ease.OutQuad,
	"inoutquad":    ease.InOutQuad,
	"incubic":      ease.InCubic,
	"outcubic":     ease.OutCubic,
	"inoutcubic":   ease.InOutCubic,
	"insine":       ease.InSine,
	"outsine":      ease.OutSine,
	"inoutsine":    ease.InOutSine,
	"inexpo":       ease.InExpo,
	"outexpo":      ease.OutExpo,
	"inoutexpo":    ease.InOutExpo,
	"incirc":       ease.InCirc,
	"outcirc":      ease.OutCirc,
	"inoutcirc":    ease.InOutCirc,
	"outbounce":    ease.OutBounce,
	"inoutbounce":  ease.InOutBounce,
	"outelastic":   ease.OutElastic,
	"inoutelastic": ease.InOutElastic,
}

// Easing looks up an easing function. Names are case insensitive and may use
// dashes or underscores, so "in-out-quad" and "InOutQuad" are the same.
func Easing(name string) (func(float64) float64, bool) {
	key := strings.ToLower(name)
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	fn, ok := easings[key]
	return fn, ok
}

// RandomiseSaturation picks a saturation between min and max.
func RandomiseSaturation(rnd *rand.Rand, min float64, max float64) float64 {
	return rnd.Float64()*(max-min) + min
}

// GenerateLut builds a gain table that rises through fn to the middle and
// falls back again.
func GenerateLut(length int, fn func(float64) float64) []float64 {
	if length <= 0 {
		return nil
	}
	if fn == nil {
		fn = ease.InOutQuad
	}
	half := length / 2
	lut := make([]float64, length)
	if half == 0 {
		lut[0] = fn(1)
		return lut
	}
	increment := 1.0 / float64(half)
	for i, j := 0, length-1; i < half; i, j = i+1, j-1 {
		value := fn(float64(i) * increment)
		lut[i] = value
		lut[j] = value
	}
	if length%2 == 1 {
		lut[half] = fn(1)
	}
	return lut
}
