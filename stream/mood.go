package stream

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledanim/animator"
	"github.com/matt-g-everett/ledanim/curve"
	"github.com/matt-g-everett/ledanim/oscillator"
	"github.com/matt-g-everett/ledanim/sprite"
	"github.com/matt-g-everett/ledanim/stream/stripe"
	"github.com/matt-g-everett/ledanim/util"
)

// Mood is the discrete state the strip moves between.
type Mood string

// MoodSpec is everything a mood projects onto.
type MoodSpec struct {
	Colour colorful.Color
	Level  animator.Movement
	Frames sprite.Frames[Pattern]
}

var unknownMood = MoodSpec{
	Level:  animator.At(0),
	Frames: sprite.Single[Pattern](Solid{}),
}

// Moods resolves moods to their specs.
type Moods map[Mood]MoodSpec

// BuildMoods turns mood configs into specs for a strip of numPixels.
func BuildMoods(configs map[string]MoodConfig, numPixels int) (Moods, error) {
	m := make(Moods, len(configs))
	for name, mc := range configs {
		spec, err := buildMood(mc, numPixels)
		if err != nil {
			return nil, fmt.Errorf("mood %q: %w", name, err)
		}
		m[Mood(name)] = spec
	}
	return m, nil
}

func (m Moods) spec(mood Mood) MoodSpec {
	if s, ok := m[mood]; ok {
		return s
	}
	return unknownMood
}

// Has reports whether mood is configured.
func (m Moods) Has(mood Mood) bool {
	_, ok := m[mood]
	return ok
}

// Names lists the moods in order.
func (m Moods) Names() []Mood {
	names := make([]Mood, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func (m Moods) Colour(mood Mood) colorful.Color { return m.spec(mood).Colour }

func (m Moods) Level(mood Mood) animator.Movement { return m.spec(mood).Level }

func (m Moods) Frames(mood Mood) sprite.Frames[Pattern] { return m.spec(mood).Frames }

// Animating reports whether a mood still changes after resting for elapsed.
func (m Moods) Animating(mood Mood, elapsed time.Duration) bool {
	s := m.spec(mood)
	if !s.Level.Settled(elapsed) {
		return true
	}
	rest, ok := s.Frames.Rest()
	return ok && !rest.Stable(elapsed)
}

func buildMood(mc MoodConfig, numPixels int) (MoodSpec, error) {
	var spec MoodSpec

	colour, err := parseColour(mc.Colour)
	if err != nil {
		return spec, err
	}
	spec.Colour = colour

	departure, arrival := curve.DefaultDeparture, curve.DefaultArrival
	if d := mc.Departure; d != nil {
		departure = curve.Departure{Late: d.Late, Slowly: d.Slowly}
	}
	if a := mc.Arrival; a != nil {
		arrival = curve.Arrival{Early: a.Early, Slowly: a.Slowly, Wobbliness: a.Wobbliness}
	}

	level := 1.0
	if mc.Level != nil {
		level = *mc.Level
	}
	if mc.Pulse != nil {
		osc, err := buildPulse(*mc.Pulse)
		if err != nil {
			return spec, err
		}
		spec.Level = animator.Oscillate(departure, arrival, osc)
	} else {
		spec.Level = animator.Position(departure, arrival, level)
	}

	spec.Frames, err = buildFrames(mc.Pattern, numPixels)
	return spec, err
}

func parseColour(s string) (colorful.Color, error) {
	if s == "" {
		return colorful.Color{}, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return c, nil
}

func buildPulse(pc PulseConfig) (oscillator.Timed, error) {
	var osc oscillator.Oscillator
	switch strings.ToLower(pc.Shape) {
	case "", "wave":
		osc = oscillator.Wave(pc.Min, pc.Max)
	case "zigzag":
		osc = oscillator.Zigzag(pc.Min, pc.Max)
	case "wrap":
		osc = oscillator.Wrap(pc.Min, pc.Max)
	default:
		fn, ok := util.Easing(pc.Shape)
		if !ok {
			return oscillator.Timed{}, fmt.Errorf("unknown pulse shape %q", pc.Shape)
		}
		lo, hi := pc.Min, pc.Max
		osc = oscillator.Interpolate(func(p float64) float64 {
			return lo + (hi-lo)*fn(p)
		})
	}

	if pc.Shift != 0 {
		osc = osc.Shift(pc.Shift)
	}
	for _, p := range pc.Pauses {
		osc = osc.Pause(p.Duration, p.At)
	}

	period := pc.Period
	if period <= 0 {
		period = time.Second
	}
	if pc.Repeat > 0 {
		return osc.Repeat(pc.Repeat, period), nil
	}
	return osc.Loop(period), nil
}

func buildFrames(pc PatternConfig, numPixels int) (sprite.Frames[Pattern], error) {
	items, err := buildPatterns(pc, numPixels)
	if err != nil {
		return sprite.Frames[Pattern]{}, err
	}

	intro := max(1, min(pc.Intro, len(items)))
	children := make([]sprite.Frames[Pattern], 0, intro-1)
	for _, p := range items[1:intro] {
		children = append(children, sprite.Single(p))
	}
	transition := sprite.Walk(items[0], children...)
	if len(items) == 1 || pc.Period <= 0 {
		return transition, nil
	}

	var period sprite.Period
	if pc.Repeat > 0 {
		period = sprite.Repeat(pc.Repeat, pc.Period)
	} else {
		period = sprite.Loop(pc.Period)
	}
	cycle := make([]sprite.Frames[Pattern], len(items))
	for i, p := range items {
		cycle[i] = sprite.Single(p)
	}
	return sprite.WithRest(sprite.Cycle(period, cycle...), transition), nil
}

func buildPatterns(pc PatternConfig, numPixels int) ([]Pattern, error) {
	frames := max(1, pc.Frames)
	switch strings.ToLower(pc.Kind) {
	case "", "solid":
		return []Pattern{Solid{}}, nil
	case "twinkle":
		fn := easingFor(pc.Easing)
		return TwinkleFrames(frames, pc.Cycles, max(1, pc.Particles), pc.Seed, fn), nil
	case "trail":
		gradient := pc.Gradient
		if len(gradient) == 0 {
			gradient = RainbowGradient
		}
		return TrailFrames(gradient, max(1, pc.Length), frames), nil
	case "streak":
		accent, err := parseColour(pc.Accent)
		if err != nil {
			return nil, err
		}
		if pc.Accent == "" {
			accent = colorful.Color{R: 0.45, G: 0.05, B: 0.2}
		}
		return StreakFrames(accent, numPixels, max(1, pc.Length), frames), nil
	case "multitwinkle":
		palette, err := parsePalette(pc.Palette)
		if err != nil {
			return nil, err
		}
		fn := easingFor(pc.Easing)
		return MultiTwinkleFrames(palette, frames, pc.Cycles, max(1, pc.Particles), pc.Seed, fn), nil
	case "stripes":
		palette, err := parsePalette(pc.Palette)
		if err != nil {
			return nil, err
		}
		length := max(2, pc.Length)
		gen := stripe.NewRandomStripeGenerator(pc.Seed, palette, length/2, length*2)
		return StripeFrames(gen, numPixels, frames), nil
	default:
		return nil, fmt.Errorf("unknown pattern %q", pc.Kind)
	}
}

func parsePalette(hexes []string) ([]colorful.Color, error) {
	palette := make([]colorful.Color, 0, len(hexes))
	for _, s := range hexes {
		c, err := parseColour(s)
		if err != nil {
			return nil, err
		}
		palette = append(palette, c)
	}
	return palette, nil
}

func easingFor(name string) func(float64) float64 {
	if fn, ok := util.Easing(name); ok {
		return fn
	}
	return nil
}
