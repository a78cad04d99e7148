package stream

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/matt-g-everett/ledanim/animator"
	"github.com/matt-g-everett/ledanim/timeline"
)

// scene is what the controller animates.
type scene struct {
	mood timeline.Timeline[Mood]
}

// Controller that manages moods and renders them to frames.
type Controller struct {
	mu        sync.Mutex
	moods     Moods
	numPixels int
	scene     scene
	animator  animator.Animator[scene]
}

// NewController creates an instance of a Controller resting at initial.
func NewController(moods Moods, initial Mood, numPixels int) *Controller {
	c := new(Controller)
	c.moods = moods
	c.numPixels = numPixels
	c.scene = scene{mood: timeline.Init(initial)}
	c.animator = animator.WatchWith(animator.New[scene](), "mood",
		func(s scene) timeline.Timeline[Mood] { return s.mood },
		func(s scene, tl timeline.Timeline[Mood]) scene { s.mood = tl; return s },
		moods.Animating,
	)

	return c
}

// Change schedules a move to mood over duration after waiting for wait. With
// interrupt the move starts at the next frame, otherwise it queues behind
// whatever is already scheduled.
func (c *Controller) Change(mood Mood, duration time.Duration, interrupt bool, wait time.Duration) error {
	if !c.moods.Has(mood) {
		return fmt.Errorf("unknown mood %q", mood)
	}

	steps := []timeline.Step[Mood]{timeline.TransitionTo(duration, mood)}
	if wait > 0 {
		steps = append([]timeline.Step[Mood]{timeline.Wait[Mood](wait)}, steps...)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if interrupt {
		c.scene.mood = c.scene.mood.Interrupt(steps...)
	} else {
		c.scene.mood = c.scene.mood.Queue(steps...)
	}
	log.Info().
		Str("mood", string(mood)).
		Dur("duration", duration).
		Dur("wait", wait).
		Bool("interrupt", interrupt).
		Msg("mood change scheduled")
	return nil
}

// CalculateFrame advances to now and renders the strip.
func (c *Controller) CalculateFrame(now time.Time) *Frame {
	c.mu.Lock()
	c.scene = c.animator.Advance(now, c.scene)
	tl := c.scene.mood
	c.mu.Unlock()

	colour := animator.Color(tl, c.moods.Colour)
	level := animator.Move(tl, c.moods.Level).Position
	pattern := animator.Step(tl, c.moods.Frames)

	f := NewFrame(c.numPixels)
	pattern.Draw(f, colour, level)
	if timeline.Arrived(tl) {
		return f
	}

	// Cross-fade from the pattern being left.
	from := NewFrame(c.numPixels)
	c.moods.Frames(timeline.Previous(tl)).Last().Draw(from, colour, level)
	return from.InterpolateFrame(f, timeline.Progress(tl))
}

// NeedsAnotherFrame reports whether the next frame may differ from the last.
func (c *Controller) NeedsAnotherFrame() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.animator.NeedsAnotherFrame(c.scene)
}

// Running reports whether a mood change is under way or pending.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene.mood.Running()
}

// Current is the mood most recently reached.
func (c *Controller) Current() Mood {
	c.mu.Lock()
	defer c.mu.Unlock()
	return timeline.Current(c.scene.mood)
}

// Timeline returns the mood timeline as of the last frame.
func (c *Controller) Timeline() timeline.Timeline[Mood] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene.mood
}

// Snapshot describes the mood timeline for inspection.
func (c *Controller) Snapshot() timeline.Snapshot[Mood] {
	return timeline.Describe(c.Timeline())
}

// Moods returns the configured moods.
func (c *Controller) Moods() Moods { return c.moods }
