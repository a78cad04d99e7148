package stream

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v2"
)

// PasswordEnv overrides the MQTT password from the config file.
const PasswordEnv = "LEDANIM_MQTT_PASSWORD"

type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientId"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	HTTP struct {
		Addr   string `yaml:"addr"`
		Static string `yaml:"static"`
	} `yaml:"http"`
	FrameRate   float64               `yaml:"frameRate"`
	Pixels      int                   `yaml:"pixels"`
	KeepAlive   time.Duration         `yaml:"keepAlive"`
	InitialMood string                `yaml:"initialMood"`
	Moods       map[string]MoodConfig `yaml:"moods"`
}

// MoodConfig describes how a mood looks.
type MoodConfig struct {
	Colour string `yaml:"colour"`
	// Level scales brightness, full when left out.
	Level     *float64         `yaml:"level"`
	Pulse     *PulseConfig     `yaml:"pulse"`
	Departure *DepartureConfig `yaml:"departure"`
	Arrival   *ArrivalConfig   `yaml:"arrival"`
	Pattern   PatternConfig    `yaml:"pattern"`
}

// PulseConfig makes the brightness of a resting mood oscillate.
type PulseConfig struct {
	// Shape is wave, zigzag, wrap or an easing name.
	Shape  string        `yaml:"shape"`
	Min    float64       `yaml:"min"`
	Max    float64       `yaml:"max"`
	Period time.Duration `yaml:"period"`
	// Repeat stops after this many periods, zero loops forever.
	Repeat int           `yaml:"repeat"`
	Shift  float64       `yaml:"shift"`
	Pauses []PauseConfig `yaml:"pauses"`
}

type PauseConfig struct {
	Duration time.Duration `yaml:"duration"`
	At       float64       `yaml:"at"`
}

type DepartureConfig struct {
	Late   float64 `yaml:"late"`
	Slowly float64 `yaml:"slowly"`
}

type ArrivalConfig struct {
	Early      float64 `yaml:"early"`
	Slowly     float64 `yaml:"slowly"`
	Wobbliness float64 `yaml:"wobbliness"`
}

// PatternConfig picks the sprite frames drawn for a mood.
type PatternConfig struct {
	// Kind is solid, twinkle, multitwinkle, trail, streak or stripes.
	Kind   string `yaml:"kind"`
	Frames int    `yaml:"frames"`
	// Intro is how many frames play while moving into the mood.
	Intro     int           `yaml:"intro"`
	Period    time.Duration `yaml:"period"`
	Repeat    int           `yaml:"repeat"`
	Particles int           `yaml:"particles"`
	Cycles    int           `yaml:"cycles"`
	Easing    string        `yaml:"easing"`
	Length    int           `yaml:"length"`
	Seed      int64         `yaml:"seed"`
	Accent    string        `yaml:"accent"`
	Palette   []string      `yaml:"palette"`
	Gradient  GradientTable `yaml:"gradient"`
}

// LoadConfig reads a YAML config file, applies the environment and fills in
// defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if pw, ok := os.LookupEnv(PasswordEnv); ok {
		c.Mqtt.Password = pw
	}
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = "ledanim"
	}
	if c.Mqtt.Topics.Stream == "" {
		c.Mqtt.Topics.Stream = "home/xmastree/stream"
	}
	if c.Mqtt.Topics.Control == "" {
		c.Mqtt.Topics.Control = "home/xmastree/control"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":3000"
	}
	if c.HTTP.Static == "" {
		c.HTTP.Static = "client/dist"
	}
	if c.FrameRate <= 0 {
		c.FrameRate = 30
	}
	if c.Pixels <= 0 {
		c.Pixels = DefaultPixels
	}
	if c.KeepAlive <= 0 {
		c.KeepAlive = time.Second
	}
	if len(c.Moods) == 0 {
		c.Moods = DefaultMoods()
	}
	if c.InitialMood == "" {
		if _, ok := c.Moods["calm"]; ok {
			c.InitialMood = "calm"
		} else {
			c.InitialMood = c.MoodNames()[0]
		}
	}
}

func (c *Config) validate() error {
	if _, ok := c.Moods[c.InitialMood]; !ok {
		return fmt.Errorf("initial mood %q is not configured", c.InitialMood)
	}
	if c.Pixels > 0xffff {
		return errors.New("pixels must fit in 16 bits")
	}
	return nil
}

// MoodNames returns the configured mood names in order.
func (c *Config) MoodNames() []string {
	names := make([]string, 0, len(c.Moods))
	for name := range c.Moods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FramePeriod is the time between frames.
func (c *Config) FramePeriod() time.Duration {
	return time.Duration(float64(time.Second) / c.FrameRate)
}

// DefaultMoods are used when the config names none: the tree's original
// twinkle and rainbow trail.
func DefaultMoods() map[string]MoodConfig {
	return map[string]MoodConfig{
		"calm": {
			Colour: "#000005",
			Pattern: PatternConfig{
				Kind:      "twinkle",
				Frames:    24,
				Cycles:    4,
				Particles: 60,
				Period:    4 * time.Second,
			},
		},
		"rainbow": {
			Colour: "#100505",
			Pattern: PatternConfig{
				Kind:     "trail",
				Frames:   90,
				Length:   200,
				Period:   3 * time.Second,
				Gradient: RainbowGradient,
			},
		},
		"off": {
			Colour: "#000000",
		},
	}
}
