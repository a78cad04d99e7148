package stream

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
mqtt:
  url: tcp://broker:1883
  username: tree
  password: from-file
  topics:
    stream: tree/stream
frameRate: 50
pixels: 120
initialMood: night
moods:
  night:
    colour: "#000010"
    level: 0.5
    pattern:
      kind: twinkle
      frames: 12
      period: 2s
      particles: 10
  party:
    colour: "#ff0080"
    pulse:
      shape: wave
      min: 0.2
      max: 1
      period: 800ms
      pauses:
        - duration: 200ms
          at: 0.5
    arrival:
      wobbliness: 0.6
    pattern:
      kind: stripes
      frames: 30
      period: 3s
      palette: ["#ff0000", "#00ff00"]
`

func TestParseConfig(t *testing.T) {
	t.Setenv(PasswordEnv, "from-env")
	c, err := ParseConfig([]byte(testConfig))
	require.NoError(t, err)

	assert.Equal(t, "tcp://broker:1883", c.Mqtt.URL)
	assert.Equal(t, "from-env", c.Mqtt.Password)
	assert.Equal(t, "tree/stream", c.Mqtt.Topics.Stream)
	assert.Equal(t, "home/xmastree/control", c.Mqtt.Topics.Control)
	assert.Equal(t, 120, c.Pixels)
	assert.Equal(t, 20*time.Millisecond, c.FramePeriod())
	assert.Equal(t, []string{"night", "party"}, c.MoodNames())

	night := c.Moods["night"]
	require.NotNil(t, night.Level)
	assert.Equal(t, 0.5, *night.Level)
	assert.Equal(t, 2*time.Second, night.Pattern.Period)

	party := c.Moods["party"]
	require.NotNil(t, party.Pulse)
	assert.Equal(t, 800*time.Millisecond, party.Pulse.Period)
	require.Len(t, party.Pulse.Pauses, 1)
	assert.Equal(t, 200*time.Millisecond, party.Pulse.Pauses[0].Duration)
	require.NotNil(t, party.Arrival)
	assert.Equal(t, 0.6, party.Arrival.Wobbliness)
}

func TestParseConfigDefaults(t *testing.T) {
	c, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "ledanim", c.Mqtt.ClientID)
	assert.Equal(t, "home/xmastree/stream", c.Mqtt.Topics.Stream)
	assert.Equal(t, ":3000", c.HTTP.Addr)
	assert.Equal(t, DefaultPixels, c.Pixels)
	assert.Equal(t, 30.0, c.FrameRate)
	assert.Equal(t, time.Second, c.KeepAlive)
	assert.Equal(t, "calm", c.InitialMood)
	assert.Contains(t, c.Moods, "rainbow")
}

func TestParseConfigRejectsUnknownInitialMood(t *testing.T) {
	_, err := ParseConfig([]byte("initialMood: nope\n"))
	assert.ErrorContains(t, err, "nope")

	_, err = ParseConfig([]byte("pixels: [1"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "night", c.InitialMood)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
