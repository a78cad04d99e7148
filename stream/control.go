package stream

import (
	"encoding/json"
	"fmt"
	"time"
)

// ControlMessage asks the controller to change mood. Durations use Go
// syntax, e.g. "500ms".
type ControlMessage struct {
	Mood      string `json:"mood"`
	Duration  string `json:"duration"`
	Interrupt bool   `json:"interrupt"`
	Wait      string `json:"wait"`
}

// ParseControl decodes a control message.
func ParseControl(data []byte) (ControlMessage, error) {
	var m ControlMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode control message: %w", err)
	}
	if m.Mood == "" {
		return m, fmt.Errorf("control message names no mood")
	}
	return m, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration %q: %w", s, err)
	}
	return d, nil
}

// Apply schedules the change on c.
func (m ControlMessage) Apply(c *Controller) error {
	d, err := parseDuration(m.Duration)
	if err != nil {
		return err
	}
	wait, err := parseDuration(m.Wait)
	if err != nil {
		return err
	}
	return c.Change(Mood(m.Mood), d, m.Interrupt, wait)
}
