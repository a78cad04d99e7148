package stream

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const qos = 2

// Client is the part of an MQTT client the Streamer needs.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
}

// Streamer that streams RGB data frames to an ledrx device.
type Streamer struct {
	config     Config
	client     Client
	controller *Controller

	frames    atomic.Uint64
	lastFrame time.Time

	mu        sync.RWMutex
	listeners []func([]byte)
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client Client, controller *Controller) *Streamer {
	s := new(Streamer)
	s.config = config
	s.client = client
	s.controller = controller
	return s
}

// OnFrame registers fn to receive every published frame.
func (s *Streamer) OnFrame(fn func(data []byte)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Frames is the number of frames published.
func (s *Streamer) Frames() uint64 { return s.frames.Load() }

// Subscribe listens for control messages.
func (s *Streamer) Subscribe() error {
	topic := s.config.Mqtt.Topics.Control
	token := s.client.Subscribe(topic, qos, s.handleControl)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", topic, token.Error())
	}
	log.Info().Str("topic", topic).Msg("subscribed to control")
	return nil
}

func (s *Streamer) handleControl(_ mqtt.Client, msg mqtt.Message) {
	m, err := ParseControl(msg.Payload())
	if err == nil {
		err = m.Apply(s.controller)
	}
	if err != nil {
		log.Warn().Err(err).Str("topic", msg.Topic()).Msg("control message dropped")
	}
}

// SendFrame sends a frame as binary over MQTT to an ledrx device.
func (s *Streamer) SendFrame(now time.Time) error {
	f := s.controller.CalculateFrame(now)
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}

	token := s.client.Publish(s.config.Mqtt.Topics.Stream, qos, false, b)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish frame: %w", token.Error())
	}
	s.frames.Add(1)
	s.lastFrame = now

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, fn := range s.listeners {
		fn(b)
	}
	return nil
}

// Tick sends a frame if the picture may have changed or the device has gone
// KeepAlive without one.
func (s *Streamer) Tick(now time.Time) error {
	if s.controller.NeedsAnotherFrame() || s.lastFrame.IsZero() || now.Sub(s.lastFrame) >= s.config.KeepAlive {
		return s.SendFrame(now)
	}
	return nil
}

// Run causes the Streamer to send Frames until ctx is done.
func (s *Streamer) Run(ctx context.Context) error {
	publishTimer := time.NewTicker(s.config.FramePeriod())
	defer publishTimer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-publishTimer.C:
			if err := s.Tick(now); err != nil {
				log.Error().Err(err).Msg("frame not sent")
			}
		}
	}
}
