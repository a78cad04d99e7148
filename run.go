package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/matt-g-everett/ledanim/api"
	"github.com/matt-g-everett/ledanim/stream"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "stream frames to the broker",
	RunE:  runStream,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// mqttLogger routes the MQTT client's logging through zerolog.
type mqttLogger struct {
	level zerolog.Level
}

func (l mqttLogger) Println(v ...interface{}) {
	log.WithLevel(l.level).Str("component", "mqtt").Msg(strings.TrimSpace(fmt.Sprintln(v...)))
}

func (l mqttLogger) Printf(format string, v ...interface{}) {
	log.WithLevel(l.level).Str("component", "mqtt").Msgf(format, v...)
}

type app struct {
	Config   stream.Config
	Client   mqtt.Client
	Streamer *stream.Streamer
	Api      *api.Api
}

func newApp(config stream.Config) (*app, error) {
	moods, err := stream.BuildMoods(config.Moods, config.Pixels)
	if err != nil {
		return nil, err
	}

	a := new(app)
	a.Config = config
	controller := stream.NewController(moods, stream.Mood(config.InitialMood), config.Pixels)

	options := mqtt.NewClientOptions().
		AddBroker(config.Mqtt.URL).
		SetClientID(config.Mqtt.ClientID).
		SetUsername(config.Mqtt.Username).
		SetPassword(config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)

	a.Streamer = stream.NewStreamer(config, a.Client, controller)
	a.Api = api.NewApi(config.HTTP.Addr, config.HTTP.Static, controller, a.Streamer.Frames)
	a.Streamer.OnFrame(a.Api.Broadcast)
	return a, nil
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Info().Str("broker", a.Config.Mqtt.URL).Msg("connected")
	if err := a.Streamer.Subscribe(); err != nil {
		log.Error().Err(err).Msg("subscribe failed")
	}
}

func (a *app) run(ctx context.Context) error {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect to %s: %w", a.Config.Mqtt.URL, token.Error())
	}
	defer a.Client.Disconnect(250)

	go func() {
		if err := a.Api.Serve(ctx); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	err := a.Streamer.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runStream(cmd *cobra.Command, args []string) error {
	mqtt.ERROR = mqttLogger{level: zerolog.ErrorLevel}
	mqtt.WARN = mqttLogger{level: zerolog.WarnLevel}

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using the environment")
	}

	config, err := stream.LoadConfig(configPath)
	if err != nil {
		return err
	}
	log.Info().
		Str("config", configPath).
		Str("mood", config.InitialMood).
		Int("pixels", config.Pixels).
		Float64("frameRate", config.FrameRate).
		Msg("config loaded")

	a, err := newApp(config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.run(ctx)
}
