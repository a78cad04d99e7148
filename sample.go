package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/matt-g-everett/ledanim/stream"
)

var (
	sampleFrom     string
	sampleTo       string
	sampleDuration time.Duration
	sampleCount    int
	sampleHorizon  time.Duration
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "preview a mood change without a broker",
	Long: `sample prints the colour and level the strip would show while moving from one
mood to another. Nothing is published.`,
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().StringVar(&sampleFrom, "from", "", "mood to start in (default: the initial mood)")
	sampleCmd.Flags().StringVar(&sampleTo, "mood", "", "mood to move to")
	sampleCmd.Flags().DurationVar(&sampleDuration, "duration", time.Second, "transition duration")
	sampleCmd.Flags().IntVar(&sampleCount, "samples", 10, "number of samples")
	sampleCmd.Flags().DurationVar(&sampleHorizon, "horizon", 0, "time covered by the samples (default: the duration)")
	_ = sampleCmd.MarkFlagRequired("mood")
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	config, err := stream.LoadConfig(configPath)
	if err != nil {
		return err
	}
	moods, err := stream.BuildMoods(config.Moods, config.Pixels)
	if err != nil {
		return err
	}

	from := stream.Mood(sampleFrom)
	if from == "" {
		from = stream.Mood(config.InitialMood)
	}
	to := stream.Mood(sampleTo)
	for _, m := range []stream.Mood{from, to} {
		if !moods.Has(m) {
			return fmt.Errorf("unknown mood %q", m)
		}
	}

	horizon := sampleHorizon
	if horizon <= 0 {
		horizon = sampleDuration
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OFFSET\tMOOD\tPROGRESS\tCOLOUR\tLEVEL")
	for _, p := range stream.Project(moods, from, to, sampleDuration, sampleCount, horizon) {
		fmt.Fprintf(w, "%v\t%s\t%.3f\t%s\t%.3f\n", p.Offset, p.Mood, p.Progress, p.Colour, p.Level)
	}
	return w.Flush()
}
