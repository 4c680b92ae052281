package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vibecore/cmd/vibe/ui"
	"vibecore/internal/logging"
	"vibecore/internal/vibe"
)

var pulseDuration time.Duration

// pulseCmd runs the speaking pulse and prints the audio targets it emits
var pulseCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Run the speaking pulse and print the audio level stream",
	Long: `Starts the synthetic speaking pulse for the given duration, printing
every audio target the controller emits, then stops it and prints the decay.`,
	Args: cobra.NoArgs,
	RunE: runPulse,
}

func init() {
	pulseCmd.Flags().DurationVar(&pulseDuration, "duration", 2*time.Second, "How long to pulse")
}

func runPulse(cmd *cobra.Command, args []string) error {
	ctrl := vibe.NewController(vibe.Options{
		Timing: cfg.Timing(),
		Logger: loggers.Get(logging.CategoryController),
	})
	defer ctrl.Close()

	out := cmd.OutOrStdout()
	start := time.Now()
	targets := make(chan vibe.Target, 64)
	unsubscribe := ctrl.Subscribe(func(tg vibe.Target) {
		if tg.Channel == vibe.ChannelAudioLevel || tg.Channel == vibe.ChannelSpeaking {
			select {
			case targets <- tg:
			default:
			}
		}
	})
	defer unsubscribe()

	printTargets := func() {
		for {
			select {
			case tg := <-targets:
				fmt.Fprintf(out, "%8s  %-11s %s %.2f over %s\n",
					time.Since(start).Round(time.Millisecond), tg.Channel, ui.Meter(tg.Value, 20), tg.Value, tg.Duration)
			default:
				return
			}
		}
	}

	ctrl.StartSpeakingPulse()
	ctx := cmd.Context()
	timer := time.NewTimer(pulseDuration)
	defer timer.Stop()
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-timer.C:
			break loop
		case <-ticker.C:
			printTargets()
		}
	}

	ctrl.StopSpeakingPulse()
	printTargets()
	return nil
}
