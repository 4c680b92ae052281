package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vibecore/cmd/vibe/ui"
	"vibecore/internal/config"
	"vibecore/internal/demo"
	"vibecore/internal/logging"
	"vibecore/internal/sentiment"
	"vibecore/internal/storesync"
	"vibecore/internal/vibe"
)

var previewWatch bool

// previewCmd launches the live terminal preview
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview vibe transitions live in the terminal",
	Long: `Opens an interactive preview. Type questions to classify them, toggle the
speaking pulse and step the demo; the swatches animate through the same
targets a renderer would receive.

With --watch, edits to the config file are picked up while running: the
new timing applies to the next transition and typed questions use the new
classifier settings.`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&previewWatch, "watch", false, "Reload the config file on change")
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctrl := vibe.NewController(vibe.Options{
		Timing: cfg.Timing(),
		Logger: loggers.Get(logging.CategoryController),
	})
	defer ctrl.Close()

	anim := vibe.NewAnimator(ctrl.State(), nil)
	unsubscribe := ctrl.Subscribe(anim.Apply)
	defer unsubscribe()

	st := demo.NewStore(loggers.Get(logging.CategoryDemo))
	sync := storesync.New(st, ctrl, loggers.Get(logging.CategorySync))
	sync.Initialize()
	defer sync.Shutdown()

	opts := cfg.SentimentOptions()
	opts.Logger = loggers.Get(logging.CategorySentiment)
	classifier := sentiment.NewClassifier(opts)

	model := ui.NewPreviewModel(ctrl, anim, st, classifier, ui.DefaultStyles())
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("preview failed: %w", err)
		}
		return nil
	})

	if previewWatch {
		log := loggers.Get(logging.CategoryConfig)
		g.Go(func() error {
			if _, err := os.Stat(configPath); err != nil {
				log.Warn("config file not found; --watch has nothing to watch", zap.String("path", configPath))
				return nil
			}
			return config.Watch(ctx, configPath, func(next *config.Config, err error) {
				if err != nil {
					program.Send(ui.ConfigReloadedMsg{Err: err})
					return
				}
				opts := next.SentimentOptions()
				opts.Logger = loggers.Get(logging.CategorySentiment)
				program.Send(ui.ConfigReloadedMsg{
					Timing:   next.Timing(),
					Analyzer: sentiment.NewClassifier(opts),
				})
			}, config.WatchOptions{Logger: log})
		})
	}

	return g.Wait()
}
