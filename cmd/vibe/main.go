package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vibecore/internal/config"
	"vibecore/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Set up in PersistentPreRunE
	cfg     *config.Config
	logger  *zap.Logger
	loggers *logging.Registry
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vibe",
	Short: "vibe - visual state controller for the coach experience",
	Long: `vibe drives the four-axis visual state (theme, complexity, orb energy,
audio) behind the coach experience.

It classifies interview questions into a recommended vibe, steps the guided
demo phase machine with saved sessions, enumerates the addressable
configuration space, and previews transitions live in the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(cfg.Logging.Logger(), verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		loggers = logging.NewRegistry(logger, cfg.Logging.Logger())
		loggers.Get(logging.CategoryCLI).Debug("command starting",
			zap.String("command", cmd.CommandPath()),
			zap.String("config", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the YAML config file")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(configsCmd)
	rootCmd.AddCommand(pulseCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(initConfigCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
