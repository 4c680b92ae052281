package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vibecore/cmd/vibe/ui"
	"vibecore/internal/demo"
	"vibecore/internal/logging"
	"vibecore/internal/store"
	"vibecore/internal/storesync"
	"vibecore/internal/vibe"
)

var (
	demoSession string
	demoDB      string
)

// demoCmd groups the guided demo session commands
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Step the guided demo phase machine with saved sessions",
	Long: `Sessions are stored in SQLite. Each command loads the session, restores
the phase machine, resyncs the vibe, applies the change and saves it back.

Example:
  vibe demo new
  vibe demo advance --session <id>
  vibe demo answer --session <id> 3 12`,
}

var demoNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new demo session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id := demoSession
		if id == "" {
			id = store.NewSessionID()
		}
		return withDemoSession(cmd, id, true, func(*demo.Store) error { return nil })
	},
}

var demoShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a session's phase and derived vibe",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDemoSession(cmd, demoSession, false, func(*demo.Store) error { return nil })
	},
}

var demoAdvanceCmd = &cobra.Command{
	Use:   "advance",
	Short: "Advance to the next phase",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDemoSession(cmd, demoSession, false, func(st *demo.Store) error {
			if !st.Advance() {
				fmt.Fprintln(cmd.OutOrStdout(), "already at the final phase")
			}
			return nil
		})
	},
}

var demoAnswerCmd = &cobra.Command{
	Use:   "answer [answered] [total]",
	Short: "Record interview progress as answered out of total questions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		answered, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("answered: %w", err)
		}
		total, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("total: %w", err)
		}
		return withDemoSession(cmd, demoSession, false, func(st *demo.Store) error {
			st.RecordAnswer(answered, total)
			return nil
		})
	},
}

var demoResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Return the session to the first phase",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDemoSession(cmd, demoSession, false, func(st *demo.Store) error {
			st.Reset()
			return nil
		})
	},
}

var demoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snaps, err := openSnapshots()
		if err != nil {
			return err
		}
		defer snaps.Close()

		sessions, err := snaps.List(cmd.Context(), 50)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No saved sessions in %s.\n", snaps.Path())
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sessions in %s:\n", snaps.Path())
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SESSION\tPHASE\tCOVERAGE\tUPDATED")
		for _, s := range sessions {
			fmt.Fprintf(w, "%s\t%s\t%.0f%%\t%s\n", s.ID, s.Phase, s.Coverage, s.UpdatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

var demoDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a saved session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if demoSession == "" {
			return errors.New("--session is required")
		}
		snaps, err := openSnapshots()
		if err != nil {
			return err
		}
		defer snaps.Close()
		return snaps.Delete(cmd.Context(), demoSession)
	},
}

func init() {
	demoCmd.PersistentFlags().StringVarP(&demoSession, "session", "s", "", "Session id")
	demoCmd.PersistentFlags().StringVar(&demoDB, "db", "", "Snapshot database (default: store.database_path)")

	demoCmd.AddCommand(demoNewCmd)
	demoCmd.AddCommand(demoShowCmd)
	demoCmd.AddCommand(demoAdvanceCmd)
	demoCmd.AddCommand(demoAnswerCmd)
	demoCmd.AddCommand(demoResetCmd)
	demoCmd.AddCommand(demoListCmd)
	demoCmd.AddCommand(demoDeleteCmd)
}

func openSnapshots() (*store.SnapshotStore, error) {
	path := demoDB
	if path == "" {
		path = cfg.Store.DatabasePath
	}
	return store.Open(path, loggers.Get(logging.CategoryStore))
}

// withDemoSession loads a session into a fresh store and controller, keeps
// them in step, runs fn and saves the result. create allows a missing
// session.
func withDemoSession(cmd *cobra.Command, id string, create bool, fn func(*demo.Store) error) error {
	if id == "" {
		return errors.New("--session is required")
	}
	ctx := cmd.Context()

	snaps, err := openSnapshots()
	if err != nil {
		return err
	}
	defer snaps.Close()

	st := demo.NewStore(loggers.Get(logging.CategoryDemo))
	snap, err := snaps.Load(ctx, id)
	switch {
	case err == nil:
		st.Restore(snap)
	case errors.Is(err, store.ErrSnapshotNotFound) && create:
	case errors.Is(err, store.ErrSnapshotNotFound):
		return fmt.Errorf("no session %s (start one with `vibe demo new`)", id)
	default:
		return err
	}

	ctrl := vibe.NewController(vibe.Options{
		Timing: cfg.Timing(),
		Logger: loggers.Get(logging.CategoryController),
	})
	defer ctrl.Close()

	sync := storesync.New(st, ctrl, loggers.Get(logging.CategorySync))
	sync.Initialize()
	defer sync.Shutdown()
	sync.Resync()

	if err := fn(st); err != nil {
		return err
	}
	if err := snaps.Save(ctx, id, st.Snapshot()); err != nil {
		return err
	}
	loggers.Get(logging.CategoryCLI).Debug("session saved", zap.String("session", id))

	out := cmd.OutOrStdout()
	styles := ui.DefaultStyles()
	s := st.Snapshot()
	fmt.Fprintf(out, "%s %s\n", styles.Title.Render("session"), id)
	fmt.Fprintf(out, "%s %s (%.0f%% coverage)\n", styles.Muted.Render("phase"), s.Phase, s.CoveragePercent)
	fmt.Fprintln(out, styles.State(ctrl.State()))
	return nil
}
