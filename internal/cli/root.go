package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/focus/internal/focus"
	"github.com/sadopc/focus/internal/logging"
	"github.com/sadopc/focus/internal/timer"
	"github.com/sadopc/focus/internal/tui"
)

// NewRootCommand creates the top-level Cobra command to host subcommands and TUI launcher.
func NewRootCommand(ctx context.Context) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Pomodoro timer, task list, and daily focus goals in your terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(ctx, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config.yaml (default: $FOCUS_HOME/config.yaml)")

	cmd.AddCommand(
		newTaskCommand(opts),
		newStatsCommand(opts),
		newGoalCommand(opts),
		newStreakCommand(opts),
		newSettingsCommand(opts),
		newExportCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(),
	)

	return cmd
}

func runTUI(ctx context.Context, opts *options) error {
	s, cfg, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	logger, closer, err := logging.New(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closer.Close()

	if n, err := focus.CloseStale(s); err != nil {
		logger.Warn("close stale sessions", "err", err)
	} else if n > 0 {
		logger.Info("closed stale sessions", "count", n)
	}

	engine, err := timer.New(cfg.TimerConfig())
	if err != nil {
		return err
	}
	ctrl := focus.NewController(engine, s, logger)
	// Runs on every exit path, including an interrupted Run.
	defer func() {
		if err := ctrl.Close(); err != nil {
			logger.Error("close session", "err", err)
		}
	}()

	logger.Info("starting", "db", cfg.DBPath, "work", cfg.WorkMinutes, "every", cfg.SessionsBeforeLongBreak)
	app := tui.NewApp(s, ctrl, cfg, logger)
	if err := runProgram(ctx, app); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

// runProgram is replaced in tests.
var runProgram = func(ctx context.Context, m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// ExecuteCommand is a thin wrapper that executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	return NewRootCommand(ctx).ExecuteContext(ctx)
}

// Main is a helper used by main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
