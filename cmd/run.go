package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/langtrainer/internal/app"
	"github.com/abhisek/langtrainer/internal/config"
	"github.com/abhisek/langtrainer/internal/logger"
)

// runApp opens the store, loads decks, and launches the TUI. Logs go to a
// file while the TUI owns the terminal.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	home, err := config.DataHome()
	if err != nil {
		return err
	}
	l, closer, err := logger.OpenFile(home, "tui", settings.LogLevel())
	if err != nil {
		return err
	}
	defer closer.Close()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	runner, err := newRunner(cmd, st, l)
	if err != nil {
		return err
	}
	if err := runner.Load(ctx); err != nil {
		return fmt.Errorf("load decks: %w", err)
	}

	return app.Run(ctx, app.Options{
		Runner:    runner,
		EventRepo: st.EventRepo(),
		Logger:    l,
	})
}
