package main

import (
	"errors"
	"fmt"

	"github.com/michaelscutari/dugsh/internal/db"
	"github.com/michaelscutari/dugsh/internal/rollup"
	"github.com/michaelscutari/dugsh/internal/tui"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
)

var tuiCmd = &cobra.Command{
	Use:   "tui FILE",
	Short: "Browse the replayed tree interactively",
	Long:  `Replay FILE and open an interactive TUI to browse directories and their sizes.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	database, res, err := indexFile(ctx, args[0])
	if err != nil {
		return err
	}
	defer database.Close()

	opts := tui.Options{
		Threshold: cfg.Threshold,
		Needed:    rollup.SpaceNeeded(res.Tree, cfg.Capacity, cfg.RequiredFree).Needed,
	}
	_, dir, err := rollup.SmallestDirectoryAtLeast(res.Tree, cfg.Capacity, cfg.RequiredFree)
	switch {
	case err == nil:
		opts.Candidate = res.Tree.Path(dir)
	case !errors.Is(err, rollup.ErrNoCandidate):
		return err
	}

	model := tui.NewModel(db.NewReader(database), opts)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
