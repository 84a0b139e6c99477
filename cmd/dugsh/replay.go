package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/michaelscutari/dugsh/internal/logging"
	"github.com/michaelscutari/dugsh/internal/replay"
)

// signalContext is canceled on the first SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func replayFile(ctx context.Context, path string) (*replay.Manager, *replay.Result, error) {
	mgr := replay.NewManager(logging.L())
	res, err := mgr.RunFile(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("replay failed: %w", err)
	}
	return mgr, res, nil
}

func indexFile(ctx context.Context, path string) (*sql.DB, *replay.Result, error) {
	mgr, res, err := replayFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	database, err := mgr.Index(ctx, res)
	if err != nil {
		return nil, nil, fmt.Errorf("index failed: %w", err)
	}
	return database, res, nil
}
