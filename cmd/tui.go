package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/rodo/internal/shared"
	"github.com/desertthunder/rodo/internal/storage"
	"github.com/desertthunder/rodo/internal/tasks"
	"github.com/desertthunder/rodo/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI over the record file.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	store, err := storage.Open(r.storePath(cmd), r.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	return ui.Run(tasks.NewManager(store, r.logger), r.logger)
}
