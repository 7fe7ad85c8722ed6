package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/rodo/internal/formatter"
	"github.com/desertthunder/rodo/internal/models"
	"github.com/desertthunder/rodo/internal/repositories"
	"github.com/desertthunder/rodo/internal/shared"
	"github.com/desertthunder/rodo/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes the record set in the requested format.
//
// Deleted tasks are left out unless --all is given. The sqlite format appends a snapshot to the
// export history instead of replacing a file.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("format")
	if name == "" {
		name = r.config.Export.Format
	}
	format, err := formatter.ParseFormat(name)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	var list []models.Task
	err = r.withManager(cmd, func(m *tasks.Manager) error {
		all, err := m.All()
		if err != nil {
			return err
		}
		if cmd.Bool("all") {
			list = all
		} else {
			list = tasks.Visible(all)
		}
		return nil
	})
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		output = r.config.Export.Output
	}

	if format == formatter.FormatSQLite {
		return r.exportSnapshot(cmd, output, list)
	}

	data, err := formatter.Export(format, list)
	if err != nil {
		return err
	}

	if output == "-" {
		_, err := r.output.Write(data)
		return err
	}
	if output == "" {
		output = "tasks" + format.Extension()
	}

	if err := formatter.WriteExport(output, data); err != nil {
		return err
	}

	r.logger.Info("export written", "format", format, "path", output, "tasks", len(list))
	return r.writePlain("Exported %d tasks to %s\n", len(list), output)
}

// exportSnapshot records list as a new snapshot in the history database at path (database.path when empty).
func (r *Runner) exportSnapshot(cmd *cli.Command, path string, list []models.Task) error {
	cfg := r.config.Database
	if path != "" && path != "-" {
		cfg.Path = path
	}

	db, err := shared.OpenHistory(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	snapshot := models.NewSnapshot(r.storePath(cmd), list)
	if err := repositories.NewSnapshotRepository(db).Create(snapshot); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrDatabase, err)
	}

	r.logger.Info("snapshot saved", "id", snapshot.ID, "sequence", snapshot.Sequence, "path", cfg.Path)
	return r.writePlain("Saved snapshot #%d (%d tasks) to %s\n", snapshot.Sequence, len(snapshot.Tasks), cfg.Path)
}
