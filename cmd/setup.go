package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/rodo/internal/shared"
	"github.com/urfave/cli/v3"
)

// Init writes the example config to --config and initializes the export history database.
//
// An existing config file is never overwritten.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	r.logger.Info("creating config file from template", "path", configPath)
	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load created config: %w", err)
	}
	r.config = config

	r.logger.Info("initializing database", "path", config.Database.Path)
	db, err := shared.OpenHistory(config.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	version, err := shared.CurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	r.writePlain("✓ Config file created at %s\n", configPath)
	return r.writePlain("✓ Export history ready at %s (schema v%d)\n", config.Database.Path, version)
}
