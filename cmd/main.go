package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/rodo/internal/shared"
	"github.com/urfave/cli/v3"
)

const version = "0.1.0"

func init() {
	// -v is taken by --verbose
	cli.VersionFlag = &cli.BoolFlag{Name: "version", Usage: "print the version"}
}

func main() {
	runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(nil)})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrUsage) {
			os.Exit(1)
		}
		runner.logger.Fatalf("application error: %v", err)
	}
}

// newApp builds the root command. Global flags are inherited by every subcommand.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "rodo",
		Usage:     "A tiny task tracker backed by a flat record file",
		UsageText: "rodo [command] [options]",
		Version:   version,
		Writer:    r.output,
		ErrWriter: r.errOutput,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "rodo.toml",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Path to the record file (overrides store.path)",
				Sources: cli.EnvVars("RODO_FILE"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before:   r.Before,
		Action:   r.Usage,
		Commands: r.register(),
	}
}
