package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/rodo/internal/models"
	"github.com/desertthunder/rodo/internal/shared"
	"github.com/desertthunder/rodo/internal/storage"
	"github.com/desertthunder/rodo/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	logger    *log.Logger
	output    io.Writer
	errOutput io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config    *shared.Config
	Logger    *log.Logger
	Output    io.Writer
	ErrOutput io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}

	return &Runner{
		config:    opts.Config,
		logger:    opts.Logger,
		output:    opts.Output,
		errOutput: opts.ErrOutput,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		addCommand, rmCommand, lsCommand, startCommand, doneCommand, reopenCommand,
		exportCommand, initCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by subsequent actions.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// Before loads the config file named by --config and prepares the per-run logger.
//
// A missing config file is not an error; defaults apply.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	config, err := shared.LoadConfigOrDefault(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	r.config = config

	level, err := shared.ParseLogLevel(config.Log.Level)
	if err != nil {
		return ctx, err
	}
	if cmd.Bool("verbose") {
		level = log.DebugLevel
	}

	r.logger = shared.WithLogger(r.logger, "run", shared.GenerateID())
	shared.SetLogLevel(r.logger, level)
	r.logger.Debug("configuration loaded", "config", cmd.String("config"), "store", r.storePath(cmd))

	return ctx, nil
}

// storePath resolves the record file: --file (or RODO_FILE) wins over store.path.
func (r *Runner) storePath(cmd *cli.Command) string {
	if path := cmd.String("file"); path != "" {
		return path
	}
	return r.config.Store.Path
}

// withManager opens the record file for the duration of fn and always closes it.
func (r *Runner) withManager(cmd *cli.Command, fn func(m *tasks.Manager) error) error {
	path := r.storePath(cmd)

	store, err := storage.Open(path, r.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			r.logger.Warn("failed to close record file", "path", path, "error", err)
		}
	}()

	return fn(tasks.NewManager(store, r.logger))
}

// parseIDs converts every argument into a task id. Nothing is returned unless all of them are valid.
func parseIDs(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: at least one task id", shared.ErrMissingArgument)
	}

	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := models.ParseID(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Usage is the root action. It only runs when no known subcommand was given.
func (r *Runner) Usage(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Present() {
		r.writeErr("Unknown command: %s\n\n", cmd.Args().First())
	}
	return r.usageError(cmd)
}

// usageError prints usage for cmd to the error output and returns [shared.ErrUsage].
func (r *Runner) usageError(cmd *cli.Command) error {
	r.writeErr("Usage: %s\n", cmd.UsageText)

	if len(cmd.Commands) > 0 {
		r.writeErr("\nCommands:\n")
		for _, sub := range cmd.Commands {
			if sub.Hidden {
				continue
			}
			r.writeErr("  %-8s %s\n", sub.Name, sub.Usage)
		}
	}

	return fmt.Errorf("%w: %s", shared.ErrUsage, cmd.Name)
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeErr(format string, args ...any) {
	fmt.Fprintf(r.errOutput, format, args...)
}
