package main

import (
	"context"
	"errors"
	"strings"

	"github.com/desertthunder/rodo/internal/formatter"
	"github.com/desertthunder/rodo/internal/models"
	"github.com/desertthunder/rodo/internal/shared"
	"github.com/desertthunder/rodo/internal/tasks"
	"github.com/urfave/cli/v3"
)

const emptyListHint = "No tasks found, you can add one using `rodo add <task>`"

// Add joins all arguments into the content of a new TODO task.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	content := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(content) == "" {
		return r.usageError(cmd)
	}

	var task models.Task
	err := r.withManager(cmd, func(m *tasks.Manager) error {
		var err error
		task, err = m.Add(content)
		return err
	})
	if err != nil {
		return err
	}

	return r.writePlain("\tItem added: %s\n", task.Content)
}

// List prints visible tasks, or every task with --all.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	var list []models.Task
	err := r.withManager(cmd, func(m *tasks.Manager) error {
		var err error
		if cmd.Bool("all") {
			list, err = m.All()
		} else {
			list, err = m.List()
		}
		return err
	})

	if errors.Is(err, shared.ErrNoTasks) || (err == nil && len(list) == 0) {
		r.writeErr("%s\n", emptyListHint)
		return nil
	}
	if err != nil {
		return err
	}

	return formatter.WriteList(r.output, list)
}

// Remove soft deletes every given id, or none of them.
func (r *Runner) Remove(ctx context.Context, cmd *cli.Command) error {
	return r.transition(cmd, func(m *tasks.Manager, ids []int) error { return m.Remove(ids...) })
}

func (r *Runner) Start(ctx context.Context, cmd *cli.Command) error {
	return r.transition(cmd, func(m *tasks.Manager, ids []int) error { return m.Start(ids...) })
}

func (r *Runner) Done(ctx context.Context, cmd *cli.Command) error {
	return r.transition(cmd, func(m *tasks.Manager, ids []int) error { return m.Complete(ids...) })
}

func (r *Runner) Reopen(ctx context.Context, cmd *cli.Command) error {
	return r.transition(cmd, func(m *tasks.Manager, ids []int) error { return m.Reopen(ids...) })
}

// transition validates every id argument before the record file is opened.
func (r *Runner) transition(cmd *cli.Command, apply func(*tasks.Manager, []int) error) error {
	ids, err := parseIDs(cmd.Args().Slice())
	if errors.Is(err, shared.ErrMissingArgument) {
		return r.usageError(cmd)
	}
	if err != nil {
		return err
	}

	return r.withManager(cmd, func(m *tasks.Manager) error {
		return apply(m, ids)
	})
}
