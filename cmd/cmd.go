// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// addCommand appends a TODO task. Flag parsing is skipped so the text may start with a dash.
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:            "add",
		Usage:           "Add a task",
		UsageText:       "rodo add <task...>",
		SkipFlagParsing: true,
		Action:          r.Add,
	}
}

// rmCommand soft deletes tasks by id
func rmCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:            "rm",
		Aliases:         []string{"remove"},
		Usage:           "Delete tasks by id",
		UsageText:       "rodo rm <id...>",
		SkipFlagParsing: true,
		Action:          r.Remove,
	}
}

func lsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "List tasks",
		UsageText: "rodo ls [--all]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "all",
				Aliases: []string{"a"},
				Usage:   "Include deleted tasks",
			},
		},
		Action: r.List,
	}
}

func startCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:            "start",
		Usage:           "Mark tasks as in progress",
		UsageText:       "rodo start <id...>",
		SkipFlagParsing: true,
		Action:          r.Start,
	}
}

func doneCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:            "done",
		Usage:           "Mark in-progress tasks as done",
		UsageText:       "rodo done <id...>",
		SkipFlagParsing: true,
		Action:          r.Done,
	}
}

func reopenCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:            "reopen",
		Usage:           "Move in-progress tasks back to todo",
		UsageText:       "rodo reopen <id...>",
		SkipFlagParsing: true,
		Action:          r.Reopen,
	}
}

// exportCommand writes the record set to another format or to the sqlite history
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export tasks to csv, json, markdown, text or sqlite",
		UsageText: "rodo export [--format csv|json|markdown|text|sqlite] [--output path] [--all]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Export format (defaults to export.format)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path, - for stdout (defaults to export.output)",
			},
			&cli.BoolFlag{
				Name:    "all",
				Aliases: []string{"a"},
				Usage:   "Include deleted tasks",
			},
		},
		Action: r.Export,
	}
}

// initCommand writes a config file and prepares the export history database
func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create a config file and the export history database",
		UsageText: "rodo init",
		Action:    r.Init,
	}
}

// tuiCommand returns the top-level TUI command for interactive task management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "tui",
		Aliases:   []string{"interactive", "ui"},
		Usage:     "Launch interactive TUI",
		UsageText: "rodo tui",
		Action:    r.TUI,
	}
}
