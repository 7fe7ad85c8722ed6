package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/rodo/internal/models"
	"github.com/desertthunder/rodo/internal/repositories"
	"github.com/desertthunder/rodo/internal/shared"
	tu "github.com/desertthunder/rodo/internal/testing"
)

// harness runs the CLI against a record file in a temp dir. Every call builds a fresh Runner, like a new process.
type harness struct {
	t      *testing.T
	dir    string
	file   string
	config string
}

type result struct {
	stdout string
	stderr string
	logs   string
	err    error
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	return &harness{
		t:      t,
		dir:    dir,
		file:   filepath.Join(dir, ".rododb"),
		config: filepath.Join(dir, "rodo.toml"),
	}
}

func (h *harness) run(args ...string) result {
	h.t.Helper()

	var stdout, stderr, logs bytes.Buffer
	r := NewRunner(RunnerOpts{
		Logger:    shared.NewLogger(&logs),
		Output:    &stdout,
		ErrOutput: &stderr,
	})

	argv := append([]string{"rodo", "-c", h.config, "-f", h.file}, args...)
	err := newApp(r).Run(context.Background(), argv)

	return result{stdout: stdout.String(), stderr: stderr.String(), logs: logs.String(), err: err}
}

func (h *harness) mustRun(args ...string) result {
	h.t.Helper()

	res := h.run(args...)
	if res.err != nil {
		h.t.Fatalf("rodo %s: unexpected error %v\nstderr: %s", strings.Join(args, " "), res.err, res.stderr)
	}
	return res
}

func (h *harness) records() string {
	h.t.Helper()
	return tu.MustReadFile(h.t, h.file)
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			errOutput := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config:    config,
				Logger:    logger,
				Output:    output,
				ErrOutput: errOutput,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.errOutput != errOutput {
				t.Error("expected errOutput to be set")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.errOutput != os.Stderr {
				t.Error("expected errOutput to default to os.Stderr")
			}
		})
	})

	t.Run("parseIDs", func(t *testing.T) {
		ids, err := parseIDs([]string{"0", "12"})
		if err != nil || len(ids) != 2 || ids[0] != 0 || ids[1] != 12 {
			t.Errorf("parseIDs() = %v, %v", ids, err)
		}

		if _, err := parseIDs(nil); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}

		for _, bad := range [][]string{{"abc"}, {"-1"}, {"1", "x"}, {"1.5"}} {
			if _, err := parseIDs(bad); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("parseIDs(%v): expected ErrInvalidArgument, got %v", bad, err)
			}
		}
	})
}

func TestListCommand(t *testing.T) {
	t.Run("empty store prints guidance to stderr", func(t *testing.T) {
		h := newHarness(t)

		res := h.mustRun("ls")

		if res.stdout != "" {
			t.Errorf("expected empty stdout, got %q", res.stdout)
		}
		if !strings.Contains(res.stderr, emptyListHint) {
			t.Errorf("expected guidance on stderr, got %q", res.stderr)
		}
		if _, err := os.Stat(h.file); err != nil {
			t.Errorf("expected record file to be created: %v", err)
		}
	})

	t.Run("markers for every status", func(t *testing.T) {
		h := newHarness(t)
		tu.MustWriteFile(t, h.file, "0,a,TODO\n1,b,IN_PROGRESS\n2,c,DONE\n3,d,DELETED\n4,e,BLOCKED\n")

		res := h.mustRun("ls")

		want := "[]\t0\ta\n[*]\t1\tb\n[Y]\t2\tc\n[BLOCKED]\t4\te\n"
		if res.stdout != want {
			t.Errorf("ls output = %q, want %q", res.stdout, want)
		}
	})

	t.Run("--all includes deleted", func(t *testing.T) {
		h := newHarness(t)
		tu.MustWriteFile(t, h.file, "0,a,TODO\n1,b,DELETED\n")

		res := h.mustRun("ls", "--all")

		if !strings.Contains(res.stdout, "[DELETED]\t1\tb") {
			t.Errorf("expected deleted task in output, got %q", res.stdout)
		}
	})

	t.Run("only deleted tasks is empty", func(t *testing.T) {
		h := newHarness(t)
		tu.MustWriteFile(t, h.file, "0,a,DELETED\n")

		res := h.mustRun("ls")

		if res.stdout != "" || !strings.Contains(res.stderr, emptyListHint) {
			t.Errorf("unexpected output stdout=%q stderr=%q", res.stdout, res.stderr)
		}
	})

	t.Run("malformed lines are skipped with a warning", func(t *testing.T) {
		h := newHarness(t)
		tu.MustWriteFile(t, h.file, "0,a,TODO\nnot a record\n1,b,TODO\n")

		res := h.mustRun("ls")

		if res.stdout != "[]\t0\ta\n[]\t1\tb\n" {
			t.Errorf("unexpected output %q", res.stdout)
		}
		if !strings.Contains(res.logs, "skipping malformed record") {
			t.Errorf("expected warning in logs, got %q", res.logs)
		}
	})
}

func TestAddCommand(t *testing.T) {
	t.Run("add then list", func(t *testing.T) {
		h := newHarness(t)

		res := h.mustRun("add", "buy", "milk")
		if res.stdout != "\tItem added: buy milk\n" {
			t.Errorf("unexpected add output %q", res.stdout)
		}
		h.mustRun("add", "walk", "dog")

		res = h.mustRun("ls")
		if res.stdout != "[]\t0\tbuy milk\n[]\t1\twalk dog\n" {
			t.Errorf("unexpected ls output %q", res.stdout)
		}
	})

	t.Run("content with commas survives", func(t *testing.T) {
		h := newHarness(t)

		h.mustRun("add", "eggs, bread, jam")

		res := h.mustRun("ls")
		if res.stdout != "[]\t0\teggs, bread, jam\n" {
			t.Errorf("unexpected ls output %q", res.stdout)
		}
	})

	t.Run("content may start with a dash", func(t *testing.T) {
		h := newHarness(t)

		res := h.mustRun("add", "-v", "is", "not", "a", "flag")
		if res.stdout != "\tItem added: -v is not a flag\n" {
			t.Errorf("unexpected add output %q", res.stdout)
		}
	})

	t.Run("missing text prints usage", func(t *testing.T) {
		h := newHarness(t)

		res := h.run("add")

		if !errors.Is(res.err, shared.ErrUsage) {
			t.Fatalf("expected ErrUsage, got %v", res.err)
		}
		if !strings.Contains(res.stderr, "Usage: rodo add") {
			t.Errorf("expected usage on stderr, got %q", res.stderr)
		}
	})

	t.Run("ids continue after deleted tasks", func(t *testing.T) {
		h := newHarness(t)
		tu.MustWriteFile(t, h.file, "0,a,TODO\n5,b,DELETED\n")

		h.mustRun("add", "c")

		if !strings.HasSuffix(h.records(), "6,c,TODO\n") {
			t.Errorf("expected id 6, got records %q", h.records())
		}
	})

	t.Run("respects RODO_FILE", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "env.rododb")
		t.Setenv("RODO_FILE", file)

		var stdout bytes.Buffer
		r := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{}), Output: &stdout, ErrOutput: &bytes.Buffer{}})
		argv := []string{"rodo", "-c", filepath.Join(dir, "rodo.toml"), "add", "from env"}
		if err := newApp(r).Run(context.Background(), argv); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := tu.MustReadFile(t, file); got != "0,from env,TODO\n" {
			t.Errorf("unexpected records %q", got)
		}
	})

	t.Run("store path from config", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "configured.rododb")
		config := filepath.Join(dir, "rodo.toml")
		tu.MustWriteFile(t, config, "[store]\npath = \""+file+"\"\n")

		r := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{}), Output: &bytes.Buffer{}, ErrOutput: &bytes.Buffer{}})
		if err := newApp(r).Run(context.Background(), []string{"rodo", "-c", config, "add", "x"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tu.AssertFileExists(t, file)
	})

	t.Run("malformed config fails", func(t *testing.T) {
		h := newHarness(t)
		tu.MustWriteFile(t, h.config, "[store\n")

		res := h.run("add", "x")

		if !errors.Is(res.err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", res.err)
		}
	})
}

func TestRemoveCommand(t *testing.T) {
	t.Run("soft delete keeps the record", func(t *testing.T) {
		h := newHarness(t)
		h.mustRun("add", "buy milk")
		h.mustRun("add", "walk dog")

		res := h.mustRun("rm", "0")
		if res.stdout != "" {
			t.Errorf("expected no output, got %q", res.stdout)
		}

		res = h.mustRun("ls")
		if res.stdout != "[]\t1\twalk dog\n" {
			t.Errorf("unexpected ls output %q", res.stdout)
		}
		if h.records() != "0,buy milk,DELETED\n1,walk dog,TODO\n" {
			t.Errorf("unexpected records %q", h.records())
		}
	})

	t.Run("unknown id changes nothing", func(t *testing.T) {
		h := newHarness(t)
		tu.MustWriteFile(t, h.file, "0,a,TODO\n1,b,TODO\n2,c,TODO\n")
		before := h.records()

		res := h.run("rm", "2", "999")

		if !errors.Is(res.err, shared.ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got %v", res.err)
		}
		if h.records() != before {
			t.Errorf("records changed: %q", h.records())
		}
	})

	t.Run("id equal to count is checked by membership", func(t *testing.T) {
		h := newHarness(t)
		tu.MustWriteFile(t, h.file, "0,a,TODO\n1,b,TODO\n")

		if res := h.run("rm", "2"); !errors.Is(res.err, shared.ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got %v", res.err)
		}
	})

	t.Run("invalid ids fail before touching the file", func(t *testing.T) {
		for _, arg := range []string{"abc", "-1", "1.0"} {
			h := newHarness(t)
			tu.MustWriteFile(t, h.file, "0,a,TODO\n")

			res := h.run("rm", "0", arg)

			if !errors.Is(res.err, shared.ErrInvalidArgument) {
				t.Errorf("rm %s: expected ErrInvalidArgument, got %v", arg, res.err)
			}
			if h.records() != "0,a,TODO\n" {
				t.Errorf("rm %s: records changed: %q", arg, h.records())
			}
		}
	})

	t.Run("missing ids prints usage", func(t *testing.T) {
		h := newHarness(t)

		res := h.run("rm")

		if !errors.Is(res.err, shared.ErrUsage) {
			t.Fatalf("expected ErrUsage, got %v", res.err)
		}
		if !strings.Contains(res.stderr, "Usage: rodo rm <id...>") {
			t.Errorf("expected usage on stderr, got %q", res.stderr)
		}
	})
}

func TestTransitionCommands(t *testing.T) {
	t.Run("start done reopen", func(t *testing.T) {
		h := newHarness(t)
		h.mustRun("add", "a")
		h.mustRun("add", "b")

		h.mustRun("start", "0", "1")
		if res := h.mustRun("ls"); res.stdout != "[*]\t0\ta\n[*]\t1\tb\n" {
			t.Errorf("after start: %q", res.stdout)
		}

		h.mustRun("done", "0")
		h.mustRun("reopen", "1")
		if res := h.mustRun("ls"); res.stdout != "[Y]\t0\ta\n[]\t1\tb\n" {
			t.Errorf("after done/reopen: %q", res.stdout)
		}
	})

	t.Run("invalid transition is all-or-nothing", func(t *testing.T) {
		h := newHarness(t)
		tu.MustWriteFile(t, h.file, "0,a,IN_PROGRESS\n1,b,TODO\n")

		res := h.run("done", "0", "1")

		if !errors.Is(res.err, shared.ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", res.err)
		}
		if h.records() != "0,a,IN_PROGRESS\n1,b,TODO\n" {
			t.Errorf("records changed: %q", h.records())
		}
	})

	t.Run("deleted is terminal", func(t *testing.T) {
		h := newHarness(t)
		tu.MustWriteFile(t, h.file, "0,a,DELETED\n")

		if res := h.run("start", "0"); !errors.Is(res.err, shared.ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", res.err)
		}
	})
}

func TestUsage(t *testing.T) {
	t.Run("unknown command", func(t *testing.T) {
		h := newHarness(t)

		res := h.run("frobnicate")

		if !errors.Is(res.err, shared.ErrUsage) {
			t.Fatalf("expected ErrUsage, got %v", res.err)
		}
		if !strings.Contains(res.stderr, "Unknown command: frobnicate") {
			t.Errorf("expected unknown command message, got %q", res.stderr)
		}
		if !strings.Contains(res.stderr, "Usage: rodo [command] [options]") {
			t.Errorf("expected usage, got %q", res.stderr)
		}
		if !strings.Contains(res.stderr, "ls") || !strings.Contains(res.stderr, "export") {
			t.Errorf("expected command list, got %q", res.stderr)
		}
	})

	t.Run("no command", func(t *testing.T) {
		h := newHarness(t)

		res := h.run()

		if !errors.Is(res.err, shared.ErrUsage) {
			t.Fatalf("expected ErrUsage, got %v", res.err)
		}
		if strings.Contains(res.stderr, "Unknown command") {
			t.Errorf("did not expect unknown command message, got %q", res.stderr)
		}
	})
}

func TestExportCommand(t *testing.T) {
	seed := "0,buy milk,TODO\n1,\"eggs, bread\",DONE\n2,gone,DELETED\n"

	t.Run("csv to file", func(t *testing.T) {
		h := newHarness(t)
		tu.MustWriteFile(t, h.file, seed)
		out := filepath.Join(h.dir, "tasks.csv")

		res := h.mustRun("export", "--format", "csv", "--output", out)

		if !strings.Contains(res.stdout, "Exported 2 tasks") {
			t.Errorf("unexpected output %q", res.stdout)
		}
		want := "ID,Content,Status\n0,buy milk,TODO\n1,\"eggs, bread\",DONE\n"
		if got := tu.MustReadFile(t, out); got != want {
			t.Errorf("csv = %q, want %q", got, want)
		}
	})

	t.Run("json to stdout with --all", func(t *testing.T) {
		h := newHarness(t)
		tu.MustWriteFile(t, h.file, seed)

		res := h.mustRun("export", "--format", "json", "--output", "-", "--all")

		var decoded []models.Task
		if err := json.Unmarshal([]byte(res.stdout), &decoded); err != nil {
			t.Fatalf("invalid JSON %q: %v", res.stdout, err)
		}
		if len(decoded) != 3 || decoded[2].Status != models.StatusDeleted {
			t.Errorf("unexpected tasks %+v", decoded)
		}
	})

	t.Run("markdown uses config default output name", func(t *testing.T) {
		h := newHarness(t)
		tu.MustWriteFile(t, h.file, seed)
		out := filepath.Join(h.dir, "board.md")
		tu.MustWriteFile(t, h.config, "[store]\npath = \".rododb\"\n[export]\nformat = \"markdown\"\noutput = \""+out+"\"\n")

		h.mustRun("export")

		if got := tu.MustReadFile(t, out); !strings.Contains(got, "- [x] eggs, bread (#1)") {
			t.Errorf("unexpected markdown %q", got)
		}
	})

	t.Run("sqlite snapshot", func(t *testing.T) {
		h := newHarness(t)
		tu.MustWriteFile(t, h.file, seed)
		dbPath := filepath.Join(h.dir, "history.db")

		h.mustRun("export", "--format", "sqlite", "--output", dbPath)
		res := h.mustRun("export", "--format", "sqlite", "--output", dbPath, "--all")

		if !strings.Contains(res.stdout, "Saved snapshot #2 (3 tasks)") {
			t.Errorf("unexpected output %q", res.stdout)
		}

		db, err := shared.NewDatabase(dbPath)
		if err != nil {
			t.Fatalf("failed to open history: %v", err)
		}
		defer db.Close()

		latest, err := repositories.NewSnapshotRepository(db).Latest()
		if err != nil {
			t.Fatalf("failed to read latest snapshot: %v", err)
		}
		if latest.Source != h.file || len(latest.Tasks) != 3 || latest.Tasks[1].Content != "eggs, bread" {
			t.Errorf("unexpected snapshot %+v", latest)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		h := newHarness(t)

		if res := h.run("export", "--format", "xml"); !errors.Is(res.err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", res.err)
		}
	})
}

func TestInitCommand(t *testing.T) {
	h := newHarness(t)
	t.Chdir(h.dir)

	res := h.mustRun("init")

	tu.AssertFileExists(t, h.config)
	tu.AssertFileExists(t, filepath.Join(h.dir, "rodo.db"))
	if !strings.Contains(res.stdout, "schema v1") {
		t.Errorf("unexpected output %q", res.stdout)
	}

	if res := h.run("init"); res.err == nil {
		t.Error("expected error when config already exists")
	}
}
