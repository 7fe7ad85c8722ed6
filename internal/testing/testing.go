// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/rodo/internal/models"
)

// ErrInjected is returned by the failing test doubles in this package.
var ErrInjected = errors.New("injected failure")

// MemoryStore is an in-memory stand-in for the record file.
//
// Set the Fail* fields to make the matching operation return [ErrInjected].
type MemoryStore struct {
	Tasks       []models.Task
	FailRead    bool
	FailAppend  bool
	FailRewrite bool
	Rewrites    int
	Appends     int
}

// NewMemoryStore creates a store holding a copy of tasks.
func NewMemoryStore(tasks ...models.Task) *MemoryStore {
	return &MemoryStore{Tasks: append([]models.Task{}, tasks...)}
}

func (m *MemoryStore) ReadAll() ([]models.Task, error) {
	if m.FailRead {
		return nil, ErrInjected
	}
	return append([]models.Task{}, m.Tasks...), nil
}

func (m *MemoryStore) Append(task models.Task) error {
	if m.FailAppend {
		return ErrInjected
	}
	m.Appends++
	m.Tasks = append(m.Tasks, task)
	return nil
}

func (m *MemoryStore) RewriteAll(tasks []models.Task) error {
	if m.FailRewrite {
		return ErrInjected
	}
	m.Rewrites++
	m.Tasks = append([]models.Task{}, tasks...)
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

// TempFile returns a path named name inside a fresh temporary directory.
func TempFile(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
