// package models defines the data model for the rodo task tracker
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTask is returned by [Task.Validate] for tasks that cannot be stored.
var ErrInvalidTask = errors.New("invalid task")

// Status is the lifecycle state of a [Task].
//
// The four known values form a closed set. Any other value is an unrecognized
// status read from the record file; it keeps its raw text so it can be written
// back unchanged.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
	StatusDeleted    Status = "DELETED"
)

// StatusElse is the catch-all token older versions of the tool wrote for
// statuses they did not understand. It is never produced here.
const StatusElse Status = "ELSE"

// ParseStatus converts a raw token into a [Status]. It never fails: unknown
// tokens are returned as unrecognized statuses.
func ParseStatus(raw string) Status {
	return Status(raw)
}

// Known reports whether s is one of the four statuses this tool manages.
func (s Status) Known() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusDeleted:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// CanTransitionTo reports whether a task in status s may move to next.
//
//	TODO <-> IN_PROGRESS -> DONE, any -> DELETED, DELETED is terminal.
//
// Re-applying the current status is always allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	if next == StatusDeleted {
		return true
	}

	switch s {
	case StatusTodo:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusTodo || next == StatusDone
	default:
		return false
	}
}

// Task is a single to-do item. One Task is one record in the backing file.
type Task struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
	Status  Status `json:"status"`
}

// NewTask creates a TODO task with the given id.
func NewTask(id int, content string) Task {
	return Task{ID: id, Content: content, Status: StatusTodo}
}

// Validate checks that the task can be serialized as a record.
func (t Task) Validate() error {
	if t.ID < 0 {
		return fmt.Errorf("%w: negative id %d", ErrInvalidTask, t.ID)
	}
	if t.Status == "" {
		return fmt.Errorf("%w: empty status for task %d", ErrInvalidTask, t.ID)
	}
	return nil
}

// Deleted reports whether the task has been soft deleted.
func (t Task) Deleted() bool { return t.Status == StatusDeleted }

// ParseID parses a task identifier. Only plain decimal digits are accepted, so
// signs, spaces and negative numbers are rejected.
func ParseID(s string) (int, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, fmt.Errorf("invalid task id %q: must be a non-negative integer", s)
	}

	id, err := strconv.ParseUint(s, 10, strconv.IntSize-1)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q: %w", s, err)
	}
	return int(id), nil
}

// Snapshot is one export of the record set into the history database.
type Snapshot struct {
	ID        string
	Sequence  int
	Source    string
	CreatedAt time.Time
	Tasks     []Task
}

// NewSnapshot creates an unsaved snapshot of tasks read from source.
func NewSnapshot(source string, tasks []Task) *Snapshot {
	return &Snapshot{
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Tasks:     tasks,
	}
}

// Validate checks that the snapshot can be persisted.
func (s *Snapshot) Validate() error {
	if s.Source == "" {
		return errors.New("snapshot source is required")
	}
	for _, t := range s.Tasks {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}
