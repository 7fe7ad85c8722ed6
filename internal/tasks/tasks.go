// package tasks implements the task lifecycle: id assignment, status transitions and list filtering.
package tasks

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/rodo/internal/models"
	"github.com/desertthunder/rodo/internal/shared"
)

// Store is the record set the manager reads from and writes to.
//
// [storage.Storage] is the production implementation.
type Store interface {
	ReadAll() ([]models.Task, error)      // ReadAll returns every stored task in file order
	Append(task models.Task) error        // Append adds one record at the end
	RewriteAll(tasks []models.Task) error // RewriteAll replaces the whole record set
}

// Manager applies lifecycle operations to a [Store].
type Manager struct {
	store  Store
	logger *log.Logger
}

// NewManager creates a Manager over store. A nil logger writes to stderr.
func NewManager(store Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{store: store, logger: logger}
}

// Add creates a TODO task with the next free id and appends it to the store.
func (m *Manager) Add(content string) (models.Task, error) {
	if strings.TrimSpace(content) == "" {
		return models.Task{}, fmt.Errorf("%w: task content must not be empty", shared.ErrInvalidInput)
	}

	existing, err := m.store.ReadAll()
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to read tasks: %w", err)
	}

	task := models.NewTask(NextID(existing), content)
	if err := m.store.Append(task); err != nil {
		return models.Task{}, fmt.Errorf("failed to add task: %w", err)
	}

	m.logger.Info("task added", "id", task.ID)
	return task, nil
}

// List returns every task that is not deleted, in file order.
//
// When there are none it returns an empty slice and [shared.ErrNoTasks].
func (m *Manager) List() ([]models.Task, error) {
	all, err := m.store.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	visible := Visible(all)
	if len(visible) == 0 {
		return visible, shared.ErrNoTasks
	}
	return visible, nil
}

// All returns every stored task, including deleted ones, in file order.
func (m *Manager) All() ([]models.Task, error) {
	all, err := m.store.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	return all, nil
}

// Remove soft-deletes the tasks with the given ids.
func (m *Manager) Remove(ids ...int) error {
	return m.transition(models.StatusDeleted, ids)
}

// Start moves the given tasks to IN_PROGRESS.
func (m *Manager) Start(ids ...int) error {
	return m.transition(models.StatusInProgress, ids)
}

// Complete moves the given tasks to DONE.
func (m *Manager) Complete(ids ...int) error {
	return m.transition(models.StatusDone, ids)
}

// Reopen moves the given tasks back to TODO.
func (m *Manager) Reopen(ids ...int) error {
	return m.transition(models.StatusTodo, ids)
}

// transition sets every task in ids to next and rewrites the store.
//
// All ids are validated before anything is written.
func (m *Manager) transition(next models.Status, ids []int) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one task id", shared.ErrMissingArgument)
	}

	current, err := m.store.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read tasks: %w", err)
	}

	updated, err := Merge(current, ids, next)
	if err != nil {
		return err
	}

	if err := m.store.RewriteAll(updated); err != nil {
		return fmt.Errorf("failed to write tasks: %w", err)
	}

	m.logger.Info("tasks updated", "ids", ids, "status", next)
	return nil
}

// NextID returns max id + 1, or 0 for an empty set. Deleted tasks count, so ids are never reused.
func NextID(tasks []models.Task) int {
	next := 0
	for _, t := range tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}

// Visible filters out deleted tasks, preserving order.
func Visible(tasks []models.Task) []models.Task {
	visible := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Deleted() {
			visible = append(visible, t)
		}
	}
	return visible
}

// Merge returns a copy of current where every task whose id is in ids has status next.
//
// It fails with [shared.ErrTaskNotFound] if any id is not present and with
// [shared.ErrInvalidTransition] if any targeted task cannot move to next.
// current is never modified.
func Merge(current []models.Task, ids []int, next models.Status) ([]models.Task, error) {
	index := make(map[int]int, len(current))
	for i, t := range current {
		index[t.ID] = i
	}

	targets := make(map[int]bool, len(ids))
	var missing []string
	for _, id := range ids {
		if _, ok := index[id]; !ok {
			missing = append(missing, fmt.Sprint(id))
			continue
		}
		targets[id] = true
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrTaskNotFound, strings.Join(missing, ", "))
	}

	updated := make([]models.Task, len(current))
	copy(updated, current)

	for i, t := range updated {
		if !targets[t.ID] {
			continue
		}
		if !t.Status.CanTransitionTo(next) {
			return nil, fmt.Errorf("%w: task %d is %s and cannot become %s", shared.ErrInvalidTransition, t.ID, t.Status, next)
		}
		updated[i].Status = next
	}

	return updated, nil
}
