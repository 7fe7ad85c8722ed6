package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/rodo/internal/models"
	"github.com/desertthunder/rodo/internal/shared"
)

// ErrSnapshotNotFound is returned when no snapshot matches a lookup.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository persists [models.Snapshot] values and their tasks.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create inserts the snapshot and its tasks in one transaction, assigning a generated ID and sequence.
func (r *SnapshotRepository) Create(snapshot *models.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id := shared.GenerateID()
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequence, err := NextSequence(tx, "snapshots")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO snapshots (id, sequence, source, task_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, sequence, snapshot.Source, len(snapshot.Tasks), snapshot.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO snapshot_tasks (snapshot_id, position, task_id, content, status)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare task insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range snapshot.Tasks {
		if _, err := stmt.Exec(id, i, t.ID, t.Content, t.Status.String()); err != nil {
			return fmt.Errorf("failed to insert task %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	snapshot.ID = id
	snapshot.Sequence = sequence
	return nil
}

// Get retrieves a snapshot by ID, including its tasks
func (r *SnapshotRepository) Get(id string) (*models.Snapshot, error) {
	query := `
		SELECT id, sequence, source, created_at
		FROM snapshots
		WHERE id = ?
	`

	snapshot, err := r.scanOne(r.db.QueryRow(query, id))
	if err != nil {
		return nil, err
	}

	if snapshot.Tasks, err = r.Tasks(snapshot.ID); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Latest retrieves the snapshot with the highest sequence, including its tasks
func (r *SnapshotRepository) Latest() (*models.Snapshot, error) {
	query := `
		SELECT id, sequence, source, created_at
		FROM snapshots
		ORDER BY sequence DESC
		LIMIT 1
	`

	snapshot, err := r.scanOne(r.db.QueryRow(query))
	if err != nil {
		return nil, err
	}

	if snapshot.Tasks, err = r.Tasks(snapshot.ID); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// List retrieves every snapshot in sequence order. Tasks are not loaded; use [SnapshotRepository.Tasks].
func (r *SnapshotRepository) List() ([]*models.Snapshot, error) {
	rows, err := r.db.Query(`
		SELECT id, sequence, source, created_at
		FROM snapshots
		ORDER BY sequence ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*models.Snapshot
	for rows.Next() {
		var s models.Snapshot
		if err := rows.Scan(&s.ID, &s.Sequence, &s.Source, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return snapshots, nil
}

// Tasks retrieves the tasks captured by a snapshot in record file order
func (r *SnapshotRepository) Tasks(snapshotID string) ([]models.Task, error) {
	rows, err := r.db.Query(`
		SELECT task_id, content, status
		FROM snapshot_tasks
		WHERE snapshot_id = ?
		ORDER BY position ASC
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var (
			t      models.Task
			status string
		)
		if err := rows.Scan(&t.ID, &t.Content, &status); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot task: %w", err)
		}
		t.Status = models.ParseStatus(status)
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tasks, nil
}

// scanOne scans a single [sql.Row] into a [models.Snapshot]
func (r *SnapshotRepository) scanOne(row *sql.Row) (*models.Snapshot, error) {
	var s models.Snapshot

	err := row.Scan(&s.ID, &s.Sequence, &s.Source, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	return &s, nil
}
