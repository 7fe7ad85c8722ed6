// package repositories provides persistence layer implementations for the export history.
package repositories

import (
	"database/sql"
	"fmt"
	"regexp"
)

// execQuerier is satisfied by both [sql.DB] and [sql.Tx].
type execQuerier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

var tableName = regexp.MustCompile(`^[a-z_]+$`)

// NextSequence increments and returns the sequence counter stored in `<table>_sequence`.
//
// Pass a [sql.Tx] to make the increment part of a larger write; with a [sql.DB] each
// statement runs on its own and a concurrent writer may interleave.
func NextSequence(q execQuerier, table string) (int, error) {
	if !tableName.MatchString(table) {
		return 0, fmt.Errorf("invalid sequence table %q", table)
	}
	sequenceTable := table + "_sequence"

	result, err := q.Exec(fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable))
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return 0, fmt.Errorf("sequence row missing in %s", sequenceTable)
	}

	var sequence int
	if err := q.QueryRow(fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	return sequence, nil
}
