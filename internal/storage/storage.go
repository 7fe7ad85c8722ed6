// Package storage owns the record file that holds every task.
//
// The file is the single source of truth. [Storage] reads it in full, appends
// single records, and rewrites it in full for any other change, because records
// have no fixed width that would allow patching in place. There is no locking:
// concurrent processes writing the same file can lose updates.
package storage

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/rodo/internal/models"
	"github.com/desertthunder/rodo/internal/records"
	"github.com/desertthunder/rodo/internal/shared"
)

// Storage is an open handle on a record file.
type Storage struct {
	file    *os.File
	path    string
	logger  *log.Logger
	skipped int
}

// Open opens the record file at path for reading and writing, creating it when absent.
func Open(path string, logger *log.Logger) (*Storage, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", shared.ErrStorage, path, err)
	}

	return &Storage{
		file:   file,
		path:   path,
		logger: shared.WithLogger(logger, "file", path),
	}, nil
}

// Path returns the location of the record file.
func (s *Storage) Path() string { return s.path }

// Skipped returns the number of malformed lines skipped by the last [Storage.ReadAll].
func (s *Storage) Skipped() int { return s.skipped }

// ReadAll decodes every record in file order.
//
// Blank lines are ignored. Lines that fail to decode are skipped with a warning
// and do not fail the read.
func (s *Storage) ReadAll() ([]models.Task, error) {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return nil, s.wrap("seek", err)
	}

	s.skipped = 0
	reader := bufio.NewReader(s.file)
	tasks := []models.Task{}

	for lineNo := 1; ; lineNo++ {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, s.wrap("read", err)
		}

		if strings.TrimSpace(line) != "" {
			task, decodeErr := records.Decode(line)
			if decodeErr != nil {
				s.skipped++
				s.logger.Warn("skipping malformed record", "line", lineNo, "error", decodeErr)
			} else {
				tasks = append(tasks, task)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
	}

	s.logger.Debug("read records", "count", len(tasks), "skipped", s.skipped)
	return tasks, nil
}

// Append writes task as a new record at the end of the file and syncs it to disk.
func (s *Storage) Append(task models.Task) error {
	line, err := records.Encode(task)
	if err != nil {
		return err
	}

	prefix, err := s.missingNewline()
	if err != nil {
		return err
	}

	if _, err := s.file.Seek(0, io.SeekEnd); err != nil {
		return s.wrap("seek", err)
	}
	if _, err := s.file.WriteString(prefix + line + "\n"); err != nil {
		return s.wrap("write", err)
	}
	if err := s.file.Sync(); err != nil {
		return s.wrap("sync", err)
	}

	s.logger.Debug("appended record", "id", task.ID)
	return nil
}

// RewriteAll replaces the file contents with tasks, in order, and syncs it to disk.
//
// Every task is encoded before the file is touched, so an invalid task leaves
// the file unchanged.
func (s *Storage) RewriteAll(tasks []models.Task) error {
	var buf bytes.Buffer
	for _, task := range tasks {
		line, err := records.Encode(task)
		if err != nil {
			return err
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	if err := s.file.Truncate(0); err != nil {
		return s.wrap("truncate", err)
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return s.wrap("seek", err)
	}
	if _, err := buf.WriteTo(s.file); err != nil {
		return s.wrap("write", err)
	}
	if err := s.file.Sync(); err != nil {
		return s.wrap("sync", err)
	}

	s.logger.Debug("rewrote records", "count", len(tasks))
	return nil
}

// Close releases the file handle.
func (s *Storage) Close() error {
	if err := s.file.Close(); err != nil {
		return s.wrap("close", err)
	}
	return nil
}

// missingNewline returns "\n" when the file is non-empty and its last byte is not a newline.
func (s *Storage) missingNewline() (string, error) {
	info, err := s.file.Stat()
	if err != nil {
		return "", s.wrap("stat", err)
	}
	if info.Size() == 0 {
		return "", nil
	}

	last := make([]byte, 1)
	if _, err := s.file.ReadAt(last, info.Size()-1); err != nil {
		return "", s.wrap("read", err)
	}
	if last[0] == '\n' {
		return "", nil
	}
	return "\n", nil
}

func (s *Storage) wrap(op string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", shared.ErrStorage, op, s.path, err)
}
