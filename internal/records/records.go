// Package records converts tasks to and from the lines of the record file.
//
// A record is one line of comma-delimited text: id,content,status. Fields are
// quoted with the usual CSV rules when they contain a comma, a double quote or
// a leading space. Backslash, LF and CR are escaped as \\, \n and \r before
// quoting, so every record occupies exactly one physical line.
package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/desertthunder/rodo/internal/models"
)

const fieldCount = 3

// ErrMalformedRecord is matched by every [*ParseError].
var ErrMalformedRecord = errors.New("malformed record")

// ParseError describes a line that could not be decoded.
type ParseError struct {
	Line   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("malformed record %q: %s", e.Line, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrMalformedRecord }

// Encode serializes task as a single record line without the line terminator.
func Encode(task models.Task) (string, error) {
	if err := task.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	fields := []string{
		strconv.Itoa(task.ID),
		escape(task.Content),
		escape(task.Status.String()),
	}
	if err := w.Write(fields); err != nil {
		return "", fmt.Errorf("failed to encode task %d: %w", task.ID, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to encode task %d: %w", task.ID, err)
	}

	return strings.TrimSuffix(b.String(), "\n"), nil
}

// Decode parses one record line. A trailing "\n" or "\r\n" is ignored.
//
// Unknown status tokens are kept as unrecognized [models.Status] values.
func Decode(line string) (models.Task, error) {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
	if strings.TrimSpace(trimmed) == "" {
		return models.Task{}, &ParseError{Line: line, Reason: "empty record"}
	}

	r := csv.NewReader(strings.NewReader(trimmed))
	r.FieldsPerRecord = fieldCount

	fields, err := r.Read()
	if err != nil {
		return models.Task{}, &ParseError{Line: line, Reason: "invalid fields", Err: err}
	}
	if _, err := r.Read(); err != io.EOF {
		return models.Task{}, &ParseError{Line: line, Reason: "unexpected trailing data"}
	}

	id, err := models.ParseID(fields[0])
	if err != nil {
		return models.Task{}, &ParseError{Line: line, Reason: "invalid id", Err: err}
	}

	status := unescape(fields[2])
	if status == "" {
		return models.Task{}, &ParseError{Line: line, Reason: "empty status"}
	}

	return models.Task{
		ID:      id,
		Content: unescape(fields[1]),
		Status:  models.ParseStatus(status),
	}, nil
}

var escaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)

func escape(s string) string {
	return escaper.Replace(s)
}

// unescape reverses escape. Unknown sequences and a lone trailing backslash are
// kept verbatim.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}

		switch s[i+1] {
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(c)
			continue
		}
		i++
	}
	return b.String()
}
