// package formatter renders tasks for `rodo ls` and exports them to various formats (CSV, JSON, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/desertthunder/rodo/internal/models"
	"github.com/natefinch/atomic"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatSQLite   Format = "sqlite"
)

// ParseFormat validates a format name. "md" and "txt" are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	case "sqlite", "db":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("unknown export format %q", name)
}

// Extension returns the file extension used for default output paths.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	case FormatSQLite:
		return ".db"
	default:
		return "." + string(f)
	}
}

// StatusMarker returns the list marker for a status: [] TODO, [*] IN_PROGRESS, [Y] DONE, [<raw>] otherwise.
func StatusMarker(s models.Status) string {
	switch s {
	case models.StatusTodo:
		return "[]"
	case models.StatusInProgress:
		return "[*]"
	case models.StatusDone:
		return "[Y]"
	default:
		return "[" + s.String() + "]"
	}
}

// FormatTask renders one `rodo ls` line without the trailing newline.
func FormatTask(t models.Task) string {
	return fmt.Sprintf("%s\t%d\t%s", StatusMarker(t.Status), t.ID, t.Content)
}

// WriteList writes one line per task to w.
func WriteList(w io.Writer, tasks []models.Task) error {
	for _, t := range tasks {
		if _, err := fmt.Fprintln(w, FormatTask(t)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// Export renders tasks in the given format. [FormatSQLite] is not a byte format and is rejected.
func Export(format Format, tasks []models.Task) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(tasks)
	case FormatJSON:
		return ExportToJSON(tasks)
	case FormatMarkdown:
		return ExportToMarkdown(tasks)
	case FormatText:
		return ExportToText(tasks)
	}
	return nil, fmt.Errorf("format %q cannot be rendered to a file", format)
}

// ExportToCSV converts tasks to CSV format with columns: ID, Content, Status
func ExportToCSV(tasks []models.Task) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Content", "Status"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, t := range tasks {
		if err := writer.Write([]string{strconv.Itoa(t.ID), t.Content, t.Status.String()}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts tasks to an indented JSON array.
func ExportToJSON(tasks []models.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToMarkdown converts tasks to a Markdown checklist.
//
// DONE tasks are checked, deleted tasks are struck through, other statuses are annotated.
func ExportToMarkdown(tasks []models.Task) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Tasks\n\n")
	fmt.Fprintf(&buf, "**Total**: %d\n\n", len(tasks))

	for _, t := range tasks {
		content := strings.ReplaceAll(t.Content, "\n", " ")
		switch t.Status {
		case models.StatusDone:
			fmt.Fprintf(&buf, "- [x] %s (#%d)\n", content, t.ID)
		case models.StatusTodo:
			fmt.Fprintf(&buf, "- [ ] %s (#%d)\n", content, t.ID)
		case models.StatusDeleted:
			fmt.Fprintf(&buf, "- [ ] ~~%s~~ (#%d)\n", content, t.ID)
		default:
			fmt.Fprintf(&buf, "- [ ] %s (#%d, %s)\n", content, t.ID, t.Status)
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts tasks to the same plain text layout as `rodo ls`.
func ExportToText(tasks []models.Task) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteList(&buf, tasks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteExport atomically replaces the file at path with data.
func WriteExport(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("export path must not be empty")
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
