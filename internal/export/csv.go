package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CSVSink appends capture rows to a CSV file, writing the header when the
// file is created.
type CSVSink struct {
	path string
}

// NewCSVSink creates a sink writing to the given file path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Append writes one row: timestamp, window title, flattened text (newlines
// become " | " so the row stays single-line).
func (s *CSVSink) Append(r Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create CSV directory: %w", err)
	}

	_, statErr := os.Stat(s.path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write([]string{"timestamp", "window_title", "raw_text"}); err != nil {
			return err
		}
	}

	text := strings.ReplaceAll(r.Text, "\n", " | ")
	if strings.TrimSpace(text) == "" {
		text = "No text detected"
	}

	if err := w.Write([]string{
		r.Timestamp.Format("2006-01-02 15:04:05"),
		r.WindowTitle,
		text,
	}); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

// Path returns the CSV file path.
func (s *CSVSink) Path() string {
	return s.path
}
