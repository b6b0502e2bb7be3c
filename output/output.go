// Package output renders command results as JSON or plain text, either to
// stdout or to a file.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer sends results to stdout, or to a file when a path is set.
type Writer struct {
	path   string
	stdout io.Writer
}

// New creates a Writer. An empty path means stdout.
func New(path string) *Writer {
	return &Writer{path: path, stdout: os.Stdout}
}

// Path returns the output file path, empty when writing to stdout.
func (w *Writer) Path() string {
	return w.path
}

// JSON renders v with two-space indentation. Raw JSON values pass through
// with their key order intact.
func (w *Writer) JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	data = append(data, '\n')
	if w.path == "" {
		_, err := w.stdout.Write(data)
		return err
	}
	return w.writeFile(data)
}

// Text writes s verbatim. On stdout a trailing newline is added.
func (w *Writer) Text(s string) error {
	if w.path == "" {
		_, err := fmt.Fprintln(w.stdout, s)
		return err
	}
	return w.writeFile([]byte(s))
}

func (w *Writer) writeFile(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(w.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(w.stdout, "Output written to %s\n", w.path)
	return nil
}
