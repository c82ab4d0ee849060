package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileWriter writes reports as files inside a directory
type FileWriter struct {
	dir string
}

// NewFileWriter creates a file writer rooted at dir. An empty dir means the
// working directory.
func NewFileWriter(dir string) *FileWriter {
	if dir == "" {
		dir = "."
	}
	return &FileWriter{dir: dir}
}

// Dir returns the target directory
func (w *FileWriter) Dir() string {
	return w.dir
}

// WriteReport stores content under name and returns the final path.
// The file is written to a temporary sibling and renamed into place.
func (w *FileWriter) WriteReport(name string, content []byte) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid report name %q", name)
	}

	if w.dir != "." {
		if err := os.MkdirAll(w.dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(w.dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to close report: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to set report permissions: %w", err)
	}

	path := filepath.Join(w.dir, name)
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to move report into place: %w", err)
	}
	return path, nil
}

// ConsoleWriter writes reports to a stream instead of a file
type ConsoleWriter struct {
	w io.Writer
}

// NewConsoleWriter creates a console writer
func NewConsoleWriter(w io.Writer) *ConsoleWriter {
	return &ConsoleWriter{w: w}
}

// WriteReport writes content to the stream. The returned path is always "-".
func (w *ConsoleWriter) WriteReport(_ string, content []byte) (string, error) {
	if _, err := w.w.Write(content); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return "-", nil
}
