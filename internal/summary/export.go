package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Export writes the summary as indented JSON. The output is byte-for-byte
// reproducible from identical Summary state.
func Export(w io.Writer, s *Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling summary: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// Parse reads an exported artifact back into a Summary.
func Parse(r io.Reader) (*Summary, error) {
	var s Summary
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing summary: %w", err)
	}
	return &s, nil
}

// ExportFileName returns the conventional artifact name for the given
// moment, e.g. "interview-summary-1717243200000.json".
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("interview-summary-%d.json", now.UnixMilli())
}

// WriteFile exports the summary into dir (created if needed) under the
// conventional name and returns the full path.
func WriteFile(dir string, s *Summary) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, ExportFileName(time.Now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := Export(f, s); err != nil {
		return "", err
	}
	return path, nil
}
