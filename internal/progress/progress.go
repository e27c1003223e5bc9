// Package progress persists the session checkpoint: the index of the next
// sentence to record.
//
// The checkpoint is a single decimal integer in a plain text file. It is the
// only durable state shared between sessions, so writes are atomic: the new
// value is written to a temporary file in the same directory and renamed over
// the old one. A crash can therefore never leave a partially written
// checkpoint — the previous value simply stands.
package progress

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store reads and writes the checkpoint file at a fixed path.
type Store struct {
	path string
}

// NewStore returns a Store backed by the file at path. The file does not need
// to exist yet; it is created on the first Save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the saved checkpoint. A missing file, unreadable file, or
// non-numeric content all load as 0 — restarting the corpus from the
// beginning is safer than refusing to start at all.
func (s *Store) Load() int {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Save durably overwrites the checkpoint with n. The write is atomic: either
// the previous value or n is visible afterwards, never a partial write.
func (s *Store) Save(n int) error {
	if n < 0 {
		return fmt.Errorf("progress: checkpoint %d is negative", n)
	}

	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("progress: create checkpoint dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("progress: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(strconv.Itoa(n)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("progress: write checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("progress: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("progress: replace checkpoint file: %w", err)
	}
	return nil
}
