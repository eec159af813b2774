// Package storage persists uploaded spreadsheet files on local disk.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes and reads uploaded files under a single directory. Stored
// names are generated, never taken from user input.
type Store struct {
	dir string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// GenerateName returns a unique storage name preserving the original
// file extension.
func (s *Store) GenerateName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.New().String() + ext
}

// Save writes the reader's contents under the given storage name and returns
// the number of bytes written.
func (s *Store) Save(name string, r io.Reader) (int64, error) {
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	return written, nil
}

// Open returns a reader for a stored file.
func (s *Store) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return f, nil
}

// Remove deletes a stored file. Removing a file that is already gone is not
// an error.
func (s *Store) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether a stored file is present on disk.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}
