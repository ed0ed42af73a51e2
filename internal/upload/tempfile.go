// Package upload persists uploaded files to uniquely named temporary files and guarantees
// their removal.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// filePrefix marks files owned by this package inside a shared temp directory.
const filePrefix = "inspekt-upload-"

// Store writes uploads into a directory. The zero value uses os.TempDir().
type Store struct {
	Dir string
}

// NewStore returns a Store rooted at dir, creating the directory if needed.
// An empty dir selects os.TempDir().
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// TempFile is an uploaded file held on disk for the duration of one request.
// Callers must defer Remove as soon as Save returns.
type TempFile struct {
	Path      string
	Filename  string
	MediaType string
	Size      int64
}

// Save copies src into a new uniquely named file. On failure nothing is left on disk.
func (s *Store) Save(src io.Reader, filename, mediaType string) (*TempFile, error) {
	dir := s.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, filePrefix+uuid.NewString())
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	n, err := io.Copy(f, src)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	return &TempFile{Path: path, Filename: filename, MediaType: mediaType, Size: n}, nil
}

// ReadAll returns the full contents of the file.
func (t *TempFile) ReadAll() ([]byte, error) {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		return nil, fmt.Errorf("read temp file: %w", err)
	}
	return data, nil
}

// Remove deletes the file. Removing an already removed file is not an error.
func (t *TempFile) Remove() error {
	if err := os.Remove(t.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove temp file: %w", err)
	}
	return nil
}
