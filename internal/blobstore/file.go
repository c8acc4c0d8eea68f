package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
)

// File stores each key as one file under Dir. Writes go to a temp file
// that is renamed over the target so a crash never leaves a torn value.
type File struct {
	Dir string
}

// NewFile returns a File store rooted at dir. The directory is created on
// first write.
func NewFile(dir string) *File {
	return &File{Dir: dir}
}

// Path returns the file holding key.
func (s *File) Path(key string) string {
	return filepath.Join(s.Dir, url.PathEscape(key)+".json")
}

// Get implements Store.
func (s *File) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set implements Store.
func (s *File) Set(ctx context.Context, key, value string) error {
	if err := os.MkdirAll(s.Dir, 0700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := writeFileAtomic(s.Path(key), []byte(value)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// writeFileAtomic replaces path with data, mode 0600. The data lands in a
// temp file in the same directory first and is renamed into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// Close implements Store.
func (s *File) Close() error { return nil }
