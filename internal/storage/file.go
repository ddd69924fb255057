package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// FileMedium stores each key as its own file under BaseDir.
type FileMedium struct {
	BaseDir string

	mu sync.Mutex
}

// NewFileMedium creates BaseDir if needed and returns a FileMedium rooted
// there.
func NewFileMedium(baseDir string) (*FileMedium, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", baseDir, err)
	}
	return &FileMedium{BaseDir: baseDir}, nil
}

// Path returns the file that holds key.
func (f *FileMedium) Path(key string) string {
	return filepath.Join(f.BaseDir, url.QueryEscape(key)+".json")
}

func (f *FileMedium) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	data, err := os.ReadFile(f.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes to a temporary file first and renames it into place so a
// reader never sees a half-written value.
func (f *FileMedium) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(key, value)
}

func (f *FileMedium) Remove(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.Path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Swap is atomic with respect to other callers of the same FileMedium only.
func (f *FileMedium) Swap(_ context.Context, key string, old *string, value string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.Path(key))
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !matches(string(data), exists, old) {
		return false, nil
	}
	if err := f.write(key, value); err != nil {
		return false, err
	}
	return true, nil
}

func (f *FileMedium) write(key, value string) error {
	tmp, err := os.CreateTemp(f.BaseDir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), f.Path(key)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
