package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dkrasnovs/filestash/internal/common"
)

// LocalStore keeps blobs as individual files under a base directory.
//
// Save writes to a temporary file next to the target and renames it into
// place, so readers never observe a partially written object.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the base directory if needed and returns a store
// rooted there.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) path(storedName string) (string, error) {
	if err := ValidateStoredName(storedName); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, storedName), nil
}

func (s *LocalStore) Save(ctx context.Context, storedName string, r io.Reader, size int64) error {
	path, err := s.path(storedName)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, storedName+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close blob: %w", err)
	}

	// Atomic publish: the object appears fully written or not at all.
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("publish blob: %w", err)
	}
	return nil
}

func (s *LocalStore) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	path, err := s.path(storedName)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return f, nil
}

func (s *LocalStore) Delete(ctx context.Context, storedName string) error {
	path, err := s.path(storedName)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}
