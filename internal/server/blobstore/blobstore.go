// Package blobstore stores raw file bytes keyed by an opaque stored name.
//
// Stored names are server-generated tokens, never client-supplied filenames,
// so a key can never traverse outside the store or collide with another
// user's object.
package blobstore

import (
	"context"
	"errors"
	"io"
	"strings"
)

// BlobStore is the storage contract for file contents.
//
// Open returns common.ErrorNotFound when the key does not exist.
// Delete is idempotent: deleting an absent key is not an error.
type BlobStore interface {
	// Save writes the full stream under storedName. size is the declared
	// length of r in bytes. An implementation must not leave a partially
	// overwritten object visible on failure.
	Save(ctx context.Context, storedName string, r io.Reader, size int64) error

	// Open returns a fresh reader positioned at the start of the object.
	Open(ctx context.Context, storedName string) (io.ReadCloser, error)

	// Delete removes the object if present.
	Delete(ctx context.Context, storedName string) error
}

// ValidateStoredName rejects keys that are empty or contain path separators.
// Keys are generated server-side, so a violation here means a programming
// error or tampering, not a user mistake.
func ValidateStoredName(name string) error {
	if name == "" || name == "." || name == ".." {
		return errors.New("blobstore: empty or reserved stored name")
	}
	if strings.ContainsAny(name, `/\`) {
		return errors.New("blobstore: stored name contains a path separator")
	}
	return nil
}
