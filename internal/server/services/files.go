package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"

	"github.com/dkrasnovs/filestash/internal/common"
	"github.com/dkrasnovs/filestash/internal/dbx"
	"github.com/dkrasnovs/filestash/internal/logging"
	"github.com/dkrasnovs/filestash/internal/server/blobstore"
	"github.com/dkrasnovs/filestash/internal/server/models"
	"github.com/dkrasnovs/filestash/internal/server/repositories/repomanager"
)

// MaxUploadSize is the hard ceiling on a single uploaded file.
const MaxUploadSize = 10 << 20 // 10 MiB

// safeExt accepts only short alphanumeric extensions for stored names.
// Anything else is dropped; the stored name stays an opaque uuid either way.
var safeExt = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

// FileService orchestrates the registry and the blob store for file
// operations. Every operation takes the verified caller identity explicitly;
// there is no ambient "current user".
type FileService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	blobs  blobstore.BlobStore
	logger logging.Logger
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, blobs blobstore.BlobStore, logger logging.Logger) *FileService {
	return &FileService{
		db:     db,
		repos:  m,
		blobs:  blobs,
		logger: logger.With("module", "files"),
	}
}

// storedNameFor generates a fresh opaque stored name, keeping a sanitized
// extension from the client filename for convenience.
func storedNameFor(originalName string) string {
	ext := filepath.Ext(filepath.Base(originalName))
	if !safeExt.MatchString(ext) {
		ext = ""
	}
	return uuid.NewString() + ext
}

// Upload validates the declared size, writes the blob, and inserts the
// registry record. If the insert fails after the blob was written, the blob
// is deleted again so no orphaned bytes are left behind.
func (s *FileService) Upload(ctx context.Context, ownerID, originalName, contentType string, size int64, r io.Reader) (*models.FileRecord, error) {
	if size <= 0 {
		return nil, common.ErrorValidation
	}
	if size > MaxUploadSize {
		return nil, common.ErrorFileTooLarge
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	storedName := storedNameFor(originalName)

	if err := s.blobs.Save(ctx, storedName, io.LimitReader(r, size), size); err != nil {
		return nil, fmt.Errorf("saving blob: %w", err)
	}

	record := &models.FileRecord{
		ID:               uuid.NewString(),
		OwnerID:          ownerID,
		OriginalFileName: filepath.Base(originalName),
		StoredFileName:   storedName,
		ContentType:      contentType,
		Size:             size,
	}

	record, err := s.repos.Files(s.db).Create(ctx, record)
	if err != nil {
		// Compensate: the blob exists but the record does not. Best effort;
		// a failed cleanup is logged and the blob stays orphaned.
		if delErr := s.blobs.Delete(ctx, storedName); delErr != nil {
			s.logger.Error(ctx, "orphaned blob after failed insert",
				"stored_name", storedName, "error", delErr.Error())
		}
		return nil, fmt.Errorf("error creating file record: %w", err)
	}

	return record, nil
}

// List returns the caller's file records, newest first.
func (s *FileService) List(ctx context.Context, ownerID string) ([]*models.FileRecord, error) {
	list, err := s.repos.Files(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	return list, nil
}

// authorize loads a record and checks ownership. A missing record and a
// record owned by someone else both yield common.ErrorNotFound, so existence
// is never leaked across owners.
func (s *FileService) authorize(ctx context.Context, ownerID, id string) (*models.FileRecord, error) {
	record, err := s.repos.Files(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading file record: %w", err)
	}
	if record.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	return record, nil
}

// Download authorizes the caller and opens the stored blob for reading.
func (s *FileService) Download(ctx context.Context, ownerID, id string) (*models.FileRecord, io.ReadCloser, error) {
	record, err := s.authorize(ctx, ownerID, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.blobs.Open(ctx, record.StoredFileName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorNotFound
		}
		return nil, nil, fmt.Errorf("opening blob: %w", err)
	}

	return record, rc, nil
}

// Delete authorizes the caller, then removes the registry record and the
// blob in one transaction: if the blob delete errors, the record delete is
// rolled back, so no record can point at missing bytes. Blob deletion itself
// is idempotent at the storage layer.
func (s *FileService) Delete(ctx context.Context, ownerID, id string) error {
	record, err := s.authorize(ctx, ownerID, id)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Files(tx).Delete(ctx, record.ID); err != nil {
			return fmt.Errorf("error deleting file record: %w", err)
		}
		return s.blobs.Delete(ctx, record.StoredFileName)
	})
	if err != nil {
		return err
	}

	return nil
}
