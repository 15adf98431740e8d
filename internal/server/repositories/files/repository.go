// Package files defines the file-metadata registry contract.
package files

import (
	"context"

	"github.com/dkrasnovs/filestash/internal/server/models"
)

// Repository is the keyed record store for file metadata.
//
// GetByID and Delete yield common.ErrorNotFound for unknown ids. ListByOwner
// returns records newest first (upload time descending).
type Repository interface {
	Create(ctx context.Context, file *models.FileRecord) (*models.FileRecord, error)
	GetByID(ctx context.Context, id string) (*models.FileRecord, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.FileRecord, error)
	Delete(ctx context.Context, id string) error
}
