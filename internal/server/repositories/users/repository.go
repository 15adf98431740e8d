// Package users defines the account registry contract.
package users

import (
	"context"

	"github.com/dkrasnovs/filestash/internal/server/models"
)

// Repository is the keyed record store for accounts.
//
// Create is insert-if-absent: the uniqueness check and the insert are one
// atomic operation at the storage layer, so two concurrent registrations of
// the same username cannot both succeed. A duplicate yields
// common.ErrorAlreadyExists; a missed lookup yields common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByLogin(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
