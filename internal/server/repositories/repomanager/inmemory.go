package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkrasnovs/filestash/internal/dbx"
	"github.com/dkrasnovs/filestash/internal/server/repositories/files"
	"github.com/dkrasnovs/filestash/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves the in-memory repositories regardless of
// the DBTX passed in. Intended for tests; RunMigrations is a no-op.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
	files *files.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users: users.NewInMemoryRepository(),
		files: files.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Files(db dbx.DBTX) files.Repository {
	return m.files
}
