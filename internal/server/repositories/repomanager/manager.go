package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkrasnovs/filestash/internal/dbx"
	"github.com/dkrasnovs/filestash/internal/server/repositories/files"
	"github.com/dkrasnovs/filestash/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so the
// same repository code runs against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Files(db dbx.DBTX) files.Repository
}
