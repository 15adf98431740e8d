package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkrasnovs/filestash/internal/common"
	"github.com/dkrasnovs/filestash/internal/dbx"
	"github.com/dkrasnovs/filestash/internal/server/models"
)

// PostgresRepository implements file-metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, file *models.FileRecord) (*models.FileRecord, error) {
	query :=
		`INSERT INTO files (id, owner_id, original_name, stored_name, content_type, size)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING uploaded_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		file.ID, file.OwnerID, file.OriginalFileName, file.StoredFileName,
		file.ContentType, file.Size).Scan(&file.UploadedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.FileRecord, error) {
	query :=
		`SELECT id, owner_id, original_name, stored_name, content_type, size, uploaded_at
		 FROM files
		 WHERE id = $1
		 `

	f := &models.FileRecord{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&f.ID, &f.OwnerID, &f.OriginalFileName, &f.StoredFileName,
			&f.ContentType, &f.Size, &f.UploadedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return f, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.FileRecord, error) {
	query :=
		`SELECT id, owner_id, original_name, stored_name, content_type, size, uploaded_at
		 FROM files
		 WHERE owner_id = $1
		 ORDER BY uploaded_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.FileRecord{}
	for rows.Next() {
		var f models.FileRecord
		if err := rows.Scan(&f.ID, &f.OwnerID, &f.OriginalFileName, &f.StoredFileName,
			&f.ContentType, &f.Size, &f.UploadedAt); err != nil {
			return nil, err
		}
		result = append(result, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM files WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
