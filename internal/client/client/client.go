package client

import (
	"context"
	"io"

	"github.com/dkrasnovs/filestash/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	IsAuthenticated() bool
	Logout()
	Upload(ctx context.Context, fileName string, contentType string, r io.Reader) (*models.FileInfo, error)
	List(ctx context.Context) ([]*models.FileInfo, error)
	Download(ctx context.Context, id string, w io.Writer) error
	Delete(ctx context.Context, id string) error
}
