// Package services contains server-side business logic: account registration
// and login, and the file operations guarded by ownership checks.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dkrasnovs/filestash/internal/common"
	"github.com/dkrasnovs/filestash/internal/server/auth"
	"github.com/dkrasnovs/filestash/internal/server/models"
	"github.com/dkrasnovs/filestash/internal/server/repositories/repomanager"
)

// UserService handles registration and login and mints identity tokens.
type UserService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	tokens *auth.TokenIssuer
}

// NewUserService constructs a UserService using repositories and the token issuer.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenIssuer) *UserService {
	return &UserService{db: db, repos: m, tokens: tokens}
}

// Register creates a new account and returns it together with a fresh token.
// Blank username or password yields common.ErrorValidation before the
// registry is touched; a taken username yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, string, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil, "", common.ErrorValidation
	}

	user := &models.User{
		ID:           uuid.NewString(),
		UserName:     username,
		PasswordHash: auth.HashPassword(password),
	}

	repo := s.repos.Users(s.db)
	user, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", common.ErrorAlreadyExists
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies the credentials and returns a fresh token. Unknown usernames
// and wrong passwords both yield common.ErrorUnauthorized, so callers cannot
// distinguish the two.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return "", common.ErrorValidation
	}

	repo := s.repos.Users(s.db)
	user, err := repo.GetByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}
