package users

import (
	"context"
	"sync"
	"time"

	"github.com/dkrasnovs/filestash/internal/common"
	"github.com/dkrasnovs/filestash/internal/server/models"
)

// InMemoryRepository is a mutex-guarded map implementation used in tests.
// It mirrors the Postgres semantics, including atomic username uniqueness.
type InMemoryRepository struct {
	mu         sync.Mutex
	byID       map[string]*models.User
	byUsername map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:       make(map[string]*models.User),
		byUsername: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[user.UserName]; taken {
		return nil, common.ErrorAlreadyExists
	}

	stored := *user
	stored.CreatedAt = time.Now()
	r.byID[stored.ID] = &stored
	r.byUsername[stored.UserName] = stored.ID

	result := stored
	return &result, nil
}

func (r *InMemoryRepository) GetByLogin(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	result := *r.byID[id]
	return &result, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	result := *u
	return &result, nil
}
