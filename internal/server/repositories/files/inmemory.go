package files

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dkrasnovs/filestash/internal/common"
	"github.com/dkrasnovs/filestash/internal/server/models"
)

// InMemoryRepository is a mutex-guarded map implementation used in tests.
type InMemoryRepository struct {
	mu   sync.Mutex
	byID map[string]*models.FileRecord

	// clock lets tests assign distinct upload times deterministically.
	clock func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:  make(map[string]*models.FileRecord),
		clock: time.Now,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, file *models.FileRecord) (*models.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *file
	if stored.UploadedAt.IsZero() {
		stored.UploadedAt = r.clock()
	}
	r.byID[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	result := *f
	return &result, nil
}

func (r *InMemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*models.FileRecord{}
	for _, f := range r.byID {
		if f.OwnerID == ownerID {
			copy := *f
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UploadedAt.After(result[j].UploadedAt)
	})
	return result, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}
