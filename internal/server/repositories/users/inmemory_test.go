package users

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dkrasnovs/filestash/internal/common"
	"github.com/dkrasnovs/filestash/internal/server/models"
)

func TestInMemory_CreateAndLookup(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, &models.User{ID: "id-1", UserName: "alice", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if u.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not set")
	}

	byLogin, err := repo.GetByLogin(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByLogin error: %v", err)
	}
	if byLogin.ID != "id-1" {
		t.Fatalf("GetByLogin returned wrong user: %+v", byLogin)
	}

	byID, err := repo.GetByID(ctx, "id-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if byID.UserName != "alice" {
		t.Fatalf("GetByID returned wrong user: %+v", byID)
	}
}

func TestInMemory_LookupMissing(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	if _, err := repo.GetByLogin(ctx, "nobody"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "nope"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestInMemory_DuplicateUsername(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, &models.User{ID: "a", UserName: "bob"}); err != nil {
		t.Fatalf("first Create error: %v", err)
	}
	_, err := repo.Create(ctx, &models.User{ID: "b", UserName: "bob"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected common.ErrorAlreadyExists, got %v", err)
	}
}

func TestInMemory_ConcurrentRegistrationsSameUsername(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, &models.User{ID: string(rune('a' + i)), UserName: "carol"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, common.ErrorAlreadyExists):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one successful registration, got %d", succeeded)
	}
}
