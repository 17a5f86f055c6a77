package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/yuanfantuan/voiceorder/internal/domain/order"
	"github.com/yuanfantuan/voiceorder/internal/domain/routing"
	"github.com/yuanfantuan/voiceorder/internal/domain/session"
)

func TestMemoryRepositorySaveAndLoad(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, sampleSession("m-001")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := repo.Load(ctx, "m-001")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ID() != "m-001" {
		t.Errorf("ID = %s, want m-001", loaded.ID())
	}
	if len(loaded.Order().Items()) != 1 {
		t.Errorf("items = %d, want 1", len(loaded.Order().Items()))
	}
}

func TestMemoryRepositoryLoadReturnsCopy(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, sampleSession("m-002")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	first, _ := repo.Load(ctx, "m-002")
	first.Order().AddItem(order.Frame{Type: routing.RouteSnack, Flavor: "薯餅"})

	second, _ := repo.Load(ctx, "m-002")
	if len(second.Order().Items()) != 1 {
		t.Errorf("stored session mutated through loaded copy: items = %d", len(second.Order().Items()))
	}
}

func TestMemoryRepositoryNotFound(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.Load(context.Background(), "missing")
	if !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryRepositoryDelete(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	repo.Save(ctx, sampleSession("m-003"))
	if err := repo.Delete(ctx, "m-003"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	ok, _ := repo.Exists(ctx, "m-003")
	if ok {
		t.Error("session should not exist after delete")
	}
}

func TestMemoryRepositoryConcurrentAccess(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			sess := session.NewSession(id)
			if err := repo.Save(ctx, sess); err != nil {
				t.Errorf("Save(%s) failed: %v", id, err)
			}
			if _, err := repo.Load(ctx, id); err != nil {
				t.Errorf("Load(%s) failed: %v", id, err)
			}
		}(string(rune('a' + i)))
	}
	wg.Wait()
}
