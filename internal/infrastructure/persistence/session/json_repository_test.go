package session

import (
	"context"
	"errors"
	"testing"

	"github.com/yuanfantuan/voiceorder/internal/domain/order"
	"github.com/yuanfantuan/voiceorder/internal/domain/routing"
	"github.com/yuanfantuan/voiceorder/internal/domain/session"
)

func sampleSession(id string) *session.Session {
	sess := session.NewSession(id)
	sess.Order().AddItem(order.Frame{
		Type:   routing.RouteRiceball,
		Flavor: "韓式泡菜",
		Rice:   "白米",
	})
	sess.Order().Enqueue(order.Frame{
		Type:  routing.RouteDrink,
		Drink: "豆漿",
		Size:  "大杯",
	})
	sess.SetLastRoute(routing.RouteDrink)
	sess.NextTurn()
	return sess
}

func TestJSONRepositorySaveAndLoad(t *testing.T) {
	repo, err := NewJSONRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONRepository: %v", err)
	}
	ctx := context.Background()

	sess := sampleSession("sess-001")
	if err := repo.Save(ctx, sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := repo.Load(ctx, "sess-001")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.ID() != "sess-001" {
		t.Errorf("ID = %s, want sess-001", loaded.ID())
	}
	if loaded.LastRoute() != routing.RouteDrink {
		t.Errorf("LastRoute = %s, want drink", loaded.LastRoute())
	}
	if loaded.Turns() != 1 {
		t.Errorf("Turns = %d, want 1", loaded.Turns())
	}

	items := loaded.Order().Items()
	if len(items) != 1 || items[0].Flavor != "韓式泡菜" {
		t.Errorf("unexpected items: %+v", items)
	}
	pending := loaded.Order().Pending()
	if len(pending) != 1 || pending[0].Frame.Drink != "豆漿" {
		t.Errorf("unexpected pending: %+v", pending)
	}
	// 補槽狀態要還原：豆漿還缺溫度
	if pending[0].Complete() {
		t.Error("pending drink should still be incomplete after reload")
	}
}

func TestJSONRepositoryLoadNotFound(t *testing.T) {
	repo, err := NewJSONRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONRepository: %v", err)
	}

	_, err = repo.Load(context.Background(), "no-such-session")
	if !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestJSONRepositoryExistsAndDelete(t *testing.T) {
	repo, err := NewJSONRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONRepository: %v", err)
	}
	ctx := context.Background()

	ok, err := repo.Exists(ctx, "sess-002")
	if err != nil || ok {
		t.Errorf("Exists before save = %v, %v", ok, err)
	}

	if err := repo.Save(ctx, sampleSession("sess-002")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	ok, err = repo.Exists(ctx, "sess-002")
	if err != nil || !ok {
		t.Errorf("Exists after save = %v, %v", ok, err)
	}

	if err := repo.Delete(ctx, "sess-002"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	ok, _ = repo.Exists(ctx, "sess-002")
	if ok {
		t.Error("session should not exist after delete")
	}

	// 重複刪除不是錯
	if err := repo.Delete(ctx, "sess-002"); err != nil {
		t.Errorf("second Delete should be nil, got %v", err)
	}
}
