package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/yuanfantuan/voiceorder/internal/domain/session"
)

// MemoryRepository 是行程內的會話儲存。
// 以 Snapshot 存取，避免多個呼叫端共用同一個 Session 實體。
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]session.Snapshot
}

// NewMemoryRepository 建立記憶體儲存
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sessions: make(map[string]session.Snapshot),
	}
}

// Save 保存會話
func (r *MemoryRepository) Save(ctx context.Context, sess *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sess.ID()] = sess.Snapshot()
	return nil
}

// Load 載入會話
func (r *MemoryRepository) Load(ctx context.Context, id string) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sn, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", session.ErrSessionNotFound, id)
	}
	return session.FromSnapshot(sn), nil
}

// Exists 判斷會話是否存在
func (r *MemoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[id]
	return ok, nil
}

// Delete 刪除會話
func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
