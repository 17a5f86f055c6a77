package session

import "context"

// Repository 是會話持久化的抽象；引擎只透過它讀寫狀態
type Repository interface {
	Save(ctx context.Context, sess *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}
