package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/yuanfantuan/voiceorder/internal/domain/session"
)

const redisKeyPrefix = "voiceorder:session:"

// RedisRepository 是 Redis 版的會話儲存，多台點餐機共用會話時使用。
// 每次 Save 重設 TTL，閒置超過 TTL 的會話自動過期。
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRepository 建立 Redis 儲存；ttl <= 0 時用 30 分鐘
func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisRepository{client: client, ttl: ttl}
}

// Save 保存會話並重設 TTL
func (r *RedisRepository) Save(ctx context.Context, sess *session.Session) error {
	data, err := sonic.Marshal(sess.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+sess.ID(), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session to redis: %w", err)
	}
	return nil
}

// Load 載入會話
func (r *RedisRepository) Load(ctx context.Context, id string) (*session.Session, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", session.ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("failed to load session from redis: %w", err)
	}

	var sn session.Snapshot
	if err := sonic.Unmarshal(data, &sn); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session.FromSnapshot(sn), nil
}

// Exists 判斷會話是否存在
func (r *RedisRepository) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session in redis: %w", err)
	}
	return n > 0, nil
}

// Delete 刪除會話
func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}
	return nil
}
