package dedup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisGuard is a dedup guard backed by a shared redis instance so multiple
// pipeline instances agree on "already posted"
type RedisGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisGuard creates a guard using the given client. Keys expire after
// ttl; zero ttl keeps them forever.
func NewRedisGuard(rdb *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{rdb: rdb, ttl: ttl}
}

func postedKey(postID string) string {
	return fmt.Sprintf("feedbridge:posted:%s", postID)
}

// ShouldProcess reports whether the post has not been dispatched yet
func (g *RedisGuard) ShouldProcess(ctx context.Context, postID string) (bool, error) {
	_, err := g.rdb.Get(ctx, postedKey(postID)).Result()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("check posted key: %w", err)
	}
	return false, nil
}

// MarkProcessed records the post as dispatched. SetNX keeps the first
// writer's record when instances race.
func (g *RedisGuard) MarkProcessed(ctx context.Context, postID string) error {
	if err := g.rdb.SetNX(ctx, postedKey(postID), "1", g.ttl).Err(); err != nil {
		return fmt.Errorf("mark posted: %w", err)
	}
	return nil
}
