package reminder

import (
	"context"
	"os"
	"time"

	"github.com/go-redis/redis/v7"
)

// Locker grants at most one holder per key until ttl expires.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// LocalLocker always grants the lock. It is used when no Redis is configured.
type LocalLocker struct{}

func (LocalLocker) Acquire(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}

// RedisLocker takes locks with SETNX so that replicas sharing a Redis
// instance agree on a single holder.
type RedisLocker struct {
	client *redis.Client
	owner  string
}

// NewRedisLocker connects to the Redis instance at url, e.g.
// redis://localhost:6379/0.
func NewRedisLocker(url string) (*RedisLocker, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	owner, _ := os.Hostname()
	return &RedisLocker{client: redis.NewClient(opts), owner: owner}, nil
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.WithContext(ctx).SetNX(key, l.owner, ttl).Result()
}

// Ping checks that Redis is reachable.
func (l *RedisLocker) Ping(ctx context.Context) error {
	return l.client.WithContext(ctx).Ping().Err()
}

func (l *RedisLocker) Close() error {
	return l.client.Close()
}
