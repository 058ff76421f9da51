package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ordernow:"

// RedisKV keeps each collection document under ordernow:<collection>.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV wraps an existing redis client.
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

// Load reads one collection document.
func (r *RedisKV) Load(ctx context.Context, collection string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+collection).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", collection, err)
	}
	return data, true, nil
}

// Save replaces one collection document.
func (r *RedisKV) Save(ctx context.Context, collection string, data []byte) error {
	if err := r.client.Set(ctx, redisKeyPrefix+collection, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", collection, err)
	}
	return nil
}

// Reset removes the named collection documents.
func (r *RedisKV) Reset(ctx context.Context, collections ...string) error {
	keys := make([]string, 0, len(collections))
	for _, collection := range collections {
		keys = append(keys, redisKeyPrefix+collection)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
