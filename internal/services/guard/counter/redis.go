package counter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"chatguard/internal/services/guard/domain"
)

// DefaultPrefix namespaces guard keys in a shared redis
const DefaultPrefix = "chatguard:guard:"

const scanBatch = 200

// Redis keeps records in redis so every instance sees the same counts
// Reads and writes are separate round trips, the guard serialises them per instance only
type Redis struct {
	c      redis.UniversalClient
	prefix string
}

// NewRedis binds a redis client. An empty prefix uses DefaultPrefix
func NewRedis(c redis.UniversalClient, prefix string) *Redis {
	if c == nil {
		panic("counter.Redis requires a non nil client")
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Redis{c: c, prefix: prefix}
}

// Get loads the record under key
func (r *Redis) Get(ctx context.Context, key string) (domain.Record, bool, error) {
	raw, err := r.c.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Record{}, false, nil
	}
	if err != nil {
		return domain.Record{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var rec domain.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Record{}, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return rec, true, nil
}

// Set writes rec with SET EX. ttl <= 0 stores without expiry
func (r *Redis) Set(ctx context.Context, key string, rec domain.Record, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := r.c.Set(ctx, r.prefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete drops key
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.c.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Clear scans for every key under the prefix and deletes it in batches
func (r *Redis) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := r.c.Scan(ctx, cursor, r.prefix+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := r.c.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
