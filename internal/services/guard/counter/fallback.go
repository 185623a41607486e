package counter

import (
	"context"
	"time"

	"chatguard/internal/platform/logger"
	"chatguard/internal/services/guard/domain"
)

// Fallback reads and writes Primary and switches to Secondary for any call
// Primary fails. A redis outage degrades to per instance counting
type Fallback struct {
	Primary   domain.CounterStore
	Secondary domain.CounterStore
	Log       logger.Logger
}

// Get tries Primary then Secondary
func (f Fallback) Get(ctx context.Context, key string) (domain.Record, bool, error) {
	rec, ok, err := f.Primary.Get(ctx, key)
	if err == nil {
		return rec, ok, nil
	}
	f.Log.Warn().Err(err).Str("key", key).Msg("guard counter primary get failed, using fallback")
	return f.Secondary.Get(ctx, key)
}

// Set writes both stores so the fallback stays warm
func (f Fallback) Set(ctx context.Context, key string, rec domain.Record, ttl time.Duration) error {
	if err := f.Primary.Set(ctx, key, rec, ttl); err != nil {
		f.Log.Warn().Err(err).Str("key", key).Msg("guard counter primary set failed, using fallback")
	}
	return f.Secondary.Set(ctx, key, rec, ttl)
}

// Delete removes key from both stores
func (f Fallback) Delete(ctx context.Context, key string) error {
	if err := f.Primary.Delete(ctx, key); err != nil {
		f.Log.Warn().Err(err).Str("key", key).Msg("guard counter primary delete failed")
	}
	return f.Secondary.Delete(ctx, key)
}

// Clear empties both stores
func (f Fallback) Clear(ctx context.Context) error {
	if err := f.Primary.Clear(ctx); err != nil {
		f.Log.Warn().Err(err).Msg("guard counter primary clear failed")
	}
	return f.Secondary.Clear(ctx)
}
