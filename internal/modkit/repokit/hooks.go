package repokit

import (
	"context"
	"fmt"
	"time"
)

// BeginHook runs first inside every transaction
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks returns db with hooks run ahead of each Tx body
// statements outside Tx go straight to db
func WithBeginHooks(db TxRunner, hooks ...BeginHook) TxRunner {
	if len(hooks) == 0 {
		return db
	}
	return hooked{TxRunner: db, hooks: hooks}
}

// StatementTimeout sets a tx local statement_timeout, zero is a no op
func StatementTimeout(d time.Duration) BeginHook {
	return setLocal("statement_timeout", d)
}

// LockTimeout sets a tx local lock_timeout, zero is a no op
func LockTimeout(d time.Duration) BeginHook {
	return setLocal("lock_timeout", d)
}

func setLocal(name string, d time.Duration) BeginHook {
	return func(ctx context.Context, q Queryer) error {
		if d <= 0 {
			return nil
		}
		if _, err := q.Exec(ctx, fmt.Sprintf("SET LOCAL %s = %d", name, d.Milliseconds())); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
		return nil
	}
}

type hooked struct {
	TxRunner
	hooks []BeginHook
}

func (h hooked) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hook := range h.hooks {
			if err := hook(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}
