// Package repokit holds the seams sql repositories are written against
package repokit

import (
	"context"
	"fmt"
	"time"

	perr "chatguard/internal/platform/errors"
	"chatguard/internal/platform/store"
)

type (
	// Queryer is the sql surface a bound repository runs on
	Queryer = store.RowQuerier
	// TxRunner opens transactions
	TxRunner = store.TxRunner

	Rows       = store.Rows
	Row        = store.Row
	CommandTag = store.CommandTag
)

// Binder binds a repository to a Queryer, usually a tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// WithTx runs fn inside one transaction on db
func WithTx(ctx context.Context, db TxRunner, fn func(q Queryer) error) error {
	return db.Tx(ctx, fn)
}

// WithTxRetry reruns fn in a fresh transaction while the error is retryable
// serialization failures and deadlocks are the usual cases
func WithTxRetry(ctx context.Context, db TxRunner, attempts int, fn func(q Queryer) error) error {
	var err error
	for range max(attempts, 1) {
		if err = db.Tx(ctx, fn); err == nil || !perr.IsRetryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}

type guarder interface {
	Guard(context.Context) error
}

// MustGuard panics unless every configured backend answers
// ctx without a deadline gets five seconds
func MustGuard(ctx context.Context, g guarder) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
