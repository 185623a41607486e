// Package net holds the request scoped values and the JSON envelope every
// transport shares
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type userKey struct{}

// WithRequestID stores reqID under chi's key so chimw.GetReqID finds it
func WithRequestID(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID is the id chi's RequestID middleware assigned, "" outside a request
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithUser records the authenticated principal, empty ids are ignored
func WithUser(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userKey{}, userID)
}

// UserID is the principal set by WithUser
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userKey{}).(string)
	return id
}
