// Package modkit declares api modules: the shared deps they are built from
// and the Base every module embeds for its name, prefix and middleware
package modkit

import (
	"net/http"

	"github.com/redis/go-redis/v9"

	"chatguard/internal/modkit/httpkit"
	"chatguard/internal/modkit/module"
	"chatguard/internal/modkit/repokit"
	"chatguard/internal/platform/config"
	"chatguard/internal/platform/logger"
	"chatguard/internal/platform/store"
	str "chatguard/internal/platform/strings"
)

// Module is module.Module
type Module = module.Module

// Deps are the shared handles modules are built from, any backend may be nil
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
	RDS redis.UniversalClient
}

// Option adjusts a Base while a module is built
type Option func(*Base)

// WithName overrides the module name
func WithName(name string) Option { return func(b *Base) { b.name = name } }

// WithPrefix overrides the route prefix
func WithPrefix(prefix string) Option { return func(b *Base) { b.prefix = prefix } }

// WithMiddlewares appends middleware run on every module route
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Base) { b.mws = append(b.mws, mw...) }
}

// WithPorts hands the module ports exported by another module
func WithPorts[T any](p T) Option { return func(b *Base) { b.injected = p } }

// WithRoutes adds routes mounted after the module's own
func WithRoutes(fn func(httpkit.Router)) Option {
	return func(b *Base) { b.extra = append(b.extra, fn) }
}

// Base is embedded by modules
type Base struct {
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	injected any
	extra    []func(httpkit.Router)
}

// Build applies opts in order, later ones win
func Build(opts ...Option) Base {
	var b Base
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Name is the module name, it panics when unset
func (b Base) Name() string { return str.MustString(b.name, "module name") }

// Prefix is the normalized route prefix
func (b Base) Prefix() string { return str.MustPrefix(b.prefix) }

// Middlewares are the module middleware in order
func (b Base) Middlewares() []func(http.Handler) http.Handler { return b.mws }

// Injected is what WithPorts handed in, nil when nothing was
func (b Base) Injected() any { return b.injected }

// Mount mounts routes and any WithRoutes extras under the prefix
func (b Base) Mount(r httpkit.Router, routes func(httpkit.Router)) {
	httpkit.MountUnder(r, b.Prefix(), b.mws, func(sub httpkit.Router) {
		routes(sub)
		for _, fn := range b.extra {
			fn(sub)
		}
	})
}
