// Package module wires the loop guard into the API using modkit
package module

import (
	"strings"

	modkit "chatguard/internal/modkit"
	"chatguard/internal/modkit/httpkit"
	"chatguard/internal/modkit/repokit"
	"chatguard/internal/platform/net/middleware"
	"chatguard/internal/services/guard/counter"
	"chatguard/internal/services/guard/domain"
	"chatguard/internal/services/guard/events"
	guardhttp "chatguard/internal/services/guard/http"
	guardrepo "chatguard/internal/services/guard/repo"
	guardsvc "chatguard/internal/services/guard/service"
)

// Module implements the guard module
type Module struct {
	modkit.Base

	ports Ports
	svc   guardsvc.Service
	mem   *counter.Memory
	trips guardhttp.TripReader
	admin middleware.AuthPort
}

// New constructs the guard module with options read from CORE_GUARD_
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	return NewWith(deps, FromConfig(deps.Cfg), opts...)
}

// NewWith constructs the guard module with explicit options
func NewWith(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("guard"), modkit.WithPrefix("/guard")}, opts...)...)

	mem := counter.NewMemory(counter.WithEvictEvery(o.EvictEvery))
	var store domain.CounterStore = mem
	if deps.RDS != nil && strings.EqualFold(o.Counter, "redis") {
		store = counter.Fallback{
			Primary:   counter.NewRedis(deps.RDS, o.RedisPrefix),
			Secondary: mem,
			Log:       deps.Log,
		}
	}

	svcOpts := []guardsvc.Option{guardsvc.WithLogger(deps.Log.With().Str("component", "guard").Logger())}
	if deps.PG != nil {
		svcOpts = append(svcOpts, guardsvc.WithRepo(
			repokit.WithBeginHooks(deps.PG,
				repokit.StatementTimeout(o.StatementTimeout),
				repokit.LockTimeout(o.LockTimeout),
			),
			guardrepo.NewPG(),
		))
	}
	var trips guardhttp.TripReader
	if deps.CH != nil {
		sink := events.NewCH(deps.CH, o.TripsTable)
		svcOpts = append(svcOpts, guardsvc.WithSink(sink))
		trips = sink
	}

	svc := guardsvc.New(guardsvc.Config{
		Window:         o.Window,
		Threshold:      o.Threshold,
		InternalWindow: o.InternalWindow,
		SweepEvery:     o.SweepEvery,
	}, store, svcOpts...)

	m := &Module{
		Base:  b,
		ports: Ports{Guard: adaptGuardPort{svc: svc}, Sweeper: svc},
		svc:   svc,
		mem:   mem,
		trips: trips,
	}
	if o.AdminToken != "" {
		m.admin = middleware.StaticToken(o.AdminToken)
	}
	return m
}

// MountRoutes mounts the guard routes under its prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(sub httpkit.Router) { guardhttp.Register(sub, m.svc, m.trips, m.admin) })
}

// Close stops the in memory counter eviction
func (m *Module) Close() error { return m.mem.Close() }
