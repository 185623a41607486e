// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"context"
	"time"

	"chatguard/internal/core/version"
	modkit "chatguard/internal/modkit"
	"chatguard/internal/modkit/httpkit"
	"chatguard/internal/platform/store"
	"chatguard/internal/platform/store/rds"

	metahttp "chatguard/internal/services/api/meta/http"
)

// Module serves liveness, readiness and build info
type Module struct {
	modkit.Base

	deps      modkit.Deps
	startedAt time.Time
}

// New constructs the meta module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	return &Module{Base: b, deps: deps, startedAt: time.Now()}
}

// MountRoutes mounts the meta routes under its prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	d := metahttp.Deps{
		ServiceName:  version.Service,
		StartedAt:    m.startedAt,
		ProbeTimeout: m.deps.Cfg.Prefix("CORE_API_").MayDuration("READY_TIMEOUT", 2*time.Second),
		Probes: []metahttp.Probe{
			{Name: "pg", Ping: pingOf(m.deps.PG)},
			{Name: "ch", Ping: pingOf(m.deps.CH)},
			{Name: "redis"},
		},
	}
	if m.deps.RDS != nil {
		d.Probes[2].Ping = rds.Pinger{C: m.deps.RDS}.Ping
	}
	m.Mount(r, func(sub httpkit.Router) { metahttp.Register(sub, d) })
}

// pingOf returns the seam's Ping, nil when the backend is off or cannot ping
func pingOf(seam any) func(context.Context) error {
	if p, ok := seam.(store.Pinger); ok {
		return p.Ping
	}
	return nil
}

// Ports is nil, meta exports nothing
func (m *Module) Ports() any { return nil }
