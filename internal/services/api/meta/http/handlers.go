// Package http serves liveness, readiness and build info
package http

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"chatguard/internal/core/version"
	"chatguard/internal/modkit/httpkit"
)

// Probe is one readiness dependency, a nil Ping reports skipped
type Probe struct {
	Name string
	Ping func(context.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Probes      []Probe

	// ProbeTimeout bounds the whole readiness round, 2s when zero
	ProbeTimeout time.Duration
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ProbeTimeout <= 0 {
		d.ProbeTimeout = 2 * time.Second
	}
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/pipeline", h.pipeline)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"chatguard-api"`
	Started string `json:"started" example:"2026-10-01T09:00:00Z"`
	Now     string `json:"now"     example:"2026-10-01T09:05:00Z"`
}

// ReadyCheck is the outcome of one probe: ok, fail or skipped
type ReadyCheck struct {
	Name      string  `json:"name"                 example:"pg"`
	Status    string  `json:"status"               example:"ok"`
	LatencyMS float64 `json:"latency_ms,omitempty" example:"1.25"`
	Error     string  `json:"error,omitempty"      example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is fail when any configured backend fails
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-01T09:05:00Z"`
}

// ServiceResponse reports uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"chatguard-api"`
	Started string `json:"started" example:"2026-10-01T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// PipelineResponse reports the reply pipeline version next to the build
type PipelineResponse struct {
	PipelineVersion int               `json:"pipeline_version" example:"3"`
	Build           version.BuildInfo `json:"build"`
}

// health godoc
// @Summary  Liveness
// @Tags     Meta
// @Produce  json
// @Success  200 {object} HealthResponse
// @Router   /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Now:     stamp(h.now()),
	}, nil
}

// ready godoc
// @Summary      Readiness with one check per configured backend
// @Description  Backends that are not configured report skipped and never fail readiness
// @Tags         Meta
// @Produce      json
// @Success      200 {object} ReadyResponse
// @Router       /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.deps.ProbeTimeout)
	defer cancel()

	checks := make([]ReadyCheck, len(h.deps.Probes))
	var g errgroup.Group
	for i, p := range h.deps.Probes {
		checks[i] = ReadyCheck{Name: p.Name, Status: "skipped"}
		if p.Ping == nil {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			err := p.Ping(ctx)
			checks[i].LatencyMS = float64(time.Since(start).Microseconds()) / 1000
			checks[i].Status = "ok"
			if err != nil {
				checks[i].Status, checks[i].Error = "fail", err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()

	status := "ok"
	for _, c := range checks {
		if c.Status == "fail" {
			status = "fail"
		}
	}
	return ReadyResponse{Status: status, Checks: checks, Now: stamp(h.now())}, nil
}

// version godoc
// @Summary  Build info
// @Tags     Meta
// @Produce  json
// @Success  200 {object} version.BuildInfo
// @Router   /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// service godoc
// @Summary  Service name and uptime
// @Tags     Meta
// @Produce  json
// @Success  200 {object} ServiceResponse
// @Router   /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Uptime:  int64(h.now().Sub(h.deps.StartedAt) / time.Second),
	}, nil
}

// pipeline godoc
// @Summary  Reply pipeline version
// @Tags     Meta
// @Produce  json
// @Success  200 {object} PipelineResponse
// @Router   /meta/pipeline [get]
func (h *handlers) pipeline(_ *http.Request) (any, error) {
	return PipelineResponse{PipelineVersion: version.PipelineVersion, Build: version.Info()}, nil
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }
