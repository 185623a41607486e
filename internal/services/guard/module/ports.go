package module

import (
	"context"
	"time"

	"chatguard/internal/services/guard/domain"
	guardsvc "chatguard/internal/services/guard/service"
)

// Ports are the guard ports exposed via the registry
type Ports struct {
	Guard   domain.ServicePort
	Sweeper domain.SweeperPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptGuardPort struct{ svc guardsvc.Service }

// Check counts one sighting of an entity
func (a adaptGuardPort) Check(ctx context.Context, id string) domain.Check {
	return a.svc.Check(ctx, id)
}

// Reset forgets one entity
func (a adaptGuardPort) Reset(ctx context.Context, id string) { a.svc.Reset(ctx, id) }

// ClearAll forgets every entity
func (a adaptGuardPort) ClearAll(ctx context.Context) { a.svc.ClearAll(ctx) }

// ShouldPropagate applies the provenance rule
func (a adaptGuardPort) ShouldPropagate(src domain.UpdateSource, dir domain.Direction) bool {
	return a.svc.ShouldPropagate(src, dir)
}

// WasRecentlyUpdatedInternally looks for our own recent write
func (a adaptGuardPort) WasRecentlyUpdatedInternally(ctx context.Context, id string, window time.Duration) domain.Internal {
	return a.svc.WasRecentlyUpdatedInternally(ctx, id, window)
}

// RecordSource logs update provenance
func (a adaptGuardPort) RecordSource(ctx context.Context, id string, src domain.UpdateSource, details map[string]any) {
	a.svc.RecordSource(ctx, id, src, details)
}

// SafeProcess guards fn behind the breaker and the echo check
func (a adaptGuardPort) SafeProcess(ctx context.Context, id string, src domain.UpdateSource, fn domain.ProcessFunc) domain.Outcome {
	return a.svc.SafeProcess(ctx, id, src, fn)
}
