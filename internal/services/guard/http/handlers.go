// Package http provides http transport for the loop guard
package http

import (
	stdctx "context"
	stdhttp "net/http"
	"strconv"
	"time"

	"chatguard/internal/modkit/httpkit"
	perr "chatguard/internal/platform/errors"
	"chatguard/internal/platform/net/middleware"
	"chatguard/internal/services/guard/domain"
	svc "chatguard/internal/services/guard/service"
)

// TripReader lists recent breaker trips
type TripReader interface {
	Recent(ctx stdctx.Context, limit int) ([]domain.TripEvent, error)
}

// Register mounts guard endpoints on the given router
// trips may be nil when no analytics store is configured
// admin guards the state changing routes, nil leaves them open
func Register(r httpkit.Router, s svc.Service, trips TripReader, admin middleware.AuthPort) {
	h := &handlers{svc: s, trips: trips}

	httpkit.PostJSON[domain.EntityInput](r, "/check", h.check)
	httpkit.PostJSON[domain.PropagateInput](r, "/propagate", h.propagate)
	httpkit.PostJSON[domain.InternalInput](r, "/internal", h.internal)

	httpkit.Protected(r, admin, func(pr httpkit.Router) {
		httpkit.PostJSON[domain.EntityInput](pr, "/reset", h.reset)
		httpkit.Post(pr, "/clear", h.clear)
		httpkit.PostJSON[domain.RecordInput](pr, "/record", h.record)
	})

	if trips != nil {
		httpkit.Get(r, "/trips", h.recent)
	}
}

type handlers struct {
	svc   svc.Service
	trips TripReader
}

// swagger:route POST /guard/check Guard guardCheck
// @Summary Count one sighting of an entity and report whether to process it
// @Tags Guard
// @Accept json
// @Produce json
// @Param payload body domain.EntityInput true "Entity"
// @Success 200 {object} domain.Check "ok"
// @Router /guard/check [post]
func (h *handlers) check(r *stdhttp.Request, in domain.EntityInput) (any, error) {
	return h.svc.Check(r.Context(), in.EntityID), nil
}

// swagger:route POST /guard/reset Guard guardReset
// @Summary Forget the breaker state of one entity
// @Tags Guard
// @Accept json
// @Produce json
// @Param payload body domain.EntityInput true "Entity"
// @Success 200 {object} domain.Ack "ok"
// @Security BearerAuth
// @Router /guard/reset [post]
func (h *handlers) reset(r *stdhttp.Request, in domain.EntityInput) (any, error) {
	h.svc.Reset(r.Context(), in.EntityID)
	return domain.Ack{OK: true}, nil
}

// swagger:route POST /guard/clear Guard guardClear
// @Summary Forget the breaker state of every entity
// @Tags Guard
// @Produce json
// @Success 200 {object} domain.Ack "ok"
// @Security BearerAuth
// @Router /guard/clear [post]
func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	h.svc.ClearAll(r.Context())
	return domain.Ack{OK: true}, nil
}

// swagger:route POST /guard/propagate Guard guardPropagate
// @Summary Decide whether an update may be synced toward a system
// @Tags Guard
// @Accept json
// @Produce json
// @Param payload body domain.PropagateInput true "Source and direction"
// @Success 200 {object} domain.PropagateResult "ok"
// @Router /guard/propagate [post]
func (h *handlers) propagate(_ *stdhttp.Request, in domain.PropagateInput) (any, error) {
	ok := h.svc.ShouldPropagate(domain.ParseSource(in.Source), domain.Direction(in.Direction))
	return domain.PropagateResult{Propagate: ok}, nil
}

// swagger:route POST /guard/internal Guard guardInternal
// @Summary Report whether this system recently wrote the entity
// @Tags Guard
// @Accept json
// @Produce json
// @Param payload body domain.InternalInput true "Entity and window"
// @Success 200 {object} domain.Internal "ok"
// @Router /guard/internal [post]
func (h *handlers) internal(r *stdhttp.Request, in domain.InternalInput) (any, error) {
	window := time.Duration(in.WindowMs) * time.Millisecond
	return h.svc.WasRecentlyUpdatedInternally(r.Context(), in.EntityID, window), nil
}

// swagger:route POST /guard/record Guard guardRecord
// @Summary Log the provenance of an update
// @Tags Guard
// @Accept json
// @Produce json
// @Param payload body domain.RecordInput true "Provenance"
// @Success 200 {object} domain.Ack "ok"
// @Security BearerAuth
// @Router /guard/record [post]
func (h *handlers) record(r *stdhttp.Request, in domain.RecordInput) (any, error) {
	details := in.Details
	if uid, err := httpkit.User(r); err == nil {
		details = make(map[string]any, len(in.Details)+1)
		for k, v := range in.Details {
			details[k] = v
		}
		details["recorded_by"] = uid
	}
	h.svc.RecordSource(r.Context(), in.EntityID, domain.ParseSource(in.Source), details)
	return domain.Ack{OK: true}, nil
}

// swagger:route GET /guard/trips Guard guardTrips
// @Summary Recent breaker trips
// @Tags Guard
// @Produce json
// @Param limit query int false "Max rows, default 50"
// @Success 200 {array} domain.TripEvent "ok"
// @Router /guard/trips [get]
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, perr.InvalidArgf("limit must be a positive integer")
		}
		limit = n
	}
	out, err := h.trips.Recent(r.Context(), limit)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "recent trips")
	}
	return out, nil
}
