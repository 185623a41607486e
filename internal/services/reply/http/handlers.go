// Package http provides http transport for the reply pipeline
package http

import (
	stdctx "context"
	stdhttp "net/http"

	"chatguard/internal/modkit/httpkit"
	"chatguard/internal/platform/logger"
	pnet "chatguard/internal/platform/net"
	"chatguard/internal/services/reply/domain"
	svc "chatguard/internal/services/reply/service"
)

// Register mounts reply endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.ComposeInput](r, "/compose", h.compose)

	// single stage previews
	httpkit.PostJSON[domain.TextInput](r, "/sanitize", h.sanitize)
	httpkit.PostJSON[domain.TextInput](r, "/sentiment", h.sentiment)
	httpkit.PostJSON[domain.LoopInput](r, "/loop", h.loop)
	httpkit.PostJSON[domain.HumanizeInput](r, "/humanize", h.humanize)
	httpkit.PostJSON[domain.SegmentInput](r, "/segment", h.segment)
	httpkit.PostJSON[domain.PauseInput](r, "/pause", h.pause)
}

type handlers struct {
	svc svc.Service
}

// swagger:route POST /reply/compose Reply replyCompose
// @Summary Run the full reply pipeline for one inbound message
// @Description When lead_id is set the run goes through the loop guard. When to is set the bubbles are delivered in the background
// @Tags Reply
// @Accept json
// @Produce json
// @Param payload body domain.ComposeInput true "Inbound message and context"
// @Success 200 {object} domain.Composed "ok"
// @Failure 503 {object} httpkit.Envelope "model unavailable"
// @Router /reply/compose [post]
func (h *handlers) compose(r *stdhttp.Request, in domain.ComposeInput) (any, error) {
	out, err := h.svc.Compose(r.Context(), in)
	if err != nil {
		return nil, err
	}
	if in.To != "" && out.Blocked == "" && len(out.Schedule) > 0 {
		ctx := stdctx.WithoutCancel(r.Context())
		ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), in.LeadID)
		go func() {
			d := h.svc.Deliver(ctx, in.To, out.Schedule)
			logger.C(ctx).Info().
				Str("compose_id", out.ID.String()).
				Int("sent", d.Sent).
				Int("failed", d.Failed).
				Msg("reply delivered")
		}()
	}
	return out, nil
}

// swagger:route POST /reply/sanitize Reply replySanitize
// @Summary Strip control characters, redact injection phrasing and PII
// @Tags Reply
// @Accept json
// @Produce json
// @Param payload body domain.TextInput true "Text"
// @Success 200 {object} domain.SanitizeOutput "ok"
// @Router /reply/sanitize [post]
func (h *handlers) sanitize(_ *stdhttp.Request, in domain.TextInput) (any, error) {
	return h.svc.Sanitize(in.Text), nil
}

// swagger:route POST /reply/sentiment Reply replySentiment
// @Summary Triage a message as RISK, POSITIVE or NEUTRAL
// @Tags Reply
// @Accept json
// @Produce json
// @Param payload body domain.TextInput true "Text"
// @Success 200 {object} sentiment.Result "ok"
// @Router /reply/sentiment [post]
func (h *handlers) sentiment(_ *stdhttp.Request, in domain.TextInput) (any, error) {
	return h.svc.Sentiment(in.Text), nil
}

// swagger:route POST /reply/loop Reply replyLoop
// @Summary Compare two replies and build the repair directive when they loop
// @Tags Reply
// @Accept json
// @Produce json
// @Param payload body domain.LoopInput true "Replies and history"
// @Success 200 {object} domain.LoopOutput "ok"
// @Router /reply/loop [post]
func (h *handlers) loop(_ *stdhttp.Request, in domain.LoopInput) (any, error) {
	return h.svc.Loop(in), nil
}

// swagger:route POST /reply/humanize Reply replyHumanize
// @Summary Rewrite a reply so it reads like a person typing
// @Tags Reply
// @Accept json
// @Produce json
// @Param payload body domain.HumanizeInput true "Text, mood and optional seed"
// @Success 200 {object} domain.TextOutput "ok"
// @Router /reply/humanize [post]
func (h *handlers) humanize(_ *stdhttp.Request, in domain.HumanizeInput) (any, error) {
	return h.svc.Humanize(in), nil
}

// swagger:route POST /reply/segment Reply replySegment
// @Summary Split a reply into chat bubbles with typing delays
// @Tags Reply
// @Accept json
// @Produce json
// @Param payload body domain.SegmentInput true "Text, options and optional seed"
// @Success 200 {array} segment.Bubble "ok"
// @Router /reply/segment [post]
func (h *handlers) segment(_ *stdhttp.Request, in domain.SegmentInput) (any, error) {
	return h.svc.Segment(in), nil
}

// swagger:route POST /reply/pause Reply replyPause
// @Summary Compute the pause before the first bubble
// @Tags Reply
// @Accept json
// @Produce json
// @Param payload body domain.PauseInput true "Incoming and response text"
// @Success 200 {object} domain.PauseOutput "ok"
// @Router /reply/pause [post]
func (h *handlers) pause(_ *stdhttp.Request, in domain.PauseInput) (any, error) {
	return h.svc.Pause(in), nil
}
