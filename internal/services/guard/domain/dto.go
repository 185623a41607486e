package domain

import "chatguard/internal/platform/net/http/bind"

func init() {
	_ = bind.RegisterValidation("update_source", "{0} must be a known update source", func(fl bind.FieldLevel) bool {
		return KnownSource(fl.Field().String())
	})
}

// EntityInput names one lead or contact
type EntityInput struct {
	EntityID string `json:"entity_id" validate:"required,min=1,max=200,ident" example:"901234"`
}

// PropagateInput asks whether an update may be synced onward
type PropagateInput struct {
	Source    string `json:"source" validate:"required,max=40" example:"hubspot_webhook"`
	Direction string `json:"direction" validate:"required,oneof=to_hubspot to_supabase" example:"to_hubspot"`
}

// PropagateResult is the provenance verdict
type PropagateResult struct {
	Propagate bool `json:"propagate" example:"false"`
}

// InternalInput looks up recent internal writes for an entity
// WindowMs of zero uses the configured window
type InternalInput struct {
	EntityID string `json:"entity_id" validate:"required,min=1,max=200,ident" example:"901234"`
	WindowMs int    `json:"window_ms,omitempty" validate:"omitempty,min=1,max=86400000" example:"60000"`
}

// RecordInput logs the provenance of an update
type RecordInput struct {
	EntityID string         `json:"entity_id" validate:"required,min=1,max=200,ident" example:"901234"`
	Source   string         `json:"source" validate:"required,update_source" example:"internal_api"`
	Details  map[string]any `json:"details,omitempty"`
}

// Ack is returned by write endpoints with nothing else to say
type Ack struct {
	OK bool `json:"ok" example:"true"`
}
