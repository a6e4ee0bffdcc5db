// Package settings stores workspace-level configuration records: the
// vocabularies and defaults the UI and the send pipeline read on every
// request.
package settings

import "time"

// Well-known setting keys.
const (
	KeyLeadSources     = "lead_sources"
	KeyMessageDefaults = "message_defaults"
	KeyEmailTemplates  = "email_templates"
)

// Setting is one keyed configuration record. Value holds raw JSON so each
// key can carry its own shape.
type Setting struct {
	Key       string    `json:"key" db:"key"`
	Value     []byte    `json:"value" db:"value"`
	UpdatedBy string    `json:"updated_by" db:"updated_by"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UpsertRequest is the payload for writing a setting.
type UpsertRequest struct {
	Value     map[string]any `json:"value"`
	UpdatedBy string         `json:"-"`
}
