// Package engagement models the ongoing conversation threads with leads and
// the outbound send endpoint a dispatch composer posts to.
package engagement

import (
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/kernel"
)

// Status values an engagement moves through.
const (
	StatusOpen    = "open"
	StatusWaiting = "waiting"
	StatusClosed  = "closed"
)

// Engagement is a tracked conversation thread with a lead.
type Engagement struct {
	ID            kernel.EngagementID `json:"id"`
	LeadID        kernel.LeadID       `json:"lead_id"`
	Topic         string              `json:"topic"`
	Status        string              `json:"status"`
	ContactPhone  string              `json:"contact_phone"`
	ContactEmail  string              `json:"contact_email"`
	LastContactAt *time.Time          `json:"last_contact_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// IsClosed reports whether the engagement no longer accepts sends.
func (e *Engagement) IsClosed() bool { return e.Status == StatusClosed }

// CreateRequest is the payload for creating an engagement.
type CreateRequest struct {
	LeadID       string `json:"lead_id"`
	Topic        string `json:"topic"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
}

// UpdateRequest is the payload for patching an engagement. Nil fields are
// left unchanged.
type UpdateRequest struct {
	Topic        *string `json:"topic,omitempty"`
	Status       *string `json:"status,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
}

// ListFilter narrows engagement listings.
type ListFilter struct {
	LeadID string
	Status string
}
