// Package lead models the contacts the CRM reaches out to.
package lead

import (
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/kernel"
)

// Lifecycle stages a lead moves through.
const (
	StageNew       = "new"
	StageContacted = "contacted"
	StageQualified = "qualified"
	StageCustomer  = "customer"
	StageLost      = "lost"
)

// Lead is a person or company being worked by the sales team.
type Lead struct {
	ID        kernel.LeadID `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	Company   string        `json:"company" db:"company"`
	Phone     string        `json:"phone" db:"phone"`
	Email     string        `json:"email" db:"email"`
	Stage     string        `json:"stage" db:"stage"`
	Source    string        `json:"source" db:"source"`
	OwnerID   kernel.UserID `json:"owner_id" db:"owner_id"`
	Notes     string        `json:"notes" db:"notes"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// CanBeContacted reports whether outbound messages to this lead make sense.
func (l *Lead) CanBeContacted() bool { return l.Stage != StageLost }

// CreateRequest is the payload for creating a lead.
type CreateRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Source  string `json:"source"`
	OwnerID string `json:"owner_id"`
	Notes   string `json:"notes"`
}

// UpdateRequest is the payload for patching a lead. Nil fields are left
// unchanged.
type UpdateRequest struct {
	Name    *string `json:"name,omitempty"`
	Company *string `json:"company,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Stage   *string `json:"stage,omitempty"`
	Source  *string `json:"source,omitempty"`
	OwnerID *string `json:"owner_id,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// ListFilter narrows lead listings. Search matches name, company and email.
type ListFilter struct {
	Stage   string
	OwnerID string
	Search  string
}
