// Package reminder schedules follow-up nudges on engagements and publishes
// an event when one comes due.
package reminder

import (
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/kernel"
)

// Status values of a reminder.
const (
	StatusPending   = "pending"
	StatusFired     = "fired"
	StatusCancelled = "cancelled"
)

// Reminder is a scheduled follow-up on an engagement.
type Reminder struct {
	ID           kernel.ReminderID   `json:"id" db:"id"`
	EngagementID kernel.EngagementID `json:"engagement_id" db:"engagement_id"`
	OwnerID      kernel.UserID       `json:"owner_id" db:"owner_id"`
	Note         string              `json:"note" db:"note"`
	DueAt        time.Time           `json:"due_at" db:"due_at"`
	Status       string              `json:"status" db:"status"`
	CreatedAt    time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" db:"updated_at"`
}

// IsDue reports whether the reminder should fire at the given instant.
func (r *Reminder) IsDue(now time.Time) bool {
	return r.Status == StatusPending && !r.DueAt.After(now)
}

// CreateRequest is the payload for scheduling a reminder.
type CreateRequest struct {
	EngagementID string    `json:"engagement_id"`
	OwnerID      string    `json:"owner_id"`
	Note         string    `json:"note"`
	DueAt        time.Time `json:"due_at"`
}

// DueEvent is the message published when a reminder fires.
type DueEvent struct {
	ReminderID   string    `json:"reminder_id"`
	EngagementID string    `json:"engagement_id"`
	OwnerID      string    `json:"owner_id"`
	Note         string    `json:"note"`
	DueAt        time.Time `json:"due_at"`
	FiredAt      time.Time `json:"fired_at"`
}

// RoutingKey is the topic key DueEvents are published under.
const RoutingKey = "reminder.due"
