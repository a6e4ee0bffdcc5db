package reminder

import (
	"context"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/kernel"
)

// Repository persists reminders.
type Repository interface {
	Save(ctx context.Context, r Reminder) error
	FindByID(ctx context.Context, id kernel.ReminderID) (*Reminder, error)
	ListByEngagement(ctx context.Context, id kernel.EngagementID) ([]Reminder, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]Reminder, error)
	MarkFired(ctx context.Context, id kernel.ReminderID, at time.Time) error
	Delete(ctx context.Context, id kernel.ReminderID) error
}

// EventPublisher emits reminder events to the message broker.
type EventPublisher interface {
	PublishDue(ctx context.Context, event DueEvent) error
	Close() error
}
