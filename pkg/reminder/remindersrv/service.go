// Package remindersrv holds the reminder business logic and the background
// sweeper that fires due reminders.
package remindersrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/Abraxas-365/relaycrm/pkg/logx"
	"github.com/Abraxas-365/relaycrm/pkg/reminder"
	"github.com/google/uuid"
)

// sweepBatchSize caps how many reminders one sweep picks up.
const sweepBatchSize = 100

// Service implements reminder operations.
type Service struct {
	repo      reminder.Repository
	publisher reminder.EventPublisher
}

// NewService wires the reminder service.
func NewService(repo reminder.Repository, publisher reminder.EventPublisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// Create schedules a reminder. The due time must be in the future.
func (s *Service) Create(ctx context.Context, req reminder.CreateRequest) (*reminder.Reminder, error) {
	if req.EngagementID == "" {
		return nil, reminder.ErrInvalidRequest("engagement_id is required")
	}
	if strings.TrimSpace(req.Note) == "" {
		return nil, reminder.ErrInvalidRequest("note is required")
	}
	if !req.DueAt.After(time.Now()) {
		return nil, reminder.ErrInvalidRequest("due_at must be in the future")
	}

	now := time.Now().UTC()
	r := reminder.Reminder{
		ID:           kernel.NewReminderID(uuid.NewString()),
		EngagementID: kernel.NewEngagementID(req.EngagementID),
		OwnerID:      kernel.NewUserID(req.OwnerID),
		Note:         req.Note,
		DueAt:        req.DueAt.UTC(),
		Status:       reminder.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Get returns one reminder.
func (s *Service) Get(ctx context.Context, id kernel.ReminderID) (*reminder.Reminder, error) {
	return s.repo.FindByID(ctx, id)
}

// ListByEngagement returns all reminders of one engagement.
func (s *Service) ListByEngagement(ctx context.Context, id kernel.EngagementID) ([]reminder.Reminder, error) {
	return s.repo.ListByEngagement(ctx, id)
}

// Cancel flips a pending reminder to cancelled.
func (s *Service) Cancel(ctx context.Context, id kernel.ReminderID) (*reminder.Reminder, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != reminder.StatusPending {
		return nil, reminder.ErrInvalidRequest("only pending reminders can be cancelled")
	}

	r.Status = reminder.StatusCancelled
	r.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, *r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes a reminder.
func (s *Service) Delete(ctx context.Context, id kernel.ReminderID) error {
	return s.repo.Delete(ctx, id)
}

// SweepOnce fires every due reminder: publish its event, then mark it fired.
// A publish failure leaves the reminder pending so the next sweep retries it.
// Returns how many reminders fired.
func (s *Service) SweepOnce(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	due, err := s.repo.ListDue(ctx, now, sweepBatchSize)
	if err != nil {
		return 0, err
	}

	fired := 0
	for _, r := range due {
		event := reminder.DueEvent{
			ReminderID:   r.ID.String(),
			EngagementID: r.EngagementID.String(),
			OwnerID:      r.OwnerID.String(),
			Note:         r.Note,
			DueAt:        r.DueAt,
			FiredAt:      now,
		}
		if err := s.publisher.PublishDue(ctx, event); err != nil {
			logx.WithError(err).Errorf("reminder sweep: publish failed for %s", r.ID)
			continue
		}
		if err := s.repo.MarkFired(ctx, r.ID, now); err != nil {
			logx.WithError(err).Errorf("reminder sweep: mark fired failed for %s", r.ID)
			continue
		}
		fired++
	}
	return fired, nil
}

// RunSweeper sweeps on the given interval until ctx is cancelled.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logx.Infof("reminder sweeper running every %s", interval)
	for {
		select {
		case <-ctx.Done():
			logx.Info("reminder sweeper stopped")
			return
		case <-ticker.C:
			fired, err := s.SweepOnce(ctx)
			if err != nil {
				logx.WithError(err).Error("reminder sweep failed")
				continue
			}
			if fired > 0 {
				logx.Infof("reminder sweep fired %d reminder(s)", fired)
			}
		}
	}
}
