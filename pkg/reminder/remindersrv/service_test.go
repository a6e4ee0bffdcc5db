package remindersrv_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/Abraxas-365/relaycrm/pkg/reminder"
	"github.com/Abraxas-365/relaycrm/pkg/reminder/remindersrv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	items map[kernel.ReminderID]reminder.Reminder
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[kernel.ReminderID]reminder.Reminder)}
}

func (r *memoryRepo) Save(_ context.Context, rem reminder.Reminder) error {
	r.items[rem.ID] = rem
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id kernel.ReminderID) (*reminder.Reminder, error) {
	rem, ok := r.items[id]
	if !ok {
		return nil, reminder.ErrNotFound()
	}
	return &rem, nil
}

func (r *memoryRepo) ListByEngagement(_ context.Context, id kernel.EngagementID) ([]reminder.Reminder, error) {
	var items []reminder.Reminder
	for _, rem := range r.items {
		if rem.EngagementID == id {
			items = append(items, rem)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].DueAt.Before(items[j].DueAt) })
	return items, nil
}

func (r *memoryRepo) ListDue(_ context.Context, now time.Time, limit int) ([]reminder.Reminder, error) {
	var items []reminder.Reminder
	for _, rem := range r.items {
		if rem.IsDue(now) {
			items = append(items, rem)
		}
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *memoryRepo) MarkFired(_ context.Context, id kernel.ReminderID, at time.Time) error {
	rem, ok := r.items[id]
	if !ok || rem.Status != reminder.StatusPending {
		return reminder.ErrNotFound()
	}
	rem.Status = reminder.StatusFired
	rem.UpdatedAt = at
	r.items[id] = rem
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id kernel.ReminderID) error {
	if _, ok := r.items[id]; !ok {
		return reminder.ErrNotFound()
	}
	delete(r.items, id)
	return nil
}

type capturingPublisher struct {
	events []reminder.DueEvent
	err    error
}

func (p *capturingPublisher) PublishDue(_ context.Context, event reminder.DueEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func seedPending(t *testing.T, repo *memoryRepo, id string, due time.Time) reminder.Reminder {
	t.Helper()
	rem := reminder.Reminder{
		ID:           kernel.NewReminderID(id),
		EngagementID: kernel.NewEngagementID("eng-1"),
		Note:         "follow up",
		DueAt:        due,
		Status:       reminder.StatusPending,
	}
	require.NoError(t, repo.Save(context.Background(), rem))
	return rem
}

func TestService_Create(t *testing.T) {
	s := remindersrv.NewService(newMemoryRepo(), &capturingPublisher{})

	r, err := s.Create(context.Background(), reminder.CreateRequest{
		EngagementID: "eng-1",
		Note:         "call back",
		DueAt:        time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, reminder.StatusPending, r.Status)

	_, err = s.Create(context.Background(), reminder.CreateRequest{
		EngagementID: "eng-1",
		Note:         "past due",
		DueAt:        time.Now().Add(-time.Hour),
	})
	require.Error(t, err)
}

func TestService_SweepOnce_FiresDueReminders(t *testing.T) {
	repo := newMemoryRepo()
	pub := &capturingPublisher{}
	s := remindersrv.NewService(repo, pub)

	due := seedPending(t, repo, "r-due", time.Now().Add(-time.Minute))
	seedPending(t, repo, "r-later", time.Now().Add(time.Hour))

	fired, err := s.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fired)

	require.Len(t, pub.events, 1)
	assert.Equal(t, due.ID.String(), pub.events[0].ReminderID)

	stored, err := repo.FindByID(context.Background(), due.ID)
	require.NoError(t, err)
	assert.Equal(t, reminder.StatusFired, stored.Status)
}

func TestService_SweepOnce_PublishFailureLeavesPending(t *testing.T) {
	repo := newMemoryRepo()
	pub := &capturingPublisher{err: fmt.Errorf("broker down")}
	s := remindersrv.NewService(repo, pub)

	rem := seedPending(t, repo, "r-due", time.Now().Add(-time.Minute))

	fired, err := s.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, fired)

	stored, err := repo.FindByID(context.Background(), rem.ID)
	require.NoError(t, err)
	assert.Equal(t, reminder.StatusPending, stored.Status)
}

func TestService_Cancel(t *testing.T) {
	repo := newMemoryRepo()
	s := remindersrv.NewService(repo, &capturingPublisher{})
	rem := seedPending(t, repo, "r-1", time.Now().Add(time.Hour))

	cancelled, err := s.Cancel(context.Background(), rem.ID)
	require.NoError(t, err)
	assert.Equal(t, reminder.StatusCancelled, cancelled.Status)

	_, err = s.Cancel(context.Background(), rem.ID)
	require.Error(t, err)
}
