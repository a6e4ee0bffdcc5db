package engagementsrv_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/courier"
	"github.com/Abraxas-365/relaycrm/pkg/engagement"
	"github.com/Abraxas-365/relaycrm/pkg/engagement/engagementsrv"
	"github.com/Abraxas-365/relaycrm/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/Abraxas-365/relaycrm/pkg/ptrx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu    sync.Mutex
	items map[kernel.EngagementID]engagement.Engagement
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[kernel.EngagementID]engagement.Engagement)}
}

func (r *memoryRepo) Save(_ context.Context, e engagement.Engagement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[e.ID] = e
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id kernel.EngagementID) (*engagement.Engagement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return nil, engagement.ErrNotFound()
	}
	return &e, nil
}

func (r *memoryRepo) List(_ context.Context, _ engagement.ListFilter, opts kernel.PaginationOptions) (kernel.Paginated[engagement.Engagement], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]engagement.Engagement, 0, len(r.items))
	for _, e := range r.items {
		items = append(items, e)
	}
	return kernel.NewPaginated(items, opts.Page, opts.PageSize, len(items)), nil
}

func (r *memoryRepo) Delete(_ context.Context, id kernel.EngagementID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return engagement.ErrNotFound()
	}
	delete(r.items, id)
	return nil
}

func (r *memoryRepo) TouchLastContact(_ context.Context, id kernel.EngagementID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return engagement.ErrNotFound()
	}
	e.LastContactAt = &at
	r.items[id] = e
	return nil
}

type capturingChat struct {
	mu   sync.Mutex
	sent []courier.ChatMessage
	err  error
}

func (c *capturingChat) SendChat(_ context.Context, msg courier.ChatMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, msg)
	return nil
}

type capturingEmail struct {
	mu   sync.Mutex
	sent []courier.EmailMessage
	err  error
}

func (c *capturingEmail) SendEmail(_ context.Context, msg courier.EmailMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, msg)
	return nil
}

type fixture struct {
	repo    *memoryRepo
	chat    *capturingChat
	email   *capturingEmail
	service *engagementsrv.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	storage, err := fsxlocal.NewLocalFileSystem(t.TempDir())
	require.NoError(t, err)

	f := &fixture{
		repo:  newMemoryRepo(),
		chat:  &capturingChat{},
		email: &capturingEmail{},
	}
	f.service = engagementsrv.NewService(
		f.repo,
		courier.Courier{Chat: f.chat, Email: f.email},
		storage,
		"noreply@relaycrm.dev",
	)
	return f
}

func (f *fixture) seed(t *testing.T, e engagement.Engagement) engagement.Engagement {
	t.Helper()
	require.NoError(t, f.repo.Save(context.Background(), e))
	return e
}

func openEngagement() engagement.Engagement {
	now := time.Now().UTC()
	return engagement.Engagement{
		ID:           kernel.NewEngagementID("eng-1"),
		LeadID:       kernel.NewLeadID("lead-1"),
		Topic:        "renewal",
		Status:       engagement.StatusOpen,
		ContactPhone: "51987654321",
		ContactEmail: "lead@example.com",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestService_Create(t *testing.T) {
	f := newFixture(t)

	e, err := f.service.Create(context.Background(), engagement.CreateRequest{
		LeadID:       "lead-1",
		Topic:        "renewal",
		ContactPhone: "51987654321",
	})
	require.NoError(t, err)
	assert.False(t, e.ID.IsEmpty())
	assert.Equal(t, engagement.StatusOpen, e.Status)

	_, err = f.service.Create(context.Background(), engagement.CreateRequest{Topic: "no lead"})
	require.Error(t, err)
}

func TestService_Send_ChatText(t *testing.T) {
	f := newFixture(t)
	e := f.seed(t, openEngagement())

	data, err := f.service.Send(context.Background(), e.ID, &engagement.OutboundMessage{
		Channels: []string{"chat"},
		Message:  "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"chat"}, data["channels"])
	assert.NotContains(t, data, "attachment_path")

	require.Len(t, f.chat.sent, 1)
	assert.Equal(t, "51987654321", f.chat.sent[0].To)
	assert.Equal(t, "hello", f.chat.sent[0].Text)
	assert.Empty(t, f.email.sent)

	stored, err := f.repo.FindByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastContactAt)
}

func TestService_Send_BothChannelsWithAttachment(t *testing.T) {
	f := newFixture(t)
	e := f.seed(t, openEngagement())

	data, err := f.service.Send(context.Background(), e.ID, &engagement.OutboundMessage{
		Channels: []string{"chat", "email"},
		Caption:  "see attached",
		File: &courier.Media{
			Filename:    "deck.pdf",
			ContentType: "application/pdf",
			Data:        []byte("%PDF-1.4"),
		},
		Subject:      "The deck",
		EmailContent: "attached as discussed",
	})
	require.NoError(t, err)
	assert.Contains(t, data, "attachment_path")

	require.Len(t, f.chat.sent, 1)
	require.NotNil(t, f.chat.sent[0].Media)
	assert.Equal(t, "deck.pdf", f.chat.sent[0].Media.Filename)
	assert.Equal(t, "see attached", f.chat.sent[0].Caption)

	require.Len(t, f.email.sent, 1)
	assert.Equal(t, []string{"lead@example.com"}, f.email.sent[0].To)
	assert.Equal(t, "The deck", f.email.sent[0].Subject)
	assert.Equal(t, "attached as discussed", f.email.sent[0].TextBody)
	require.Len(t, f.email.sent[0].Attachments, 1)
}

func TestService_Send_TemplatedEmail(t *testing.T) {
	f := newFixture(t)
	e := f.seed(t, openEngagement())

	_, err := f.service.Send(context.Background(), e.ID, &engagement.OutboundMessage{
		Channels:        []string{"email"},
		Subject:         "Welcome",
		EmailBodyFormat: "templated",
		EmailContent:    "glad to have you on board",
		TemplateFields:  engagement.OutboundTemplateFields{Title: "Welcome!", Note: "from the team"},
	})
	require.NoError(t, err)

	require.Len(t, f.email.sent, 1)
	sent := f.email.sent[0]
	assert.Empty(t, sent.TextBody)
	assert.Contains(t, sent.HTMLBody, "Welcome!")
	assert.Contains(t, sent.HTMLBody, "from the team")
	assert.Contains(t, sent.HTMLBody, "glad to have you on board")
}

func TestService_Send_PosterCaption(t *testing.T) {
	f := newFixture(t)
	e := f.seed(t, openEngagement())

	_, err := f.service.Send(context.Background(), e.ID, &engagement.OutboundMessage{
		Channels:       []string{"chat"},
		GeneratePoster: true,
		Icon:           &courier.Media{Filename: "icon.png", ContentType: "image/png", Data: []byte{1}},
		PosterTitle:    "Summer Sale",
		PosterNote:     "Up to 40% off",
	})
	require.NoError(t, err)

	require.Len(t, f.chat.sent, 1)
	assert.Equal(t, "Summer Sale\nUp to 40% off", f.chat.sent[0].Caption)
	require.NotNil(t, f.chat.sent[0].Media)
	assert.Equal(t, "icon.png", f.chat.sent[0].Media.Filename)
}

func TestService_Send_RejectsClosedEngagement(t *testing.T) {
	f := newFixture(t)
	e := openEngagement()
	e.Status = engagement.StatusClosed
	f.seed(t, e)

	_, err := f.service.Send(context.Background(), e.ID, &engagement.OutboundMessage{
		Channels: []string{"chat"},
		Message:  "hello",
	})
	require.Error(t, err)
	assert.Empty(t, f.chat.sent)
}

func TestService_Send_RejectsInvalidMessage(t *testing.T) {
	f := newFixture(t)
	e := f.seed(t, openEngagement())

	_, err := f.service.Send(context.Background(), e.ID, &engagement.OutboundMessage{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please select at least one channel")
}

func TestService_Send_NoRecipientForChannel(t *testing.T) {
	f := newFixture(t)
	e := openEngagement()
	e.ContactEmail = ""
	f.seed(t, e)

	_, err := f.service.Send(context.Background(), e.ID, &engagement.OutboundMessage{
		Channels:     []string{"email"},
		Subject:      "s",
		EmailContent: "c",
	})
	require.Error(t, err)
	assert.Empty(t, f.email.sent)
}

func TestService_Send_DeliveryFailureSurfaces(t *testing.T) {
	f := newFixture(t)
	e := f.seed(t, openEngagement())
	f.chat.err = fmt.Errorf("gateway down")

	_, err := f.service.Send(context.Background(), e.ID, &engagement.OutboundMessage{
		Channels: []string{"chat"},
		Message:  "hello",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to send message")

	stored, ferr := f.repo.FindByID(context.Background(), e.ID)
	require.NoError(t, ferr)
	assert.Nil(t, stored.LastContactAt)
}

func TestService_Update(t *testing.T) {
	f := newFixture(t)
	e := f.seed(t, openEngagement())

	updated, err := f.service.Update(context.Background(), e.ID, engagement.UpdateRequest{Status: ptrx.String(engagement.StatusClosed)})
	require.NoError(t, err)
	assert.Equal(t, engagement.StatusClosed, updated.Status)
	assert.Equal(t, e.Topic, updated.Topic)
}
