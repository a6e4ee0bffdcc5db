// Package engagementsrv holds the engagement business logic: CRUD and the
// outbound send fan-out.
package engagementsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/asyncx"
	"github.com/Abraxas-365/relaycrm/pkg/courier"
	"github.com/Abraxas-365/relaycrm/pkg/engagement"
	"github.com/Abraxas-365/relaycrm/pkg/errx"
	"github.com/Abraxas-365/relaycrm/pkg/fsx"
	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/Abraxas-365/relaycrm/pkg/logx"
	"github.com/google/uuid"
)

// defaultTemplate renders templated email bodies when the caller does not
// name a registered template.
const defaultTemplateName = "promo-default"

const defaultTemplateHTML = `<html><body>
<h2>{{.Title}}</h2>
<p>{{.Note}}</p>
<div>{{.Body}}</div>
</body></html>`

// Service implements engagement operations.
type Service struct {
	repo      engagement.Repository
	courier   courier.Courier
	storage   fsx.FileSystem
	templates *courier.TemplateRegistry
	emailFrom string
}

// NewService wires the engagement service. The default email template is
// registered eagerly; a bad built-in template is a programming error.
func NewService(repo engagement.Repository, c courier.Courier, storage fsx.FileSystem, emailFrom string) *Service {
	templates := courier.NewTemplateRegistry()
	if err := templates.Register(defaultTemplateName, defaultTemplateHTML); err != nil {
		logx.Fatalf("engagement: failed to register default template: %v", err)
	}
	return &Service{
		repo:      repo,
		courier:   c,
		storage:   storage,
		templates: templates,
		emailFrom: emailFrom,
	}
}

// Templates exposes the registry so custom templates can be registered at
// startup.
func (s *Service) Templates() *courier.TemplateRegistry { return s.templates }

// Create validates and persists a new engagement.
func (s *Service) Create(ctx context.Context, req engagement.CreateRequest) (*engagement.Engagement, error) {
	if req.LeadID == "" {
		return nil, engagement.ErrInvalidRequest("lead_id is required")
	}
	if req.Topic == "" {
		return nil, engagement.ErrInvalidRequest("topic is required")
	}

	now := time.Now().UTC()
	e := engagement.Engagement{
		ID:           kernel.NewEngagementID(uuid.NewString()),
		LeadID:       kernel.NewLeadID(req.LeadID),
		Topic:        req.Topic,
		Status:       engagement.StatusOpen,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Save(ctx, e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Get returns one engagement.
func (s *Service) Get(ctx context.Context, id kernel.EngagementID) (*engagement.Engagement, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of engagements.
func (s *Service) List(ctx context.Context, filter engagement.ListFilter, opts kernel.PaginationOptions) (kernel.Paginated[engagement.Engagement], error) {
	return s.repo.List(ctx, filter, opts.Normalize())
}

// Update patches an engagement in place.
func (s *Service) Update(ctx context.Context, id kernel.EngagementID, req engagement.UpdateRequest) (*engagement.Engagement, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Topic != nil {
		e.Topic = *req.Topic
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	if req.ContactPhone != nil {
		e.ContactPhone = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		e.ContactEmail = *req.ContactEmail
	}
	e.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, *e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes an engagement.
func (s *Service) Delete(ctx context.Context, id kernel.EngagementID) error {
	return s.repo.Delete(ctx, id)
}

// Send delivers one outbound message to the engagement's contact over every
// selected channel. The attachment binary, when present, is stored once and
// shared by both channels. The result data is returned to the composer.
func (s *Service) Send(ctx context.Context, id kernel.EngagementID, msg *engagement.OutboundMessage) (map[string]any, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.IsClosed() {
		return nil, engagement.ErrClosed()
	}
	if verr := msg.Validate(); verr != nil {
		return nil, verr
	}

	attachmentPath, err := s.storeAttachment(ctx, id, msg)
	if err != nil {
		return nil, err
	}

	var sends []func(context.Context) (string, error)
	if msg.HasChannel("chat") {
		if e.ContactPhone == "" {
			return nil, engagement.ErrNoRecipient("chat")
		}
		sends = append(sends, func(ctx context.Context) (string, error) {
			return "chat", s.sendChat(ctx, e.ContactPhone, msg)
		})
	}
	if msg.HasChannel("email") {
		if e.ContactEmail == "" {
			return nil, engagement.ErrNoRecipient("email")
		}
		sends = append(sends, func(ctx context.Context) (string, error) {
			return "email", s.sendEmail(ctx, e.ContactEmail, msg)
		})
	}

	results := asyncx.AllSettled(ctx, sends...)
	for _, r := range results {
		if r.Err != nil {
			logx.WithError(r.Err).Errorf("engagement: delivery to %s channel failed", r.Value)
			return nil, engagement.ErrDeliveryFailed(r.Err)
		}
	}

	now := time.Now().UTC()
	if err := s.repo.TouchLastContact(ctx, id, now); err != nil {
		// The message already went out; a bookkeeping failure is logged,
		// not surfaced as a send failure.
		logx.WithError(err).Warnf("engagement: failed to update last contact for %s", id)
	}

	data := map[string]any{
		"channels": msg.Channels,
		"sent_at":  now.Format(time.RFC3339),
	}
	if attachmentPath != "" {
		data["attachment_path"] = attachmentPath
	}
	return data, nil
}

// storeAttachment persists the binary content of the message, if any, and
// returns its storage path.
func (s *Service) storeAttachment(ctx context.Context, id kernel.EngagementID, msg *engagement.OutboundMessage) (string, error) {
	media := msg.ChatMedia()
	if media == nil {
		return "", nil
	}

	path := s.storage.Join("engagements", id.String(), "outbound",
		fmt.Sprintf("%s-%s", uuid.NewString(), media.Filename))
	if err := s.storage.WriteFile(ctx, path, media.Data); err != nil {
		return "", errx.Wrap(err, "failed to store outbound attachment", errx.TypeInternal)
	}
	return path, nil
}

func (s *Service) sendChat(ctx context.Context, phone string, msg *engagement.OutboundMessage) error {
	if s.courier.Chat == nil {
		return engagement.ErrDeliveryFailed(fmt.Errorf("no chat provider configured"))
	}

	chat := courier.ChatMessage{To: phone}
	if media := msg.ChatMedia(); media != nil {
		chat.Media = media
		chat.Caption = msg.Caption
		if msg.GeneratePoster {
			chat.Caption = posterCaption(msg)
		}
	} else {
		chat.Text = msg.Message
	}
	return s.courier.Chat.SendChat(ctx, chat)
}

// posterCaption folds the poster overlay text into the caption so the
// generated image arrives with its headline attached.
func posterCaption(msg *engagement.OutboundMessage) string {
	caption := msg.PosterTitle
	if msg.PosterNote != "" {
		caption += "\n" + msg.PosterNote
	}
	if msg.Caption != "" {
		caption += "\n" + msg.Caption
	}
	return caption
}

func (s *Service) sendEmail(ctx context.Context, address string, msg *engagement.OutboundMessage) error {
	if s.courier.Email == nil {
		return engagement.ErrDeliveryFailed(fmt.Errorf("no email provider configured"))
	}

	email := courier.EmailMessage{
		From:    s.emailFrom,
		To:      []string{address},
		Subject: msg.Subject,
	}

	if msg.EmailBodyFormat == "templated" {
		name := msg.TemplateID
		if name == "" || !s.templates.Has(name) {
			name = defaultTemplateName
		}
		html, err := s.templates.Render(name, map[string]string{
			"Title": msg.TemplateFields.Title,
			"Note":  msg.TemplateFields.Note,
			"Body":  msg.EmailContent,
		})
		if err != nil {
			return err
		}
		email.HTMLBody = html
	} else {
		email.TextBody = msg.EmailContent
	}

	if media := msg.ChatMedia(); media != nil {
		email.Attachments = []courier.Media{*media}
	}
	return s.courier.Email.SendEmail(ctx, email)
}
