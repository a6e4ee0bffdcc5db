package engagement

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"strings"

	"github.com/Abraxas-365/relaycrm/pkg/courier"
	"github.com/Abraxas-365/relaycrm/pkg/errx"
)

// OutboundTemplateFields are the overlay fields of a templated email body.
type OutboundTemplateFields struct {
	Title string `json:"title"`
	Note  string `json:"note"`
}

// OutboundMessage is the decoded form of one composer submit: the channel
// list, the per-channel content and at most one binary attachment (a raw
// file, or the poster images plus overlay text).
type OutboundMessage struct {
	Channels []string

	// Chat channel
	Message string
	Caption string

	// Attachment (mutually exclusive paths)
	GeneratePoster bool
	File           *courier.Media
	Icon           *courier.Media
	Background     *courier.Media
	PosterTitle    string
	PosterNote     string

	// Email channel
	Subject          string
	EmailBodyFormat  string
	EmailServiceType string
	EmailContent     string
	TemplateFields   OutboundTemplateFields
	TemplateID       string
}

// HasChannel reports whether name is among the selected channels.
func (m *OutboundMessage) HasChannel(name string) bool {
	for _, ch := range m.Channels {
		if ch == name {
			return true
		}
	}
	return false
}

// HasBinary reports whether the message carries binary content.
func (m *OutboundMessage) HasBinary() bool {
	return m.File != nil || m.Icon != nil
}

// ChatMedia returns the binary delivered on the chat channel: the uploaded
// file, or the poster icon when a poster was requested.
func (m *OutboundMessage) ChatMedia() *courier.Media {
	if m.File != nil {
		return m.File
	}
	return m.Icon
}

// Validate applies the composer's submit rules on the server side. The
// first failing rule wins.
func (m *OutboundMessage) Validate() *errx.Error {
	if len(m.Channels) == 0 {
		return engagementErrors.NewWithMessage(CodeInvalidPayload, msgNoChannel)
	}
	if m.HasChannel("chat") && !m.HasBinary() && strings.TrimSpace(m.Message) == "" {
		return engagementErrors.NewWithMessage(CodeInvalidPayload, msgChatMissing)
	}
	if m.HasChannel("email") {
		if strings.TrimSpace(m.Subject) == "" {
			return engagementErrors.NewWithMessage(CodeInvalidPayload, msgSubjectEmpty)
		}
		if strings.TrimSpace(m.EmailContent) == "" {
			return engagementErrors.NewWithMessage(CodeInvalidPayload, msgContentEmpty)
		}
	}
	return nil
}

// outboundJSON is the structured (non-binary) wire shape.
type outboundJSON struct {
	Channels         []string                `json:"channels"`
	Message          string                  `json:"message"`
	Subject          string                  `json:"subject"`
	EmailBodyFormat  string                  `json:"emailBodyFormat"`
	EmailServiceType string                  `json:"emailServiceType"`
	EmailContent     string                  `json:"emailContent"`
	TemplateFields   *OutboundTemplateFields `json:"templateFields"`
	TemplateID       string                  `json:"templateId"`
}

// OutboundFromJSON decodes the JSON encoding of a composer submit.
func OutboundFromJSON(data []byte) (*OutboundMessage, *errx.Error) {
	var body outboundJSON
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, engagementErrors.NewWithCause(CodeInvalidPayload, err)
	}

	msg := &OutboundMessage{
		Channels:         body.Channels,
		Message:          body.Message,
		Subject:          body.Subject,
		EmailBodyFormat:  body.EmailBodyFormat,
		EmailServiceType: body.EmailServiceType,
		EmailContent:     body.EmailContent,
		TemplateID:       body.TemplateID,
	}
	if body.TemplateFields != nil {
		msg.TemplateFields = *body.TemplateFields
	}
	return msg, nil
}

// OutboundFromForm decodes the multipart encoding of a composer submit.
func OutboundFromForm(form *multipart.Form) (*OutboundMessage, *errx.Error) {
	first := func(key string) string {
		if vs := form.Value[key]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	msg := &OutboundMessage{
		Channels:         form.Value["channels"],
		Message:          first("message"),
		Caption:          first("caption"),
		GeneratePoster:   first("generatePoster") == "true",
		PosterTitle:      first("title"),
		PosterNote:       first("note"),
		Subject:          first("subject"),
		EmailBodyFormat:  first("emailBodyFormat"),
		EmailServiceType: first("emailServiceType"),
		EmailContent:     first("emailContent"),
		TemplateID:       first("templateId"),
	}

	if raw := first("templateFields"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &msg.TemplateFields); err != nil {
			return nil, engagementErrors.NewWithCause(CodeInvalidPayload, err).
				WithDetail("field", "templateFields")
		}
	}

	for field, target := range map[string]**courier.Media{
		"file":       &msg.File,
		"icon":       &msg.Icon,
		"background": &msg.Background,
	} {
		media, err := readFormFile(form, field)
		if err != nil {
			return nil, err
		}
		*target = media
	}

	return msg, nil
}

func readFormFile(form *multipart.Form, field string) (*courier.Media, *errx.Error) {
	headers := form.File[field]
	if len(headers) == 0 {
		return nil, nil
	}

	fh := headers[0]
	f, err := fh.Open()
	if err != nil {
		return nil, engagementErrors.NewWithCause(CodeInvalidPayload, err).WithDetail("field", field)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, engagementErrors.NewWithCause(CodeInvalidPayload, err).WithDetail("field", field)
	}

	return &courier.Media{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
