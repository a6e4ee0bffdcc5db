package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/Abraxas-365/relaycrm/pkg/errx"
)

// Payload is a serialized composition ready to be POSTed to the engagement
// send endpoint.
type Payload struct {
	ContentType string
	Body        []byte
}

// IsMultipart reports whether the payload is multipart/form-data encoded.
func (p *Payload) IsMultipart() bool {
	return strings.HasPrefix(p.ContentType, "multipart/form-data")
}

// jsonPayload is the structured body used when no binary content is present.
type jsonPayload struct {
	Channels         []string        `json:"channels"`
	Message          string          `json:"message,omitempty"`
	Subject          string          `json:"subject,omitempty"`
	EmailBodyFormat  string          `json:"emailBodyFormat,omitempty"`
	EmailServiceType string          `json:"emailServiceType,omitempty"`
	EmailContent     string          `json:"emailContent,omitempty"`
	TemplateFields   *TemplateFields `json:"templateFields,omitempty"`
	TemplateID       string          `json:"templateId,omitempty"`
}

// BuildPayload serializes the composition into a single outbound request
// body. Multipart encoding is chosen exactly when a binary field is present
// (file, icon or background); otherwise the body is JSON. The attachment, if
// any, is encoded once and shared by every selected channel. The caller is
// expected to have validated the composition first.
func BuildPayload(c *Composition) (*Payload, error) {
	if c.HasAttachment() {
		return buildMultipart(c)
	}
	return buildJSON(c)
}

func buildJSON(c *Composition) (*Payload, error) {
	body := jsonPayload{Channels: c.Channels.Names()}

	if c.Channels.Chat {
		body.Message = c.Chat.Message
	}
	if c.Channels.Email {
		body.Subject = c.Email.Subject
		body.EmailBodyFormat = string(c.Email.BodyFormat)
		body.EmailServiceType = c.emailServiceType()
		body.EmailContent = c.Email.Body
		if c.Email.BodyFormat == BodyFormatTemplated {
			tf := c.Email.Template
			body.TemplateFields = &tf
			body.TemplateID = c.Email.TemplateID
		}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, dispatchErrors.NewWithCause(ErrPayloadBuild, err)
	}
	return &Payload{ContentType: "application/json", Body: data}, nil
}

func buildMultipart(c *Composition) (*Payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, name := range c.Channels.Names() {
		if err := w.WriteField("channels", name); err != nil {
			return nil, dispatchErrors.NewWithCause(ErrPayloadBuild, err)
		}
	}

	// The binary attachment is written once and shared across channels.
	switch att := c.attachment.(type) {
	case AttachmentFile:
		if err := writeFilePart(w, "file", att.Name, att.ContentType, att.Data); err != nil {
			return nil, err
		}
	case AttachmentPoster:
		if err := w.WriteField("generatePoster", "true"); err != nil {
			return nil, dispatchErrors.NewWithCause(ErrPayloadBuild, err)
		}
		if err := writeFilePart(w, "icon", att.Icon.Name, att.Icon.ContentType, att.Icon.Data); err != nil {
			return nil, err
		}
		if att.Background != nil {
			if err := writeFilePart(w, "background", att.Background.Name, att.Background.ContentType, att.Background.Data); err != nil {
				return nil, err
			}
		}
		if err := w.WriteField("title", att.Title); err != nil {
			return nil, dispatchErrors.NewWithCause(ErrPayloadBuild, err)
		}
		if err := w.WriteField("note", att.Note); err != nil {
			return nil, dispatchErrors.NewWithCause(ErrPayloadBuild, err)
		}
	}

	// The caption rides along whenever the attachment path is active, even
	// when empty.
	if c.Channels.Chat {
		if err := w.WriteField("caption", c.Chat.Caption); err != nil {
			return nil, dispatchErrors.NewWithCause(ErrPayloadBuild, err)
		}
	}

	if c.Channels.Email {
		fields := map[string]string{
			"subject":          c.Email.Subject,
			"emailBodyFormat":  string(c.Email.BodyFormat),
			"emailServiceType": c.emailServiceType(),
			"emailContent":     c.Email.Body,
		}
		if c.Email.BodyFormat == BodyFormatTemplated {
			tf, err := json.Marshal(c.Email.Template)
			if err != nil {
				return nil, dispatchErrors.NewWithCause(ErrPayloadBuild, err)
			}
			fields["templateFields"] = string(tf)
			if c.Email.TemplateID != "" {
				fields["templateId"] = c.Email.TemplateID
			}
		}
		for name, value := range fields {
			if err := w.WriteField(name, value); err != nil {
				return nil, dispatchErrors.NewWithCause(ErrPayloadBuild, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, dispatchErrors.NewWithCause(ErrPayloadBuild, err)
	}
	return &Payload{ContentType: w.FormDataContentType(), Body: buf.Bytes()}, nil
}

func writeFilePart(w *multipart.Writer, field, filename, contentType string, data []byte) *errx.Error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, escapeQuotes(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return dispatchErrors.NewWithCause(ErrPayloadBuild, err)
	}
	if _, err := part.Write(data); err != nil {
		return dispatchErrors.NewWithCause(ErrPayloadBuild, err)
	}
	return nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

func (c *Composition) emailServiceType() string {
	if c.Email.ServiceType == "" {
		return DefaultEmailServiceType
	}
	return c.Email.ServiceType
}
