// Package courierwa implements courier.ChatSender against a green-api style
// WhatsApp gateway: JSON sendMessage for plain text, multipart
// sendFileByUpload when media is attached.
package courierwa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/courier"
	"github.com/Abraxas-365/relaycrm/pkg/errx"
)

var waErrors = errx.NewRegistry("COURIER_WA")

var (
	errSendFailed  = waErrors.Register("SEND_FAILED", errx.TypeExternal, 502, "WhatsApp gateway rejected the message")
	errUnreachable = waErrors.Register("UNREACHABLE", errx.TypeExternal, 502, "WhatsApp gateway is unreachable")
)

// Provider talks to one gateway instance.
type Provider struct {
	baseURL    string
	instanceID string
	apiKey     string
	client     *http.Client
}

// NewProvider creates a WhatsApp gateway provider.
func NewProvider(baseURL, instanceID, apiKey string, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		instanceID: instanceID,
		apiKey:     apiKey,
		client:     &http.Client{Timeout: timeout},
	}
}

func (p *Provider) endpoint(method string) string {
	return fmt.Sprintf("%s/waInstance%s/%s/%s", p.baseURL, p.instanceID, method, p.apiKey)
}

// chatID converts a phone number to the gateway's chat identifier.
func chatID(phone string) string {
	cleaned := strings.TrimPrefix(strings.TrimSpace(phone), "+")
	return cleaned + "@c.us"
}

// SendChat sends a text message, or a file upload with caption when media is
// present.
func (p *Provider) SendChat(ctx context.Context, msg courier.ChatMessage) error {
	if msg.Media != nil {
		return p.sendFileByUpload(ctx, msg)
	}
	return p.sendMessage(ctx, msg)
}

func (p *Provider) sendMessage(ctx context.Context, msg courier.ChatMessage) error {
	payload, err := json.Marshal(map[string]string{
		"chatId":  chatID(msg.To),
		"message": msg.Text,
	})
	if err != nil {
		return errx.Wrap(err, "failed to encode sendMessage payload", errx.TypeInternal)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return errx.Wrap(err, "failed to create sendMessage request", errx.TypeInternal)
	}
	req.Header.Set("Content-Type", "application/json")

	return p.do(req, msg.To)
}

func (p *Provider) sendFileByUpload(ctx context.Context, msg courier.ChatMessage) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("chatId", chatID(msg.To)); err != nil {
		return errx.Wrap(err, "failed to write chatId field", errx.TypeInternal)
	}
	if msg.Caption != "" {
		if err := w.WriteField("caption", msg.Caption); err != nil {
			return errx.Wrap(err, "failed to write caption field", errx.TypeInternal)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, msg.Media.Filename))
	contentType := msg.Media.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return errx.Wrap(err, "failed to create file part", errx.TypeInternal)
	}
	if _, err := part.Write(msg.Media.Data); err != nil {
		return errx.Wrap(err, "failed to write file part", errx.TypeInternal)
	}
	if err := w.Close(); err != nil {
		return errx.Wrap(err, "failed to finalize multipart body", errx.TypeInternal)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint("sendFileByUpload"), &buf)
	if err != nil {
		return errx.Wrap(err, "failed to create sendFileByUpload request", errx.TypeInternal)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return p.do(req, msg.To)
}

func (p *Provider) do(req *http.Request, to string) error {
	resp, err := p.client.Do(req)
	if err != nil {
		return waErrors.NewWithCause(errUnreachable, err).WithDetail("to", to)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return waErrors.New(errSendFailed).
			WithDetail("to", to).
			WithDetail("status", resp.StatusCode).
			WithDetail("body", string(body))
	}
	return nil
}
