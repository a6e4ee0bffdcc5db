package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/errx"
	"github.com/Abraxas-365/relaycrm/pkg/logx"
)

const (
	defaultSendTimeout = 30 * time.Second
	maxResponseBytes   = 1 << 20

	genericSendFailure = "Failed to send message"
	genericSendSuccess = "Message sent"
)

// DispatchResult is the transient outcome of one submit. It is surfaced to
// the operator and never persisted.
type DispatchResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Credentials carries the bearer token attached to every outbound call. It
// is injected explicitly at construction; the dispatcher reads no ambient
// state.
type Credentials struct {
	Token string
}

// Dispatcher submits validated compositions to the engagement send endpoint.
// A dispatcher allows a single in-flight send at a time; a second submit
// while one is running is rejected with ErrSendInFlight.
type Dispatcher struct {
	baseURL  string
	creds    Credentials
	client   *http.Client
	inFlight atomic.Bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(d *Dispatcher) { d.client = client }
}

// WithTimeout sets the per-send timeout. The default is 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) { d.client.Timeout = timeout }
}

// NewDispatcher creates a dispatcher for the given API base URL.
func NewDispatcher(baseURL string, creds Credentials, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		client:  &http.Client{Timeout: defaultSendTimeout},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Send validates the composition, serializes it and issues exactly one POST
// to the engagement send endpoint. No retries are performed.
//
// On a 2xx response the composition content is reset (channel selection is
// preserved) and the result carries the server's message. On a transport or
// server failure the composition is left untouched so the operator can
// correct and resubmit, and the result carries the server-provided message
// when one exists, or a generic failure string. A non-nil error is returned
// only for pre-submit rejections: validation failures, a send already in
// flight, or a payload that cannot be built.
func (d *Dispatcher) Send(ctx context.Context, c *Composition) (*DispatchResult, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}

	if !d.inFlight.CompareAndSwap(false, true) {
		return nil, dispatchErrors.New(ErrSendInFlight)
	}
	defer d.inFlight.Store(false)

	payload, err := BuildPayload(c)
	if err != nil {
		return nil, errx.Wrap(err, "failed to build dispatch payload", errx.TypeInternal)
	}

	url := fmt.Sprintf("%s/api/v1/engagements/%s/send", d.baseURL, c.TargetID())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload.Body))
	if err != nil {
		return nil, errx.Wrap(err, "failed to create dispatch request", errx.TypeInternal)
	}
	req.Header.Set("Content-Type", payload.ContentType)
	if d.creds.Token != "" {
		req.Header.Set("Authorization", "Bearer "+d.creds.Token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		logx.WithError(err).Errorf("dispatch: send to engagement %s failed", c.TargetID())
		return &DispatchResult{Success: false, Message: genericSendFailure}, nil
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if readErr != nil {
		logx.WithError(readErr).Error("dispatch: failed to read response body")
		return &DispatchResult{Success: false, Message: genericSendFailure}, nil
	}

	var parsed struct {
		Message string          `json:"message"`
		Error   string          `json:"error"`
		Data    json.RawMessage `json:"data"`
	}
	// Best effort: a non-JSON body simply falls back to generic messaging.
	_ = json.Unmarshal(body, &parsed)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		msg := parsed.Message
		if msg == "" {
			msg = genericSendSuccess
		}
		c.ResetContent()
		return &DispatchResult{Success: true, Message: msg, Data: parsed.Data}, nil
	}

	msg := parsed.Message
	if msg == "" {
		msg = parsed.Error
	}
	if msg == "" {
		msg = genericSendFailure
	}
	logx.WithFields(logx.Fields{
		"status":     resp.StatusCode,
		"engagement": c.TargetID().String(),
	}).Warnf("dispatch: send rejected: %s", msg)
	return &DispatchResult{Success: false, Message: msg}, nil
}
