// Package courierconsole logs deliveries instead of sending them. Intended
// for development and tests.
package courierconsole

import (
	"context"
	"strings"

	"github.com/Abraxas-365/relaycrm/pkg/courier"
	"github.com/Abraxas-365/relaycrm/pkg/logx"
)

// ConsoleProvider implements both courier sender interfaces by logging.
type ConsoleProvider struct{}

// NewConsoleProvider creates a console delivery provider.
func NewConsoleProvider() *ConsoleProvider {
	return &ConsoleProvider{}
}

// SendEmail logs the email instead of sending it.
func (p *ConsoleProvider) SendEmail(_ context.Context, msg courier.EmailMessage) error {
	logx.WithFields(logx.Fields{
		"from":    msg.From,
		"to":      strings.Join(msg.To, ", "),
		"subject": msg.Subject,
	}).Info("courier/console: email sent (dev mode)")

	if msg.TextBody != "" {
		logx.Debugf("courier/console: text body:\n%s", msg.TextBody)
	}
	if msg.HTMLBody != "" {
		logx.Debugf("courier/console: html body:\n%s", msg.HTMLBody)
	}
	return nil
}

// SendChat logs the chat message instead of sending it.
func (p *ConsoleProvider) SendChat(_ context.Context, msg courier.ChatMessage) error {
	fields := logx.Fields{"to": msg.To}
	if msg.Media != nil {
		fields["media"] = msg.Media.Filename
		fields["caption"] = msg.Caption
	} else {
		fields["text"] = msg.Text
	}
	logx.WithFields(fields).Info("courier/console: chat message sent (dev mode)")
	return nil
}
