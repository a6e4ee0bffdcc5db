// Package courierses implements courier.EmailSender on AWS SES.
package courierses

import (
	"context"

	"github.com/Abraxas-365/relaycrm/pkg/courier"
	"github.com/Abraxas-365/relaycrm/pkg/errx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesErrors = errx.NewRegistry("COURIER_SES")

var errSendFailed = sesErrors.Register("SEND_FAILED", errx.TypeExternal, 502, "SES rejected the email")

// SESProvider sends email through AWS SES.
type SESProvider struct {
	client      *ses.Client
	fromAddress string
}

// NewSESProvider creates an SES email provider with a default sender address.
func NewSESProvider(client *ses.Client, fromAddress string) *SESProvider {
	return &SESProvider{client: client, fromAddress: fromAddress}
}

// SendEmail sends a single email via SES. Attachments are not supported by
// the simple SES send API; callers deliver binary content through the chat
// channel or a storage link instead.
func (p *SESProvider) SendEmail(ctx context.Context, msg courier.EmailMessage) error {
	from := msg.From
	if from == "" {
		from = p.fromAddress
	}

	body := &types.Body{}
	if msg.TextBody != "" {
		body.Text = &types.Content{Data: aws.String(msg.TextBody), Charset: aws.String("UTF-8")}
	}
	if msg.HTMLBody != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String("UTF-8")}
	}

	input := &ses.SendEmailInput{
		Source: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: msg.To,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
	}

	if _, err := p.client.SendEmail(ctx, input); err != nil {
		return sesErrors.NewWithCause(errSendFailed, err).
			WithDetail("to", msg.To).
			WithDetail("subject", msg.Subject)
	}
	return nil
}
