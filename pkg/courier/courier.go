// Package courier abstracts the outbound delivery providers: chat-style
// messaging and email. The engagement send pipeline fans out one outbound
// message to the providers of the selected channels.
package courier

import "context"

// Media is a binary artifact accompanying a message.
type Media struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// ChatMessage is a single chat-channel delivery. When Media is set the
// provider sends an upload with Caption; otherwise it sends Text.
type ChatMessage struct {
	To      string
	Text    string
	Caption string
	Media   *Media
}

// EmailMessage is a single email-channel delivery.
type EmailMessage struct {
	From        string
	To          []string
	Subject     string
	TextBody    string
	HTMLBody    string
	Attachments []Media
}

// ChatSender delivers chat messages.
type ChatSender interface {
	SendChat(ctx context.Context, msg ChatMessage) error
}

// EmailSender delivers emails.
type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage) error
}

// Courier bundles the per-channel providers.
type Courier struct {
	Chat  ChatSender
	Email EmailSender
}
