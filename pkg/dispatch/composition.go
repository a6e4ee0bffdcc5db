// Package dispatch implements the engagement dispatch composer: the mutable
// composition an operator assembles for one outbound send, its validation
// rules, the wire payload builder and the dispatcher that submits it.
package dispatch

import (
	"github.com/Abraxas-365/relaycrm/pkg/kernel"
)

// Channel is one of the delivery surfaces a composition may target.
type Channel string

const (
	ChannelChat  Channel = "chat"
	ChannelEmail Channel = "email"
)

// ChannelSet tracks which channels are active. Both false is a legal
// intermediate state; the validator rejects it at submit time.
type ChannelSet struct {
	Chat  bool `json:"chat"`
	Email bool `json:"email"`
}

// Any reports whether at least one channel is selected.
func (s ChannelSet) Any() bool { return s.Chat || s.Email }

// Names returns the selected channel names in stable order.
func (s ChannelSet) Names() []string {
	names := make([]string, 0, 2)
	if s.Chat {
		names = append(names, string(ChannelChat))
	}
	if s.Email {
		names = append(names, string(ChannelEmail))
	}
	return names
}

// Toggle flips exactly one channel flag. No other state is touched.
func (s *ChannelSet) Toggle(ch Channel) {
	switch ch {
	case ChannelChat:
		s.Chat = !s.Chat
	case ChannelEmail:
		s.Email = !s.Email
	}
}

// ImageAsset is a binary image carried by a poster attachment.
type ImageAsset struct {
	Name        string
	ContentType string
	Data        []byte
}

// AttachmentMode is the mutually exclusive attachment choice of a
// composition. Exactly one variant is held at a time; switching variants
// replaces the whole value.
type AttachmentMode interface {
	attachmentMode()
}

// AttachmentNone means the composition carries no attachment.
type AttachmentNone struct{}

// AttachmentFile is a user-supplied file upload.
type AttachmentFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// AttachmentPoster is a generated promotional image: a required icon, an
// optional background and two overlay text fields.
type AttachmentPoster struct {
	Icon       ImageAsset
	Background *ImageAsset
	Title      string
	Note       string
}

func (AttachmentNone) attachmentMode()   {}
func (AttachmentFile) attachmentMode()   {}
func (AttachmentPoster) attachmentMode() {}

// TextField names which chat text field is live for the current composition.
type TextField string

const (
	TextFieldMessage TextField = "message"
	TextFieldCaption TextField = "caption"
)

// BodyFormat selects how the email body is produced.
type BodyFormat string

const (
	BodyFormatPlain     BodyFormat = "plain"
	BodyFormatTemplated BodyFormat = "templated"
)

// DefaultEmailServiceType is the provider tag sent when the caller does not
// choose one.
const DefaultEmailServiceType = "ses"

// ChatContent holds the chat-channel text fields. Message is consumed when no
// attachment is present, Caption when one is; ActiveTextField reports which.
type ChatContent struct {
	Message string `json:"message"`
	Caption string `json:"caption"`
}

// TemplateFields are the overlay fields of a templated email body.
type TemplateFields struct {
	Title string `json:"title"`
	Note  string `json:"note"`
}

// EmailContent holds the email-channel fields.
type EmailContent struct {
	Subject     string         `json:"subject"`
	BodyFormat  BodyFormat     `json:"bodyFormat"`
	Template    TemplateFields `json:"templateFields"`
	TemplateID  string         `json:"templateId,omitempty"`
	Body        string         `json:"body"`
	ServiceType string         `json:"serviceType"`
}

// Composition is the in-progress outbound message for a single engagement.
// One dispatch surface owns exactly one Composition; it is not safe for
// concurrent mutation.
type Composition struct {
	targetID   kernel.EngagementID
	attachment AttachmentMode

	Channels ChannelSet
	Chat     ChatContent
	Email    EmailContent
}

// NewComposition creates an empty composition addressed to the given
// engagement: both channels off, no attachment, plain email body.
func NewComposition(targetID kernel.EngagementID) *Composition {
	return &Composition{
		targetID:   targetID,
		attachment: AttachmentNone{},
		Email: EmailContent{
			BodyFormat:  BodyFormatPlain,
			ServiceType: DefaultEmailServiceType,
		},
	}
}

// TargetID returns the engagement this composition is addressed to. It is
// fixed for the composition's lifetime.
func (c *Composition) TargetID() kernel.EngagementID { return c.targetID }

// Attachment returns the current attachment variant.
func (c *Composition) Attachment() AttachmentMode { return c.attachment }

// HasAttachment reports whether an attachment (file or poster) is present.
func (c *Composition) HasAttachment() bool {
	_, none := c.attachment.(AttachmentNone)
	return !none
}

// AttachFile replaces the current attachment with a user-supplied file.
// Any in-progress poster data is discarded.
func (c *Composition) AttachFile(name, contentType string, data []byte) {
	c.attachment = AttachmentFile{Name: name, ContentType: contentType, Data: data}
}

// ClearAttachment discards whatever attachment is present.
func (c *Composition) ClearAttachment() {
	c.attachment = AttachmentNone{}
}

// ToggleChannel flips one channel on or off.
func (c *Composition) ToggleChannel(ch Channel) {
	c.Channels.Toggle(ch)
}

// ActiveTextField reports which chat text field is live: caption when an
// attachment is present, message otherwise. Derived, never stored.
func (c *Composition) ActiveTextField() TextField {
	if c.HasAttachment() {
		return TextFieldCaption
	}
	return TextFieldMessage
}

// ResetContent returns the composition to the ready-for-next-send baseline:
// all content fields cleared, attachment removed, channel selection and the
// email service type preserved.
func (c *Composition) ResetContent() {
	serviceType := c.Email.ServiceType
	c.attachment = AttachmentNone{}
	c.Chat = ChatContent{}
	c.Email = EmailContent{
		BodyFormat:  BodyFormatPlain,
		ServiceType: serviceType,
	}
}
