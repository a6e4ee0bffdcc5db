package dispatch

import (
	"strings"

	"github.com/Abraxas-365/relaycrm/pkg/errx"
)

// Validate checks the whole composition against the channel-specific and
// attachment-specific rules. It is pure and synchronous; the first failing
// rule wins and its message is surfaced to the operator unchanged. A nil
// return means the composition is submittable.
//
// Rule order:
//  1. at least one channel selected
//  2. chat selected: an attachment or a non-empty message
//  3. email selected: non-empty subject, then non-empty body
func Validate(c *Composition) *errx.Error {
	if !c.Channels.Any() {
		return dispatchErrors.New(ErrNoChannelSelected)
	}

	if c.Channels.Chat && !c.HasAttachment() && strings.TrimSpace(c.Chat.Message) == "" {
		return dispatchErrors.New(ErrChatContentMissing)
	}

	if c.Channels.Email {
		if strings.TrimSpace(c.Email.Subject) == "" {
			return dispatchErrors.New(ErrEmailSubjectEmpty)
		}
		if strings.TrimSpace(c.Email.Body) == "" {
			return dispatchErrors.New(ErrEmailContentEmpty)
		}
	}

	return nil
}
