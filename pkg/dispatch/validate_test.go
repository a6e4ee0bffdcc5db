package dispatch_test

import (
	"testing"

	"github.com/Abraxas-365/relaycrm/pkg/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_NoChannelSelected(t *testing.T) {
	c := newComposition()
	c.Chat.Message = "content everywhere"
	c.Email.Subject = "s"
	c.Email.Body = "b"

	err := dispatch.Validate(c)
	require.NotNil(t, err)
	assert.Equal(t, "Please select at least one channel", err.Message)
}

func TestValidate_ChatWithoutContent(t *testing.T) {
	for _, emailOn := range []bool{false, true} {
		c := newComposition()
		c.ToggleChannel(dispatch.ChannelChat)
		if emailOn {
			c.ToggleChannel(dispatch.ChannelEmail)
			c.Email.Subject = "s"
			c.Email.Body = "b"
		}

		err := dispatch.Validate(c)
		require.NotNil(t, err, "email=%v", emailOn)
		assert.Equal(t, "Please enter a WhatsApp message or upload a file/generate a poster", err.Message)
	}
}

func TestValidate_ChatSatisfiedByAttachment(t *testing.T) {
	c := newComposition()
	c.ToggleChannel(dispatch.ChannelChat)
	c.AttachFile("f.png", "image/png", []byte{1})

	assert.Nil(t, dispatch.Validate(c))
}

func TestValidate_ChatSatisfiedByPoster(t *testing.T) {
	c := newComposition()
	c.ToggleChannel(dispatch.ChannelChat)
	draft := dispatch.PosterDraft{Title: "t"}
	draft.SetIcon("i.png", "image/png", []byte{1})
	require.Nil(t, draft.Commit(c))

	assert.Nil(t, dispatch.Validate(c))
}

func TestValidate_EmailSubjectRequired(t *testing.T) {
	// Subject is checked even when the chat side is fully valid.
	c := newComposition()
	c.ToggleChannel(dispatch.ChannelChat)
	c.ToggleChannel(dispatch.ChannelEmail)
	c.Chat.Message = "hello"
	c.Email.Body = "x"

	err := dispatch.Validate(c)
	require.NotNil(t, err)
	assert.Equal(t, "Please enter an email subject", err.Message)
}

func TestValidate_EmailBodyRequired(t *testing.T) {
	c := newComposition()
	c.ToggleChannel(dispatch.ChannelEmail)
	c.Email.Subject = "Update"

	err := dispatch.Validate(c)
	require.NotNil(t, err)
	assert.Equal(t, "Please enter email content", err.Message)
}

func TestValidate_LiteralScenarios(t *testing.T) {
	t.Run("chat only with message", func(t *testing.T) {
		c := newComposition()
		c.ToggleChannel(dispatch.ChannelChat)
		c.Chat.Message = "Hello"

		assert.Nil(t, dispatch.Validate(c))
	})

	t.Run("email only with empty subject", func(t *testing.T) {
		c := newComposition()
		c.ToggleChannel(dispatch.ChannelEmail)
		c.Email.Body = "x"

		err := dispatch.Validate(c)
		require.NotNil(t, err)
		assert.Equal(t, "Please enter an email subject", err.Message)
	})

	t.Run("both channels with file attachment", func(t *testing.T) {
		c := newComposition()
		c.ToggleChannel(dispatch.ChannelChat)
		c.ToggleChannel(dispatch.ChannelEmail)
		c.AttachFile("blob.bin", "application/octet-stream", []byte{1, 2})
		c.Chat.Caption = "see attached"
		c.Email.Subject = "Update"
		c.Email.Body = "see attached"

		assert.Nil(t, dispatch.Validate(c))
	})
}
