package dispatch_test

import (
	"strings"
	"testing"

	"github.com/Abraxas-365/relaycrm/pkg/dispatch"
	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComposition() *dispatch.Composition {
	return dispatch.NewComposition(kernel.NewEngagementID("eng-1"))
}

func TestNewComposition_Defaults(t *testing.T) {
	c := newComposition()

	assert.False(t, c.Channels.Any())
	assert.False(t, c.HasAttachment())
	assert.Equal(t, dispatch.BodyFormatPlain, c.Email.BodyFormat)
	assert.Equal(t, dispatch.DefaultEmailServiceType, c.Email.ServiceType)
	assert.Equal(t, kernel.NewEngagementID("eng-1"), c.TargetID())
}

func TestToggleChannel_Idempotent(t *testing.T) {
	c := newComposition()
	c.Chat.Message = "untouched"

	c.ToggleChannel(dispatch.ChannelChat)
	assert.True(t, c.Channels.Chat)
	assert.False(t, c.Channels.Email)

	c.ToggleChannel(dispatch.ChannelChat)
	assert.False(t, c.Channels.Chat)
	assert.False(t, c.Channels.Email)

	// Toggling must not touch any other field.
	assert.Equal(t, "untouched", c.Chat.Message)
	assert.False(t, c.HasAttachment())
}

func TestAttachmentModes_MutuallyExclusive(t *testing.T) {
	c := newComposition()

	draft := dispatch.PosterDraft{Title: "Sale", Note: "20% off"}
	draft.SetIcon("icon.png", "image/png", []byte{1, 2, 3})
	require.Nil(t, draft.Commit(c))

	_, isPoster := c.Attachment().(dispatch.AttachmentPoster)
	require.True(t, isPoster)

	// Switching to a file upload must destroy the poster data.
	c.AttachFile("deck.pdf", "application/pdf", []byte{9})
	file, isFile := c.Attachment().(dispatch.AttachmentFile)
	require.True(t, isFile)
	assert.Equal(t, "deck.pdf", file.Name)

	// And back again: the poster replaces the file.
	require.Nil(t, draft.Commit(c))
	poster, isPoster := c.Attachment().(dispatch.AttachmentPoster)
	require.True(t, isPoster)
	assert.Equal(t, "icon.png", poster.Icon.Name)

	c.ClearAttachment()
	assert.False(t, c.HasAttachment())
}

func TestActiveTextField_DerivedFromAttachment(t *testing.T) {
	c := newComposition()
	assert.Equal(t, dispatch.TextFieldMessage, c.ActiveTextField())

	c.AttachFile("a.png", "image/png", []byte{1})
	assert.Equal(t, dispatch.TextFieldCaption, c.ActiveTextField())

	c.ClearAttachment()
	assert.Equal(t, dispatch.TextFieldMessage, c.ActiveTextField())
}

func TestPosterDraft_RequiresIcon(t *testing.T) {
	c := newComposition()

	draft := dispatch.PosterDraft{Title: "No icon"}
	err := draft.Commit(c)
	require.NotNil(t, err)

	// A refused commit must not leave a partial bundle behind.
	assert.False(t, c.HasAttachment())
}

func TestPosterDraft_TruncatesOverlayText(t *testing.T) {
	c := newComposition()

	draft := dispatch.PosterDraft{
		Title: strings.Repeat("t", dispatch.PosterTitleMaxLen+10),
		Note:  strings.Repeat("n", dispatch.PosterNoteMaxLen+100),
	}
	draft.SetIcon("icon.png", "image/png", []byte{1})
	require.Nil(t, draft.Commit(c))

	poster := c.Attachment().(dispatch.AttachmentPoster)
	assert.Len(t, []rune(poster.Title), dispatch.PosterTitleMaxLen)
	assert.Len(t, []rune(poster.Note), dispatch.PosterNoteMaxLen)
}

func TestResetContent_PreservesChannels(t *testing.T) {
	c := newComposition()
	c.ToggleChannel(dispatch.ChannelChat)
	c.ToggleChannel(dispatch.ChannelEmail)
	c.Chat = dispatch.ChatContent{Message: "hi", Caption: "cap"}
	c.Email = dispatch.EmailContent{
		Subject:     "Update",
		BodyFormat:  dispatch.BodyFormatTemplated,
		Template:    dispatch.TemplateFields{Title: "T", Note: "N"},
		TemplateID:  "tmpl-1",
		Body:        "body",
		ServiceType: "smtp",
	}
	c.AttachFile("f.bin", "application/octet-stream", []byte{1})

	c.ResetContent()

	assert.Equal(t, dispatch.ChannelSet{Chat: true, Email: true}, c.Channels)
	assert.Empty(t, c.Chat.Message)
	assert.Empty(t, c.Chat.Caption)
	assert.Empty(t, c.Email.Subject)
	assert.Empty(t, c.Email.Body)
	assert.Empty(t, c.Email.TemplateID)
	assert.Equal(t, dispatch.BodyFormatPlain, c.Email.BodyFormat)
	assert.False(t, c.HasAttachment())
	// The provider tag is configuration, not content.
	assert.Equal(t, "smtp", c.Email.ServiceType)
}
