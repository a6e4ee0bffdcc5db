package engagement_test

import (
	"bytes"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/Abraxas-365/relaycrm/pkg/dispatch"
	"github.com/Abraxas-365/relaycrm/pkg/engagement"
	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodePayload runs a composer payload through the matching server decoder,
// exercising the full wire round trip.
func decodePayload(t *testing.T, p *dispatch.Payload) *engagement.OutboundMessage {
	t.Helper()

	if !p.IsMultipart() {
		msg, derr := engagement.OutboundFromJSON(p.Body)
		require.Nil(t, derr)
		return msg
	}

	_, params, err := mime.ParseMediaType(p.ContentType)
	require.NoError(t, err)
	form, err := multipart.NewReader(bytes.NewReader(p.Body), params["boundary"]).ReadForm(10 << 20)
	require.NoError(t, err)
	msg, derr := engagement.OutboundFromForm(form)
	require.Nil(t, derr)
	return msg
}

func TestOutboundRoundTrip_JSON(t *testing.T) {
	c := dispatch.NewComposition(kernel.NewEngagementID("eng-1"))
	c.ToggleChannel(dispatch.ChannelChat)
	c.ToggleChannel(dispatch.ChannelEmail)
	c.Chat.Message = "hello there"
	c.Email.Subject = "Quarterly update"
	c.Email.Body = "the content"

	p, err := dispatch.BuildPayload(c)
	require.NoError(t, err)

	msg := decodePayload(t, p)
	assert.Equal(t, []string{"chat", "email"}, msg.Channels)
	assert.Equal(t, "hello there", msg.Message)
	assert.Equal(t, "Quarterly update", msg.Subject)
	assert.Equal(t, "the content", msg.EmailContent)
	assert.Equal(t, "ses", msg.EmailServiceType)
	assert.False(t, msg.HasBinary())
	assert.Nil(t, msg.Validate())
}

func TestOutboundRoundTrip_FileAttachment(t *testing.T) {
	c := dispatch.NewComposition(kernel.NewEngagementID("eng-1"))
	c.ToggleChannel(dispatch.ChannelChat)
	c.AttachFile("brochure.pdf", "application/pdf", []byte("%PDF-1.4"))
	c.Chat.Caption = "take a look"

	p, err := dispatch.BuildPayload(c)
	require.NoError(t, err)
	require.True(t, p.IsMultipart())

	msg := decodePayload(t, p)
	assert.Equal(t, []string{"chat"}, msg.Channels)
	require.NotNil(t, msg.File)
	assert.Equal(t, "brochure.pdf", msg.File.Filename)
	assert.Equal(t, "application/pdf", msg.File.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), msg.File.Data)
	assert.Equal(t, "take a look", msg.Caption)
	assert.False(t, msg.GeneratePoster)

	media := msg.ChatMedia()
	require.NotNil(t, media)
	assert.Equal(t, "brochure.pdf", media.Filename)
	assert.Nil(t, msg.Validate())
}

func TestOutboundRoundTrip_Poster(t *testing.T) {
	c := dispatch.NewComposition(kernel.NewEngagementID("eng-1"))
	c.ToggleChannel(dispatch.ChannelChat)

	var draft dispatch.PosterDraft
	draft.SetIcon("icon.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	draft.SetBackground("bg.jpg", "image/jpeg", []byte{0xFF, 0xD8})
	draft.Title = "Summer Sale"
	draft.Note = "Up to 40% off"
	require.Nil(t, draft.Commit(c))

	p, err := dispatch.BuildPayload(c)
	require.NoError(t, err)
	require.True(t, p.IsMultipart())

	msg := decodePayload(t, p)
	assert.True(t, msg.GeneratePoster)
	require.NotNil(t, msg.Icon)
	assert.Equal(t, "icon.png", msg.Icon.Filename)
	require.NotNil(t, msg.Background)
	assert.Equal(t, "bg.jpg", msg.Background.Filename)
	assert.Equal(t, "Summer Sale", msg.PosterTitle)
	assert.Equal(t, "Up to 40% off", msg.PosterNote)
	assert.Nil(t, msg.File)

	// The chat binary for a poster is the icon.
	media := msg.ChatMedia()
	require.NotNil(t, media)
	assert.Equal(t, "icon.png", media.Filename)
	assert.Nil(t, msg.Validate())
}

func TestOutboundRoundTrip_TemplatedEmail(t *testing.T) {
	c := dispatch.NewComposition(kernel.NewEngagementID("eng-1"))
	c.ToggleChannel(dispatch.ChannelEmail)
	c.Email.Subject = "Welcome"
	c.Email.Body = "body"
	c.Email.BodyFormat = dispatch.BodyFormatTemplated
	c.Email.TemplateID = "welcome-v2"
	c.Email.Template = dispatch.TemplateFields{Title: "Hi", Note: "glad to have you"}

	p, err := dispatch.BuildPayload(c)
	require.NoError(t, err)

	msg := decodePayload(t, p)
	assert.Equal(t, "templated", msg.EmailBodyFormat)
	assert.Equal(t, "welcome-v2", msg.TemplateID)
	assert.Equal(t, "Hi", msg.TemplateFields.Title)
	assert.Equal(t, "glad to have you", msg.TemplateFields.Note)
}

func TestOutboundValidate_MirrorsComposerRules(t *testing.T) {
	cases := []struct {
		name string
		msg  engagement.OutboundMessage
		want string
	}{
		{
			name: "no channel",
			msg:  engagement.OutboundMessage{},
			want: "Please select at least one channel",
		},
		{
			name: "chat without content",
			msg:  engagement.OutboundMessage{Channels: []string{"chat"}, Message: "   "},
			want: "Please enter a WhatsApp message or upload a file/generate a poster",
		},
		{
			name: "email without subject",
			msg:  engagement.OutboundMessage{Channels: []string{"email"}, EmailContent: "x"},
			want: "Please enter an email subject",
		},
		{
			name: "email without content",
			msg:  engagement.OutboundMessage{Channels: []string{"email"}, Subject: "s"},
			want: "Please enter email content",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.Validate()
			require.NotNil(t, err)
			assert.Equal(t, tc.want, err.Message)
		})
	}
}

func TestOutboundFromJSON_Invalid(t *testing.T) {
	_, err := engagement.OutboundFromJSON([]byte("{not json"))
	require.NotNil(t, err)
	assert.Equal(t, "ENGAGEMENT_INVALID_PAYLOAD", err.Code)
}
