package dispatch

import "github.com/Abraxas-365/relaycrm/pkg/errx"

var dispatchErrors = errx.NewRegistry("DISPATCH")

var (
	ErrNoChannelSelected  = dispatchErrors.Register("NO_CHANNEL", errx.TypeValidation, 400, "Please select at least one channel")
	ErrChatContentMissing = dispatchErrors.Register("CHAT_CONTENT_MISSING", errx.TypeValidation, 400, "Please enter a WhatsApp message or upload a file/generate a poster")
	ErrEmailSubjectEmpty  = dispatchErrors.Register("EMAIL_SUBJECT_EMPTY", errx.TypeValidation, 400, "Please enter an email subject")
	ErrEmailContentEmpty  = dispatchErrors.Register("EMAIL_CONTENT_EMPTY", errx.TypeValidation, 400, "Please enter email content")
	ErrPosterIconMissing  = dispatchErrors.Register("POSTER_ICON_MISSING", errx.TypeValidation, 400, "A poster requires an icon image")
	ErrSendInFlight       = dispatchErrors.Register("SEND_IN_FLIGHT", errx.TypeConflict, 409, "A send is already in progress")
	ErrPayloadBuild       = dispatchErrors.Register("PAYLOAD_BUILD", errx.TypeInternal, 500, "Failed to build outbound payload")
)
