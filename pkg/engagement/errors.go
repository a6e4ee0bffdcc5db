package engagement

import (
	"net/http"

	"github.com/Abraxas-365/relaycrm/pkg/errx"
)

var engagementErrors = errx.NewRegistry("ENGAGEMENT")

var (
	CodeNotFound       = engagementErrors.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Engagement not found")
	CodeClosed         = engagementErrors.Register("CLOSED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Engagement is closed")
	CodeInvalidPayload = engagementErrors.Register("INVALID_PAYLOAD", errx.TypeValidation, http.StatusBadRequest, "Invalid outbound message payload")
	CodeNoRecipient    = engagementErrors.Register("NO_RECIPIENT", errx.TypeBusiness, http.StatusUnprocessableEntity, "Engagement has no contact for the selected channel")
	CodeDeliveryFailed = engagementErrors.Register("DELIVERY_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to send message")
	CodeInvalidRequest = engagementErrors.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid engagement request")
)

func ErrNotFound() *errx.Error { return engagementErrors.New(CodeNotFound) }
func ErrClosed() *errx.Error   { return engagementErrors.New(CodeClosed) }

func ErrInvalidRequest(msg string) *errx.Error {
	return engagementErrors.NewWithMessage(CodeInvalidRequest, msg)
}

func ErrNoRecipient(channel string) *errx.Error {
	return engagementErrors.New(CodeNoRecipient).WithDetail("channel", channel)
}

func ErrDeliveryFailed(cause error) *errx.Error {
	return engagementErrors.NewWithCause(CodeDeliveryFailed, cause)
}

// Wire-level validation messages, identical to the composer's submit rules.
const (
	msgNoChannel    = "Please select at least one channel"
	msgChatMissing  = "Please enter a WhatsApp message or upload a file/generate a poster"
	msgSubjectEmpty = "Please enter an email subject"
	msgContentEmpty = "Please enter email content"
)
