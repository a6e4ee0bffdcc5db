package reminder

import (
	"net/http"

	"github.com/Abraxas-365/relaycrm/pkg/errx"
)

var reminderErrors = errx.NewRegistry("REMINDER")

var (
	CodeNotFound       = reminderErrors.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Reminder not found")
	CodeInvalidRequest = reminderErrors.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid reminder request")
	CodePublishFailed  = reminderErrors.Register("PUBLISH_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to publish reminder event")
)

func ErrNotFound() *errx.Error { return reminderErrors.New(CodeNotFound) }

func ErrInvalidRequest(msg string) *errx.Error {
	return reminderErrors.NewWithMessage(CodeInvalidRequest, msg)
}

func ErrPublishFailed(cause error) *errx.Error {
	return reminderErrors.NewWithCause(CodePublishFailed, cause)
}
