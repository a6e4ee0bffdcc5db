package settings

import (
	"net/http"

	"github.com/Abraxas-365/relaycrm/pkg/errx"
)

var settingsErrors = errx.NewRegistry("SETTINGS")

var (
	CodeNotFound       = settingsErrors.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Setting not found")
	CodeInvalidRequest = settingsErrors.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid settings request")
)

func ErrNotFound() *errx.Error { return settingsErrors.New(CodeNotFound) }

func ErrInvalidRequest(msg string) *errx.Error {
	return settingsErrors.NewWithMessage(CodeInvalidRequest, msg)
}
