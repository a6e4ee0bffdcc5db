package lead

import (
	"net/http"

	"github.com/Abraxas-365/relaycrm/pkg/errx"
)

var leadErrors = errx.NewRegistry("LEAD")

var (
	CodeNotFound       = leadErrors.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Lead not found")
	CodeDuplicate      = leadErrors.Register("DUPLICATE", errx.TypeConflict, http.StatusConflict, "A lead with this email already exists")
	CodeInvalidStage   = leadErrors.Register("INVALID_STAGE", errx.TypeValidation, http.StatusBadRequest, "Unknown lifecycle stage")
	CodeInvalidRequest = leadErrors.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid lead request")
)

func ErrNotFound() *errx.Error  { return leadErrors.New(CodeNotFound) }
func ErrDuplicate() *errx.Error { return leadErrors.New(CodeDuplicate) }

func ErrInvalidStage(stage string) *errx.Error {
	return leadErrors.New(CodeInvalidStage).WithDetail("stage", stage)
}

func ErrInvalidRequest(msg string) *errx.Error {
	return leadErrors.NewWithMessage(CodeInvalidRequest, msg)
}
