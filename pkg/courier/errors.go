package courier

import "github.com/Abraxas-365/relaycrm/pkg/errx"

var courierErrors = errx.NewRegistry("COURIER")

var (
	ErrSendFailed       = courierErrors.Register("SEND_FAILED", errx.TypeExternal, 502, "Failed to deliver message")
	ErrInvalidMessage   = courierErrors.Register("INVALID_MESSAGE", errx.TypeValidation, 400, "Invalid outbound message")
	ErrNoProvider       = courierErrors.Register("NO_PROVIDER", errx.TypeInternal, 500, "No delivery provider configured")
	ErrTemplateNotFound = courierErrors.Register("TEMPLATE_NOT_FOUND", errx.TypeNotFound, 404, "Message template not found")
	ErrTemplateParse    = courierErrors.Register("TEMPLATE_PARSE", errx.TypeValidation, 400, "Failed to parse message template")
	ErrTemplateRender   = courierErrors.Register("TEMPLATE_RENDER", errx.TypeInternal, 500, "Failed to render message template")
)
