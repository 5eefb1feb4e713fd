package httpx

import (
	"net/http"

	apperrors "github.com/revobooking/revo-ui/internal/errors"
)

// ErrorOpts contains all options needed to re-render a page after a failed action.
type ErrorOpts struct {
	W http.ResponseWriter
	R *http.Request
	// Err is the failure; its user-facing message replaces Fallback when present.
	Err      error
	Fallback string
	// Render draws the page with the prepared data.
	Render func(w http.ResponseWriter, r *http.Request, data map[string]any)
	// PageMeta contains page metadata (title, current page, etc.)
	PageMeta PageMeta
	// Data preserves form values and other page state.
	Data map[string]any
}

// DetermineErrorStatus maps an error to the HTTP status used when a full page is re-rendered.
func DetermineErrorStatus(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RenderError re-renders a page with the failure message, the field that failed
// (when known) and the caller's preserved data.
func RenderError(opts ErrorOpts) {
	if opts.Render == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}

	msg := apperrors.UserMessage(opts.Err, opts.Fallback)
	builder := NewTemplateData(opts.R, opts.PageMeta).WithError(msg)
	if field := apperrors.GetField(opts.Err); field != "" {
		builder.WithFieldErrors(map[string]string{field: msg})
	}
	for k, v := range opts.Data {
		builder.With(k, v)
	}

	opts.W.Header().Set("Content-Type", "text/html; charset=utf-8")
	opts.W.WriteHeader(DetermineErrorStatus(opts.Err))
	opts.Render(opts.W, opts.R, builder.Build())
}
