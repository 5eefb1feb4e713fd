package httpx

import (
	"cmp"
	"context"
	"errors"
	"net/http"

	apperrors "github.com/revobooking/revo-ui/internal/errors"
)

// FormParser parses form data from an HTTP request and returns the parsed data
// along with any field-level validation errors.
type FormParser[T any] func(r *http.Request) (T, map[string]string)

// FormRenderer is a function that renders the form template with the given data.
// This allows the form handler to work with different rendering strategies.
type FormRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

// FormHandlerOpts contains all options needed to handle a form submission.
type FormHandlerOpts[T any] struct {
	W http.ResponseWriter
	R *http.Request
	// Action labels the metrics and logs for this submission.
	Action string
	Parser FormParser[T]
	// Submit performs the write. A non-empty returned message replaces SuccessMessage.
	Submit   func(ctx context.Context, form T) (string, error)
	Renderer FormRenderer
	PageMeta PageMeta
	// SuccessMessage and FailureMessage are shown when the server sends no message of its own.
	SuccessMessage string
	FailureMessage string
	// SuccessURL receives the browser after a successful non-htmx submission.
	SuccessURL string
	// RedirectOnSuccess sends htmx requests to SuccessURL too instead of re-rendering.
	RedirectOnSuccess bool
	// Optional: additional data to pass to template on error
	ExtraData map[string]any
}

// HandleForm processes one form submission: local validation, the write, and
// the response.
//
// Failed htmx submissions answer with an error toast and no swap so the form
// keeps what the user typed. Failed full-page submissions re-render the page
// with the message and the submitted values under "Form".
//
// Successful htmx submissions get a success toast and a fresh render of the
// page region; full-page submissions get a flash and a redirect to SuccessURL.
func HandleForm[T any](h *UIHandlers, opts FormHandlerOpts[T]) {
	if opts.Parser == nil || opts.Submit == nil || opts.Renderer == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return
	}

	form, fieldErrors := opts.Parser(opts.R)
	if len(fieldErrors) > 0 {
		h.observe(opts.Action, apperrors.Validation("form rejected"))
		opts.renderFieldErrors(fieldErrors, form)
		return
	}

	msg, err := opts.Submit(opts.R.Context(), form)
	h.observe(opts.Action, err)
	if err != nil {
		handleFormServiceError(h, opts, err, form)
		return
	}

	success := cmp.Or(msg, opts.SuccessMessage)
	if opts.RedirectOnSuccess || !IsHTMX(opts.R) {
		h.notifyAndRedirect(opts.W, opts.R, success, ToastSuccess, opts.SuccessURL)
		return
	}

	HTMX(opts.W).Toast(success, ToastSuccess)
	opts.Renderer(opts.W, opts.R, NewTemplateData(opts.R, opts.PageMeta).Build())
}

// handleFormServiceError handles errors from the submit call.
func handleFormServiceError[T any](h *UIHandlers, opts FormHandlerOpts[T], err error, form T) {
	// The browser is gone; nobody is left to read a response.
	if errors.Is(err, context.Canceled) {
		http.Error(opts.W, "request canceled", http.StatusRequestTimeout)
		return
	}

	h.logger().WarnContext(opts.R.Context(), "form submission failed",
		"action", opts.Action,
		"error", err,
	)

	if IsHTMX(opts.R) {
		rejectAction(opts.W, apperrors.UserMessage(err, opts.FailureMessage))
		return
	}

	RenderError(ErrorOpts{
		W:        opts.W,
		R:        opts.R,
		Err:      err,
		Fallback: opts.FailureMessage,
		Render:   opts.Renderer,
		PageMeta: opts.PageMeta,
		Data:     opts.errorData(form),
	})
}

// renderFieldErrors answers a submission that failed local validation.
func (fh FormHandlerOpts[T]) renderFieldErrors(fieldErrors map[string]string, form T) {
	first := firstFieldError(fieldErrors)
	if IsHTMX(fh.R) {
		rejectAction(fh.W, first)
		return
	}

	templateData := NewTemplateData(fh.R, fh.PageMeta).
		WithError(first).
		WithFieldErrors(fieldErrors)
	for k, v := range fh.errorData(form) {
		templateData.With(k, v)
	}

	fh.W.Header().Set("Content-Type", "text/html; charset=utf-8")
	fh.W.WriteHeader(http.StatusUnprocessableEntity)
	fh.Renderer(fh.W, fh.R, templateData.Build())
}

func (fh FormHandlerOpts[T]) errorData(form T) map[string]any {
	data := make(map[string]any, len(fh.ExtraData)+1)
	for k, v := range fh.ExtraData {
		data[k] = v
	}
	data["Form"] = form
	return data
}

// firstFieldError picks a deterministic message from a field error map.
func firstFieldError(errs map[string]string) string {
	first := ""
	for field := range errs {
		if first == "" || field < first {
			first = field
		}
	}
	return errs[first]
}
