package errors

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// StatusError is implemented by errors that carry an upstream HTTP status
// and, optionally, a human-readable message extracted from the response body.
type StatusError interface {
	error
	HTTPStatus() int
	ServerMessage() string
}

// MapAPIError converts an error returned by the remote API client into an AppError.
// The server-provided message is preserved as the AppError message when present.
// Returns the original error when it is already an AppError.
func MapAPIError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(err, ErrCodeTimeout, "request timed out")
	}
	if errors.Is(err, context.Canceled) {
		return Wrap(err, ErrCodeCanceled, "request canceled")
	}

	var se StatusError
	if !errors.As(err, &se) {
		return Wrap(err, ErrCodeUnavailable, "")
	}

	return Wrap(err, codeForStatus(se.HTTPStatus()), strings.TrimSpace(se.ServerMessage()))
}

func codeForStatus(status int) ErrorCode {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return ErrCodeValidation
	case status == http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case status == http.StatusForbidden:
		return ErrCodeForbidden
	case status == http.StatusNotFound:
		return ErrCodeNotFound
	case status == http.StatusConflict:
		return ErrCodeConflict
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return ErrCodeTimeout
	case status >= http.StatusInternalServerError:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}

// UserMessage returns the message carried by err when it is meant for end users
// (local validation or a server-provided message), otherwise fallback.
func UserMessage(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && strings.TrimSpace(appErr.Message) != "" {
		switch appErr.Code {
		case ErrCodeTimeout, ErrCodeCanceled, ErrCodeInternal:
			return fallback
		default:
			return appErr.Message
		}
	}
	return fallback
}
