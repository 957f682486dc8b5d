package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/marcos-nsantos/photo-locations/internal/domain"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func BadRequest(message string) *AppError {
	return &AppError{
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func InvalidDateRange(err error) *AppError {
	return &AppError{
		Code:       "INVALID_DATE_RANGE",
		Message:    err.Error(),
		StatusCode: http.StatusBadRequest,
		Err:        err,
	}
}

func InvalidManifest(err error) *AppError {
	return &AppError{
		Code:       "INVALID_MANIFEST",
		Message:    err.Error(),
		StatusCode: http.StatusUnprocessableEntity,
		Err:        err,
	}
}

func PayloadTooLarge(limit int64) *AppError {
	return &AppError{
		Code:       "PAYLOAD_TOO_LARGE",
		Message:    fmt.Sprintf("manifest exceeds %d bytes", limit),
		StatusCode: http.StatusRequestEntityTooLarge,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "an internal error occurred",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// FromDomain maps pipeline errors to their HTTP representation. Unknown
// errors become internal errors.
func FromDomain(err error) *AppError {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, domain.ErrInvalidRange), errors.Is(err, domain.ErrMalformedDate):
		return InvalidDateRange(err)
	case errors.Is(err, domain.ErrInvalidThreshold):
		return New("INVALID_THRESHOLD", err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrEmptyManifest), errors.Is(err, domain.ErrInvalidManifest):
		return InvalidManifest(err)
	default:
		return Internal(err)
	}
}

func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
