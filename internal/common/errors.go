package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error kinds the extraction boundary distinguishes between.
var (
	// ErrUnsupportedFormat means the declared MIME type has no dispatch rule.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrAcquisitionFailed means OCR, rasterization, or document reading failed.
	ErrAcquisitionFailed = errors.New("text acquisition failed")
	// ErrEngineUnavailable means the pattern table or tagger failed to initialize.
	// This is fatal at process start, never a per-request error.
	ErrEngineUnavailable = errors.New("extraction engine unavailable")
	// ErrInvalidInput covers malformed requests (missing file, oversized upload).
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// NewAppError builds an AppError with the given code, message, and cause.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// CategorizeMessage converts an internal error into a caller-safe message.
// Raw error text never crosses the boundary.
func CategorizeMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported file format"
	case errors.Is(err, ErrAcquisitionFailed):
		return "failed to extract text from document"
	case errors.Is(err, ErrInvalidInput):
		return "invalid request"
	default:
		return "internal error while processing document"
	}
}
