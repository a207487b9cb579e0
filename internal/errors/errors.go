package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/zsiec/timecode/pkg/rtpclock"
	"github.com/zsiec/timecode/pkg/splice"
	"github.com/zsiec/timecode/pkg/timecode"
)

// ErrorType is the broad class of an error, reported to clients.
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound    ErrorType = "NOT_FOUND"
	ErrorTypeInternal    ErrorType = "INTERNAL_ERROR"
	ErrorTypeTimeout     ErrorType = "TIMEOUT"
	ErrorTypeRateLimit   ErrorType = "RATE_LIMIT"
	ErrorTypeServiceDown ErrorType = "SERVICE_DOWN"
)

// Codes refine VALIDATION_ERROR for the timecode API.
const (
	CodeInvalidRate     = "INVALID_RATE"
	CodeInvalidTimecode = "INVALID_TIMECODE"
	CodeInvalidTimezone = "INVALID_TIMEZONE"
	CodeInvalidDate     = "INVALID_DATE"
	CodeInvalidPacket   = "INVALID_PACKET"
	CodeInvalidRequest  = "INVALID_REQUEST"
)

// AppError is an error with the information needed to answer an HTTP
// request with it.
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	HTTPStatus int                    `json:"-"`
	Err        error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails sets details and returns e.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCode sets the error code and returns e.
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// New creates an AppError.
func New(errType ErrorType, message string, httpStatus int) *AppError {
	return &AppError{Type: errType, Message: message, HTTPStatus: httpStatus}
}

// Wrap creates an AppError caused by err.
func Wrap(err error, errType ErrorType, message string, httpStatus int) *AppError {
	return &AppError{Type: errType, Message: message, HTTPStatus: httpStatus, Err: err}
}

func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message, http.StatusBadRequest)
}

func NewNotFoundError(resource string) *AppError {
	return New(ErrorTypeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewInternalError(message string) *AppError {
	return New(ErrorTypeInternal, message, http.StatusInternalServerError)
}

func WrapInternalError(err error, message string) *AppError {
	return Wrap(err, ErrorTypeInternal, message, http.StatusInternalServerError)
}

func NewTimeoutError(message string) *AppError {
	return New(ErrorTypeTimeout, message, http.StatusRequestTimeout)
}

func NewRateLimitError(message string) *AppError {
	return New(ErrorTypeRateLimit, message, http.StatusTooManyRequests)
}

func NewServiceDownError(service string) *AppError {
	return New(ErrorTypeServiceDown, fmt.Sprintf("%s service is currently unavailable", service), http.StatusServiceUnavailable)
}

// NewInvalidRequestError reports a request body that could not be decoded
// or is missing a field.
func NewInvalidRequestError(message string, err error) *AppError {
	return Wrap(err, ErrorTypeValidation, message, http.StatusBadRequest).WithCode(CodeInvalidRequest)
}

// FromParseError maps the parse errors of the timecode packages onto a
// validation AppError with a specific code. field names the request field
// the input came from. Errors it does not recognise become internal
// errors.
func FromParseError(err error, field string) *AppError {
	var code string
	switch {
	case stderrors.Is(err, timecode.ErrInvalidRate), stderrors.Is(err, splice.ErrEmptyFramerate):
		code = CodeInvalidRate
	case stderrors.Is(err, timecode.ErrInvalidTimecode):
		code = CodeInvalidTimecode
	case stderrors.Is(err, timecode.ErrInvalidTimezone):
		code = CodeInvalidTimezone
	case stderrors.Is(err, timecode.ErrInvalidDate):
		code = CodeInvalidDate
	case stderrors.Is(err, rtpclock.ErrInvalidPacket):
		code = CodeInvalidPacket
	default:
		return WrapInternalError(err, "An unexpected error occurred")
	}

	return Wrap(err, ErrorTypeValidation, err.Error(), http.StatusBadRequest).
		WithCode(code).
		WithDetails(map[string]interface{}{"field": field})
}

// GetAppError extracts an AppError from err's chain.
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// IsAppError reports whether err's chain holds an AppError.
func IsAppError(err error) bool {
	_, ok := GetAppError(err)
	return ok
}
