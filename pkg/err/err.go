package errprocess

import (
	"errors"
	"net/http"

	"engagement_service/pkg/logger"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// Kind classify an error for the HTTP edge
type Kind int

const (
	// KindInternal persistence or unexpected failure
	KindInternal Kind = iota
	// KindValidation malformed or missing input
	KindValidation
	// KindNotFound referenced entity absent
	KindNotFound
	// KindPermissionDenied acting user is not allowed
	KindPermissionDenied
	// KindUnauthorized no usable identity
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindPermissionDenied:
		return "permission_denied"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Error is the typed failure returned by every use case
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap expose the underlying store error
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode http status of the error kind
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return &Error{Kind: KindInternal, Message: errMsg}
}

// Validation build a validation error
func Validation(msg string) error {
	logger.Log.Debug("validation failed", zap.String("reason", msg))
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFound build a not found error
func NotFound(msg string) error {
	logger.Log.Debug("entity not found", zap.String("reason", msg))
	return &Error{Kind: KindNotFound, Message: msg}
}

// PermissionDenied build a permission error
func PermissionDenied(msg string) error {
	logger.Log.Info("permission denied", zap.String("reason", msg))
	return &Error{Kind: KindPermissionDenied, Message: msg}
}

// Unauthorized build an unauthorized error
func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// Internal wrap a store error; store 沒回結果 (no error) 時用 Set
func Internal(msg string, err error) error {
	if err != nil {
		err = pkgerrors.WithStack(err)
		logger.Log.Error(msg, zap.Error(err))
	} else {
		logger.Log.Error(msg)
	}
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf classify any error, unknown errors are internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// StatusCode http status for any error
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode()
	}
	return http.StatusInternalServerError
}

// Message human readable message without the wrapped store detail
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Is report whether err is of the given kind
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
