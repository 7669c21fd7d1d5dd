package errors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ProductionMode = os.Getenv("ENV") == "production" || os.Getenv("ENV") == "prod"

type DialectError struct {
	Code    string
	Message string
	cause   error
}

func (e *DialectError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *DialectError) Unwrap() error {
	return e.cause
}

func (e *DialectError) Is(target error) bool {
	if t, ok := target.(*DialectError); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	ErrInvalidPattern       = &DialectError{Code: "D1001", Message: "Invalid regular expression"}
	ErrMalformedLiteral     = &DialectError{Code: "D1002", Message: "Malformed literal"}
	ErrUnsupportedFeature   = &DialectError{Code: "D1003", Message: "Feature not supported by dialect"}
	ErrUnsupportedOperation = &DialectError{Code: "D1004", Message: "Operation not supported"}
	ErrInvalidInput         = &DialectError{Code: "D1005", Message: "Invalid input value"}

	ErrConnectionFailed = &DialectError{Code: "D2001", Message: "Database not reachable"}
	ErrTimeout          = &DialectError{Code: "D2002", Message: "Operation timeout"}
	ErrNoMetadata       = &DialectError{Code: "D2003", Message: "Database returned no metadata"}

	ErrConfig = &DialectError{Code: "D3001", Message: "Invalid configuration"}
)

func WrapDialectError(sentinel *DialectError, cause error) *DialectError {
	return &DialectError{Code: sentinel.Code, Message: sentinel.Message, cause: cause}
}

// NewMalformedLiteralError reports a value that could not be parsed as the
// requested literal kind. The value is kept out of the message in production.
func NewMalformedLiteralError(kind, value string) error {
	if ProductionMode {
		return fmt.Errorf("%w: illegal %s literal", ErrMalformedLiteral, kind)
	}
	return fmt.Errorf("%w: illegal %s literal: %q", ErrMalformedLiteral, kind, value)
}

func NewInvalidInputError(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func NewUnsupportedFeatureError(dialect, feature string) error {
	return fmt.Errorf("%w: %s: %s", ErrUnsupportedFeature, dialect, feature)
}

func NewUnsupportedOperationError(op string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedOperation, op)
}

func NewConfigError(msg string) error {
	return fmt.Errorf("%w: %s", ErrConfig, msg)
}

func IsMalformedLiteral(err error) bool {
	return errors.Is(err, ErrMalformedLiteral)
}

func IsUnsupportedFeature(err error) bool {
	return errors.Is(err, ErrUnsupportedFeature)
}

func IsUnsupportedOperation(err error) bool {
	return errors.Is(err, ErrUnsupportedOperation)
}

func IsConnectionFailed(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}

func isNoRows(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "no rows") ||
		strings.Contains(errStr, "ErrNoRows")
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "timed out") ||
		strings.Contains(errStr, "deadline exceeded")
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "bad connection")
}

// MapDriverError classifies an error raised while talking to a driver during
// metadata probing. Anything unrecognised is reported as a connection failure.
func MapDriverError(err error) error {
	if err == nil {
		return nil
	}

	var de *DialectError
	if errors.As(err, &de) {
		return err
	}

	if isNoRows(err) {
		return WrapDialectError(ErrNoMetadata, err)
	}

	if isTimeout(err) {
		return WrapDialectError(ErrTimeout, err)
	}

	if isConnectionError(err) {
		return WrapDialectError(ErrConnectionFailed, err)
	}

	return WrapDialectError(ErrConnectionFailed, err)
}

func SanitizeError(err error) error {
	if err == nil {
		return nil
	}

	if !ProductionMode {
		return err
	}

	errMsg := err.Error()
	errMsg = sanitizeCredentials(errMsg)

	return fmt.Errorf("%s", errMsg)
}

func sanitizeCredentials(msg string) string {
	patterns := []string{"password", "user=", "@tcp(", "://"}
	for _, pattern := range patterns {
		if strings.Contains(strings.ToLower(msg), pattern) {
			return "database operation failed"
		}
	}
	return msg
}
