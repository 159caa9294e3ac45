// Package errors provides standardized error handling for the letterbot service.
package errors

import (
	goerrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeIntakeFormat        ErrorCode = "INTAKE_FORMAT_ERROR"
	ErrCodeVerificationFailed  ErrorCode = "VERIFICATION_FAILED"
	ErrCodeRegistrationFailed  ErrorCode = "REGISTRATION_FAILED"
	ErrCodeDeliveryFailed      ErrorCode = "DELIVERY_FAILED"
	ErrCodeAuditWriteFailed    ErrorCode = "AUDIT_WRITE_FAILED"
	ErrCodeMessageDecodeFailed ErrorCode = "MESSAGE_DECODE_FAILED"
	ErrCodeQueryFailed         ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryCancelled      ErrorCode = "QUERY_CANCELLED"
	ErrCodeInvalidMailProvider ErrorCode = "INVALID_MAIL_PROVIDER"
	ErrCodeConfigInvalid       ErrorCode = "CONFIG_INVALID"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Reason returns the short text that may be surfaced to external channels.
// Internal payloads stay in Details and are only logged.
func (e *StandardError) Reason() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// ShortReason extracts the text that may be surfaced externally from an
// error: the short message of a StandardError, or the error text otherwise.
func ShortReason(err error) string {
	var se *StandardError
	if goerrors.As(err, &se) {
		return se.Reason()
	}
	return err.Error()
}

// NewIntakeFormatError creates a non-retryable request format error.
func NewIntakeFormatError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIntakeFormat,
		Message:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewVerificationError creates a non-retryable token verification error.
// The message is deliberately generic.
func NewVerificationError() *StandardError {
	return &StandardError{
		Code:      ErrCodeVerificationFailed,
		Message:   "incorrect validation token",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRegistrationError creates a recoverable CRM registration error.
func NewRegistrationError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRegistrationFailed,
		Message:   "CRM registration failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDeliveryError creates an email delivery error. A fresh reviewer
// decision is the only retry mechanism, so the error itself is terminal.
func NewDeliveryError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDeliveryFailed,
		Message:   fmt.Sprintf("failed to send email: %s", err),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuditWriteError creates an audit log write error.
func NewAuditWriteError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuditWriteFailed,
		Message:   fmt.Sprintf("failed to write audit record: %s", err),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMessageDecodeError creates an error for a decision message that cannot
// be decoded back into a submission.
func NewMessageDecodeError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMessageDecodeFailed,
		Message:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryFailedError creates an error carrying the engine-supplied reason
// for a FAILED query execution.
func NewQueryFailedError(reason string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryFailed,
		Message:   reason,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryCancelledError creates an error for a CANCELLED query execution.
func NewQueryCancelledError() *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryCancelled,
		Message:   "query was cancelled",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidMailProviderError creates a configuration error for an
// unrecognized mail provider name.
func NewInvalidMailProviderError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidMailProvider,
		Message:   fmt.Sprintf("invalid provider: %s", provider),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigInvalidError creates a configuration validation error.
func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
