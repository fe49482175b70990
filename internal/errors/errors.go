// Package errors provides centralized error definitions and error handling utilities
// for CopyGuard. It defines the error taxonomy of a detection run, error constructors
// with context wrapping, and error classification helpers.
//
// # Error Types
//
// Every failure of a detection run falls into exactly one kind:
//   - ConfigurationError: missing or invalid endpoint or API key; the request is never sent
//   - ValidationError: unusable input (empty, too long); fails before any I/O
//   - TimeoutError: the request was aborted after its deadline
//   - NetworkError: no response could be obtained
//   - ProtocolError: non-success status, unparseable body, or missing expected field
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewProtocolError("invalid response format from server").WithStatus(200, "200 OK")
//	err := errors.NewTimeoutError("detect", 30*time.Second).WithCause(ctx.Err())
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrTimeout) { ... }
//
//	var protoErr *errors.ProtocolError
//	if errors.As(err, &protoErr) { ... }
//
//	switch errors.Classify(err) {
//	case errors.KindTimeout:
//	    ...
//	}
//
// # Error Classification
//
// Errors can be classified by kind, severity and behavior:
//   - Retryable: transient errors that may succeed on retry (timeouts, network)
//   - UserFacing: errors whose message is safe to display verbatim
//   - Severity: Debug, Info, Warning, Error, Critical
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrConfigurationMissing indicates that the endpoint or API key is missing or invalid.
	ErrConfigurationMissing = New("configuration missing")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrEmptyInput indicates that there was nothing to analyze.
	ErrEmptyInput = New("nothing to analyze")
	// ErrInputTooLong indicates that the input exceeds the configured maximum length.
	ErrInputTooLong = New("input too long")
	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = New("operation timed out")
	// ErrNetwork indicates that no response could be obtained.
	ErrNetwork = New("network failure")
	// ErrProtocol indicates that the response could not be used.
	ErrProtocol = New("protocol violation")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// CopyGuardError is the base interface for all CopyGuard errors.
// It extends the standard error interface with additional methods for
// error handling and classification.
type CopyGuardError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Message returns the message without the cause chain.
func (e *baseError) Message() string {
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// ConfigurationError
// -----------------------------------------------------------------------------

// ConfigurationError represents a configuration that cannot be used to send requests.
//
// Example:
//
//	err := errors.NewConfigurationError([]string{"DETECTOR_KEY is required"})
//	fmt.Println(err) // "configuration error: DETECTOR_KEY is required"
type ConfigurationError struct {
	baseError
	Violations []string
}

// NewConfigurationError creates a new ConfigurationError from a list of violations.
func NewConfigurationError(violations []string) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			message:    strings.Join(violations, "; "),
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
		Violations: violations,
	}
}

// Error returns the formatted error message.
func (e *ConfigurationError) Error() string {
	if e.message == "" {
		return "configuration error"
	}
	return "configuration error: " + e.message
}

// Is checks if this error matches the target.
func (e *ConfigurationError) Is(target error) bool {
	if _, ok := target.(*ConfigurationError); ok {
		return true
	}
	if target == ErrConfigurationMissing {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// ValidationError
// -----------------------------------------------------------------------------

// ValidationError represents invalid input.
//
// Example:
//
//	err := errors.NewValidationError("code exceeds maximum length").WithField("code").WithCause(errors.ErrInputTooLong)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if target == ErrInvalidInput {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// TimeoutError
// -----------------------------------------------------------------------------

// TimeoutError represents a request aborted after its deadline.
//
// Example:
//
//	err := errors.NewTimeoutError("detect", 30*time.Second)
//	fmt.Println(err) // "timeout error: detect (timeout: 30s)"
type TimeoutError struct {
	baseError
	Operation string
	Duration  time.Duration
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(operation string, duration time.Duration) *TimeoutError {
	return &TimeoutError{
		baseError: baseError{
			message:    operation,
			severity:   SeverityWarning,
			retryable:  true,
			userFacing: true,
		},
		Operation: operation,
		Duration:  duration,
	}
}

// WithCause adds a cause to the error.
func (e *TimeoutError) WithCause(cause error) *TimeoutError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *TimeoutError) Error() string {
	base := fmt.Sprintf("timeout error: %s (timeout: %s)", e.Operation, e.Duration)
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", base, e.cause)
	}
	return base
}

// Is checks if this error matches the target.
func (e *TimeoutError) Is(target error) bool {
	if _, ok := target.(*TimeoutError); ok {
		return true
	}
	if target == ErrTimeout {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// NetworkError
// -----------------------------------------------------------------------------

// NetworkError represents a request for which no response was received.
type NetworkError struct {
	baseError
	Endpoint string
}

// NewNetworkError creates a new NetworkError.
func NewNetworkError(endpoint string, cause error) *NetworkError {
	return &NetworkError{
		baseError: baseError{
			message:    "no response received",
			cause:      cause,
			severity:   SeverityError,
			retryable:  true,
			userFacing: false,
		},
		Endpoint: endpoint,
	}
}

// Error returns the formatted error message.
func (e *NetworkError) Error() string {
	prefix := "network error"
	if e.Endpoint != "" {
		prefix = fmt.Sprintf("network error [endpoint=%s]", e.Endpoint)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *NetworkError) Is(target error) bool {
	if _, ok := target.(*NetworkError); ok {
		return true
	}
	if target == ErrNetwork {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// ProtocolError
// -----------------------------------------------------------------------------

// ProtocolError represents a response that was received but cannot be used.
// Its message is shown to the user verbatim.
//
// Example:
//
//	err := errors.NewProtocolError("internal failure").WithStatus(500, "500 Internal Server Error")
//	fmt.Println(err.Message()) // "internal failure"
type ProtocolError struct {
	baseError
	StatusCode int
	Status     string
}

// NewProtocolError creates a new ProtocolError.
func NewProtocolError(message string) *ProtocolError {
	return &ProtocolError{
		baseError: baseError{
			message:    message,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithStatus records the HTTP status of the offending response.
func (e *ProtocolError) WithStatus(code int, status string) *ProtocolError {
	e.StatusCode = code
	e.Status = status
	return e
}

// WithCause adds a cause to the error.
func (e *ProtocolError) WithCause(cause error) *ProtocolError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ProtocolError) Error() string {
	prefix := "protocol error"
	if e.StatusCode != 0 {
		prefix = fmt.Sprintf("protocol error [status=%d]", e.StatusCode)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ProtocolError) Is(target error) bool {
	if _, ok := target.(*ProtocolError); ok {
		return true
	}
	if target == ErrProtocol {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// Kind identifies the taxonomy class of an error.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindValidation
	KindTimeout
	KindNetwork
	KindProtocol
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindValidation:
		return "validation"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// Classify returns the taxonomy class of err. Timeouts are checked before
// network failures so that a deadline wrapped in a transport error still
// classifies as a timeout.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var (
		configErr     *ConfigurationError
		validationErr *ValidationError
		timeoutErr    *TimeoutError
		networkErr    *NetworkError
		protocolErr   *ProtocolError
	)

	switch {
	case As(err, &configErr):
		return KindConfiguration
	case As(err, &validationErr):
		return KindValidation
	case As(err, &timeoutErr):
		return KindTimeout
	case As(err, &networkErr):
		return KindNetwork
	case As(err, &protocolErr):
		return KindProtocol
	default:
		return KindUnknown
	}
}

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var cgErr CopyGuardError
	if As(err, &cgErr) {
		return cgErr.IsRetryable()
	}

	return Is(err, ErrTimeout)
}

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var cgErr CopyGuardError
	if As(err, &cgErr) {
		return cgErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement CopyGuardError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var cgErr CopyGuardError
	if As(err, &cgErr) {
		return cgErr.Severity()
	}

	return SeverityError
}

// Messages shown to users for failures whose own text is not user-facing.
const (
	MessageTimeout    = "Request timeout - please try again"
	MessageNetwork    = "Network error - please check your connection"
	MessageUnexpected = "An unexpected error occurred"
)

// UserMessage returns the text to display for err. Timeouts and network
// failures get fixed messages; user-facing errors show their own message;
// anything else falls back to MessageUnexpected.
func UserMessage(err error) string {
	switch Classify(err) {
	case KindTimeout:
		return MessageTimeout
	case KindNetwork:
		return MessageNetwork
	}

	var msgErr interface{ Message() string }
	if IsUserFacing(err) && As(err, &msgErr) && msgErr.Message() != "" {
		return msgErr.Message()
	}
	return MessageUnexpected
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
// Unlike fmt.Errorf with %w, this returns nil for a nil error.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to open store")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to read %s", path)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
