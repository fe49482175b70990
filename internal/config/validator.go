package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Iron-Ham/copyguard/internal/errors"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The setting name (e.g., "DETECTOR_URL")
	Value   any    // The invalid value; nil when it must not be shown
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Messages returns each violation as its own string.
func (e ValidationErrors) Messages() []string {
	out := make([]string, len(e))
	for i, err := range e {
		out[i] = err.Error()
	}
	return out
}

// Fields returns the setting names that have at least one violation.
func (e ValidationErrors) Fields() []string {
	seen := make(map[string]bool)
	var out []string
	for _, err := range e {
		if !seen[err.Field] {
			seen[err.Field] = true
			out = append(out, err.Field)
		}
	}
	return out
}

// Validate checks the configuration and returns every violation found.
// It never stops at the first problem.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(c.EndpointURL) == "" {
		errs = append(errs, ValidationError{Field: KeyDetectorURL, Message: "is required"})
	}
	if strings.TrimSpace(c.APIKey) == "" {
		// The value is never echoed back.
		errs = append(errs, ValidationError{Field: KeyDetectorKey, Message: "is required"})
	}
	if !isAbsoluteURL(c.EndpointURL) {
		errs = append(errs, ValidationError{
			Field:   KeyDetectorURL,
			Value:   c.EndpointURL,
			Message: "must be a valid URL",
		})
	}
	if c.RequestTimeoutMs <= 0 {
		errs = append(errs, ValidationError{
			Field:   KeyRequestTimeout,
			Value:   c.RequestTimeoutMs,
			Message: "must be positive",
		})
	}
	if c.MaxInputLength <= 0 {
		errs = append(errs, ValidationError{
			Field:   KeyMaxCodeLength,
			Value:   c.MaxInputLength,
			Message: "must be positive",
		})
	}
	if c.NotificationDurationMs <= 0 {
		errs = append(errs, ValidationError{
			Field:   KeyNotificationDuration,
			Value:   c.NotificationDurationMs,
			Message: "must be positive",
		})
	}
	if c.AnimationDurationMs < 0 {
		errs = append(errs, ValidationError{
			Field:   KeyAnimationDuration,
			Value:   c.AnimationDurationMs,
			Message: "must not be negative",
		})
	}

	errs = append(errs, c.problems...)
	return errs
}

// Valid reports whether Validate finds no violations.
func (c *Config) Valid() bool {
	return len(c.Validate()) == 0
}

// Ready returns a ConfigurationError when the settings needed to talk to the
// detection service (URL and API key) are missing or malformed. Other
// violations do not block a request.
func (c *Config) Ready() error {
	var violations []string
	for _, v := range c.Validate() {
		if v.Field == KeyDetectorURL || v.Field == KeyDetectorKey {
			violations = append(violations, v.Error())
		}
	}
	if len(violations) == 0 {
		return nil
	}
	return errors.NewConfigurationError(violations)
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
