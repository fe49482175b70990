package config

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/copyguard/internal/logging"
)

const (
	hiddenValue = "***hidden***"
	notSetValue = "NOT SET"
)

// displayValue returns the printable form of a setting. The API key is never
// shown, only whether one is set.
func (c *Config) displayValue(key string) string {
	switch key {
	case KeyDetectorURL:
		return orNotSet(c.EndpointURL)
	case KeyDetectorKey:
		if c.APIKey == "" {
			return notSetValue
		}
		return hiddenValue
	case KeyDebugMode:
		return fmt.Sprintf("%t", c.Debug)
	case KeyAnalyticsID:
		return orNotSet(c.AnalyticsID)
	case KeyRequestTimeout:
		return fmt.Sprintf("%d", c.RequestTimeoutMs)
	case KeyMaxCodeLength:
		return fmt.Sprintf("%d", c.MaxInputLength)
	case KeyNotificationDuration:
		return fmt.Sprintf("%d", c.NotificationDurationMs)
	case KeyAnimationDuration:
		return fmt.Sprintf("%d", c.AnimationDurationMs)
	case KeyRateLimitRequests:
		return fmt.Sprintf("%d", c.RateLimitRequests)
	case KeyRateLimitWindow:
		return fmt.Sprintf("%d", c.RateLimitWindowMs)
	}
	return ""
}

func orNotSet(s string) string {
	if s == "" {
		return notSetValue
	}
	return s
}

// Summary renders the configuration for humans, one setting per line, with
// the source of each value in parentheses.
func (c *Config) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s configuration:\n", c.AppName, c.AppVersion)
	for _, key := range Keys() {
		fmt.Fprintf(&sb, "  %-22s %s", key, c.displayValue(key))
		if src := c.Source(key); src != "" {
			fmt.Fprintf(&sb, " (%s)", src)
		}
		sb.WriteByte('\n')
	}
	if errs := c.Validate(); len(errs) > 0 {
		sb.WriteString("Problems:\n")
		for _, e := range errs {
			fmt.Fprintf(&sb, "  - %s\n", e.Error())
		}
	}
	return sb.String()
}

// LogSummary writes the redacted configuration to the logger at debug level.
func (c *Config) LogSummary(logger *logging.Logger) {
	if logger == nil {
		return
	}
	logger.Debug("configuration loaded",
		"app", c.AppName,
		"version", c.AppVersion,
		"detector_url", c.EndpointURL,
		"api_key_set", c.APIKey != "",
		"request_timeout_ms", c.RequestTimeoutMs,
		"max_code_length", c.MaxInputLength,
		"notification_duration_ms", c.NotificationDurationMs,
		"animation_duration_ms", c.AnimationDurationMs,
		"rate_limit_requests", c.RateLimitRequests,
		"rate_limit_window_ms", c.RateLimitWindowMs,
		"analytics_id", c.AnalyticsID,
		"valid", c.Valid(),
	)
}
