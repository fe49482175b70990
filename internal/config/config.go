// Package config resolves the effective CopyGuard configuration.
//
// Every setting is looked up by name in an ordered list of sources and the
// first non-empty value wins:
//
//  1. the process environment (DETECTOR_URL, DETECTOR_KEY, ...)
//  2. the injected settings file handed to the process at launch
//  3. the persistent per-user store (COPYGUARD_<NAME> keys)
//  4. the built-in defaults
//
// The result is an immutable *Config built once per process and passed
// explicitly to the components that need it.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Iron-Ham/copyguard/internal/store"
)

// Setting names. The same names are used as environment variables, as keys
// of the injected settings file, and (namespaced) as store keys.
const (
	KeyDetectorURL          = "DETECTOR_URL"
	KeyDetectorKey          = "DETECTOR_KEY"
	KeyDebugMode            = "DEBUG_MODE"
	KeyAnalyticsID          = "ANALYTICS_ID"
	KeyRequestTimeout       = "REQUEST_TIMEOUT"
	KeyMaxCodeLength        = "MAX_CODE_LENGTH"
	KeyNotificationDuration = "NOTIFICATION_DURATION"
	KeyAnimationDuration    = "ANIMATION_DURATION"
	KeyRateLimitRequests    = "RATE_LIMIT_REQUESTS"
	KeyRateLimitWindow      = "RATE_LIMIT_WINDOW"
)

// AppName is the product name shown in the UI and sent in the user agent.
const AppName = "CopyGuard"

// Version is the application version. Overridden at build time with
// -ldflags "-X github.com/Iron-Ham/copyguard/internal/config.Version=...".
var Version = "1.0.0"

// Keys returns every setting name in resolution order.
func Keys() []string {
	return []string{
		KeyDetectorURL,
		KeyDetectorKey,
		KeyDebugMode,
		KeyAnalyticsID,
		KeyRequestTimeout,
		KeyMaxCodeLength,
		KeyNotificationDuration,
		KeyAnimationDuration,
		KeyRateLimitRequests,
		KeyRateLimitWindow,
	}
}

// IsKnownKey reports whether name is a recognised setting.
func IsKnownKey(name string) bool {
	for _, k := range Keys() {
		if k == name {
			return true
		}
	}
	return false
}

// Config is the effective configuration. Treat it as read-only once Resolve
// has returned it.
type Config struct {
	// EndpointURL is the Detection API URL requests are POSTed to.
	EndpointURL string
	// APIKey is sent in the x-api-key header. Never log or print it.
	APIKey string
	// RequestTimeoutMs aborts an in-flight request after this many milliseconds.
	RequestTimeoutMs int
	// MaxInputLength is the client-side courtesy limit on input length, in characters.
	MaxInputLength int
	// Debug enables the configuration dump and debug-level logging.
	Debug bool

	AppName    string
	AppVersion string

	// AnalyticsID and the rate-limit settings are resolved and displayed but
	// not used by the request logic.
	AnalyticsID       string
	RateLimitRequests int
	RateLimitWindowMs int

	// NotificationDurationMs is the total lifetime of a notification.
	NotificationDurationMs int
	// AnimationDurationMs is the slide-out time before a notification is removed.
	AnimationDurationMs int

	// sources records which source supplied each setting.
	sources map[string]string
	// problems holds violations found while coercing raw values.
	problems ValidationErrors
}

// Default returns a Config populated from the built-in defaults only.
func Default() *Config {
	return NewResolver().Resolve()
}

// Source returns the name of the source that supplied the setting
// ("env", "settings", "store", "default"), or "" if unknown.
func (c *Config) Source(key string) string {
	if c.sources == nil {
		return ""
	}
	return c.sources[key]
}

// RequestTimeout returns the request timeout as a time.Duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// NotificationDuration returns the notification lifetime as a time.Duration.
func (c *Config) NotificationDuration() time.Duration {
	return time.Duration(c.NotificationDurationMs) * time.Millisecond
}

// AnimationDuration returns the notification slide-out time as a time.Duration.
func (c *Config) AnimationDuration() time.Duration {
	return time.Duration(c.AnimationDurationMs) * time.Millisecond
}

// RateLimitWindow returns the rate-limit window as a time.Duration.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowMs) * time.Millisecond
}

// ConfigDir returns the path to the user's CopyGuard config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "copyguard")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".copyguard"
	}
	return filepath.Join(home, ".config", "copyguard")
}

// StorePath returns the path of the persistent override store.
func StorePath() string {
	return filepath.Join(ConfigDir(), store.FileName)
}

// LogDir returns the default directory for log files.
func LogDir() string {
	return filepath.Join(ConfigDir(), "logs")
}
