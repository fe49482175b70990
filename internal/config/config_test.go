package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Iron-Ham/copyguard/internal/errors"
	"github.com/Iron-Ham/copyguard/internal/logging"
	"github.com/Iron-Ham/copyguard/internal/store"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.EndpointURL != "https://ey3x589rgd.execute-api.us-east-1.amazonaws.com/detect" {
		t.Errorf("EndpointURL = %q", cfg.EndpointURL)
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.APIKey)
	}
	if cfg.RequestTimeoutMs != 30000 {
		t.Errorf("RequestTimeoutMs = %d, want 30000", cfg.RequestTimeoutMs)
	}
	if cfg.MaxInputLength != 100000 {
		t.Errorf("MaxInputLength = %d, want 100000", cfg.MaxInputLength)
	}
	if cfg.NotificationDurationMs != 5000 {
		t.Errorf("NotificationDurationMs = %d, want 5000", cfg.NotificationDurationMs)
	}
	if cfg.AnimationDurationMs != 300 {
		t.Errorf("AnimationDurationMs = %d, want 300", cfg.AnimationDurationMs)
	}
	if cfg.RateLimitRequests != 10 || cfg.RateLimitWindowMs != 60000 {
		t.Errorf("rate limit = %d/%d", cfg.RateLimitRequests, cfg.RateLimitWindowMs)
	}
	if cfg.Debug {
		t.Error("Debug = true, want false")
	}
	if cfg.AppName != AppName || cfg.AppVersion != Version {
		t.Errorf("app = %s %s", cfg.AppName, cfg.AppVersion)
	}
	if cfg.Source(KeyDetectorURL) != SourceDefault {
		t.Errorf("Source(DETECTOR_URL) = %q, want default", cfg.Source(KeyDetectorURL))
	}
}

func TestResolve_Priority(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), store.FileName))
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	st.Set(KeyDetectorURL, "https://store.example.com/detect")
	st.Set(KeyDetectorKey, "store-key")
	st.Set(KeyRequestTimeout, "1000")
	st.Set(KeyMaxCodeLength, "42")

	settings := SettingsSourceFrom(map[string]any{
		KeyDetectorURL:    "https://settings.example.com/detect",
		KeyDetectorKey:    "settings-key",
		KeyRequestTimeout: 2000,
	})
	env := EnvSourceFrom(map[string]string{
		KeyDetectorURL: "https://env.example.com/detect",
	})

	cfg := NewResolver(env, settings, NewStoreSource(st)).Resolve()

	tests := []struct {
		key        string
		got        any
		want       any
		wantSource string
	}{
		{KeyDetectorURL, cfg.EndpointURL, "https://env.example.com/detect", SourceEnv},
		{KeyDetectorKey, cfg.APIKey, "settings-key", SourceSettings},
		{KeyRequestTimeout, cfg.RequestTimeoutMs, 2000, SourceSettings},
		{KeyMaxCodeLength, cfg.MaxInputLength, 42, SourceStore},
		{KeyNotificationDuration, cfg.NotificationDurationMs, 5000, SourceDefault},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.key, tt.got, tt.want)
			}
			if got := cfg.Source(tt.key); got != tt.wantSource {
				t.Errorf("Source(%s) = %q, want %q", tt.key, got, tt.wantSource)
			}
		})
	}
}

func TestResolve_EmptyValuesFallThrough(t *testing.T) {
	env := EnvSourceFrom(map[string]string{
		KeyDetectorKey:    "   ",
		KeyRequestTimeout: "",
	})
	settings := SettingsSourceFrom(map[string]any{
		KeyDetectorKey: "from-settings",
	})

	cfg := NewResolver(env, settings).Resolve()

	if cfg.APIKey != "from-settings" {
		t.Errorf("APIKey = %q, want from-settings", cfg.APIKey)
	}
	if cfg.RequestTimeoutMs != 30000 {
		t.Errorf("RequestTimeoutMs = %d, want default 30000", cfg.RequestTimeoutMs)
	}
}

func TestResolve_TrimsValues(t *testing.T) {
	env := EnvSourceFrom(map[string]string{
		KeyDetectorURL: "  https://x.example.com/detect \n",
		KeyDebugMode:   " true ",
	})
	cfg := NewResolver(env).Resolve()
	if cfg.EndpointURL != "https://x.example.com/detect" {
		t.Errorf("EndpointURL = %q", cfg.EndpointURL)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
}

func TestResolve_CoercionFailure(t *testing.T) {
	env := EnvSourceFrom(map[string]string{
		KeyRequestTimeout: "soon",
		KeyDebugMode:      "maybe",
		KeyDetectorKey:    "k",
	})
	cfg := NewResolver(env).Resolve()

	if cfg.RequestTimeoutMs != 30000 {
		t.Errorf("RequestTimeoutMs = %d, want default 30000", cfg.RequestTimeoutMs)
	}
	if cfg.Debug {
		t.Error("Debug = true, want false")
	}

	errs := cfg.Validate()
	fields := strings.Join(errs.Fields(), ",")
	if !strings.Contains(fields, KeyRequestTimeout) || !strings.Contains(fields, KeyDebugMode) {
		t.Errorf("Validate() fields = %s, want REQUEST_TIMEOUT and DEBUG_MODE", fields)
	}
	// Coercion problems alone do not block requests.
	if err := cfg.Ready(); err != nil {
		t.Errorf("Ready() = %v, want nil", err)
	}
}

func TestNewSettingsSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "DETECTOR_KEY: file-key\nenv:\n  REQUEST_TIMEOUT: 1500\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	src, err := NewSettingsSource(path)
	if err != nil {
		t.Fatalf("NewSettingsSource() error = %v", err)
	}
	if src.Path() != path {
		t.Errorf("Path() = %q, want %q", src.Path(), path)
	}

	if v, ok := src.Lookup(KeyDetectorKey); !ok || v != "file-key" {
		t.Errorf("Lookup(DETECTOR_KEY) = %q, %v", v, ok)
	}
	if v, ok := src.Lookup(KeyRequestTimeout); !ok || v != "1500" {
		t.Errorf("Lookup(REQUEST_TIMEOUT) = %q, %v", v, ok)
	}
	if _, ok := src.Lookup(KeyAnalyticsID); ok {
		t.Error("Lookup(ANALYTICS_ID) found a value, want none")
	}
}

func TestNewSettingsSource_MissingFile(t *testing.T) {
	if _, err := NewSettingsSource(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("NewSettingsSource() error = nil, want error")
	}
}

func TestNewEnvSource(t *testing.T) {
	t.Setenv(KeyAnalyticsID, "G-123")
	src := NewEnvSource()
	if v, ok := src.Lookup(KeyAnalyticsID); !ok || v != "G-123" {
		t.Errorf("Lookup(ANALYTICS_ID) = %q, %v", v, ok)
	}
}

func TestStoreSource_NilStore(t *testing.T) {
	src := NewStoreSource(nil)
	if _, ok := src.Lookup(KeyDetectorURL); ok {
		t.Error("Lookup() on nil store found a value")
	}
}

func TestResolve_OutOfRangeFallsBackToDefault(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		got      func(*Config) int
		want     int
		fellBack bool
	}{
		{"zero timeout", KeyRequestTimeout, "0", func(c *Config) int { return c.RequestTimeoutMs }, 30000, true},
		{"negative timeout", KeyRequestTimeout, "-5", func(c *Config) int { return c.RequestTimeoutMs }, 30000, true},
		{"zero max length", KeyMaxCodeLength, "0", func(c *Config) int { return c.MaxInputLength }, 100000, true},
		{"zero notification", KeyNotificationDuration, "0", func(c *Config) int { return c.NotificationDurationMs }, 5000, true},
		{"negative animation", KeyAnimationDuration, "-1", func(c *Config) int { return c.AnimationDurationMs }, 300, true},
		{"zero animation allowed", KeyAnimationDuration, "0", func(c *Config) int { return c.AnimationDurationMs }, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := EnvSourceFrom(map[string]string{tt.key: tt.value})
			cfg := NewResolver(env).Resolve()

			if got := tt.got(cfg); got != tt.want {
				t.Errorf("%s = %d, want %d", tt.key, got, tt.want)
			}

			flagged := strings.Contains(strings.Join(cfg.Validate().Fields(), ","), tt.key)
			if flagged != tt.fellBack {
				t.Errorf("Validate() flags %s = %v, want %v", tt.key, flagged, tt.fellBack)
			}
			wantSource := SourceEnv
			if tt.fellBack {
				wantSource = SourceDefault
			}
			if src := cfg.Source(tt.key); src != wantSource {
				t.Errorf("Source(%s) = %q, want %q", tt.key, src, wantSource)
			}
		})
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	cfg := &Config{
		EndpointURL:            "",
		APIKey:                 "",
		RequestTimeoutMs:       0,
		MaxInputLength:         -1,
		NotificationDurationMs: 5000,
	}

	errs := cfg.Validate()
	msgs := errs.Messages()

	wantContains := []string{
		"DETECTOR_URL is required",
		"DETECTOR_KEY is required",
		"DETECTOR_URL must be a valid URL",
		"REQUEST_TIMEOUT must be positive",
		"MAX_CODE_LENGTH must be positive",
	}
	joined := strings.Join(msgs, "\n")
	for _, want := range wantContains {
		if !strings.Contains(joined, want) {
			t.Errorf("Validate() missing %q in:\n%s", want, joined)
		}
	}
	if cfg.Valid() {
		t.Error("Valid() = true, want false")
	}
}

func TestValidate_InvalidURL(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		valid bool
	}{
		{"https", "https://api.example.com/detect", true},
		{"http with port", "http://localhost:8080/detect", true},
		{"no scheme", "api.example.com/detect", false},
		{"garbage", "not a url", false},
		{"scheme only", "https://", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.EndpointURL = tt.url
			cfg.APIKey = "k"
			err := cfg.Ready()
			if tt.valid && err != nil {
				t.Errorf("Ready() = %v, want nil", err)
			}
			if !tt.valid && err == nil {
				t.Error("Ready() = nil, want error")
			}
		})
	}
}

func TestReady(t *testing.T) {
	cfg := Default()
	err := cfg.Ready()
	if err == nil {
		t.Fatal("Ready() = nil without API key, want error")
	}
	if !errors.Is(err, errors.ErrConfigurationMissing) {
		t.Errorf("Ready() error %v is not ErrConfigurationMissing", err)
	}
	if errors.Classify(err) != errors.KindConfiguration {
		t.Errorf("Classify() = %v, want configuration", errors.Classify(err))
	}

	cfg.APIKey = "secret"
	if err := cfg.Ready(); err != nil {
		t.Errorf("Ready() = %v, want nil", err)
	}
}

func TestValidationError_Error(t *testing.T) {
	if got := (ValidationError{Field: "A", Message: "is required"}).Error(); got != "A is required" {
		t.Errorf("Error() = %q", got)
	}
	if got := (ValidationError{Field: "B", Value: 3, Message: "is bad"}).Error(); got != "B is bad (got: 3)" {
		t.Errorf("Error() = %q", got)
	}
	errs := ValidationErrors{{Field: "A", Message: "x"}, {Field: "B", Message: "y"}}
	if !strings.HasPrefix(errs.Error(), "2 validation errors:") {
		t.Errorf("ValidationErrors.Error() = %q", errs.Error())
	}
}

func TestSummary_NeverContainsKey(t *testing.T) {
	const secret = "sk-very-secret-value"
	env := EnvSourceFrom(map[string]string{
		KeyDetectorKey: secret,
		KeyDebugMode:   "true",
	})

	var buf bytes.Buffer
	logger := logging.NewWriterLogger(&buf, logging.LevelDebug)
	cfg := NewResolver(env).WithLogger(logger).Resolve()

	summary := cfg.Summary()
	if strings.Contains(summary, secret) {
		t.Errorf("Summary() leaked the API key:\n%s", summary)
	}
	if !strings.Contains(summary, hiddenValue) {
		t.Errorf("Summary() missing %q:\n%s", hiddenValue, summary)
	}
	if !strings.Contains(summary, "(env)") {
		t.Errorf("Summary() missing source annotation:\n%s", summary)
	}

	logged := buf.String()
	if !strings.Contains(logged, "configuration loaded") {
		t.Errorf("debug dump not logged: %s", logged)
	}
	if strings.Contains(logged, secret) {
		t.Errorf("log leaked the API key: %s", logged)
	}
	if !strings.Contains(logged, `"api_key_set":true`) {
		t.Errorf("log missing api_key_set: %s", logged)
	}
}

func TestSummary_KeyNotSet(t *testing.T) {
	cfg := Default()
	if !strings.Contains(cfg.Summary(), "DETECTOR_KEY") || !strings.Contains(cfg.Summary(), notSetValue) {
		t.Errorf("Summary() = %s", cfg.Summary())
	}
}

func TestResolve_LogsViolations(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriterLogger(&buf, logging.LevelDebug)
	NewResolver().WithLogger(logger).Resolve()
	if !strings.Contains(buf.String(), "configuration errors") {
		t.Errorf("expected warning log, got %s", buf.String())
	}
}

func TestIsKnownKey(t *testing.T) {
	if !IsKnownKey(KeyDetectorURL) {
		t.Error("IsKnownKey(DETECTOR_URL) = false")
	}
	if IsKnownKey("NOPE") {
		t.Error("IsKnownKey(NOPE) = true")
	}
}

func TestConfigDir_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if got := ConfigDir(); got != filepath.Join(dir, "copyguard") {
		t.Errorf("ConfigDir() = %q", got)
	}
	if got := StorePath(); got != filepath.Join(dir, "copyguard", store.FileName) {
		t.Errorf("StorePath() = %q", got)
	}
}
