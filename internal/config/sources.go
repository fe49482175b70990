package config

import (
	"os"
	"strings"

	"github.com/Iron-Ham/copyguard/internal/errors"
	"github.com/Iron-Ham/copyguard/internal/store"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Source names reported by Config.Source.
const (
	SourceEnv      = "env"
	SourceSettings = "settings"
	SourceStore    = "store"
	SourceDefault  = "default"
)

// Source is one layer of configuration. Lookup returns the raw value for a
// setting name and whether the source has it at all.
type Source interface {
	Name() string
	Lookup(key string) (string, bool)
}

// EnvSource reads settings from a snapshot of the process environment taken
// when the source is created, so later changes to the environment do not
// leak into a resolved Config.
type EnvSource struct {
	vars map[string]string
}

// NewEnvSource snapshots os.Environ.
func NewEnvSource() *EnvSource {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			vars[k] = v
		}
	}
	return &EnvSource{vars: vars}
}

// EnvSourceFrom builds an EnvSource from an explicit map.
func EnvSourceFrom(vars map[string]string) *EnvSource {
	copied := make(map[string]string, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	return &EnvSource{vars: copied}
}

func (s *EnvSource) Name() string { return SourceEnv }

func (s *EnvSource) Lookup(key string) (string, bool) {
	v, ok := s.vars[key]
	return v, ok
}

// SettingsSource reads the injected settings file: a YAML, JSON or TOML
// document whose top-level keys are setting names. Settings may also be
// nested under an "env" table. Lookups are case-insensitive.
type SettingsSource struct {
	v    *viper.Viper
	path string
}

// NewSettingsSource reads the settings file at path.
func NewSettingsSource(path string) (*SettingsSource, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read settings file %s", path)
	}
	return &SettingsSource{v: v, path: path}, nil
}

// SettingsSourceFrom builds a SettingsSource from an in-memory map.
func SettingsSourceFrom(values map[string]any) *SettingsSource {
	v := viper.New()
	_ = v.MergeConfigMap(values)
	return &SettingsSource{v: v}
}

func (s *SettingsSource) Name() string { return SourceSettings }

// Path returns the file the settings were read from, or "" for in-memory settings.
func (s *SettingsSource) Path() string { return s.path }

func (s *SettingsSource) Lookup(key string) (string, bool) {
	for _, k := range []string{key, "env." + key} {
		if !s.v.IsSet(k) {
			continue
		}
		raw, err := cast.ToStringE(s.v.Get(k))
		if err != nil {
			continue
		}
		return raw, true
	}
	return "", false
}

// StoreSource reads namespaced overrides from the persistent store.
type StoreSource struct {
	store *store.Store
}

// NewStoreSource wraps an opened store.
func NewStoreSource(s *store.Store) *StoreSource {
	return &StoreSource{store: s}
}

func (s *StoreSource) Name() string { return SourceStore }

func (s *StoreSource) Lookup(key string) (string, bool) {
	if s.store == nil {
		return "", false
	}
	return s.store.Get(key)
}

// DefaultSource is the built-in default table. No API key is compiled in.
type DefaultSource struct {
	values map[string]string
}

// Defaults returns the built-in default source.
func Defaults() *DefaultSource {
	return &DefaultSource{values: map[string]string{
		KeyDetectorURL:          "https://ey3x589rgd.execute-api.us-east-1.amazonaws.com/detect",
		KeyDetectorKey:          "",
		KeyDebugMode:            "false",
		KeyAnalyticsID:          "",
		KeyRequestTimeout:       "30000",
		KeyMaxCodeLength:        "100000",
		KeyNotificationDuration: "5000",
		KeyAnimationDuration:    "300",
		KeyRateLimitRequests:    "10",
		KeyRateLimitWindow:      "60000",
	}}
}

func (s *DefaultSource) Name() string { return SourceDefault }

func (s *DefaultSource) Lookup(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}
