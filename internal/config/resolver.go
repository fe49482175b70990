package config

import (
	"strings"

	"github.com/Iron-Ham/copyguard/internal/logging"
	"github.com/spf13/cast"
)

// Resolver builds a Config from an ordered list of sources.
type Resolver struct {
	sources  []Source
	defaults *DefaultSource
	logger   *logging.Logger
}

// NewResolver creates a resolver that consults sources in the given order.
// The built-in defaults are always consulted last.
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{
		sources:  sources,
		defaults: Defaults(),
	}
}

// WithLogger sets the logger used for validation warnings and the debug dump.
func (r *Resolver) WithLogger(logger *logging.Logger) *Resolver {
	r.logger = logger
	return r
}

// lookup returns the first non-empty value for key and the name of the source it came from.
func (r *Resolver) lookup(key string) (string, string) {
	for _, src := range r.sources {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), src.Name()
		}
	}
	v, _ := r.defaults.Lookup(key)
	return v, SourceDefault
}

// Resolve reads every setting once and returns a best-effort Config. It never
// fails: callers check Validate or Ready before relying on the result.
func (r *Resolver) Resolve() *Config {
	cfg := &Config{
		AppName:    AppName,
		AppVersion: Version,
		sources:    make(map[string]string, len(Keys())),
	}

	str := func(key string) string {
		v, src := r.lookup(key)
		cfg.sources[key] = src
		return v
	}

	// num coerces key to an integer of at least minimum. Values that do not
	// parse or fall below minimum are replaced by the default.
	num := func(key string, minimum int) int {
		raw, src := r.lookup(key)
		cfg.sources[key] = src
		n, err := cast.ToIntE(raw)
		if err == nil && n >= minimum {
			return n
		}

		def, _ := r.defaults.Lookup(key)
		msg := "must be an integer"
		if err == nil {
			msg = "must be at least " + cast.ToString(minimum)
		}
		cfg.problems = append(cfg.problems, ValidationError{
			Field:   key,
			Value:   raw,
			Message: msg + " (from " + src + ", using default " + def + ")",
		})
		cfg.sources[key] = SourceDefault
		return cast.ToInt(def)
	}

	flag := func(key string) bool {
		raw, src := r.lookup(key)
		cfg.sources[key] = src
		b, err := cast.ToBoolE(raw)
		if err != nil {
			cfg.problems = append(cfg.problems, ValidationError{
				Field:   key,
				Value:   raw,
				Message: "must be true or false (from " + src + ", using false)",
			})
			cfg.sources[key] = SourceDefault
			return false
		}
		return b
	}

	cfg.EndpointURL = str(KeyDetectorURL)
	cfg.APIKey = str(KeyDetectorKey)
	cfg.Debug = flag(KeyDebugMode)
	cfg.AnalyticsID = str(KeyAnalyticsID)
	cfg.RequestTimeoutMs = num(KeyRequestTimeout, 1)
	cfg.MaxInputLength = num(KeyMaxCodeLength, 1)
	cfg.NotificationDurationMs = num(KeyNotificationDuration, 1)
	cfg.AnimationDurationMs = num(KeyAnimationDuration, 0)
	cfg.RateLimitRequests = num(KeyRateLimitRequests, 1)
	cfg.RateLimitWindowMs = num(KeyRateLimitWindow, 1)

	if r.logger != nil {
		log := r.logger.WithComponent("config")
		if errs := cfg.Validate(); len(errs) > 0 {
			log.Warn("configuration errors", "errors", errs.Messages())
		}
		if cfg.Debug {
			cfg.LogSummary(log)
		}
	}

	return cfg
}
