// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes server timeouts,
// logging, database path, rate limiting, observability, and the comment
// dispensing policies (access code, draw order, reset/lock behavior, daily clear).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // DAILY_CLEAR_TZ must resolve on minimal images
)

// Draw selection policies.
const (
	DrawPolicyFirst  = "first"  // oldest unused comment first (deterministic)
	DrawPolicyRandom = "random" // uniform pick among unused comments
)

// CORSConfig lists browser origins allowed to call the API. Empty means any.
type CORSConfig struct {
	AllowedOrigins []string // CORS_ALLOWED_ORIGINS, comma separated
}

// SecurityConfig carries response hardening switches.
type SecurityConfig struct {
	EnableHSTS bool          // ENABLE_HSTS, only honored on HTTPS requests
	HSTSMaxAge time.Duration // HSTS_MAX_AGE
}

// OTELConfig configures trace export over OTLP/gRPC.
type OTELConfig struct {
	Enabled     bool
	Endpoint    string // host:port of the collector
	Insecure    bool   // plaintext gRPC
	ServiceName string
	SampleRatio float64 // root-span sampling ratio in [0,1]
	Environment string  // deployment.environment resource attribute
}

// DispenseConfig groups the comment pool and allocation policies.
type DispenseConfig struct {
	AdminAccessCode    string // ADMIN_ACCESS_CODE (required)
	BulkKeySeed        string // BULK_GENERATOR_KEY, stored only when no key exists yet
	DrawPolicy         string // first|random
	ResetClearsHistory bool   // RESET_CLEARS_HISTORY
	AllowAddWhenLocked bool   // ALLOW_ADD_WHEN_LOCKED
	MaxCommentRunes    int
	MaxMessageRunes    int
	MaxBulkCount       int
	MaxImageBytes      int64
}

// DailyClearConfig controls the scheduled wipe of every comment list.
type DailyClearConfig struct {
	Enabled  bool
	Hour     int            // 0..23 in Location
	Location *time.Location // DAILY_CLEAR_TZ
	Interval time.Duration  // how often the job checks the clock
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string // listen port, without host
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	GinMode           string // debug|release|test

	// Logging and docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool
	SwaggerEnabled bool
	APIBasePath    string

	DBPath string // SQLite file

	// Token bucket per device or IP; RateRPS 0 disables limiting.
	RateRPS   float64
	RateBurst int

	CORS     CORSConfig
	Security SecurityConfig

	// IdempotencyTTL bounds how long a draw can be replayed by key.
	IdempotencyTTL time.Duration

	Dispense   DispenseConfig
	DailyClear DailyClearConfig

	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables, applies defaults and
// normalization, and validates the result. Malformed values are errors rather
// than silent defaults; every problem found is reported in one joined error.
func Load() (Config, error) {
	var e env
	cfg := Config{
		Port:              e.str("PORT", "8080"),
		ReadTimeout:       e.duration("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: e.duration("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      e.duration("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       e.duration("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    e.integer("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(e.str("GIN_MODE", "release")),

		LogLevel:       strings.ToLower(e.str("LOG_LEVEL", "info")),
		LogPretty:      e.flag("LOG_PRETTY", false),
		SwaggerEnabled: e.flag("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(e.str("API_BASE_PATH", "/api/v1")),

		DBPath: e.str("DB_PATH", "dispenser.db"),

		RateRPS:   e.number("RATE_RPS", 5),
		RateBurst: e.integer("RATE_BURST", 10),

		CORS: CORSConfig{AllowedOrigins: splitCSV(e.str("CORS_ALLOWED_ORIGINS", ""))},
		Security: SecurityConfig{
			EnableHSTS: e.flag("ENABLE_HSTS", false),
			HSTSMaxAge: e.duration("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		IdempotencyTTL: e.duration("IDEMPOTENCY_TTL", 24*time.Hour),

		Dispense: DispenseConfig{
			AdminAccessCode:    strings.TrimSpace(e.str("ADMIN_ACCESS_CODE", "")),
			BulkKeySeed:        strings.TrimSpace(e.str("BULK_GENERATOR_KEY", "")),
			DrawPolicy:         strings.ToLower(strings.TrimSpace(e.str("DRAW_POLICY", DrawPolicyFirst))),
			ResetClearsHistory: e.flag("RESET_CLEARS_HISTORY", false),
			AllowAddWhenLocked: e.flag("ALLOW_ADD_WHEN_LOCKED", true),
			MaxCommentRunes:    e.integer("MAX_COMMENT_RUNES", 2000),
			MaxMessageRunes:    e.integer("MAX_MESSAGE_RUNES", 2000),
			MaxBulkCount:       e.integer("MAX_BULK_COUNT", 500),
			MaxImageBytes:      int64(e.integer("MAX_IMAGE_BYTES", 5<<20)),
		},
		DailyClear: DailyClearConfig{
			Enabled:  e.flag("DAILY_CLEAR_ENABLED", false),
			Hour:     e.integer("DAILY_CLEAR_HOUR", 0),
			Location: e.location("DAILY_CLEAR_TZ", time.UTC),
			Interval: e.duration("DAILY_CLEAR_INTERVAL", time.Minute),
		},

		OTEL: OTELConfig{
			Enabled:     e.flag("OTEL_ENABLED", false),
			Endpoint:    e.str("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    e.flag("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: e.str("OTEL_SERVICE_NAME", "comment-dispenser"),
			SampleRatio: e.number("OTEL_TRACES_SAMPLER_ARG", 1),
			Environment: e.str("OTEL_DEPLOYMENT_ENVIRONMENT", ""),
		},
	}

	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	if err := errors.Join(append(e.errs, cfg.validate()...)...); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// validate returns every range or consistency violation in cfg.
func (cfg Config) validate() []error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		errs = append(errs, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic"))
	}
	check(strings.TrimSpace(cfg.Port) != "", "PORT must not be empty")
	check(cfg.ReadTimeout > 0 && cfg.ReadHeaderTimeout > 0 && cfg.WriteTimeout > 0 && cfg.IdleTimeout > 0,
		"timeouts must be positive durations")
	check(cfg.MaxHeaderBytes > 0, "MAX_HEADER_BYTES must be > 0")
	check(strings.TrimSpace(cfg.DBPath) != "", "DB_PATH must not be empty")
	check(cfg.RateRPS >= 0, "RATE_RPS must be >= 0")
	check(cfg.RateBurst >= 1, "RATE_BURST must be >= 1")
	check(cfg.Security.HSTSMaxAge >= 0, "HSTS_MAX_AGE must be >= 0")
	check(cfg.IdempotencyTTL > 0, "IDEMPOTENCY_TTL must be > 0")

	d := cfg.Dispense
	check(d.AdminAccessCode != "", "ADMIN_ACCESS_CODE must not be empty")
	check(d.DrawPolicy == DrawPolicyFirst || d.DrawPolicy == DrawPolicyRandom,
		"DRAW_POLICY must be one of: first, random")
	check(d.MaxCommentRunes >= 1 && d.MaxMessageRunes >= 1,
		"MAX_COMMENT_RUNES and MAX_MESSAGE_RUNES must be >= 1")
	check(d.MaxBulkCount >= 1, "MAX_BULK_COUNT must be >= 1")
	check(d.MaxImageBytes >= 1, "MAX_IMAGE_BYTES must be >= 1")

	check(cfg.DailyClear.Hour >= 0 && cfg.DailyClear.Hour <= 23, "DAILY_CLEAR_HOUR must be in [0,23]")
	check(cfg.DailyClear.Interval > 0, "DAILY_CLEAR_INTERVAL must be > 0")
	check(cfg.OTEL.SampleRatio >= 0 && cfg.OTEL.SampleRatio <= 1, "OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	return errs
}

// env reads typed variables and remembers which ones failed to parse.
// Unset or empty variables take the default.
type env struct {
	errs []error
}

func (e *env) lookup(k string) (string, bool) {
	v, ok := os.LookupEnv(k)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (e *env) fail(k, v, kind string) {
	e.errs = append(e.errs, fmt.Errorf("%s: %q is not a valid %s", k, v, kind))
}

func (e *env) str(k, def string) string {
	if v, ok := e.lookup(k); ok {
		return v
	}
	return def
}

func (e *env) integer(k string, def int) int {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		e.fail(k, v, "integer")
		return def
	}
	return n
}

func (e *env) number(k string, def float64) float64 {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		e.fail(k, v, "number")
		return def
	}
	return f
}

func (e *env) flag(k string, def bool) bool {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	e.fail(k, v, "boolean")
	return def
}

func (e *env) duration(k string, def time.Duration) time.Duration {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		e.fail(k, v, "duration")
		return def
	}
	return d
}

func (e *env) location(k string, def *time.Location) *time.Location {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	loc, err := time.LoadLocation(strings.TrimSpace(v))
	if err != nil {
		e.fail(k, v, "IANA time zone")
		return def
	}
	return loc
}

// splitCSV splits a comma list, dropping blanks.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	return "/" + p
}
