package config

import (
	"errors"
	"fmt"
	"time"
)

// ServerConfig configures the HTTP API process.
type ServerConfig struct {
	Addr        string
	DatabaseURL string

	CORSAllowedOrigins []string

	// RateLimitRPS and RateLimitBurst bound summarize requests per client IP.
	RateLimitRPS   float64
	RateLimitBurst int

	MaxBodyBytes    int64
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// JWTSecret verifies bearer tokens. Empty disables token identity.
	JWTSecret string

	// PersistTimeout bounds one background write of a produced summary.
	PersistTimeout time.Duration

	RetentionDays     int
	RetentionSchedule string

	TraceSampleRatio float64
}

// LoadServerConfig reads the server configuration from the environment.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Addr:               GetEnvOrDefault("HTTP_ADDR", ":8080"),
		DatabaseURL:        GetEnvOrDefault("DATABASE_URL", ""),
		CORSAllowedOrigins: GetEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RateLimitRPS:       GetEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:     GetEnvInt("RATE_LIMIT_BURST", 10),
		MaxBodyBytes:       int64(GetEnvInt("MAX_BODY_BYTES", 2<<20)),
		RequestTimeout:     GetEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
		ShutdownTimeout:    GetEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		JWTSecret:          GetEnvOrDefault("JWT_SECRET", ""),
		PersistTimeout:     GetEnvDuration("PERSIST_TIMEOUT", 10*time.Second),
		RetentionDays:      GetEnvInt("RETENTION_DAYS", 0),
		RetentionSchedule:  GetEnvOrDefault("RETENTION_SCHEDULE", "0 3 * * *"),
		TraceSampleRatio:   GetEnvFloat("TRACE_SAMPLE_RATIO", 0.1),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks every field.
func (c *ServerConfig) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("HTTP_ADDR cannot be empty"))
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must not be negative"))
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive"))
	}
	if c.MaxBodyBytes < 1024 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be at least 1024"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.PersistTimeout <= 0 {
		errs = append(errs, errors.New("PERSIST_TIMEOUT must be positive"))
	}
	if c.JWTSecret != "" && len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters"))
	}
	if c.RetentionDays < 0 {
		errs = append(errs, errors.New("RETENTION_DAYS must not be negative"))
	}
	if c.TraceSampleRatio < 0 || c.TraceSampleRatio > 1 {
		errs = append(errs, errors.New("TRACE_SAMPLE_RATIO must be between 0 and 1"))
	}
	return errors.Join(errs...)
}
