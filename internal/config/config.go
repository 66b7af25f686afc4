// Package config defines service configuration and its loading order.
package config

import "time"

// Config holds process configuration for the posture API.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// CacheTTL bounds how long identical analyze responses are reused.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// IPLimitPerMin caps requests per client IP per minute.
	IPLimitPerMin int `koanf:"ip_limit_per_min"`

	// AnalyzeLimitPerMin is the tighter per-IP cap on the analyze endpoint.
	AnalyzeLimitPerMin int `koanf:"analyze_limit_per_min"`

	// RedisAddr enables distributed rate limiting when set; empty means
	// in-memory only.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// MaxBodyBytes caps the analyze request body size.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// RequestTimeout bounds request handling end to end.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// GzipMinSize is the smallest response body worth compressing.
	GzipMinSize int `koanf:"gzip_min_size"`

	// GzipLevel is the gzip compression level (1-9).
	GzipLevel int `koanf:"gzip_level"`

	// CORSOrigins lists the allowed browser origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// New returns a Config populated with defaults. The default CORS origins
// match the local-development hosts the pose-estimation frontend runs on.
func New() *Config {
	return &Config{
		Addr:               ":8000",
		LogLevel:           "info",
		CacheTTL:           15 * time.Minute,
		IPLimitPerMin:      60,
		AnalyzeLimitPerMin: 30,
		MaxBodyBytes:       64 * 1024,
		RequestTimeout:     30 * time.Second,
		GzipMinSize:        1024,
		GzipLevel:          6,
		CORSOrigins: []string{
			"null",
			"http://localhost",
			"http://localhost:8080",
			"http://127.0.0.1",
			"http://127.0.0.1:8080",
			"http://127.0.0.1:5500",
			"http://127.0.0.1:5501",
		},
	}
}
