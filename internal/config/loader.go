package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if POSTURE_CONFIG is set
//  3. env (prefix POSTURE_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("POSTURE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: POSTURE_ADDR, POSTURE_CACHE_TTL, ...
	// Map env keys like POSTURE_IP_LIMIT_PER_MIN -> ip_limit_per_min,
	// preserving underscores to match the koanf tags on Config.
	envProvider := env.Provider("POSTURE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "posture_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.GzipLevel < 1 || cfg.GzipLevel > 9 {
		return nil, errors.New("gzip_level must be between 1 and 9")
	}
	return &cfg, nil
}
