// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (optional .env file) and
// github.com/caarlos0/env/v11 (struct parsing by field tags). Each config
// type is parsed once per process and served from a cache afterwards, so
// packages can call Load for their own Config without coordinating.
//
//	type APIConfig struct {
//		BaseURL string        `env:"BADGE_API_BASE_URL" envDefault:"https://profile.deepcytes.io/api/"`
//		Timeout time.Duration `env:"BADGE_API_TIMEOUT" envDefault:"15s"`
//	}
//
//	var cfg APIConfig
//	if err := config.Load(&cfg); err != nil { ... }
//
// MustLoad panics on failure, for configuration the process cannot start
// without. ResetCache clears the cache between tests.
package config
