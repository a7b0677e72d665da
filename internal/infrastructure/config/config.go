package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	HRAPI   HRAPIConfig
	Redis   RedisConfig
	Session SessionConfig
}

// HRAPIConfig locates the upstream HR REST API. The timeout bounds every
// upstream call, including the CSRF and session-check requests.
type HRAPIConfig struct {
	BaseURL string        `env:"HR_API_BASE_URL, default=http://localhost:8000"`
	Timeout time.Duration `env:"HR_API_TIMEOUT,  default=10s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SessionConfig controls the gateway's own browser session cookie and the
// lifetime of session records in Redis.
type SessionConfig struct {
	CookieName   string        `env:"SESSION_COOKIE_NAME,   default=hrportal_session"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=true"`
	Secret       string        `env:"SESSION_SECRET"`
	TTL          time.Duration `env:"SESSION_TTL,           default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
