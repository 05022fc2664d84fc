package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	API         APIConfig
	Identity    IdentityConfig
	Session     SessionConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

// APIConfig points at the remote data gateway. An empty URL is a critical
// configuration error, logged at startup, but the application still boots in
// degraded mode and requests fail at call time.
type APIConfig struct {
	URL string
}

// IdentityConfig points at the identity provider.
type IdentityConfig struct {
	URL     string
	AnonKey string
}

type SessionConfig struct {
	// Path of the bbolt file persisting the session between runs.
	Path string
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
	File     string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the client can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "organizae"),
		Environment: getString("APP_ENV", "development"),
		API: APIConfig{
			URL: os.Getenv("API_URL"),
		},
		Identity: IdentityConfig{
			URL:     os.Getenv("IDENTITY_URL"),
			AnonKey: os.Getenv("IDENTITY_ANON_KEY"),
		},
		Session: SessionConfig{
			Path: getString("SESSION_PATH", defaultSessionPath()),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 10*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 5*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
			File:     getString("LOG_FILE", defaultLogPath()),
		},
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// MissingEndpoints names the required endpoints that are absent. A non-empty
// result means the client runs degraded.
func (c *Config) MissingEndpoints() []string {
	var missing []string
	if c.API.URL == "" {
		missing = append(missing, "API_URL")
	}
	if c.Identity.URL == "" {
		missing = append(missing, "IDENTITY_URL")
	}
	if c.Identity.AnonKey == "" {
		missing = append(missing, "IDENTITY_ANON_KEY")
	}
	return missing
}

func defaultSessionPath() string {
	return filepath.Join(stateDir(), "session.db")
}

func defaultLogPath() string {
	return filepath.Join(stateDir(), "organizae.log")
}

func stateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "organizae")
	}
	return "./data"
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
