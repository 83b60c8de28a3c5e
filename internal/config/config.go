package config

import (
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr      string
	LogLevel      string
	DatabaseURL   string
	RedisURL      string
	RemoteBaseURL string
	RemoteTimeout time.Duration
	MigrationsDir string
}

// Load reads the environment, optionally seeded from a .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:      envDefault("HTTP_ADDR", ":8080"),
		LogLevel:      envDefault("LOG_LEVEL", "info"),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:      strings.TrimSpace(os.Getenv("REDIS_URL")),
		RemoteBaseURL: strings.TrimSpace(os.Getenv("REMOTE_API_URL")),
		RemoteTimeout: envDuration("REMOTE_TIMEOUT", 10*time.Second),
		MigrationsDir: envDefault("MIGRATIONS_DIR", "migrations"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	req := map[string]string{
		"DATABASE_URL":   c.DatabaseURL,
		"REDIS_URL":      c.RedisURL,
		"REMOTE_API_URL": c.RemoteBaseURL,
	}
	for k, v := range req {
		if v == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &missingEnvError{Keys: missing}
	}
	return nil
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	// Deterministic message regardless of map iteration order.
	keys := append([]string(nil), e.Keys...)
	sort.Strings(keys)
	return "missing required envs: " + strings.Join(keys, ", ")
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
