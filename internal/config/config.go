package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port          int    `mapstructure:"port"`
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// AuthConfig contains the session signing secret and login throttling knobs.
// The secret is injected here once at startup and nowhere else.
type AuthConfig struct {
	JWTSecret             string `mapstructure:"jwt_secret"`
	CookieDomain          string `mapstructure:"cookie_domain"`
	LoginRateLimitPerHour int    `mapstructure:"login_rate_limit_per_hour"`
	LoginLockThreshold    int    `mapstructure:"login_lock_threshold"`
	LoginLockMinutes      int    `mapstructure:"login_lock_minutes"`
}

// GeminiConfig contains credentials and limits for the text-generation service.
type GeminiConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// LoginLockTTL returns the lockout window as a duration.
func (a AuthConfig) LoginLockTTL() time.Duration {
	return time.Duration(a.LoginLockMinutes) * time.Minute
}

// Timeout returns the per-call generation deadline as a duration.
func (g GeminiConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8000)
	v.SetDefault("api.allowed_origin", "https://ip-resuminator.vercel.app")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "resuminator")
	v.SetDefault("database.user", "resuminator")
	v.SetDefault("database.password", "resuminator")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("auth.login_rate_limit_per_hour", 10)
	v.SetDefault("auth.login_lock_threshold", 5)
	v.SetDefault("auth.login_lock_minutes", 15)
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.timeout_seconds", 30)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                       "API_PORT",
		"api.allowed_origin":             "CORS_ALLOWED_ORIGIN",
		"database.host":                  "DATABASE_HOST",
		"database.port":                  "DATABASE_PORT",
		"database.name":                  "POSTGRES_DB",
		"database.user":                  "POSTGRES_USER",
		"database.password":              "POSTGRES_PASSWORD",
		"database.sslmode":               "DATABASE_SSLMODE",
		"redis.host":                     "REDIS_HOST",
		"redis.port":                     "REDIS_PORT",
		"auth.jwt_secret":                "JWT_SECRET",
		"auth.cookie_domain":             "COOKIE_DOMAIN",
		"auth.login_rate_limit_per_hour": "LOGIN_RATE_LIMIT_PER_HOUR",
		"auth.login_lock_threshold":      "LOGIN_LOCK_THRESHOLD",
		"auth.login_lock_minutes":        "LOGIN_LOCK_MINUTES",
		"gemini.api_key":                 "GEMINI_API_KEY",
		"gemini.model":                   "GEMINI_MODEL",
		"gemini.timeout_seconds":         "GEMINI_TIMEOUT_SECONDS",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.API.AllowedOrigin == "" {
		return errors.New("api allowed origin is required")
	}
	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}
	if cfg.Database.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if cfg.Database.Name == "" {
		return errors.New("database name is required")
	}
	if cfg.Database.User == "" {
		return errors.New("database user is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("database password is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("database sslmode is required")
	}
	if cfg.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	if cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("jwt secret is required")
	}
	if cfg.Auth.LoginRateLimitPerHour <= 0 {
		return errors.New("login rate limit must be positive")
	}
	if cfg.Gemini.APIKey == "" {
		return errors.New("gemini api key is required")
	}
	if cfg.Gemini.Model == "" {
		return errors.New("gemini model is required")
	}
	if cfg.Gemini.TimeoutSeconds <= 0 {
		return errors.New("gemini timeout must be positive")
	}
	return nil
}
