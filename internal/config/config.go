package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig
	Log          LogConfig
	CORS         CORSConfig
	Upload       UploadConfig
	Collaborator CollaboratorConfig
	Preference   PreferenceConfig
	Auth         AuthConfig
	Session      SessionConfig
	RateLimit    RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UploadConfig bounds accepted documents.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload bound in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// CollaboratorConfig holds settings for the generative model provider.
type CollaboratorConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	// FallbackModels are tried in order when the default model is rate limited.
	FallbackModels []string `mapstructure:"fallback_models"`
	TimeoutSecs    int      `mapstructure:"timeout_secs"`
	Endpoint       string   `mapstructure:"endpoint"`
}

// PreferenceConfig selects and configures the preference store driver.
type PreferenceConfig struct {
	Driver     string `mapstructure:"driver"` // memory, sqlite, postgres, redis
	SQLitePath string `mapstructure:"sqlite_path"`
	RedisAddr  string `mapstructure:"redis_addr"`
	RedisPass  string `mapstructure:"redis_password"`
	RedisDB    int    `mapstructure:"redis_db"`
	DB         DBConfig
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig holds workspace token signing settings.
type AuthConfig struct {
	Secret      string        `mapstructure:"secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	Issuer      string        `mapstructure:"issuer"`
}

// SessionConfig controls how long idle workspaces are kept in memory.
type SessionConfig struct {
	IdleTTL      time.Duration `mapstructure:"idle_ttl"`
	ReapInterval time.Duration `mapstructure:"reap_interval"`
}

// RateLimitConfig throttles collaborator-bound routes per client.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"rps"`
	Burst             int     `mapstructure:"burst"`
}

// Load reads configuration from environment variables with the BRIDGE_ prefix.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "text")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 10)

	// Collaborator defaults
	v.SetDefault("collaborator.provider", "gemini")
	v.SetDefault("collaborator.api_key", "")
	v.SetDefault("collaborator.default_model", "gemini-2.5-flash")
	v.SetDefault("collaborator.fallback_models", "")
	v.SetDefault("collaborator.timeout_secs", 120)
	v.SetDefault("collaborator.endpoint", "")

	// Preference store defaults
	v.SetDefault("preference.driver", "sqlite")
	v.SetDefault("preference.sqlite_path", "bridge.db")
	v.SetDefault("preference.redis_addr", "localhost:6379")
	v.SetDefault("preference.redis_password", "")
	v.SetDefault("preference.redis_db", 0)
	v.SetDefault("preference.db.host", "localhost")
	v.SetDefault("preference.db.port", 5432)
	v.SetDefault("preference.db.user", "bridge")
	v.SetDefault("preference.db.password", "bridge_secret")
	v.SetDefault("preference.db.name", "bridge_db")
	v.SetDefault("preference.db.sslmode", "disable")
	v.SetDefault("preference.db.max_open", 5)
	v.SetDefault("preference.db.max_idle", 2)

	// Auth defaults
	v.SetDefault("auth.secret", "change-me-in-production")
	v.SetDefault("auth.token_expiry", "12h")
	v.SetDefault("auth.issuer", "bridge")

	// Session defaults
	v.SetDefault("session.idle_ttl", "2h")
	v.SetDefault("session.reap_interval", "5m")

	// Rate limit defaults
	v.SetDefault("ratelimit.rps", 1.0)
	v.SetDefault("ratelimit.burst", 5)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "BRIDGE_SERVER_PORT",
		"server.read_timeout":          "BRIDGE_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "BRIDGE_SERVER_WRITE_TIMEOUT",
		"server.environment":           "BRIDGE_SERVER_ENVIRONMENT",
		"log.level":                    "BRIDGE_LOG_LEVEL",
		"log.format":                   "BRIDGE_LOG_FORMAT",
		"cors.allowed_origins":         "BRIDGE_CORS_ALLOWED_ORIGINS",
		"upload.max_file_size_mb":      "BRIDGE_UPLOAD_MAX_FILE_SIZE_MB",
		"collaborator.provider":        "BRIDGE_COLLABORATOR_PROVIDER",
		"collaborator.api_key":         "BRIDGE_COLLABORATOR_API_KEY",
		"collaborator.default_model":   "BRIDGE_COLLABORATOR_DEFAULT_MODEL",
		"collaborator.fallback_models": "BRIDGE_COLLABORATOR_FALLBACK_MODELS",
		"collaborator.timeout_secs":    "BRIDGE_COLLABORATOR_TIMEOUT_SECS",
		"collaborator.endpoint":        "BRIDGE_COLLABORATOR_ENDPOINT",
		"preference.driver":            "BRIDGE_PREFERENCE_DRIVER",
		"preference.sqlite_path":       "BRIDGE_PREFERENCE_SQLITE_PATH",
		"preference.redis_addr":        "BRIDGE_PREFERENCE_REDIS_ADDR",
		"preference.redis_password":    "BRIDGE_PREFERENCE_REDIS_PASSWORD",
		"preference.redis_db":          "BRIDGE_PREFERENCE_REDIS_DB",
		"preference.db.host":           "BRIDGE_PREFERENCE_DB_HOST",
		"preference.db.port":           "BRIDGE_PREFERENCE_DB_PORT",
		"preference.db.user":           "BRIDGE_PREFERENCE_DB_USER",
		"preference.db.password":       "BRIDGE_PREFERENCE_DB_PASSWORD",
		"preference.db.name":           "BRIDGE_PREFERENCE_DB_NAME",
		"preference.db.sslmode":        "BRIDGE_PREFERENCE_DB_SSLMODE",
		"preference.db.max_open":       "BRIDGE_PREFERENCE_DB_MAX_OPEN",
		"preference.db.max_idle":       "BRIDGE_PREFERENCE_DB_MAX_IDLE",
		"auth.secret":                  "BRIDGE_AUTH_SECRET",
		"auth.token_expiry":            "BRIDGE_AUTH_TOKEN_EXPIRY",
		"auth.issuer":                  "BRIDGE_AUTH_ISSUER",
		"session.idle_ttl":             "BRIDGE_SESSION_IDLE_TTL",
		"session.reap_interval":        "BRIDGE_SESSION_REAP_INTERVAL",
		"ratelimit.rps":                "BRIDGE_RATELIMIT_RPS",
		"ratelimit.burst":              "BRIDGE_RATELIMIT_BURST",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set a PORT env var. Use it if BRIDGE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BRIDGE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Collaborator = CollaboratorConfig{
		Provider:       v.GetString("collaborator.provider"),
		APIKey:         v.GetString("collaborator.api_key"),
		DefaultModel:   v.GetString("collaborator.default_model"),
		FallbackModels: splitList(v.GetString("collaborator.fallback_models")),
		TimeoutSecs:    v.GetInt("collaborator.timeout_secs"),
		Endpoint:       v.GetString("collaborator.endpoint"),
	}
	cfg.Preference = PreferenceConfig{
		Driver:     v.GetString("preference.driver"),
		SQLitePath: v.GetString("preference.sqlite_path"),
		RedisAddr:  v.GetString("preference.redis_addr"),
		RedisPass:  v.GetString("preference.redis_password"),
		RedisDB:    v.GetInt("preference.redis_db"),
		DB: DBConfig{
			Host:     v.GetString("preference.db.host"),
			Port:     v.GetInt("preference.db.port"),
			User:     v.GetString("preference.db.user"),
			Password: v.GetString("preference.db.password"),
			Name:     v.GetString("preference.db.name"),
			SSLMode:  v.GetString("preference.db.sslmode"),
			MaxOpen:  v.GetInt("preference.db.max_open"),
			MaxIdle:  v.GetInt("preference.db.max_idle"),
		},
	}
	cfg.Auth = AuthConfig{
		Secret:      v.GetString("auth.secret"),
		TokenExpiry: v.GetDuration("auth.token_expiry"),
		Issuer:      v.GetString("auth.issuer"),
	}
	cfg.Session = SessionConfig{
		IdleTTL:      v.GetDuration("session.idle_ttl"),
		ReapInterval: v.GetDuration("session.reap_interval"),
	}
	cfg.RateLimit = RateLimitConfig{
		RequestsPerSecond: v.GetFloat64("ratelimit.rps"),
		Burst:             v.GetInt("ratelimit.burst"),
	}

	return cfg, nil
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
