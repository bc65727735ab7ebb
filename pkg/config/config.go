package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the server, the serverless handler and the CLIs read at startup
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Limits   LimitConfig    `mapstructure:"limits"`
}

type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	GinMode     string   `mapstructure:"gin_mode"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DatabaseConfig selects postgres when URL is set, otherwise a sqlite file at Path
type DatabaseConfig struct {
	URL  string `mapstructure:"url"`
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	APIMasterSecret string        `mapstructure:"api_master_secret"`
	AdminUsername   string        `mapstructure:"admin_username"`
	AdminPassword   string        `mapstructure:"admin_password"`
	TokenTTL        time.Duration `mapstructure:"token_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RedisConfig enables the plan cache when Addr is non-empty
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LimitConfig carries the request quota given to API keys created on first use
type LimitConfig struct {
	DefaultRateLimit int `mapstructure:"default_rate_limit"`
}

// env names are kept flat so existing .env files keep working
var envKeys = map[string]string{
	"server.port":               "PORT",
	"server.gin_mode":           "GIN_MODE",
	"server.cors_origins":       "CORS_ALLOW_ORIGINS",
	"db.url":                    "DATABASE_URL",
	"db.path":                   "DATA_PATH",
	"auth.jwt_secret":           "JWT_SECRET",
	"auth.api_master_secret":    "API_MASTER_SECRET",
	"auth.admin_username":       "ADMIN_USERNAME",
	"auth.admin_password":       "ADMIN_PASSWORD",
	"auth.token_ttl":            "TOKEN_TTL",
	"log.level":                 "LOG_LEVEL",
	"log.format":                "LOG_FORMAT",
	"redis.addr":                "REDIS_ADDR",
	"redis.password":            "REDIS_PASSWORD",
	"redis.db":                  "REDIS_DB",
	"redis.ttl":                 "CACHE_TTL",
	"limits.default_rate_limit": "DEFAULT_RATE_LIMIT",
}

// DefaultEnvPaths are searched in order by LoadEnvFile
var DefaultEnvPaths = []string{".env", "../.env", "../../.env"}

// LoadEnvFile loads the first .env file found in paths. It returns the path it
// loaded, or "" when none exists.
func LoadEnvFile(paths ...string) string {
	if len(paths) == 0 {
		paths = DefaultEnvPaths
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return p
		}
	}
	return ""
}

// Load reads configuration from defaults and environment variables.
// Environment wins over defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8000")
	v.SetDefault("server.gin_mode", "")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("db.url", "")
	v.SetDefault("db.path", "api_keys.db")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.api_master_secret", "")
	v.SetDefault("auth.admin_username", "admin")
	v.SetDefault("auth.admin_password", "admin123")
	v.SetDefault("auth.token_ttl", "24h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "10m")

	v.SetDefault("limits.default_rate_limit", 10000)

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values the server cannot run without
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.Auth.APIMasterSecret == "" {
		return fmt.Errorf("config: API_MASTER_SECRET is required")
	}
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("config: PORT must be between 1 and 65535, got %q", c.Server.Port)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("config: LOG_FORMAT must be json or console, got %q", c.Log.Format)
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("config: CACHE_TTL must not be negative")
	}
	if c.Limits.DefaultRateLimit <= 0 {
		return fmt.Errorf("config: DEFAULT_RATE_LIMIT must be positive")
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	return nil
}
