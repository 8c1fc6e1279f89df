package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server ServerConfig
	App    AppConfig
	CORS   CORSConfig
	Steam  SteamConfig
	Cache  CacheConfig
	Admin  AdminConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"5174"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"cs2-inventory-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// CORSConfig holds the browser origin policy.
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
}

// SteamConfig holds settings for the upstream community inventory endpoint.
type SteamConfig struct {
	InventoryBase string        `envconfig:"STEAM_INVENTORY_BASE" default:"https://steamcommunity.com/inventory"`
	ProxyURL      string        `envconfig:"STEAM_PROXY_URL" default:""`
	IconBase      string        `envconfig:"STEAM_ICON_BASE" default:"https://steamcommunity-a.akamaihd.net/economy/image/"`
	Timeout       time.Duration `envconfig:"STEAM_TIMEOUT" default:"15s"`
	ItemCount     int           `envconfig:"STEAM_ITEM_COUNT" default:"5000"`
}

// AdminConfig holds access settings for the /api/v1/admin routes.
type AdminConfig struct {
	APIKeys []string `envconfig:"ADMIN_API_KEYS" default:""`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Type          string        `envconfig:"CACHE_TYPE" default:"memory"` // memory or redis
	TTL           time.Duration `envconfig:"CACHE_TTL" default:"60s"`
	SweepInterval time.Duration `envconfig:"CACHE_SWEEP_INTERVAL" default:"0s"`
	Coalesce      bool          `envconfig:"CACHE_COALESCE" default:"false"`

	RedisHost      string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort      int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB        int    `envconfig:"REDIS_DB" default:"0"`
	RedisKeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"cs2inv:cache"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// BaseURL returns the inventory endpoint to call. A proxy URL, when set,
// takes precedence over the direct community endpoint.
func (s *SteamConfig) BaseURL() string {
	if s.ProxyURL != "" {
		return s.ProxyURL
	}
	return s.InventoryBase
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsRedis reports whether the Redis cache backend is selected.
func (c *CacheConfig) IsRedis() bool {
	return c.Type == "redis"
}

// Validate checks values envconfig cannot express as tags.
func (c *Config) Validate() error {
	switch c.Cache.Type {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported CACHE_TYPE %q", c.Cache.Type)
	}
	if c.Steam.Timeout <= 0 {
		return fmt.Errorf("STEAM_TIMEOUT must be positive, got %v", c.Steam.Timeout)
	}
	if c.Steam.ItemCount <= 0 {
		return fmt.Errorf("STEAM_ITEM_COUNT must be positive, got %d", c.Steam.ItemCount)
	}
	if c.Steam.BaseURL() == "" {
		return fmt.Errorf("STEAM_INVENTORY_BASE must not be empty")
	}
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
