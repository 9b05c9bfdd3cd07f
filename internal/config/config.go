package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the app reads from the environment at startup.
type Config struct {
	App   AppConfig
	API   APIConfig
	Admin AdminConfig
	Cache CacheConfig
}

type AppConfig struct {
	Port        string
	Debug       bool
	LogPath     string
	StoragePath string
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AdminConfig is the configured admin credential pair. Admin-ness of a
// session is derived by comparing emails against it, never stored.
type AdminConfig struct {
	Email    string
	Password string
}

type CacheConfig struct {
	// Backend selects the snapshot persister: "sqlite", "redis" or "none".
	Backend   string
	RedisURL  string
	StaleTime time.Duration
	GCTime    time.Duration
	Retry     int
}

// Load reads configuration from a .env file (when present) and the
// environment. Environment variables win over the file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	viper.SetDefault("APP_PORT", ":3000")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("STORAGE_PATH", ".klontong/")
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("CACHE_BACKEND", "sqlite")
	viper.SetDefault("CACHE_STALE_TIME", "60s")
	viper.SetDefault("CACHE_GC_TIME", "24h")
	viper.SetDefault("CACHE_RETRY", 1)
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")

	// A missing .env file is fine, the environment alone may be enough.
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Port:        viper.GetString("APP_PORT"),
			Debug:       viper.GetBool("DEBUG"),
			LogPath:     viper.GetString("LOG_PATH"),
			StoragePath: viper.GetString("STORAGE_PATH"),
		},
		API: APIConfig{
			BaseURL: viper.GetString("API_BASE_URL"),
			Timeout: viper.GetDuration("API_TIMEOUT"),
		},
		Admin: AdminConfig{
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
		Cache: CacheConfig{
			Backend:   viper.GetString("CACHE_BACKEND"),
			RedisURL:  viper.GetString("REDIS_URL"),
			StaleTime: viper.GetDuration("CACHE_STALE_TIME"),
			GCTime:    viper.GetDuration("CACHE_GC_TIME"),
			Retry:     viper.GetInt("CACHE_RETRY"),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, errors.New("API_BASE_URL is required")
	}

	return cfg, nil
}
