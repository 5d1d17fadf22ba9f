package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort            string   `mapstructure:"APP_PORT"`
	Env                string   `mapstructure:"ENV"`
	LogLevel           string   `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin  int      `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	// Proxies whose X-Forwarded-For is believed. Empty trusts none.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	// Remote carpool API every dashboard screen talks to.
	UpstreamAPIURL  string        `mapstructure:"UPSTREAM_API_URL"`
	UpstreamTimeout time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`

	// MongoDB holds the dashboard activity log.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Browser session.
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL"`
	SessionCookieName string        `mapstructure:"SESSION_COOKIE_NAME"`
	CookieSecure      bool          `mapstructure:"COOKIE_SECURE"`

	DraftTTL          time.Duration `mapstructure:"DRAFT_TTL"`
	StatsCacheTTL     time.Duration `mapstructure:"STATS_CACHE_TTL"`
	WorkerConcurrency int           `mapstructure:"WORKER_CONCURRENCY"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	v.SetDefault("TRUSTED_PROXIES", []string{})
	v.SetDefault("UPSTREAM_API_URL", "http://localhost:8000/api/v1")
	v.SetDefault("UPSTREAM_TIMEOUT", 15*time.Second)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "vcarpool")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_SESSION_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("SESSION_TTL", 8*time.Hour)
	v.SetDefault("SESSION_COOKIE_NAME", "vcarpool_session")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("DRAFT_TTL", 30*time.Minute)
	v.SetDefault("STATS_CACHE_TTL", 5*time.Minute)
	v.SetDefault("WORKER_CONCURRENCY", 4)
}

// Load reads configuration into a fresh Config using the given viper instance.
func Load(v *viper.Viper) (Config, error) {
	// Without an explicit file, look for "config.yaml" in the current and "config" directory.
	// SetConfigName would clear a file chosen with SetConfigFile.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
