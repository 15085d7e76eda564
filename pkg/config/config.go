package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds the postgres connection settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig holds the redis connection settings.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
}

// DashboardConfig holds the dashboard specific settings.
type DashboardConfig struct {
	// Oldest date with stat data. Period navigation can't go before it.
	MinDataDate string `mapstructure:"min_data_date"`

	DefaultPerPage int `mapstructure:"default_per_page"`
	MaxPerPage     int `mapstructure:"max_per_page"`

	MemCacheTTL time.Duration `mapstructure:"mem_cache_ttl"`
	RedisTTL    time.Duration `mapstructure:"redis_ttl"`
}

// BucketConfig holds the S3 settings used for log shipping.
type BucketConfig struct {
	Region       string `mapstructure:"region"`
	Endpoint     string `mapstructure:"endpoint"`
	AccessKey    string `mapstructure:"access_key"`
	AccessSecret string `mapstructure:"access_secret"`
	LogBucket    string `mapstructure:"log_bucket"`
}

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Bucket    BucketConfig    `mapstructure:"bucket"`
}

// Load reads config.yaml (if present) and overrides it with environment
// variables. A .env file is loaded first when not running on Docker.
func Load() (*Config, error) {
	if os.Getenv("ENVIRONMENT") != "docker" {
		// The .env file is optional, env vars may come from the shell.
		_ = godotenv.Load()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvPrefix("LEAGUEDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Only a missing file is fine, a broken one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("couldn't read the config file: %v", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal the config: %v", err)
	}

	// The database URL is the only setting without a usable default.
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}

	return &cfg, nil
}

// MinDataDate parses the configured minimum data date.
func (c *Config) MinDataDate() time.Time {
	t, err := time.Parse("2006-01-02", c.Dashboard.MinDataDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// setDefaults registers every default value on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")

	v.SetDefault("dashboard.min_data_date", "2024-01-01")
	v.SetDefault("dashboard.default_per_page", 20)
	v.SetDefault("dashboard.max_per_page", 100)
	v.SetDefault("dashboard.mem_cache_ttl", 5*time.Minute)
	v.SetDefault("dashboard.redis_ttl", 30*time.Minute)
}
