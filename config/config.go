package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Cache     CacheConfig     `yaml:"cache"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheConfig struct {
	// Backend selects "memory" or "redis".
	Backend        string `yaml:"backend"`
	TTLSeconds     int    `yaml:"ttl_seconds"`
	CleanupSeconds int    `yaml:"cleanup_interval_seconds"`
}

type DashboardConfig struct {
	// Queries names the catalog reports a snapshot runs; empty means the
	// default set.
	Queries []string `yaml:"queries"`
}

// LoadConfig reads a YAML config file and applies environment overrides
// (PG_HOST, PG_USER, PG_PASSWORD, PG_DB, REDIS_ADDR). The port always
// comes from the file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PG_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("PG_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("PG_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("PG_DB"); v != "" {
		c.Database.Name = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
}

func (c *Config) applyDefaults() {
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 300
	}
	if c.Cache.CleanupSeconds == 0 {
		c.Cache.CleanupSeconds = 600
	}
}
