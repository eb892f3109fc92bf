package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	wbfconf "github.com/wb-go/wbf/config"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Store      StoreConfig      `mapstructure:"store" yaml:"store"`
	Database   DatabaseConfig   `mapstructure:"database" yaml:"database"`
	Mongo      MongoConfig      `mapstructure:"mongo" yaml:"mongo"`
	Migrations MigrationsConfig `mapstructure:"migrations" yaml:"migrations"`
	Retry      RetryConfig      `mapstructure:"retry" yaml:"retry"`
	Auth       AuthConfig       `mapstructure:"auth" yaml:"auth"`
	Policy     PolicyConfig     `mapstructure:"policy" yaml:"policy"`
	Seed       SeedConfig       `mapstructure:"seed" yaml:"seed"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
}

type ServerConfig struct {
	Addr               string `mapstructure:"addr" yaml:"addr"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec" yaml:"shutdown_timeout_sec"`
	ReadTimeoutSec     int    `mapstructure:"read_timeout_sec" yaml:"read_timeout_sec"`
	WriteTimeoutSec    int    `mapstructure:"write_timeout_sec" yaml:"write_timeout_sec"`
	RequestTimeoutSec  int    `mapstructure:"request_timeout_sec" yaml:"request_timeout_sec"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
}

type DatabaseConfig struct {
	DSN                  string `mapstructure:"dsn" yaml:"dsn"`
	Slaves               string `mapstructure:"slaves" yaml:"slaves"`
	MaxOpenConns         int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns         int    `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetimeSec   int    `mapstructure:"conn_max_lifetime_sec" yaml:"conn_max_lifetime_sec"`
	ConnectRetries       int    `mapstructure:"connect_retries" yaml:"connect_retries"`
	ConnectRetryDelaySec int    `mapstructure:"connect_retry_delay_sec" yaml:"connect_retry_delay_sec"`
}

type MongoConfig struct {
	URI               string `mapstructure:"uri" yaml:"uri"`
	Database          string `mapstructure:"database" yaml:"database"`
	ConnectTimeoutSec int    `mapstructure:"connect_timeout_sec" yaml:"connect_timeout_sec"`
}

type MigrationsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

type RetryConfig struct {
	Attempts int     `mapstructure:"attempts" yaml:"attempts"`
	DelayMs  int     `mapstructure:"delay_ms" yaml:"delay_ms"`
	Backoff  float64 `mapstructure:"backoff" yaml:"backoff"`
}

type AuthConfig struct {
	Secret     string `mapstructure:"secret" yaml:"secret"`
	Issuer     string `mapstructure:"issuer" yaml:"issuer"`
	Audience   string `mapstructure:"audience" yaml:"audience"`
	RolesClaim string `mapstructure:"roles_claim" yaml:"roles_claim"`
}

// PolicyConfig holds the authorization switches. Admins may always delete;
// editing someone else's comment is opt-in.
type PolicyConfig struct {
	AdminCanUpdate bool `mapstructure:"admin_can_update" yaml:"admin_can_update"`
}

type SeedConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Load reads and validates the configuration.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read loads defaults, the config file and environment overrides without
// validating the result.
func Read(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfgw := wbfconf.New()

	setDefaults(cfgw)

	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		} else if _, err := os.Stat("/app/config.yaml"); err == nil {
			path = "/app/config.yaml"
		}
	}

	if path != "" {
		if err := cfgw.Load(path); err != nil {
			if _, statErr := os.Stat(path); statErr == nil {
				return nil, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := cfgw.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyEnv(&cfg)

	return &cfg, nil
}

// Validate checks the settings required by the selected store driver.
func (c *Config) Validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case DriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return errors.New("database.dsn is required (set in config file or DATABASE_DSN env)")
		}
	case DriverMongo:
		if strings.TrimSpace(c.Mongo.URI) == "" {
			return errors.New("mongo.uri is required (set in config file or MONGO_URI env)")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}

	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret is required (set in config file or JWT_SECRET env)")
	}
	if c.Retry.Attempts < 1 {
		return errors.New("retry.attempts must be at least 1")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
}

func setDefaults(c *wbfconf.Config) {
	c.SetDefault("server.addr", ":8080")
	c.SetDefault("server.shutdown_timeout_sec", 15)
	c.SetDefault("server.read_timeout_sec", 10)
	c.SetDefault("server.write_timeout_sec", 10)
	c.SetDefault("server.request_timeout_sec", 5)

	c.SetDefault("store.driver", DriverPostgres)

	c.SetDefault("database.dsn", "")
	c.SetDefault("database.slaves", "")
	c.SetDefault("database.max_open_conns", 25)
	c.SetDefault("database.max_idle_conns", 5)
	c.SetDefault("database.conn_max_lifetime_sec", 1800)
	c.SetDefault("database.connect_retries", 10)
	c.SetDefault("database.connect_retry_delay_sec", 3)

	c.SetDefault("mongo.uri", "")
	c.SetDefault("mongo.database", "comments")
	c.SetDefault("mongo.connect_timeout_sec", 10)

	c.SetDefault("migrations.enabled", true)

	c.SetDefault("retry.attempts", 3)
	c.SetDefault("retry.delay_ms", 100)
	c.SetDefault("retry.backoff", 2.0)

	c.SetDefault("auth.secret", "")
	c.SetDefault("auth.issuer", "")
	c.SetDefault("auth.audience", "")
	c.SetDefault("auth.roles_claim", "roles")

	c.SetDefault("policy.admin_can_update", false)

	c.SetDefault("seed.enabled", false)

	c.SetDefault("logging.level", "info")
}
