package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Orders   OrderConfig    `mapstructure:"orders"`
}

type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	Mode        string   `mapstructure:"mode"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Path         string `mapstructure:"path"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	SeedDemoData bool   `mapstructure:"seed_demo_data"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type RedisConfig struct {
	URL     string        `mapstructure:"url"`
	MenuTTL time.Duration `mapstructure:"menu_ttl"`
}

type OrderConfig struct {
	DeliveryFee string        `mapstructure:"delivery_fee"`
	DeliveryETA time.Duration `mapstructure:"delivery_eta"`
}

// Fee parses the configured delivery fee.
func (o OrderConfig) Fee() (decimal.Decimal, error) {
	fee, err := decimal.NewFromString(o.DeliveryFee)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid delivery fee %q: %w", o.DeliveryFee, err)
	}
	return fee, nil
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"server.port":             "PORT",
	"server.mode":             "GIN_MODE",
	"server.cors_origins":     "CORS_ORIGINS",
	"database.path":           "DB_PATH",
	"database.max_open_conns": "DB_MAX_OPEN_CONNS",
	"database.seed_demo_data": "SEED_DEMO_DATA",
	"auth.jwt_secret":         "JWT_SECRET",
	"auth.token_ttl":          "JWT_TTL",
	"log.level":               "LOG_LEVEL",
	"log.encoding":            "LOG_ENCODING",
	"redis.url":               "REDIS_URL",
	"redis.menu_ttl":          "MENU_CACHE_TTL",
	"orders.delivery_fee":     "DELIVERY_FEE",
	"orders.delivery_eta":     "DELIVERY_ETA",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("database.path", "./database/oh_crepe.db")
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.seed_demo_data", true)
	v.SetDefault("auth.jwt_secret", "oh_crepe_super_secret_2024")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.menu_ttl", 5*time.Minute)
	v.SetDefault("orders.delivery_fee", "5.00")
	v.SetDefault("orders.delivery_eta", 45*time.Minute)
}

// Load reads configuration from defaults, an optional YAML file named by
// OHCREPE_CONFIG, a .env file and the environment, in increasing precedence.
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path := os.Getenv("OHCREPE_CONFIG"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("jwt secret must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("token ttl must be positive")
	}
	fee, err := c.Orders.Fee()
	if err != nil {
		return err
	}
	if fee.IsNegative() {
		return errors.New("delivery fee must not be negative")
	}
	if c.Database.MaxOpenConns < 1 {
		c.Database.MaxOpenConns = 1
	}
	return nil
}
