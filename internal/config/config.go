package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
)

// Config holds agent and collector daemon configuration.
type Config struct {
	HTTPListen     string        `mapstructure:"http_listen" validate:"required"`
	EnableSwagger  bool          `mapstructure:"enable_swagger"`
	DatabasePath   string        `mapstructure:"database" validate:"required"`
	RetentionDays  int           `mapstructure:"retention_days" validate:"gte=0"`
	PurgeInterval  time.Duration `mapstructure:"purge_interval" validate:"gt=0"`
	ApiSecret      string        `mapstructure:"api_secret"`
	CollectorURL   string        `mapstructure:"collector_url"`
	CommandTimeout time.Duration `mapstructure:"command_timeout" validate:"gte=0"`

	Categories      []string `mapstructure:"categories" validate:"dive,oneof=motherboard os cpu gpu ram harddisk"`
	RAMCapacityUnit string   `mapstructure:"ram_capacity_unit" validate:"oneof=byte kb mb gb tb"`

	Log  LogConfig  `mapstructure:"log"`
	AMQP AMQPConfig `mapstructure:"amqp"`
}

// LogConfig selects the zap encoder and level.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// AMQPConfig configures snapshot publishing. An empty URL disables it.
type AMQPConfig struct {
	URL          string `mapstructure:"url" validate:"omitempty,url"`
	Exchange     string `mapstructure:"exchange" validate:"required_with=URL"`
	ExchangeType string `mapstructure:"exchange_type" validate:"omitempty,oneof=direct fanout topic headers"`
	RoutingKey   string `mapstructure:"routing_key"`
}

// Load reads configuration from .env, file and environment, then validates it.
func Load(cfgFile string) (*Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("sysinfo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/sysinfo")
	}

	v.SetDefault("http_listen", ":9551")
	v.SetDefault("enable_swagger", true)
	v.SetDefault("database", "sysinfo.db")
	v.SetDefault("retention_days", 0)
	v.SetDefault("purge_interval", "24h")
	v.SetDefault("api_secret", "")
	v.SetDefault("collector_url", "")
	v.SetDefault("command_timeout", "30s")
	v.SetDefault("categories", []string{})
	v.SetDefault("ram_capacity_unit", "byte")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "sysinfo")
	v.SetDefault("amqp.exchange_type", "fanout")
	v.SetDefault("amqp.routing_key", "")

	v.SetEnvPrefix("SYSINFO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	for i, cat := range c.Categories {
		c.Categories[i] = strings.ToLower(strings.TrimSpace(cat))
	}
	c.RAMCapacityUnit = strings.ToLower(c.RAMCapacityUnit)

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// CollectorOptions translates the collection settings into collector.Options.
func (c *Config) CollectorOptions() (collector.Options, error) {
	var opts collector.Options

	unit, err := collector.ParseDataUnit(c.RAMCapacityUnit)
	if err != nil {
		return opts, err
	}
	opts.RAMCapacityUnit = unit

	for _, name := range c.Categories {
		cat, err := collector.ParseCategory(name)
		if err != nil {
			return opts, err
		}
		opts.Categories = append(opts.Categories, cat)
	}
	return opts, nil
}
