package main

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/zoobzio/railz/examples/orders"
)

// EnvPrefix prefixes every environment override, e.g. RAILZ_STORE_DRIVER.
const EnvPrefix = "RAILZ"

// Config is the CLI configuration, read from defaults, a YAML file, the
// environment and flags, in increasing order of precedence.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Store   StoreConfig   `mapstructure:"store"`
	Pricing PricingConfig `mapstructure:"pricing"`
}

type LogConfig struct {
	Level   string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format  string `mapstructure:"format" validate:"oneof=console json"`
	NoColor bool   `mapstructure:"no_color"`
}

type StoreConfig struct {
	Driver string      `mapstructure:"driver" validate:"oneof=memory redis"`
	Redis  RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr   string `mapstructure:"addr" validate:"required"`
	Prefix string `mapstructure:"prefix"`
	DB     int    `mapstructure:"db" validate:"gte=0"`
}

type PricingConfig struct {
	ForeignFee float64 `mapstructure:"foreign_fee" validate:"gte=0"`
	Rebate     float64 `mapstructure:"rebate" validate:"gte=0"`
}

// PriceService converts the pricing section for the order scenarios.
func (p PricingConfig) PriceService() orders.PriceService {
	return orders.PriceService{ForeignFee: p.ForeignFee, Rebate: p.Rebate}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.no_color", false)
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.prefix", orders.DefaultRedisPrefix)
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("pricing.foreign_fee", orders.ForeignCountryFee)
	v.SetDefault("pricing.rebate", orders.PremiumRebate)
}

// LoadConfig builds the configuration. An explicit envFile must exist; when
// empty, a .env in the working directory is loaded if present.
func LoadConfig(v *viper.Viper, configFile, envFile string) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", configFile)
		}
	}

	switch {
	case envFile != "":
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Wrapf(err, "load env file %s", envFile)
		}
	case fileExists(".env"):
		if err := godotenv.Load(); err != nil {
			return nil, errors.Wrap(err, "load .env")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
