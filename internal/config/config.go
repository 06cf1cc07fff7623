package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/billfold/billfold/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Store      StoreConfig      `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Billing    BillingConfig    `validate:"required"`
	Cache      CacheConfig
	Sentry     SentryConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

// StoreConfig points at the remote record store that owns all
// persisted collections.
type StoreConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"api_key"`
	// PageLimit caps a single query page; LoadAll always drains every
	// page, so this only tunes request size.
	PageLimit int `mapstructure:"page_limit"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type BillingConfig struct {
	// DefaultCurrency seeds new invoices before the user has saved any
	// settings of their own.
	DefaultCurrency string `mapstructure:"default_currency" validate:"required,len=3"`
	// DueInDays is the default payment term applied to draft invoices.
	DueInDays int `mapstructure:"due_in_days"`
}

// CacheConfig controls the in-process record cache in front of the
// remote store.
type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/billfold")

	v.SetEnvPrefix("BILLFOLD")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("store.page_limit", 1000)
	v.SetDefault("billing.default_currency", types.DefaultCurrency)
	v.SetDefault("billing.due_in_days", 28)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.sample_rate", 0.1)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Store:      StoreConfig{BaseURL: "http://localhost:9000", PageLimit: 1000},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Billing:    BillingConfig{DefaultCurrency: types.DefaultCurrency, DueInDays: 28},
		Cache:      CacheConfig{Enabled: true},
	}
}
