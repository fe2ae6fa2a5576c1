package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/nerlens/nerlens/internal"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

const EnvPrefix = "NERLENS"

var defaults = map[string]any{
	"server.host":                         "0.0.0.0",
	"server.port":                         5000,
	"server.read_header_timeout":          "5s",
	"server.max_request_size":             "1MB",
	"log.level":                           "info",
	"inference.server_url":                "https://api-inference.huggingface.co",
	"inference.model":                     "dslim/bert-base-NER",
	"inference.aggregation_strategy":      "average",
	"inference.timeout":                   "30s",
	"inference.retry_max":                 2,
	"inference.breaker.failure_threshold": 5,
	"inference.breaker.delay":             "30s",
	"ner.max_text_length":                 0,
	"auth.required":                       false,
	"telemetry.otlp_endpoint":             "",
	"telemetry.insecure":                  false,
	"telemetry.service_name":              "nerlens",
}

// LoadConfig loads the config file and ENV variables into a Config struct.
// A missing config file is not an error when no file was requested explicitly.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetConfigType("yaml")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
		log.Debug("no config file found, using defaults and environment")
	}

	// Environment variables take precedence over config file
	loadDotEnv()

	for key, env := range map[string]string{
		"inference.api_key": EnvPrefix + "_INFERENCE_API_KEY",
		"auth.secret":       EnvPrefix + "_AUTH_SECRET",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct constraints of cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := cfg.Server.MaxRequestBytes(); err != nil {
		return err
	}
	return nil
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	log.Info("Log level set to: ", level)
}
