package config

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Config holds the configuration of the application
// Use config.LoadConfig to create a new instance
type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Inference InferenceConfig `mapstructure:"inference" yaml:"inference"`
	NER       NERConfig       `mapstructure:"ner" yaml:"ner"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Auth      AuthConfig      `mapstructure:"auth" yaml:"auth"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`
}

type ServerConfig struct {
	Host              string        `mapstructure:"host" yaml:"host"`
	Port              int           `mapstructure:"port" yaml:"port" validate:"min=1,max=65535"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout" validate:"gte=0"`

	// MaxRequestSize is a human readable size, e.g. "1MB" or "512KiB".
	MaxRequestSize string `mapstructure:"max_request_size" yaml:"max_request_size" validate:"required"`

	// CustomHeaders are added to every response. Values prefixed with "env:"
	// are read from the named environment variable.
	CustomHeaders map[string]string `mapstructure:"custom_headers" yaml:"custom_headers"`
}

// MaxRequestBytes parses MaxRequestSize.
func (s ServerConfig) MaxRequestBytes() (int64, error) {
	n, err := humanize.ParseBytes(s.MaxRequestSize)
	if err != nil {
		return 0, fmt.Errorf("invalid server.max_request_size %q: %w", s.MaxRequestSize, err)
	}
	return int64(n), nil
}

// Addr returns the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type InferenceConfig struct {
	ServerURL           string        `mapstructure:"server_url" yaml:"server_url" validate:"required,url"`
	Model               string        `mapstructure:"model" yaml:"model" validate:"required"`
	AggregationStrategy string        `mapstructure:"aggregation_strategy" yaml:"aggregation_strategy" validate:"oneof=simple first average max"`
	Timeout             time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"gt=0"`
	RetryMax            int           `mapstructure:"retry_max" yaml:"retry_max" validate:"gte=0"`
	Breaker             BreakerConfig `mapstructure:"breaker" yaml:"breaker"`

	// APIKey is loaded from ENV not config file.
	APIKey string `mapstructure:"api_key" yaml:"-"`
}

// BreakerConfig configures the circuit breaker guarding the inference engine.
// A zero FailureThreshold disables the breaker.
type BreakerConfig struct {
	FailureThreshold uint          `mapstructure:"failure_threshold" yaml:"failure_threshold"`
	Delay            time.Duration `mapstructure:"delay" yaml:"delay" validate:"gte=0"`
}

type NERConfig struct {
	// MaxTextLength is measured in characters. 0 means unlimited.
	MaxTextLength int `mapstructure:"max_text_length" yaml:"max_text_length" validate:"gte=0"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn warning error"`
}

type AuthConfig struct {
	Secret   string `mapstructure:"secret" yaml:"-" validate:"required_if=Required true"`
	Required bool   `mapstructure:"required" yaml:"required"`
}

type TelemetryConfig struct {
	// OTLPEndpoint is a host:port accepting OTLP over HTTP. Tracing is off when empty.
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
	Insecure     bool   `mapstructure:"insecure" yaml:"insecure"`
	ServiceName  string `mapstructure:"service_name" yaml:"service_name"`
}
