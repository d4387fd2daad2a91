package config

import (
	"time"

	"github.com/kbukum/divide/errors"
	"github.com/kbukum/divide/validation"
)

const (
	// DefaultThreshold is the minimum input length that takes the parallel path.
	DefaultThreshold = 10
	// DefaultStrategy is the strategy used by strategy-dispatching calls.
	DefaultStrategy = "dynamic"
)

// DivideConfig configures the work-distribution defaults.
//
//	divide:
//	  threshold: 10
//	  workers: 0        # 0 means one per available core
//	  strategy: dynamic # equal | dynamic
type DivideConfig struct {
	Threshold int    `yaml:"threshold" mapstructure:"threshold" validate:"gte=1"`
	Workers   int    `yaml:"workers" mapstructure:"workers" validate:"gte=0"`
	Strategy  string `yaml:"strategy" mapstructure:"strategy" validate:"oneof=equal dynamic"`
}

// ApplyDefaults applies default values to the divide configuration.
func (c *DivideConfig) ApplyDefaults() {
	if c.Threshold == 0 {
		c.Threshold = DefaultThreshold
	}
	if c.Strategy == "" {
		c.Strategy = DefaultStrategy
	}
}

// Validate validates the divide configuration.
func (c *DivideConfig) Validate() error {
	return validation.Struct(c)
}

// TelemetryConfig configures OTLP export of divide metrics and spans.
type TelemetryConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// ApplyDefaults applies default values to the telemetry configuration.
// Defaults only matter when telemetry is enabled.
func (c *TelemetryConfig) ApplyDefaults() {
	if !c.Enabled {
		return
	}
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// Validate validates the telemetry configuration.
func (c *TelemetryConfig) Validate() error {
	if c.Enabled && c.Endpoint == "" {
		return errors.MissingField("telemetry.endpoint")
	}
	return validation.Struct(c)
}
