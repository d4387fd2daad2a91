package main

import (
	"github.com/kbukum/divide/config"
	"github.com/kbukum/divide/errors"
	"github.com/kbukum/divide/validation"
)

const serviceName = "divide-bench"

// Workload names.
const (
	WorkloadUniform = "uniform"
	WorkloadSkewed  = "skewed"
)

// BenchConfig is the configuration of the divide-bench binary.
type BenchConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Divide    config.DivideConfig    `yaml:"divide" mapstructure:"divide"`
	Telemetry config.TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
	Bench     BenchSettings          `yaml:"bench" mapstructure:"bench"`
}

// BenchSettings selects what the harness measures.
type BenchSettings struct {
	// Strategy is equal, dynamic or both.
	Strategy  string   `yaml:"strategy" mapstructure:"strategy" validate:"oneof=equal dynamic both"`
	Size      int      `yaml:"size" mapstructure:"size" validate:"gte=1"`
	Rounds    int      `yaml:"rounds" mapstructure:"rounds" validate:"gte=1"`
	Workloads []string `yaml:"workloads" mapstructure:"workloads" validate:"min=1,dive,oneof=uniform skewed"`
}

// ApplyDefaults applies default values to every section.
func (c *BenchConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Divide.ApplyDefaults()
	c.Telemetry.ApplyDefaults()

	if c.Bench.Strategy == "" {
		c.Bench.Strategy = "both"
	}
	if c.Bench.Size == 0 {
		c.Bench.Size = 1000
	}
	if c.Bench.Rounds == 0 {
		c.Bench.Rounds = 20
	}
	if len(c.Bench.Workloads) == 0 {
		c.Bench.Workloads = []string{WorkloadUniform, WorkloadSkewed}
	}
}

// Validate validates every section.
func (c *BenchConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Divide.Validate(); err != nil {
		return errors.InvalidConfig("divide", err.Error()).WithCause(err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	return validation.Struct(&c.Bench)
}
