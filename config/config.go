package config

import (
	"github.com/kbukum/seqplan/logger"
	"github.com/kbukum/seqplan/validation"
)

// Config is the root configuration for the planner and its reference
// execution substrate.
type Config struct {
	Logging  logger.Config  `yaml:"logging" mapstructure:"logging"`
	Executor ExecutorConfig `yaml:"executor" mapstructure:"executor"`
}

// ExecutorConfig configures the bulk-execution substrate.
type ExecutorConfig struct {
	// MaxParallel limits concurrent execution agents per phase (0 = GOMAXPROCS).
	MaxParallel int `yaml:"max_parallel" mapstructure:"max_parallel" validate:"min=0"`
	// MinChunk is the smallest per-agent slice; inputs below it run on a
	// single agent.
	MinChunk int `yaml:"min_chunk" mapstructure:"min_chunk" validate:"min=1"`
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	c.Logging.ApplyDefaults()
	if c.Executor.MinChunk == 0 {
		c.Executor.MinChunk = 1024
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return validation.Validate(c.Executor)
}
