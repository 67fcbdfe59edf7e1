package config

import (
	"time"

	"github.com/sourcli/sour/internal/errors"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .sour.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// RefreshInterval is the render-loop tick.
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`

	// SampleInterval is the background sampling tick.
	SampleInterval time.Duration `yaml:"sample_interval" mapstructure:"sample_interval"`

	// ProcessLimit is the number of rows in the ranked process table.
	ProcessLimit int `yaml:"process_limit" mapstructure:"process_limit"`

	// KillTimeout bounds how long a tree kill waits before escalating
	// to SIGKILL.
	KillTimeout time.Duration `yaml:"kill_timeout" mapstructure:"kill_timeout"`

	// RootPath is the mount whose usage feeds the disk bar.
	RootPath string `yaml:"root_path" mapstructure:"root_path"`

	Speedtest SpeedtestConfig `yaml:"speedtest" mapstructure:"speedtest"`
}

// SpeedtestConfig controls the bandwidth measurement.
type SpeedtestConfig struct {
	// Endpoints are download URLs probed in order.
	Endpoints []string `yaml:"endpoints" mapstructure:"endpoints"`

	// UploadURL accepts arbitrary POST bodies for the upload phase.
	UploadURL string `yaml:"upload_url" mapstructure:"upload_url"`

	// Steps is the number of measurement steps per phase.
	Steps int `yaml:"steps" mapstructure:"steps"`

	// ChunkBytes is the transfer size of a single step.
	ChunkBytes int64 `yaml:"chunk_bytes" mapstructure:"chunk_bytes"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:         CurrentConfigVersion,
		RefreshInterval: 250 * time.Millisecond,
		SampleInterval:  time.Second,
		ProcessLimit:    10,
		KillTimeout:     5 * time.Second,
		RootPath:        "/",
		Speedtest: SpeedtestConfig{
			Steps:      20,
			ChunkBytes: 2 * 1024 * 1024,
		},
	}
}

// Validate checks the config for values the dashboard cannot run with.
func (c *Config) Validate() error {
	if c.RefreshInterval < 50*time.Millisecond {
		return errors.New(errors.ErrConfig,
			"refresh_interval too short",
			"Use at least 50ms; the default is 250ms")
	}
	if c.SampleInterval <= 0 {
		return errors.New(errors.ErrConfig,
			"sample_interval must be positive",
			"Use a duration like 1s or 500ms")
	}
	if c.ProcessLimit <= 0 {
		return errors.New(errors.ErrConfig,
			"process_limit must be positive",
			"The default is 10")
	}
	if c.KillTimeout <= 0 {
		return errors.New(errors.ErrConfig,
			"kill_timeout must be positive",
			"The default is 5s")
	}
	if c.Speedtest.Steps <= 0 {
		return errors.New(errors.ErrConfig,
			"speedtest.steps must be positive",
			"The default is 20")
	}
	if c.Speedtest.ChunkBytes <= 0 {
		return errors.New(errors.ErrConfig,
			"speedtest.chunk_bytes must be positive",
			"The default is 2097152 (2 MiB)")
	}
	return nil
}
