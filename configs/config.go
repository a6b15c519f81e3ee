package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	// Sweep execution settings
	Sweep SweepConfig `mapstructure:"sweep"`

	// Analyzer settings
	Analysis AnalysisConfig `mapstructure:"analysis"`

	// Synthetic session settings (stand-in for hardware drivers)
	Synth SynthConfig `mapstructure:"synth"`

	// Live capture monitor settings
	Monitor MonitorConfig `mapstructure:"monitor"`

	// Output formatting settings
	Output OutputConfig `mapstructure:"output"`
}

// SweepConfig contains sweep execution settings
type SweepConfig struct {
	StartHz float64       `mapstructure:"start_hz"`
	StopHz  float64       `mapstructure:"stop_hz"`
	Points  int           `mapstructure:"points"`
	Mode    string        `mapstructure:"mode"`
	Dwell   time.Duration `mapstructure:"dwell"`
	RefMode string        `mapstructure:"ref_mode"`
	RefHz   float64       `mapstructure:"ref_hz"`
	DropDB  float64       `mapstructure:"drop_db"`
}

// AnalysisConfig contains harmonic analyzer settings
type AnalysisConfig struct {
	// AdvancedNumeric is the capability descriptor feeding analyzer mode
	// selection; false forces the stub strategy everywhere.
	AdvancedNumeric bool    `mapstructure:"advanced_numeric"`
	Harmonics       int     `mapstructure:"harmonics"`
	Window          string  `mapstructure:"window"`
	F0HintHz        float64 `mapstructure:"f0_hint_hz"`
	NoiseMetrics    bool    `mapstructure:"noise_metrics"`
}

// SynthConfig contains synthetic capture source settings
type SynthConfig struct {
	SampleRate     float64 `mapstructure:"sample_rate"`
	Samples        int     `mapstructure:"samples"`
	Amplitude      float64 `mapstructure:"amplitude"`
	SecondHarmonic float64 `mapstructure:"second_harmonic"`
}

// MonitorConfig contains live monitor settings
type MonitorConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Duration time.Duration `mapstructure:"duration"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Precision       int  `mapstructure:"precision"`
	IncludeMetadata bool `mapstructure:"include_metadata"`
	Timestamps      bool `mapstructure:"timestamps"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config.Sweep.Points < 2 {
		return fmt.Errorf("sweep points must be >= 2")
	}

	if config.Sweep.StartHz <= 0 {
		return fmt.Errorf("sweep start frequency must be positive")
	}

	if config.Sweep.StopHz < config.Sweep.StartHz {
		return fmt.Errorf("sweep stop frequency must be >= start frequency")
	}

	if config.Sweep.Dwell < 0 {
		return fmt.Errorf("sweep dwell cannot be negative")
	}

	if config.Sweep.DropDB <= 0 {
		return fmt.Errorf("knee drop must be positive decibels")
	}

	if config.Analysis.Harmonics < 2 {
		return fmt.Errorf("analysis harmonics must be >= 2")
	}

	if config.Synth.SampleRate <= 0 {
		return fmt.Errorf("synth sample rate must be positive")
	}

	if config.Synth.Samples <= 0 {
		return fmt.Errorf("synth sample count must be positive")
	}

	if config.Monitor.Interval <= 0 {
		return fmt.Errorf("monitor interval must be positive")
	}

	return nil
}
