package configs

import (
	"time"

	"github.com/spf13/viper"
)

// SetDefaults sets default configuration values for all components.
func SetDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("output_format", "table")

	// Sweep defaults: the classic audio band, log-spaced
	v.SetDefault("sweep.start_hz", 20.0)
	v.SetDefault("sweep.stop_hz", 20000.0)
	v.SetDefault("sweep.points", 31)
	v.SetDefault("sweep.mode", "log")
	v.SetDefault("sweep.dwell", 0*time.Millisecond)
	v.SetDefault("sweep.ref_mode", "max")
	v.SetDefault("sweep.ref_hz", 1000.0)
	v.SetDefault("sweep.drop_db", 3.0)

	// Analyzer defaults
	v.SetDefault("analysis.advanced_numeric", true)
	v.SetDefault("analysis.harmonics", 10)
	v.SetDefault("analysis.window", "hann")
	v.SetDefault("analysis.f0_hint_hz", 0.0)
	v.SetDefault("analysis.noise_metrics", false)

	// Synthetic session defaults
	v.SetDefault("synth.sample_rate", 50000.0)
	v.SetDefault("synth.samples", 4096)
	v.SetDefault("synth.amplitude", 1.0)
	v.SetDefault("synth.second_harmonic", 0.05)

	// Monitor defaults
	v.SetDefault("monitor.interval", time.Second)
	v.SetDefault("monitor.duration", 0*time.Second)

	// Output defaults
	v.SetDefault("output.precision", 4)
	v.SetDefault("output.include_metadata", true)
	v.SetDefault("output.timestamps", true)
}

// DefaultConfig returns a Config populated with the default values.
func DefaultConfig() *Config {
	return &Config{
		Verbose:      false,
		LogLevel:     "info",
		OutputFormat: "table",
		Sweep: SweepConfig{
			StartHz: 20.0,
			StopHz:  20000.0,
			Points:  31,
			Mode:    "log",
			RefMode: "max",
			RefHz:   1000.0,
			DropDB:  3.0,
		},
		Analysis: AnalysisConfig{
			AdvancedNumeric: true,
			Harmonics:       10,
			Window:          "hann",
		},
		Synth: SynthConfig{
			SampleRate:     50000.0,
			Samples:        4096,
			Amplitude:      1.0,
			SecondHarmonic: 0.05,
		},
		Monitor: MonitorConfig{
			Interval: time.Second,
		},
		Output: OutputConfig{
			Precision:       4,
			IncludeMetadata: true,
			Timestamps:      true,
		},
	}
}
