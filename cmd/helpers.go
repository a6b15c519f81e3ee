package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/viper"

	"github.com/signalbench/ampbench/configs"
	"github.com/signalbench/ampbench/pkg/export"
	"github.com/signalbench/ampbench/pkg/instrument"
	"github.com/signalbench/ampbench/pkg/signal/thd"
)

// loadValidatedConfig resolves and validates the effective configuration.
func loadValidatedConfig() (*configs.Config, error) {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := configs.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// currentFormat resolves the effective output format.
func currentFormat() (export.Format, error) {
	return export.ParseFormat(viper.GetString("output_format"))
}

// buildAnalyzer constructs the analyzer from the capability descriptor and
// analysis settings in the configuration.
func buildAnalyzer(cfg *configs.Config) *thd.Analyzer {
	return thd.NewAnalyzer(
		thd.Capability{AdvancedNumeric: cfg.Analysis.AdvancedNumeric},
		thd.Config{
			FundamentalHintHz:   cfg.Analysis.F0HintHz,
			Harmonics:           cfg.Analysis.Harmonics,
			Window:              thd.Window(cfg.Analysis.Window),
			IncludeNoiseMetrics: cfg.Analysis.NoiseMetrics,
		},
	)
}

// buildSynthSession constructs the synthetic instrument session standing in
// for the hardware drivers.
func buildSynthSession(cfg *configs.Config) *instrument.SynthSession {
	var harmonics map[int]float64
	if cfg.Synth.SecondHarmonic > 0 {
		harmonics = map[int]float64{2: cfg.Synth.SecondHarmonic}
	}

	return instrument.NewSynthSession(instrument.SynthConfig{
		SampleRate: cfg.Synth.SampleRate,
		Samples:    cfg.Synth.Samples,
		Amplitude:  cfg.Synth.Amplitude,
		Harmonics:  harmonics,
	})
}

// readPairsCSV reads two-column float CSV rows (no header expected; a
// header row is skipped if present).
func readPairsCSV(path string) (col1, col2 []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	r.TrimLeadingSpace = true

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}

		a, err1 := strconv.ParseFloat(rec[0], 64)
		b, err2 := strconv.ParseFloat(rec[1], 64)
		if err1 != nil || err2 != nil {
			if len(col1) == 0 {
				continue // header row
			}
			return nil, nil, fmt.Errorf("%s: non-numeric row %v", path, rec)
		}

		col1 = append(col1, a)
		col2 = append(col2, b)
	}

	if len(col1) == 0 {
		return nil, nil, fmt.Errorf("%s: no numeric rows", path)
	}
	return col1, col2, nil
}
