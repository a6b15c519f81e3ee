package instrument

import (
	"context"
	"math"
	"sort"

	"github.com/signalbench/ampbench/pkg/signal/thd"
)

// SynthConfig describes the deterministic waveform a SynthSession produces.
type SynthConfig struct {
	// SampleRate in Hz (default 50000).
	SampleRate float64
	// Samples per capture (default 4096).
	Samples int
	// Amplitude of the fundamental in volts (default 1.0).
	Amplitude float64
	// Harmonics maps harmonic index k (>= 2) to its amplitude relative to
	// the fundamental. Nil means a clean tone.
	Harmonics map[int]float64
	// Gain shapes amplitude versus frequency, emulating the device under
	// test's frequency response. Nil means flat unity gain.
	Gain func(freqHz float64) float64
}

func (c SynthConfig) withDefaults() SynthConfig {
	if c.SampleRate <= 0 {
		c.SampleRate = 50000.0
	}
	if c.Samples <= 0 {
		c.Samples = 4096
	}
	if c.Amplitude <= 0 {
		c.Amplitude = 1.0
	}
	return c
}

// SynthSession is a hardware-free Session producing synthetic captures. It
// stands in for the generator/scope pair in the sweep and monitor commands
// and in tests; two sessions with equal configs produce identical captures.
type SynthSession struct {
	cfg    SynthConfig
	freqHz float64
}

// NewSynthSession creates a synthetic session.
func NewSynthSession(cfg SynthConfig) *SynthSession {
	return &SynthSession{cfg: cfg.withDefaults()}
}

// Configure records the stimulus frequency for the next acquisition.
func (s *SynthSession) Configure(ctx context.Context, freqHz float64) error {
	if err := ctx.Err(); err != nil {
		return NewError("configure", freqHz, ErrCodeConfigure, "context done", err)
	}
	if freqHz <= 0 {
		return NewError("configure", freqHz, ErrCodeUnsupported, "frequency must be > 0", nil)
	}

	s.freqHz = freqHz
	return nil
}

// Acquire synthesizes one capture at the configured frequency.
func (s *SynthSession) Acquire(ctx context.Context, freqHz float64) (thd.Capture, error) {
	if err := ctx.Err(); err != nil {
		return thd.Capture{}, NewError("acquire", freqHz, ErrCodeAcquire, "context done", err)
	}

	f := s.freqHz
	if f <= 0 {
		f = freqHz
	}

	gain := 1.0
	if s.cfg.Gain != nil {
		gain = s.cfg.Gain(f)
	}

	// Summation order must be fixed so equal configs yield bit-identical
	// captures.
	ks := make([]int, 0, len(s.cfg.Harmonics))
	for k := range s.cfg.Harmonics {
		ks = append(ks, k)
	}
	sort.Ints(ks)

	n := s.cfg.Samples
	t := make([]float64, n)
	v := make([]float64, n)
	amp := s.cfg.Amplitude * gain

	for i := 0; i < n; i++ {
		ti := float64(i) / s.cfg.SampleRate
		sample := math.Sin(2 * math.Pi * f * ti)
		for _, k := range ks {
			sample += s.cfg.Harmonics[k] * math.Sin(2*math.Pi*float64(k)*f*ti)
		}
		t[i] = ti
		v[i] = amp * sample
	}

	return thd.Capture{Time: t, Volts: v, SampleRate: s.cfg.SampleRate}, nil
}
