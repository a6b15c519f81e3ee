// Package thd computes total harmonic distortion and related signal-quality
// metrics from captured waveforms.
//
// The analyzer has two strategies fixed at construction time from an
// explicit Capability value. Advanced mode runs a windowed FFT over the
// capture; stub mode returns a fixed placeholder so call sites stay
// functional on hosts without the full numeric stack. Degenerate input never
// produces an error: undefined metrics are reported as NaN.
package thd

import "math"

// Capability describes which optional numeric support is present. It is an
// explicit value handed to constructors, never probed from global state.
type Capability struct {
	// AdvancedNumeric reports whether FFT-based analysis is available.
	AdvancedNumeric bool
}

// Mode identifies the analysis strategy an Analyzer was built with.
type Mode int

const (
	// ModeStub returns fixed placeholder results.
	ModeStub Mode = iota
	// ModeAdvanced runs windowed-FFT harmonic analysis.
	ModeAdvanced
)

func (m Mode) String() string {
	if m == ModeAdvanced {
		return "advanced"
	}
	return "stub"
}

// Window selects the leakage-reduction window applied before the FFT.
type Window string

const (
	WindowHann    Window = "hann"
	WindowHamming Window = "hamming"
	WindowNone    Window = "none"
)

const (
	// DefaultHarmonics is the number of harmonics summed when the caller
	// does not say otherwise.
	DefaultHarmonics = 10

	// stubFundamentalHz is the fixed placeholder fundamental reported in
	// stub mode.
	stubFundamentalHz = 1000.0

	// minSamples is the shortest capture the advanced path will analyze.
	minSamples = 16
)

// Config tunes the advanced analysis path.
type Config struct {
	// FundamentalHintHz steers fundamental detection to the nearest bin.
	// Zero or negative means auto-detect from the dominant peak.
	FundamentalHintHz float64
	// Harmonics is the number of harmonics included in the THD sum
	// (defaults to DefaultHarmonics).
	Harmonics int
	// Window is the pre-FFT window (defaults to WindowHann).
	Window Window
	// IncludeNoiseMetrics adds SNR and noise-floor figures to results.
	IncludeNoiseMetrics bool
}

// Harmonic is one row of the harmonic table.
type Harmonic struct {
	K      int     `json:"k" yaml:"k"`
	FreqHz float64 `json:"freq_hz" yaml:"freq_hz"`
	Mag    float64 `json:"mag" yaml:"mag"`
}

// Result holds the metrics of one analysis call. THDRatio and
// FundamentalAmp are non-negative when defined; NaN marks a metric that is
// undefined for the given input, which is a valid outcome rather than an
// error.
type Result struct {
	THDRatio       float64
	F0EstimateHz   float64
	FundamentalAmp float64
	// Harmonics is the table of components k = 1..nharm up to Nyquist.
	// Nil in stub mode and for degenerate input.
	Harmonics []Harmonic
	// SNRdB and NoiseFloorDB are relative to the fundamental and populated
	// only when the analyzer was configured with IncludeNoiseMetrics in
	// advanced mode; otherwise NaN.
	SNRdB        float64
	NoiseFloorDB float64
}

// Analyzer computes distortion metrics with a strategy chosen once at
// construction. Analyze never inspects argument shapes to pick a path.
type Analyzer struct {
	mode Mode
	cfg  Config
}

// NewAnalyzer builds an analyzer for the given capability. The mode is
// resolved here and never re-evaluated per call.
func NewAnalyzer(capability Capability, cfg Config) *Analyzer {
	if cfg.Harmonics < 2 {
		cfg.Harmonics = DefaultHarmonics
	}
	if cfg.Window == "" {
		cfg.Window = WindowHann
	}

	mode := ModeStub
	if capability.AdvancedNumeric {
		mode = ModeAdvanced
	}

	return &Analyzer{mode: mode, cfg: cfg}
}

// Mode reports the strategy fixed at construction.
func (a *Analyzer) Mode() Mode {
	return a.mode
}

// Analyze computes distortion metrics for one capture. It always succeeds;
// inputs the active strategy cannot analyze yield NaN metric fields.
func (a *Analyzer) Analyze(c Capture) Result {
	if a.mode == ModeAdvanced {
		return a.analyzeAdvanced(c)
	}
	return a.analyzeStub(c)
}

// analyzeStub keeps call sites functional without the numeric stack: zero
// distortion, a fixed nominal fundamental, and the peak sample as amplitude.
func (a *Analyzer) analyzeStub(c Capture) Result {
	return Result{
		THDRatio:       0.0,
		F0EstimateHz:   stubFundamentalHz,
		FundamentalAmp: maxAbs(c.Volts),
		SNRdB:          math.NaN(),
		NoiseFloorDB:   math.NaN(),
	}
}

func (a *Analyzer) analyzeAdvanced(c Capture) Result {
	if len(c.Volts) < minSamples {
		return Result{
			THDRatio:       math.NaN(),
			F0EstimateHz:   math.NaN(),
			FundamentalAmp: math.NaN(),
			SNRdB:          math.NaN(),
			NoiseFloorDB:   math.NaN(),
		}
	}

	spec := computeSpectrum(c.Time, c.Volts, a.cfg.Window)
	fundBin := spec.fundamentalBin(a.cfg.FundamentalHintHz)

	res := Result{
		F0EstimateHz: spec.freqs[fundBin],
		SNRdB:        math.NaN(),
		NoiseFloorDB: math.NaN(),
	}

	fundAmp := spec.mags[fundBin]
	if fundAmp <= 0 {
		// Division by zero would be meaningless; report the located bin
		// with an undefined ratio.
		res.THDRatio = math.NaN()
		res.FundamentalAmp = 0.0
		return res
	}
	res.FundamentalAmp = fundAmp

	sumSquares := 0.0
	for _, hk := range spec.harmonicBins(fundBin, a.cfg.Harmonics) {
		sumSquares += spec.mags[hk] * spec.mags[hk]
	}
	res.THDRatio = math.Sqrt(sumSquares) / fundAmp

	res.Harmonics = harmonicTable(spec, fundBin, a.cfg.Harmonics)

	if a.cfg.IncludeNoiseMetrics {
		res.SNRdB, res.NoiseFloorDB = noiseMetrics(spec, fundBin, a.cfg.Harmonics)
	}

	return res
}

// harmonicTable lists components k = 1..nharm. The scan ends at the first
// harmonic whose target frequency exceeds the last spectrum bin.
func harmonicTable(spec spectrum, fundBin, nharm int) []Harmonic {
	f0 := spec.freqs[fundBin]
	out := make([]Harmonic, 0, nharm)

	for k := 1; k <= nharm; k++ {
		target := float64(k) * f0
		if target > spec.nyquistHz() {
			break
		}
		hk := spec.nearestBin(target)
		out = append(out, Harmonic{K: k, FreqHz: spec.freqs[hk], Mag: spec.mags[hk]})
	}
	return out
}
