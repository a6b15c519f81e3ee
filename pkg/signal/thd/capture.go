package thd

import "math"

// Capture is one acquired waveform handed to the analyzer. Advanced analysis
// consumes Time/Volts; stub analysis consumes Volts plus the nominal
// SampleRate and ignores Time. The analyzer does not retain the slices.
type Capture struct {
	// Time holds sample instants in seconds. May be nil for stub captures.
	Time []float64
	// Volts holds the sampled amplitudes.
	Volts []float64
	// SampleRate is the nominal rate in Hz, consulted only in stub mode.
	SampleRate float64
}

// Vrms returns the RMS amplitude of v, or NaN for empty input.
func Vrms(v []float64) float64 {
	if len(v) == 0 {
		return math.NaN()
	}

	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum / float64(len(v)))
}

// Vpp returns the peak-to-peak amplitude of v, or NaN for empty input.
func Vpp(v []float64) float64 {
	if len(v) == 0 {
		return math.NaN()
	}

	lo, hi := v[0], v[0]
	for _, x := range v[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return hi - lo
}

func maxAbs(v []float64) float64 {
	if len(v) == 0 {
		return math.NaN()
	}

	m := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}
