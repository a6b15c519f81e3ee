package thd

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
)

// spectrum is a one-sided magnitude spectrum with its bin frequencies.
type spectrum struct {
	mags  []float64
	freqs []float64
	binHz float64
}

// computeSpectrum windows the capture and returns the one-sided magnitude
// spectrum. The sample interval is the median of the time deltas; a capture
// with a degenerate time axis falls back to span/(n-1), then to 1 microsecond.
func computeSpectrum(t, v []float64, win Window) spectrum {
	n := len(v)
	dt := sampleInterval(t, n)

	buf := make([]float64, n)
	copy(buf, v)

	switch win {
	case WindowHamming:
		window.Hamming(buf)
	case WindowNone:
		// leave buf untouched
	default:
		window.Hann(buf)
	}

	full := fft.FFTReal(buf)
	bins := n/2 + 1
	binHz := 1.0 / (float64(n) * dt)

	mags := make([]float64, bins)
	freqs := make([]float64, bins)
	for i := 0; i < bins; i++ {
		mags[i] = cmplx.Abs(full[i])
		freqs[i] = float64(i) * binHz
	}

	return spectrum{mags: mags, freqs: freqs, binHz: binHz}
}

func sampleInterval(t []float64, n int) float64 {
	dt := medianDelta(t)
	if dt > 0 {
		return dt
	}

	if len(t) >= 2 && n > 1 {
		if span := t[len(t)-1] - t[0]; span > 0 {
			return span / float64(n-1)
		}
	}
	return 1e-6
}

func medianDelta(t []float64) float64 {
	if len(t) < 2 {
		return 0
	}

	diffs := make([]float64, len(t)-1)
	for i := 1; i < len(t); i++ {
		diffs[i-1] = t[i] - t[i-1]
	}
	sort.Float64s(diffs)

	mid := len(diffs) / 2
	if len(diffs)%2 == 1 {
		return diffs[mid]
	}
	return (diffs[mid-1] + diffs[mid]) / 2
}

// fundamentalBin locates the fundamental. With no usable hint the dominant
// non-DC peak wins; with a hint the nearest bin wins unless it lands on DC.
func (s spectrum) fundamentalBin(hintHz float64) int {
	if hintHz > 0 {
		idx := s.nearestBin(hintHz)
		if idx > 0 {
			return idx
		}
	}
	return s.peakBin()
}

func (s spectrum) peakBin() int {
	if len(s.mags) < 2 {
		return 0
	}
	return floats.MaxIdx(s.mags[1:]) + 1
}

func (s spectrum) nearestBin(freqHz float64) int {
	if s.binHz <= 0 {
		return 0
	}

	idx := int(math.Round(freqHz / s.binHz))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.mags) {
		idx = len(s.mags) - 1
	}
	return idx
}

func (s spectrum) nyquistHz() float64 {
	return s.freqs[len(s.freqs)-1]
}

// harmonicBins returns the bin index of each harmonic k = 2..nharm of the
// fundamental bin. Harmonics whose target frequency lies past the last bin
// end the scan; targets that resolve to DC or out of range are dropped from
// the sum rather than clipped.
func (s spectrum) harmonicBins(fundBin, nharm int) []int {
	f0 := s.freqs[fundBin]
	out := make([]int, 0, nharm)

	for k := 2; k <= nharm; k++ {
		target := float64(k) * f0
		if target > s.nyquistHz() {
			break
		}
		hk := s.nearestBin(target)
		if hk <= 0 || hk >= len(s.mags) {
			continue
		}
		out = append(out, hk)
	}
	return out
}
