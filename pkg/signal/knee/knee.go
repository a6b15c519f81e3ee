// Package knee locates bandwidth rolloff points on a sparse
// frequency/amplitude response curve. Detection is fail-soft: preconditions
// that do not hold yield absent knees, never an error, so sweep
// post-processing can always run.
package knee

import (
	"math"
	"strings"
)

// RefMode selects how the reference amplitude is chosen.
type RefMode string

const (
	// RefModeMax references the maximum amplitude in the curve.
	RefModeMax RefMode = "max"
	// RefModeFrequency references the amplitude at the sample nearest RefHz.
	RefModeFrequency RefMode = "freq"
)

// ParseRefMode normalizes a user-supplied reference mode string.
func ParseRefMode(s string) RefMode {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(s)), "freq") {
		return RefModeFrequency
	}
	return RefModeMax
}

// Result holds the located knees. LowHz/HighHz are NaN when the curve never
// crosses the threshold on that side. Derived on demand, never stored.
type Result struct {
	LowHz  float64 `json:"low_knee_hz" yaml:"low_knee_hz"`
	HighHz float64 `json:"high_knee_hz" yaml:"high_knee_hz"`
	RefAmp float64 `json:"ref_amp" yaml:"ref_amp"`
	RefDB  float64 `json:"ref_db" yaml:"ref_db"`
}

// HasLow reports whether a low-side knee was found.
func (r Result) HasLow() bool { return !math.IsNaN(r.LowHz) }

// HasHigh reports whether a high-side knee was found.
func (r Result) HasHigh() bool { return !math.IsNaN(r.HighHz) }

// floorAmp keeps the dB conversion defined for zero amplitudes.
const floorAmp = 1e-18

// FindKnees scans outward from the reference sample for the first points
// where the curve drops dropDB decibels below the reference, interpolating
// linearly in dB between the bracketing samples for sub-sample resolution.
//
// Preconditions: len(freqs) == len(amps), at least 2 samples, strictly
// increasing frequencies, positive reference amplitude. Any violation
// returns a Result with every field NaN.
func FindKnees(freqs, amps []float64, refMode RefMode, refHz, dropDB float64) Result {
	absent := Result{
		LowHz:  math.NaN(),
		HighHz: math.NaN(),
		RefAmp: math.NaN(),
		RefDB:  math.NaN(),
	}

	if len(freqs) != len(amps) || len(freqs) < 2 || !strictlyIncreasing(freqs) {
		return absent
	}

	refIdx := referenceIndex(freqs, amps, refMode, refHz)
	refAmp := amps[refIdx]
	if math.IsNaN(refAmp) || refAmp <= 0 {
		return absent
	}

	refDB := 20 * math.Log10(refAmp)
	targetDB := refDB - dropDB

	db := make([]float64, len(amps))
	for i, a := range amps {
		db[i] = 20 * math.Log10(math.Max(a, floorAmp))
	}

	res := Result{
		LowHz:  math.NaN(),
		HighHz: math.NaN(),
		RefAmp: refAmp,
		RefDB:  refDB,
	}

	// Low side: walk up from the curve start toward the reference.
	prevF, prevDB := freqs[0], db[0]
	for i := 1; i <= refIdx; i++ {
		if f, ok := crossing(prevF, prevDB, freqs[i], db[i], targetDB); ok {
			res.LowHz = f
			break
		}
		prevF, prevDB = freqs[i], db[i]
	}

	// High side: walk from the reference toward the curve end.
	prevF, prevDB = freqs[refIdx], db[refIdx]
	for i := refIdx + 1; i < len(freqs); i++ {
		if f, ok := crossing(prevF, prevDB, freqs[i], db[i], targetDB); ok {
			res.HighHz = f
			break
		}
		prevF, prevDB = freqs[i], db[i]
	}

	return res
}

func referenceIndex(freqs, amps []float64, refMode RefMode, refHz float64) int {
	idx := 0

	if refMode == RefModeFrequency {
		best := math.Abs(freqs[0] - refHz)
		for i, f := range freqs[1:] {
			if d := math.Abs(f - refHz); d < best {
				best = d
				idx = i + 1
			}
		}
		return idx
	}

	for i, a := range amps[1:] {
		if a > amps[idx] {
			idx = i + 1
		}
	}
	return idx
}

// crossing reports the interpolated frequency at which the segment
// (f1,db1)-(f2,db2) crosses targetDB, in either direction.
func crossing(f1, db1, f2, db2, targetDB float64) (float64, bool) {
	descends := db1 >= targetDB && db2 <= targetDB
	ascends := db1 <= targetDB && db2 >= targetDB
	if !descends && !ascends {
		return 0, false
	}

	if db1 == db2 {
		return f2, true
	}

	frac := (targetDB - db1) / (db2 - db1)
	return f1 + frac*(f2-f1), true
}

func strictlyIncreasing(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if !(v[i] > v[i-1]) {
			return false
		}
	}
	return true
}
