package knee

import (
	"math"
	"testing"
)

func TestFindKneesBothSides(t *testing.T) {
	freqs := []float64{100, 200, 1000, 5000, 10000}
	amps := []float64{0.5, 1, 1, 1, 0.5}

	res := FindKnees(freqs, amps, RefModeMax, 0, 3.0)

	if !res.HasLow() || !res.HasHigh() {
		t.Fatalf("expected both knees, got low=%v high=%v", res.LowHz, res.HighHz)
	}

	// 0.5 is -6.02 dB; the -3 dB point sits almost exactly halfway along
	// each bracketing segment after interpolating in dB.
	if math.Abs(res.LowHz-150.17) > 0.1 {
		t.Errorf("low knee: expected ~150.17 Hz, got %v", res.LowHz)
	}
	if math.Abs(res.HighHz-7491.4) > 1.0 {
		t.Errorf("high knee: expected ~7491.4 Hz, got %v", res.HighHz)
	}
	if res.RefAmp != 1.0 {
		t.Errorf("ref amp: expected 1.0, got %v", res.RefAmp)
	}
	if math.Abs(res.RefDB) > 1e-9 {
		t.Errorf("ref dB: expected 0, got %v", res.RefDB)
	}
}

func TestFindKneesAbsentSides(t *testing.T) {
	// Flat curve: no knee on either side.
	res := FindKnees([]float64{100, 1000, 10000}, []float64{1, 1, 1}, RefModeMax, 0, 3.0)
	if res.HasLow() {
		t.Errorf("flat curve: unexpected low knee %v", res.LowHz)
	}
	if res.HasHigh() {
		t.Errorf("flat curve: unexpected high knee %v", res.HighHz)
	}

	// Highpass shape: only a low knee exists.
	res = FindKnees([]float64{10, 100, 1000, 10000}, []float64{0.1, 0.9, 1, 1}, RefModeMax, 0, 3.0)
	if !res.HasLow() {
		t.Error("highpass curve: expected a low knee")
	}
	if res.HasHigh() {
		t.Errorf("highpass curve: unexpected high knee %v", res.HighHz)
	}

	// Lowpass shape: only a high knee exists.
	res = FindKnees([]float64{10, 100, 1000, 10000}, []float64{1, 1, 0.9, 0.1}, RefModeMax, 0, 3.0)
	if res.HasLow() {
		t.Errorf("lowpass curve: unexpected low knee %v", res.LowHz)
	}
	if !res.HasHigh() {
		t.Error("lowpass curve: expected a high knee")
	}
}

func TestFindKneesFrequencyReference(t *testing.T) {
	freqs := []float64{100, 500, 1000, 5000, 10000}
	amps := []float64{0.2, 0.8, 1.0, 2.0, 0.2}

	// Referencing 1 kHz (amp 1.0) instead of the 5 kHz maximum moves the
	// threshold down, so the high knee lands past 5 kHz.
	res := FindKnees(freqs, amps, RefModeFrequency, 1000, 3.0)
	if res.RefAmp != 1.0 {
		t.Fatalf("ref amp: expected 1.0, got %v", res.RefAmp)
	}
	if !res.HasHigh() || res.HighHz <= 5000 {
		t.Errorf("high knee: expected past 5000 Hz, got %v", res.HighHz)
	}
}

func TestFindKneesPreconditions(t *testing.T) {
	tests := []struct {
		name  string
		freqs []float64
		amps  []float64
	}{
		{"length mismatch", []float64{1, 2, 3}, []float64{1, 1}},
		{"single sample", []float64{100}, []float64{1}},
		{"empty", nil, nil},
		{"not increasing", []float64{100, 100, 1000}, []float64{1, 1, 1}},
		{"decreasing", []float64{1000, 100}, []float64{1, 1}},
		{"zero reference", []float64{100, 1000}, []float64{0, 0}},
		{"nan reference", []float64{100, 1000}, []float64{math.NaN(), math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := FindKnees(tt.freqs, tt.amps, RefModeMax, 0, 3.0)
			if res.HasLow() || res.HasHigh() {
				t.Errorf("expected absent knees, got low=%v high=%v", res.LowHz, res.HighHz)
			}
			if !math.IsNaN(res.RefAmp) || !math.IsNaN(res.RefDB) {
				t.Errorf("expected NaN reference, got amp=%v db=%v", res.RefAmp, res.RefDB)
			}
		})
	}
}

func TestFindKneesZeroAmplitudeSamples(t *testing.T) {
	// Zero samples clamp to the amplitude floor instead of producing -Inf.
	freqs := []float64{10, 100, 1000, 10000}
	amps := []float64{0, 1, 1, 0}

	res := FindKnees(freqs, amps, RefModeMax, 0, 3.0)
	if !res.HasLow() || !res.HasHigh() {
		t.Fatalf("expected both knees, got low=%v high=%v", res.LowHz, res.HighHz)
	}
	if res.LowHz <= 10 || res.LowHz >= 100 {
		t.Errorf("low knee: expected inside (10, 100), got %v", res.LowHz)
	}
	if res.HighHz <= 1000 || res.HighHz >= 10000 {
		t.Errorf("high knee: expected inside (1000, 10000), got %v", res.HighHz)
	}
}

func TestParseRefMode(t *testing.T) {
	if got := ParseRefMode("freq"); got != RefModeFrequency {
		t.Errorf("ParseRefMode(freq): got %q", got)
	}
	if got := ParseRefMode("frequency"); got != RefModeFrequency {
		t.Errorf("ParseRefMode(frequency): got %q", got)
	}
	if got := ParseRefMode("max"); got != RefModeMax {
		t.Errorf("ParseRefMode(max): got %q", got)
	}
	if got := ParseRefMode(""); got != RefModeMax {
		t.Errorf("ParseRefMode empty: got %q", got)
	}
}
