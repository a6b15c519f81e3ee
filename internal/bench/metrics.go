package bench

import (
	"math"

	"github.com/signalbench/ampbench/pkg/signal/knee"
)

// ResponseCurve extracts the (frequency, Vrms) response curve from the ok
// points of a report, in sweep order, skipping points without a usable
// amplitude. The curve feeds the knee detector and external plotting sinks.
func ResponseCurve(r *SweepReport) (freqs, amps []float64) {
	for _, p := range r.Points {
		if p.Status != StatusOK || math.IsNaN(p.VrmsVolts) {
			continue
		}
		freqs = append(freqs, p.FrequencyHz)
		amps = append(amps, p.VrmsVolts)
	}
	return freqs, amps
}

// FindKnees recomputes the rolloff points of a report's response curve.
// Degenerate curves yield absent knees, matching the detector's fail-soft
// contract.
func FindKnees(r *SweepReport, refMode knee.RefMode, refHz, dropDB float64) knee.Result {
	freqs, amps := ResponseCurve(r)
	return knee.FindKnees(freqs, amps, refMode, refHz, dropDB)
}
