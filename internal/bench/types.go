package bench

import (
	"time"

	"github.com/signalbench/ampbench/pkg/signal/thd"
)

// PointStatus is the outcome of one frequency point.
type PointStatus string

const (
	// StatusOK means the point was configured, acquired, and analyzed.
	StatusOK PointStatus = "ok"
	// StatusFailed means configure or acquire failed; the run continued.
	StatusFailed PointStatus = "failed"
	// StatusCancelled means the run was cancelled before reaching the point.
	StatusCancelled PointStatus = "cancelled"
)

// SweepPoint is the immutable record of one frequency point. Exactly one of
// Result (StatusOK) or Err (StatusFailed) is meaningful; cancelled points
// carry neither.
type SweepPoint struct {
	FrequencyHz float64
	Status      PointStatus
	Result      *thd.Result
	// VrmsVolts and VppVolts are time-domain KPIs of the capture; NaN when
	// no capture was taken.
	VrmsVolts float64
	VppVolts  float64
	Err       string
}

// SweepReport is the ordered outcome of a sweep run: one entry per requested
// frequency, in request order, regardless of per-point failures. The
// orchestrator owns it during the run and hands it over complete.
type SweepReport struct {
	Points      []SweepPoint
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration

	OKCount        int
	FailedCount    int
	CancelledCount int
}

// Cancelled reports whether the run stopped before covering every point.
func (r *SweepReport) Cancelled() bool {
	return r.CancelledCount > 0
}

func (r *SweepReport) tally() {
	r.OKCount, r.FailedCount, r.CancelledCount = 0, 0, 0
	for _, p := range r.Points {
		switch p.Status {
		case StatusOK:
			r.OKCount++
		case StatusFailed:
			r.FailedCount++
		case StatusCancelled:
			r.CancelledCount++
		}
	}
}
