// Package bench sequences hardware-like configure/acquire operations across
// a frequency set and collects per-point results into a SweepReport.
//
// The orchestrator is strictly sequential: instrument operations are assumed
// non-reentrant and never overlap. Individual point failures are recorded
// and the run continues; a sweep invocation always returns a complete
// report, one entry per requested frequency, in request order.
package bench

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/signalbench/ampbench/internal/logging"
	"github.com/signalbench/ampbench/pkg/instrument"
	"github.com/signalbench/ampbench/pkg/signal/thd"
)

// Config assembles an Orchestrator's collaborators. Session and Analyzer are
// required; the logger defaults to the standard stderr logger.
type Config struct {
	Session  instrument.Session
	Analyzer *thd.Analyzer
	Logger   logging.Logger
	// Dwell is an optional settle delay between configuring the stimulus
	// and acquiring, mirroring real generator/amp settling time.
	Dwell time.Duration
}

// Orchestrator runs sweeps. Safe for reuse across runs; it keeps no state
// between them.
type Orchestrator struct {
	session  instrument.Session
	analyzer *thd.Analyzer
	logger   logging.Logger
	dwell    time.Duration
}

// NewOrchestrator creates a sweep orchestrator.
func NewOrchestrator(cfg Config) (*Orchestrator, error) {
	if cfg.Session == nil {
		return nil, errors.New("bench: session is required")
	}
	if cfg.Analyzer == nil {
		return nil, errors.New("bench: analyzer is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &Orchestrator{
		session:  cfg.Session,
		analyzer: cfg.Analyzer,
		logger:   logger,
		dwell:    cfg.Dwell,
	}, nil
}

// RunSweep processes every frequency in order and returns the report. It
// never returns early because of per-point failures. Cancellation is
// cooperative and checked once per point boundary; on cancellation the
// remaining frequencies are appended with StatusCancelled so the report
// still has one entry per requested frequency.
func (o *Orchestrator) RunSweep(ctx context.Context, freqs []float64) *SweepReport {
	report := &SweepReport{
		Points:    make([]SweepPoint, 0, len(freqs)),
		StartedAt: time.Now(),
	}

	o.logger.Debug("starting sweep", logging.Fields{
		"points":        len(freqs),
		"analyzer_mode": o.analyzer.Mode().String(),
		"dwell_ms":      o.dwell.Milliseconds(),
	})

	for i, f := range freqs {
		if ctx.Err() != nil {
			o.logger.Info("sweep cancelled", logging.Fields{
				"completed": i,
				"remaining": len(freqs) - i,
			})
			for _, rest := range freqs[i:] {
				report.Points = append(report.Points, cancelledPoint(rest))
			}
			break
		}

		report.Points = append(report.Points, o.measurePoint(ctx, f))
	}

	report.CompletedAt = time.Now()
	report.Duration = report.CompletedAt.Sub(report.StartedAt)
	report.tally()

	o.logger.Debug("sweep completed", logging.Fields{
		"ok":         report.OKCount,
		"failed":     report.FailedCount,
		"cancelled":  report.CancelledCount,
		"duration_s": report.Duration.Seconds(),
	})

	return report
}

// measurePoint runs configure → dwell → acquire → analyze for one frequency.
// Failures are converted into the point record, never propagated.
func (o *Orchestrator) measurePoint(ctx context.Context, freqHz float64) SweepPoint {
	if err := o.session.Configure(ctx, freqHz); err != nil {
		o.logger.Warn("configure failed", logging.Fields{
			"freq_hz": freqHz,
			"error":   err.Error(),
		})
		return failedPoint(freqHz, err)
	}

	if o.dwell > 0 {
		time.Sleep(o.dwell)
	}

	capture, err := o.session.Acquire(ctx, freqHz)
	if err != nil {
		o.logger.Warn("acquire failed", logging.Fields{
			"freq_hz": freqHz,
			"error":   err.Error(),
		})
		return failedPoint(freqHz, err)
	}

	result := o.analyzer.Analyze(capture)

	return SweepPoint{
		FrequencyHz: freqHz,
		Status:      StatusOK,
		Result:      &result,
		VrmsVolts:   thd.Vrms(capture.Volts),
		VppVolts:    thd.Vpp(capture.Volts),
	}
}

func failedPoint(freqHz float64, err error) SweepPoint {
	return SweepPoint{
		FrequencyHz: freqHz,
		Status:      StatusFailed,
		VrmsVolts:   math.NaN(),
		VppVolts:    math.NaN(),
		Err:         err.Error(),
	}
}

func cancelledPoint(freqHz float64) SweepPoint {
	return SweepPoint{
		FrequencyHz: freqHz,
		Status:      StatusCancelled,
		VrmsVolts:   math.NaN(),
		VppVolts:    math.NaN(),
	}
}
