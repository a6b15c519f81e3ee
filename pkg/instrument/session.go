// Package instrument defines the session boundary between the sweep core
// and the hardware drivers that configure a signal generator and acquire
// waveforms from a scope or DAQ. The core only sees this interface; real
// drivers (serial, VISA, USB) and the synthetic session both implement it.
package instrument

import (
	"context"

	"github.com/signalbench/ampbench/pkg/signal/thd"
)

// Session drives one generator/capture pair through a sweep. Implementations
// must be safe for sequential use only: the orchestrator never overlaps
// calls. Blocking operations must honor their own bounded waits and return a
// failure rather than hang; the core imposes no internal timeouts.
type Session interface {
	// Configure sets the stimulus to the given frequency.
	Configure(ctx context.Context, freqHz float64) error

	// Acquire captures one waveform at the given frequency.
	Acquire(ctx context.Context, freqHz float64) (thd.Capture, error)
}
