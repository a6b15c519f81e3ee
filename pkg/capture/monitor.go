// Package capture runs a single background worker that repeatedly acquires
// and analyzes a signal, publishing the latest result into a single-slot
// handoff for polling consumers such as a live readout.
//
// The slot has exactly one writer (the worker). Readers take a snapshot and
// never block on an in-progress acquisition. Stopping is cooperative: the
// worker checks its context once per cycle and signals completion so the
// owner can join deterministically.
package capture

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/signalbench/ampbench/internal/logging"
	"github.com/signalbench/ampbench/pkg/signal/thd"
)

// AcquireFunc produces one capture. Implementations must return a failure
// rather than block indefinitely; the monitor imposes no timeout of its own.
type AcquireFunc func(ctx context.Context) (thd.Capture, error)

// Snapshot is one published observation. Err is set when the acquisition
// failed; the Result of a failed cycle is the zero value.
type Snapshot struct {
	Result     thd.Result
	Err        error
	Seq        uint64
	ObservedAt time.Time
}

// Config assembles a Monitor.
type Config struct {
	// Interval is the pause between cycles (default 1s).
	Interval time.Duration
	Acquire  AcquireFunc
	Analyzer *thd.Analyzer
	Logger   logging.Logger
}

// Monitor owns the worker goroutine and the latest-result slot.
type Monitor struct {
	cfg Config

	mu     sync.RWMutex
	latest *Snapshot

	startMu sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// ErrAlreadyStarted is returned by Start on a running monitor.
var ErrAlreadyStarted = errors.New("capture: monitor already started")

// NewMonitor creates a monitor. Acquire and Analyzer are required.
func NewMonitor(cfg Config) (*Monitor, error) {
	if cfg.Acquire == nil {
		return nil, errors.New("capture: acquire func is required")
	}
	if cfg.Analyzer == nil {
		return nil, errors.New("capture: analyzer is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewDefaultLogger()
	}

	return &Monitor{cfg: cfg}, nil
}

// Start launches the background worker. The worker stops when ctx is
// cancelled or Stop is called, whichever comes first.
func (m *Monitor) Start(ctx context.Context) error {
	m.startMu.Lock()
	defer m.startMu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}

	workerCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	m.started = true

	go m.run(workerCtx)
	return nil
}

// Stop requests cancellation and waits for the worker to exit. Safe to call
// more than once and before Start.
func (m *Monitor) Stop() {
	m.startMu.Lock()
	cancel, done := m.cancel, m.done
	m.startMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Done exposes the worker's completion channel, nil before Start.
func (m *Monitor) Done() <-chan struct{} {
	m.startMu.Lock()
	defer m.startMu.Unlock()
	return m.done
}

// Latest returns a snapshot of the most recently completed cycle. The
// boolean is false until the first cycle has published.
func (m *Monitor) Latest() (Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.latest == nil {
		return Snapshot{}, false
	}
	return *m.latest, true
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)

	var seq uint64

	for {
		// Cancellation boundary: one check per cycle, never mid-acquisition.
		if ctx.Err() != nil {
			m.cfg.Logger.Debug("capture monitor stopped", logging.Fields{"cycles": seq})
			return
		}

		seq++
		snap := Snapshot{Seq: seq, ObservedAt: time.Now()}

		c, err := m.cfg.Acquire(ctx)
		if err != nil {
			snap.Err = err
			m.cfg.Logger.Warn("capture cycle failed", logging.Fields{
				"seq":   seq,
				"error": err.Error(),
			})
		} else {
			snap.Result = m.cfg.Analyzer.Analyze(c)
		}

		m.publish(snap)

		select {
		case <-ctx.Done():
		case <-time.After(m.cfg.Interval):
		}
	}
}

func (m *Monitor) publish(snap Snapshot) {
	m.mu.Lock()
	m.latest = &snap
	m.mu.Unlock()
}
