package capture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/signalbench/ampbench/internal/logging"
	"github.com/signalbench/ampbench/pkg/signal/thd"
)

func testAcquire(ctx context.Context) (thd.Capture, error) {
	return thd.Capture{Volts: []float64{0, 1, 0, -1}, SampleRate: 48000}, nil
}

func newTestMonitor(t *testing.T, acquire AcquireFunc) *Monitor {
	t.Helper()

	m, err := NewMonitor(Config{
		Interval: 5 * time.Millisecond,
		Acquire:  acquire,
		Analyzer: thd.NewAnalyzer(thd.Capability{}, thd.Config{}),
		Logger:   logging.NewNopLogger(),
	})
	if err != nil {
		t.Fatalf("NewMonitor failed: %v", err)
	}
	return m
}

// waitForSnapshot polls Latest until a snapshot past minSeq appears.
func waitForSnapshot(t *testing.T, m *Monitor, minSeq uint64) Snapshot {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		if snap, ok := m.Latest(); ok && snap.Seq > minSeq {
			return snap
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for a snapshot")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestMonitorRequiresCollaborators(t *testing.T) {
	if _, err := NewMonitor(Config{Analyzer: thd.NewAnalyzer(thd.Capability{}, thd.Config{})}); err == nil {
		t.Error("expected error for missing acquire func")
	}
	if _, err := NewMonitor(Config{Acquire: testAcquire}); err == nil {
		t.Error("expected error for missing analyzer")
	}
}

func TestMonitorPublishesSnapshots(t *testing.T) {
	m := newTestMonitor(t, testAcquire)

	if _, ok := m.Latest(); ok {
		t.Error("Latest before Start should report no snapshot")
	}

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer m.Stop()

	first := waitForSnapshot(t, m, 0)
	if first.Err != nil {
		t.Fatalf("unexpected cycle error: %v", first.Err)
	}
	if first.Result.F0EstimateHz != 1000.0 {
		t.Errorf("stub analysis: expected f0 1000.0, got %v", first.Result.F0EstimateHz)
	}
	if first.ObservedAt.IsZero() {
		t.Error("snapshot missing observation time")
	}

	// Sequence numbers advance as cycles complete.
	second := waitForSnapshot(t, m, first.Seq)
	if second.Seq <= first.Seq {
		t.Errorf("expected sequence to advance past %d, got %d", first.Seq, second.Seq)
	}
}

func TestMonitorReportsAcquireErrors(t *testing.T) {
	acquireErr := errors.New("device unreachable")
	m := newTestMonitor(t, func(ctx context.Context) (thd.Capture, error) {
		return thd.Capture{}, acquireErr
	})

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer m.Stop()

	snap := waitForSnapshot(t, m, 0)
	if !errors.Is(snap.Err, acquireErr) {
		t.Errorf("expected acquisition error in snapshot, got %v", snap.Err)
	}
}

func TestMonitorStartTwice(t *testing.T) {
	m := newTestMonitor(t, testAcquire)

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer m.Stop()

	if err := m.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start: expected ErrAlreadyStarted, got %v", err)
	}
}

func TestMonitorStopJoins(t *testing.T) {
	m := newTestMonitor(t, testAcquire)

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	waitForSnapshot(t, m, 0)
	m.Stop()

	select {
	case <-m.Done():
	default:
		t.Fatal("worker still running after Stop returned")
	}

	// The slot keeps the last published snapshot after shutdown.
	if _, ok := m.Latest(); !ok {
		t.Error("expected last snapshot to remain readable after Stop")
	}

	// Repeated Stop is a no-op.
	m.Stop()
}

func TestMonitorStopBeforeStart(t *testing.T) {
	m := newTestMonitor(t, testAcquire)
	m.Stop() // must not panic or block
}

func TestMonitorContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	m := newTestMonitor(t, testAcquire)
	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	waitForSnapshot(t, m, 0)
	cancel()

	select {
	case <-m.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not exit after context cancellation")
	}
}
