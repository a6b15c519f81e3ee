package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/signalbench/ampbench/internal/logging"
	"github.com/signalbench/ampbench/pkg/capture"
	"github.com/signalbench/ampbench/pkg/signal/thd"
)

// monitorCmd runs the background capture monitor against the synthetic
// session and prints each published snapshot.
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Continuously capture and analyze at a fixed frequency",
	Long: `Run the background capture monitor.

A single worker acquires and analyzes on a fixed interval, publishing each
result to a latest-value slot. The command polls that slot and prints new
snapshots until the duration elapses or Ctrl-C is pressed.

Examples:
  ampbench monitor --freq 1000 --interval 500ms
  ampbench monitor --freq 1000 --duration 30s`,
	PreRunE: bindMonitorFlags,
	RunE:    runMonitor,
}

func init() {
	monitorCmd.Flags().Float64("freq", 1000.0, "stimulus frequency in Hz")
	monitorCmd.Flags().Duration("interval", time.Second, "pause between capture cycles")
	monitorCmd.Flags().Duration("duration", 0, "total run time (0 runs until interrupted)")

	rootCmd.AddCommand(monitorCmd)
}

func bindMonitorFlags(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlag("monitor.interval", cmd.Flags().Lookup("interval")); err != nil {
		return err
	}
	return viper.BindPFlag("monitor.duration", cmd.Flags().Lookup("duration"))
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := loadValidatedConfig()
	if err != nil {
		return err
	}

	freqHz, err := cmd.Flags().GetFloat64("freq")
	if err != nil {
		return err
	}
	if freqHz <= 0 {
		return fmt.Errorf("frequency must be positive, got %g", freqHz)
	}

	logger := newLogger()
	session := buildSynthSession(cfg)

	mon, err := capture.NewMonitor(capture.Config{
		Interval: cfg.Monitor.Interval,
		Acquire: func(ctx context.Context) (thd.Capture, error) {
			if err := session.Configure(ctx, freqHz); err != nil {
				return thd.Capture{}, err
			}
			return session.Acquire(ctx, freqHz)
		},
		Analyzer: buildAnalyzer(cfg),
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Monitor.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Monitor.Duration)
		defer cancel()
	}

	if err := mon.Start(ctx); err != nil {
		return err
	}
	defer mon.Stop()

	logger.Info("monitor started", logging.Fields{
		"freq_hz":  freqHz,
		"interval": cfg.Monitor.Interval.String(),
	})

	poll := time.NewTicker(cfg.Monitor.Interval / 2)
	defer poll.Stop()

	var lastSeq uint64
	for {
		select {
		case <-ctx.Done():
			mon.Stop()
			return nil
		case <-mon.Done():
			return nil
		case <-poll.C:
			snap, ok := mon.Latest()
			if !ok || snap.Seq == lastSeq {
				continue
			}
			lastSeq = snap.Seq
			printSnapshot(snap)
		}
	}
}

func printSnapshot(snap capture.Snapshot) {
	ts := snap.ObservedAt.Format("15:04:05.000")
	if snap.Err != nil {
		fmt.Printf("[%s] #%d acquire failed: %v\n", ts, snap.Seq, snap.Err)
		return
	}
	fmt.Printf("[%s] #%d thd=%.4f f0=%.1f Hz fund=%.4f V\n",
		ts, snap.Seq, snap.Result.THDRatio, snap.Result.F0EstimateHz, snap.Result.FundamentalAmp)
}
