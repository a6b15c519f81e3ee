package cmd

import (
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/signalbench/ampbench/internal/bench"
	"github.com/signalbench/ampbench/internal/logging"
	"github.com/signalbench/ampbench/pkg/export"
	"github.com/signalbench/ampbench/pkg/signal/freqpoints"
	"github.com/signalbench/ampbench/pkg/signal/knee"
)

// sweepCmd runs a full frequency sweep
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a frequency sweep and report per-point signal metrics",
	Long: `Run the sweep orchestrator across a generated frequency set.

Each point is configured, acquired, and analyzed in order. Per-point
failures are recorded in the report and the run continues; Ctrl-C cancels
cooperatively at the next point boundary, marking the remaining points
cancelled. The report always contains one entry per requested frequency.

Without hardware drivers attached, the sweep runs against the deterministic
synthetic session configured under the synth.* settings.

Examples:
  ampbench sweep --start 20 --stop 20000 --points 31 --mode log
  ampbench sweep --points 61 --drop-db 3 --output csv > response.csv`,
	PreRunE: bindSweepFlags,
	RunE:    runSweep,
}

func init() {
	sweepCmd.Flags().Float64("start", 20.0, "start frequency in Hz")
	sweepCmd.Flags().Float64("stop", 20000.0, "stop frequency in Hz")
	sweepCmd.Flags().Int("points", 31, "number of points (>= 2)")
	sweepCmd.Flags().String("mode", "log", "spacing mode (linear, log)")
	sweepCmd.Flags().Duration("dwell", 0, "settle delay between configure and acquire")
	sweepCmd.Flags().Int("nharm", 10, "number of harmonics in the THD sum")
	sweepCmd.Flags().Float64("drop-db", 3.0, "knee threshold drop in dB")
	sweepCmd.Flags().String("ref-mode", "max", "knee reference mode (max, freq)")
	sweepCmd.Flags().Float64("ref-hz", 1000.0, "knee reference frequency for --ref-mode freq")

	rootCmd.AddCommand(sweepCmd)
}

// bindSweepFlags namespaces the sweep flags into the configuration tree.
// Binding happens at run time so commands sharing keys never clobber each
// other's flag instances.
func bindSweepFlags(cmd *cobra.Command, args []string) error {
	binds := map[string]string{
		"sweep.start_hz":     "start",
		"sweep.stop_hz":      "stop",
		"sweep.points":       "points",
		"sweep.mode":         "mode",
		"sweep.dwell":        "dwell",
		"analysis.harmonics": "nharm",
		"sweep.drop_db":      "drop-db",
		"sweep.ref_mode":     "ref-mode",
		"sweep.ref_hz":       "ref-hz",
	}
	for key, flag := range binds {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadValidatedConfig()
	if err != nil {
		return err
	}

	format, err := currentFormat()
	if err != nil {
		return err
	}

	logger := newLogger()

	mode, err := freqpoints.ParseMode(cfg.Sweep.Mode)
	if err != nil {
		return err
	}

	freqs, err := freqpoints.Generate(cfg.Sweep.StartHz, cfg.Sweep.StopHz, cfg.Sweep.Points, mode)
	if err != nil {
		return err
	}

	orch, err := bench.NewOrchestrator(bench.Config{
		Session:  buildSynthSession(cfg),
		Analyzer: buildAnalyzer(cfg),
		Logger:   logger,
		Dwell:    cfg.Sweep.Dwell,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("running sweep", logging.Fields{
		"start_hz": cfg.Sweep.StartHz,
		"stop_hz":  cfg.Sweep.StopHz,
		"points":   cfg.Sweep.Points,
		"mode":     string(mode),
	})

	report := orch.RunSweep(ctx, freqs)
	knees := bench.FindKnees(report, knee.ParseRefMode(cfg.Sweep.RefMode), cfg.Sweep.RefHz, cfg.Sweep.DropDB)

	return export.WriteSweepReport(os.Stdout, reportRecord(report, knees), format, cfg.Output.Precision)
}

// reportRecord maps the orchestrator report into its export form.
func reportRecord(report *bench.SweepReport, knees knee.Result) export.SweepReportRecord {
	rec := export.SweepReportRecord{
		Rows: make([]export.ReportRow, 0, len(report.Points)),
		Summary: export.ReportSummary{
			OK:              report.OKCount,
			Failed:          report.FailedCount,
			Cancelled:       report.CancelledCount,
			DurationSeconds: report.Duration.Seconds(),
			LowKneeHz:       export.Float(knees.LowHz),
			HighKneeHz:      export.Float(knees.HighHz),
		},
	}

	for _, p := range report.Points {
		row := export.ReportRow{
			FreqHz: p.FrequencyHz,
			Status: string(p.Status),
			Vrms:   export.Float(p.VrmsVolts),
			Vpp:    export.Float(p.VppVolts),
			Err:    p.Err,
		}
		if p.Result != nil {
			row.THD = export.Float(p.Result.THDRatio)
			row.F0Est = export.Float(p.Result.F0EstimateHz)
		} else {
			row.THD = export.Float(math.NaN())
			row.F0Est = export.Float(math.NaN())
		}
		rec.Rows = append(rec.Rows, row)
	}

	return rec
}
