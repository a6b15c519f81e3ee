package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/signalbench/ampbench/pkg/export"
	"github.com/signalbench/ampbench/pkg/signal/knee"
)

// kneesCmd locates bandwidth knees on a stored response curve
var kneesCmd = &cobra.Command{
	Use:   "knees <curve.csv>",
	Short: "Locate -N dB bandwidth knees on a response curve",
	Long: `Locate the low and high bandwidth knees of an amplitude response curve.

The input is a two-column CSV of frequency (Hz) and amplitude (V), sorted
by ascending frequency. Knee frequencies are interpolated in dB space
between the bracketing samples; a side whose curve never crosses the
threshold reports NaN.

Examples:
  ampbench knees response.csv
  ampbench knees response.csv --drop-db 6 --ref-mode freq --ref-hz 1000`,
	Args:    cobra.ExactArgs(1),
	PreRunE: bindKneeFlags,
	RunE:    runKnees,
}

func init() {
	kneesCmd.Flags().Float64("drop-db", 3.0, "threshold drop in dB below the reference")
	kneesCmd.Flags().String("ref-mode", "max", "reference mode (max, freq)")
	kneesCmd.Flags().Float64("ref-hz", 1000.0, "reference frequency for --ref-mode freq")

	rootCmd.AddCommand(kneesCmd)
}

func bindKneeFlags(cmd *cobra.Command, args []string) error {
	binds := map[string]string{
		"sweep.drop_db":  "drop-db",
		"sweep.ref_mode": "ref-mode",
		"sweep.ref_hz":   "ref-hz",
	}
	for key, flag := range binds {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

func runKnees(cmd *cobra.Command, args []string) error {
	cfg, err := loadValidatedConfig()
	if err != nil {
		return err
	}

	format, err := currentFormat()
	if err != nil {
		return err
	}

	freqs, amps, err := readPairsCSV(args[0])
	if err != nil {
		return err
	}

	res := knee.FindKnees(freqs, amps,
		knee.ParseRefMode(cfg.Sweep.RefMode), cfg.Sweep.RefHz, cfg.Sweep.DropDB)

	rec := export.KneeRecord{
		LowKneeHz:  export.Float(res.LowHz),
		HighKneeHz: export.Float(res.HighHz),
		RefAmp:     export.Float(res.RefAmp),
		RefDB:      export.Float(res.RefDB),
		DropDB:     cfg.Sweep.DropDB,
	}

	return export.WriteKneeRecord(os.Stdout, rec, format, cfg.Output.Precision)
}
