package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/signalbench/ampbench/pkg/export"
	"github.com/signalbench/ampbench/pkg/signal/freqpoints"
)

var (
	freqGenStart  float64
	freqGenStop   float64
	freqGenPoints int
	freqGenMode   string
)

// freqGenCmd generates a frequency test-point sequence
var freqGenCmd = &cobra.Command{
	Use:   "freq-gen",
	Short: "Generate a frequency test-point sequence",
	Long: `Generate a deterministic sequence of sweep frequencies.

Points are spaced linearly or logarithmically, rounded to 6 decimal places,
and include both endpoints exactly.

Examples:
  # 31 log-spaced points across the audio band, one per line
  ampbench freq-gen --start 20 --stop 20000 --points 31 --mode log --output lines

  # machine-readable record
  ampbench freq-gen --start 10 --stop 100 --points 5 --mode linear --output json`,
	RunE: runFreqGen,
}

func init() {
	freqGenCmd.Flags().Float64Var(&freqGenStart, "start", 20.0, "start frequency in Hz")
	freqGenCmd.Flags().Float64Var(&freqGenStop, "stop", 20000.0, "stop frequency in Hz")
	freqGenCmd.Flags().IntVar(&freqGenPoints, "points", 31, "number of points (>= 2)")
	freqGenCmd.Flags().StringVar(&freqGenMode, "mode", "log", "spacing mode (linear, log)")

	rootCmd.AddCommand(freqGenCmd)
}

func runFreqGen(cmd *cobra.Command, args []string) error {
	format, err := currentFormat()
	if err != nil {
		return err
	}

	mode, err := freqpoints.ParseMode(freqGenMode)
	if err != nil {
		return err
	}

	freqs, err := freqpoints.Generate(freqGenStart, freqGenStop, freqGenPoints, mode)
	if err != nil {
		return err
	}

	return export.WriteFrequencyList(os.Stdout, export.FrequencyList{
		Start:       freqGenStart,
		Stop:        freqGenStop,
		Points:      freqGenPoints,
		Mode:        string(mode),
		Frequencies: freqs,
	}, format)
}
