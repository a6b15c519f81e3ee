package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/signalbench/ampbench/pkg/signal/thd"
)

// HarmonicRecord is one exported harmonic-table row.
type HarmonicRecord struct {
	K      int     `json:"k" yaml:"k"`
	FreqHz float64 `json:"freq_hz" yaml:"freq_hz"`
	Mag    float64 `json:"mag" yaml:"mag"`
}

// THDRecord is the structured export of an analysis result. Degenerate
// inputs leave the numeric fields NaN; the record is still well-formed and
// exporting it succeeds.
type THDRecord struct {
	THD       Float            `json:"thd" yaml:"thd"`
	F0Est     Float            `json:"f0_est" yaml:"f0_est"`
	FundAmp   Float            `json:"fund_amp" yaml:"fund_amp"`
	Harmonics []HarmonicRecord `json:"harmonics" yaml:"harmonics"`
}

// NewTHDRecord converts an analyzer result into its export form.
func NewTHDRecord(res thd.Result) THDRecord {
	rec := THDRecord{
		THD:       Float(res.THDRatio),
		F0Est:     Float(res.F0EstimateHz),
		FundAmp:   Float(res.FundamentalAmp),
		Harmonics: make([]HarmonicRecord, 0, len(res.Harmonics)),
	}
	for _, h := range res.Harmonics {
		rec.Harmonics = append(rec.Harmonics, HarmonicRecord{K: h.K, FreqHz: h.FreqHz, Mag: h.Mag})
	}
	return rec
}

// WriteTHDRecord renders the record. The table form is a short key/value
// readout plus the harmonic rows.
func WriteTHDRecord(w io.Writer, rec THDRecord, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case FormatYAML:
		return yaml.NewEncoder(w).Encode(rec)
	case FormatCSV:
		return WriteHarmonicTable(w, rec.Harmonics)
	case FormatTable, FormatLines:
		fmt.Fprintf(w, "thd:      %s\n", rec.THD.text(6))
		fmt.Fprintf(w, "f0_est:   %s Hz\n", rec.F0Est.text(2))
		fmt.Fprintf(w, "fund_amp: %s\n", rec.FundAmp.text(6))
		for _, h := range rec.Harmonics {
			fmt.Fprintf(w, "  k=%-2d  %12.2f Hz  %.6g\n", h.K, h.FreqHz, h.Mag)
		}
		return nil
	default:
		return fmt.Errorf("thd record: unsupported format %q", format)
	}
}

// WriteHarmonicTable emits the tabular harmonic export: k, freq_hz, mag.
func WriteHarmonicTable(w io.Writer, harmonics []HarmonicRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"k", "freq_hz", "mag"}); err != nil {
		return err
	}
	for _, h := range harmonics {
		row := []string{
			strconv.Itoa(h.K),
			strconv.FormatFloat(h.FreqHz, 'f', 6, 64),
			strconv.FormatFloat(h.Mag, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
