package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// ReportRow is one sweep point in export form.
type ReportRow struct {
	FreqHz float64 `json:"freq_hz" yaml:"freq_hz"`
	Status string  `json:"status" yaml:"status"`
	Vrms   Float   `json:"vrms" yaml:"vrms"`
	Vpp    Float   `json:"vpp" yaml:"vpp"`
	THD    Float   `json:"thd" yaml:"thd"`
	F0Est  Float   `json:"f0_est" yaml:"f0_est"`
	Err    string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// ReportSummary aggregates a sweep run for export.
type ReportSummary struct {
	OK              int     `json:"ok" yaml:"ok"`
	Failed          int     `json:"failed" yaml:"failed"`
	Cancelled       int     `json:"cancelled" yaml:"cancelled"`
	DurationSeconds float64 `json:"duration_s" yaml:"duration_s"`
	LowKneeHz       Float   `json:"low_knee_hz" yaml:"low_knee_hz"`
	HighKneeHz      Float   `json:"high_knee_hz" yaml:"high_knee_hz"`
}

// SweepReportRecord is the full exported sweep outcome.
type SweepReportRecord struct {
	Rows    []ReportRow   `json:"points" yaml:"points"`
	Summary ReportSummary `json:"summary" yaml:"summary"`
}

// WriteSweepReport renders the record; precision controls fractional digits
// of the measured values in CSV and table forms.
func WriteSweepReport(w io.Writer, rec SweepReportRecord, format Format, precision int) error {
	if precision <= 0 {
		precision = 4
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case FormatYAML:
		return yaml.NewEncoder(w).Encode(rec)
	case FormatCSV:
		return writeReportCSV(w, rec, precision)
	case FormatTable, FormatLines:
		return writeReportTable(w, rec, precision)
	default:
		return fmt.Errorf("sweep report: unsupported format %q", format)
	}
}

func writeReportCSV(w io.Writer, rec SweepReportRecord, precision int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"freq_hz", "status", "vrms", "vpp", "thd", "f0_est", "error"}); err != nil {
		return err
	}

	for _, r := range rec.Rows {
		row := []string{
			formatFreq(r.FreqHz),
			r.Status,
			r.Vrms.text(precision),
			r.Vpp.text(precision),
			r.THD.text(precision),
			r.F0Est.text(2),
			r.Err,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeReportTable(w io.Writer, rec SweepReportRecord, precision int) error {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "FREQ (Hz)\tSTATUS\tVRMS\tVPP\tTHD\tF0 EST (Hz)\tERROR")
	for _, r := range rec.Rows {
		p.Fprintf(tw, "%.2f\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.FreqHz,
			r.Status,
			r.Vrms.text(precision),
			r.Vpp.text(precision),
			r.THD.text(precision),
			r.F0Est.text(2),
			r.Err,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d ok, %d failed, %d cancelled in %ss\n",
		rec.Summary.OK, rec.Summary.Failed, rec.Summary.Cancelled,
		strconv.FormatFloat(rec.Summary.DurationSeconds, 'f', 3, 64))
	fmt.Fprintf(w, "knees: low=%s Hz high=%s Hz\n",
		rec.Summary.LowKneeHz.text(2), rec.Summary.HighKneeHz.text(2))
	return nil
}
