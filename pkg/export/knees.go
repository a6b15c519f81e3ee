package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// KneeRecord is a located pair of bandwidth knees in export form.
type KneeRecord struct {
	LowKneeHz  Float   `json:"low_knee_hz" yaml:"low_knee_hz"`
	HighKneeHz Float   `json:"high_knee_hz" yaml:"high_knee_hz"`
	RefAmp     Float   `json:"ref_amp" yaml:"ref_amp"`
	RefDB      Float   `json:"ref_db" yaml:"ref_db"`
	DropDB     float64 `json:"drop_db" yaml:"drop_db"`
}

// WriteKneeRecord renders the record in the requested format.
func WriteKneeRecord(w io.Writer, rec KneeRecord, format Format, precision int) error {
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
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"low_knee_hz", "high_knee_hz", "ref_amp", "ref_db", "drop_db"}); err != nil {
			return err
		}
		if err := cw.Write([]string{
			rec.LowKneeHz.text(2),
			rec.HighKneeHz.text(2),
			rec.RefAmp.text(precision),
			rec.RefDB.text(precision),
			fmt.Sprintf("%.2f", rec.DropDB),
		}); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	case FormatTable, FormatLines:
		fmt.Fprintf(w, "low knee:  %s Hz\n", rec.LowKneeHz.text(2))
		fmt.Fprintf(w, "high knee: %s Hz\n", rec.HighKneeHz.text(2))
		fmt.Fprintf(w, "reference: %s V (%s dB), drop %.2f dB\n",
			rec.RefAmp.text(precision), rec.RefDB.text(precision), rec.DropDB)
		return nil
	default:
		return fmt.Errorf("knee record: unsupported format %q", format)
	}
}
