package export

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// FrequencyList is the machine-readable record of a generated frequency set.
type FrequencyList struct {
	Start       float64   `json:"start" yaml:"start"`
	Stop        float64   `json:"stop" yaml:"stop"`
	Points      int       `json:"points" yaml:"points"`
	Mode        string    `json:"mode" yaml:"mode"`
	Frequencies []float64 `json:"frequencies" yaml:"frequencies"`
}

// WriteFrequencyList renders the list. FormatLines and FormatCSV both emit
// one frequency per line for pipeline use; FormatTable is treated as lines.
func WriteFrequencyList(w io.Writer, fl FrequencyList, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(fl)
	case FormatYAML:
		return yaml.NewEncoder(w).Encode(fl)
	case FormatCSV, FormatLines, FormatTable:
		for _, f := range fl.Frequencies {
			if _, err := fmt.Fprintln(w, formatFreq(f)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("frequency list: unsupported format %q", format)
	}
}
