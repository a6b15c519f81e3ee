// Package export renders frequency lists, distortion records, and sweep
// reports into machine-readable (JSON, YAML, CSV, line-oriented) and
// human-readable (table) forms.
//
// Numeric fields may legitimately be NaN ("undefined for this input"); JSON
// output encodes those as null so the structure stays well-formed, since the
// JSON grammar has no NaN literal. Text forms print NaN verbatim.
package export

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format selects an output rendering.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
	FormatLines Format = "lines"
	FormatTable Format = "table"
)

// ParseFormat normalizes a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatCSV, FormatLines, FormatTable:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Float is a float64 whose JSON encoding degrades NaN and infinities to
// null instead of failing the whole document.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// text renders the value for CSV and table cells.
func (f Float) text(prec int) string {
	v := float64(f)
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// formatFreq renders a frequency with trailing zeros trimmed, matching the
// 6-decimal rounding of generated points.
func formatFreq(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
