package export

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalbench/ampbench/pkg/signal/thd"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{" csv ", FormatCSV, false},
		{"lines", FormatLines, false},
		{"table", FormatTable, false},
		{"", FormatTable, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseFormat(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseFormat(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseFormat(%q)", tt.in)
	}
}

func TestFloatJSONDegradesNaN(t *testing.T) {
	payload := struct {
		A Float `json:"a"`
		B Float `json:"b"`
		C Float `json:"c"`
		D Float `json:"d"`
	}{
		A: Float(math.NaN()),
		B: Float(math.Inf(1)),
		C: Float(math.Inf(-1)),
		D: Float(0.25),
	}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":null,"b":null,"c":null,"d":0.25}`, string(data))
}

func TestWriteFrequencyListLines(t *testing.T) {
	fl := FrequencyList{
		Start:       20,
		Stop:        20000,
		Points:      3,
		Mode:        "log",
		Frequencies: []float64{20, 632.455532, 20000},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteFrequencyList(&buf, fl, FormatLines))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "20", lines[0])
	assert.Equal(t, "632.455532", lines[1])
	assert.Equal(t, "20000", lines[2])
}

func TestWriteFrequencyListJSON(t *testing.T) {
	fl := FrequencyList{Start: 100, Stop: 200, Points: 2, Mode: "linear", Frequencies: []float64{100, 200}}

	var buf bytes.Buffer
	require.NoError(t, WriteFrequencyList(&buf, fl, FormatJSON))

	var decoded FrequencyList
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, fl, decoded)
}

func TestWriteTHDRecordJSONWithNaN(t *testing.T) {
	rec := NewTHDRecord(thd.Result{
		THDRatio:       math.NaN(),
		F0EstimateHz:   math.NaN(),
		FundamentalAmp: math.NaN(),
	})

	var buf bytes.Buffer
	require.NoError(t, WriteTHDRecord(&buf, rec, FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded), "NaN fields must not break the JSON document")
	assert.Nil(t, decoded["thd"])
	assert.Nil(t, decoded["f0_est"])
}

func TestWriteTHDRecordTable(t *testing.T) {
	rec := NewTHDRecord(thd.Result{
		THDRatio:       0.05,
		F0EstimateHz:   1000.98,
		FundamentalAmp: 1.0,
		Harmonics: []thd.Harmonic{
			{K: 1, FreqHz: 1000.98, Mag: 1.0},
			{K: 2, FreqHz: 2001.95, Mag: 0.05},
		},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteTHDRecord(&buf, rec, FormatTable))

	out := buf.String()
	assert.Contains(t, out, "thd:      0.050000")
	assert.Contains(t, out, "k=1")
	assert.Contains(t, out, "k=2")
}

func TestWriteHarmonicTableCSV(t *testing.T) {
	rows := []HarmonicRecord{
		{K: 1, FreqHz: 1000, Mag: 1},
		{K: 2, FreqHz: 2000, Mag: 0.1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHarmonicTable(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "k,freq_hz,mag", lines[0])
	assert.Equal(t, "1,1000.000000,1", lines[1])
	assert.Equal(t, "2,2000.000000,0.1", lines[2])
}

func TestWriteSweepReportCSV(t *testing.T) {
	rec := SweepReportRecord{
		Rows: []ReportRow{
			{FreqHz: 100, Status: "ok", Vrms: 0.7071, Vpp: 2, THD: 0.01, F0Est: 100},
			{FreqHz: 1000, Status: "failed", Vrms: Float(math.NaN()), Vpp: Float(math.NaN()),
				THD: Float(math.NaN()), F0Est: Float(math.NaN()), Err: "scope timeout"},
		},
		Summary: ReportSummary{OK: 1, Failed: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSweepReport(&buf, rec, FormatCSV, 4))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "freq_hz,status,vrms,vpp,thd,f0_est,error", lines[0])
	assert.Equal(t, "100,ok,0.7071,2.0000,0.0100,100.00,", lines[1])
	assert.Equal(t, "1000,failed,NaN,NaN,NaN,NaN,scope timeout", lines[2])
}

func TestWriteSweepReportJSON(t *testing.T) {
	rec := SweepReportRecord{
		Rows: []ReportRow{
			{FreqHz: 100, Status: "cancelled", Vrms: Float(math.NaN()), Vpp: Float(math.NaN()),
				THD: Float(math.NaN()), F0Est: Float(math.NaN())},
		},
		Summary: ReportSummary{
			Cancelled:  1,
			LowKneeHz:  Float(math.NaN()),
			HighKneeHz: Float(math.NaN()),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSweepReport(&buf, rec, FormatJSON, 4))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	summary, ok := decoded["summary"].(map[string]any)
	require.True(t, ok, "summary object missing")
	assert.Nil(t, summary["low_knee_hz"])
	assert.Nil(t, summary["high_knee_hz"])
}

func TestWriteKneeRecordTable(t *testing.T) {
	rec := KneeRecord{
		LowKneeHz:  Float(150.17),
		HighKneeHz: Float(math.NaN()),
		RefAmp:     Float(1.0),
		RefDB:      Float(0),
		DropDB:     3,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteKneeRecord(&buf, rec, FormatTable, 4))

	out := buf.String()
	assert.Contains(t, out, "low knee:  150.17 Hz")
	assert.Contains(t, out, "high knee: NaN Hz")
}
