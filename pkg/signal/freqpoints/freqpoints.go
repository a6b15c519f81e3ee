// Package freqpoints generates deterministic frequency test-point sequences
// for sweep runs. Points are rounded to 6 decimal places and the endpoints
// are always exactly the rounded start/stop values, so repeated runs and
// exported lists compare bit-for-bit.
package freqpoints

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects the spacing of generated points.
type Mode string

const (
	// ModeLinear spaces points evenly between start and stop.
	ModeLinear Mode = "linear"
	// ModeLog spaces points evenly in log frequency.
	ModeLog Mode = "log"
)

// ParseMode normalizes a user-supplied mode string. "logarithmic" and any
// prefix of it starting with "log" select ModeLog, matching the sweep CLI.
func ParseMode(s string) (Mode, error) {
	switch m := strings.ToLower(strings.TrimSpace(s)); {
	case m == string(ModeLinear) || m == "lin" || m == "":
		return ModeLinear, nil
	case strings.HasPrefix(m, "log"):
		return ModeLog, nil
	default:
		return "", fmt.Errorf("unknown sweep mode %q (want linear or log)", s)
	}
}

// InvalidRangeError reports sweep parameters that cannot produce a valid
// frequency set. No partial point list accompanies it.
type InvalidRangeError struct {
	StartHz float64
	StopHz  float64
	Points  int
	Reason  string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid sweep range [%g, %g] with %d points: %s",
		e.StartHz, e.StopHz, e.Points, e.Reason)
}

// Generate returns points frequencies from startHz to stopHz inclusive.
//
// Constraints: points >= 2, startHz > 0, stopHz >= startHz, and all bounds
// finite. Each point is rounded to 6 decimal places after computation, the
// result is monotonically non-decreasing, and the first and last points are
// force-set to the rounded endpoints so floating-point drift never leaks
// into the sequence boundaries.
func Generate(startHz, stopHz float64, points int, mode Mode) ([]float64, error) {
	if err := validate(startHz, stopHz, points, mode); err != nil {
		return nil, err
	}

	out := make([]float64, points)

	switch mode {
	case ModeLog:
		lnStart := math.Log(startHz)
		lnStep := (math.Log(stopHz) - lnStart) / float64(points-1)
		for i := range out {
			out[i] = round6(math.Exp(lnStart + float64(i)*lnStep))
		}
	default:
		step := (stopHz - startHz) / float64(points-1)
		for i := range out {
			out[i] = round6(startHz + float64(i)*step)
		}
	}

	out[0] = round6(startHz)
	out[points-1] = round6(stopHz)

	return out, nil
}

func validate(startHz, stopHz float64, points int, mode Mode) error {
	fail := func(reason string) error {
		return &InvalidRangeError{StartHz: startHz, StopHz: stopHz, Points: points, Reason: reason}
	}

	switch {
	case points < 2:
		return fail("points must be >= 2")
	case !isFinite(startHz) || !isFinite(stopHz):
		return fail("bounds must be finite")
	case startHz <= 0:
		return fail("start must be > 0")
	case stopHz < startHz:
		return fail("stop must be >= start")
	}

	if mode != ModeLinear && mode != ModeLog {
		return fail(fmt.Sprintf("unknown mode %q", mode))
	}

	// Redundant with startHz > 0 today, but the log-space math hard-requires
	// strictly positive bounds, so the check stays explicit.
	if mode == ModeLog && (startHz <= 0 || stopHz <= 0) {
		return fail("log mode requires positive bounds")
	}

	return nil
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
