package circuit

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"qsim/internal/qerr"
)

// anglePattern matches one angle literal inside a QASM parameter list:
// plain numbers or pi expressions such as "pi/2", "3*pi/4", "-2pi".
const anglePattern = `-?(?:\d*\.?\d*\*?pi(?:/\d+\.?\d*)?|\d*\.?\d+(?:[eE][+\-]?\d+)?)`

// piExprRegex splits a pi expression into sign, coefficient and denominator.
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// ParseAngle parses a rotation angle in radians.
//
// Supported forms:
//   - plain numbers: "1.5707", "-0.5", "3e-2"
//   - pi multiples: "pi", "2pi", "2*pi", "-pi"
//   - pi fractions: "pi/2", "3pi/4", "3*pi/4", "-2*pi/3"
func ParseAngle(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, qerr.New(qerr.InvalidGateParameter, "empty angle")
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, qerr.New(qerr.InvalidGateParameter, "angle %q is not finite", s)
		}
		return v, nil
	}

	m := piExprRegex.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, qerr.New(qerr.InvalidGateParameter, "cannot parse angle %q", s)
	}

	coeff := 1.0
	if m[2] != "" {
		c, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, qerr.New(qerr.InvalidGateParameter, "bad coefficient in angle %q", s)
		}
		coeff = c
	}
	v := coeff * math.Pi
	if m[3] != "" {
		d, err := strconv.ParseFloat(m[3], 64)
		if err != nil || d == 0 {
			return 0, qerr.New(qerr.InvalidGateParameter, "bad denominator in angle %q", s)
		}
		v /= d
	}
	if m[1] == "-" {
		v = -v
	}
	return v, nil
}

// piForms are the fractions FormatAngle renders symbolically.
var piForms = []struct {
	value   float64
	display string
}{
	{2 * math.Pi, "2*pi"},
	{math.Pi, "pi"},
	{math.Pi / 2, "pi/2"},
	{math.Pi / 3, "pi/3"},
	{math.Pi / 4, "pi/4"},
	{math.Pi / 6, "pi/6"},
	{math.Pi / 8, "pi/8"},
	{3 * math.Pi / 4, "3*pi/4"},
	{3 * math.Pi / 2, "3*pi/2"},
	{2 * math.Pi / 3, "2*pi/3"},
}

// FormatAngle renders an angle, using pi notation for common fractions.
func FormatAngle(v float64) string {
	for _, pf := range piForms {
		if math.Abs(v-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(v+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
