package circuit

import (
	"errors"
	"math"
	"testing"

	"qsim/internal/qerr"
)

func TestParseAngle(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		// Plain numbers
		{"1.5707", 1.5707, true},
		{"-0.5", -0.5, true},
		{"0", 0, true},
		{"3e-2", 0.03, true},

		// Pi constant
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},

		// Fractions and coefficients
		{"pi/2", math.Pi / 2, true},
		{"pi/8", math.Pi / 8, true},
		{"2pi", 2 * math.Pi, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"2*pi/3", 2 * math.Pi / 3, true},

		// Negative
		{"-pi", -math.Pi, true},
		{"-3*pi/4", -3 * math.Pi / 4, true},

		// Whitespace
		{" pi / 2 ", math.Pi / 2, true},
		{" 3 * pi / 4 ", 3 * math.Pi / 4, true},

		// Invalid
		{"", 0, false},
		{"abc", 0, false},
		{"pi/0", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseAngle(tt.input)
		if (err == nil) != tt.ok {
			t.Errorf("ParseAngle(%q): err=%v, want ok=%v", tt.input, err, tt.ok)
			continue
		}
		if err != nil {
			if !errors.Is(err, qerr.InvalidGateParameter) {
				t.Errorf("ParseAngle(%q): error %v is not InvalidGateParameter", tt.input, err)
			}
			continue
		}
		if math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("ParseAngle(%q) = %g, want %g", tt.input, got, tt.want)
		}
	}
}

func TestFormatAngle(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{3 * math.Pi / 4, "3*pi/4"},
		{-math.Pi / 2, "-pi/2"},
		{2 * math.Pi, "2*pi"},
		{1.5, "1.5"},
		{0, "0"},
		{0.01, "0.01"},
	}

	for _, tt := range tests {
		if got := FormatAngle(tt.input); got != tt.want {
			t.Errorf("FormatAngle(%g) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAngleRoundTrip(t *testing.T) {
	for _, v := range []float64{math.Pi / 6, -2 * math.Pi / 3, 0.123456789, -7.25} {
		got, err := ParseAngle(FormatAngle(v))
		if err != nil {
			t.Fatalf("ParseAngle(FormatAngle(%g)): %v", v, err)
		}
		if math.Abs(got-v) > 1e-12 {
			t.Errorf("round trip of %g gave %g", v, got)
		}
	}
}
