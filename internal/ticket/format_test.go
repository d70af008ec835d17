package ticket

import (
	"math"
	"testing"
)

func TestFormatFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0.815, "0.815"},
		{3.1415, "3.1415"},
		{3, "3"},
		{-2.5, "-2.5"},
		{0, "0"},
		{0.1 + 0.2, "0.3"},
		{0.0001, "0.0001"},
		{0.00001, "1.0E-5"},
		{0.000025, "2.5E-5"},
		{1e13, "10000000000000"},
		{1e14, "1.0E+14"},
		{1.5e20, "1.5E+20"},
		{-1e25, "-1.0E+25"},
		{1.0 / 3.0, "0.33333333333333"},
		{123456789.123456789, "123456789.12346"},
		{math.NaN(), "NAN"},
		{math.Inf(1), "INF"},
		{math.Inf(-1), "-INF"},
	}
	for _, tc := range cases {
		if got := FormatFloat(tc.in); got != tc.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatBoolAndInt(t *testing.T) {
	if formatBool(true) != "true" || formatBool(false) != "false" {
		t.Fatal("unexpected boolean literals")
	}
	if formatInt(-42) != "-42" || formatInt(0) != "0" {
		t.Fatal("unexpected integer formatting")
	}
}
