package utils

import "testing"

func TestFormatXPGrouping(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.000"},
		{1234567, "1.234.567"},
	}
	for _, tc := range cases {
		if got := FormatXP(tc.in); got != tc.want {
			t.Errorf("FormatXP(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatBRL(t *testing.T) {
	if got := FormatBRL(0); got != "Grátis" {
		t.Errorf("FormatBRL(0) = %q", got)
	}
	if got := FormatBRL(2990); got != "R$ 29,90" {
		t.Errorf("FormatBRL(2990) = %q", got)
	}
	if got := FormatBRL(5740); got != "R$ 57,40" {
		t.Errorf("FormatBRL(5740) = %q", got)
	}
}
