package shelfconfig

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"10s", 10 * time.Second},
		{"500ms", 500 * time.Millisecond},
		{"1m", time.Minute},
		{"2h", 2 * time.Hour},
		{"1d", 24 * time.Hour},
		{"PT30S", 30 * time.Second},
		{"PT1H30M", 90 * time.Minute},
		{"P1D", 24 * time.Hour},
	}

	for _, tc := range cases {
		got, err := ParseDuration(tc.in)
		if err != nil {
			t.Errorf("ParseDuration(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDuration_Empty(t *testing.T) {
	if _, err := ParseDuration(""); err == nil {
		t.Error("expected error for empty duration string")
	}
}
