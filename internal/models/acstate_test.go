package models

import "testing"

func TestParseMode(t *testing.T) {
	m, err := ParseMode("heat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != ModeHeat {
		t.Fatalf("expected heat, got %q", m)
	}

	if _, err := ParseMode("turbo"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if _, err := ParseMode(""); err == nil {
		t.Fatalf("expected error for empty mode")
	}
	// case matters on the wire
	if _, err := ParseMode("COOL"); err == nil {
		t.Fatalf("expected error for upper-case mode")
	}
}

func TestParseFanSpeed(t *testing.T) {
	f, err := ParseFanSpeed("medium")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != FanMedium {
		t.Fatalf("expected medium, got %q", f)
	}
	if _, err := ParseFanSpeed("max"); err == nil {
		t.Fatalf("expected error for unknown fan speed")
	}
}

func TestValidTemperature(t *testing.T) {
	cases := []struct {
		t    int
		want bool
	}{
		{15, false},
		{16, true},
		{25, true},
		{30, true},
		{31, false},
	}
	for _, c := range cases {
		if got := ValidTemperature(c.t); got != c.want {
			t.Fatalf("ValidTemperature(%d) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestACStateValid(t *testing.T) {
	if !DefaultACState().Valid() {
		t.Fatalf("default state must be valid")
	}
	bad := ACState{Mode: "plasma", TemperatureC: 25, FanSpeed: FanLow}
	if bad.Valid() {
		t.Fatalf("unknown mode must not validate")
	}
	bad = ACState{Mode: ModeCool, TemperatureC: 99, FanSpeed: FanLow}
	if bad.Valid() {
		t.Fatalf("out-of-range temperature must not validate")
	}
}
