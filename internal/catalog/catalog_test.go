package catalog

import (
	"sort"
	"testing"
)

func TestCandidatesFor_OrderPreserved(t *testing.T) {
	got := CandidatesFor("daikin")
	want := []Protocol{"DAIKIN", "DAIKIN2", "DAIKIN64", "DAIKIN128", "DAIKIN152",
		"DAIKIN160", "DAIKIN176", "DAIKIN200", "DAIKIN216", "DAIKIN312"}
	if len(got) != len(want) {
		t.Fatalf("got %d candidates, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidate %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCandidatesFor_CaseAndWhitespace(t *testing.T) {
	if got := CandidatesFor("  Daikin "); len(got) == 0 {
		t.Fatalf("brand matching must be case-insensitive and trimmed")
	}
	if got := CandidatesFor("LG"); len(got) != 1 || got[0] != "LG" {
		t.Fatalf("unexpected lg candidates: %v", got)
	}
}

func TestCandidatesFor_UnknownBrand(t *testing.T) {
	if got := CandidatesFor("acme"); got != nil {
		t.Fatalf("expected nil for unknown brand, got %v", got)
	}
}

func TestCandidatesFor_ReturnsCopy(t *testing.T) {
	a := CandidatesFor("coolix")
	a[0] = "MUTATED"
	b := CandidatesFor("coolix")
	if b[0] == "MUTATED" {
		t.Fatalf("CandidatesFor must not expose the internal table")
	}
}

func TestBrands_SortedAndComplete(t *testing.T) {
	brands := Brands()
	if len(brands) != len(brandProtocols) {
		t.Fatalf("got %d brands, want %d", len(brands), len(brandProtocols))
	}
	if !sort.StringsAreSorted(brands) {
		t.Fatalf("brands must be sorted: %v", brands)
	}
}
