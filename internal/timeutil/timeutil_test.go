package timeutil

import (
	"testing"
	"time"
)

func TestParseDateRoundTrip(t *testing.T) {
	parsed, err := ParseDate("2025-12-14")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := FormatDate(parsed); got != "2025-12-14" {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("14/12/2025"); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}

func TestDateRange(t *testing.T) {
	from := time.Date(2025, 12, 30, 15, 0, 0, 0, time.UTC)
	got := DateRange(from, 3)

	want := []string{"2025-12-30", "2025-12-31", "2026-01-01"}
	if len(got) != len(want) {
		t.Fatalf("expected %d dates, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("date %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestDateRangeNonPositive(t *testing.T) {
	if got := DateRange(time.Now(), 0); got != nil {
		t.Fatalf("non-positive count should yield no dates, got %v", got)
	}
}
