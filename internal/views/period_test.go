package views

import (
	"testing"
	"time"
)

func TestCurrentPeriod(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	p := CurrentPeriod(now)
	if p.Year != "2026" || p.Month != 9 || p.Quarter != 0 {
		t.Fatalf("unexpected default period: %+v", p)
	}
}

func TestPeriodQuarterMonthExclusive(t *testing.T) {
	p := Period{Year: "2026"}

	p = p.WithQuarter(2)
	if p.Quarter != 2 || p.Month != 0 {
		t.Fatalf("after selecting Q2: %+v", p)
	}

	p = p.WithMonth(5)
	if p.Month != 5 || p.Quarter != 0 {
		t.Fatalf("selecting month 05 must clear the quarter: %+v", p)
	}

	p = p.WithQuarter(2)
	if p.Quarter != 2 || p.Month != 0 {
		t.Fatalf("selecting Q2 must clear the month: %+v", p)
	}

	p = p.WithQuarter(2)
	if p.Quarter != 0 {
		t.Fatalf("reselecting the active quarter must deselect it: %+v", p)
	}

	p = p.WithMonth(5)
	p = p.WithMonth(5)
	if p.Month != 0 {
		t.Fatalf("reselecting the active month must deselect it: %+v", p)
	}
}

func TestPeriodMatches(t *testing.T) {
	tests := []struct {
		name   string
		period Period
		date   string
		want   bool
	}{
		{"year only match", Period{Year: "2026"}, "2026-05-14", true},
		{"year mismatch", Period{Year: "2026"}, "2025-05-14", false},
		{"quarter match", Period{Year: "2026", Quarter: 2}, "2026-06-30", true},
		{"quarter boundary below", Period{Year: "2026", Quarter: 2}, "2026-03-31", false},
		{"quarter boundary above", Period{Year: "2026", Quarter: 2}, "2026-07-01", false},
		{"month match", Period{Year: "2026", Month: 5}, "2026-05-01T08:00:00", true},
		{"month mismatch", Period{Year: "2026", Month: 5}, "2026-06-01", false},
		{"too short", Period{Year: "2026"}, "2026", false},
		{"placeholder date", Period{Year: "2026"}, "-", false},
		{"empty date", Period{Year: "2026"}, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.period.Matches(tc.date); got != tc.want {
				t.Errorf("Matches(%q) = %v, want %v", tc.date, got, tc.want)
			}
		})
	}
}

func TestPeriodLabel(t *testing.T) {
	if got := (Period{Year: "2026", Quarter: 3}).Label(); got != "2026 Q3" {
		t.Errorf("quarter label = %q", got)
	}
	if got := (Period{Year: "2026", Month: 5}).Label(); got != "2026-05" {
		t.Errorf("month label = %q", got)
	}
	if got := (Period{Year: "2026"}).Label(); got != "2026" {
		t.Errorf("year label = %q", got)
	}
}
