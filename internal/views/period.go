package views

import (
	"fmt"
	"time"
)

// Period is the time window of the filter pipeline. The year is always
// active; quarter and month are mutually exclusive refinements — selecting
// one clears the other.
type Period struct {
	Year    string `json:"year"`
	Quarter int    `json:"quarter,omitempty"` // 1..4, 0 = unset
	Month   int    `json:"month,omitempty"`   // 1..12, 0 = unset
}

// CurrentPeriod is the default filter state: current year, current month,
// no quarter.
func CurrentPeriod(now time.Time) Period {
	return Period{
		Year:  fmt.Sprintf("%04d", now.Year()),
		Month: int(now.Month()),
	}
}

// WithQuarter selects a quarter, clearing any month selection. Selecting
// the already-active quarter deselects it.
func (p Period) WithQuarter(q int) Period {
	if q < 1 || q > 4 || p.Quarter == q {
		p.Quarter = 0
		return p
	}
	p.Quarter = q
	p.Month = 0
	return p
}

// WithMonth selects a month, clearing any quarter selection. Selecting the
// already-active month deselects it.
func (p Period) WithMonth(m int) Period {
	if m < 1 || m > 12 || p.Month == m {
		p.Month = 0
		return p
	}
	p.Month = m
	p.Quarter = 0
	return p
}

// Matches reports whether an ISO-like date string ("YYYY-MM-DD..." or
// "YYYY-MM-DDTHH:MM:SS") falls inside the period. Records without a usable
// date never match.
func (p Period) Matches(date string) bool {
	if len(date) < 7 {
		return false
	}
	if p.Year != "" && date[:4] != p.Year {
		return false
	}

	month := int(date[5]-'0')*10 + int(date[6]-'0')
	if month < 1 || month > 12 {
		return false
	}
	if p.Quarter != 0 {
		start := (p.Quarter-1)*3 + 1
		if month < start || month > start+2 {
			return false
		}
	}
	if p.Month != 0 && month != p.Month {
		return false
	}
	return true
}

// Label renders the human-readable window, e.g. "2026 Q2" or "2026-05".
func (p Period) Label() string {
	switch {
	case p.Quarter != 0:
		return fmt.Sprintf("%s Q%d", p.Year, p.Quarter)
	case p.Month != 0:
		return fmt.Sprintf("%s-%02d", p.Year, p.Month)
	default:
		return p.Year
	}
}
