package handlers

import (
	"net/http"
	"strconv"
	"time"

	"kone-backend/internal/catalog"
	"kone-backend/internal/state"
	"kone-backend/internal/views"
)

// Catalogs holds the per-tab reference data, keyed by tab id.
type Catalogs map[string]*catalog.Catalog

func (c Catalogs) For(tab string) *catalog.Catalog {
	if cat, ok := c[tab]; ok {
		return cat
	}
	return c[state.TabK1]
}

func queryTab(r *http.Request) string {
	if r.URL.Query().Get("tab") == state.TabEcob {
		return state.TabEcob
	}
	return state.TabK1
}

// queryList reads a repeatable query parameter ("?categories=a&categories=b").
func queryList(r *http.Request, key string) []string {
	vals := r.URL.Query()[key]
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

func queryBool(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return b
}

// queryPeriod builds the time window from year/quarter/month parameters.
// No period parameters at all means the default window (current year and
// month); quarter wins over month when both are sent, matching the
// exclusive toggle.
func queryPeriod(r *http.Request) views.Period {
	year := r.URL.Query().Get("year")
	quarter := queryInt(r, "quarter")
	month := queryInt(r, "month")

	if year == "" && quarter == 0 && month == 0 {
		return views.CurrentPeriod(time.Now())
	}
	p := views.Period{Year: year}
	if p.Year == "" {
		p.Year = views.CurrentPeriod(time.Now()).Year
	}
	if quarter != 0 {
		return p.WithQuarter(quarter)
	}
	if month != 0 {
		return p.WithMonth(month)
	}
	return p
}
