package handlers

import (
	"fmt"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"kone-backend/internal/catalog"
	"kone-backend/internal/state"
)

func TestQueryTab(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"/api/stock", state.TabK1},
		{"/api/stock?tab=k1", state.TabK1},
		{"/api/stock?tab=ecob", state.TabEcob},
		{"/api/stock?tab=bogus", state.TabK1},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.url, nil)
		if got := queryTab(r); got != tt.want {
			t.Errorf("queryTab(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestQueryList(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/stock?categories=a&categories=&categories=b", nil)
	got := queryList(r, "categories")
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("queryList = %v, want %v", got, want)
	}
	if got := queryList(r, "missing"); len(got) != 0 {
		t.Errorf("queryList for absent key = %v, want empty", got)
	}
}

func TestQueryPeriod(t *testing.T) {
	year := fmt.Sprintf("%04d", time.Now().Year())

	t.Run("no parameters means current window", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/deals", nil)
		p := queryPeriod(r)
		if p.Year != year {
			t.Errorf("Year = %q, want %q", p.Year, year)
		}
		if p.Month != int(time.Now().Month()) || p.Quarter != 0 {
			t.Errorf("default window = %+v", p)
		}
	})

	t.Run("year only", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/deals?year=2024", nil)
		p := queryPeriod(r)
		if p.Year != "2024" || p.Month != 0 || p.Quarter != 0 {
			t.Errorf("period = %+v, want bare 2024", p)
		}
	})

	t.Run("quarter wins over month", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/deals?year=2024&quarter=2&month=5", nil)
		p := queryPeriod(r)
		if p.Quarter != 2 || p.Month != 0 {
			t.Errorf("period = %+v, want quarter 2 and no month", p)
		}
	})

	t.Run("month defaults the year", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/deals?month=3", nil)
		p := queryPeriod(r)
		if p.Year != year || p.Month != 3 {
			t.Errorf("period = %+v, want month 3 in %s", p, year)
		}
	})
}

func TestCatalogsFor(t *testing.T) {
	k1 := catalog.New(catalog.Catalog{Source: "k1"})
	ecob := catalog.New(catalog.Catalog{Source: "ecob"})
	cats := Catalogs{state.TabK1: k1, state.TabEcob: ecob}

	if got := cats.For(state.TabEcob); got != ecob {
		t.Errorf("For(ecob) = %v", got.Source)
	}
	if got := cats.For("unknown"); got != k1 {
		t.Errorf("For(unknown) should fall back to the k1 catalog, got %v", got.Source)
	}
}
