package views

import (
	"testing"

	"kone-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func logFixture() []models.AuditLogEntry {
	return []models.AuditLogEntry{
		{ID: 3, TableName: "current_stock", Action: models.ActionUpdate, RecordID: strPtr("BRG-6204"), UserEmail: strPtr("kim@k1solution.com")},
		{ID: 2, TableName: "deal_data", Action: models.ActionInsert, RecordID: strPtr("42")},
		{ID: 1, TableName: "current_stock", Action: models.ActionDelete},
	}
}

func TestFilterLogsInclusiveSelections(t *testing.T) {
	got := FilterLogs(logFixture(), LogQuery{})
	if len(got) != 3 {
		t.Fatalf("empty selections filter nothing, got %d", len(got))
	}

	got = FilterLogs(logFixture(), LogQuery{Tables: []string{"current_stock"}})
	if len(got) != 2 {
		t.Fatalf("table filter: got %d, want 2", len(got))
	}

	got = FilterLogs(logFixture(), LogQuery{
		Tables:  []string{"current_stock"},
		Actions: []string{models.ActionUpdate},
	})
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("composed filter: %+v", got)
	}
}

func TestFilterLogsSearchAndLimit(t *testing.T) {
	got := FilterLogs(logFixture(), LogQuery{Search: "kim@"})
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("search over user email: %+v", got)
	}

	got = FilterLogs(logFixture(), LogQuery{Limit: 2})
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 2 {
		t.Fatalf("limit must keep newest-first prefix: %+v", got)
	}
}

func TestLogTables(t *testing.T) {
	got := LogTables(logFixture())
	want := []string{"current_stock", "deal_data"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("tables = %v, want %v", got, want)
	}
}
