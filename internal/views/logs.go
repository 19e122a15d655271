package views

import (
	"sort"

	"kone-backend/internal/models"
)

// LogQuery narrows the audit trail. Empty Tables or Actions selections
// allow every value; Limit caps the result after filtering (0 = no cap).
type LogQuery struct {
	Search  string
	Tables  []string
	Actions []string
	Limit   int
}

// FilterLogs keeps entries matching every active criterion, preserving
// the input's newest-first order.
func FilterLogs(entries []models.AuditLogEntry, q LogQuery) []models.AuditLogEntry {
	out := make([]models.AuditLogEntry, 0, len(entries))
	for _, e := range entries {
		if !selectionAllows(q.Tables, e.TableName) {
			continue
		}
		if !selectionAllows(q.Actions, e.Action) {
			continue
		}
		if q.Search != "" && !logMatches(e, q.Search) {
			continue
		}
		out = append(out, e)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out
}

func logMatches(e models.AuditLogEntry, search string) bool {
	if matchesFold(e.TableName, search) || matchesFold(e.Action, search) {
		return true
	}
	if e.RecordID != nil && matchesFold(*e.RecordID, search) {
		return true
	}
	return e.UserEmail != nil && matchesFold(*e.UserEmail, search)
}

// LogTables enumerates the distinct table names present in the trail,
// sorted for stable filter menus.
func LogTables(entries []models.AuditLogEntry) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, e := range entries {
		if !seen[e.TableName] {
			seen[e.TableName] = true
			names = append(names, e.TableName)
		}
	}
	sort.Strings(names)
	return names
}
