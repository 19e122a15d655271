package models

import "time"

// Audit log action kinds.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// AuditLogEntry is one row of the backend's audit_logs table. Read-only,
// paginated by recency.
type AuditLogEntry struct {
	ID        int64          `json:"id"`
	TableName string         `json:"table_name"`
	Action    string         `json:"action"`
	RecordID  *string        `json:"record_id,omitempty"`
	OldData   map[string]any `json:"old_data,omitempty"`
	NewData   map[string]any `json:"new_data,omitempty"`
	UserID    *string        `json:"user_id,omitempty"`
	UserEmail *string        `json:"user_email,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
