package models

// Audit actions. Only additions and edits exist; nothing in the system
// deletes, so no delete action is defined.
const (
	AuditActionAdd  = "add"
	AuditActionEdit = "edit"
)

// AuditEntry records one mutation (tabela logs). RecordID is stringified
// because user-management entries carry a username instead of a numeric id.
// Entries are append-only; no code path updates or removes them.
type AuditEntry struct {
	ID        int64  `db:"id" json:"id"`
	Username  string `db:"username" json:"username"`
	Action    string `db:"action" json:"action"`
	TableName string `db:"table_name" json:"table_name"`
	RecordID  string `db:"record_id" json:"record_id"`
	Timestamp string `db:"timestamp" json:"timestamp"`
}
