package domain

import "time"

// UnknownActor attributes entries whose actor no longer resolves to an account.
const UnknownActor = "unknown"

// AuditEntry is one immutable, timestamped, actor-attributed log record.
// Entries are append-only: no update or delete path exists anywhere.
type AuditEntry struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
