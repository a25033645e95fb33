package domain

import "time"

// AuditEvent records a security-relevant action for the audit log.
type AuditEvent struct {
	ID         int64
	UserID     *int64
	Action     string
	EntityType string
	EntityID   *int64
	Details    map[string]any
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time
}
