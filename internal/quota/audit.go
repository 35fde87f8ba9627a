package quota

import (
	"context"
	"time"
)

// AuditEntry records a quota event for later review.
type AuditEntry struct {
	CallerKey string
	Action    string
	Detail    any
	At        time.Time
}

// Auditor persists audit entries. Callers treat failures as non-fatal.
type Auditor interface {
	Audit(ctx context.Context, entry AuditEntry) error
}
