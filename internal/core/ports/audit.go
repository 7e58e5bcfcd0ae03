package ports

import (
	"context"

	"github.com/mediboard/hospital-system/internal/core/domain"
)

// AuditRepository persists the append-only action history. Insert is the only
// write; there is deliberately no update or delete.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	// List returns the full history, most recent first.
	List(ctx context.Context) ([]domain.AuditEntry, error)
}

// AuditLog records user-attributed actions and reads them back for display.
type AuditLog interface {
	// Append records an action. A failure here must never roll back the
	// business operation that triggered it.
	Append(ctx context.Context, actor, action, details string) error
	// List returns every committed entry in reverse-chronological order.
	// Each call re-reads the full history; no cursor state is retained.
	List(ctx context.Context) ([]domain.AuditEntry, error)
}
