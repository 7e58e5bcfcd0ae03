package ports

import (
	"context"

	"github.com/mediboard/hospital-system/internal/core/domain"
)

// RecordRepository is the generic table-like persistence contract behind the
// RecordStore. Lists preserve insertion order.
type RecordRepository interface {
	List(ctx context.Context, table string) ([]domain.Record, error)
	FindByID(ctx context.Context, table, id string) (*domain.Record, error)
	Insert(ctx context.Context, record *domain.Record) error
	// Update replaces the fields of an existing record. Returns
	// domain.ErrRecordNotFound when the id is absent.
	Update(ctx context.Context, table, id string, fields map[string]string) error
	// Delete removes a record. Returns domain.ErrRecordNotFound when absent.
	Delete(ctx context.Context, table, id string) error
	Count(ctx context.Context, table string) (int64, error)
}
