package ports

import (
	"context"
	"io"

	"github.com/mediboard/hospital-system/internal/core/domain"
)

// RecordStore is the generic CRUD surface consumed by every business-entity
// page. Mutations are attributed to an actor and audited.
type RecordStore interface {
	List(ctx context.Context, table string) ([]domain.Record, error)
	Create(ctx context.Context, actor, table string, fields map[string]string) (*domain.Record, error)
	Update(ctx context.Context, actor, table, id string, fields map[string]string) (*domain.Record, error)
	Delete(ctx context.Context, actor, table, id string) error
	// ExportCSV writes the whole table to w: a schema header row, then one
	// row per record in insertion order.
	ExportCSV(ctx context.Context, table string, w io.Writer) error
}
