package ports

import (
	"context"

	"github.com/mediboard/hospital-system/internal/core/domain"
)

// AccountRepository defines the interface for account persistence.
// Implementations must enforce username uniqueness across the whole
// admin+staff namespace.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	UpdateLastLogin(ctx context.Context, username string) error
}
