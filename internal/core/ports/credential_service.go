package ports

import (
	"context"

	"github.com/mediboard/hospital-system/internal/core/domain"
)

// AuthResult is the outcome of a credential check. Wrong password and unknown
// user are normal outcomes (Authenticated=false), never errors.
type AuthResult struct {
	Authenticated bool
	Role          string
	Account       *domain.Account
}

// CredentialService owns account creation, lookup, and verification.
type CredentialService interface {
	// AdminExists reports whether the sole bootstrap admin has been created.
	AdminExists(ctx context.Context) (bool, error)
	// CreateAdmin performs the one-time admin bootstrap.
	CreateAdmin(ctx context.Context, username, secret string) (*domain.Account, error)
	// CreateStaff creates a staff account with one of the enumerated roles.
	CreateStaff(ctx context.Context, username, secret, role string) (*domain.Account, error)
	// Verify checks a username/secret pair and updates last_login on success.
	Verify(ctx context.Context, username, secret string) (AuthResult, error)
	// Lookup resolves a username to its account, without the secret hash.
	Lookup(ctx context.Context, username string) (*domain.Account, error)
}

// SessionService is the UI-facing session surface over CredentialService.
type SessionService interface {
	// Login authenticates and returns a signed session token.
	Login(ctx context.Context, username, secret string) (string, *domain.Account, error)
	// Logout revokes the session token identified by jti until expiry.
	Logout(ctx context.Context, jti string, expiresAt int64) error
}
