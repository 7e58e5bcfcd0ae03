package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mediboard/hospital-system/internal/core/domain"
	"github.com/mediboard/hospital-system/internal/core/ports"
)

// CredentialService owns account creation and verification: the one-admin
// bootstrap policy, the shared username namespace, and bcrypt hashing.
type CredentialService struct {
	repo ports.AccountRepository
	log  zerolog.Logger

	// mu serializes account creation so the bootstrap check and the
	// uniqueness check cannot race within this process. The unique index on
	// username backs this up across processes.
	mu sync.Mutex
}

func NewCredentialService(repo ports.AccountRepository, log zerolog.Logger) *CredentialService {
	return &CredentialService{repo: repo, log: log}
}

// AdminExists reports whether the bootstrap admin has been created. A corrupt
// store is logged and treated as "no admin yet".
func (s *CredentialService) AdminExists(ctx context.Context) (bool, error) {
	n, err := s.repo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptStore) {
			s.log.Warn().Err(err).Msg("account store unreadable, assuming no admin")
			return false, nil
		}
		return false, err
	}
	return n > 0, nil
}

// CreateAdmin performs the one-time admin bootstrap. Only the first call ever
// succeeds; every subsequent call fails with ErrAdminExists.
func (s *CredentialService) CreateAdmin(ctx context.Context, username, secret string) (*domain.Account, error) {
	if username == "" || secret == "" {
		return nil, domain.ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.AdminExists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAdminExists
	}

	account, err := s.create(ctx, username, secret, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", account.Username).Msg("admin account bootstrapped")
	return account, nil
}

// CreateStaff creates a staff account with one of the enumerated roles.
// Authorization (admin session) is enforced at the API layer.
func (s *CredentialService) CreateStaff(ctx context.Context, username, secret, role string) (*domain.Account, error) {
	if username == "" || secret == "" {
		return nil, domain.ErrValidation
	}
	if !domain.IsStaffRole(role) {
		return nil, domain.ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.create(ctx, username, secret, role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", account.Username).Str("role", role).Msg("staff account created")
	return account, nil
}

func (s *CredentialService) create(ctx context.Context, username, secret, role string) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:   username,
		SecretHash: string(hash),
		Role:       role,
		CreatedAt:  time.Now().UTC(),
	}
	return s.repo.Create(ctx, account)
}

// Lookup resolves a username to its account. The secret hash is stripped so
// the result is safe to hand to transport layers.
func (s *CredentialService) Lookup(ctx context.Context, username string) (*domain.Account, error) {
	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	clone := *account
	clone.SecretHash = ""
	return &clone, nil
}

// Verify checks a username/secret pair. Unknown user and wrong secret are
// normal outcomes (Authenticated=false, nil error), never errors; a corrupt
// stored record is logged and treated as "no such account". On success the
// account's last_login is updated.
func (s *CredentialService) Verify(ctx context.Context, username, secret string) (ports.AuthResult, error) {
	none := ports.AuthResult{}
	if username == "" || secret == "" {
		return none, nil
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return none, nil
		}
		if errors.Is(err, domain.ErrCorruptStore) {
			s.log.Warn().Err(err).Str("username", username).Msg("corrupt account record, treating as unknown user")
			return none, nil
		}
		return none, err
	}

	// bcrypt's compare is constant-time over the hash.
	if bcrypt.CompareHashAndPassword([]byte(account.SecretHash), []byte(secret)) != nil {
		return none, nil
	}

	if err := s.repo.UpdateLastLogin(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to update last_login")
	} else {
		account.LastLogin = time.Now().UTC()
	}

	return ports.AuthResult{Authenticated: true, Role: account.Role, Account: account}, nil
}
