package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mediboard/hospital-system/internal/core/domain"
	"github.com/mediboard/hospital-system/internal/core/ports"
)

// TokenRevoker abstracts the session revocation store (Redis).
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// SessionService issues and revokes signed session tokens on top of the
// credential store. There is no ambient session state: the token is the
// session, passed explicitly by the caller.
type SessionService struct {
	creds     ports.CredentialService
	revoker   TokenRevoker
	jwtSecret string
	tokenTTL  time.Duration
}

func NewSessionService(creds ports.CredentialService, revoker TokenRevoker, jwtSecret string, tokenTTL time.Duration) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &SessionService{creds: creds, revoker: revoker, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login verifies credentials and returns a signed token. Every failure mode
// collapses into ErrInvalidCredentials so account existence never leaks.
func (s *SessionService) Login(ctx context.Context, username, secret string) (string, *domain.Account, error) {
	result, err := s.creds.Verify(ctx, username, secret)
	if err != nil {
		return "", nil, err
	}
	if !result.Authenticated {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(result.Account)
	if err != nil {
		return "", nil, err
	}
	return token, result.Account, nil
}

// Logout revokes the token identified by jti until its expiry.
func (s *SessionService) Logout(ctx context.Context, jti string, expiresAt int64) error {
	until := time.Unix(expiresAt, 0)
	if remaining := time.Until(until); remaining <= 0 {
		// Already expired, nothing to revoke.
		return nil
	}
	return s.revoker.Revoke(ctx, jti, until)
}

func (s *SessionService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"username": account.Username,
		"role":     account.Role,
		"jti":      uuid.NewString(),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
