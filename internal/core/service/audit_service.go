package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mediboard/hospital-system/internal/core/domain"
	"github.com/mediboard/hospital-system/internal/core/ports"
)

// AuditService keeps the durable, append-only action history.
type AuditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

// Append records one actor-attributed action. The entry is immutable once
// written. Callers that have already committed their own work must not treat
// an append failure as a business failure.
func (s *AuditService) Append(ctx context.Context, actor, action, details string) error {
	if actor == "" {
		actor = domain.UnknownActor
	}

	entry := &domain.AuditEntry{
		Actor:     actor,
		Action:    action,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("actor", actor).Str("action", action).Msg("audit append failed")
		return fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return nil
}

// List returns the full history, most recent first. Each call re-reads the
// store, so it reflects every append committed before the call.
func (s *AuditService) List(ctx context.Context) ([]domain.AuditEntry, error) {
	return s.repo.List(ctx)
}
