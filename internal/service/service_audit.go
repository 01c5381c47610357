package service

import (
	"context"
	"fmt"

	"github.com/medkit-lab/labauth/internal/logger"
	"github.com/medkit-lab/labauth/internal/store"
	"github.com/medkit-lab/labauth/models"
)

// auditService is the concrete implementation of AuditService.
type auditService struct {
	auditRepository store.AuditRepository
	logger          *logger.Logger
}

func NewAuditService(auditRepository store.AuditRepository, logger *logger.Logger) AuditService {
	return &auditService{auditRepository: auditRepository, logger: logger}
}

// Record persists the entry and propagates persistence failures to the
// caller. Flows whose security outcome depends on the entry being written
// use this form.
func (a *auditService) Record(ctx context.Context, entry models.AuditEntry) error {
	if !entry.Action.Valid() {
		return ErrInvalidDataProvided
	}

	if _, err := a.auditRepository.Insert(ctx, entry); err != nil {
		logger.FromContext(ctx).Err(err).Str("action", string(entry.Action)).Msg("audit entry insert failed")
		return fmt.Errorf("audit entry insert failed: %w", err)
	}

	return nil
}

// RecordBestEffort persists the entry and only logs on failure. The
// calling flow proceeds either way.
func (a *auditService) RecordBestEffort(ctx context.Context, entry models.AuditEntry) {
	if err := a.Record(ctx, entry); err != nil {
		logger.FromContext(ctx).Err(err).Str("action", string(entry.Action)).Msg("audit entry dropped")
	}
}

// List returns audit entries newest first, narrowed by filter.
func (a *auditService) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	if filter.Action != "" && !filter.Action.Valid() {
		return nil, ErrInvalidDataProvided
	}

	entries, err := a.auditRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("audit listing failed: %w", err)
	}

	return entries, nil
}
