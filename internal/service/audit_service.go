package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
	appErrors "github.com/escola-adm/sistema-escolar-api/pkg/errors"
)

type auditRepository interface {
	Insert(ctx context.Context, entry *models.AuditEntry) error
	List(ctx context.Context, actor string) ([]models.AuditEntry, error)
}

// AuditService appends and queries the mutation trail. Every mutating
// operation in the system funnels through Record exactly once.
type AuditService struct {
	repo   auditRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewAuditService constructs an AuditService instance.
func NewAuditService(repo auditRepository, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, logger: logger, now: time.Now}
}

// Record appends one audit entry stamped with the store-local clock.
func (s *AuditService) Record(ctx context.Context, actor, action, table, recordID string) error {
	entry := &models.AuditEntry{
		Username:  actor,
		Action:    action,
		TableName: table,
		RecordID:  recordID,
		Timestamp: s.now().Format(time.RFC3339),
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to append audit entry")
	}
	return nil
}

// List returns entries in insertion order; an empty actor returns everything.
func (s *AuditService) List(ctx context.Context, actor string) ([]models.AuditEntry, error) {
	entries, err := s.repo.List(ctx, actor)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list audit entries")
	}
	return entries, nil
}
