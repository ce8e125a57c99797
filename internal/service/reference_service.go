package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
	appErrors "github.com/escola-adm/sistema-escolar-api/pkg/errors"
)

type referenceRepository interface {
	ListOptions(ctx context.Context, spec models.ReferenceSpec) ([]models.ReferenceOption, error)
	ListRows(ctx context.Context, spec models.ReferenceSpec) ([]models.ReferenceRow, error)
	Insert(ctx context.Context, spec models.ReferenceSpec, fields map[string]string) (int64, error)
}

// ReferenceService manages the five lookup tables behind the enrollment
// form's selection fields. Reads are open; additions are master-only.
type ReferenceService struct {
	repo    referenceRepository
	audit   *AuditService
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewReferenceService constructs a ReferenceService instance.
func NewReferenceService(repo referenceRepository, audit *AuditService, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *ReferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceService{repo: repo, audit: audit, cache: cache, metrics: metrics, logger: logger}
}

func optionsCacheKey(kind models.ReferenceKind) string {
	return fmt.Sprintf("referencias:options:%s", kind)
}

// Options returns (id, label) pairs for a kind in id order.
func (s *ReferenceService) Options(ctx context.Context, kind models.ReferenceKind) ([]models.ReferenceOption, error) {
	spec, ok := models.SpecFor(kind)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown reference kind %q", kind))
	}

	key := optionsCacheKey(kind)
	if s.cache.Enabled() {
		var cached []models.ReferenceOption
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	start := time.Now()
	options, err := s.repo.ListOptions(ctx, spec)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(spec.Table+"_options", time.Since(start))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reference options")
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, key, options, 0); err != nil {
			s.logger.Warn("reference options cache write failed", zap.String("kind", string(kind)), zap.Error(err))
		}
	}
	return options, nil
}

// Rows returns the full records of a kind in id order.
func (s *ReferenceService) Rows(ctx context.Context, kind models.ReferenceKind) ([]models.ReferenceRow, error) {
	spec, ok := models.SpecFor(kind)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown reference kind %q", kind))
	}

	start := time.Now()
	rows, err := s.repo.ListRows(ctx, spec)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(spec.Table+"_rows", time.Since(start))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reference rows")
	}
	return rows, nil
}

// Add inserts one record into a kind's table. Master-only: a non-master
// actor is rejected before anything touches the store.
func (s *ReferenceService) Add(ctx context.Context, kind models.ReferenceKind, fields map[string]string, actor string) (int64, error) {
	if !models.IsMaster(actor) {
		return 0, appErrors.Clone(appErrors.ErrPermissionDenied, "only the master user can add records")
	}

	spec, ok := models.SpecFor(kind)
	if !ok {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown reference kind %q", kind))
	}

	for name := range fields {
		if !spec.HasColumn(name) {
			return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown field %q for %s", name, spec.Table))
		}
	}

	id, err := s.repo.Insert(ctx, spec, fields)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "reference insert returned no id")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to insert reference record")
	}

	if err := s.audit.Record(ctx, actor, models.AuditActionAdd, spec.Table, fmt.Sprintf("%d", id)); err != nil {
		s.logger.Warn("audit append failed after reference add",
			zap.String("table", spec.Table), zap.Int64("id", id), zap.Error(err))
	}

	if s.cache.Enabled() {
		if err := s.cache.Invalidate(ctx, optionsCacheKey(kind)); err != nil {
			s.logger.Warn("reference options cache invalidation failed", zap.String("kind", string(kind)), zap.Error(err))
		}
	}
	return id, nil
}
