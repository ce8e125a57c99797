package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
	appErrors "github.com/escola-adm/sistema-escolar-api/pkg/errors"
)

type mockReferenceRepo struct {
	options      []models.ReferenceOption
	rows         []models.ReferenceRow
	nextID       int64
	inserted     []map[string]string
	optionsCalls int
	insertErr    error
}

func (m *mockReferenceRepo) ListOptions(_ context.Context, _ models.ReferenceSpec) ([]models.ReferenceOption, error) {
	m.optionsCalls++
	return m.options, nil
}

func (m *mockReferenceRepo) ListRows(_ context.Context, _ models.ReferenceSpec) ([]models.ReferenceRow, error) {
	return m.rows, nil
}

func (m *mockReferenceRepo) Insert(_ context.Context, _ models.ReferenceSpec, fields map[string]string) (int64, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.inserted = append(m.inserted, fields)
	m.nextID++
	return m.nextID, nil
}

type stubCacheRepo struct {
	store map[string][]byte
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	delete(s.store, pattern)
	return nil
}

func newReferenceService(repo *mockReferenceRepo, auditRepo *mockAuditRepo, cacheRepo *stubCacheRepo) *ReferenceService {
	audit := NewAuditService(auditRepo, zap.NewNop())
	var cacheSvc *CacheService
	if cacheRepo != nil {
		cacheSvc = NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	}
	return NewReferenceService(repo, audit, cacheSvc, nil, zap.NewNop())
}

func TestReferenceServiceAddRequiresMaster(t *testing.T) {
	repo := &mockReferenceRepo{}
	auditRepo := &mockAuditRepo{}
	svc := newReferenceService(repo, auditRepo, nil)

	_, err := svc.Add(context.Background(), models.KindTurmas, map[string]string{"nome": "Ballet"}, "ana")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPermissionDenied.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.inserted)
	assert.Empty(t, auditRepo.entries)
}

func TestReferenceServiceAddRecordsAudit(t *testing.T) {
	repo := &mockReferenceRepo{}
	auditRepo := &mockAuditRepo{}
	svc := newReferenceService(repo, auditRepo, nil)

	id, err := svc.Add(context.Background(), models.KindTurmas, map[string]string{"nome": "Ballet", "horario": "14h"}, "master")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.Len(t, auditRepo.entries, 1)
	entry := auditRepo.entries[0]
	assert.Equal(t, "master", entry.Username)
	assert.Equal(t, models.AuditActionAdd, entry.Action)
	assert.Equal(t, "turmas", entry.TableName)
	assert.Equal(t, "1", entry.RecordID)
}

func TestReferenceServiceAddSurvivesAuditFailure(t *testing.T) {
	repo := &mockReferenceRepo{}
	auditRepo := &mockAuditRepo{insertErr: assert.AnError}
	svc := newReferenceService(repo, auditRepo, nil)

	id, err := svc.Add(context.Background(), models.KindCursos, map[string]string{"nome": "Jazz"}, "master")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Len(t, repo.inserted, 1)
}

func TestReferenceServiceAddAcceptsEmptyFields(t *testing.T) {
	repo := &mockReferenceRepo{}
	auditRepo := &mockAuditRepo{}
	svc := newReferenceService(repo, auditRepo, nil)

	id, err := svc.Add(context.Background(), models.KindTurmas, map[string]string{}, "master")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	require.Len(t, repo.inserted, 1)
	require.Len(t, auditRepo.entries, 1)
}

func TestReferenceServiceAddUnknownKind(t *testing.T) {
	svc := newReferenceService(&mockReferenceRepo{}, &mockAuditRepo{}, nil)

	_, err := svc.Add(context.Background(), models.ReferenceKind("alunos"), map[string]string{"nome": "x"}, "master")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReferenceServiceAddRejectsUnknownField(t *testing.T) {
	svc := newReferenceService(&mockReferenceRepo{}, &mockAuditRepo{}, nil)

	_, err := svc.Add(context.Background(), models.KindCursos, map[string]string{"preco": "10"}, "master")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReferenceServiceOptionsCaching(t *testing.T) {
	repo := &mockReferenceRepo{options: []models.ReferenceOption{{ID: 1, Label: "Ballet"}}}
	cacheRepo := &stubCacheRepo{}
	svc := newReferenceService(repo, &mockAuditRepo{}, cacheRepo)

	ctx := context.Background()
	first, err := svc.Options(ctx, models.KindTurmas)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.optionsCalls)

	second, err := svc.Options(ctx, models.KindTurmas)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.optionsCalls)
	assert.Equal(t, first, second)
}

func TestReferenceServiceAddInvalidatesOptionsCache(t *testing.T) {
	repo := &mockReferenceRepo{options: []models.ReferenceOption{{ID: 1, Label: "Ballet"}}}
	cacheRepo := &stubCacheRepo{}
	svc := newReferenceService(repo, &mockAuditRepo{}, cacheRepo)

	ctx := context.Background()
	_, err := svc.Options(ctx, models.KindTurmas)
	require.NoError(t, err)
	require.Contains(t, cacheRepo.store, "referencias:options:turmas")

	_, err = svc.Add(ctx, models.KindTurmas, map[string]string{"nome": "Jazz"}, "master")
	require.NoError(t, err)
	assert.NotContains(t, cacheRepo.store, "referencias:options:turmas")
}

func TestReferenceServiceObservesQueryDuration(t *testing.T) {
	repo := &mockReferenceRepo{options: []models.ReferenceOption{{ID: 1, Label: "Ballet"}}}
	metrics := NewMetricsService()
	audit := NewAuditService(&mockAuditRepo{}, zap.NewNop())
	svc := NewReferenceService(repo, audit, nil, metrics, zap.NewNop())

	_, err := svc.Options(context.Background(), models.KindTurmas)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metrics.Handler().ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), `db_query_duration_seconds_count{query="turmas_options"} 1`)
}

func TestReferenceServiceRows(t *testing.T) {
	repo := &mockReferenceRepo{rows: []models.ReferenceRow{
		{ID: 1, Fields: map[string]string{"nome": "Ballet", "horario": "14h"}},
	}}
	svc := newReferenceService(repo, &mockAuditRepo{}, nil)

	rows, err := svc.Rows(context.Background(), models.KindTurmas)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ballet", rows[0].Fields["nome"])
}
