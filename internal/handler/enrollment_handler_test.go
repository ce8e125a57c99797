package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/escola-adm/sistema-escolar-api/internal/middleware"
	"github.com/escola-adm/sistema-escolar-api/internal/models"
	"github.com/escola-adm/sistema-escolar-api/internal/service"
	"github.com/escola-adm/sistema-escolar-api/pkg/export"
)

type enrollmentRepoMock struct {
	nextID    int64
	inserted  []models.Enrollment
	summaries []models.EnrollmentSummary
	updates   map[int64]map[string]interface{}
}

func (m *enrollmentRepoMock) Insert(_ context.Context, e *models.Enrollment) (int64, error) {
	m.inserted = append(m.inserted, *e)
	m.nextID++
	return m.nextID, nil
}

func (m *enrollmentRepoMock) FindByID(_ context.Context, _ int64) (*models.Enrollment, error) {
	return nil, sql.ErrNoRows
}

func (m *enrollmentRepoMock) ListSummaries(_ context.Context) ([]models.EnrollmentSummary, error) {
	return m.summaries, nil
}

func (m *enrollmentRepoMock) Update(_ context.Context, matricula int64, fields map[string]interface{}) error {
	if m.updates == nil {
		m.updates = make(map[int64]map[string]interface{})
	}
	m.updates[matricula] = fields
	return nil
}

type auditRepoMock struct {
	entries []models.AuditEntry
}

func (m *auditRepoMock) Insert(_ context.Context, entry *models.AuditEntry) error {
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *auditRepoMock) List(_ context.Context, _ string) ([]models.AuditEntry, error) {
	return m.entries, nil
}

func newEnrollmentHandler(repo *enrollmentRepoMock) *EnrollmentHandler {
	audit := service.NewAuditService(&auditRepoMock{}, zap.NewNop())
	svc := service.NewEnrollmentService(repo, audit, nil, zap.NewNop())
	exports := service.NewExportService(svc, export.NewCSVExporter(), export.NewPDFExporter())
	return NewEnrollmentHandler(svc, exports)
}

func TestEnrollmentHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &enrollmentRepoMock{}
	handler := newEnrollmentHandler(repo)

	payload, _ := json.Marshal(models.CreateEnrollmentRequest{Nome: "Maria"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/matriculas", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Username: "ana"})

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, "Maria", repo.inserted[0].Nome)
}

func TestEnrollmentHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newEnrollmentHandler(&enrollmentRepoMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/matriculas", bytes.NewBufferString(`{"nome":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnrollmentHandlerEditForbiddenForNonMaster(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &enrollmentRepoMock{}
	handler := newEnrollmentHandler(repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/matriculas/1", bytes.NewBufferString(`{"nome":"Novo"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "matricula", Value: "1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Username: "ana"})

	handler.Edit(c)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, repo.updates)
}

func TestEnrollmentHandlerGetRejectsNonNumericID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newEnrollmentHandler(&enrollmentRepoMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/matriculas/abc", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "matricula", Value: "abc"}}

	handler.Get(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnrollmentHandlerExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &enrollmentRepoMock{summaries: []models.EnrollmentSummary{
		{Matricula: 1, Nome: "Maria", Turma: "Ballet", Curso: "Infantil"},
	}}
	handler := newEnrollmentHandler(repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/matriculas/export?format=csv", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "1,Maria,Ballet,Infantil")
}
