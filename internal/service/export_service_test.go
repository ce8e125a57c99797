package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
	appErrors "github.com/escola-adm/sistema-escolar-api/pkg/errors"
	"github.com/escola-adm/sistema-escolar-api/pkg/export"
)

func newExportService(summaries []models.EnrollmentSummary) *ExportService {
	repo := &mockEnrollmentRepo{summaries: summaries}
	enrollments := newEnrollmentService(repo, &mockAuditRepo{})
	return NewExportService(enrollments, export.NewCSVExporter(), export.NewPDFExporter())
}

func TestExportServiceCSV(t *testing.T) {
	svc := newExportService([]models.EnrollmentSummary{
		{Matricula: 1, Nome: "Maria", Turma: "Ballet", Curso: "Infantil"},
		{Matricula: 2, Nome: "João", Turma: "", Curso: ""},
	})

	result, err := svc.EnrollmentSummaries(context.Background(), ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "matriculas.csv", result.Filename)

	content := string(result.Content)
	assert.Contains(t, content, "matricula,nome,turma,curso")
	assert.Contains(t, content, "1,Maria,Ballet,Infantil")
	assert.Contains(t, content, "2,João,,")
}

func TestExportServiceDefaultsToCSV(t *testing.T) {
	svc := newExportService(nil)

	result, err := svc.EnrollmentSummaries(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
}

func TestExportServicePDF(t *testing.T) {
	svc := newExportService([]models.EnrollmentSummary{{Matricula: 1, Nome: "Maria"}})

	result, err := svc.EnrollmentSummaries(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Content, []byte("%PDF")))
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc := newExportService(nil)

	_, err := svc.EnrollmentSummaries(context.Background(), "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
