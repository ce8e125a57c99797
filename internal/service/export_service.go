package service

import (
	"context"
	"fmt"
	"strconv"

	appErrors "github.com/escola-adm/sistema-escolar-api/pkg/errors"
	"github.com/escola-adm/sistema-escolar-api/pkg/export"
)

// Export formats accepted by the roster export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfDatasetRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportService renders the enrollment roster as a downloadable document.
type ExportService struct {
	enrollments *EnrollmentService
	csv         datasetRenderer
	pdf         pdfDatasetRenderer
}

// NewExportService constructs an ExportService instance.
func NewExportService(enrollments *EnrollmentService, csv datasetRenderer, pdf pdfDatasetRenderer) *ExportService {
	return &ExportService{enrollments: enrollments, csv: csv, pdf: pdf}
}

// ExportResult carries the rendered document and its HTTP metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// EnrollmentSummaries renders the roster in the requested format.
func (s *ExportService) EnrollmentSummaries(ctx context.Context, format string) (*ExportResult, error) {
	summaries, err := s.enrollments.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{
		Headers: []string{"matricula", "nome", "turma", "curso"},
		Rows:    make([]map[string]string, 0, len(summaries)),
	}
	for _, summary := range summaries {
		data.Rows = append(data.Rows, map[string]string{
			"matricula": strconv.FormatInt(summary.Matricula, 10),
			"nome":      summary.Nome,
			"turma":     summary.Turma,
			"curso":     summary.Curso,
		})
	}

	switch format {
	case ExportFormatCSV, "":
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "matriculas.csv"}, nil
	case ExportFormatPDF:
		content, err := s.pdf.Render(data, "Matrículas")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "matriculas.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
