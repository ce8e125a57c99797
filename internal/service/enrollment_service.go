package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
	appErrors "github.com/escola-adm/sistema-escolar-api/pkg/errors"
)

// birthDateLayout is the form's date format (dd/mm/aaaa).
const birthDateLayout = "02/01/2006"

type enrollmentRepository interface {
	Insert(ctx context.Context, e *models.Enrollment) (int64, error)
	FindByID(ctx context.Context, matricula int64) (*models.Enrollment, error)
	ListSummaries(ctx context.Context) ([]models.EnrollmentSummary, error)
	Update(ctx context.Context, matricula int64, fields map[string]interface{}) error
}

// EnrollmentService implements registration over the cadastro table.
// Creation is open to any authenticated operator; edits are master-only.
type EnrollmentService struct {
	repo      enrollmentRepository
	audit     *AuditService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEnrollmentService constructs an EnrollmentService instance.
func NewEnrollmentService(repo enrollmentRepository, audit *AuditService, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EnrollmentService{repo: repo, audit: audit, validator: validate, logger: logger, now: time.Now}
}

// Create registers a new student and returns the assigned matricula.
func (s *EnrollmentService) Create(ctx context.Context, req models.CreateEnrollmentRequest, actor string) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}

	today := s.now()
	enrollment := &models.Enrollment{
		DataMatricula:  today.Format("2006-01-02"),
		Nome:           req.Nome,
		DataNascimento: req.DataNascimento,
		Idade:          ComputeAge(req.DataNascimento, today),
		Responsavel:    req.Responsavel,
		CPF:            req.CPF,
		RG:             req.RG,
		TelPrincipal:   req.TelPrincipal,
		TelRecado:      req.TelRecado,
		CEP:            req.CEP,
		Logradouro:     req.Logradouro,
		Numero:         req.Numero,
		Complemento:    req.Complemento,
		Bairro:         req.Bairro,
		Cidade:         req.Cidade,
		Email:          req.Email,
		Instagram:      req.Instagram,
		TurmaID:        ParseSelection(req.Turma),
		CursoID:        ParseSelection(req.Curso),
		MaterialID:     ParseSelection(req.Material),
		Vencimento:     req.Vencimento,
		ValorID:        ParseSelection(req.Valor),
	}

	matricula, err := s.repo.Insert(ctx, enrollment)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to insert enrollment")
	}

	if err := s.audit.Record(ctx, actor, models.AuditActionAdd, "cadastro", strconv.FormatInt(matricula, 10)); err != nil {
		s.logger.Warn("audit append failed after enrollment create",
			zap.Int64("matricula", matricula), zap.Error(err))
	}
	return matricula, nil
}

// Get returns one enrollment by matricula.
func (s *EnrollmentService) Get(ctx context.Context, matricula int64) (*models.Enrollment, error) {
	enrollment, err := s.repo.FindByID(ctx, matricula)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch enrollment")
	}
	return enrollment, nil
}

// ListSummaries returns the roster projection in matricula order.
func (s *EnrollmentService) ListSummaries(ctx context.Context) ([]models.EnrollmentSummary, error) {
	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	return summaries, nil
}

// Edit applies a partial update. Master-only; the field set may name any
// stored column except the primary key. When data_nascimento is part of the
// set the idade column is recomputed from it, overriding any supplied value.
func (s *EnrollmentService) Edit(ctx context.Context, matricula int64, fields map[string]string, actor string) error {
	if !models.IsMaster(actor) {
		return appErrors.Clone(appErrors.ErrPermissionDenied, "only the master user can edit enrollments")
	}
	if len(fields) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}

	update := make(map[string]interface{}, len(fields)+1)
	for column, value := range fields {
		if !models.IsEnrollmentColumnEditable(column) {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("column %q is not editable", column))
		}
		switch column {
		case "turma_id", "curso_id", "material_id", "valor_id":
			update[column] = ParseSelection(value)
		case "idade":
			age, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				age = 0
			}
			update[column] = age
		default:
			update[column] = value
		}
	}
	if birth, ok := fields["data_nascimento"]; ok {
		update["idade"] = ComputeAge(birth, s.now())
	}

	if err := s.repo.Update(ctx, matricula, update); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to update enrollment")
	}

	if err := s.audit.Record(ctx, actor, models.AuditActionEdit, "cadastro", strconv.FormatInt(matricula, 10)); err != nil {
		s.logger.Warn("audit append failed after enrollment edit",
			zap.Int64("matricula", matricula), zap.Error(err))
	}
	return nil
}

// ComputeAge derives completed years from a dd/mm/aaaa birth date. The year
// difference is decremented when today's anniversary has not arrived yet. An
// unparsable or empty date yields zero rather than an error.
func ComputeAge(birthDate string, today time.Time) int {
	birth, err := time.Parse(birthDateLayout, strings.TrimSpace(birthDate))
	if err != nil {
		return 0
	}
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// ParseSelection extracts the numeric id from an "id - label" selection
// string. Empty or malformed input maps to nil, which persists as NULL; the
// id is never checked against its reference table.
func ParseSelection(selection string) *int64 {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		return nil
	}
	head := selection
	if idx := strings.Index(selection, " - "); idx >= 0 {
		head = selection[:idx]
	}
	id, err := strconv.ParseInt(strings.TrimSpace(head), 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
