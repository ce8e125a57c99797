package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"io/fs"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
	appErrors "github.com/escola-adm/sistema-escolar-api/pkg/errors"
	"github.com/escola-adm/sistema-escolar-api/pkg/export"
)

type paymentRepository interface {
	Insert(ctx context.Context, p *models.Payment) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.Payment, error)
	List(ctx context.Context) ([]models.Payment, error)
}

type attachmentStore interface {
	SaveStream(originalName string, r io.Reader) (string, error)
	Open(reference string) (io.ReadCloser, error)
}

type receiptRenderer interface {
	RenderReceipt(title string, fields []export.ReceiptField, issuedAt time.Time) ([]byte, error)
}

// PaymentService maintains the financeiro ledger. Entries are stored exactly
// as supplied; the matricula is not checked against cadastro.
type PaymentService struct {
	repo      paymentRepository
	audit     *AuditService
	store     attachmentStore
	pdf       receiptRenderer
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewPaymentService constructs a PaymentService instance.
func NewPaymentService(repo paymentRepository, audit *AuditService, store attachmentStore, pdf receiptRenderer, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &PaymentService{repo: repo, audit: audit, store: store, pdf: pdf, validator: validate, logger: logger, now: time.Now}
}

// Append adds one ledger entry and returns its id. Any authenticated
// operator may append; the entry is echoed back exactly as stored.
func (s *PaymentService) Append(ctx context.Context, req models.CreatePaymentRequest, actor string) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}

	payment := &models.Payment{
		Matricula:      req.Matricula,
		Valor:          req.Valor,
		Vencimento:     req.Vencimento,
		FormaPagamento: req.FormaPagamento,
		Anexo:          req.Anexo,
	}

	id, err := s.repo.Insert(ctx, payment)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to insert payment")
	}

	if err := s.audit.Record(ctx, actor, models.AuditActionAdd, "financeiro", strconv.FormatInt(id, 10)); err != nil {
		s.logger.Warn("audit append failed after payment insert", zap.Int64("id", id), zap.Error(err))
	}
	return id, nil
}

// List returns the full ledger in insertion order.
func (s *PaymentService) List(ctx context.Context) ([]models.Payment, error) {
	payments, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list payments")
	}
	return payments, nil
}

// SaveAttachment stores an uploaded file and returns the opaque reference
// the caller should set as anexo when appending the entry.
func (s *PaymentService) SaveAttachment(originalName string, r io.Reader) (string, error) {
	reference, err := s.store.SaveStream(originalName, r)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attachment")
	}
	return reference, nil
}

// OpenAttachment streams back a previously stored attachment by its
// opaque reference.
func (s *PaymentService) OpenAttachment(reference string) (io.ReadCloser, error) {
	file, err := s.store.Open(reference)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attachment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open attachment")
	}
	return file, nil
}

// Receipt renders a PDF voucher for one ledger entry.
func (s *PaymentService) Receipt(ctx context.Context, id int64) ([]byte, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch payment")
	}

	fields := []export.ReceiptField{
		{Label: "Recibo nº", Value: strconv.FormatInt(payment.ID, 10)},
		{Label: "Matrícula", Value: strconv.FormatInt(payment.Matricula, 10)},
		{Label: "Valor", Value: payment.Valor},
		{Label: "Vencimento", Value: payment.Vencimento},
		{Label: "Forma de pagamento", Value: payment.FormaPagamento},
	}

	doc, err := s.pdf.RenderReceipt("Recibo de Pagamento", fields, s.now())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render receipt")
	}
	return doc, nil
}
