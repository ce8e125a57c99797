package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
)

// PaymentRepository provides database access for the financeiro table.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Insert appends a payment and returns its assigned id.
func (r *PaymentRepository) Insert(ctx context.Context, p *models.Payment) (int64, error) {
	const query = `INSERT INTO financeiro (matricula, valor, vencimento, forma_pagamento, anexo)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, p.Matricula, p.Valor, p.Vencimento, p.FormaPagamento, p.Anexo); err != nil {
		return 0, fmt.Errorf("insert payment: %w", err)
	}
	return id, nil
}

// FindByID returns one payment or sql.ErrNoRows.
func (r *PaymentRepository) FindByID(ctx context.Context, id int64) (*models.Payment, error) {
	const query = `SELECT id, matricula, valor, vencimento, forma_pagamento, anexo FROM financeiro WHERE id = $1 LIMIT 1`
	var p models.Payment
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find payment by id: %w", err)
	}
	return &p, nil
}

// List returns every payment in insertion order.
func (r *PaymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	const query = `SELECT id, matricula, valor, vencimento, forma_pagamento, anexo FROM financeiro ORDER BY id`
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}
