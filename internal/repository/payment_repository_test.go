package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
)

func newPaymentMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestPaymentRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newPaymentMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO financeiro (matricula, valor, vencimento, forma_pagamento, anexo)")).
		WithArgs(int64(7), "350,00", "10/09/2026", "pix", "anexos/recibo.pdf").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))

	id, err := repo.Insert(context.Background(), &models.Payment{
		Matricula:      7,
		Valor:          "350,00",
		Vencimento:     "10/09/2026",
		FormaPagamento: "pix",
		Anexo:          "anexos/recibo.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryList(t *testing.T) {
	db, mock, cleanup := newPaymentMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "matricula", "valor", "vencimento", "forma_pagamento", "anexo"}).
		AddRow(int64(1), int64(7), "350,00", "10/09/2026", "pix", "").
		AddRow(int64(2), int64(8), "abc", "", "dinheiro", "")
	mock.ExpectQuery("SELECT id, matricula, valor, vencimento, forma_pagamento, anexo FROM financeiro ORDER BY id").
		WillReturnRows(rows)

	payments, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, payments, 2)
	// stored as supplied, even when not a number
	assert.Equal(t, "abc", payments[1].Valor)
}
