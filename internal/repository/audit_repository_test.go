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

func newAuditMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAuditRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newAuditMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO logs").
		WithArgs("master", models.AuditActionAdd, "turmas", "1", "2026-08-30T10:00:00Z").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), &models.AuditEntry{
		Username:  "master",
		Action:    models.AuditActionAdd,
		TableName: "turmas",
		RecordID:  "1",
		Timestamp: "2026-08-30T10:00:00Z",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryListFiltered(t *testing.T) {
	db, mock, cleanup := newAuditMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "action", "table_name", "record_id", "timestamp"}).
		AddRow(int64(1), "master", "add", "turmas", "1", "2026-08-30T10:00:00Z")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, action, table_name, record_id, timestamp FROM logs WHERE username = $1 ORDER BY id")).
		WithArgs("master").
		WillReturnRows(rows)

	entries, err := repo.List(context.Background(), "master")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "master", entries[0].Username)
}

func TestAuditRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newAuditMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "action", "table_name", "record_id", "timestamp"}).
		AddRow(int64(1), "master", "add", "turmas", "1", "2026-08-30T10:00:00Z").
		AddRow(int64(2), "ana", "add", "financeiro", "3", "2026-08-30T11:00:00Z")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, action, table_name, record_id, timestamp FROM logs ORDER BY id")).
		WillReturnRows(rows)

	entries, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
