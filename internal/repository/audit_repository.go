package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
)

// AuditRepository provides append and query access to the logs table. There
// is deliberately no update or delete method.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new instance of AuditRepository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert appends one audit entry.
func (r *AuditRepository) Insert(ctx context.Context, entry *models.AuditEntry) error {
	const query = `INSERT INTO logs (username, action, table_name, record_id, timestamp)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, entry.Username, entry.Action, entry.TableName, entry.RecordID, entry.Timestamp); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List returns entries in insertion order, optionally restricted to an exact
// actor match.
func (r *AuditRepository) List(ctx context.Context, actor string) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	if actor != "" {
		const query = `SELECT id, username, action, table_name, record_id, timestamp FROM logs WHERE username = $1 ORDER BY id`
		if err := r.db.SelectContext(ctx, &entries, query, actor); err != nil {
			return nil, fmt.Errorf("list audit entries by actor: %w", err)
		}
		return entries, nil
	}
	const query = `SELECT id, username, action, table_name, record_id, timestamp FROM logs ORDER BY id`
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	return entries, nil
}
