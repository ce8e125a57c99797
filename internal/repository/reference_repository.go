package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
)

// ReferenceRepository accesses the five independent lookup tables. All SQL
// identifiers come from the kind's ReferenceSpec, never from caller input.
type ReferenceRepository struct {
	db *sqlx.DB
}

// NewReferenceRepository creates a new instance of ReferenceRepository.
func NewReferenceRepository(db *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// ListOptions returns (id, label) pairs in id order.
func (r *ReferenceRepository) ListOptions(ctx context.Context, spec models.ReferenceSpec) ([]models.ReferenceOption, error) {
	query := fmt.Sprintf("SELECT id, %s AS label FROM %s ORDER BY id", spec.LabelColumn, spec.Table)
	var options []models.ReferenceOption
	if err := r.db.SelectContext(ctx, &options, query); err != nil {
		return nil, fmt.Errorf("list %s options: %w", spec.Table, err)
	}
	return options, nil
}

// ListRows returns full rows in id order with every declared column.
func (r *ReferenceRepository) ListRows(ctx context.Context, spec models.ReferenceSpec) ([]models.ReferenceRow, error) {
	query := fmt.Sprintf("SELECT id, %s FROM %s ORDER BY id", strings.Join(spec.Columns, ", "), spec.Table)
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s rows: %w", spec.Table, err)
	}
	defer rows.Close() //nolint:errcheck

	var result []models.ReferenceRow
	for rows.Next() {
		raw := map[string]interface{}{}
		if err := rows.MapScan(raw); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", spec.Table, err)
		}
		row := models.ReferenceRow{Fields: make(map[string]string, len(spec.Columns))}
		if id, ok := raw["id"].(int64); ok {
			row.ID = id
		}
		for _, col := range spec.Columns {
			row.Fields[col] = stringify(raw[col])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", spec.Table, err)
	}
	return result, nil
}

// Insert stores one row and returns its assigned id. Values are bound as
// parameters; fields must already be restricted to spec.Columns.
func (r *ReferenceRepository) Insert(ctx context.Context, spec models.ReferenceSpec, fields map[string]string) (int64, error) {
	placeholders := make([]string, len(spec.Columns))
	args := make([]interface{}, len(spec.Columns))
	for i, col := range spec.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = fields[col]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		spec.Table,
		strings.Join(spec.Columns, ", "),
		strings.Join(placeholders, ", "),
	)

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert into %s: %w", spec.Table, err)
	}
	return id, nil
}

func stringify(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case []byte:
		return string(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
