package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
)

// EnrollmentRepository provides database access for the cadastro table.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository creates a new instance of EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

const enrollmentColumns = `matricula, data_matricula, nome, data_nascimento, idade, responsavel, cpf, rg,
	tel_principal, tel_recado, cep, logradouro, numero, complemento, bairro, cidade,
	email, instagram, turma_id, curso_id, material_id, vencimento, valor_id`

// Insert stores a new enrollment and returns the assigned matricula.
func (r *EnrollmentRepository) Insert(ctx context.Context, e *models.Enrollment) (int64, error) {
	const query = `INSERT INTO cadastro (
		data_matricula, nome, data_nascimento, idade, responsavel, cpf, rg,
		tel_principal, tel_recado, cep, logradouro, numero, complemento, bairro, cidade,
		email, instagram, turma_id, curso_id, material_id, vencimento, valor_id
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	RETURNING matricula`

	var matricula int64
	err := r.db.GetContext(ctx, &matricula, query,
		e.DataMatricula, e.Nome, e.DataNascimento, e.Idade, e.Responsavel, e.CPF, e.RG,
		e.TelPrincipal, e.TelRecado, e.CEP, e.Logradouro, e.Numero, e.Complemento, e.Bairro, e.Cidade,
		e.Email, e.Instagram, e.TurmaID, e.CursoID, e.MaterialID, e.Vencimento, e.ValorID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert enrollment: %w", err)
	}
	return matricula, nil
}

// FindByID returns the full enrollment row or sql.ErrNoRows.
func (r *EnrollmentRepository) FindByID(ctx context.Context, matricula int64) (*models.Enrollment, error) {
	query := fmt.Sprintf(`SELECT %s FROM cadastro WHERE matricula = $1 LIMIT 1`, enrollmentColumns)
	var e models.Enrollment
	if err := r.db.GetContext(ctx, &e, query, matricula); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find enrollment by matricula: %w", err)
	}
	return &e, nil
}

// ListSummaries joins class and course names; a null or dangling reference
// yields an empty name rather than dropping the row.
func (r *EnrollmentRepository) ListSummaries(ctx context.Context) ([]models.EnrollmentSummary, error) {
	const query = `SELECT c.matricula, c.nome, COALESCE(t.nome, '') AS turma, COALESCE(s.nome, '') AS curso
		FROM cadastro c
		LEFT JOIN turmas t ON c.turma_id = t.id
		LEFT JOIN cursos s ON c.curso_id = s.id
		ORDER BY c.matricula`
	var summaries []models.EnrollmentSummary
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("list enrollment summaries: %w", err)
	}
	return summaries, nil
}

// Update applies a partial field set. Columns are sorted so the generated
// statement is deterministic; callers must pre-validate them against the
// editable whitelist. Returns sql.ErrNoRows when the matricula has no row.
func (r *EnrollmentRepository) Update(ctx context.Context, matricula int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	columns := make([]string, 0, len(fields))
	for col := range fields {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	assignments := make([]string, len(columns))
	args := make([]interface{}, 0, len(columns)+1)
	for i, col := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
		args = append(args, fields[col])
	}
	args = append(args, matricula)

	query := fmt.Sprintf("UPDATE cadastro SET %s WHERE matricula = $%d", strings.Join(assignments, ", "), len(columns)+1)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update enrollment rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
