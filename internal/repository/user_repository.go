package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
)

// UserRepository provides database access for operator accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername returns a user row or sql.ErrNoRows.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `SELECT username, password_hash FROM users WHERE username = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}

// ListUsernames returns every username in insertion order.
func (r *UserRepository) ListUsernames(ctx context.Context) ([]string, error) {
	const query = `SELECT username FROM users ORDER BY username`
	var usernames []string
	if err := r.db.SelectContext(ctx, &usernames, query); err != nil {
		return nil, fmt.Errorf("list usernames: %w", err)
	}
	return usernames, nil
}

// Create inserts a new user row. A duplicate username surfaces as the
// driver's unique-violation error.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const query = `INSERT INTO users (username, password_hash) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UpdatePassword overwrites the stored hash. sql.ErrNoRows is returned when
// the username has no row, so the recovery flow can distinguish a missing
// user from a store failure.
func (r *UserRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2 WHERE username = $1`
	result, err := r.db.ExecContext(ctx, query, username, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
