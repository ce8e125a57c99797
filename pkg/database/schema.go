package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// schemaStatements creates the persisted tables. Column names match the
// legacy sqlite schema so exported data remains portable.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS turmas (
		id BIGSERIAL PRIMARY KEY,
		nome TEXT,
		horario TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS cursos (
		id BIGSERIAL PRIMARY KEY,
		nome TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS materiais (
		id BIGSERIAL PRIMARY KEY,
		nome TEXT,
		valor TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS valores (
		id BIGSERIAL PRIMARY KEY,
		descricao TEXT,
		valor TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS estoque (
		id BIGSERIAL PRIMARY KEY,
		nome TEXT,
		quantidade TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS cadastro (
		matricula BIGSERIAL PRIMARY KEY,
		data_matricula TEXT,
		nome TEXT,
		data_nascimento TEXT,
		idade INTEGER,
		responsavel TEXT,
		cpf TEXT,
		rg TEXT,
		tel_principal TEXT,
		tel_recado TEXT,
		cep TEXT,
		logradouro TEXT,
		numero TEXT,
		complemento TEXT,
		bairro TEXT,
		cidade TEXT,
		email TEXT,
		instagram TEXT,
		turma_id BIGINT,
		curso_id BIGINT,
		material_id BIGINT,
		vencimento TEXT,
		valor_id BIGINT
	)`,
	`CREATE TABLE IF NOT EXISTS financeiro (
		id BIGSERIAL PRIMARY KEY,
		matricula BIGINT,
		valor TEXT,
		vencimento TEXT,
		forma_pagamento TEXT,
		anexo TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS logs (
		id BIGSERIAL PRIMARY KEY,
		username TEXT,
		action TEXT,
		table_name TEXT,
		record_id TEXT,
		timestamp TEXT
	)`,
}

const seedMasterQuery = `INSERT INTO users (username, password_hash) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING`

// MasterUsername is the seeded privileged account.
const MasterUsername = "master"

// defaultMasterPassword is only ever stored hashed; operators are expected to
// rotate it through the recovery flow on first use.
const defaultMasterPassword = "master"

// EnsureSchema creates all tables when missing and seeds the master user.
// Running it repeatedly is safe: tables are created conditionally and the
// seed insert is a no-op once the master row exists.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}

	return SeedMasterUser(ctx, db)
}

// SeedMasterUser inserts the master account if absent.
func SeedMasterUser(ctx context.Context, db *sqlx.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultMasterPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash master password: %w", err)
	}
	if _, err := db.ExecContext(ctx, seedMasterQuery, MasterUsername, string(hash)); err != nil {
		return fmt.Errorf("seed master user: %w", err)
	}
	return nil
}
