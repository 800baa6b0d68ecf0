// Package repository provides credential store implementations backed by
// process memory or a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/GophForms/internal/models"
)

// PostgresCredentialRepository implements credential storage using a PostgreSQL database.
type PostgresCredentialRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCredentialRepository creates a new PostgresCredentialRepository with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance with the credentials table in place.
func NewPostgresCredentialRepository(db *sql.DB) *PostgresCredentialRepository {
	return &PostgresCredentialRepository{DB: db}
}

// FindByEmail fetches the credential stored under email.
// It returns models.ErrNotFound if no row matches.
func (r *PostgresCredentialRepository) FindByEmail(ctx context.Context, email string) (models.Credential, error) {
	var c models.Credential
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT email, password FROM credentials WHERE email = $1`,
		email,
	).Scan(&c.Email, &c.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Credential{}, models.ErrNotFound
	}
	if err != nil {
		return models.Credential{}, fmt.Errorf("find credential: %w", err)
	}
	return c, nil
}

// Insert adds cred as a new row.
// The UNIQUE constraint on email with ON CONFLICT DO NOTHING makes the
// uniqueness check and the insert one statement; a conflict leaves zero
// affected rows and is reported as models.ErrAlreadyExists.
func (r *PostgresCredentialRepository) Insert(ctx context.Context, cred models.Credential) error {
	res, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO credentials (email, password) VALUES ($1, $2) ON CONFLICT (email) DO NOTHING`,
		cred.Email, cred.Password,
	)
	if err != nil {
		return fmt.Errorf("insert credential: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert credential: %w", err)
	}
	if rows == 0 {
		return models.ErrAlreadyExists
	}
	return nil
}

// Seed inserts creds in order inside one transaction, skipping emails that are already present.
func (r *PostgresCredentialRepository) Seed(ctx context.Context, creds []models.Credential) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, c := range creds {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO credentials (email, password) VALUES ($1, $2) ON CONFLICT (email) DO NOTHING`,
			c.Email, c.Password,
		); err != nil {
			return fmt.Errorf("seed %s: %w", c.Email, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
