// Package messages implements the PostgreSQL store for secret message
// records.
package messages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/agency/cryptoservice/internal/common"
	"github.com/agency/cryptoservice/internal/dbx"
	"github.com/agency/cryptoservice/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Message) error {

	query :=
		`INSERT INTO secret_messages (id, ciphertext, nonce, password_hash, try_count, created_at)
         VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Ciphertext, m.Nonce, m.PasswordHash, m.TryCount, m.CreatedAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// GetForUpdate loads a record and locks its row until the surrounding
// transaction commits.
func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*models.Message, error) {
	query :=
		`SELECT id, ciphertext, nonce, password_hash, try_count, created_at FROM secret_messages
		 WHERE id = $1
		 FOR UPDATE
		 `

	m := &models.Message{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Ciphertext, &m.Nonce, &m.PasswordHash, &m.TryCount, &m.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) UpdateTryCount(ctx context.Context, id string, tryCount int) error {
	query :=
		`UPDATE secret_messages SET try_count = $2
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, tryCount)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM secret_messages
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// DeleteCreatedBefore removes every record older than cutoff in one
// statement and reports how many rows were deleted.
func (r *PostgresRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query :=
		`DELETE FROM secret_messages
		 WHERE created_at < $1
		 `

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return affected, nil
}
