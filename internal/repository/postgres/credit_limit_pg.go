// internal/repository/postgres/credit_limit_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"emocredit/internal/domain"
	"emocredit/internal/repository"
	"emocredit/internal/util"
)

// CreditLimitRepository implements repository.CreditLimitRepository for PostgreSQL.
type CreditLimitRepository struct {
	// Methods receive a DBExecutor directly; no connection is stored.
}

// NewCreditLimitRepository creates a new CreditLimitRepository.
func NewCreditLimitRepository(db *sqlx.DB) repository.CreditLimitRepository {
	return &CreditLimitRepository{}
}

// UpsertCreditLimit inserts or replaces the credit limit row for a user.
// ON CONFLICT on the user_id unique constraint makes the insert-or-merge
// atomic: two concurrent upserts for the same user resolve to a single
// row, last committer wins.
func (r *CreditLimitRepository) UpsertCreditLimit(ctx context.Context, q repository.DBExecutor, userID uuid.UUID, limit decimal.Decimal) (*domain.CreditLimit, error) {
	var row domain.CreditLimit
	query := `INSERT INTO credit_limits (user_id, credit_limit, updated_at)
              VALUES ($1, $2, $3)
              ON CONFLICT (user_id) DO UPDATE
              SET credit_limit = EXCLUDED.credit_limit, updated_at = EXCLUDED.updated_at
              RETURNING limit_id, user_id, credit_limit, updated_at`
	err := q.QueryRowContext(ctx, query, userID, limit, time.Now().UTC()).
		Scan(&row.LimitID, &row.UserID, &row.CreditLimit, &row.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert credit limit for user %s: %w", userID, err)
	}
	return &row, nil
}

// GetCreditLimitByUserID retrieves the credit limit row for a user,
// most recently updated first.
func (r *CreditLimitRepository) GetCreditLimitByUserID(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) (*domain.CreditLimit, error) {
	var row domain.CreditLimit
	query := `SELECT limit_id, user_id, credit_limit, updated_at
              FROM credit_limits
              WHERE user_id = $1
              ORDER BY updated_at DESC
              LIMIT 1`
	err := q.GetContext(ctx, &row, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get credit limit for user %s: %w", userID, err)
	}
	return &row, nil
}

// ListCreditLimits retrieves all credit limit rows using the provided DBExecutor.
func (r *CreditLimitRepository) ListCreditLimits(ctx context.Context, q repository.DBExecutor) ([]domain.CreditLimit, error) {
	limits := []domain.CreditLimit{}
	query := `SELECT limit_id, user_id, credit_limit, updated_at FROM credit_limits`
	if err := q.SelectContext(ctx, &limits, query); err != nil {
		return nil, fmt.Errorf("failed to list credit limits: %w", err)
	}
	return limits, nil
}
