// internal/repository/credit_limit_repo.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"emocredit/internal/domain"
)

// CreditLimitRepository defines the interface for credit limit data operations.
type CreditLimitRepository interface {
	// UpsertCreditLimit inserts the credit limit row for a user, or, when a
	// row already exists (unique constraint on user_id), overwrites its
	// value and updated timestamp in place. Atomic with respect to the
	// unique constraint: concurrent upserts never produce two rows.
	UpsertCreditLimit(ctx context.Context, q DBExecutor, userID uuid.UUID, limit decimal.Decimal) (*domain.CreditLimit, error)
	// GetCreditLimitByUserID retrieves the most recently updated credit
	// limit row for a user using the provided DBExecutor.
	GetCreditLimitByUserID(ctx context.Context, q DBExecutor, userID uuid.UUID) (*domain.CreditLimit, error)
	// ListCreditLimits retrieves all credit limit rows using the provided DBExecutor.
	ListCreditLimits(ctx context.Context, q DBExecutor) ([]domain.CreditLimit, error)
}
