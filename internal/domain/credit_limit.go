// internal/domain/credit_limit.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// CreditLimit represents the monetary ceiling derived from a user's
// most recent emotion entry. At most one row exists per user (unique
// constraint on user_id); every new emotion replaces the value in place.
type CreditLimit struct {
	LimitID     int64           `db:"limit_id" json:"limit_id"`         // Primary key, BIGSERIAL in DB
	UserID      uuid.UUID       `db:"user_id" json:"user_id"`           // Owning user, unique
	CreditLimit decimal.Decimal `db:"credit_limit" json:"credit_limit"` // Monetary limit, NUMERIC(10, 2) in DB
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`     // Timestamp of last recomputation
}

// NewCreditLimit creates a new CreditLimit instance.
func NewCreditLimit(userID uuid.UUID, limit decimal.Decimal) *CreditLimit {
	return &CreditLimit{
		UserID:      userID,
		CreditLimit: limit,
		UpdatedAt:   time.Now().UTC(),
	}
}
