// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user of the emotion credit service.
type User struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`       // Primary key, generated at creation, immutable
	Name      string    `db:"name" json:"name"`             // Display name, minimum length 3
	CreatedAt time.Time `db:"created_at" json:"created_at"` // Timestamp of creation
}

// NewUser creates a new User instance with a freshly generated identifier.
func NewUser(name string) *User {
	return &User{
		UserID:    uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}
