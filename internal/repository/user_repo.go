// internal/repository/user_repo.go
package repository

import (
	"context"

	"github.com/google/uuid"

	"emocredit/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser adds a new user to the database using the provided DBExecutor.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by their ID using the provided DBExecutor.
	GetUserByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.User, error)
	// ListUsers retrieves all users using the provided DBExecutor.
	ListUsers(ctx context.Context, q DBExecutor) ([]domain.User, error)
}
