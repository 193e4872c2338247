// internal/repository/postgres/emotion_pg.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"emocredit/internal/domain"
	"emocredit/internal/repository"
	"emocredit/internal/util"
)

// EmotionRepository implements repository.EmotionRepository for PostgreSQL.
type EmotionRepository struct {
	// Methods receive a DBExecutor directly; no connection is stored.
}

// NewEmotionRepository creates a new EmotionRepository.
func NewEmotionRepository(db *sqlx.DB) repository.EmotionRepository {
	return &EmotionRepository{}
}

// CreateEmotion inserts a new emotion record using the provided DBExecutor.
// Callers are expected to pre-check user existence; a foreign-key
// violation is still classified as user-not-found for safety.
func (r *EmotionRepository) CreateEmotion(ctx context.Context, q repository.DBExecutor, emotion *domain.Emotion) error {
	query := `INSERT INTO emotions (user_id, emotion_type, intensity, created_at)
              VALUES ($1, $2, $3, $4) RETURNING emotion_id`
	err := q.QueryRowContext(ctx, query,
		emotion.UserID,
		emotion.EmotionType,
		emotion.Intensity,
		emotion.CreatedAt,
	).Scan(&emotion.EmotionID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return util.ErrUserNotFound
		}
		return fmt.Errorf("failed to create emotion: %w", err)
	}
	return nil
}

// ListEmotions retrieves all emotion records using the provided DBExecutor.
func (r *EmotionRepository) ListEmotions(ctx context.Context, q repository.DBExecutor) ([]domain.Emotion, error) {
	emotions := []domain.Emotion{}
	query := `SELECT emotion_id, user_id, emotion_type, intensity, created_at FROM emotions`
	if err := q.SelectContext(ctx, &emotions, query); err != nil {
		return nil, fmt.Errorf("failed to list emotions: %w", err)
	}
	return emotions, nil
}
