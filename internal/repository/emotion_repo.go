// internal/repository/emotion_repo.go
package repository

import (
	"context"

	"emocredit/internal/domain"
)

// EmotionRepository defines the interface for emotion data operations.
// Emotions are append-only: there is no update or direct delete.
type EmotionRepository interface {
	// CreateEmotion adds a new emotion record using the provided DBExecutor.
	CreateEmotion(ctx context.Context, q DBExecutor, emotion *domain.Emotion) error
	// ListEmotions retrieves all emotion records using the provided DBExecutor.
	ListEmotions(ctx context.Context, q DBExecutor) ([]domain.Emotion, error)
}
