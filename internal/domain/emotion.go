// internal/domain/emotion.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmotionType classifies an emotion entry.
type EmotionType string

const (
	EmotionTypePositive EmotionType = "positive"
	EmotionTypeNegative EmotionType = "negative"
)

// IsValid reports whether the emotion type is one of the two allowed values.
func (t EmotionType) IsValid() bool {
	return t == EmotionTypePositive || t == EmotionTypeNegative
}

// Intensity bounds for an emotion entry, inclusive.
const (
	IntensityMin = 1
	IntensityMax = 10
)

// Emotion represents a single recorded emotion entry.
// Emotions are immutable once created; they are removed only by the
// ON DELETE CASCADE on the owning user.
type Emotion struct {
	EmotionID   int64       `db:"emotion_id" json:"emotion_id"` // Primary key, BIGSERIAL in DB
	UserID      uuid.UUID   `db:"user_id" json:"user_id"`       // Owning user
	EmotionType EmotionType `db:"emotion_type" json:"emotion_type"`
	Intensity   int         `db:"intensity" json:"intensity"`   // Integer in [IntensityMin, IntensityMax]
	CreatedAt   time.Time   `db:"created_at" json:"created_at"` // Timestamp of record creation
}

// NewEmotion creates a new Emotion instance.
func NewEmotion(userID uuid.UUID, emotionType EmotionType, intensity int) *Emotion {
	return &Emotion{
		UserID:      userID,
		EmotionType: emotionType,
		Intensity:   intensity,
		CreatedAt:   time.Now().UTC(),
	}
}
