// internal/credit/calculator.go
package credit

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"emocredit/internal/domain"
)

// Base limits per emotion category.
const (
	basePositive = 500
	baseNegative = 100
)

// FloatSource supplies uniform random floats in [0, 1).
// *rand.Rand satisfies this interface; tests substitute a fixed source
// for deterministic output.
type FloatSource interface {
	Float64() float64
}

// Calculator derives a monetary credit limit from an emotion entry.
type Calculator struct {
	src FloatSource
}

// NewCalculator creates a Calculator backed by the given random source.
// A nil source falls back to a time-seeded math/rand source.
func NewCalculator(src FloatSource) *Calculator {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Calculator{src: src}
}

// Limit computes the credit limit for an emotion category and intensity.
// The result is base + rand[0,1) * intensity * 10, rounded to cents,
// so it always lies in [base, base+100]. Inputs are pre-validated by
// the caller; there are no error conditions.
func (c *Calculator) Limit(emotionType domain.EmotionType, intensity int) decimal.Decimal {
	base := baseNegative
	if emotionType == domain.EmotionTypePositive {
		base = basePositive
	}

	bonus := c.src.Float64() * float64(intensity) * 10
	return decimal.NewFromFloat(float64(base) + bonus).Round(2)
}
