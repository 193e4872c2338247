// internal/service/emotion_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"emocredit/internal/credit"
	"emocredit/internal/domain"
	"emocredit/internal/repository"
	"emocredit/internal/util"
	"emocredit/pkg/db"
)

// EmotionService defines the interface for emotion and credit limit business logic.
type EmotionService interface {
	CreateUser(ctx context.Context, name string) (*domain.User, error)
	RecordEmotion(ctx context.Context, userID uuid.UUID, emotionType domain.EmotionType, intensity int) (*domain.Emotion, *domain.CreditLimit, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListEmotions(ctx context.Context) ([]domain.Emotion, error)
	ListCreditLimits(ctx context.Context) ([]domain.CreditLimit, error)
	GetCreditLimitByUser(ctx context.Context, userID uuid.UUID) (*domain.CreditLimit, error)
}

// emotionService implements the EmotionService interface.
type emotionService struct {
	dbBeginner      db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor      repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	userRepo        repository.UserRepository
	emotionRepo     repository.EmotionRepository
	creditLimitRepo repository.CreditLimitRepository
	calculator      *credit.Calculator
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewEmotionService creates a new instance of EmotionService.
func NewEmotionService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	emotionRepo repository.EmotionRepository,
	creditLimitRepo repository.CreditLimitRepository,
	calculator *credit.Calculator,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) EmotionService {
	return &emotionService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		userRepo:        userRepo,
		emotionRepo:     emotionRepo,
		creditLimitRepo: creditLimitRepo,
		calculator:      calculator,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// CreateUser registers a new user with a freshly generated identifier.
func (s *emotionService) CreateUser(ctx context.Context, name string) (*domain.User, error) {
	if len(name) < 3 {
		return nil, util.ErrInvalidInput
	}

	user := domain.NewUser(name)
	if err := s.userRepo.CreateUser(ctx, s.dbExecutor, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// RecordEmotion records an emotion entry for a user and recomputes the
// user's credit limit from it. The user lookup, emotion insert and
// credit limit upsert run in a single transaction: either both rows are
// written or neither is, so an emotion can never persist without its
// matching limit update.
func (s *emotionService) RecordEmotion(ctx context.Context, userID uuid.UUID, emotionType domain.EmotionType, intensity int) (*domain.Emotion, *domain.CreditLimit, error) {
	if !emotionType.IsValid() {
		return nil, nil, util.ErrInvalidInput
	}
	if intensity < domain.IntensityMin || intensity > domain.IntensityMax {
		return nil, nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("record emotion: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("record emotion: transaction controller does not implement DBExecutor")
	}

	// Existence check before the insert keeps a dangling-reference
	// attempt from ever reaching the emotions table.
	if _, err := s.userRepo.GetUserByID(ctx, txExecutor, userID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, nil, util.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("record emotion: failed to look up user %s: %w", userID, err)
	}

	emotion := domain.NewEmotion(userID, emotionType, intensity)
	if err := s.emotionRepo.CreateEmotion(ctx, txExecutor, emotion); err != nil {
		return nil, nil, fmt.Errorf("record emotion: failed to create emotion: %w", err)
	}

	newLimit := s.calculator.Limit(emotionType, intensity)
	creditLimit, err := s.creditLimitRepo.UpsertCreditLimit(ctx, txExecutor, userID, newLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("record emotion: failed to upsert credit limit: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("record emotion: failed to commit transaction: %w", err)
	}

	return emotion, creditLimit, nil
}

// ListUsers returns all users.
func (s *emotionService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListEmotions returns all emotion records.
func (s *emotionService) ListEmotions(ctx context.Context) ([]domain.Emotion, error) {
	emotions, err := s.emotionRepo.ListEmotions(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list emotions: %w", err)
	}
	return emotions, nil
}

// ListCreditLimits returns all credit limit rows.
func (s *emotionService) ListCreditLimits(ctx context.Context) ([]domain.CreditLimit, error) {
	limits, err := s.creditLimitRepo.ListCreditLimits(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list credit limits: %w", err)
	}
	return limits, nil
}

// GetCreditLimitByUser returns the credit limit row for a single user.
func (s *emotionService) GetCreditLimitByUser(ctx context.Context, userID uuid.UUID) (*domain.CreditLimit, error) {
	limit, err := s.creditLimitRepo.GetCreditLimitByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrCreditLimitNotFound
		}
		return nil, fmt.Errorf("get credit limit: failed for user %s: %w", userID, err)
	}
	return limit, nil
}
