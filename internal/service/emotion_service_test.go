// internal/service/emotion_service_test.go
package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"emocredit/internal/credit"
	"emocredit/internal/domain"
	"emocredit/internal/repository"
	"emocredit/internal/util"
	"emocredit/pkg/db"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockTxController is a mock transaction controller that also satisfies
// repository.DBExecutor, mirroring how *sqlx.Tx is used by the service.
type MockTxController struct {
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, q repository.DBExecutor) ([]domain.User, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockEmotionRepository is a mock implementation of repository.EmotionRepository.
type MockEmotionRepository struct {
	mock.Mock
}

func (m *MockEmotionRepository) CreateEmotion(ctx context.Context, q repository.DBExecutor, emotion *domain.Emotion) error {
	args := m.Called(ctx, q, emotion)
	return args.Error(0)
}

func (m *MockEmotionRepository) ListEmotions(ctx context.Context, q repository.DBExecutor) ([]domain.Emotion, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Emotion), args.Error(1)
}

// MockCreditLimitRepository is a mock implementation of repository.CreditLimitRepository.
type MockCreditLimitRepository struct {
	mock.Mock
}

func (m *MockCreditLimitRepository) UpsertCreditLimit(ctx context.Context, q repository.DBExecutor, userID uuid.UUID, limit decimal.Decimal) (*domain.CreditLimit, error) {
	args := m.Called(ctx, q, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditLimit), args.Error(1)
}

func (m *MockCreditLimitRepository) GetCreditLimitByUserID(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) (*domain.CreditLimit, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditLimit), args.Error(1)
}

func (m *MockCreditLimitRepository) ListCreditLimits(ctx context.Context, q repository.DBExecutor) ([]domain.CreditLimit, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditLimit), args.Error(1)
}

// fixedSource is a deterministic random source for the calculator.
type fixedSource struct {
	v float64
}

func (s fixedSource) Float64() float64 { return s.v }

// testHarness bundles the service under test with its mocks and
// transaction bookkeeping flags.
type testHarness struct {
	svc             EmotionService
	userRepo        *MockUserRepository
	emotionRepo     *MockEmotionRepository
	creditLimitRepo *MockCreditLimitRepository
	tx              *MockTxController
	txBegun         *bool
	committed       *bool
	rolledBack      *bool
}

func newTestHarness(random float64) *testHarness {
	userRepo := new(MockUserRepository)
	emotionRepo := new(MockEmotionRepository)
	creditLimitRepo := new(MockCreditLimitRepository)
	tx := new(MockTxController)

	txBegun := false
	committed := false
	rolledBack := false

	beginTx := func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
		txBegun = true
		return tx, nil
	}
	commitTx := func(c db.TxController) error {
		committed = true
		return nil
	}
	rollbackTx := func(c db.TxController) {
		rolledBack = true
	}

	svc := NewEmotionService(
		nil, // dbBeginner is never reached; beginTx is stubbed
		new(MockDBExecutor),
		userRepo,
		emotionRepo,
		creditLimitRepo,
		credit.NewCalculator(fixedSource{v: random}),
		beginTx,
		commitTx,
		rollbackTx,
	)

	return &testHarness{
		svc:             svc,
		userRepo:        userRepo,
		emotionRepo:     emotionRepo,
		creditLimitRepo: creditLimitRepo,
		tx:              tx,
		txBegun:         &txBegun,
		committed:       &committed,
		rolledBack:      &rolledBack,
	}
}

func TestRecordEmotionSuccess(t *testing.T) {
	h := newTestHarness(0.5)
	userID := uuid.New()
	user := &domain.User{UserID: userID, Name: "Alice Smith"}

	// 0.5 * 5 * 10 on a positive base of 500 gives exactly 525.00.
	expectedLimit := decimal.NewFromInt(525)
	storedLimit := &domain.CreditLimit{LimitID: 1, UserID: userID, CreditLimit: expectedLimit}

	h.userRepo.On("GetUserByID", mock.Anything, h.tx, userID).Return(user, nil).Once()
	h.emotionRepo.On("CreateEmotion", mock.Anything, h.tx, mock.MatchedBy(func(e *domain.Emotion) bool {
		return e.UserID == userID && e.EmotionType == domain.EmotionTypePositive && e.Intensity == 5
	})).Return(nil).Once()
	h.creditLimitRepo.On("UpsertCreditLimit", mock.Anything, h.tx, userID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(expectedLimit)
	})).Return(storedLimit, nil).Once()

	emotion, limit, err := h.svc.RecordEmotion(context.Background(), userID, domain.EmotionTypePositive, 5)

	assert.NoError(t, err)
	assert.NotNil(t, emotion)
	assert.True(t, expectedLimit.Equal(limit.CreditLimit))
	assert.True(t, *h.txBegun, "transaction should have been started")
	assert.True(t, *h.committed, "transaction should have been committed")
	h.userRepo.AssertExpectations(t)
	h.emotionRepo.AssertExpectations(t)
	h.creditLimitRepo.AssertExpectations(t)
}

func TestRecordEmotionUserNotFound(t *testing.T) {
	h := newTestHarness(0.5)
	userID := uuid.New()

	h.userRepo.On("GetUserByID", mock.Anything, h.tx, userID).Return(nil, util.ErrNotFound).Once()

	_, _, err := h.svc.RecordEmotion(context.Background(), userID, domain.EmotionTypePositive, 5)

	assert.ErrorIs(t, err, util.ErrUserNotFound)
	assert.False(t, *h.committed, "transaction must not be committed")
	assert.True(t, *h.rolledBack, "transaction should have been rolled back")
	h.emotionRepo.AssertNotCalled(t, "CreateEmotion", mock.Anything, mock.Anything, mock.Anything)
	h.creditLimitRepo.AssertNotCalled(t, "UpsertCreditLimit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordEmotionInvalidInput(t *testing.T) {
	h := newTestHarness(0.5)
	userID := uuid.New()

	tests := []struct {
		name        string
		emotionType domain.EmotionType
		intensity   int
	}{
		{"unknown category", "neutral", 5},
		{"intensity below range", domain.EmotionTypePositive, 0},
		{"intensity above range", domain.EmotionTypeNegative, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := h.svc.RecordEmotion(context.Background(), userID, tt.emotionType, tt.intensity)
			assert.ErrorIs(t, err, util.ErrInvalidInput)
		})
	}

	assert.False(t, *h.txBegun, "validation failures must not open a transaction")
}

func TestRecordEmotionInsertFailureSkipsUpsert(t *testing.T) {
	h := newTestHarness(0.5)
	userID := uuid.New()
	user := &domain.User{UserID: userID, Name: "Bob Jones"}

	h.userRepo.On("GetUserByID", mock.Anything, h.tx, userID).Return(user, nil).Once()
	h.emotionRepo.On("CreateEmotion", mock.Anything, h.tx, mock.Anything).
		Return(errors.New("connection reset")).Once()

	_, _, err := h.svc.RecordEmotion(context.Background(), userID, domain.EmotionTypeNegative, 3)

	assert.Error(t, err)
	assert.False(t, *h.committed, "failed insert must not be committed")
	assert.True(t, *h.rolledBack, "transaction should have been rolled back")
	h.creditLimitRepo.AssertNotCalled(t, "UpsertCreditLimit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordEmotionUpsertFailureRollsBack(t *testing.T) {
	h := newTestHarness(0.5)
	userID := uuid.New()
	user := &domain.User{UserID: userID, Name: "Bob Jones"}

	h.userRepo.On("GetUserByID", mock.Anything, h.tx, userID).Return(user, nil).Once()
	h.emotionRepo.On("CreateEmotion", mock.Anything, h.tx, mock.Anything).Return(nil).Once()
	h.creditLimitRepo.On("UpsertCreditLimit", mock.Anything, h.tx, userID, mock.Anything).
		Return(nil, errors.New("connection reset")).Once()

	_, _, err := h.svc.RecordEmotion(context.Background(), userID, domain.EmotionTypeNegative, 3)

	assert.Error(t, err)
	assert.False(t, *h.committed, "failed upsert must not be committed")
	assert.True(t, *h.rolledBack, "transaction should have been rolled back")
}

func TestCreateUserSuccess(t *testing.T) {
	h := newTestHarness(0.5)

	h.userRepo.On("CreateUser", mock.Anything, mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "Alice Smith" && u.UserID != uuid.Nil
	})).Return(nil).Once()

	user, err := h.svc.CreateUser(context.Background(), "Alice Smith")

	assert.NoError(t, err)
	assert.Equal(t, "Alice Smith", user.Name)
	assert.NotEqual(t, uuid.Nil, user.UserID)
	h.userRepo.AssertExpectations(t)
}

func TestCreateUserNameTooShort(t *testing.T) {
	h := newTestHarness(0.5)

	_, err := h.svc.CreateUser(context.Background(), "Al")

	assert.ErrorIs(t, err, util.ErrInvalidInput)
	h.userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCreditLimitByUserNotFound(t *testing.T) {
	h := newTestHarness(0.5)
	userID := uuid.New()

	h.creditLimitRepo.On("GetCreditLimitByUserID", mock.Anything, mock.Anything, userID).
		Return(nil, util.ErrNotFound).Once()

	_, err := h.svc.GetCreditLimitByUser(context.Background(), userID)

	assert.ErrorIs(t, err, util.ErrCreditLimitNotFound)
}

func TestGetCreditLimitByUserSuccess(t *testing.T) {
	h := newTestHarness(0.5)
	userID := uuid.New()
	stored := &domain.CreditLimit{LimitID: 7, UserID: userID, CreditLimit: decimal.RequireFromString("512.30")}

	h.creditLimitRepo.On("GetCreditLimitByUserID", mock.Anything, mock.Anything, userID).
		Return(stored, nil).Once()

	limit, err := h.svc.GetCreditLimitByUser(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, stored, limit)
}

func TestListEmotionsPassesThrough(t *testing.T) {
	h := newTestHarness(0.5)
	rows := []domain.Emotion{
		{EmotionID: 1, UserID: uuid.New(), EmotionType: domain.EmotionTypePositive, Intensity: 2},
		{EmotionID: 2, UserID: uuid.New(), EmotionType: domain.EmotionTypeNegative, Intensity: 9},
	}

	h.emotionRepo.On("ListEmotions", mock.Anything, mock.Anything).Return(rows, nil).Once()

	got, err := h.svc.ListEmotions(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, rows, got)
}
