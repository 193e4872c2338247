// internal/api/handler/emotion.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"emocredit/internal/domain"
	"emocredit/internal/service"
	"emocredit/internal/util"
)

// DefaultTimeout bounds request handling time at the router level.
const DefaultTimeout = 60 * time.Second

// EmotionHandler handles HTTP requests for users, emotions and credit limits.
type EmotionHandler struct {
	service service.EmotionService
	logger  *slog.Logger
}

// NewEmotionHandler creates a new EmotionHandler.
func NewEmotionHandler(svc service.EmotionService, logger *slog.Logger) *EmotionHandler {
	return &EmotionHandler{
		service: svc,
		logger:  logger,
	}
}

// Helper function to send JSON responses.
func (h *EmotionHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *EmotionHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Database error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "User not found"
	case util.IsError(err, util.ErrCreditLimitNotFound):
		statusCode = http.StatusNotFound
		message = "Credit limit not found"
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// CreateUserRequest represents the request body for user creation.
type CreateUserRequest struct {
	Name string `json:"name"`
}

// CreateUser handles the user creation request.
// POST /users
func (h *EmotionHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	if len(req.Name) < 3 {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Name)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user_id": user.UserID,
	})
}

// CreateEmotionRequest represents the request body for recording an emotion.
type CreateEmotionRequest struct {
	UserID      string `json:"user_id"`
	EmotionType string `json:"emotion_type"`
	Intensity   int    `json:"intensity"`
}

// CreateEmotion handles the emotion recording request. On success the
// user's credit limit has been recomputed from the new entry.
// POST /emotions
func (h *EmotionHandler) CreateEmotion(w http.ResponseWriter, r *http.Request) {
	var req CreateEmotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	emotionType := domain.EmotionType(req.EmotionType)
	if !emotionType.IsValid() {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	if req.Intensity < domain.IntensityMin || req.Intensity > domain.IntensityMax {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	_, creditLimit, err := h.service.RecordEmotion(r.Context(), userID, emotionType, req.Intensity)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":      "Emotion added and credit limit updated successfully",
		"credit_limit": creditLimit.CreditLimit.StringFixed(2),
	})
}

// ListEmotions handles the full emotion listing request.
// GET /emotions
func (h *EmotionHandler) ListEmotions(w http.ResponseWriter, r *http.Request) {
	emotions, err := h.service.ListEmotions(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, emotions)
}

// ListCreditLimits handles the full credit limit listing request.
// GET /credit-limits
func (h *EmotionHandler) ListCreditLimits(w http.ResponseWriter, r *http.Request) {
	limits, err := h.service.ListCreditLimits(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, limits)
}

// GetCreditLimitByUser handles the per-user credit limit request.
// GET /credit-limit/{userID}
func (h *EmotionHandler) GetCreditLimitByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	limit, err := h.service.GetCreditLimitByUser(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, limit)
}

// ListUsers handles the full user listing request.
// GET /users
func (h *EmotionHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, users)
}
