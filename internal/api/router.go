// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"emocredit/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(emotionHandler *handler.EmotionHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Post("/users", emotionHandler.CreateUser)
	r.Get("/users", emotionHandler.ListUsers)

	r.Post("/emotions", emotionHandler.CreateEmotion)
	r.Get("/emotions", emotionHandler.ListEmotions)

	r.Get("/credit-limits", emotionHandler.ListCreditLimits)
	r.Get("/credit-limit/{userID}", emotionHandler.GetCreditLimitByUser)

	return r
}
