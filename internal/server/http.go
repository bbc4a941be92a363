package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/triviahub/trivia-api/internal/config"
	"github.com/triviahub/trivia-api/internal/trivia"
)

// NewHTTPServer wires the trivia routes plus the base routes (health,
// metrics) and wraps everything in the CORS, logging and metrics
// middleware.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, redisClient *redis.Client, handlers *trivia.HTTPHandler) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), pool, redisClient); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /categories", handlers.HandleListCategories)
	mux.HandleFunc("GET /categories/{id}/questions", handlers.HandleCategoryQuestions)
	mux.HandleFunc("GET /questions", handlers.HandleListQuestions)
	mux.HandleFunc("POST /questions", handlers.HandleQuestionsPost)
	mux.HandleFunc("DELETE /questions/{id}", handlers.HandleDeleteQuestion)
	mux.HandleFunc("POST /quizzes", handlers.HandleQuiz)

	var handler http.Handler = mux
	handler = instrumentHTTP(handler)
	handler = requestLogging(handler, logger)
	handler = corsMiddleware(handler, cfg.CORS)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redisClient *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return redisClient.Ping(ctx).Err()
}
