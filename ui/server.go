// Package ui exposes the workflow over HTTP as a JSON API consumed by the
// browser frontend.
package ui

import (
	"net/http"

	"insightflow/app"
	"insightflow/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server bundles the stage services behind one router.
type Server struct {
	analyze *app.AnalyzeService
	train   *app.TrainService
	explain *app.ExplainService
	predict *app.PredictService
	story   *app.StoryService
	cfg     config.ServerConfig
}

// NewServer creates a new API server.
func NewServer(
	cfg config.ServerConfig,
	analyze *app.AnalyzeService,
	train *app.TrainService,
	explain *app.ExplainService,
	predict *app.PredictService,
	story *app.StoryService,
) *Server {
	return &Server{
		analyze: analyze,
		train:   train,
		explain: explain,
		predict: predict,
		story:   story,
		cfg:     cfg,
	}
}

// Router builds the chi router with middleware and all API routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(s.withSession)

		r.Get("/api/analyze", s.handleAnalyzeEnter)
		r.Post("/api/analyze/upload", s.handleUpload)
		r.Post("/api/analyze/scatter", s.handleScatterAxis)

		r.Get("/api/train", s.handleTrainEnter)
		r.Post("/api/train", s.handleTrain)

		r.Get("/api/explain", s.handleExplainEnter)
		r.Post("/api/explain", s.handleExplain)

		r.Get("/api/predict", s.handlePredictEnter)
		r.Post("/api/predict", s.handlePredict)

		r.Post("/api/story", s.handleStory)

		r.Delete("/api/session", s.handleSessionReset)
	})

	return r
}
