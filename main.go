package main

import (
	"log"
	"net/http"

	"insightflow/adapters/backend"
	"insightflow/adapters/postgres"
	"insightflow/adapters/session"
	"insightflow/app"
	"insightflow/internal/config"
	"insightflow/ports"
	"insightflow/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Main] No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Main] Failed to load configuration: %v", err)
	}

	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout).
		WithTrainTimeout(cfg.Backend.TrainTimeout)

	store := newSessionStore(cfg.Session)

	server := ui.NewServer(
		cfg.Server,
		app.NewAnalyzeService(store, client),
		app.NewTrainService(store, client, client),
		app.NewExplainService(store, client, client),
		app.NewPredictService(store, client, client),
		app.NewStoryService(store, client),
	)

	addr := ":" + cfg.Server.Port
	log.Printf("[Main] Starting server on %s (backend %s)", addr, cfg.Backend.BaseURL)
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		log.Fatalf("[Main] Server failed: %v", err)
	}
}

// newSessionStore picks the session backend: Postgres when DATABASE_URL is
// set, process memory otherwise. Both enforce the same sliding TTL.
func newSessionStore(cfg config.SessionConfig) ports.SessionStore {
	if cfg.DatabaseURL == "" {
		log.Printf("[Main] Using in-memory session store (ttl %s)", cfg.TTL)
		return session.NewMemoryStore(cfg.TTL)
	}

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[Main] Failed to connect to session database: %v", err)
	}
	store, err := postgres.NewSessionStore(db, cfg.TTL)
	if err != nil {
		log.Fatalf("[Main] Failed to initialize session schema: %v", err)
	}
	log.Printf("[Main] Using Postgres session store (ttl %s)", cfg.TTL)
	return store
}
