// Package postgres backs the SessionStore with PostgreSQL for multi-replica
// deployments. Rows carry an expiry, so the browser-session-only lifecycle
// holds here the same way it does in memory.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"insightflow/domain/core"
	"insightflow/ports"
)

const sessionsSchema = `
CREATE TABLE IF NOT EXISTS workflow_sessions (
	id            TEXT PRIMARY KEY,
	dataset_id    TEXT NOT NULL DEFAULT '',
	best_model_id TEXT NOT NULL DEFAULT '',
	expires_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// SessionStore implements ports.SessionStore over sqlx.
type SessionStore struct {
	db  *sqlx.DB
	ttl time.Duration
}

var _ ports.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates the store and ensures its table exists.
func NewSessionStore(db *sqlx.DB, ttl time.Duration) (*SessionStore, error) {
	if _, err := db.Exec(sessionsSchema); err != nil {
		return nil, err
	}
	return &SessionStore{db: db, ttl: ttl}, nil
}

type sessionRow struct {
	ID          string    `db:"id"`
	DatasetID   string    `db:"dataset_id"`
	BestModelID string    `db:"best_model_id"`
	ExpiresAt   time.Time `db:"expires_at"`
}

// Get returns the session for an ID; unknown or expired rows read as empty.
// Access slides the expiry.
func (s *SessionStore) Get(ctx context.Context, id core.SessionID) (ports.Session, error) {
	var row sessionRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, dataset_id, best_model_id, expires_at
		FROM workflow_sessions
		WHERE id = $1 AND expires_at > NOW()
	`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return ports.Session{ID: id}, nil
	}
	if err != nil {
		return ports.Session{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE workflow_sessions SET expires_at = $2, updated_at = NOW() WHERE id = $1
	`, id.String(), time.Now().Add(s.ttl))
	if err != nil {
		return ports.Session{}, err
	}

	return ports.Session{
		ID:          id,
		DatasetID:   core.DatasetID(row.DatasetID),
		BestModelID: core.ModelID(row.BestModelID),
	}, nil
}

// SetDataset upserts the dataset established by a successful upload.
func (s *SessionStore) SetDataset(ctx context.Context, id core.SessionID, dataset core.DatasetID) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workflow_sessions (id, dataset_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET dataset_id = EXCLUDED.dataset_id, expires_at = EXCLUDED.expires_at, updated_at = NOW()
	`, id.String(), dataset.String(), time.Now().Add(s.ttl))
	return err
}

// SetBestModel upserts the best model established by a successful training
// run.
func (s *SessionStore) SetBestModel(ctx context.Context, id core.SessionID, model core.ModelID) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workflow_sessions (id, best_model_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET best_model_id = EXCLUDED.best_model_id, expires_at = EXCLUDED.expires_at, updated_at = NOW()
	`, id.String(), model.String(), time.Now().Add(s.ttl))
	return err
}

// Clear deletes the session row. Idempotent.
func (s *SessionStore) Clear(ctx context.Context, id core.SessionID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM workflow_sessions WHERE id = $1`, id.String())
	return err
}
