package ports

import (
	"context"

	"insightflow/domain/core"
)

// Session is the cross-stage shared state: the current dataset and the best
// trained model. Both identifiers are optional; unset reads as a valid,
// displayable "nothing yet" state, never an error.
type Session struct {
	ID          core.SessionID
	DatasetID   core.DatasetID
	BestModelID core.ModelID
}

// HasDataset reports whether an upload has established a dataset.
func (s Session) HasDataset() bool { return !s.DatasetID.IsEmpty() }

// HasModel reports whether a training run has established a best model.
func (s Session) HasModel() bool { return !s.BestModelID.IsEmpty() }

// SessionStore is the single piece of cross-stage mutable state. All
// operations are idempotent; Get on an unknown session returns an empty
// session rather than failing. Writes happen only at defined transition
// points: the dataset ID after a successful upload, the model ID after a
// successful training run.
type SessionStore interface {
	Get(ctx context.Context, id core.SessionID) (Session, error)
	SetDataset(ctx context.Context, id core.SessionID, dataset core.DatasetID) error
	SetBestModel(ctx context.Context, id core.SessionID, model core.ModelID) error
	// Clear resets the session to empty. Used by the explicit
	// "upload a different dataset" reset.
	Clear(ctx context.Context, id core.SessionID) error
}
