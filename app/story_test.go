package app

import (
	"context"
	"testing"

	"insightflow/domain/core"
	"insightflow/domain/narrative"
	"insightflow/domain/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoryBlockedWithoutDataset(t *testing.T) {
	store := newTestStore()
	defer store.Close()

	svc := NewStoryService(store, &fakeBackend{})
	snap, err := svc.Generate(context.Background(), core.NewSessionID())
	require.NoError(t, err)
	assert.Equal(t, workflow.PhaseBlocked, snap.Phase)
	assert.Contains(t, snap.BlockReason, "upload a dataset")
}

func TestStoryGenerateFetchesSections(t *testing.T) {
	store := newTestStore()
	defer store.Close()

	sid := core.NewSessionID()
	require.NoError(t, store.SetDataset(context.Background(), sid, "ds-1"))

	backend := &fakeBackend{
		storyFn: func(_ context.Context, dataset core.DatasetID) ([]narrative.Section, error) {
			assert.Equal(t, core.DatasetID("ds-1"), dataset)
			return []narrative.Section{
				{Title: "Overview", Text: "100 rows across 3 columns."},
				{Title: "Missing Data", Text: "income has 2 missing values."},
			}, nil
		},
	}

	svc := NewStoryService(store, backend)
	snap, err := svc.Generate(context.Background(), sid)
	require.NoError(t, err)

	assert.Equal(t, workflow.PhaseReady, snap.Phase)
	require.Len(t, snap.Sections, 2)
	assert.Equal(t, "Overview", snap.Sections[0].Title)
}

func TestStoryEmptyNarrativeIsReady(t *testing.T) {
	store := newTestStore()
	defer store.Close()

	sid := core.NewSessionID()
	require.NoError(t, store.SetDataset(context.Background(), sid, "ds-1"))

	backend := &fakeBackend{
		storyFn: func(context.Context, core.DatasetID) ([]narrative.Section, error) {
			return []narrative.Section{}, nil
		},
	}

	svc := NewStoryService(store, backend)
	snap, err := svc.Generate(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, workflow.PhaseReady, snap.Phase)
	assert.Empty(t, snap.Sections)
}

func TestStoryFailureIsRetryable(t *testing.T) {
	store := newTestStore()
	defer store.Close()

	sid := core.NewSessionID()
	require.NoError(t, store.SetDataset(context.Background(), sid, "ds-1"))

	calls := 0
	backend := &fakeBackend{
		storyFn: func(context.Context, core.DatasetID) ([]narrative.Section, error) {
			calls++
			if calls == 1 {
				return nil, core.ErrBackendUnreachable
			}
			return []narrative.Section{{Title: "Overview", Text: "ok"}}, nil
		},
	}

	svc := NewStoryService(store, backend)

	snap, err := svc.Generate(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, workflow.PhaseFailed, snap.Phase)
	assert.ErrorIs(t, snap.Err, core.ErrBackendUnreachable)

	snap, err = svc.Generate(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, workflow.PhaseReady, snap.Phase)
	assert.Len(t, snap.Sections, 1)
}
