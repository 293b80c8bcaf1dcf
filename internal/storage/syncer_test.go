package storage_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgrier/stacker/internal/models"
	"github.com/sgrier/stacker/internal/storage"
)

func TestSyncer_WritesAfterQuietPeriod(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	store := newJSONStore(t)
	require.NoError(store.Load())

	syncer := storage.NewSyncer(store, 10*time.Millisecond, zerolog.Nop())
	syncer.Queue(testSnapshot())

	require.Eventually(func() bool {
		snap, err := store.ReadSnapshot()
		return err == nil && len(snap.Routines) == 2
	}, time.Second, 5*time.Millisecond)

	snap, err := store.ReadSnapshot()
	require.NoError(err)
	assert.Equal(testSnapshot(), snap)
}

func TestSyncer_CoalescesRapidQueues(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	store := newJSONStore(t)
	require.NoError(store.Load())

	syncer := storage.NewSyncer(store, time.Hour, zerolog.Nop())

	first := testSnapshot()
	syncer.Queue(first)

	second := testSnapshot()
	second.Routines = second.Routines[:1]
	syncer.Queue(second)

	// Nothing written yet; the timer is still pending.
	snap, err := store.ReadSnapshot()
	require.NoError(err)
	assert.Empty(snap.Routines)

	// Close flushes the latest snapshot only.
	require.NoError(syncer.Close())
	snap, err = store.ReadSnapshot()
	require.NoError(err)
	assert.Len(snap.Routines, 1)
}

func TestSyncer_CloseWithNothingPending(t *testing.T) {
	t.Parallel()

	store := newJSONStore(t)
	require.NoError(t, store.Load())

	syncer := storage.NewSyncer(store, time.Hour, zerolog.Nop())
	assert.NoError(t, syncer.Close())
}

func TestSyncer_FlushIsIdempotent(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	store := newJSONStore(t)
	require.NoError(store.Load())

	syncer := storage.NewSyncer(store, time.Hour, zerolog.Nop())
	syncer.Queue(testSnapshot())

	require.NoError(syncer.Flush())
	require.NoError(syncer.Flush())

	snap, err := store.ReadSnapshot()
	require.NoError(err)
	require.Len(snap.Routines, 2)
}

// queue after flush schedules a fresh write.
func TestSyncer_QueueAfterFlush(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	store := newJSONStore(t)
	require.NoError(store.Load())

	syncer := storage.NewSyncer(store, time.Hour, zerolog.Nop())
	syncer.Queue(models.Snapshot{Routines: []models.Routine{{ID: "one"}}})
	require.NoError(syncer.Flush())

	syncer.Queue(models.Snapshot{Routines: []models.Routine{{ID: "two"}}})
	require.NoError(syncer.Close())

	snap, err := store.ReadSnapshot()
	require.NoError(err)
	require.Len(snap.Routines, 1)
	require.Equal("two", snap.Routines[0].ID)
}
