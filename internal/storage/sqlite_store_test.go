package storage_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/sgrier/stacker/internal/models"
	"github.com/sgrier/stacker/internal/storage"
)

func newSQLiteStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stacker.db")
	store := storage.NewSQLiteStore(path)
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_LoadWithoutInitFails(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	assert.Error(store.Load())
}

func TestSQLiteStore_EmptyAfterInit(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	store := newSQLiteStore(t)
	snap, err := store.ReadSnapshot()
	require.NoError(err)
	assert.Empty(snap.Routines)
	assert.Empty(snap.Library)
	assert.Empty(snap.Ledger)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	store := newSQLiteStore(t)

	want := testSnapshot()
	require.NoError(store.WriteSnapshot(want))
	require.NoError(store.Close())

	// Reopen from disk to prove the state survived serialization.
	reopened := storage.NewSQLiteStore(store.Path())
	require.NoError(reopened.Load())
	defer reopened.Close()

	got, err := reopened.ReadSnapshot()
	require.NoError(err)

	require.Len(got.Routines, 2)
	require.Len(got.Library, 1)

	r1 := got.Routines[0]
	assert.Equal("r1", r1.ID)
	assert.Equal("Morning", r1.Title)
	assert.Equal([]string{"Monday", "Wednesday"}, r1.Days)
	require.Len(r1.Stacks, 2)

	s1 := r1.Stacks[0]
	assert.Equal("s1", s1.ID)
	assert.Equal(models.ScheduleDaily, s1.ScheduleType)
	assert.Equal(3, s1.Streak)
	assert.True(s1.Schedulable)
	require.Len(s1.Actions, 2)
	assert.Equal("drink water", s1.Actions[0].Text)
	assert.True(s1.Actions[0].Completed)
	assert.Equal(3, s1.Actions[0].Streak)

	s2 := r1.Stacks[1]
	assert.Equal(models.ScheduleBiweekly, s2.ScheduleType)
	assert.Equal([]string{"Monday"}, s2.ScheduleDays)
	assert.Equal(2, s2.Interval)
	assert.Equal("2025-01-06", s2.StartDate)

	assert.Equal("r2", got.Routines[1].ID)
	assert.Equal(9, got.Routines[1].Streak)
	assert.Empty(got.Routines[1].Stacks)

	lib := got.Library[0]
	assert.Equal("lib1", lib.ID)
	assert.False(lib.Schedulable)

	assert.Equal(want.Ledger, got.Ledger)
}

func TestSQLiteStore_WritePreservesOrder(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	store := newSQLiteStore(t)

	snap := models.Snapshot{
		Routines: []models.Routine{{ID: "z"}, {ID: "a"}, {ID: "m"}},
	}
	snap.Normalize()
	require.NoError(store.WriteSnapshot(snap))

	got, err := store.ReadSnapshot()
	require.NoError(err)
	var ids []string
	for _, r := range got.Routines {
		ids = append(ids, r.ID)
	}
	assert.Equal([]string{"z", "a", "m"}, ids)
}

func TestSQLiteStore_RewriteReplacesState(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	store := newSQLiteStore(t)

	require.NoError(store.WriteSnapshot(testSnapshot()))

	smaller := models.Snapshot{
		Routines: []models.Routine{{ID: "only"}},
	}
	smaller.Normalize()
	require.NoError(store.WriteSnapshot(smaller))

	got, err := store.ReadSnapshot()
	require.NoError(err)
	require.Len(got.Routines, 1)
	assert.Equal("only", got.Routines[0].ID)
	assert.Empty(got.Library)
	assert.Empty(got.Ledger)
}

func TestSQLiteStore_CorruptActionsCoerceToEmpty(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	store := newSQLiteStore(t)

	snap := models.Snapshot{
		Routines: []models.Routine{{ID: "r1", Stacks: []models.Stack{
			{ID: "s1", Title: "ok", Schedulable: true, Actions: models.Actions{{ID: "a1", Text: "x"}}},
		}}},
	}
	snap.Normalize()
	require.NoError(store.WriteSnapshot(snap))

	// Sabotage the stored payload directly.
	raw, err := sql.Open("sqlite", store.Path())
	require.NoError(err)
	_, err = raw.Exec("UPDATE stacks SET actions = 'not json' WHERE id = 's1'")
	require.NoError(err)
	require.NoError(raw.Close())

	got, err := store.ReadSnapshot()
	require.NoError(err)
	require.Len(got.Routines, 1)
	require.Len(got.Routines[0].Stacks, 1)
	assert.Empty(got.Routines[0].Stacks[0].Actions)
}
