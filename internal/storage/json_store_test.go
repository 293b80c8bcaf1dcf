package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgrier/stacker/internal/models"
	"github.com/sgrier/stacker/internal/storage"
)

// testSnapshot builds a snapshot exercising routines, library stacks, and
// ledger entries.
func testSnapshot() models.Snapshot {
	snap := models.Snapshot{
		Routines: []models.Routine{
			{
				ID:    "r1",
				Title: "Morning",
				Days:  []string{"Monday", "Wednesday"},
				Stacks: []models.Stack{
					{
						ID:           "s1",
						Title:        "Wake up",
						ScheduleType: models.ScheduleDaily,
						Schedulable:  true,
						Streak:       3,
						Actions: models.Actions{
							{ID: "a1", Text: "drink water", Completed: true, Streak: 3},
							{ID: "a2", Text: "stretch", Streak: 1},
						},
					},
					{
						ID:           "s2",
						Title:        "Workout",
						ScheduleType: models.ScheduleBiweekly,
						ScheduleDays: []string{"Monday"},
						Interval:     2,
						StartDate:    "2025-01-06",
						Schedulable:  true,
						Actions: models.Actions{
							{ID: "a3", Text: "pushups"},
						},
					},
				},
			},
			{
				ID:     "r2",
				Title:  "Evening",
				Days:   []string{"Sunday"},
				Streak: 9,
				Stacks: []models.Stack{},
			},
		},
		Library: []models.Stack{
			{
				ID:    "lib1",
				Title: "Deep clean",
				Actions: models.Actions{
					{ID: "a4", Text: "vacuum"},
				},
			},
		},
		Ledger: models.CompletionLedger{
			{Owner: "s1", Item: "a1"}: "2025-01-06",
			{Owner: "r1", Item: "s1"}: "2025-01-06",
			{Owner: "r1"}:             "2025-01-05",
		},
	}
	snap.Normalize()
	return snap
}

func newJSONStore(t *testing.T) *storage.JSONStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stacker.json")
	store := storage.NewJSONStore(path)
	require.NoError(t, store.Init())
	return store
}

func TestJSONStore_InitTwiceFails(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	store := newJSONStore(t)
	assert.Error(store.Init())
}

func TestJSONStore_LoadWithoutInitFails(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(store.Load())
}

func TestJSONStore_RoundTrip(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	store := newJSONStore(t)
	require.NoError(store.Load())

	want := testSnapshot()
	require.NoError(store.WriteSnapshot(want))

	// Reopen from disk to prove the state survived serialization.
	reopened := storage.NewJSONStore(store.Path())
	require.NoError(reopened.Load())
	got, err := reopened.ReadSnapshot()
	require.NoError(err)

	assert.Equal(want, got)
}

func TestJSONStore_EmptyAfterInit(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	store := newJSONStore(t)
	require.NoError(store.Load())

	snap, err := store.ReadSnapshot()
	require.NoError(err)
	assert.Empty(snap.Routines)
	assert.Empty(snap.Library)
	assert.Empty(snap.Ledger)
}

func TestJSONStore_ReadBeforeLoadFails(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "stacker.json"))
	_, err := store.ReadSnapshot()
	assert.Error(err)
	assert.Error(store.WriteSnapshot(models.Snapshot{}))
}

func TestJSONStore_CoercesLegacyActionPayloads(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	// Older exports wrote the action list as a JSON-encoded string, and a
	// corrupt row may hold garbage. Both load without error.
	path := filepath.Join(t.TempDir(), "stacker.json")
	raw := `{
		"version": 1,
		"routines": [{
			"id": "r1",
			"title": "Morning",
			"days": [],
			"stacks": [
				{"id": "s1", "title": "wrapped", "actions": "[{\"id\":\"a1\",\"text\":\"stretch\"}]"},
				{"id": "s2", "title": "corrupt", "actions": 42}
			]
		}],
		"library": [],
		"ledger": []
	}`
	require.NoError(os.WriteFile(path, []byte(raw), 0600))

	store := storage.NewJSONStore(path)
	require.NoError(store.Load())
	snap, err := store.ReadSnapshot()
	require.NoError(err)

	require.Len(snap.Routines, 1)
	stacks := snap.Routines[0].Stacks
	require.Len(stacks, 2)
	require.Len(stacks[0].Actions, 1)
	assert.Equal("stretch", stacks[0].Actions[0].Text)
	assert.Empty(stacks[1].Actions)

	// Absent is_schedulable defaults to true.
	assert.True(stacks[0].Schedulable)
}

func TestJSONStore_CorruptLedgerLoadsEmpty(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "stacker.json")
	raw := `{"version": 1, "routines": [], "library": [], "ledger": {"not": "a list"}}`
	require.NoError(os.WriteFile(path, []byte(raw), 0600))

	store := storage.NewJSONStore(path)
	require.NoError(store.Load())
	snap, err := store.ReadSnapshot()
	require.NoError(err)
	assert.Empty(snap.Ledger)
}
