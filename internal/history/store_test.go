package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwdrift/hwdrift/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func storedSnapshot(id string, captured time.Time) *types.Snapshot {
	return &types.Snapshot{
		ID:        id,
		Hostname:  "workstation-7",
		Timestamp: captured,
		Fields: []types.Field{
			{Category: types.CategorySystem, Key: "SerialNumber", Value: "ABC123", Present: true},
			{Category: types.CategoryBIOS, Key: "SecureBoot", Present: false},
		},
	}
}

func TestStore_RecordAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := store.Record(ctx, storedSnapshot(fmt.Sprintf("snap-%d", i), base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, "snap-2", entries[0].SnapshotID)
	assert.Equal(t, "snap-0", entries[2].SnapshotID)
	assert.Equal(t, "workstation-7", entries[0].Hostname)
	assert.Equal(t, 2, entries[0].FieldCount)
	assert.Equal(t, base.Add(2*time.Hour), entries[0].CapturedAt)
}

func TestStore_ListLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := store.Record(ctx, storedSnapshot(fmt.Sprintf("snap-%d", i), base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	entries, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// Non-positive limits fall back to the default rather than returning
	// nothing.
	entries, err = store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestStore_LoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	snap := storedSnapshot("snap-1", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	id, err := store.Record(ctx, snap)
	require.NoError(t, err)

	loaded, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, loaded.ID)
	assert.Equal(t, snap.Hostname, loaded.Hostname)
	require.Len(t, loaded.Fields, 2)
	assert.Equal(t, "ABC123", loaded.Fields[0].Value)
	assert.False(t, loaded.Fields[1].Present)
}

func TestStore_LoadMissing(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Load(context.Background(), 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestStore_Prune(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := store.Record(ctx, storedSnapshot(fmt.Sprintf("snap-%d", i), base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	removed, err := store.Prune(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "snap-4", entries[0].SnapshotID)
	assert.Equal(t, "snap-3", entries[1].SnapshotID)

	// keep=0 disables pruning entirely.
	removed, err = store.Prune(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
