package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/models"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/repositories"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, repositories.RunMigrations(context.Background(), db))
	return db
}

func entry(c models.Collection, op models.Operation, localID int64) *models.OutboxEntry {
	return &models.OutboxEntry{
		Collection: c,
		Operation:  op,
		LocalID:    localID,
		Payload:    json.RawMessage(`{"nombre":"x","owner_id":"owner-1"}`),
	}
}

func TestEnqueue_AssignsIDAndOpKey(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	id, err := r.Enqueue(ctx, entry(models.CollectionInventory, models.OpInsert, 1))
	require.NoError(t, err)
	assert.Positive(t, id)

	entries, err := r.PendingFor(ctx, models.CollectionInventory, false)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].OpKey)
	assert.Equal(t, models.EntryPending, entries[0].Status)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestEnqueue_RejectsUnknownCollectionAndOperation(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.Enqueue(ctx, entry("clientes", models.OpInsert, 1))
	require.Error(t, err)

	_, err = r.Enqueue(ctx, entry(models.CollectionInventory, "upsert", 1))
	require.Error(t, err)
}

func TestEnqueue_NeverDeduplicates(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.Enqueue(ctx, entry(models.CollectionPatients, models.OpUpdate, 3))
	require.NoError(t, err)
	_, err = r.Enqueue(ctx, entry(models.CollectionPatients, models.OpUpdate, 3))
	require.NoError(t, err)

	entries, err := r.PendingFor(ctx, models.CollectionPatients, false)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestPendingFor_FIFOOrderPerCollection(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	id1, err := r.Enqueue(ctx, entry(models.CollectionInventory, models.OpInsert, 1))
	require.NoError(t, err)
	_, err = r.Enqueue(ctx, entry(models.CollectionPatients, models.OpInsert, 1))
	require.NoError(t, err)
	id3, err := r.Enqueue(ctx, entry(models.CollectionInventory, models.OpUpdate, 1))
	require.NoError(t, err)

	entries, err := r.PendingFor(ctx, models.CollectionInventory, false)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, id1, entries[0].ID)
	assert.Equal(t, id3, entries[1].ID)
	assert.Equal(t, models.OpInsert, entries[0].Operation)
	assert.Equal(t, models.OpUpdate, entries[1].Operation)
}

func TestMarkFailed_ExcludedFromScanByDefault(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	id, err := r.Enqueue(ctx, entry(models.CollectionInventory, models.OpInsert, 1))
	require.NoError(t, err)
	require.NoError(t, r.MarkFailed(ctx, id, "boom"))

	entries, err := r.PendingFor(ctx, models.CollectionInventory, false)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = r.PendingFor(ctx, models.CollectionInventory, true)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.EntryFailed, entries[0].Status)
	assert.Equal(t, "boom", entries[0].Error)
}

func TestMarkSynced_IsTerminalAndIdempotent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	id, err := r.Enqueue(ctx, entry(models.CollectionInventory, models.OpInsert, 1))
	require.NoError(t, err)

	require.NoError(t, r.MarkSynced(ctx, id))
	require.NoError(t, r.MarkSynced(ctx, id))

	// synced entries never regress to failed
	require.NoError(t, r.MarkFailed(ctx, id, "late failure"))

	entries, err := r.PendingFor(ctx, models.CollectionInventory, true)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMarkSynced_ClearsEarlierFailure(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	id, err := r.Enqueue(ctx, entry(models.CollectionInventory, models.OpInsert, 1))
	require.NoError(t, err)
	require.NoError(t, r.MarkFailed(ctx, id, "boom"))
	require.NoError(t, r.MarkSynced(ctx, id))

	entries, err := r.PendingFor(ctx, models.CollectionInventory, true)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCountPending(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	n, err := r.CountPending(ctx, models.CollectionDiagnoses)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = r.Enqueue(ctx, entry(models.CollectionDiagnoses, models.OpInsert, 1))
	require.NoError(t, err)
	_, err = r.Enqueue(ctx, entry(models.CollectionDiagnoses, models.OpInsert, 2))
	require.NoError(t, err)

	n, err = r.CountPending(ctx, models.CollectionDiagnoses)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
