package records

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
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

func str(s string) *string { return &s }

func num(n int64) *int64 { return &n }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestAdd_AssignsIncreasingLocalIDs(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository[models.InventoryFields](db)
	ctx := context.Background()

	id1, err := r.Add(ctx, "owner-1", models.InventoryFields{Name: str("Armazon A")})
	require.NoError(t, err)
	id2, err := r.Add(ctx, "owner-1", models.InventoryFields{Name: str("Armazon B")})
	require.NoError(t, err)

	assert.Greater(t, id2, id1)

	rec, err := r.Get(ctx, id1)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, models.SyncPending, rec.SyncStatus)
	assert.Empty(t, rec.ServerID)
	assert.Equal(t, "owner-1", rec.OwnerID)
	assert.Equal(t, "Armazon A", *rec.Fields.Name)
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository[models.InventoryFields](db)

	rec, err := r.Get(context.Background(), 42)
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestUpdate_MergesOnlySetFields(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository[models.InventoryFields](db)
	ctx := context.Background()

	id, err := r.Add(ctx, "owner-1", models.InventoryFields{
		Name:     str("Armazon A"),
		Quantity: num(10),
		Price:    dec("125.50"),
	})
	require.NoError(t, err)

	require.NoError(t, r.Update(ctx, id, models.InventoryFields{Quantity: num(7)}))

	rec, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Armazon A", *rec.Fields.Name)
	assert.Equal(t, int64(7), *rec.Fields.Quantity)
	assert.True(t, rec.Fields.Price.Equal(decimal.RequireFromString("125.50")))
}

func TestUpdate_MissingID_IsNoOp(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository[models.InventoryFields](db)

	require.NoError(t, r.Update(context.Background(), 999, models.InventoryFields{Name: str("x")}))
}

func TestDelete_RemovesRecord_AndIsIdempotent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository[models.PatientFields](db)
	ctx := context.Background()

	id, err := r.Add(ctx, "owner-1", models.PatientFields{Name: str("Maria")})
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, id))
	require.NoError(t, r.Delete(ctx, id))

	rec, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestList_OrderedByLocalID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository[models.PatientFields](db)
	ctx := context.Background()

	for _, name := range []string{"Ana", "Berta", "Carla"} {
		_, err := r.Add(ctx, "owner-1", models.PatientFields{Name: str(name)})
		require.NoError(t, err)
	}

	recs, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "Ana", *recs[0].Fields.Name)
	assert.Equal(t, "Berta", *recs[1].Fields.Name)
	assert.Equal(t, "Carla", *recs[2].Fields.Name)
	assert.Less(t, recs[0].LocalID, recs[1].LocalID)
}

func TestFindByServerID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository[models.InventoryFields](db)
	ctx := context.Background()

	id, err := r.AddSynced(ctx, "owner-1", "srv-10", models.InventoryFields{Name: str("Luna")})
	require.NoError(t, err)

	rec, err := r.FindByServerID(ctx, "srv-10", "owner-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, id, rec.LocalID)
	assert.Equal(t, models.SyncSynced, rec.SyncStatus)

	rec, err = r.FindByServerID(ctx, "srv-10", "other-owner")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestStore_MarkSynced_NeverOverwritesServerID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository[models.InventoryFields](db)
	s := NewStore(db)
	ctx := context.Background()

	id, err := r.Add(ctx, "owner-1", models.InventoryFields{Name: str("Armazon")})
	require.NoError(t, err)

	require.NoError(t, s.MarkSynced(ctx, models.CollectionInventory, id, "srv-1"))
	require.NoError(t, s.MarkSynced(ctx, models.CollectionInventory, id, "srv-2"))

	sid, err := s.ServerIDOf(ctx, models.CollectionInventory, id)
	require.NoError(t, err)
	assert.Equal(t, "srv-1", sid)
}

func TestStore_ServerIDOf_MissingRecord_ReturnsEmpty(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)

	sid, err := s.ServerIDOf(context.Background(), models.CollectionInventory, 77)
	require.NoError(t, err)
	assert.Empty(t, sid)
}

func TestStore_MarkStatus(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository[models.InventoryFields](db)
	s := NewStore(db)
	ctx := context.Background()

	id, err := r.Add(ctx, "owner-1", models.InventoryFields{Name: str("Armazon")})
	require.NoError(t, err)

	require.NoError(t, s.MarkStatus(ctx, models.CollectionInventory, id, models.SyncFailed))

	rec, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.SyncFailed, rec.SyncStatus)
}

func TestRecords_SurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opticsave.db")
	ctx := context.Background()

	db, err := repositories.InitDatabase(ctx, path)
	require.NoError(t, err)

	r := NewSQLiteRepository[models.PrescriptionFields](db)
	id, err := r.Add(ctx, "owner-1", models.PrescriptionFields{
		LensType: str("monofocal"),
		Total:    dec("350"),
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db2, err := repositories.InitDatabase(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db2.Close() })

	rec, err := NewSQLiteRepository[models.PrescriptionFields](db2).Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "monofocal", *rec.Fields.LensType)
	assert.Equal(t, models.SyncPending, rec.SyncStatus)
}
