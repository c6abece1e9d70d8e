package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/remote"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/repositories/metadata"
	"github.com/andresMonthn/OpticSave-sub000/internal/common"
	"github.com/andresMonthn/OpticSave-sub000/internal/logging"
)

func setupSession(t *testing.T) (*SessionService, *fakeRemote, metadata.Repository) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	rc := &fakeRemote{}
	meta := metadata.NewSQLiteRepository(db)
	return NewSessionService(rc, meta, logging.Setup(io.Discard, "error", "text")), rc, meta
}

func TestLogin_ResolvesAndCachesOwner(t *testing.T) {
	s, _, meta := setupSession(t)
	ctx := context.Background()

	ownerID, err := s.Login(ctx)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", ownerID)

	cached, err := meta.Get(ctx, metadata.KeyOwnerID)
	require.NoError(t, err)
	assert.Equal(t, []byte("owner-1"), cached)
}

func TestLogin_OfflineFallsBackToCachedIdentity(t *testing.T) {
	s, rc, meta := setupSession(t)
	ctx := context.Background()

	require.NoError(t, meta.Set(ctx, metadata.KeyOwnerID, []byte("owner-1")))
	rc.userErr = fmt.Errorf("%w: connection refused", remote.ErrUnavailable)

	ownerID, err := s.Login(ctx)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", ownerID)
}

func TestLogin_OfflineWithoutCacheFails(t *testing.T) {
	s, rc, _ := setupSession(t)
	rc.userErr = fmt.Errorf("%w: connection refused", remote.ErrUnavailable)

	_, err := s.Login(context.Background())
	require.ErrorIs(t, err, remote.ErrUnavailable)
}

func TestLogin_UnauthorizedNeverUsesCache(t *testing.T) {
	s, rc, meta := setupSession(t)
	ctx := context.Background()

	require.NoError(t, meta.Set(ctx, metadata.KeyOwnerID, []byte("owner-1")))
	rc.userErr = remote.ErrUnauthorized

	_, err := s.Login(ctx)
	require.ErrorIs(t, err, remote.ErrUnauthorized)
}

func TestOwnerID_WithoutSession(t *testing.T) {
	s, _, _ := setupSession(t)

	_, err := s.OwnerID(context.Background())
	require.ErrorIs(t, err, common.ErrNoSession)
}

func TestLogout_DropsCachedIdentity(t *testing.T) {
	s, _, _ := setupSession(t)
	ctx := context.Background()

	_, err := s.Login(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))

	_, err = s.OwnerID(ctx)
	require.ErrorIs(t, err, common.ErrNoSession)
}
