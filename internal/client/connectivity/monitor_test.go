package connectivity

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/repositories/metadata"
	"github.com/andresMonthn/OpticSave-sub000/internal/logging"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(ctx context.Context) error { return p.err }

type fakeRunner struct {
	runs int
	err  error
}

func (r *fakeRunner) Run(ctx context.Context) error {
	r.runs++
	return r.err
}

func setupMeta(t *testing.T) metadata.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return metadata.NewSQLiteRepository(db)
}

func newMonitor(t *testing.T, autoAccept bool) (*Monitor, *fakePinger, *fakeRunner) {
	t.Helper()
	pinger := &fakePinger{}
	runner := &fakeRunner{}
	m := New(pinger, runner, setupMeta(t), logging.Setup(io.Discard, "error", "text"), autoAccept)
	return m, pinger, runner
}

func TestMonitor_StartsOnline(t *testing.T) {
	m, _, _ := newMonitor(t, false)
	assert.Equal(t, StateOnline, m.State())
	assert.True(t, m.IsOnline())
	assert.False(t, m.OfflineAccepted())
}

func TestSetOffline_WaitsForConfirmation(t *testing.T) {
	m, _, _ := newMonitor(t, false)
	ctx := context.Background()

	m.SetOffline(ctx)
	assert.Equal(t, StateOfflineUnconfirmed, m.State())

	m.AcceptOffline(ctx)
	assert.Equal(t, StateOfflineAccepted, m.State())
}

func TestAcceptOffline_NoOpWhileOnline(t *testing.T) {
	m, _, _ := newMonitor(t, false)

	m.AcceptOffline(context.Background())
	assert.Equal(t, StateOnline, m.State())
}

func TestSetOffline_AutoAcceptSkipsConfirmation(t *testing.T) {
	m, _, _ := newMonitor(t, true)

	m.SetOffline(context.Background())
	assert.Equal(t, StateOfflineAccepted, m.State())
}

func TestSetOffline_InvokesConfirmOncePerEpisode(t *testing.T) {
	m, _, _ := newMonitor(t, false)
	ctx := context.Background()

	asked := 0
	m.SetConfirm(func(ctx context.Context) bool {
		asked++
		return true
	})

	m.SetOffline(ctx)
	assert.Equal(t, StateOfflineAccepted, m.State())
	assert.Equal(t, 1, asked)

	// already offline: the decision stands, no second prompt
	m.SetOffline(ctx)
	assert.Equal(t, StateOfflineAccepted, m.State())
	assert.Equal(t, 1, asked)
}

func TestSetOnline_RunsDrainOnlyOnTransition(t *testing.T) {
	m, _, runner := newMonitor(t, true)
	ctx := context.Background()

	// already online: nothing to drain
	require.NoError(t, m.SetOnline(ctx))
	assert.Zero(t, runner.runs)

	m.SetOffline(ctx)
	require.NoError(t, m.SetOnline(ctx))
	assert.Equal(t, 1, runner.runs)
	assert.Equal(t, StateOnline, m.State())
	assert.False(t, m.Syncing())
}

func TestSetOnline_RecordsLastSyncEvenWhenDrainFails(t *testing.T) {
	m, _, runner := newMonitor(t, true)
	runner.err = errors.New("entry failed")
	ctx := context.Background()

	m.SetOffline(ctx)
	err := m.SetOnline(ctx)
	require.Error(t, err)

	assert.False(t, m.LastSyncAt().IsZero())
}

func TestRestore_ReadsPersistedLastSync(t *testing.T) {
	meta := setupMeta(t)
	logger := logging.Setup(io.Discard, "error", "text")
	ctx := context.Background()

	stamp := time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC)
	require.NoError(t, meta.Set(ctx, metadata.KeyLastSyncAt, []byte(stamp.Format(time.RFC3339Nano))))

	m := New(&fakePinger{}, &fakeRunner{}, meta, logger, false)
	require.NoError(t, m.Restore(ctx))
	assert.True(t, m.LastSyncAt().Equal(stamp))
}

func TestRestore_IgnoresMalformedTimestamp(t *testing.T) {
	meta := setupMeta(t)
	ctx := context.Background()
	require.NoError(t, meta.Set(ctx, metadata.KeyLastSyncAt, []byte("not a time")))

	m := New(&fakePinger{}, &fakeRunner{}, meta, logging.Setup(io.Discard, "error", "text"), false)
	require.NoError(t, m.Restore(ctx))
	assert.True(t, m.LastSyncAt().IsZero())
}

func TestCheck_FlipsStateWithReachability(t *testing.T) {
	m, pinger, runner := newMonitor(t, true)
	ctx := context.Background()

	pinger.err = errors.New("connection refused")
	m.check(ctx)
	assert.Equal(t, StateOfflineAccepted, m.State())

	pinger.err = nil
	m.check(ctx)
	assert.Equal(t, StateOnline, m.State())
	assert.Equal(t, 1, runner.runs)
}
