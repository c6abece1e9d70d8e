// Package connectivity tracks whether the remote API is reachable and what
// the user decided about working offline. All write-path policy questions
// ("may I queue this mutation?") are answered here.
package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/repositories/metadata"
	"github.com/andresMonthn/OpticSave-sub000/internal/logging"
	"github.com/andresMonthn/OpticSave-sub000/internal/metrics"
)

// State is the connectivity mode the client operates in.
type State string

const (
	// StateOnline: the remote API is reachable; mutations go straight
	// through after being recorded locally.
	StateOnline State = "online"

	// StateOfflineUnconfirmed: the remote API is unreachable and the user
	// has not yet agreed to keep working offline. Writes are rejected.
	StateOfflineUnconfirmed State = "offline-unconfirmed"

	// StateOfflineAccepted: the user agreed to work offline; mutations are
	// queued for later replay.
	StateOfflineAccepted State = "offline-accepted"
)

// Pinger is the reachability probe, satisfied by the remote client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SyncRunner drains queued work once connectivity returns, satisfied by the
// synchronizer.
type SyncRunner interface {
	Run(ctx context.Context) error
}

// ConfirmFunc asks the user whether offline work should be accepted. It is
// invoked at most once per offline episode.
type ConfirmFunc func(ctx context.Context) bool

// Monitor is the connectivity state machine. It is safe for concurrent use;
// the background watcher and the interactive command loop both drive it.
type Monitor struct {
	pinger     Pinger
	runner     SyncRunner
	meta       metadata.Repository
	logger     logging.Logger
	confirm    ConfirmFunc
	autoAccept bool

	mu         sync.Mutex
	state      State
	syncing    bool
	lastSyncAt time.Time
}

// New builds a Monitor starting in the online state. With autoAccept set,
// going offline skips the confirmation step and queued writes are allowed
// immediately.
func New(pinger Pinger, runner SyncRunner, meta metadata.Repository, logger logging.Logger, autoAccept bool) *Monitor {
	return &Monitor{
		pinger:     pinger,
		runner:     runner,
		meta:       meta,
		logger:     logger,
		autoAccept: autoAccept,
		state:      StateOnline,
	}
}

// SetConfirm registers the prompt used when connectivity drops and offline
// mode has not been auto-accepted.
func (m *Monitor) SetConfirm(f ConfirmFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirm = f
}

// Restore loads persisted sync bookkeeping from a previous run.
func (m *Monitor) Restore(ctx context.Context) error {
	raw, err := m.meta.Get(ctx, metadata.KeyLastSyncAt)
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		m.logger.Warn(ctx, "ignoring malformed last sync timestamp", "value", string(raw))
		return nil
	}
	m.mu.Lock()
	m.lastSyncAt = t
	m.mu.Unlock()
	return nil
}

// State returns the current connectivity mode.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsOnline reports whether the remote API is considered reachable.
func (m *Monitor) IsOnline() bool {
	return m.State() == StateOnline
}

// OfflineAccepted reports whether offline work has been accepted for the
// current offline episode.
func (m *Monitor) OfflineAccepted() bool {
	return m.State() == StateOfflineAccepted
}

// Syncing reports whether a drain pass is currently running.
func (m *Monitor) Syncing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncing
}

// LastSyncAt returns when the last drain pass completed, or the zero time
// if none has.
func (m *Monitor) LastSyncAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSyncAt
}

// AcceptOffline records the user's agreement to keep working offline. It is
// a no-op unless the monitor is waiting for exactly that answer.
func (m *Monitor) AcceptOffline(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateOfflineUnconfirmed {
		return
	}
	m.state = StateOfflineAccepted
	m.logger.Info(ctx, "offline mode accepted")
}

// SetOffline transitions out of the online state. If offline mode was
// already accepted the decision stands; otherwise the monitor asks the
// registered prompt (or auto-accepts when configured).
func (m *Monitor) SetOffline(ctx context.Context) {
	m.mu.Lock()
	if m.state != StateOnline {
		m.mu.Unlock()
		return
	}
	m.state = StateOfflineUnconfirmed
	confirm := m.confirm
	m.mu.Unlock()

	metrics.OnlineStatus.Set(0)
	m.logger.Warn(ctx, "remote unreachable, entering offline mode")

	if m.autoAccept {
		m.mu.Lock()
		m.state = StateOfflineAccepted
		m.mu.Unlock()
		m.logger.Info(ctx, "offline mode accepted", "auto", true)
		return
	}
	if confirm != nil && confirm(ctx) {
		m.AcceptOffline(ctx)
	}
}

// SetOnline transitions back to the online state and, when that is an
// actual change, runs one drain pass. Concurrent calls never start a second
// pass; the late caller returns immediately.
func (m *Monitor) SetOnline(ctx context.Context) error {
	m.mu.Lock()
	wasOffline := m.state != StateOnline
	m.state = StateOnline
	if !wasOffline || m.syncing {
		m.mu.Unlock()
		metrics.OnlineStatus.Set(1)
		return nil
	}
	m.syncing = true
	m.mu.Unlock()

	metrics.OnlineStatus.Set(1)
	m.logger.Info(ctx, "remote reachable again, draining queued work")

	err := m.runner.Run(ctx)
	if err != nil {
		m.logger.Error(ctx, "drain pass finished with errors", "error", err)
	}

	// The pass ran to completion even if individual entries failed; those
	// are parked in the outbox, not retried here.
	now := time.Now()
	m.mu.Lock()
	m.syncing = false
	m.lastSyncAt = now
	m.mu.Unlock()

	if me := m.meta.Set(ctx, metadata.KeyLastSyncAt, []byte(now.Format(time.RFC3339Nano))); me != nil {
		m.logger.Error(ctx, "failed to persist last sync timestamp", "error", me)
	}
	return err
}

// StartWatcher probes the remote API every interval and flips the monitor
// between online and offline accordingly. It blocks until ctx is cancelled,
// so run it in its own goroutine.
func (m *Monitor) StartWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

// check probes reachability with a short fibonacci backoff so a single
// dropped packet does not flap the state machine.
func (m *Monitor) check(ctx context.Context) {
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		return retry.RetryableError(m.pinger.Ping(ctx))
	})
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		m.SetOffline(ctx)
		return
	}
	if err := m.SetOnline(ctx); err != nil {
		m.logger.Error(ctx, "post-reconnect drain failed", "error", err)
	}
}
