// Package sync drains the outbox against the remote API and reconciles
// remote rows back into the local store.
package sync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/models"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/remote"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/repositories/outbox"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/repositories/records"
	"github.com/andresMonthn/OpticSave-sub000/internal/common"
	"github.com/andresMonthn/OpticSave-sub000/internal/logging"
	"github.com/andresMonthn/OpticSave-sub000/internal/metrics"
)

// Result captures the outcome of replaying one outbox entry. Failures are
// recorded here and in the entry's persisted status; they never abort the
// batch.
type Result struct {
	EntryID   int64
	Operation models.Operation
	ServerID  string
	Err       error
}

// BatchResult is the outcome of one collection scan.
type BatchResult struct {
	Collection models.Collection
	Results    []Result
}

// Failed returns how many entries of the batch ended in failure.
func (b BatchResult) Failed() int {
	n := 0
	for _, r := range b.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Puller reconciles remote rows of one collection into the local store
// after a drain. Collection facades implement it.
type Puller interface {
	Collection() models.Collection
	Refresh(ctx context.Context) error
}

// Synchronizer replays pending outbox entries, one collection at a time,
// strictly in insertion order, with at most one remote attempt per entry
// per pass.
type Synchronizer struct {
	db          *sql.DB
	remote      remote.Client
	logger      logging.Logger
	retryFailed bool
	pullers     []Puller
}

// New builds a Synchronizer. When retryFailed is set, entries that failed a
// previous pass are scanned again on the next one; by default they stay
// parked until addressed explicitly.
func New(db *sql.DB, rc remote.Client, logger logging.Logger, retryFailed bool) *Synchronizer {
	return &Synchronizer{db: db, remote: rc, logger: logger, retryFailed: retryFailed}
}

// AddPuller registers a facade for post-drain reconciliation.
func (s *Synchronizer) AddPuller(p Puller) {
	s.pullers = append(s.pullers, p)
}

// SyncCollection drains the outbox for one collection. The returned error
// reports storage-level trouble only (the scan itself could not run);
// per-entry replay failures live in the BatchResult.
func (s *Synchronizer) SyncCollection(ctx context.Context, c models.Collection) (BatchResult, error) {
	ob := outbox.NewSQLiteRepository(s.db)
	store := records.NewStore(s.db)
	batch := BatchResult{Collection: c}

	entries, err := ob.PendingFor(ctx, c, s.retryFailed)
	if err != nil {
		return batch, fmt.Errorf("outbox scan failed for %s: %w", c, err)
	}
	if len(entries) == 0 {
		return batch, nil
	}

	start := time.Now()

	// Server ids learned from inserts earlier in this pass, so that a
	// dependent update/delete queued before its insert was acknowledged
	// can still resolve its target.
	resolved := make(map[int64]string)

	for _, e := range entries {
		serverID, err := s.applyEntry(ctx, store, resolved, e)
		batch.Results = append(batch.Results, Result{
			EntryID:   e.ID,
			Operation: e.Operation,
			ServerID:  serverID,
			Err:       err,
		})

		if err != nil {
			s.logger.Error(ctx, "replay failed",
				"collection", c, "entry", e.ID, "operation", e.Operation, "error", err)
			if me := ob.MarkFailed(ctx, e.ID, err.Error()); me != nil {
				s.logger.Error(ctx, "failed to persist entry failure", "entry", e.ID, "error", me)
			}
			if me := store.MarkStatus(ctx, c, e.LocalID, models.SyncFailed); me != nil {
				s.logger.Error(ctx, "failed to flag record", "collection", c, "local_id", e.LocalID, "error", me)
			}
			metrics.EntriesReplayed.WithLabelValues(string(c), "failed").Inc()
			continue
		}

		if me := ob.MarkSynced(ctx, e.ID); me != nil {
			s.logger.Error(ctx, "failed to persist entry success", "entry", e.ID, "error", me)
		}
		metrics.EntriesReplayed.WithLabelValues(string(c), "synced").Inc()
	}

	if n, err := ob.CountPending(ctx, c); err == nil {
		metrics.OutboxBacklog.WithLabelValues(string(c)).Set(float64(n))
	}

	s.logger.Info(ctx, "collection drained",
		"collection", c,
		"entries", len(entries),
		"failed", batch.Failed(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return batch, nil
}

func (s *Synchronizer) applyEntry(ctx context.Context, store *records.Store, resolved map[int64]string, e models.OutboxEntry) (string, error) {
	payload, err := models.DecodePayload(e.Collection, e.Payload)
	if err != nil {
		return "", err
	}

	switch e.Operation {
	case models.OpInsert:
		serverID, err := s.remote.Create(ctx, e.Collection, e.OpKey, payload)
		if err != nil {
			return "", err
		}
		resolved[e.LocalID] = serverID
		if err := store.MarkSynced(ctx, e.Collection, e.LocalID, serverID); err != nil {
			return serverID, err
		}
		return serverID, nil

	case models.OpUpdate:
		serverID, err := s.resolveServerID(ctx, store, resolved, e)
		if err != nil {
			return "", err
		}
		if err := s.remote.Update(ctx, e.Collection, serverID, payload); err != nil {
			return serverID, err
		}
		if err := store.MarkSynced(ctx, e.Collection, e.LocalID, serverID); err != nil {
			return serverID, err
		}
		return serverID, nil

	case models.OpDelete:
		serverID, err := s.resolveServerID(ctx, store, resolved, e)
		if err != nil {
			return "", err
		}
		// The local record is already gone; only the remote row remains.
		return serverID, s.remote.Delete(ctx, e.Collection, serverID)

	default:
		return "", fmt.Errorf("unknown operation %q", e.Operation)
	}
}

// resolveServerID finds the remote id an update/delete must target: the id
// snapshotted at enqueue time, an id learned from an insert replayed
// earlier in this pass, or the id already attached to the local record.
// An unresolvable id is a defect in the queued entry, not a transient
// failure.
func (s *Synchronizer) resolveServerID(ctx context.Context, store *records.Store, resolved map[int64]string, e models.OutboxEntry) (string, error) {
	if e.ServerID != "" {
		return e.ServerID, nil
	}
	if sid, ok := resolved[e.LocalID]; ok && sid != "" {
		return sid, nil
	}
	sid, err := store.ServerIDOf(ctx, e.Collection, e.LocalID)
	if err != nil {
		return "", err
	}
	if sid == "" {
		return "", fmt.Errorf("%w for %s %s entry %d", common.ErrMissingServerID, e.Collection, e.Operation, e.ID)
	}
	return sid, nil
}

// SyncAll runs one full pass: every collection drained sequentially, then
// registered pullers reconcile remote state back into the local store. A
// failure in one collection's scan does not block the others.
func (s *Synchronizer) SyncAll(ctx context.Context) ([]BatchResult, error) {
	start := time.Now()
	defer func() {
		metrics.SyncPassDuration.Observe(time.Since(start).Seconds())
	}()

	var (
		results []BatchResult
		errs    []error
	)
	for _, c := range models.Collections() {
		batch, err := s.SyncCollection(ctx, c)
		if err != nil {
			s.logger.Error(ctx, "collection scan failed", "collection", c, "error", err)
			errs = append(errs, err)
			continue
		}
		results = append(results, batch)
	}

	for _, p := range s.pullers {
		if err := p.Refresh(ctx); err != nil {
			s.logger.Warn(ctx, "reconciliation failed", "collection", p.Collection(), "error", err)
			errs = append(errs, err)
		}
	}

	return results, errors.Join(errs...)
}

// Run is the entry point the connectivity monitor invokes on reconnect.
func (s *Synchronizer) Run(ctx context.Context) error {
	_, err := s.SyncAll(ctx)
	return err
}
