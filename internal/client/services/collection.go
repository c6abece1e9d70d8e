package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/connectivity"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/models"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/remote"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/repositories/outbox"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/repositories/records"
	"github.com/andresMonthn/OpticSave-sub000/internal/common"
	"github.com/andresMonthn/OpticSave-sub000/internal/dbx"
	"github.com/andresMonthn/OpticSave-sub000/internal/logging"
)

// Deps bundles the collaborators every collection facade needs. They are
// passed in explicitly; nothing here reaches for globals.
type Deps struct {
	DB      *sql.DB
	Remote  remote.Client
	Monitor *connectivity.Monitor
	Session *SessionService
	Logger  logging.Logger
}

// CollectionService is the write-through facade for one collection. Every
// mutation lands in the local store first; remote application happens
// immediately when online and is queued in the outbox otherwise. Reads are
// always local.
type CollectionService[F models.FieldsOf[F]] struct {
	deps       Deps
	collection models.Collection
	toPayload  func(ownerID string, f F) models.Payload
	fromRow    func(raw json.RawMessage) (serverID string, f F, err error)
}

func newCollectionService[F models.FieldsOf[F]](
	deps Deps,
	toPayload func(string, F) models.Payload,
	fromRow func(json.RawMessage) (string, F, error),
) *CollectionService[F] {
	var zero F
	return &CollectionService[F]{
		deps:       deps,
		collection: zero.Collection(),
		toPayload:  toPayload,
		fromRow:    fromRow,
	}
}

// Collection returns the collection this facade serves.
func (s *CollectionService[F]) Collection() models.Collection {
	return s.collection
}

// guard rejects mutations while offline mode is pending confirmation. It
// runs before any local write, so a rejected mutation leaves no trace.
func (s *CollectionService[F]) guard() error {
	st := s.deps.Monitor.State()
	if st == connectivity.StateOfflineUnconfirmed {
		return common.ErrOfflineNotAccepted
	}
	return nil
}

// Add records a new entity. The local insert always happens; the remote
// insert follows immediately when online and is queued when the remote
// cannot be reached.
func (s *CollectionService[F]) Add(ctx context.Context, f F) (int64, error) {
	if err := s.guard(); err != nil {
		return 0, err
	}
	ownerID, err := s.deps.Session.OwnerID(ctx)
	if err != nil {
		return 0, err
	}

	payload, err := models.EncodePayload(s.toPayload(ownerID, f))
	if err != nil {
		return 0, err
	}
	opKey := uuid.NewString()

	if !s.deps.Monitor.IsOnline() {
		var localID int64
		err := dbx.WithTx(ctx, s.deps.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
			var err error
			localID, err = records.NewSQLiteRepository[F](tx).Add(ctx, ownerID, f)
			if err != nil {
				return err
			}
			_, err = outbox.NewSQLiteRepository(tx).Enqueue(ctx, &models.OutboxEntry{
				OpKey:      opKey,
				Collection: s.collection,
				Operation:  models.OpInsert,
				LocalID:    localID,
				Payload:    payload,
			})
			return err
		})
		return localID, err
	}

	localID, err := records.NewSQLiteRepository[F](s.deps.DB).Add(ctx, ownerID, f)
	if err != nil {
		return 0, err
	}

	serverID, err := s.deps.Remote.Create(ctx, s.collection, opKey, s.toPayload(ownerID, f))
	if err != nil {
		return localID, s.fallbackToQueue(ctx, err, &models.OutboxEntry{
			OpKey:      opKey,
			Collection: s.collection,
			Operation:  models.OpInsert,
			LocalID:    localID,
			Payload:    payload,
		})
	}
	return localID, records.NewStore(s.deps.DB).MarkSynced(ctx, s.collection, localID, serverID)
}

// Update overlays the set fields of patch onto the stored record and pushes
// the merged state remotely. Updating a record whose insert has not been
// acknowledged yet is allowed; the queued entry resolves its server id at
// replay time.
func (s *CollectionService[F]) Update(ctx context.Context, localID int64, patch F) error {
	if err := s.guard(); err != nil {
		return err
	}
	ownerID, err := s.deps.Session.OwnerID(ctx)
	if err != nil {
		return err
	}

	repo := records.NewSQLiteRepository[F](s.deps.DB)
	cur, err := repo.Get(ctx, localID)
	if err != nil {
		return err
	}
	if cur == nil {
		return fmt.Errorf("%s[%d]: %w", s.collection, localID, common.ErrNotFound)
	}

	merged := cur.Fields.MergedWith(patch)
	payload, err := models.EncodePayload(s.toPayload(ownerID, merged))
	if err != nil {
		return err
	}
	entry := &models.OutboxEntry{
		OpKey:      uuid.NewString(),
		Collection: s.collection,
		Operation:  models.OpUpdate,
		LocalID:    localID,
		ServerID:   cur.ServerID,
		Payload:    payload,
	}

	if !s.deps.Monitor.IsOnline() || cur.ServerID == "" {
		return dbx.WithTx(ctx, s.deps.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
			if err := records.NewSQLiteRepository[F](tx).Put(ctx, localID, merged); err != nil {
				return err
			}
			if err := records.NewStore(tx).MarkStatus(ctx, s.collection, localID, models.SyncPending); err != nil {
				return err
			}
			_, err := outbox.NewSQLiteRepository(tx).Enqueue(ctx, entry)
			return err
		})
	}

	if err := repo.Put(ctx, localID, merged); err != nil {
		return err
	}
	if err := s.deps.Remote.Update(ctx, s.collection, cur.ServerID, s.toPayload(ownerID, merged)); err != nil {
		return s.fallbackToQueue(ctx, err, entry)
	}
	return records.NewStore(s.deps.DB).MarkSynced(ctx, s.collection, localID, cur.ServerID)
}

// Remove deletes the record locally and pushes the deletion remotely. A
// record that never reached the server still gets a queued delete: its
// insert entry replays first, and the delete resolves the id it produced.
func (s *CollectionService[F]) Remove(ctx context.Context, localID int64) error {
	if err := s.guard(); err != nil {
		return err
	}
	ownerID, err := s.deps.Session.OwnerID(ctx)
	if err != nil {
		return err
	}

	repo := records.NewSQLiteRepository[F](s.deps.DB)
	cur, err := repo.Get(ctx, localID)
	if err != nil {
		return err
	}
	if cur == nil {
		return fmt.Errorf("%s[%d]: %w", s.collection, localID, common.ErrNotFound)
	}

	payload, err := models.EncodePayload(s.toPayload(ownerID, cur.Fields))
	if err != nil {
		return err
	}
	entry := &models.OutboxEntry{
		OpKey:      uuid.NewString(),
		Collection: s.collection,
		Operation:  models.OpDelete,
		LocalID:    localID,
		ServerID:   cur.ServerID,
		Payload:    payload,
	}

	if !s.deps.Monitor.IsOnline() || cur.ServerID == "" {
		return dbx.WithTx(ctx, s.deps.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
			if err := records.NewSQLiteRepository[F](tx).Delete(ctx, localID); err != nil {
				return err
			}
			_, err := outbox.NewSQLiteRepository(tx).Enqueue(ctx, entry)
			return err
		})
	}

	if err := repo.Delete(ctx, localID); err != nil {
		return err
	}
	if err := s.deps.Remote.Delete(ctx, s.collection, cur.ServerID); err != nil {
		return s.fallbackToQueue(ctx, err, entry)
	}
	return nil
}

// fallbackToQueue turns a failed immediate remote call into a queued entry.
// The local write already succeeded, so the caller sees success; the cause
// lives on in the entry for the next replay. The record flips back to
// pending in the same transaction, so reconciliation knows a queued change
// still owns it. Unreachability additionally flips the connectivity monitor
// so subsequent mutations queue straight away.
func (s *CollectionService[F]) fallbackToQueue(ctx context.Context, cause error, entry *models.OutboxEntry) error {
	s.deps.Logger.Warn(ctx, "remote write failed, queueing",
		"collection", s.collection, "operation", entry.Operation, "error", cause)
	if errors.Is(cause, remote.ErrUnavailable) {
		s.deps.Monitor.SetOffline(ctx)
	}
	err := dbx.WithTx(ctx, s.deps.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := outbox.NewSQLiteRepository(tx).Enqueue(ctx, entry); err != nil {
			return err
		}
		if entry.Operation == models.OpDelete {
			// The local record is already gone; only the queue remembers it.
			return nil
		}
		return records.NewStore(tx).MarkStatus(ctx, s.collection, entry.LocalID, models.SyncPending)
	})
	if err != nil {
		return errors.Join(cause, err)
	}
	return nil
}

// Get returns one record from the local store.
func (s *CollectionService[F]) Get(ctx context.Context, localID int64) (*models.Record[F], error) {
	rec, err := records.NewSQLiteRepository[F](s.deps.DB).Get(ctx, localID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%s[%d]: %w", s.collection, localID, common.ErrNotFound)
	}
	return rec, nil
}

// List returns all local records of the collection, oldest first. It never
// touches the network.
func (s *CollectionService[F]) List(ctx context.Context) ([]models.Record[F], error) {
	return records.NewSQLiteRepository[F](s.deps.DB).List(ctx)
}

// Refresh pulls the owner's rows from the remote API and reconciles them
// into the local store: unknown rows are inserted, known rows are replaced
// with the remote (authoritative) state. Local-only records and queued
// mutations are left alone.
func (s *CollectionService[F]) Refresh(ctx context.Context) error {
	ownerID, err := s.deps.Session.OwnerID(ctx)
	if err != nil {
		return err
	}

	rows, err := s.deps.Remote.QueryByOwner(ctx, s.collection, ownerID)
	if err != nil {
		return fmt.Errorf("failed to pull %s: %w", s.collection, err)
	}

	repo := records.NewSQLiteRepository[F](s.deps.DB)
	store := records.NewStore(s.deps.DB)
	for _, raw := range rows {
		serverID, fields, err := s.fromRow(raw)
		if err != nil {
			s.deps.Logger.Warn(ctx, "skipping malformed remote row",
				"collection", s.collection, "error", err)
			continue
		}
		if serverID == "" {
			continue
		}

		local, err := repo.FindByServerID(ctx, serverID, ownerID)
		if err != nil {
			return err
		}
		if local == nil {
			if _, err := repo.AddSynced(ctx, ownerID, serverID, fields); err != nil {
				return err
			}
			continue
		}
		if local.SyncStatus != models.SyncSynced {
			// A queued local change still owns this record; replay wins.
			continue
		}
		if err := repo.Put(ctx, local.LocalID, fields); err != nil {
			return err
		}
		if err := store.MarkSynced(ctx, s.collection, local.LocalID, serverID); err != nil {
			return err
		}
	}
	return nil
}
