package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/models"
	"github.com/andresMonthn/OpticSave-sub000/internal/dbx"
)

// Store manipulates the bookkeeping columns shared by every collection
// table. It lets the synchronizer attach server ids and flip sync statuses
// without knowing the typed field sets.
type Store struct {
	db dbx.DBTX
}

func NewStore(db dbx.DBTX) *Store {
	return &Store{db: db}
}

// MarkSynced sets sync_status=synced and attaches serverID if the record
// does not have one yet. An existing server id is never overwritten. The
// record may have been deleted locally in the meantime; that is a no-op.
func (s *Store) MarkSynced(ctx context.Context, c models.Collection, localID int64, serverID string) error {
	if !c.Valid() {
		return fmt.Errorf("unknown collection %q", c)
	}
	query := fmt.Sprintf(`UPDATE %s SET sync_status = ?,
			server_id = CASE WHEN server_id IS NULL OR server_id = '' THEN ? ELSE server_id END
			WHERE local_id = ?`, c)
	_, err := s.db.ExecContext(ctx, query, string(models.SyncSynced), nullable(serverID), localID)
	if err != nil {
		return fmt.Errorf("failed to mark %s[%d] synced: %w", c, localID, err)
	}
	return nil
}

// MarkStatus sets the record's sync status without touching the server id.
func (s *Store) MarkStatus(ctx context.Context, c models.Collection, localID int64, status models.SyncStatus) error {
	if !c.Valid() {
		return fmt.Errorf("unknown collection %q", c)
	}
	query := fmt.Sprintf(`UPDATE %s SET sync_status = ? WHERE local_id = ?`, c)
	if _, err := s.db.ExecContext(ctx, query, string(status), localID); err != nil {
		return fmt.Errorf("failed to mark %s[%d] %s: %w", c, localID, status, err)
	}
	return nil
}

// ServerIDOf returns the server id of a local record, or "" when the record
// is missing or has never been acknowledged remotely.
func (s *Store) ServerIDOf(ctx context.Context, c models.Collection, localID int64) (string, error) {
	if !c.Valid() {
		return "", fmt.Errorf("unknown collection %q", c)
	}
	query := fmt.Sprintf(`SELECT server_id FROM %s WHERE local_id = ?`, c)
	var serverID sql.NullString
	err := s.db.QueryRowContext(ctx, query, localID).Scan(&serverID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read server id of %s[%d]: %w", c, localID, err)
	}
	return serverID.String, nil
}
