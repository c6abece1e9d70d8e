package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/models"
	"github.com/andresMonthn/OpticSave-sub000/internal/dbx"
)

// SQLiteRepository implements typed CRUD for one collection using a DBTX
// (either *sql.DB or *sql.Tx).
type SQLiteRepository[F models.FieldsOf[F]] struct {
	db    dbx.DBTX
	table string
}

// NewSQLiteRepository returns a repository bound to the given DBTX. The
// target table is derived from the fields type.
func NewSQLiteRepository[F models.FieldsOf[F]](db dbx.DBTX) *SQLiteRepository[F] {
	var zero F
	return &SQLiteRepository[F]{db: db, table: string(zero.Collection())}
}

// Add inserts a new record with sync_status=pending and no server id, and
// returns the assigned local id. It never touches the network.
func (r *SQLiteRepository[F]) Add(ctx context.Context, ownerID string, f F) (int64, error) {
	return r.insert(ctx, ownerID, "", models.SyncPending, f)
}

// AddSynced inserts a record that already exists remotely (used when
// reconciling remote rows into the local store).
func (r *SQLiteRepository[F]) AddSynced(ctx context.Context, ownerID, serverID string, f F) (int64, error) {
	return r.insert(ctx, ownerID, serverID, models.SyncSynced, f)
}

func (r *SQLiteRepository[F]) insert(ctx context.Context, ownerID, serverID string, status models.SyncStatus, f F) (int64, error) {
	fields, err := json.Marshal(f)
	if err != nil {
		return 0, fmt.Errorf("failed to encode fields: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (server_id, owner_id, fields, sync_status, updated_at)
			VALUES (?, ?, ?, ?, ?)`, r.table)
	res, err := r.db.ExecContext(ctx, query,
		nullable(serverID), ownerID, string(fields), string(status), now())
	if err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", r.table, err)
	}

	localID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get local id: %w", err)
	}
	return localID, nil
}

// Get returns the record with the given local id, or nil if it does not
// exist.
func (r *SQLiteRepository[F]) Get(ctx context.Context, localID int64) (*models.Record[F], error) {
	query := fmt.Sprintf(`SELECT local_id, server_id, owner_id, fields, sync_status, updated_at
			FROM %s WHERE local_id = ?`, r.table)
	rec, err := r.scanRecord(r.db.QueryRowContext(ctx, query, localID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s[%d]: %w", r.table, localID, err)
	}
	return rec, nil
}

// Update merges the set fields of patch into the stored record. A missing
// local id is a silent no-op; callers that care must Get first.
func (r *SQLiteRepository[F]) Update(ctx context.Context, localID int64, patch F) error {
	cur, err := r.Get(ctx, localID)
	if err != nil {
		return err
	}
	if cur == nil {
		return nil
	}
	return r.writeFields(ctx, localID, cur.Fields.MergedWith(patch))
}

// Put replaces the stored fields wholesale. Used by reconciliation, where
// the remote row is authoritative.
func (r *SQLiteRepository[F]) Put(ctx context.Context, localID int64, f F) error {
	return r.writeFields(ctx, localID, f)
}

func (r *SQLiteRepository[F]) writeFields(ctx context.Context, localID int64, f F) error {
	fields, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode fields: %w", err)
	}
	query := fmt.Sprintf(`UPDATE %s SET fields = ?, updated_at = ? WHERE local_id = ?`, r.table)
	if _, err := r.db.ExecContext(ctx, query, string(fields), now(), localID); err != nil {
		return fmt.Errorf("failed to update %s[%d]: %w", r.table, localID, err)
	}
	return nil
}

// Delete removes the record. Deleting a missing local id is a no-op.
func (r *SQLiteRepository[F]) Delete(ctx context.Context, localID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE local_id = ?`, r.table)
	if _, err := r.db.ExecContext(ctx, query, localID); err != nil {
		return fmt.Errorf("failed to delete %s[%d]: %w", r.table, localID, err)
	}
	return nil
}

// List returns all records ordered by local id ascending. Each call runs a
// fresh query.
func (r *SQLiteRepository[F]) List(ctx context.Context) ([]models.Record[F], error) {
	query := fmt.Sprintf(`SELECT local_id, server_id, owner_id, fields, sync_status, updated_at
			FROM %s ORDER BY local_id ASC`, r.table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table, err)
	}
	defer rows.Close()

	var result []models.Record[F]
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// FindByServerID returns the record carrying the given server id for the
// owner, or nil if the row is not mirrored locally.
func (r *SQLiteRepository[F]) FindByServerID(ctx context.Context, serverID, ownerID string) (*models.Record[F], error) {
	query := fmt.Sprintf(`SELECT local_id, server_id, owner_id, fields, sync_status, updated_at
			FROM %s WHERE server_id = ? AND owner_id = ?`, r.table)
	rec, err := r.scanRecord(r.db.QueryRowContext(ctx, query, serverID, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find %s by server id: %w", r.table, err)
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteRepository[F]) scanRecord(row rowScanner) (*models.Record[F], error) {
	var (
		rec       models.Record[F]
		serverID  sql.NullString
		fields    string
		status    string
		updatedAt string
	)
	if err := row.Scan(&rec.LocalID, &serverID, &rec.OwnerID, &fields, &status, &updatedAt); err != nil {
		return nil, err
	}
	rec.ServerID = serverID.String
	rec.SyncStatus = models.SyncStatus(status)
	if err := json.Unmarshal([]byte(fields), &rec.Fields); err != nil {
		return nil, fmt.Errorf("failed to decode fields: %w", err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		rec.UpdatedAt = ts
	}
	return &rec, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
