package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/models"
	"github.com/andresMonthn/OpticSave-sub000/internal/dbx"
	"github.com/google/uuid"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Enqueue(ctx context.Context, e *models.OutboxEntry) (int64, error) {
	if !e.Collection.Valid() {
		return 0, fmt.Errorf("unknown collection %q", e.Collection)
	}
	if !e.Operation.Valid() {
		return 0, fmt.Errorf("unknown operation %q", e.Operation)
	}

	opKey := e.OpKey
	if opKey == "" {
		opKey = uuid.NewString()
	}
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `INSERT INTO outbox (op_key, collection, operation, local_id, server_id, payload, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		opKey, string(e.Collection), string(e.Operation), e.LocalID,
		nullable(e.ServerID), string(e.Payload), string(models.EntryPending),
		createdAt.Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue outbox entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get outbox entry id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) PendingFor(ctx context.Context, c models.Collection, includeFailed bool) ([]models.OutboxEntry, error) {
	statuses := []any{string(c), string(models.EntryPending)}
	cond := `status = ?`
	if includeFailed {
		cond = `status IN (?, ?)`
		statuses = append(statuses, string(models.EntryFailed))
	}

	query := fmt.Sprintf(`SELECT id, op_key, collection, operation, local_id, server_id, payload, status, error, created_at
			FROM outbox WHERE collection = ? AND %s ORDER BY id ASC`, cond)
	rows, err := r.db.QueryContext(ctx, query, statuses...)
	if err != nil {
		return nil, fmt.Errorf("failed to select outbox entries: %w", err)
	}
	defer rows.Close()

	var result []models.OutboxEntry
	for rows.Next() {
		var (
			e         models.OutboxEntry
			serverID  sql.NullString
			payload   string
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.OpKey, &e.Collection, &e.Operation, &e.LocalID,
			&serverID, &payload, &e.Status, &e.Error, &createdAt); err != nil {
			return nil, err
		}
		e.ServerID = serverID.String
		e.Payload = []byte(payload)
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = ts
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	query := `UPDATE outbox SET status = ?, error = '' WHERE id = ? AND status != ?`
	_, err := r.db.ExecContext(ctx, query, string(models.EntrySynced), id, string(models.EntrySynced))
	if err != nil {
		return fmt.Errorf("failed to mark outbox entry %d synced: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) MarkFailed(ctx context.Context, id int64, cause string) error {
	query := `UPDATE outbox SET status = ?, error = ? WHERE id = ? AND status = ?`
	_, err := r.db.ExecContext(ctx, query, string(models.EntryFailed), cause, id, string(models.EntryPending))
	if err != nil {
		return fmt.Errorf("failed to mark outbox entry %d failed: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) CountPending(ctx context.Context, c models.Collection) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM outbox WHERE collection = ? AND status = ?`,
		string(c), string(models.EntryPending)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending entries: %w", err)
	}
	return n, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
