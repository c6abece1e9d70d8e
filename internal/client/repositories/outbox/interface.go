package outbox

import (
	"context"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/models"
)

// Repository is the durable intent log of mutations that could not be (or
// should not yet be) applied remotely.
type Repository interface {
	// Enqueue appends a new pending entry and returns its id. Enqueueing
	// never deduplicates: two identical payloads produce two entries and
	// both are replayed.
	Enqueue(ctx context.Context, e *models.OutboxEntry) (int64, error)

	// PendingFor returns the entries awaiting replay for one collection,
	// ordered by entry id ascending. When includeFailed is true, entries
	// that failed a previous pass are scanned again as well.
	PendingFor(ctx context.Context, c models.Collection, includeFailed bool) ([]models.OutboxEntry, error)

	// MarkSynced records a successful replay. Marking an already-synced
	// entry is a no-op.
	MarkSynced(ctx context.Context, id int64) error

	// MarkFailed records a replay failure with its cause. Only pending
	// entries transition; terminal entries are left untouched.
	MarkFailed(ctx context.Context, id int64, cause string) error

	// CountPending returns the backlog size for one collection.
	CountPending(ctx context.Context, c models.Collection) (int64, error)
}
