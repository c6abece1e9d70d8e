package metadata

import "context"

// Well-known metadata keys.
const (
	KeyOwnerID    = "owner_id"
	KeyLastSyncAt = "last_sync_at"
)

// Repository is a small durable key/value store used for client identity
// and sync bookkeeping.
type Repository interface {
	// Get returns the value for key, or nil if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
