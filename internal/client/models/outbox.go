package models

import (
	"encoding/json"
	"time"
)

// EntryStatus is the replay state of an outbox entry.
type EntryStatus string

const (
	EntryPending EntryStatus = "pending"
	EntrySynced  EntryStatus = "synced"
	EntryFailed  EntryStatus = "failed"
)

// OutboxEntry is a queued mutation intent awaiting remote application.
// Entries are replayed strictly in ID order per collection; CreatedAt is
// informational only. Payload is a snapshot taken at enqueue time, not a
// live reference to the record.
type OutboxEntry struct {
	// ID is the auto-assigned, monotonically increasing surrogate that
	// defines replay order within a collection.
	ID int64

	// OpKey is a client-generated unique key for this mutation, sent to the
	// remote API so a replayed create can be recognized as a duplicate.
	OpKey string

	Collection Collection
	Operation  Operation

	// LocalID references the local record the mutation belongs to.
	LocalID int64

	// ServerID is the remote id the mutation targets. Required for update
	// and delete; may still be empty at enqueue time if the record's insert
	// has not been acknowledged yet.
	ServerID string

	Payload   json.RawMessage
	Status    EntryStatus
	Error     string
	CreatedAt time.Time
}
