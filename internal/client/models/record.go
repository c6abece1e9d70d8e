package models

import "time"

// Record is a row held in the local store. The local store owns LocalID; it
// is assigned on insert, strictly increasing per collection, and never
// reused. ServerID stays empty until the remote system acknowledges the
// record, and once set it never changes.
type Record[F FieldsOf[F]] struct {
	// LocalID is the surrogate key assigned by the local store.
	LocalID int64

	// ServerID is the identifier assigned by the remote system. Empty means
	// the record has never been acknowledged remotely.
	ServerID string

	// OwnerID identifies the owning account. Set at creation, immutable.
	OwnerID string

	// SyncStatus is the last known reconciliation state of this record.
	SyncStatus SyncStatus

	// UpdatedAt is the last local modification time in UTC.
	UpdatedAt time.Time

	// Fields holds the entity-specific domain fields.
	Fields F
}

// FieldsOf constrains the domain field set of a collection. Every field is
// independently nullable, so patches are expressed as the same struct with
// only the fields to change set.
type FieldsOf[F any] interface {
	// Collection returns the collection these fields belong to.
	Collection() Collection

	// MergedWith returns a copy with every set (non-nil) field of patch
	// overlaid onto the receiver.
	MergedWith(patch F) F
}
