// Package models defines client-side data models used by the OpticSave
// offline cache: record collections, sync statuses, outbox entries and the
// transport payload variants exchanged with the remote backend.
package models

// Collection identifies one of the mirrored record collections. The values
// are the backend table names and double as local table names, so they are
// safe to interpolate into SQL and URL paths.
type Collection string

const (
	CollectionInventory     Collection = "inventarios"
	CollectionPatients      Collection = "pacientes"
	CollectionDiagnoses     Collection = "diagnosticos"
	CollectionPrescriptions Collection = "prescripciones"
)

// Collections returns all mirrored collections in the order the
// synchronizer processes them.
func Collections() []Collection {
	return []Collection{
		CollectionInventory,
		CollectionPatients,
		CollectionDiagnoses,
		CollectionPrescriptions,
	}
}

// Valid reports whether c is one of the known collections.
func (c Collection) Valid() bool {
	switch c {
	case CollectionInventory, CollectionPatients, CollectionDiagnoses, CollectionPrescriptions:
		return true
	}
	return false
}

// SyncStatus reflects the last known reconciliation state of a local record.
// It is tracked independently from the status of any outbox entry that
// references the record.
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSynced  SyncStatus = "synced"
	SyncFailed  SyncStatus = "failed"
)

// Operation is the kind of mutation carried by an outbox entry.
type Operation string

const (
	OpInsert Operation = "insert"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Valid reports whether op is a known mutation kind.
func (op Operation) Valid() bool {
	return op == OpInsert || op == OpUpdate || op == OpDelete
}
