// Package records provides the client-side persistence layer for the four
// mirrored record collections.
//
// # Overview
//
// SQLiteRepository is a typed repository over one collection table; the
// collection (and therefore the table) is derived from the fields type
// parameter. Domain fields are stored as a JSON document in a single
// column, next to the common bookkeeping columns (local_id, server_id,
// owner_id, sync_status, updated_at).
//
// Store operates on the bookkeeping columns only and works across all
// collections; the synchronizer uses it to attach server ids and flip sync
// statuses without caring about the typed field sets.
//
// # Identity
//
// local_id is assigned by sqlite (AUTOINCREMENT), strictly increasing per
// collection and never reused. server_id is written once, when the remote
// system first acknowledges the record, and is never overwritten after
// that.
package records
