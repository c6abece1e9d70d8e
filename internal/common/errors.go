// Package common defines shared sentinel errors used across the client
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Write-path policy errors.
	ErrOfflineNotAccepted = errors.New("offline mode not accepted")
	ErrNoSession          = errors.New("no owner session available")

	// Replay defects: an update or delete was queued without the server id
	// it needs, and it could not be resolved from an earlier insert.
	ErrMissingServerID = errors.New("missing server id")
)
