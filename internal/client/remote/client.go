// Package remote defines the boundary contract with the hosted backend and
// an HTTP implementation of it. The core depends only on this interface;
// tests substitute fakes that record call order.
package remote

import (
	"context"
	"encoding/json"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/models"
)

// Client is the consumed surface of the remote API.
type Client interface {
	// Create inserts a row and returns the server-assigned id. opKey is a
	// client-generated idempotency key so a replayed create is recognized
	// as a duplicate rather than inserted twice.
	Create(ctx context.Context, c models.Collection, opKey string, p models.Payload) (string, error)

	// Update patches the row identified by its server id.
	Update(ctx context.Context, c models.Collection, serverID string, p models.Payload) error

	// Delete removes the row identified by its server id.
	Delete(ctx context.Context, c models.Collection, serverID string) error

	// QueryByOwner returns all rows of a collection belonging to an owner,
	// as raw JSON objects for the mapper to decode.
	QueryByOwner(ctx context.Context, c models.Collection, ownerID string) ([]json.RawMessage, error)

	// CurrentUser returns the id of the authenticated account.
	CurrentUser(ctx context.Context) (string, error)

	// Ping checks remote reachability.
	Ping(ctx context.Context) error

	Close() error
}
