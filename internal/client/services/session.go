// Package services implements the application-facing operations: session
// handling and the per-collection facades that coordinate local storage,
// the outbox and the remote API.
package services

import (
	"context"
	"errors"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/remote"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/repositories/metadata"
	"github.com/andresMonthn/OpticSave-sub000/internal/common"
	"github.com/andresMonthn/OpticSave-sub000/internal/logging"
)

// SessionService resolves the owning account and caches it locally so the
// client can keep working (and attributing records) while offline.
type SessionService struct {
	remote remote.Client
	meta   metadata.Repository
	logger logging.Logger
}

func NewSessionService(rc remote.Client, meta metadata.Repository, logger logging.Logger) *SessionService {
	return &SessionService{remote: rc, meta: meta, logger: logger}
}

// Login resolves the authenticated account against the remote API and
// caches its id. When the remote is unreachable, a previously cached
// identity is reused so the session survives an offline start.
func (s *SessionService) Login(ctx context.Context) (string, error) {
	ownerID, err := s.remote.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, remote.ErrUnavailable) {
			cached, merr := s.meta.Get(ctx, metadata.KeyOwnerID)
			if merr == nil && cached != nil {
				s.logger.Warn(ctx, "remote unreachable, reusing cached identity")
				return string(cached), nil
			}
		}
		return "", err
	}
	if err := s.meta.Set(ctx, metadata.KeyOwnerID, []byte(ownerID)); err != nil {
		return "", err
	}
	return ownerID, nil
}

// OwnerID returns the cached account id, or ErrNoSession when nobody has
// logged in on this device yet.
func (s *SessionService) OwnerID(ctx context.Context) (string, error) {
	raw, err := s.meta.Get(ctx, metadata.KeyOwnerID)
	if err != nil {
		return "", err
	}
	if raw == nil {
		return "", common.ErrNoSession
	}
	return string(raw), nil
}

// Logout drops the cached identity. Queued outbox entries are left intact.
func (s *SessionService) Logout(ctx context.Context) error {
	return s.meta.Delete(ctx, metadata.KeyOwnerID)
}
