package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/remote"
)

// Login asks for the access token, attaches it to the remote client and
// resolves the owning account. When the remote is unreachable, a cached
// identity from a previous session keeps the client usable offline.
func (a *App) Login(ctx context.Context) error {
	token, err := GetSecret(os.Stdout, "Access token")
	if err != nil {
		return err
	}
	if token != "" {
		a.remote.SetToken(token)
	}

	ownerID, err := a.session.Login(ctx)
	if err != nil {
		if errors.Is(err, remote.ErrUnauthorized) {
			fmt.Println("Login rejected: check your token and api key.")
		} else {
			fmt.Println("Login failed:", err)
		}
		return err
	}

	a.ownerID = ownerID
	fmt.Println("Logged in as", ownerID)
	return nil
}

// Logout drops the session. Queued changes stay in the outbox and replay
// after the next login.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.ownerID = ""
	a.remote.SetToken("")
	fmt.Println("Logged out.")
	return nil
}

// confirmOffline is registered with the connectivity monitor. It only
// announces the situation; acceptance happens through the explicit
// 'offline' command so the prompt never fights the REPL for stdin.
func (a *App) confirmOffline(ctx context.Context) bool {
	fmt.Println("Remote unreachable. Type 'offline' to keep working offline; changes will be queued and synced later.")
	return false
}
