package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/models"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/repositories/outbox"
	"github.com/andresMonthn/OpticSave-sub000/internal/common"
)

func (a *App) printStatus(ctx context.Context) {
	fmt.Println("Mode:", a.monitor.State())
	if a.ownerID != "" {
		fmt.Println("Owner:", a.ownerID)
	}
	if last := a.monitor.LastSyncAt(); !last.IsZero() {
		fmt.Println("Last sync:", last.Format(time.RFC3339))
	} else {
		fmt.Println("Last sync: never")
	}

	ob := outbox.NewSQLiteRepository(a.db)
	for _, c := range models.Collections() {
		n, err := ob.CountPending(ctx, c)
		if err != nil {
			a.logger.Error(ctx, "failed to count backlog", "collection", c, "error", err)
			continue
		}
		if n > 0 {
			fmt.Printf("Pending %s: %d\n", c, n)
		}
	}
}

func (a *App) syncNow(ctx context.Context) {
	if !a.monitor.IsOnline() {
		fmt.Println("Cannot sync: remote unreachable.")
		return
	}
	results, err := a.sync.SyncAll(ctx)
	for _, b := range results {
		if len(b.Results) == 0 {
			continue
		}
		fmt.Printf("%s: %d replayed, %d failed\n", b.Collection, len(b.Results), b.Failed())
	}
	if err != nil {
		fmt.Println("Sync finished with errors:", err)
		return
	}
	fmt.Println("Sync complete.")
}

func (a *App) refresh(ctx context.Context) {
	if !a.monitor.IsOnline() {
		fmt.Println("Cannot refresh: remote unreachable.")
		return
	}
	for _, p := range []interface {
		Collection() models.Collection
		Refresh(ctx context.Context) error
	}{a.inventory, a.patients, a.diagnoses, a.prescriptions} {
		if err := p.Refresh(ctx); err != nil {
			fmt.Printf("Refresh %s failed: %v\n", p.Collection(), err)
			continue
		}
		fmt.Printf("Refreshed %s.\n", p.Collection())
	}
}

// reportWriteError translates facade errors into user-facing messages.
func reportWriteError(err error) {
	switch {
	case errors.Is(err, common.ErrOfflineNotAccepted):
		fmt.Println("Remote unreachable. Type 'offline' first to queue changes for later sync.")
	case errors.Is(err, common.ErrNoSession):
		fmt.Println("Not logged in.")
	case errors.Is(err, common.ErrNotFound):
		fmt.Println("No such record.")
	default:
		fmt.Println("Error:", err)
	}
}

func strOr(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func intOr(n *int64) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}

func decOr(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func syncMark(s models.SyncStatus) string {
	switch s {
	case models.SyncSynced:
		return " "
	case models.SyncFailed:
		return "!"
	default:
		return "*"
	}
}
