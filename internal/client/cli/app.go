// Package cli wires the client together and drives the interactive
// read-eval-print loop.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"net/http"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/config"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/connectivity"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/remote"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/repositories"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/repositories/metadata"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/services"
	synckit "github.com/andresMonthn/OpticSave-sub000/internal/client/sync"
	"github.com/andresMonthn/OpticSave-sub000/internal/logging"
	"github.com/andresMonthn/OpticSave-sub000/internal/metrics"
)

// App is the composition root: it owns the database handle, the remote
// client, the connectivity monitor and the collection facades, and hands
// them to the REPL. Everything is wired explicitly here; no package keeps
// its own singleton.
type App struct {
	config  *config.Config
	db      *sql.DB
	remote  *remote.RESTClient
	logger  logging.Logger
	monitor *connectivity.Monitor
	session *services.SessionService
	sync    *synckit.Synchronizer

	inventory     *services.InventoryService
	patients      *services.PatientService
	diagnoses     *services.DiagnosisService
	prescriptions *services.PrescriptionService

	reader  *bufio.Reader
	ownerID string
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := repositories.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error(ctx, "failed to initialize local database", "path", cfg.DatabasePath, "error", err)
		return nil, err
	}

	rc := remote.NewRESTClient(cfg.BaseURL, cfg.APIKey)
	meta := metadata.NewSQLiteRepository(db)
	session := services.NewSessionService(rc, meta, logger)
	sy := synckit.New(db, rc, logger, cfg.RetryFailedOnSync)
	monitor := connectivity.New(rc, sy, meta, logger, cfg.AutoAcceptOffline)

	deps := services.Deps{
		DB:      db,
		Remote:  rc,
		Monitor: monitor,
		Session: session,
		Logger:  logger,
	}

	app := &App{
		config:        cfg,
		db:            db,
		remote:        rc,
		logger:        logger,
		monitor:       monitor,
		session:       session,
		sync:          sy,
		inventory:     services.NewInventoryService(deps),
		patients:      services.NewPatientService(deps),
		diagnoses:     services.NewDiagnosisService(deps),
		prescriptions: services.NewPrescriptionService(deps),
		reader:        bufio.NewReader(os.Stdin),
	}

	sy.AddPuller(app.inventory)
	sy.AddPuller(app.patients)
	sy.AddPuller(app.diagnoses)
	sy.AddPuller(app.prescriptions)

	monitor.SetConfirm(app.confirmOffline)

	if err := monitor.Restore(ctx); err != nil {
		logger.Warn(ctx, "failed to restore sync bookkeeping", "error", err)
	}

	return app, nil
}

// Run starts the optional metrics endpoint, the connectivity watcher and
// the command loop, and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.config.MetricsAddr != "" {
		go a.serveMetrics(ctx)
	}

	go a.monitor.StartWatcher(ctx, a.config.OnlineCheckInterval)

	a.Root(ctx)
}

// Close releases the database and remote client.
func (a *App) Close() {
	if err := a.remote.Close(); err != nil {
		a.logger.Warn(context.Background(), "failed to close remote client", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(context.Background(), "failed to close database", "error", err)
	}
}

func (a *App) serveMetrics(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: a.config.MetricsAddr, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	a.logger.Info(ctx, "metrics endpoint listening", "addr", a.config.MetricsAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		a.logger.Error(ctx, "metrics endpoint failed", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.ownerID != ""
}
