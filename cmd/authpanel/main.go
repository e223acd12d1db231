package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Goofygiraffe06/authpanel/api"
	"github.com/Goofygiraffe06/authpanel/internal/auth"
	"github.com/Goofygiraffe06/authpanel/internal/config"
	"github.com/Goofygiraffe06/authpanel/internal/controller"
	"github.com/Goofygiraffe06/authpanel/internal/form"
	"github.com/Goofygiraffe06/authpanel/internal/logging"
	"github.com/Goofygiraffe06/authpanel/internal/manager"
	"github.com/Goofygiraffe06/authpanel/internal/panel"
	"github.com/Goofygiraffe06/authpanel/internal/theme"
	"github.com/Goofygiraffe06/authpanel/store"
	"github.com/Goofygiraffe06/authpanel/store/ephemeral"
)

func main() {
	f, err := logging.InitLogger(config.LogFile())
	if err != nil {
		// No logger yet, so there is nowhere else to report this.
		panic("Failed to initialize logger: " + err.Error())
	}
	defer f.Close()
	defer logging.Sync()

	logging.InfoLog("Starting authpanel server")

	dbFile := config.DBPath()
	db, err := store.NewSQLiteStore(dbFile)
	if err != nil {
		logging.FatalLog("Failed to open DB: %v", err)
	}
	defer db.Close()
	if err := os.Chmod(dbFile, 0600); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.ErrorLog("Failed to set restrictive permissions on %s: %v", dbFile, err)
	}
	logging.InfoLog("Connected to SQLite database: %s", dbFile)

	ctx := context.Background()
	prefs, err := theme.Load(ctx, db, config.SystemPrefersDark())
	if err != nil {
		logging.FatalLog("Failed to load theme preference: %v", err)
	}

	mgr := manager.NewWorkManager()
	defer mgr.Close()

	var authenticator form.Authenticator
	switch config.AuthMode() {
	case config.AuthModeSimulated:
		authenticator = form.NewSimulated(config.LoginDelay(), config.SignupDelay())
		logging.WarnLog("Authentication is simulated; no accounts are checked")
	default:
		key, err := auth.NewSigningKey()
		if err != nil {
			logging.FatalLog("Failed to create signing key: %v", err)
		}
		issuer := auth.NewIssuer(key, config.TokenIssuer(), config.TokenExpiresIn())
		authenticator = auth.NewService(db, issuer, mgr)
	}

	registry := controller.NewRegistry()
	panels := ephemeral.New(ephemeral.WithOnEvict(func(id string, p *panel.Panel) {
		p.Close()
	}))
	defer panels.Close()

	deps := &api.Deps{
		Panels:   panels,
		Factory:  panel.NewFactory(authenticator, form.WithTimeout(config.SubmitTimeout())),
		Registry: registry,
		Theme:    prefs,
		TTL:      config.PanelTTL(),
		MaxBody:  config.MaxRequestBodyBytes(),
	}

	srv := &http.Server{
		Addr:              ":" + config.Port(),
		Handler:           api.NewRouter(deps, config.CORSAllowedOrigins()),
		ReadTimeout:       config.ServerReadTimeout(),
		ReadHeaderTimeout: config.ServerReadHeaderTimeout(),
		WriteTimeout:      config.ServerWriteTimeout(),
		IdleTimeout:       config.ServerIdleTimeout(),
	}

	go func() {
		logging.InfoLog("authpanel server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.FatalLog("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logging.InfoLog("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLog("Graceful shutdown failed: %v", err)
	}
}
