package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/clinicdesk/internal/access"
	"github.com/MrJamesThe3rd/clinicdesk/internal/billing"
	billingStore "github.com/MrJamesThe3rd/clinicdesk/internal/billing/store"
	"github.com/MrJamesThe3rd/clinicdesk/internal/catalog"
	catalogStore "github.com/MrJamesThe3rd/clinicdesk/internal/catalog/store"
	"github.com/MrJamesThe3rd/clinicdesk/internal/config"
	"github.com/MrJamesThe3rd/clinicdesk/internal/database"
	"github.com/MrJamesThe3rd/clinicdesk/internal/eodnote"
	eodStore "github.com/MrJamesThe3rd/clinicdesk/internal/eodnote/store"
	"github.com/MrJamesThe3rd/clinicdesk/internal/export"
	clinicHttp "github.com/MrJamesThe3rd/clinicdesk/internal/http"
	accessHandler "github.com/MrJamesThe3rd/clinicdesk/internal/http/access"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/auth"
	billingHandler "github.com/MrJamesThe3rd/clinicdesk/internal/http/billing"
	catalogHandler "github.com/MrJamesThe3rd/clinicdesk/internal/http/catalog"
	eodHandler "github.com/MrJamesThe3rd/clinicdesk/internal/http/eodnote"
	exportHandler "github.com/MrJamesThe3rd/clinicdesk/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/clinicdesk/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/clinicdesk/internal/http/matching"
	membershipHandler "github.com/MrJamesThe3rd/clinicdesk/internal/http/membership"
	pettyCashHandler "github.com/MrJamesThe3rd/clinicdesk/internal/http/pettycash"
	"github.com/MrJamesThe3rd/clinicdesk/internal/importer"
	"github.com/MrJamesThe3rd/clinicdesk/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/clinicdesk/internal/matching/store"
	"github.com/MrJamesThe3rd/clinicdesk/internal/membership"
	membershipStore "github.com/MrJamesThe3rd/clinicdesk/internal/membership/store"
	"github.com/MrJamesThe3rd/clinicdesk/internal/pettycash"
	pettyCashStore "github.com/MrJamesThe3rd/clinicdesk/internal/pettycash/store"
	"github.com/MrJamesThe3rd/clinicdesk/internal/upstream"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	var (
		accessService     = access.NewService(upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout))
		billingService    = billing.NewService(billingStore.New(db))
		membershipService = membership.NewService(membershipStore.New(db))
		pettyCashService  = pettycash.NewService(pettyCashStore.New(db))
		eodService        = eodnote.NewService(eodStore.New(db))
		catalogService    = catalog.NewService(catalogStore.New(db))
		matchingService   = matching.NewService(matchingStore.New(db))
		importService     = importer.NewService()
		exportService     = export.NewService(pettyCashService, cfg.Receipts.Token, cfg.Receipts.Timeout)
	)

	gate := auth.NewGate(accessService)

	router := clinicHttp.New(
		clinicHttp.Options{AllowedOrigins: cfg.CORS.AllowedOrigins, Timeout: cfg.Server.Timeout},
		auth.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
		clinicHttp.Handlers{
			Access:     accessHandler.NewHandler(accessService),
			Billing:    billingHandler.NewHandler(billingService, gate),
			Membership: membershipHandler.NewHandler(membershipService, gate),
			PettyCash:  pettyCashHandler.NewHandler(pettyCashService, gate),
			EODNotes:   eodHandler.NewHandler(eodService, gate),
			Catalog:    catalogHandler.NewHandler(catalogService, gate),
			Import:     importHandler.NewHandler(importService, catalogService, matchingService, gate),
			Matching:   matchingHandler.NewHandler(matchingService, gate),
			Export:     exportHandler.NewHandler(exportService, gate),
		},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
