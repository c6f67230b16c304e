package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/config"
	"github.com/mamadbah2/coopledger/internal/observability"
	"github.com/mamadbah2/coopledger/internal/repository"
	"github.com/mamadbah2/coopledger/internal/repository/memory"
	"github.com/mamadbah2/coopledger/internal/repository/mongodb"
	"github.com/mamadbah2/coopledger/internal/repository/sheets"
	"github.com/mamadbah2/coopledger/internal/scheduler"
	"github.com/mamadbah2/coopledger/internal/server/handlers"
	"github.com/mamadbah2/coopledger/internal/server/router"
	authsvc "github.com/mamadbah2/coopledger/internal/service/auth"
	exportsvc "github.com/mamadbah2/coopledger/internal/service/export"
	kpisvc "github.com/mamadbah2/coopledger/internal/service/kpi"
	maintenancesvc "github.com/mamadbah2/coopledger/internal/service/maintenance"
	recordssvc "github.com/mamadbah2/coopledger/internal/service/records"
	reportingsvc "github.com/mamadbah2/coopledger/internal/service/reporting"
	userssvc "github.com/mamadbah2/coopledger/internal/service/users"
	"github.com/mamadbah2/coopledger/pkg/clients/webhook"
	"github.com/mamadbah2/coopledger/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level, "coopledger"))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var store repository.Store
	switch cfg.Store.Driver {
	case config.StoreMemory:
		baseLogger.Warn("using in-memory store, data is lost on restart")
		store = memory.NewStore()
	case config.StoreMongoDB:
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, logger.Named(baseLogger, "repo.mongodb"))
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		store = mongoRepo.Store()
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
	} else {
		baseLogger.Info("google sheets export disabled")
	}

	tokens := authsvc.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	authService := authsvc.NewService(store.Users, tokens, logger.Named(baseLogger, "svc.auth"))
	recordsService := recordssvc.NewService(store, logger.Named(baseLogger, "svc.records"))
	kpiService := kpisvc.NewService(store, logger.Named(baseLogger, "svc.kpi"))
	usersService := userssvc.NewService(store.Users, logger.Named(baseLogger, "svc.users"))
	maintenanceService := maintenancesvc.NewService(store, logger.Named(baseLogger, "svc.maintenance"))
	exportService := exportsvc.NewService(store.ProductionLogs, sheetsRepo, logger.Named(baseLogger, "svc.export"))

	h := router.Handlers{
		Auth:           handlers.NewAuthHandler(authService, logger.Named(baseLogger, "handlers.auth")),
		Cooperatives:   handlers.NewCooperativeHandler(recordsService, kpiService, logger.Named(baseLogger, "handlers.cooperatives")),
		ProductionLogs: handlers.NewProductionLogHandler(recordsService, logger.Named(baseLogger, "handlers.production_logs")),
		Nonconformity:  handlers.NewNonconformityHandler(recordsService, logger.Named(baseLogger, "handlers.nonconformities")),
		KPIs:           handlers.NewKPIHandler(kpiService, logger.Named(baseLogger, "handlers.kpis")),
		Farms:          handlers.NewFarmHandler(recordsService, logger.Named(baseLogger, "handlers.farms")),
		Users:          handlers.NewUserHandler(usersService, logger.Named(baseLogger, "handlers.users")),
		Maintenance:    handlers.NewMaintenanceHandler(maintenanceService, exportService, logger.Named(baseLogger, "handlers.maintenance")),
	}

	opts := router.Options{CORSOrigins: cfg.Server.CORSOrigins}
	if cfg.Metrics.Enabled {
		opts.Metrics = observability.NewMetrics()
	}
	engine := router.New(h, authService, opts, logger.Named(baseLogger, "router"))

	if cfg.Digest.Enabled() {
		var notifier scheduler.Notifier
		if cfg.Digest.WebhookURL != "" {
			notifier = webhook.NewClient(cfg.Digest.WebhookURL)
		} else {
			baseLogger.Warn("DIGEST_WEBHOOK_URL missing, kpi digest will only be logged")
		}

		reportingService := reportingsvc.NewService(kpiService, logger.Named(baseLogger, "svc.reporting"))
		sched, err := scheduler.NewScheduler(cfg.Digest, reportingService, notifier, logger.Named(baseLogger, "scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
