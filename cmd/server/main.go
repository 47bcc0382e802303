package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/meadery/internal/config"
	"github.com/mamadbah2/meadery/internal/domain/models"
	"github.com/mamadbah2/meadery/internal/repository/mongodb"
	"github.com/mamadbah2/meadery/internal/repository/sheets"
	"github.com/mamadbah2/meadery/internal/scheduler"
	"github.com/mamadbah2/meadery/internal/server/handlers"
	"github.com/mamadbah2/meadery/internal/server/router"
	batchsvc "github.com/mamadbah2/meadery/internal/service/batches"
	favoritesvc "github.com/mamadbah2/meadery/internal/service/favorites"
	reportingsvc "github.com/mamadbah2/meadery/internal/service/reporting"
	"github.com/mamadbah2/meadery/internal/service/syncer"
	"github.com/mamadbah2/meadery/pkg/clients/webhook"
	"github.com/mamadbah2/meadery/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoClient, err := mongodb.NewClient(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb client", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	favoritesColl := mongodb.NewCollection[models.Recipe](mongoClient, "favorites", cfg.Session.UserID, baseLogger.Named("repo.favorites"))
	batchesColl := mongodb.NewCollection[models.Batch](mongoClient, "batches", cfg.Session.UserID, baseLogger.Named("repo.batches"))

	session := syncer.NewSession(cfg.Session.UserID, favoritesColl, batchesColl, baseLogger.Named("syncer"))
	if err := session.Open(context.Background()); err != nil {
		baseLogger.Fatal("failed to open sync session", zap.Error(err))
	}
	defer session.Close()

	favoriteSvc := favoritesvc.NewService(session.Favorites, baseLogger.Named("svc.favorites"))
	batchSvc := batchsvc.NewService(session.Batches, baseLogger.Named("svc.batches"))

	// Initialize the optional digest exporter
	var exporter sheets.Exporter
	if cfg.Sheets.CredentialsPath != "" {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("sheets digest export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, digest export disabled")
	}

	reportingSvc := reportingsvc.NewService(batchSvc, exporter, cfg.Reporting.StaleAfterDays, baseLogger.Named("svc.reporting"))

	// Initialize the optional digest notifier
	var notifier webhook.Notifier
	if cfg.Webhook.URL != "" {
		notifier = webhook.NewClient(cfg.Webhook)
		baseLogger.Info("digest webhook notifications enabled")
	} else {
		baseLogger.Warn("webhook url missing, digest notifications disabled")
	}

	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, notifier, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	calcHandler := handlers.NewCalcHandler(baseLogger.Named("handlers.calc"))
	favoritesHandler := handlers.NewFavoritesHandler(favoriteSvc, baseLogger.Named("handlers.favorites"))
	batchesHandler := handlers.NewBatchesHandler(batchSvc, favoriteSvc, baseLogger.Named("handlers.batches"))
	engine := router.New(calcHandler, favoritesHandler, batchesHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
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
