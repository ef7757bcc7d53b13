package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/warewise/slotkeeper/internal/config"
	"github.com/warewise/slotkeeper/internal/domain/layout"
	"github.com/warewise/slotkeeper/internal/repository/mongodb"
	"github.com/warewise/slotkeeper/internal/repository/sheets"
	"github.com/warewise/slotkeeper/internal/scheduler"
	"github.com/warewise/slotkeeper/internal/server/handlers"
	"github.com/warewise/slotkeeper/internal/server/router"
	reportingsvc "github.com/warewise/slotkeeper/internal/service/reporting"
	"github.com/warewise/slotkeeper/internal/service/transactions"
	"github.com/warewise/slotkeeper/pkg/clients/labelprint"
	"github.com/warewise/slotkeeper/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	warehouseLayout := layout.Default()

	// Initialize spreadsheet export when configured
	var exporter sheets.Exporter
	if cfg.Sheets.SpreadsheetID != "" {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("spreadsheet export enabled")
	} else {
		baseLogger.Warn("spreadsheet id missing, stock report export disabled")
	}

	reportingSvc := reportingsvc.NewService(mongoRepo, warehouseLayout, exporter, baseLogger.Named("svc.reporting"))
	engine := transactions.NewEngine(
		mongoRepo,
		warehouseLayout,
		transactions.RoleAuthorizer{},
		transactions.Config{StrictBulkOccupancy: cfg.Transactions.StrictBulkOccupancy},
		baseLogger.Named("svc.transactions"),
	)

	// Initialize label print client when configured
	var printClient labelprint.Client
	if cfg.LabelPrint.BaseURL != "" {
		printClient = labelprint.NewClient(cfg.LabelPrint)
		baseLogger.Info("label print client enabled")
	} else {
		baseLogger.Warn("label print base url missing, printing disabled")
	}

	ginEngine := router.New(router.Handlers{
		Inventory:    handlers.NewInventoryHandler(mongoRepo, warehouseLayout, baseLogger.Named("handlers.inventory")),
		Transactions: handlers.NewTransactionHandler(engine, baseLogger.Named("handlers.transactions")),
		Reports:      handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.reports")),
		Catalog:      handlers.NewCatalogHandler(mongoRepo, baseLogger.Named("handlers.catalog")),
		Audit:        handlers.NewAuditHandler(mongoRepo, baseLogger.Named("handlers.audit")),
		Labels:       handlers.NewLabelHandler(warehouseLayout, printClient, baseLogger.Named("handlers.labels")),
	}, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(*cfg, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      ginEngine,
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
