package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tariffsync/config"
	"tariffsync/pkg/logger"
	"tariffsync/pkg/sheets"
	"tariffsync/pkg/wbapi"
	"tariffsync/scheduler"
	"tariffsync/service"
	"tariffsync/storage/postgres"
)

func main() {
	// 1. Load and validate config
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration, refusing to start", logger.Error(err))
		os.Exit(1)
	}

	ctx := context.Background()

	// 2. Storage (runs migrations on connect)
	pgStore, err := postgres.New(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pgStore.Close()

	// 3. Seed publish targets from config
	if err := pgStore.Spreadsheet().Seed(ctx, cfg.SpreadsheetIDs); err != nil {
		log.Error("Failed to seed spreadsheet targets", logger.Error(err))
		os.Exit(1)
	}

	// 4. External gateways
	gateway, err := sheets.NewGoogle(ctx, cfg.GoogleCredentialsFile)
	if err != nil {
		log.Error("Failed to initialize sheets gateway", logger.Error(err))
		os.Exit(1)
	}
	api := wbapi.New(cfg.WBAPIBaseURL, cfg.WBAPIToken)

	// 5. Services and scheduler
	svcs := service.New(pgStore, api, gateway, cfg, log)
	sched := scheduler.New(svcs, pgStore, cfg, log)

	if err := sched.Start(); err != nil {
		log.Error("Failed to start scheduler", logger.Error(err))
		os.Exit(1)
	}
	log.Info("Tariff sync scheduler is running", logger.String("cron", cfg.SyncCronSpec))

	if cfg.SyncOnStart {
		go sched.RunCycle()
	}

	// 6. Graceful shutdown listener
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("Stopping scheduler and shutting down...")
	<-sched.Stop().Done()
}
