package main

import (
	"context"
	"fmt"

	"tariffsync/config"
	"tariffsync/pkg/logger"
	"tariffsync/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	pg, err := postgres.New(context.Background(), cfg, log)

	if err != nil {
		panic(err)
	}
	defer pg.Close()

	// Truncate the tariff table only. Spreadsheet targets are system
	// data seeded from config and survive a reset.
	_, err = pg.GetPool().Exec(context.Background(), "TRUNCATE TABLE tariffs")
	if err != nil {
		log.Error(fmt.Sprintf("Failed to truncate tariffs: %v", err))
	} else {
		log.Info("Successfully truncated the tariffs table.")
	}
}
