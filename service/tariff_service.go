package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tariffsync/pkg/format"
	"tariffsync/pkg/logger"
	"tariffsync/pkg/models"
	"tariffsync/pkg/wbapi"
	"tariffsync/storage"
)

// TariffAPI is the upstream contract the fetch cycle depends on.
// *wbapi.Client satisfies it.
type TariffAPI interface {
	BoxTariffs(ctx context.Context, date time.Time) ([]models.WarehouseTariff, error)
}

type TariffService interface {
	// SyncDaily fetches today's box tariffs and upserts them keyed on
	// (warehouse, date). A malformed or empty upstream payload is "no
	// data this cycle": it logs a warning, writes nothing and returns
	// no error. Returns the number of rows written.
	SyncDaily(ctx context.Context) (int, error)
}

type tariffService struct {
	stg storage.ITariffStorage
	api TariffAPI
	log logger.ILogger
	now func() time.Time
}

func NewTariffService(stg storage.IStorage, api TariffAPI, log logger.ILogger) TariffService {
	return &tariffService{
		stg: stg.Tariff(),
		api: api,
		log: log,
		now: time.Now,
	}
}

func (s *tariffService) SyncDaily(ctx context.Context) (int, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	list, err := s.api.BoxTariffs(ctx, today)
	if errors.Is(err, wbapi.ErrNoData) {
		s.log.Warning("upstream returned no warehouse tariffs, skipping cycle",
			logger.Time("date", today))
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("fetch box tariffs: %w", err)
	}
	s.log.Info("fetched warehouse tariffs",
		logger.Int("count", len(list)), logger.Time("date", today))

	tariffs := make([]*models.Tariff, 0, len(list))
	for _, wt := range list {
		tariffs = append(tariffs, s.toTariff(wt, today, now))
	}

	written, err := s.stg.UpsertBatch(ctx, tariffs)
	if err != nil {
		return written, fmt.Errorf("upsert box tariffs: %w", err)
	}
	s.log.Info("upserted warehouse tariffs", logger.Int("rows", written))
	return written, nil
}

// toTariff maps one upstream entry into a record. A figure that fails
// to parse degrades to nil for that field only, the record survives.
func (s *tariffService) toTariff(wt models.WarehouseTariff, date, updatedAt time.Time) *models.Tariff {
	parse := func(field, raw string) *float64 {
		v, err := format.ParseLocaleNumber(raw)
		if err != nil {
			s.log.Warning("unparseable tariff figure",
				logger.String("warehouse", wt.WarehouseName),
				logger.String("field", field),
				logger.Error(err))
		}
		return v
	}

	return &models.Tariff{
		WarehouseName:          wt.WarehouseName,
		Date:                   date,
		DeliveryBase:           parse("boxDeliveryBase", wt.BoxDeliveryBase),
		DeliveryLiter:          parse("boxDeliveryLiter", wt.BoxDeliveryLiter),
		DeliveryAndStorageExpr: parse("boxDeliveryAndStorageExpr", wt.BoxDeliveryAndStorageExpr),
		StorageBase:            parse("boxStorageBase", wt.BoxStorageBase),
		StorageLiter:           parse("boxStorageLiter", wt.BoxStorageLiter),
		UpdatedAt:              updatedAt,
	}
}
