package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tariffsync/config"
	"tariffsync/pkg/format"
	"tariffsync/pkg/logger"
	"tariffsync/pkg/models"
	"tariffsync/pkg/sheets"
	"tariffsync/storage"
)

// reportHeaders is the fixed first row of the published grid. Data rows
// follow the same column order.
var reportHeaders = []interface{}{
	"Дата",
	"Склад",
	"Доставка, база",
	"Доставка, литр",
	"Доставка и хранение (экспр.)",
	"Хранение, база",
	"Хранение, литр",
}

type ReportService interface {
	// Publish rewrites the tariff report on one spreadsheet, retrying
	// the whole read-clear-write sequence with exponential backoff. It
	// logs the terminal failure itself; the returned error is for the
	// caller's boundary log.
	Publish(ctx context.Context, spreadsheetID string) error
}

type reportService struct {
	stg        storage.ITariffStorage
	gateway    sheets.Gateway
	log        logger.ILogger
	sheetName  string
	clearRange string
	maxRetries int
	sleep      func(time.Duration)
}

func NewReportService(stg storage.IStorage, gateway sheets.Gateway, cfg config.Config, log logger.ILogger) ReportService {
	return &reportService{
		stg:        stg.Tariff(),
		gateway:    gateway,
		log:        log,
		sheetName:  cfg.SheetName,
		clearRange: cfg.SheetClearRange,
		maxRetries: cfg.MaxRetries,
		sleep:      time.Sleep,
	}
}

func (s *reportService) Publish(ctx context.Context, spreadsheetID string) error {
	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		rows, err := s.publishOnce(ctx, spreadsheetID)
		if err == nil {
			s.log.Info("published tariff report",
				logger.String("spreadsheet", spreadsheetID),
				logger.Int("rows", rows))
			return nil
		}
		lastErr = err
		s.log.Warning("publish attempt failed",
			logger.String("spreadsheet", spreadsheetID),
			logger.Int("attempt", attempt),
			logger.Error(err))
		if attempt < s.maxRetries {
			s.sleep(time.Duration(1<<attempt) * time.Second)
		}
	}
	s.log.Error("publish failed, retries exhausted",
		logger.String("spreadsheet", spreadsheetID),
		logger.Int("attempts", s.maxRetries),
		logger.Error(lastErr))
	return fmt.Errorf("publish to spreadsheet %s: %w", spreadsheetID, lastErr)
}

func (s *reportService) publishOnce(ctx context.Context, spreadsheetID string) (int, error) {
	tariffs, err := s.stg.GetAllOrdered(ctx)
	if err != nil {
		return 0, fmt.Errorf("read tariffs: %w", err)
	}

	grid := buildGrid(tariffs)
	if rows, cols, ok := rangeBounds(s.clearRange); ok {
		if len(grid) > rows || len(reportHeaders) > cols {
			s.log.Warning("report grid exceeds configured clear range",
				logger.String("range", s.clearRange),
				logger.Int("grid_rows", len(grid)))
		}
	}

	if err := s.gateway.Clear(ctx, spreadsheetID, s.sheetName+"!"+s.clearRange); err != nil {
		return 0, err
	}
	if err := s.gateway.Update(ctx, spreadsheetID, s.sheetName+"!A1", grid); err != nil {
		return 0, err
	}
	return len(grid) - 1, nil
}

func buildGrid(tariffs []*models.Tariff) [][]interface{} {
	grid := make([][]interface{}, 0, len(tariffs)+1)
	grid = append(grid, reportHeaders)
	for _, t := range tariffs {
		grid = append(grid, []interface{}{
			format.DisplayDate(t.Date),
			t.WarehouseName,
			moneyCell(t.DeliveryBase),
			moneyCell(t.DeliveryLiter),
			moneyCell(t.DeliveryAndStorageExpr),
			moneyCell(t.StorageBase),
			moneyCell(t.StorageLiter),
		})
	}
	return grid
}

func moneyCell(v *float64) string {
	if s := format.MoneyString(v); s != nil {
		return *s
	}
	return ""
}

// rangeBounds reads the row and column extent out of a range like
// "A1:G1000". The start corner is assumed to be A1, which is where the
// publisher writes.
func rangeBounds(rng string) (rows, cols int, ok bool) {
	parts := strings.Split(rng, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	end := parts[1]
	i := 0
	for i < len(end) && end[i] >= 'A' && end[i] <= 'Z' {
		cols = cols*26 + int(end[i]-'A'+1)
		i++
	}
	if i == 0 || i == len(end) {
		return 0, 0, false
	}
	rows, err := strconv.Atoi(end[i:])
	if err != nil || rows < 1 || cols < 1 {
		return 0, 0, false
	}
	return rows, cols, true
}
