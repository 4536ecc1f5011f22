package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tariffsync/pkg/models"
)

type IStorage interface {
	Tariff() ITariffStorage
	Spreadsheet() ISpreadsheetStorage
	Close()
	GetPool() *pgxpool.Pool
}

type ITariffStorage interface {
	// UpsertBatch writes records keyed on (warehouse_name, date):
	// new pairs are inserted, existing ones get their figures and
	// updated_at overwritten. Returns the number of rows written.
	UpsertBatch(ctx context.Context, tariffs []*models.Tariff) (int, error)
	// GetAllOrdered returns every record ascending by delivery_liter,
	// NULLs last.
	GetAllOrdered(ctx context.Context) ([]*models.Tariff, error)
	GetByDate(ctx context.Context, date time.Time) ([]*models.Tariff, error)
}

type ISpreadsheetStorage interface {
	// Seed inserts the configured publish targets, ignoring IDs that
	// are already present.
	Seed(ctx context.Context, ids []string) error
	GetAll(ctx context.Context) ([]*models.Spreadsheet, error)
}
