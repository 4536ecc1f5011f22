package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tariffsync/pkg/logger"
	"tariffsync/pkg/models"
	"tariffsync/storage"
)

// upsertBatchSize bounds how many rows go into one pgx batch; each
// batch commits independently.
const upsertBatchSize = 100

type tariffRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewTariffRepo(db *pgxpool.Pool, log logger.ILogger) storage.ITariffStorage {
	return &tariffRepo{db: db, log: log}
}

const upsertQuery = `
	INSERT INTO tariffs (
		warehouse_name, date,
		delivery_base, delivery_liter, delivery_and_storage_expr,
		storage_base, storage_liter, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (warehouse_name, date) DO UPDATE SET
		delivery_base             = EXCLUDED.delivery_base,
		delivery_liter            = EXCLUDED.delivery_liter,
		delivery_and_storage_expr = EXCLUDED.delivery_and_storage_expr,
		storage_base              = EXCLUDED.storage_base,
		storage_liter             = EXCLUDED.storage_liter,
		updated_at                = EXCLUDED.updated_at`

func (r *tariffRepo) UpsertBatch(ctx context.Context, tariffs []*models.Tariff) (int, error) {
	written := 0
	for start := 0; start < len(tariffs); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(tariffs) {
			end = len(tariffs)
		}

		batch := &pgx.Batch{}
		for _, t := range tariffs[start:end] {
			batch.Queue(upsertQuery,
				t.WarehouseName, t.Date,
				t.DeliveryBase, t.DeliveryLiter, t.DeliveryAndStorageExpr,
				t.StorageBase, t.StorageLiter, t.UpdatedAt,
			)
		}

		br := r.db.SendBatch(ctx, batch)
		err := func() error {
			defer br.Close()
			for range tariffs[start:end] {
				if _, err := br.Exec(); err != nil {
					return err
				}
			}
			return nil
		}()
		if err != nil {
			return written, err
		}
		written += end - start
	}
	return written, nil
}

const selectColumns = `
	SELECT id, warehouse_name, date,
	       delivery_base, delivery_liter, delivery_and_storage_expr,
	       storage_base, storage_liter, updated_at
	FROM tariffs`

func (r *tariffRepo) GetAllOrdered(ctx context.Context) ([]*models.Tariff, error) {
	query := selectColumns + ` ORDER BY delivery_liter ASC NULLS LAST, warehouse_name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTariffs(rows)
}

func (r *tariffRepo) GetByDate(ctx context.Context, date time.Time) ([]*models.Tariff, error) {
	query := selectColumns + ` WHERE date = $1 ORDER BY delivery_liter ASC NULLS LAST, warehouse_name ASC`
	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTariffs(rows)
}

func scanTariffs(rows pgx.Rows) ([]*models.Tariff, error) {
	var tariffs []*models.Tariff
	for rows.Next() {
		var t models.Tariff
		if err := rows.Scan(
			&t.ID, &t.WarehouseName, &t.Date,
			&t.DeliveryBase, &t.DeliveryLiter, &t.DeliveryAndStorageExpr,
			&t.StorageBase, &t.StorageLiter, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tariffs = append(tariffs, &t)
	}
	return tariffs, rows.Err()
}
