package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"tariffsync/pkg/logger"
	"tariffsync/pkg/models"
	"tariffsync/storage"
)

type spreadsheetRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewSpreadsheetRepo(db *pgxpool.Pool, log logger.ILogger) storage.ISpreadsheetStorage {
	return &spreadsheetRepo{db: db, log: log}
}

func (r *spreadsheetRepo) Seed(ctx context.Context, ids []string) error {
	for _, id := range ids {
		query := `INSERT INTO spreadsheets (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`
		if _, err := r.db.Exec(ctx, query, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *spreadsheetRepo) GetAll(ctx context.Context) ([]*models.Spreadsheet, error) {
	query := `SELECT id, created_at FROM spreadsheets ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sheets []*models.Spreadsheet
	for rows.Next() {
		var s models.Spreadsheet
		if err := rows.Scan(&s.ID, &s.CreatedAt); err != nil {
			return nil, err
		}
		sheets = append(sheets, &s)
	}
	return sheets, rows.Err()
}
