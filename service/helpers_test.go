package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tariffsync/pkg/logger"
	"tariffsync/pkg/models"
	"tariffsync/storage"
)

type fakeLogger struct {
	infos    []string
	warnings []string
	errors   []string
}

func (l *fakeLogger) Info(msg string, _ ...logger.Field) { l.infos = append(l.infos, msg) }

func (l *fakeLogger) Error(msg string, _ ...logger.Field) { l.errors = append(l.errors, msg) }

func (l *fakeLogger) Warning(msg string, _ ...logger.Field) { l.warnings = append(l.warnings, msg) }

// fakeTariffStore keeps rows in memory with the same merge semantics as
// the Postgres repo: one row per (warehouse, date), later upserts
// overwrite the figures and updated_at.
type fakeTariffStore struct {
	rows      map[string]*models.Tariff
	upsertErr error
	getErr    error
	upserts   int
}

func newFakeTariffStore() *fakeTariffStore {
	return &fakeTariffStore{rows: make(map[string]*models.Tariff)}
}

func (f *fakeTariffStore) UpsertBatch(_ context.Context, tariffs []*models.Tariff) (int, error) {
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	f.upserts++
	for _, t := range tariffs {
		cp := *t
		f.rows[fmt.Sprintf("%s|%s", t.WarehouseName, t.Date.Format("2006-01-02"))] = &cp
	}
	return len(tariffs), nil
}

func (f *fakeTariffStore) GetAllOrdered(_ context.Context) ([]*models.Tariff, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]*models.Tariff, 0, len(f.rows))
	for _, t := range f.rows {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].DeliveryLiter, out[j].DeliveryLiter
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a < *b
		default:
			return out[i].WarehouseName < out[j].WarehouseName
		}
	})
	return out, nil
}

func (f *fakeTariffStore) GetByDate(ctx context.Context, date time.Time) ([]*models.Tariff, error) {
	all, err := f.GetAllOrdered(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Tariff
	for _, t := range all {
		if t.Date.Equal(date) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeSpreadsheetStore struct {
	ids []string
}

func (f *fakeSpreadsheetStore) Seed(_ context.Context, ids []string) error {
	f.ids = append(f.ids, ids...)
	return nil
}

func (f *fakeSpreadsheetStore) GetAll(_ context.Context) ([]*models.Spreadsheet, error) {
	var out []*models.Spreadsheet
	for _, id := range f.ids {
		out = append(out, &models.Spreadsheet{ID: id})
	}
	return out, nil
}

type fakeStorage struct {
	tariffs *fakeTariffStore
	sheets  *fakeSpreadsheetStore
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		tariffs: newFakeTariffStore(),
		sheets:  &fakeSpreadsheetStore{},
	}
}

func (f *fakeStorage) Tariff() storage.ITariffStorage           { return f.tariffs }
func (f *fakeStorage) Spreadsheet() storage.ISpreadsheetStorage { return f.sheets }
func (f *fakeStorage) Close()                                   {}
func (f *fakeStorage) GetPool() *pgxpool.Pool                   { return nil }

type fakeAPI struct {
	list []models.WarehouseTariff
	err  error
}

func (f *fakeAPI) BoxTariffs(context.Context, time.Time) ([]models.WarehouseTariff, error) {
	return f.list, f.err
}

type gatewayCall struct {
	op            string
	spreadsheetID string
	rng           string
	values        [][]interface{}
}

// fakeGateway records calls and can fail the first N update attempts.
type fakeGateway struct {
	calls       []gatewayCall
	failUpdates int
}

func (g *fakeGateway) Clear(_ context.Context, spreadsheetID, rng string) error {
	g.calls = append(g.calls, gatewayCall{op: "clear", spreadsheetID: spreadsheetID, rng: rng})
	return nil
}

func (g *fakeGateway) Update(_ context.Context, spreadsheetID, rng string, values [][]interface{}) error {
	g.calls = append(g.calls, gatewayCall{op: "update", spreadsheetID: spreadsheetID, rng: rng, values: values})
	if g.failUpdates > 0 {
		g.failUpdates--
		return fmt.Errorf("gateway unavailable")
	}
	return nil
}

func (g *fakeGateway) updates() []gatewayCall {
	var out []gatewayCall
	for _, c := range g.calls {
		if c.op == "update" {
			out = append(out, c)
		}
	}
	return out
}

func ptr(v float64) *float64 { return &v }
