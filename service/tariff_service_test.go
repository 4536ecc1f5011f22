package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tariffsync/pkg/models"
	"tariffsync/pkg/wbapi"
)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestTariffService(api TariffAPI, now time.Time) (*tariffService, *fakeStorage, *fakeLogger) {
	stg := newFakeStorage()
	log := &fakeLogger{}
	return &tariffService{
		stg: stg.tariffs,
		api: api,
		log: log,
		now: fixedNow(now),
	}, stg, log
}

func TestSyncDailyUpserts(t *testing.T) {
	api := &fakeAPI{list: []models.WarehouseTariff{
		{
			WarehouseName:             "Коледино",
			BoxDeliveryBase:           "48",
			BoxDeliveryLiter:          "11,2",
			BoxDeliveryAndStorageExpr: "160",
			BoxStorageBase:            "0,14",
			BoxStorageLiter:           "0,07",
		},
		{
			WarehouseName:             "Тула",
			BoxDeliveryBase:           "-",
			BoxDeliveryLiter:          "9,5",
			BoxDeliveryAndStorageExpr: "-",
			BoxStorageBase:            "-",
			BoxStorageLiter:           "-",
		},
	}}
	now := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	svc, stg, _ := newTestTariffService(api, now)

	written, err := svc.SyncDaily(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != 2 {
		t.Fatalf("written = %d, want 2", written)
	}

	rows, _ := stg.tariffs.GetAllOrdered(context.Background())
	if len(rows) != 2 {
		t.Fatalf("stored %d rows, want 2", len(rows))
	}

	wantDate := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for _, r := range rows {
		if !r.Date.Equal(wantDate) {
			t.Errorf("%s: date = %v, want %v", r.WarehouseName, r.Date, wantDate)
		}
		if !r.UpdatedAt.Equal(now) {
			t.Errorf("%s: updated_at = %v, want %v", r.WarehouseName, r.UpdatedAt, now)
		}
	}

	// Ordered by delivery_liter: Тула (9,5) before Коледино (11,2).
	if rows[0].WarehouseName != "Тула" || rows[1].WarehouseName != "Коледино" {
		t.Fatalf("order wrong: %s, %s", rows[0].WarehouseName, rows[1].WarehouseName)
	}
	if rows[1].DeliveryBase == nil || *rows[1].DeliveryBase != 48 {
		t.Errorf("Коледино delivery base = %v, want 48", rows[1].DeliveryBase)
	}
	if rows[0].DeliveryBase != nil {
		t.Errorf("Тула delivery base = %v, want nil (dash)", *rows[0].DeliveryBase)
	}
}

func TestSyncDailyOverwritesSamePair(t *testing.T) {
	entry := models.WarehouseTariff{
		WarehouseName:    "Казань",
		BoxDeliveryBase:  "40",
		BoxDeliveryLiter: "10,0",
	}
	api := &fakeAPI{list: []models.WarehouseTariff{entry}}
	first := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	svc, stg, _ := newTestTariffService(api, first)

	if _, err := svc.SyncDaily(context.Background()); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	entry.BoxDeliveryBase = "44"
	api.list = []models.WarehouseTariff{entry}
	second := first.Add(time.Hour)
	svc.now = fixedNow(second)

	if _, err := svc.SyncDaily(context.Background()); err != nil {
		t.Fatalf("second sync: %v", err)
	}

	rows, _ := stg.tariffs.GetAllOrdered(context.Background())
	if len(rows) != 1 {
		t.Fatalf("stored %d rows, want 1", len(rows))
	}
	if rows[0].DeliveryBase == nil || *rows[0].DeliveryBase != 44 {
		t.Errorf("delivery base = %v, want 44 after overwrite", rows[0].DeliveryBase)
	}
	if !rows[0].UpdatedAt.After(first) {
		t.Errorf("updated_at = %v, want strictly after %v", rows[0].UpdatedAt, first)
	}
}

func TestSyncDailyNoData(t *testing.T) {
	api := &fakeAPI{err: wbapi.ErrNoData}
	svc, stg, log := newTestTariffService(api, time.Now())

	written, err := svc.SyncDaily(context.Background())
	if err != nil {
		t.Fatalf("malformed payload must not be an error, got: %v", err)
	}
	if written != 0 {
		t.Fatalf("written = %d, want 0", written)
	}
	if stg.tariffs.upserts != 0 {
		t.Fatalf("upsert was called %d times, want 0", stg.tariffs.upserts)
	}
	if len(log.warnings) == 0 {
		t.Fatal("expected a warning log for empty payload")
	}
}

func TestSyncDailyFetchError(t *testing.T) {
	api := &fakeAPI{err: errors.New("connection refused")}
	svc, stg, _ := newTestTariffService(api, time.Now())

	if _, err := svc.SyncDaily(context.Background()); err == nil {
		t.Fatal("expected transport error to propagate to the cycle boundary")
	}
	if stg.tariffs.upserts != 0 {
		t.Fatal("no writes expected on fetch failure")
	}
}

func TestSyncDailyFieldDegradesToNil(t *testing.T) {
	api := &fakeAPI{list: []models.WarehouseTariff{{
		WarehouseName:    "Электросталь",
		BoxDeliveryBase:  "not-a-number",
		BoxDeliveryLiter: "12,5",
	}}}
	svc, stg, log := newTestTariffService(api, time.Now())

	written, err := svc.SyncDaily(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != 1 {
		t.Fatalf("written = %d, want 1 (record survives a bad field)", written)
	}

	rows, _ := stg.tariffs.GetAllOrdered(context.Background())
	if rows[0].DeliveryBase != nil {
		t.Errorf("delivery base = %v, want nil for garbage input", *rows[0].DeliveryBase)
	}
	if rows[0].DeliveryLiter == nil || *rows[0].DeliveryLiter != 12.5 {
		t.Errorf("delivery liter = %v, want 12.5", rows[0].DeliveryLiter)
	}
	if len(log.warnings) == 0 {
		t.Fatal("expected a warning for the unparseable figure")
	}
}
