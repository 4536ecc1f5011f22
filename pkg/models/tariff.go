package models

import "time"

// Tariff is one warehouse's box delivery/storage cost figures for one
// calendar date. A nil monetary field means the upstream did not provide
// a value (or sent an unparseable one), never zero.
type Tariff struct {
	ID                     int64     `json:"id"`
	WarehouseName          string    `json:"warehouse_name"`
	Date                   time.Time `json:"date"`
	DeliveryBase           *float64  `json:"delivery_base"`
	DeliveryLiter          *float64  `json:"delivery_liter"`
	DeliveryAndStorageExpr *float64  `json:"delivery_and_storage_expr"`
	StorageBase            *float64  `json:"storage_base"`
	StorageLiter           *float64  `json:"storage_liter"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// WarehouseTariff mirrors one entry of the upstream
// response.data.warehouseList array. All figures arrive as strings with
// a comma decimal separator, or a dash for "no value".
type WarehouseTariff struct {
	WarehouseName             string `json:"warehouseName"`
	BoxDeliveryBase           string `json:"boxDeliveryBase"`
	BoxDeliveryLiter          string `json:"boxDeliveryLiter"`
	BoxDeliveryAndStorageExpr string `json:"boxDeliveryAndStorageExpr"`
	BoxStorageBase            string `json:"boxStorageBase"`
	BoxStorageLiter           string `json:"boxStorageLiter"`
}
