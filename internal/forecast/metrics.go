package forecast

import (
	"math"

	"olivepulse/pkg/contracts/domain"
)

// overstockFactor is the inventory-to-forecast ratio above which a record is
// flagged as overstocked.
const overstockFactor = 1.5

// Derive computes the restock metrics for one record. Pure function.
//
// The fulfillment rate is sold/forecast rounded to two decimals and then
// clamped to 1.0 (in that order, so 0.995 rounds up to 1.00 rather than
// clamping first). It is nil when the forecast is zero: the ratio is
// undefined there and a nil keeps the record out of every downstream mean.
func Derive(record domain.InventoryRecord) domain.DerivedRecord {
	derived := domain.DerivedRecord{
		InventoryRecord: record,
		RestockNeeded:   record.DemandForecast > record.InventoryLevel,
		ReorderQty:      max(record.DemandForecast-record.InventoryLevel, 0),
		Stockout:        record.InventoryLevel < record.DemandForecast,
		Overstock:       float64(record.InventoryLevel) > overstockFactor*float64(record.DemandForecast),
	}

	if record.DemandForecast != 0 {
		rate := round2(float64(record.UnitsSold) / float64(record.DemandForecast))
		if rate > 1.0 {
			rate = 1.0
		}
		derived.FulfillmentRate = &rate
	}

	return derived
}

// DeriveAll maps Derive over a record sequence, preserving order.
func DeriveAll(records []domain.InventoryRecord) []domain.DerivedRecord {
	derived := make([]domain.DerivedRecord, len(records))
	for i, record := range records {
		derived[i] = Derive(record)
	}
	return derived
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
