package domain

// Column names of the olive oil inventory dataset, as they appear in the
// source table header (surrounding whitespace is stripped before matching).
const (
	ColumnProductID      = "Product ID"
	ColumnQuarter        = "Quarter"
	ColumnCounty         = "County Retailer"
	ColumnSupplier       = "Retailer Supplier Name"
	ColumnUnitsSold      = "Units Sold"
	ColumnDemandForecast = "Demand Forecast"
	ColumnInventoryLevel = "Inventory Level"
	ColumnUnitsOrdered   = "Units Ordered"
)

// RequiredColumns lists every column the pipeline needs. A table missing any
// of these after header normalization is rejected as a schema error.
var RequiredColumns = []string{
	ColumnProductID,
	ColumnQuarter,
	ColumnCounty,
	ColumnSupplier,
	ColumnUnitsSold,
	ColumnDemandForecast,
	ColumnInventoryLevel,
	ColumnUnitsOrdered,
}

// InventoryRecord is one normalized row of the source table: a single
// product/county/supplier/quarter observation. ProductID and Quarter are the
// grouping keys and are never defaulted; rows missing either are dropped
// during normalization. The four counters default to 0 when the source cell
// is blank or unparseable.
type InventoryRecord struct {
	ProductID      string `json:"product_id" validate:"required"`
	Quarter        string `json:"quarter" validate:"required"`
	County         string `json:"county"`
	Supplier       string `json:"supplier"`
	UnitsSold      int    `json:"units_sold"`
	DemandForecast int    `json:"demand_forecast"`
	InventoryLevel int    `json:"inventory_level"`
	UnitsOrdered   int    `json:"units_ordered"`
}

// DerivedRecord is an InventoryRecord plus the computed restock metrics.
// FulfillmentRate is nil when DemandForecast is 0: the ratio is undefined
// there and must not be coerced to 0 or 1, since either would bias rollups.
type DerivedRecord struct {
	InventoryRecord

	RestockNeeded   bool     `json:"restock_needed"`
	ReorderQty      int      `json:"reorder_qty"`
	FulfillmentRate *float64 `json:"fulfillment_rate"`
	Stockout        bool     `json:"stockout"`
	Overstock       bool     `json:"overstock"`
}
