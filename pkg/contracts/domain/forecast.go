package domain

// SupplierSeries is the innermost drilldown leaf: one supplier's per-quarter
// metrics for a given product and county. All slices are aligned by index to
// Quarters, which is sorted ascending by quarter label. FulfillmentRates uses
// pointers so an undefined ratio (zero forecast) serializes as JSON null.
type SupplierSeries struct {
	Supplier         string     `json:"supplier"`
	Quarters         []string   `json:"quarters"`
	UnitsSold        []int      `json:"unitsSold"`
	Forecasted       []int      `json:"forecasted"`
	Inventory        []int      `json:"inventory"`
	RestockFlags     []bool     `json:"restockFlags"`
	ReorderQtys      []int      `json:"reorderQtys"`
	FulfillmentRates []*float64 `json:"fulfillmentRates"`
	Stockouts        []bool     `json:"stockouts"`
	Overstocks       []bool     `json:"overstocks"`
}

// CountyBreakdown groups a product's supplier series by county. Counties and
// suppliers appear in the order they were first seen in the source table.
type CountyBreakdown struct {
	County    string           `json:"county"`
	Suppliers []SupplierSeries `json:"suppliers"`
}

// DrilldownTree maps product ID to its county breakdowns.
type DrilldownTree map[string][]CountyBreakdown

// QuarterlySummary is one row of the quarter-level rollup. Rates are rounded
// to two decimals. FulfillmentRate averages only the records where the ratio
// is defined; it is nil when no record in the quarter has a defined ratio.
type QuarterlySummary struct {
	Quarter         string   `json:"Quarter"`
	FulfillmentRate *float64 `json:"fulfillment_rate"`
	StockoutRate    float64  `json:"stockout_rate"`
	OverstockRate   float64  `json:"overstock_rate"`
}

// EfficiencyRow is one row of the (product, county, quarter) rollup. Field
// names mirror the dashboard table headers consumed by the frontend.
type EfficiencyRow struct {
	ProductID          string   `json:"Product ID"`
	County             string   `json:"County Retailer"`
	Quarter            string   `json:"Quarter"`
	AvgFulfillmentRate *float64 `json:"avg_fulfillment_rate"`
	StockoutCount      int      `json:"stockout_count"`
	OverstockCount     int      `json:"overstock_count"`
}

// ForecastResponse is the success body of GET /api/olive-forecasting.
type ForecastResponse struct {
	Products            DrilldownTree      `json:"products"`
	QuarterlyEfficiency []QuarterlySummary `json:"quarterly_efficiency"`
	EfficiencyTable     []EfficiencyRow    `json:"efficiency_table"`
}
