package forecast

import (
	"sort"

	"olivepulse/pkg/contracts/domain"
)

// BuildDrilldown groups derived records into the product → county → supplier
// tree. County and supplier order follows first appearance in the input; only
// the innermost per-supplier series is sorted, ascending by quarter label.
// Duplicate rows for the same (product, county, supplier, quarter) are kept.
func BuildDrilldown(records []domain.DerivedRecord) domain.DrilldownTree {
	tree := make(domain.DrilldownTree)

	byProduct := groupBy(records, func(r domain.DerivedRecord) string { return r.ProductID })
	for _, product := range byProduct {
		counties := make([]domain.CountyBreakdown, 0)

		byCounty := groupBy(product.Items, func(r domain.DerivedRecord) string { return r.County })
		for _, county := range byCounty {
			suppliers := make([]domain.SupplierSeries, 0)

			bySupplier := groupBy(county.Items, func(r domain.DerivedRecord) string { return r.Supplier })
			for _, supplier := range bySupplier {
				suppliers = append(suppliers, buildSeries(supplier.Key, supplier.Items))
			}

			counties = append(counties, domain.CountyBreakdown{
				County:    county.Key,
				Suppliers: suppliers,
			})
		}

		tree[product.Key] = counties
	}

	return tree
}

// buildSeries sorts one supplier's records by quarter and lays the metrics
// out as index-aligned arrays.
func buildSeries(supplier string, records []domain.DerivedRecord) domain.SupplierSeries {
	sorted := make([]domain.DerivedRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quarter < sorted[j].Quarter
	})

	series := domain.SupplierSeries{
		Supplier:         supplier,
		Quarters:         make([]string, len(sorted)),
		UnitsSold:        make([]int, len(sorted)),
		Forecasted:       make([]int, len(sorted)),
		Inventory:        make([]int, len(sorted)),
		RestockFlags:     make([]bool, len(sorted)),
		ReorderQtys:      make([]int, len(sorted)),
		FulfillmentRates: make([]*float64, len(sorted)),
		Stockouts:        make([]bool, len(sorted)),
		Overstocks:       make([]bool, len(sorted)),
	}

	for i, r := range sorted {
		series.Quarters[i] = r.Quarter
		series.UnitsSold[i] = r.UnitsSold
		series.Forecasted[i] = r.DemandForecast
		series.Inventory[i] = r.InventoryLevel
		series.RestockFlags[i] = r.RestockNeeded
		series.ReorderQtys[i] = r.ReorderQty
		series.FulfillmentRates[i] = r.FulfillmentRate
		series.Stockouts[i] = r.Stockout
		series.Overstocks[i] = r.Overstock
	}

	return series
}
