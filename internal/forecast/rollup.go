package forecast

import "olivepulse/pkg/contracts/domain"

// efficiencyKey identifies one efficiency-table partition.
type efficiencyKey struct {
	ProductID string
	County    string
	Quarter   string
}

// QuarterlyRollup partitions the flat record sequence by quarter and reduces
// each partition to its mean fulfillment rate and the stockout/overstock
// rates, each rounded to two decimals. Records with an undefined fulfillment
// rate are excluded from that mean only; they still count toward the flag
// rates. Partitions are emitted in first-seen order.
func QuarterlyRollup(records []domain.DerivedRecord) []domain.QuarterlySummary {
	partitions := groupBy(records, func(r domain.DerivedRecord) string { return r.Quarter })

	summaries := make([]domain.QuarterlySummary, 0, len(partitions))
	for _, p := range partitions {
		rate := meanFulfillment(p.Items)
		if rate != nil {
			rounded := round2(*rate)
			rate = &rounded
		}

		stockouts, overstocks := countFlags(p.Items)
		n := float64(len(p.Items))

		summaries = append(summaries, domain.QuarterlySummary{
			Quarter:         p.Key,
			FulfillmentRate: rate,
			StockoutRate:    round2(float64(stockouts) / n),
			OverstockRate:   round2(float64(overstocks) / n),
		})
	}

	return summaries
}

// EfficiencyRollup partitions by (product, county, quarter) and reduces each
// partition to its mean fulfillment rate and stockout/overstock counts.
// Partitions are emitted in first-seen order.
func EfficiencyRollup(records []domain.DerivedRecord) []domain.EfficiencyRow {
	partitions := groupBy(records, func(r domain.DerivedRecord) efficiencyKey {
		return efficiencyKey{ProductID: r.ProductID, County: r.County, Quarter: r.Quarter}
	})

	rows := make([]domain.EfficiencyRow, 0, len(partitions))
	for _, p := range partitions {
		stockouts, overstocks := countFlags(p.Items)

		rows = append(rows, domain.EfficiencyRow{
			ProductID:          p.Key.ProductID,
			County:             p.Key.County,
			Quarter:            p.Key.Quarter,
			AvgFulfillmentRate: meanFulfillment(p.Items),
			StockoutCount:      stockouts,
			OverstockCount:     overstocks,
		})
	}

	return rows
}

// meanFulfillment averages the defined fulfillment rates in the partition.
// Returns nil when no record has a defined rate.
func meanFulfillment(records []domain.DerivedRecord) *float64 {
	sum := 0.0
	defined := 0
	for _, r := range records {
		if r.FulfillmentRate != nil {
			sum += *r.FulfillmentRate
			defined++
		}
	}
	if defined == 0 {
		return nil
	}
	mean := sum / float64(defined)
	return &mean
}

// countFlags counts the stockout and overstock records in the partition.
func countFlags(records []domain.DerivedRecord) (stockouts, overstocks int) {
	for _, r := range records {
		if r.Stockout {
			stockouts++
		}
		if r.Overstock {
			overstocks++
		}
	}
	return stockouts, overstocks
}
