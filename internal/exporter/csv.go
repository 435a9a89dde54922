package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"olivepulse/internal/errors"
	"olivepulse/pkg/contracts/domain"
)

// WriteQuarterlyCSV writes the quarter-level rollup to path. An undefined
// fulfillment rate is written as an empty cell.
func WriteQuarterlyCSV(path string, summaries []domain.QuarterlySummary) error {
	rows := [][]string{{"Quarter", "fulfillment_rate", "stockout_rate", "overstock_rate"}}
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Quarter,
			formatRate(s.FulfillmentRate),
			strconv.FormatFloat(s.StockoutRate, 'f', 2, 64),
			strconv.FormatFloat(s.OverstockRate, 'f', 2, 64),
		})
	}
	return writeCSV(path, rows)
}

// WriteEfficiencyCSV writes the (product, county, quarter) rollup to path.
func WriteEfficiencyCSV(path string, table []domain.EfficiencyRow) error {
	rows := [][]string{{"Product ID", "County Retailer", "Quarter", "avg_fulfillment_rate", "stockout_count", "overstock_count"}}
	for _, row := range table {
		rows = append(rows, []string{
			row.ProductID,
			row.County,
			row.Quarter,
			formatRate(row.AvgFulfillmentRate),
			strconv.Itoa(row.StockoutCount),
			strconv.Itoa(row.OverstockCount),
		})
	}
	return writeCSV(path, rows)
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to create report %s", path), err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to write report %s", path), err)
	}

	return nil
}

// formatRate writes a rate with the same two-decimal precision the API uses.
func formatRate(rate *float64) string {
	if rate == nil {
		return ""
	}
	return strconv.FormatFloat(*rate, 'f', 2, 64)
}
