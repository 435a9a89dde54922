package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olivepulse/pkg/contracts/domain"
)

func rate(v float64) *float64 { return &v }

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteQuarterlyCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quarterly.csv")

	summaries := []domain.QuarterlySummary{
		{Quarter: "2023-Q1", FulfillmentRate: rate(0.7), StockoutRate: 0.5, OverstockRate: 0},
		{Quarter: "2023-Q2", FulfillmentRate: nil, StockoutRate: 0, OverstockRate: 1},
	}

	require.NoError(t, WriteQuarterlyCSV(path, summaries))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Quarter", "fulfillment_rate", "stockout_rate", "overstock_rate"}, rows[0])
	assert.Equal(t, []string{"2023-Q1", "0.70", "0.50", "0.00"}, rows[1])
	// Undefined rate is an empty cell.
	assert.Equal(t, "", rows[2][1])
}

func TestWriteEfficiencyCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "efficiency.csv")

	table := []domain.EfficiencyRow{
		{ProductID: "P1", County: "Cork", Quarter: "2023-Q1", AvgFulfillmentRate: rate(0.8), StockoutCount: 2, OverstockCount: 1},
	}

	require.NoError(t, WriteEfficiencyCSV(path, table))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"P1", "Cork", "2023-Q1", "0.80", "2", "1"}, rows[1])
}

func TestWriteQuarterlyCSV_BadPath(t *testing.T) {
	err := WriteQuarterlyCSV(filepath.Join(t.TempDir(), "missing", "quarterly.csv"), nil)
	assert.Error(t, err)
}
