package forecast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olivepulse/internal/dataset"
	apperrors "olivepulse/internal/errors"
)

func testHeader() []string {
	return []string{
		"Product ID", "Quarter", "County Retailer", "Retailer Supplier Name",
		"Units Sold", "Demand Forecast", "Inventory Level", "Units Ordered",
	}
}

func TestNormalizer_Normalize(t *testing.T) {
	normalizer := NewNormalizer(nil)

	table := &dataset.Table{
		Columns: testHeader(),
		Rows: [][]string{
			{"P1", "2023-Q1", "Cork", "Verde", "120", "150", "100", "80"},
			{"P2", "2023-Q1", "Galway", "Aurum", "90.0", "80.5", "200", "0"},
		},
	}

	records, dropped, err := normalizer.Normalize(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	require.Len(t, records, 2)

	assert.Equal(t, "P1", records[0].ProductID)
	assert.Equal(t, "2023-Q1", records[0].Quarter)
	assert.Equal(t, "Cork", records[0].County)
	assert.Equal(t, "Verde", records[0].Supplier)
	assert.Equal(t, 120, records[0].UnitsSold)
	assert.Equal(t, 150, records[0].DemandForecast)

	// Floats in the source are truncated, not rounded.
	assert.Equal(t, 90, records[1].UnitsSold)
	assert.Equal(t, 80, records[1].DemandForecast)
}

func TestNormalizer_TrimsColumnNames(t *testing.T) {
	normalizer := NewNormalizer(nil)

	table := &dataset.Table{
		Columns: []string{
			"  Product ID ", "Quarter\t", " County Retailer", "Retailer Supplier Name",
			"Units Sold ", " Demand Forecast", "Inventory Level", " Units Ordered ",
		},
		Rows: [][]string{
			{"P1", "2023-Q2", "Cork", "Verde", "10", "20", "30", "5"},
		},
	}

	records, dropped, err := normalizer.Normalize(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	require.Len(t, records, 1)
	assert.Equal(t, "P1", records[0].ProductID)
	assert.Equal(t, 20, records[0].DemandForecast)
}

func TestNormalizer_MissingColumnIsSchemaError(t *testing.T) {
	normalizer := NewNormalizer(nil)

	table := &dataset.Table{
		Columns: []string{
			"Product ID", "County Retailer", "Retailer Supplier Name",
			"Units Sold", "Demand Forecast", "Inventory Level", "Units Ordered",
		},
		Rows: [][]string{
			{"P1", "Cork", "Verde", "10", "20", "30", "5"},
		},
	}

	records, _, err := normalizer.Normalize(context.Background(), table)
	require.Error(t, err)
	assert.Nil(t, records)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeSchema, appErr.Type)
	assert.Contains(t, appErr.Error(), "Quarter")
}

func TestNormalizer_DropsRowsMissingKeys(t *testing.T) {
	normalizer := NewNormalizer(nil)

	table := &dataset.Table{
		Columns: testHeader(),
		Rows: [][]string{
			{"P1", "2023-Q1", "Cork", "Verde", "10", "20", "30", "5"},
			{"", "2023-Q1", "Cork", "Verde", "10", "20", "30", "5"},   // no product
			{"P2", "", "Cork", "Verde", "10", "20", "30", "5"},        // no quarter
			{"P3", "  ", "Cork", "Verde", "10", "20", "30", "5"},      // whitespace quarter
			{"P4", "2023-Q2", "Galway", "Aurum", "1", "2", "3", "4"},
		},
	}

	records, dropped, err := normalizer.Normalize(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, 3, dropped)
	require.Len(t, records, 2)
	assert.Equal(t, "P1", records[0].ProductID)
	assert.Equal(t, "P4", records[1].ProductID)

	// Row conservation: kept + dropped accounts for every input row.
	assert.Equal(t, len(table.Rows), len(records)+dropped)
}

func TestNormalizer_DefaultsNumericFieldsToZero(t *testing.T) {
	normalizer := NewNormalizer(nil)

	table := &dataset.Table{
		Columns: testHeader(),
		Rows: [][]string{
			{"P1", "2023-Q1", "Cork", "Verde", "", "not-a-number", "", ""},
			{"P1", "2023-Q1"}, // short row
		},
	}

	records, dropped, err := normalizer.Normalize(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	require.Len(t, records, 2)

	for _, r := range records {
		assert.Zero(t, r.UnitsSold)
		assert.Zero(t, r.DemandForecast)
		assert.Zero(t, r.InventoryLevel)
		assert.Zero(t, r.UnitsOrdered)
	}
}

func TestNormalizer_DoesNotDeduplicate(t *testing.T) {
	normalizer := NewNormalizer(nil)

	row := []string{"P1", "2023-Q1", "Cork", "Verde", "10", "20", "30", "5"}
	table := &dataset.Table{
		Columns: testHeader(),
		Rows:    [][]string{row, row, row},
	}

	records, _, err := normalizer.Normalize(context.Background(), table)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
