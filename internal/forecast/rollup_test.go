package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olivepulse/pkg/contracts/domain"
)

func TestQuarterlyRollup(t *testing.T) {
	records := []domain.DerivedRecord{
		derivedRecord("P1", "Cork", "Verde", "2023-Q1", 8, 10, 9),   // rate 0.8, stockout
		derivedRecord("P1", "Cork", "Verde", "2023-Q1", 6, 10, 12),  // rate 0.6
		derivedRecord("P2", "Cork", "Verde", "2023-Q2", 10, 10, 20), // rate 1.0, overstock
	}

	summaries := QuarterlyRollup(records)

	require.Len(t, summaries, 2)

	q1 := summaries[0]
	assert.Equal(t, "2023-Q1", q1.Quarter)
	require.NotNil(t, q1.FulfillmentRate)
	assert.InDelta(t, 0.70, *q1.FulfillmentRate, 1e-9)
	assert.InDelta(t, 0.5, q1.StockoutRate, 1e-9)
	assert.InDelta(t, 0.0, q1.OverstockRate, 1e-9)

	q2 := summaries[1]
	assert.Equal(t, "2023-Q2", q2.Quarter)
	require.NotNil(t, q2.FulfillmentRate)
	assert.InDelta(t, 1.0, *q2.FulfillmentRate, 1e-9)
	assert.InDelta(t, 0.0, q2.StockoutRate, 1e-9)
	assert.InDelta(t, 1.0, q2.OverstockRate, 1e-9)
}

func TestQuarterlyRollup_OverstockRate(t *testing.T) {
	records := []domain.DerivedRecord{
		derivedRecord("P1", "Cork", "Verde", "2023-Q1", 8, 10, 9),  // stockout
		derivedRecord("P1", "Cork", "Verde", "2023-Q1", 6, 10, 16), // overstock
	}

	summaries := QuarterlyRollup(records)

	require.Len(t, summaries, 1)
	assert.InDelta(t, 0.5, summaries[0].StockoutRate, 1e-9)
	assert.InDelta(t, 0.5, summaries[0].OverstockRate, 1e-9)
}

func TestQuarterlyRollup_ExcludesUndefinedRates(t *testing.T) {
	records := []domain.DerivedRecord{
		derivedRecord("P1", "Cork", "Verde", "2023-Q1", 8, 10, 9), // rate 0.8
		derivedRecord("P2", "Cork", "Verde", "2023-Q1", 5, 0, 9),  // undefined rate
	}

	summaries := QuarterlyRollup(records)

	require.Len(t, summaries, 1)
	// Mean over the defined rate only: 0.8, not 0.4.
	require.NotNil(t, summaries[0].FulfillmentRate)
	assert.InDelta(t, 0.8, *summaries[0].FulfillmentRate, 1e-9)
	// The zero-forecast record still counts toward flag rates.
	assert.InDelta(t, 0.5, summaries[0].StockoutRate, 1e-9)
}

func TestQuarterlyRollup_AllRatesUndefined(t *testing.T) {
	records := []domain.DerivedRecord{
		derivedRecord("P1", "Cork", "Verde", "2023-Q1", 5, 0, 9),
		derivedRecord("P2", "Cork", "Verde", "2023-Q1", 7, 0, 1),
	}

	summaries := QuarterlyRollup(records)

	require.Len(t, summaries, 1)
	assert.Nil(t, summaries[0].FulfillmentRate)
}

func TestQuarterlyRollup_FirstSeenOrder(t *testing.T) {
	records := []domain.DerivedRecord{
		derivedRecord("P1", "Cork", "Verde", "2023-Q3", 1, 2, 3),
		derivedRecord("P1", "Cork", "Verde", "2023-Q1", 1, 2, 3),
		derivedRecord("P1", "Cork", "Verde", "2023-Q3", 1, 2, 3),
		derivedRecord("P1", "Cork", "Verde", "2023-Q2", 1, 2, 3),
	}

	summaries := QuarterlyRollup(records)

	require.Len(t, summaries, 3)
	assert.Equal(t, "2023-Q3", summaries[0].Quarter)
	assert.Equal(t, "2023-Q1", summaries[1].Quarter)
	assert.Equal(t, "2023-Q2", summaries[2].Quarter)
}

func TestEfficiencyRollup(t *testing.T) {
	records := []domain.DerivedRecord{
		derivedRecord("P1", "Cork", "Verde", "2023-Q1", 8, 10, 9),
		derivedRecord("P1", "Cork", "Aurum", "2023-Q1", 6, 10, 16),
		derivedRecord("P1", "Galway", "Verde", "2023-Q1", 4, 10, 9),
		derivedRecord("P1", "Cork", "Verde", "2023-Q2", 2, 10, 9),
	}

	rows := EfficiencyRollup(records)

	// Supplier is not part of the key: the two Cork Q1 rows collapse.
	require.Len(t, rows, 3)

	corkQ1 := rows[0]
	assert.Equal(t, "P1", corkQ1.ProductID)
	assert.Equal(t, "Cork", corkQ1.County)
	assert.Equal(t, "2023-Q1", corkQ1.Quarter)
	require.NotNil(t, corkQ1.AvgFulfillmentRate)
	assert.InDelta(t, 0.7, *corkQ1.AvgFulfillmentRate, 1e-9)
	assert.Equal(t, 1, corkQ1.StockoutCount)
	assert.Equal(t, 1, corkQ1.OverstockCount)

	assert.Equal(t, "Galway", rows[1].County)
	assert.Equal(t, "2023-Q2", rows[2].Quarter)
}

func TestEfficiencyRollup_ExcludesUndefinedRates(t *testing.T) {
	records := []domain.DerivedRecord{
		derivedRecord("P1", "Cork", "Verde", "2023-Q1", 5, 0, 9),
	}

	rows := EfficiencyRollup(records)

	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].AvgFulfillmentRate)
	assert.Equal(t, 0, rows[0].StockoutCount)
}
