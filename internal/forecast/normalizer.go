package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"olivepulse/internal/dataset"
	"olivepulse/internal/errors"
	"olivepulse/pkg/contracts/domain"
)

// Normalizer turns raw table rows into typed records. Column headers are
// matched after whitespace trimming; rows without both grouping keys are
// dropped; the four numeric counters default to 0 when blank or unparseable.
type Normalizer struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewNormalizer creates a normalizer
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		validate: validator.New(),
		logger:   logger.With(slog.String("component", "normalizer")),
	}
}

// Normalize converts the table into records. It returns the records, the
// number of rows dropped for missing keys, and a schema error if any required
// column is absent.
func (n *Normalizer) Normalize(ctx context.Context, table *dataset.Table) ([]domain.InventoryRecord, int, error) {
	colIndex, err := n.indexColumns(table.Columns)
	if err != nil {
		return nil, 0, err
	}

	records := make([]domain.InventoryRecord, 0, len(table.Rows))
	dropped := 0

	for _, row := range table.Rows {
		cell := func(column string) string {
			i := colIndex[column]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		record := domain.InventoryRecord{
			ProductID:      cell(domain.ColumnProductID),
			Quarter:        cell(domain.ColumnQuarter),
			County:         cell(domain.ColumnCounty),
			Supplier:       cell(domain.ColumnSupplier),
			UnitsSold:      parseCount(cell(domain.ColumnUnitsSold)),
			DemandForecast: parseCount(cell(domain.ColumnDemandForecast)),
			InventoryLevel: parseCount(cell(domain.ColumnInventoryLevel)),
			UnitsOrdered:   parseCount(cell(domain.ColumnUnitsOrdered)),
		}

		if err := n.validate.Struct(record); err != nil {
			dropped++
			continue
		}

		records = append(records, record)
	}

	if dropped > 0 {
		n.logger.WarnContext(ctx, "dropped rows missing grouping keys",
			slog.Int("dropped", dropped),
			slog.Int("kept", len(records)))
	}

	return records, dropped, nil
}

// indexColumns maps required column names to their position in the header,
// matching on trimmed names. Missing columns are reported together so a
// malformed export surfaces in one error.
func (n *Normalizer) indexColumns(header []string) (map[string]int, error) {
	position := make(map[string]int, len(header))
	for i, name := range header {
		trimmed := strings.TrimSpace(name)
		if _, seen := position[trimmed]; !seen {
			position[trimmed] = i
		}
	}

	colIndex := make(map[string]int, len(domain.RequiredColumns))
	var missing []string
	for _, column := range domain.RequiredColumns {
		i, ok := position[column]
		if !ok {
			missing = append(missing, column)
			continue
		}
		colIndex[column] = i
	}

	if len(missing) > 0 {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("required columns missing from dataset: %s", strings.Join(missing, ", ")))
	}

	return colIndex, nil
}

// parseCount converts a numeric cell to an integer. Source exports write
// counts as floats ("120.0"), so the cell is parsed as a float and truncated.
// Blank or unparseable cells default to 0.
func parseCount(value string) int {
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return int(f)
}
