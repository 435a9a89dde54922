package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "olivepulse/internal/errors"
)

func TestLoader_LoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	content := "Product ID,Quarter,Units Sold\nP1,2023-Q1,120\nP2,2023-Q2,90\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := NewLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Product ID", "Quarter", "Units Sold"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"P1", "2023-Q1", "120"}, table.Rows[0])
}

func TestLoader_LoadCSVStripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	content := "\xef\xbb\xbfProduct ID,Quarter\nP1,2023-Q1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := NewLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Product ID", table.Columns[0])
}

func TestLoader_LoadCSVShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	content := "Product ID,Quarter,Units Sold\nP1,2023-Q1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := NewLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Len(t, table.Rows[0], 2)
}

func TestLoader_MissingFileIsSourceError(t *testing.T) {
	_, err := NewLoader(nil).Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeSource, appErr.Type)
}

func TestLoader_EmptyFileIsSourceError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := NewLoader(nil).Load(context.Background(), path)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeSource, appErr.Type)
}

func TestLoader_LoadExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.xlsx")

	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	require.NoError(t, workbook.SetSheetRow(sheet, "A1", &[]interface{}{"Product ID", "Quarter"}))
	require.NoError(t, workbook.SetSheetRow(sheet, "A2", &[]interface{}{"P1", "2023-Q1"}))
	require.NoError(t, workbook.SaveAs(path))
	require.NoError(t, workbook.Close())

	table, err := NewLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Product ID", "Quarter"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"P1", "2023-Q1"}, table.Rows[0])
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(nil).Load(ctx, "anything.csv")
	assert.ErrorIs(t, err, context.Canceled)
}
