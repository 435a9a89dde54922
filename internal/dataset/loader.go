package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"olivepulse/internal/errors"
	"olivepulse/internal/infrastructure"
)

// Table is an in-memory copy of the source file: a header plus raw rows.
// Values are untyped strings; normalization happens downstream.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Loader reads the source table from disk. CSV and xlsx are supported,
// selected by file extension.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a table loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &Loader{
		logger: logger.With(slog.String("component", "dataset_loader")),
	}
}

// Load reads the table at path. A missing or unreadable file is a source
// error, which the HTTP layer maps to 503.
func (l *Loader) Load(ctx context.Context, path string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewSourceError(fmt.Sprintf("dataset file %s is not readable", path), err)
	}
	if info.IsDir() {
		return nil, errors.NewSourceError(fmt.Sprintf("dataset path %s is a directory", path), nil)
	}

	var table *Table
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		table, err = l.loadExcel(path)
	default:
		table, err = l.loadCSV(path)
	}
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", path),
		slog.Int("columns", len(table.Columns)),
		slog.Int("rows", len(table.Rows)))

	return table, nil
}

// loadCSV reads a delimited text file. The first row is the header.
func (l *Loader) loadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewSourceError(fmt.Sprintf("failed to open dataset %s", path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // short rows are padded downstream

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewSourceError(fmt.Sprintf("failed to parse dataset %s", path), err)
	}
	if len(rows) == 0 {
		return nil, errors.NewSourceError(fmt.Sprintf("dataset %s is empty", path), nil)
	}

	header := rows[0]
	if len(header) > 0 {
		// Strip a UTF-8 BOM left by spreadsheet exports.
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	return &Table{Columns: header, Rows: rows[1:]}, nil
}

// loadExcel reads the first sheet of an xlsx workbook.
func (l *Loader) loadExcel(path string) (*Table, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewSourceError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewSourceError(fmt.Sprintf("workbook %s has no sheets", path), nil)
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewSourceError(fmt.Sprintf("failed to read sheet %s", sheets[0]), err)
	}
	if len(rows) == 0 {
		return nil, errors.NewSourceError(fmt.Sprintf("workbook %s is empty", path), nil)
	}

	return &Table{Columns: rows[0], Rows: rows[1:]}, nil
}
