// Package tabular reads raw dataset files (CSV or XLSX) into the domain
// model and writes the pipeline's tabular outputs back out. It is the only
// package that knows about file formats; everything past the reader works on
// typed datasets.
package tabular

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"pima/domain/table"
	"pima/internal"
	"pima/internal/errors"
)

// DataReader handles reading CSV and XLSX dataset files
type DataReader struct {
	filePath string
	fileType string // "csv" or "xlsx"
}

// NewDataReader creates a reader that dispatches on the file extension.
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Read loads the file, validates the schema and returns a raw dataset.
// Header names are exact-match and case-sensitive; a missing required column
// or a non-numeric value in a numeric column fails immediately so no
// statistics are ever computed over malformed input. The optional Insulin
// column is resolved here into the dataset's HasInsulin capability flag.
func (r *DataReader) Read() (table.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return table.Dataset{}, errors.InvalidInput(fmt.Sprintf("input file not found: %s", r.filePath))
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readXLSXRows()
	}
	if err != nil {
		return table.Dataset{}, err
	}
	if len(rows) == 0 {
		return table.Dataset{}, errors.InvalidSchema("input file has no header row")
	}

	ds, err := buildDataset(r.filePath, rows[0], rows[1:])
	if err != nil {
		return table.Dataset{}, err
	}

	internal.DefaultLogger.Info("[DataReader] loaded %s as dataset %s: %d records, insulin column present: %t",
		r.filePath, ds.ID, ds.Len(), ds.HasInsulin)
	return ds, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", r.filePath)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV data")
	}
	return records, nil
}

func (r *DataReader) readXLSXRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", r.filePath)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.InvalidSchema("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "failed to read worksheet rows")
	}
	return rows, nil
}

// buildDataset validates the header against the fixed schema and parses every
// row into a Record. Empty cells become NaN (missing); anything else in a
// numeric column must parse as a number.
func buildDataset(source string, header []string, rows [][]string) (table.Dataset, error) {
	index := make(map[table.Column]int, len(header))
	for i, name := range header {
		index[table.Column(strings.TrimSpace(name))] = i
	}
	for _, col := range table.RequiredColumns {
		if _, ok := index[col]; !ok {
			return table.Dataset{}, errors.MissingColumn(string(col))
		}
	}
	_, hasInsulin := index[table.ColInsulin]

	parseCols := append([]table.Column(nil), table.RequiredColumns...)
	if hasInsulin {
		parseCols = append(parseCols, table.ColInsulin)
	}

	records := make([]table.Record, 0, len(rows))
	for rowNum, row := range rows {
		rec := table.Record{Insulin: math.NaN(), InsulinKnown: math.NaN()}
		for _, col := range parseCols {
			v, err := parseCell(row, index[col], col, rowNum)
			if err != nil {
				return table.Dataset{}, err
			}
			rec, _ = rec.WithValue(col, v)
		}
		records = append(records, rec)
	}

	return table.NewDataset(source, hasInsulin, records), nil
}

func parseCell(row []string, idx int, col table.Column, rowNum int) (float64, error) {
	if idx >= len(row) {
		return math.NaN(), nil
	}
	raw := strings.TrimSpace(row[idx])
	if raw == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, errors.InvalidSchema(fmt.Sprintf("row %d column %q: value %q is not numeric", rowNum+2, col, raw))
	}
	return v, nil
}
