package tabular

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"pima/domain/core"
	"pima/domain/table"
)

// ReportMeta identifies the run that produced a workbook. It is written to
// the Run sheet so a workbook can be traced back to its input dataset.
type ReportMeta struct {
	Run       core.RunID
	StartedAt core.Timestamp
}

// WriteCleanedCSV writes the cleaned dataset in its projected column order,
// with the derived AgeGroup column appended once the grouping stage has run.
// Missing values are written as empty cells.
func WriteCleanedCSV(path string, ds table.Dataset) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	cols := ds.Columns()
	withAgeGroup := hasAgeGroups(ds)

	w := csv.NewWriter(file)
	header := make([]string, 0, len(cols)+1)
	for _, c := range cols {
		header = append(header, string(c))
	}
	if withAgeGroup {
		header = append(header, string(table.ColAgeGroup))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for _, rec := range ds.Records {
		row = row[:0]
		for _, c := range cols {
			v, _ := rec.Value(c)
			row = append(row, formatCell(v))
		}
		if withAgeGroup {
			row = append(row, string(rec.AgeGroup))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteReportXLSX writes the tabular report workbook consumed by the
// rendering layer: the run provenance, the cleaned data, the grouped summary
// tables (stacked per grouping column), the overall describe table, the
// correlation matrix and the distribution profiles. No charts are produced
// here.
func WriteReportXLSX(path string, meta ReportMeta, ds table.Dataset, summaries []table.SummaryTable,
	describe []table.FieldSummary, corr table.CorrelationMatrix, dists []table.FieldDistribution) error {

	f := excelize.NewFile()
	defer f.Close()

	if err := writeRunSheet(f, "Run", meta, ds); err != nil {
		return err
	}
	if err := writeCleanedSheet(f, "Cleaned", ds); err != nil {
		return err
	}
	if err := writeSummarySheets(f, summaries); err != nil {
		return err
	}
	if err := writeDescribeSheet(f, "Describe", describe); err != nil {
		return err
	}
	if err := writeCorrelationSheet(f, "Correlation", corr); err != nil {
		return err
	}
	if err := writeDistributionSheet(f, "Distributions", dists); err != nil {
		return err
	}

	// Drop the default sheet so the workbook opens on the cleaned data.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeRunSheet(f *excelize.File, sheet string, meta ReportMeta, ds table.Dataset) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Run", meta.Run.String()},
		{"Dataset", ds.ID.String()},
		{"Source", ds.Source},
		{"StartedAt", meta.StartedAt.Time().Format(time.RFC3339)},
		{"Records", ds.Len()},
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func writeCleanedSheet(f *excelize.File, sheet string, ds table.Dataset) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	cols := ds.Columns()
	withAgeGroup := hasAgeGroups(ds)

	header := make([]interface{}, 0, len(cols)+1)
	for _, c := range cols {
		header = append(header, string(c))
	}
	if withAgeGroup {
		header = append(header, string(table.ColAgeGroup))
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i, rec := range ds.Records {
		row := make([]interface{}, 0, len(header))
		for _, c := range cols {
			v, _ := rec.Value(c)
			row = append(row, cellValue(v))
		}
		if withAgeGroup {
			row = append(row, string(rec.AgeGroup))
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writeSummarySheets writes one sheet per grouping column, stacking the
// per-target tables vertically with a title row each.
func writeSummarySheets(f *excelize.File, summaries []table.SummaryTable) error {
	rowBySheet := make(map[string]int)
	for _, tbl := range summaries {
		sheet := "By " + string(tbl.GroupBy)
		if _, seen := rowBySheet[sheet]; !seen {
			if _, err := f.NewSheet(sheet); err != nil {
				return err
			}
			rowBySheet[sheet] = 1
		}
		row := rowBySheet[sheet]

		if err := setRow(f, sheet, row, []interface{}{string(tbl.Target) + " by " + string(tbl.GroupBy)}); err != nil {
			return err
		}
		row++
		if err := setRow(f, sheet, row, []interface{}{string(tbl.GroupBy), "Mean", "Median", "StdDev", "Min", "Max", "Count"}); err != nil {
			return err
		}
		row++
		for _, g := range tbl.Groups {
			vals := []interface{}{g.Key, cellValue(g.Mean), cellValue(g.Median), cellValue(g.StdDev),
				cellValue(g.Min), cellValue(g.Max), g.Count}
			if err := setRow(f, sheet, row, vals); err != nil {
				return err
			}
			row++
		}
		rowBySheet[sheet] = row + 1 // blank spacer between tables
	}
	return nil
}

func writeDescribeSheet(f *excelize.File, sheet string, describe []table.FieldSummary) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, []interface{}{"Column", "Mean", "Median", "StdDev", "Min", "Max", "Count"}); err != nil {
		return err
	}
	for i, fs := range describe {
		vals := []interface{}{string(fs.Column), cellValue(fs.Mean), cellValue(fs.Median),
			cellValue(fs.StdDev), cellValue(fs.Min), cellValue(fs.Max), fs.Count}
		if err := setRow(f, sheet, i+2, vals); err != nil {
			return err
		}
	}
	return nil
}

func writeCorrelationSheet(f *excelize.File, sheet string, corr table.CorrelationMatrix) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := make([]interface{}, 0, len(corr.Columns)+1)
	header = append(header, "")
	for _, c := range corr.Columns {
		header = append(header, string(c))
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, c := range corr.Columns {
		row := make([]interface{}, 0, len(corr.Columns)+1)
		row = append(row, string(c))
		for j := range corr.Columns {
			row = append(row, cellValue(corr.Values[i][j]))
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeDistributionSheet(f *excelize.File, sheet string, dists []table.FieldDistribution) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, []interface{}{"Column", "Skewness", "Kurtosis", "IsNormal", "NormalP", "Q25", "Q75"}); err != nil {
		return err
	}
	for i, d := range dists {
		vals := []interface{}{string(d.Column), cellValue(d.Skewness), cellValue(d.Kurtosis),
			d.IsNormal, cellValue(d.NormalP), cellValue(d.Q25), cellValue(d.Q75)}
		if err := setRow(f, sheet, i+2, vals); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowIdx int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// cellValue keeps NaN out of the workbook; Excel has no NaN cell type.
func cellValue(v float64) interface{} {
	if math.IsNaN(v) {
		return ""
	}
	return v
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func hasAgeGroups(ds table.Dataset) bool {
	for _, rec := range ds.Records {
		if rec.AgeGroup != "" {
			return true
		}
	}
	return false
}
