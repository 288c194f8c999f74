package tabular

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pima/domain/core"
	"pima/domain/table"
)

func cleanedFixture() table.Dataset {
	ds := table.NewDataset("fixture", true, []table.Record{
		{
			Pregnancies: 2, Glucose: 120, BloodPressure: 70, SkinThickness: 25,
			Insulin: math.NaN(), BMI: 30.5, Pedigree: 0.4, Age: 45, Outcome: 0,
			InsulinKnown: 1, AgeGroup: table.AgeGroup40s,
		},
		{
			Pregnancies: 0, Glucose: 95, BloodPressure: 60, SkinThickness: 18,
			Insulin: math.NaN(), BMI: 22.1, Pedigree: 0.2, Age: 72, Outcome: 1,
			InsulinKnown: 0, AgeGroup: table.AgeGroup70Plus,
		},
	})
	ds.Cleaned = true
	return ds
}

func TestWriteCleanedCSV_RoundTrip(t *testing.T) {
	ds := cleanedFixture()
	path := filepath.Join(t.TempDir(), "cleaned.csv")

	require.NoError(t, WriteCleanedCSV(path, ds))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{
		"Pregnancies", "Glucose", "BloodPressure", "SkinThickness", "BMI",
		"DiabetesPedigreeFunction", "Age", "InsulinKnown", "Outcome", "AgeGroup",
	}, rows[0])
	assert.Equal(t, "120", rows[1][1])
	assert.Equal(t, "40-49", rows[1][9])
	assert.Equal(t, "70+", rows[2][9])
}

func TestWriteCleanedCSV_MissingValuesAreEmptyCells(t *testing.T) {
	ds := cleanedFixture()
	ds.HasInsulin = false
	for i := range ds.Records {
		ds.Records[i].InsulinKnown = math.NaN()
	}
	path := filepath.Join(t.TempDir(), "cleaned.csv")

	require.NoError(t, WriteCleanedCSV(path, ds))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	assert.NotContains(t, rows[0], "InsulinKnown")
	for _, row := range rows {
		assert.NotContains(t, row, "NaN")
	}
}

func TestWriteReportXLSX_SheetLayout(t *testing.T) {
	ds := cleanedFixture()
	summaries := []table.SummaryTable{
		{
			GroupBy: table.ColAgeGroup,
			Target:  table.ColGlucose,
			Groups: []table.GroupStats{
				{Key: "40-49", Mean: 120, Median: 120, StdDev: math.NaN(), Min: 120, Max: 120, Count: 1},
				{Key: "70+", Mean: 95, Median: 95, StdDev: math.NaN(), Min: 95, Max: 95, Count: 1},
			},
		},
		{
			GroupBy: table.ColOutcome,
			Target:  table.ColGlucose,
			Groups: []table.GroupStats{
				{Key: "0", Mean: 120, Median: 120, StdDev: math.NaN(), Min: 120, Max: 120, Count: 1},
			},
		},
	}
	describe := []table.FieldSummary{
		{Column: table.ColGlucose, Mean: 107.5, Median: 107.5, StdDev: 17.68, Min: 95, Max: 120, Count: 2},
	}
	corr := table.CorrelationMatrix{
		Columns: []table.Column{table.ColGlucose, table.ColBMI},
		Values:  [][]float64{{1, 0.9}, {0.9, 1}},
	}
	dists := []table.FieldDistribution{
		{Column: table.ColGlucose, Skewness: 0.1, Kurtosis: 2.9, IsNormal: true, NormalP: 0.4, Q25: 95, Q75: 120},
	}

	meta := ReportMeta{Run: core.RunID(core.NewID()), StartedAt: core.Now()}
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteReportXLSX(path, meta, ds, summaries, describe, corr, dists))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{"Run", "Cleaned", "By AgeGroup", "By Outcome", "Describe", "Correlation", "Distributions"}, sheets)

	// Cleaned sheet header starts with the projected column set.
	a1, err := f.GetCellValue("Cleaned", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Pregnancies", a1)

	// Summary sheet carries the title row and the group keys.
	title, err := f.GetCellValue("By AgeGroup", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Glucose by AgeGroup", title)
	key, err := f.GetCellValue("By AgeGroup", "A3")
	require.NoError(t, err)
	assert.Equal(t, "40-49", key)

	// Correlation sheet mirrors values across the diagonal.
	r12, err := f.GetCellValue("Correlation", "C2")
	require.NoError(t, err)
	r21, err := f.GetCellValue("Correlation", "B3")
	require.NoError(t, err)
	assert.Equal(t, r12, r21)
}

func TestWriteReportXLSX_RunSheetTracesProvenance(t *testing.T) {
	ds := cleanedFixture()
	meta := ReportMeta{Run: core.RunID(core.NewID()), StartedAt: core.Now()}
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteReportXLSX(path, meta, ds, nil, nil, table.CorrelationMatrix{}, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	run, err := f.GetCellValue("Run", "B1")
	require.NoError(t, err)
	assert.Equal(t, meta.Run.String(), run)

	dataset, err := f.GetCellValue("Run", "B2")
	require.NoError(t, err)
	assert.Equal(t, ds.ID.String(), dataset)

	source, err := f.GetCellValue("Run", "B3")
	require.NoError(t, err)
	assert.Equal(t, "fixture", source)

	count, err := f.GetCellValue("Run", "B5")
	require.NoError(t, err)
	assert.Equal(t, "2", count)
}
