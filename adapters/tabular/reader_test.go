package tabular

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pima/domain/table"
	"pima/internal/errors"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead_ValidCSVWithInsulin(t *testing.T) {
	path := writeTempCSV(t, `Pregnancies,Glucose,BloodPressure,SkinThickness,Insulin,BMI,DiabetesPedigreeFunction,Age,Outcome
6,148,72,35,0,33.6,0.627,50,1
1,85,66,29,94,26.6,0.351,31,0
`)

	ds, err := NewDataReader(path).Read()
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len())
	assert.NotEmpty(t, ds.ID.String())
	assert.True(t, ds.HasInsulin)
	assert.False(t, ds.Cleaned)

	first := ds.Records[0]
	assert.Equal(t, 6.0, first.Pregnancies)
	assert.Equal(t, 148.0, first.Glucose)
	assert.Equal(t, 72.0, first.BloodPressure)
	assert.Equal(t, 35.0, first.SkinThickness)
	assert.Equal(t, 0.0, first.Insulin)
	assert.Equal(t, 33.6, first.BMI)
	assert.Equal(t, 0.627, first.Pedigree)
	assert.Equal(t, 50.0, first.Age)
	assert.Equal(t, 1.0, first.Outcome)
}

func TestRead_InsulinColumnOptional(t *testing.T) {
	path := writeTempCSV(t, `Pregnancies,Glucose,BloodPressure,SkinThickness,BMI,DiabetesPedigreeFunction,Age,Outcome
1,85,66,29,26.6,0.351,31,0
`)

	ds, err := NewDataReader(path).Read()
	require.NoError(t, err)

	assert.False(t, ds.HasInsulin)
	assert.True(t, math.IsNaN(ds.Records[0].Insulin))
}

func TestRead_MissingRequiredColumn(t *testing.T) {
	path := writeTempCSV(t, `Pregnancies,BloodPressure,SkinThickness,BMI,DiabetesPedigreeFunction,Age,Outcome
1,66,29,26.6,0.351,31,0
`)

	_, err := NewDataReader(path).Read()

	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingColumn, errors.GetCode(err))
	assert.Contains(t, err.Error(), "Glucose")
}

func TestRead_ColumnNamesAreCaseSensitive(t *testing.T) {
	path := writeTempCSV(t, `Pregnancies,glucose,BloodPressure,SkinThickness,BMI,DiabetesPedigreeFunction,Age,Outcome
1,85,66,29,26.6,0.351,31,0
`)

	_, err := NewDataReader(path).Read()

	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingColumn, errors.GetCode(err))
}

func TestRead_NonNumericValueIsInvalidSchema(t *testing.T) {
	path := writeTempCSV(t, `Pregnancies,Glucose,BloodPressure,SkinThickness,BMI,DiabetesPedigreeFunction,Age,Outcome
1,eighty,66,29,26.6,0.351,31,0
`)

	_, err := NewDataReader(path).Read()

	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidSchema, errors.GetCode(err))
}

func TestRead_EmptyCellBecomesMissing(t *testing.T) {
	path := writeTempCSV(t, `Pregnancies,Glucose,BloodPressure,SkinThickness,BMI,DiabetesPedigreeFunction,Age,Outcome
1,,66,29,26.6,0.351,31,0
`)

	ds, err := NewDataReader(path).Read()
	require.NoError(t, err)

	assert.True(t, math.IsNaN(ds.Records[0].Glucose))
}

func TestRead_FileNotFound(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv")).Read()

	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestRead_HeaderOnlyYieldsEmptyDataset(t *testing.T) {
	path := writeTempCSV(t, `Pregnancies,Glucose,BloodPressure,SkinThickness,BMI,DiabetesPedigreeFunction,Age,Outcome
`)

	ds, err := NewDataReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestRead_DatasetColumnsBeforeCleaning(t *testing.T) {
	path := writeTempCSV(t, `Pregnancies,Glucose,BloodPressure,SkinThickness,Insulin,BMI,DiabetesPedigreeFunction,Age,Outcome
6,148,72,35,0,33.6,0.627,50,1
`)

	ds, err := NewDataReader(path).Read()
	require.NoError(t, err)

	assert.Contains(t, ds.Columns(), table.ColInsulin)
	assert.NotContains(t, ds.Columns(), table.ColInsulinKnown)
}
