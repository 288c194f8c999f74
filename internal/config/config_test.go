package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pima/internal/errors"
)

func TestLoad_RequiresInputFile(t *testing.T) {
	t.Setenv("PIMA_INPUT", "")

	_, err := Load()

	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoad_RejectsUnsupportedExtension(t *testing.T) {
	t.Setenv("PIMA_INPUT", "diabetes.parquet")

	_, err := Load()

	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PIMA_INPUT", "diabetes.csv")
	t.Setenv("PIMA_OUT_DIR", "")
	t.Setenv("PIMA_CLEANED_NAME", "")
	t.Setenv("PIMA_WORKBOOK_NAME", "")
	t.Setenv("PIMA_RECODE_FIELD", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "diabetes.csv", cfg.Data.InputFile)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "cleaned.csv", cfg.Output.CleanedName)
	assert.Equal(t, "report.xlsx", cfg.Output.WorkbookName)
	assert.Equal(t, "InsulinKnown", cfg.Recode.Field)
	assert.Equal(t, 3.0, cfg.Recode.From)
	assert.Equal(t, 0.0, cfg.Recode.To)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PIMA_INPUT", "data.xlsx")
	t.Setenv("PIMA_OUT_DIR", "reports")
	t.Setenv("PIMA_WORKBOOK_NAME", "summary.xlsx")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data.xlsx", cfg.Data.InputFile)
	assert.Equal(t, "reports", cfg.Output.Dir)
	assert.Equal(t, "summary.xlsx", cfg.Output.WorkbookName)
}
