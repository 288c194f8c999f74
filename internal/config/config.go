package config

import (
	"os"
	"path/filepath"
	"strings"

	"pima/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data   DataConfig
	Output OutputConfig
	Recode RecodeConfig
}

// DataConfig holds input data settings
type DataConfig struct {
	InputFile string // CSV or XLSX file with the raw dataset
}

// OutputConfig holds report output settings
type OutputConfig struct {
	Dir          string // directory for cleaned CSV and report workbook
	CleanedName  string // cleaned dataset file name
	WorkbookName string // summary workbook file name
}

// RecodeConfig holds the one-off data-quality patch parameters: remap value
// From to value To in Field, within the 70+ age subset.
type RecodeConfig struct {
	Field string
	From  float64
	To    float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data: DataConfig{
			InputFile: os.Getenv("PIMA_INPUT"),
		},
		Output: OutputConfig{
			Dir:          getEnvOrDefault("PIMA_OUT_DIR", "out"),
			CleanedName:  getEnvOrDefault("PIMA_CLEANED_NAME", "cleaned.csv"),
			WorkbookName: getEnvOrDefault("PIMA_WORKBOOK_NAME", "report.xlsx"),
		},
		Recode: RecodeConfig{
			Field: getEnvOrDefault("PIMA_RECODE_FIELD", "InsulinKnown"),
			From:  3,
			To:    0,
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Data.InputFile == "" {
		return errors.ConfigInvalid("PIMA_INPUT is required")
	}
	ext := strings.ToLower(filepath.Ext(config.Data.InputFile))
	if ext != ".csv" && ext != ".xlsx" {
		return errors.ConfigInvalid("PIMA_INPUT must be a .csv or .xlsx file")
	}
	if config.Output.Dir == "" {
		return errors.ConfigInvalid("PIMA_OUT_DIR must not be empty")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
