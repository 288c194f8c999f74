package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pima/adapters/tabular"
	"pima/domain/core"
	"pima/domain/table"
	"pima/internal"
	"pima/internal/analysis"
	"pima/internal/config"
	"pima/internal/pipeline"
)

// reportTargets are the numeric fields summarized per grouping column.
var reportTargets = []table.Column{
	table.ColPregnancies,
	table.ColGlucose,
	table.ColBloodPressure,
	table.ColSkinThickness,
	table.ColBMI,
	table.ColPedigree,
}

var groupings = []table.Column{table.ColAgeGroup, table.ColOutcome}

func main() {
	rootCmd := &cobra.Command{
		Use:   "pima",
		Short: "Deterministic cleaning and summary pipeline for the diabetes dataset",
	}

	rootCmd.AddCommand(newReportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReportCmd() *cobra.Command {
	var input string
	var outDir string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Clean the dataset and write the summary tables",
		Long: `Load the raw dataset, apply the cleaning/grouping/recode stages and write
the cleaned table plus grouped summaries, describe table, correlation matrix
and distribution profiles for the rendering layer.

Example: pima report --input diabetes.csv --out out/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; flags override the environment.
			_ = godotenv.Load()
			if input != "" {
				os.Setenv("PIMA_INPUT", input)
			}
			if outDir != "" {
				os.Setenv("PIMA_OUT_DIR", outDir)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runReport(cfg)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "path to the raw dataset (.csv or .xlsx)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory for the cleaned table and workbook")
	return cmd
}

func runReport(cfg *config.Config) error {
	logger := internal.DefaultLogger
	meta := tabular.ReportMeta{
		Run:       core.RunID(core.NewID()),
		StartedAt: core.Now(),
	}
	start := meta.StartedAt.Time()

	raw, err := tabular.NewDataReader(cfg.Data.InputFile).Read()
	if err != nil {
		return err
	}

	recode := pipeline.Recode{
		Field: table.Column(cfg.Recode.Field),
		From:  cfg.Recode.From,
		To:    cfg.Recode.To,
	}
	cleaned, err := pipeline.Run(raw, recode)
	if err != nil {
		return err
	}

	summaries := make([]table.SummaryTable, 0, len(groupings)*len(reportTargets))
	for _, groupBy := range groupings {
		for _, target := range reportTargets {
			tbl, err := analysis.Summarize(cleaned, groupBy, target)
			if err != nil {
				return err
			}
			summaries = append(summaries, tbl)
		}
	}

	describe := analysis.Describe(cleaned, cleaned.Columns())
	corr := analysis.Correlation(cleaned, cleaned.Columns())

	dists := make([]table.FieldDistribution, 0, len(reportTargets))
	for _, target := range reportTargets {
		d, err := analysis.Distribution(target, cleaned.ColumnValues(target))
		if err != nil {
			logger.Warn("[Report] skipping distribution for %s: %v", target, err)
			continue
		}
		dists = append(dists, d)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return err
	}
	cleanedPath := filepath.Join(cfg.Output.Dir, cfg.Output.CleanedName)
	if err := tabular.WriteCleanedCSV(cleanedPath, cleaned); err != nil {
		return err
	}
	workbookPath := filepath.Join(cfg.Output.Dir, cfg.Output.WorkbookName)
	if err := tabular.WriteReportXLSX(workbookPath, meta, cleaned, summaries, describe, corr, dists); err != nil {
		return err
	}

	logger.Info("[Performance] run %s on dataset %s completed in %.2fms (%d cleaned records, %d summary tables)",
		meta.Run, cleaned.ID, float64(time.Since(start).Nanoseconds())/1e6, cleaned.Len(), len(summaries))
	logger.Info("[Report] cleaned table: %s", cleanedPath)
	logger.Info("[Report] workbook: %s", workbookPath)
	return nil
}
