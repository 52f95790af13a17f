// =============================================================================
// XLCut - Process Command
// =============================================================================
//
// This file defines the 'process' command, which performs the conversion.
// It orchestrates the whole run:
//
//   1. Load configuration
//   2. Discover XML files in the source directory
//   3. For each file, in listing order:
//      a. Parse the XML
//      b. Detect the repeating row elements
//      c. Flatten each row
//      d. Merge the rows into the shape's table
//   4. Write the workbook (one worksheet per shape, plus Items Sold)
//   5. Print and log the run summary
//
// Files are processed strictly sequentially; document and listing order
// decide row and column order, so there is nothing to parallelize without
// giving up the output's determinism.
//
// Per-file problems (malformed XML, row-less documents) are warnings: one
// bad file must not abort the whole run. Only a missing source folder or a
// failure to write the workbook is fatal. A run that extracted nothing
// produces no output file at all.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/xlcut/xlcut/internal/config"
	"github.com/xlcut/xlcut/internal/converter"
	"github.com/xlcut/xlcut/internal/salesreport"
	"github.com/xlcut/xlcut/internal/table"
	"github.com/xlcut/xlcut/internal/xlsxwriter"
	"github.com/xlcut/xlcut/pkg/utils"
)

// dryRun simulates processing without writing the workbook.
var dryRun bool

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert the XML files in the source folder to an Excel workbook",
	Long: `The process command scans the source directory for XML files, detects the
repeating row elements in each document, flattens them into tabular form,
and writes a formatted Excel workbook to the output directory.

The workbook file name carries a generation timestamp, so repeated runs
never overwrite earlier output.

A file that fails to parse or yields no rows is skipped with a warning;
processing continues with the remaining files.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

// init registers the process command and its flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Simulate processing without writing the workbook",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates one conversion run.
func runProcess() error {
	startTime := time.Now()

	fmt.Println("=== XLCut - XML to Excel Converter ===")

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logLevel := mainConfig.LogLevel
	if verbose {
		logLevel = "debug"
	}
	logger := converter.NewDefaultLogger(logLevel)

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	fm := utils.NewFileManager(mainConfig.SourceDir, mainConfig.OutputDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	inputFiles, err := fm.DiscoverInputFiles()
	if err != nil {
		return err
	}

	if len(inputFiles) == 0 {
		fmt.Printf("No XML files found in: %s\n", mainConfig.SourceDir)
		fmt.Println("\nTo use:")
		fmt.Printf("  1. Put your XML files in: %s\n", mainConfig.SourceDir)
		fmt.Println("  2. Run xlcut again")
		fmt.Printf("  3. Find your Excel file in: %s\n", mainConfig.OutputDir)
		return nil
	}

	fmt.Printf("Found %d XML file(s) in source folder\n", len(inputFiles))
	fmt.Println("--------------------------------------")

	// =========================================================================
	// STEP 3: PROCESS FILES SEQUENTIALLY
	// =========================================================================

	acc := table.NewAccumulator()
	var allItems []salesreport.Item
	var warnings []string
	skipped := 0

	for _, file := range inputFiles {
		result := converter.New(file, mainConfig, logger).Run()
		fileName := filepath.Base(result.FilePath)

		if !result.Success {
			skipped++
			if result.NoRows() {
				fmt.Printf("  %s: no data found, skipping\n", fileName)
			} else {
				fmt.Printf("  %s: %v\n", fileName, result.Err)
			}
			warnings = append(warnings, result.Err.Error())
			continue
		}

		fmt.Printf("  %s: %d row(s)", fileName, result.Stats.RowsExtracted)
		if result.Stats.ItemsExtracted > 0 {
			fmt.Printf(", %d item(s) sold", result.Stats.ItemsExtracted)
		}
		fmt.Println()

		acc.Add(result.Shape, fileName, result.Rows)
		allItems = append(allItems, result.Items...)
	}

	// =========================================================================
	// STEP 4: WRITE WORKBOOK
	// =========================================================================

	if acc.TotalRows() == 0 && len(allItems) == 0 {
		fmt.Println("\nNo data extracted from any files; no workbook written.")
		if _, err := utils.WriteWarningLog(warnings, mainConfig.OutputDir); err != nil {
			logger.Warn("Failed to write warning log: %v", err)
		}
		return nil
	}

	outputName := utils.GenerateOutputFileName(mainConfig.OutputNameFormat)
	outputPath := filepath.Join(mainConfig.OutputDir, outputName)

	var sheetStats []xlsxwriter.SheetStat
	if dryRun {
		fmt.Println("\nDry run: skipping workbook write.")
	} else {
		writer := xlsxwriter.New(mainConfig.Styling)
		sheetStats, err = writer.Write(acc, allItems, outputPath)
		if err != nil {
			return err
		}
	}

	// =========================================================================
	// STEP 5: PRINT AND LOG SUMMARY
	// =========================================================================

	fmt.Println("--------------------------------------")
	if len(allItems) > 0 {
		fmt.Printf("Items sold: %d, $%.2f total\n", len(allItems), salesreport.GrandTotal(allItems))
	}
	fmt.Printf("Total rows:   %d\n", acc.TotalRows())
	fmt.Printf("Skipped:      %d file(s)\n", skipped)
	fmt.Printf("Time elapsed: %s\n", time.Since(startTime))

	if !dryRun {
		fmt.Printf("\nOutput: %s\n", outputPath)

		summary := utils.RunSummary{
			StartTime:    startTime,
			EndTime:      time.Now(),
			TotalFiles:   len(inputFiles),
			SkippedFiles: skipped,
			TotalRows:    acc.TotalRows(),
			TotalItems:   len(allItems),
			OutputFile:   outputPath,
			Warnings:     warnings,
		}
		for _, stat := range sheetStats {
			summary.SheetCounts = append(summary.SheetCounts, utils.SheetCount{Name: stat.Name, Rows: stat.Rows})
		}

		if _, err := utils.WriteSummaryLog(summary, mainConfig.OutputDir); err != nil {
			logger.Warn("Failed to write summary log: %v", err)
		}
		if _, err := utils.WriteWarningLog(warnings, mainConfig.OutputDir); err != nil {
			logger.Warn("Failed to write warning log: %v", err)
		}
	}

	fmt.Println("\nDone!")
	return nil
}
