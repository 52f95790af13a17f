// =============================================================================
// XLCut - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the converter:
//   - Input file discovery (XML files, case-insensitive extension match)
//   - Directory management
//   - Output file naming with timestamp/uuid placeholders
//   - Warning log and run summary generation
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the converter.
type FileManager struct {
	// SourceDir is the directory scanned for input files.
	SourceDir string

	// OutputDir is the directory where output files are placed.
	OutputDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(sourceDir, outputDir string) *FileManager {
	return &FileManager{
		SourceDir: sourceDir,
		OutputDir: outputDir,
	}
}

// EnsureDirectories creates the source and output directories if they do
// not exist.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.SourceDir, fm.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles returns the XML files in the source directory, in
// sorted name order. The extension match is case-insensitive, so FILE.XML
// is found too. Subdirectories are not scanned.
func (fm *FileManager) DiscoverInputFiles() ([]string, error) {
	entries, err := os.ReadDir(fm.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan source directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			files = append(files, filepath.Join(fm.SourceDir, entry.Name()))
		}
	}

	// ReadDir already sorts by name, but the row-ordering guarantees of a
	// run depend on this, so keep it explicit.
	sort.Strings(files)

	return files, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name from a format
// string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//     Placeholders:
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {time}      - Current time (HHMMSS)
//
// EXAMPLE:
//
//	format: "export_{timestamp}.xlsx"
//	output: "export_20240115_143022.xlsx"
func GenerateOutputFileName(format string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !strings.HasSuffix(strings.ToLower(result), ".xlsx") {
		result += ".xlsx"
	}

	return result
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// RunSummary contains summary information about a processing run.
type RunSummary struct {
	StartTime    time.Time
	EndTime      time.Time
	TotalFiles   int
	SkippedFiles int
	TotalRows    int
	TotalItems   int
	OutputFile   string
	SheetCounts  []SheetCount
	Warnings     []string
}

// SheetCount pairs a worksheet name with its row count.
type SheetCount struct {
	Name string
	Rows int
}

// WriteSummaryLog writes a processing summary next to the workbook.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary RunSummary, outputDir string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("run_summary_%s.txt", timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(writer, "XLCut - Run Summary\n")
	fmt.Fprintf(writer, "================================================================================\n\n")
	fmt.Fprintf(writer, "Run Information:\n")
	fmt.Fprintf(writer, "  Start Time:  %s\n", summary.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "  End Time:    %s\n", summary.EndTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "  Duration:    %s\n\n", duration.String())
	fmt.Fprintf(writer, "Statistics:\n")
	fmt.Fprintf(writer, "  Total Files:   %d\n", summary.TotalFiles)
	fmt.Fprintf(writer, "  Skipped Files: %d\n", summary.SkippedFiles)
	fmt.Fprintf(writer, "  Total Rows:    %d\n", summary.TotalRows)
	fmt.Fprintf(writer, "  Items Sold:    %d\n", summary.TotalItems)
	fmt.Fprintf(writer, "  Output:        %s\n\n", summary.OutputFile)

	if len(summary.SheetCounts) > 0 {
		fmt.Fprintf(writer, "Worksheets:\n")
		for _, sc := range summary.SheetCounts {
			fmt.Fprintf(writer, "  %-31s %d row(s)\n", sc.Name, sc.Rows)
		}
		fmt.Fprintf(writer, "\n")
	}

	if len(summary.Warnings) > 0 {
		fmt.Fprintf(writer, "Warnings:\n")
		for _, warning := range summary.Warnings {
			fmt.Fprintf(writer, "  - %s\n", warning)
		}
		fmt.Fprintf(writer, "\n")
	}

	fmt.Fprintf(writer, "================================================================================\n")
	fmt.Fprintf(writer, "End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

// WriteWarningLog writes the run's per-file warnings to a log file in the
// output directory. Nothing is written when there are no warnings.
func WriteWarningLog(warnings []string, outputDir string) (string, error) {
	if len(warnings) == 0 {
		return "", nil
	}

	timestamp := time.Now().Format("20060102_150405")
	logPath := filepath.Join(outputDir, fmt.Sprintf("warnings_%s.txt", timestamp))

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create warning log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "XLCut - Warning Log\n")
	fmt.Fprintf(writer, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "Total Warnings: %d\n", len(warnings))
	fmt.Fprintf(writer, "================================================================================\n\n")

	for i, warning := range warnings {
		fmt.Fprintf(writer, "Warning #%d\n  %s\n\n", i+1, warning)
	}

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush warning log: %w", err)
	}

	return logPath, nil
}
