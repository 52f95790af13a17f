// =============================================================================
// XLCut - Converter Module
// =============================================================================
//
// This module contains the per-file conversion logic: parse one XML file,
// detect its repeating rows, flatten each row, and extract any sold items
// for the sales report.
//
// CONVERSION PIPELINE (per file):
//   1. Parse the XML into a node tree
//   2. Detect the repeating row elements and the table shape
//   3. Flatten each row element into a path→value mapping
//   4. Extract sale line items when present
//
// Files are processed strictly one at a time; all cross-file state (the
// table accumulator) lives with the caller. A file that fails to parse or
// yields no rows produces a Result carrying the error; the caller decides
// that per-file errors are warnings, not run failures.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/xlcut/xlcut/internal/config"
	"github.com/xlcut/xlcut/internal/extractor"
	"github.com/xlcut/xlcut/internal/flattener"
	"github.com/xlcut/xlcut/internal/salesreport"
	"github.com/xlcut/xlcut/internal/types"
	"github.com/xlcut/xlcut/internal/xmlparser"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// Shape is the detected shape identifier for this file's rows.
	Shape string

	// Rows are the flattened rows, in document order.
	Rows []*types.Row

	// Items are the sold line items for the sales report, if any.
	Items []salesreport.Item

	// Success indicates whether the file contributed rows.
	Success bool

	// Err describes why the file was skipped. It wraps ErrNoRows for
	// row-less files; anything else is a malformed-XML condition.
	Err error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about processing one file.
type ProcessingStats struct {
	// RowsExtracted is the number of rows detected and flattened.
	RowsExtracted int

	// ItemsExtracted is the number of sold items extracted.
	ItemsExtracted int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// NoRows reports whether the result describes a row-less file rather than
// a parse failure.
func (r Result) NoRows() bool {
	return errors.Is(r.Err, extractor.ErrNoRows) || errors.Is(r.Err, xmlparser.ErrEmptyDocument)
}

// =============================================================================
// LOGGER
// =============================================================================

// Logger is the logging interface used throughout the pipeline.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single XML file into flattened rows.
type Converter struct {
	// xmlPath is the path to the input XML file.
	xmlPath string

	// mainConfig is the main application configuration.
	mainConfig *config.MainConfig

	// logger is used for logging.
	logger Logger
}

// New creates a new Converter for one input file.
func New(xmlPath string, mainConfig *config.MainConfig, logger Logger) *Converter {
	if logger == nil {
		logger = NewDefaultLogger(mainConfig.LogLevel)
	}
	return &Converter{
		xmlPath:    xmlPath,
		mainConfig: mainConfig,
		logger:     logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{FilePath: c.xmlPath}

	fileName := filepath.Base(c.xmlPath)
	c.logger.Debug("Processing file: %s", fileName)

	// =========================================================================
	// STEP 1: PARSE XML
	// =========================================================================

	root, err := xmlparser.ParseFile(c.xmlPath)
	if err != nil {
		if errors.Is(err, xmlparser.ErrEmptyDocument) {
			result.Err = fmt.Errorf("%s: %w", fileName, err)
		} else {
			result.Err = fmt.Errorf("malformed XML in %s: %w", fileName, err)
		}
		return result
	}

	// =========================================================================
	// STEP 2: DETECT ROW SET
	// =========================================================================

	rowSet, err := extractor.Detect(root)
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", fileName, err)
		return result
	}

	result.Shape = rowSet.Shape
	c.logger.Debug("Detected shape %q with %d row(s)", rowSet.Shape, len(rowSet.Rows))

	// =========================================================================
	// STEP 3: FLATTEN ROWS
	// =========================================================================

	result.Rows = make([]*types.Row, len(rowSet.Rows))
	for i, rowNode := range rowSet.Rows {
		result.Rows[i] = flattener.Flatten(rowNode)
	}
	result.Stats.RowsExtracted = len(result.Rows)

	// =========================================================================
	// STEP 4: EXTRACT SOLD ITEMS
	// =========================================================================

	if !c.mainConfig.DisableSalesReport {
		result.Items = salesreport.Extract(root)
		result.Stats.ItemsExtracted = len(result.Items)
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}
