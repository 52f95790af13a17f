// =============================================================================
// XLCut - XLSX Writer Module
// =============================================================================
//
// This module serializes the accumulated tables into a formatted Excel
// workbook:
//
//   - One worksheet per detected shape. A single-shape run uses the plain
//     sheet name "Data"; multi-shape runs name each sheet after its shape.
//   - When sold items were extracted, an "Items Sold" sheet comes first.
//   - Header rows are bold with a solid fill, thin borders and centered
//     text. Data rows alternate a light background fill for readability.
//   - Cell values that look numeric are written as numbers so Excel can
//     sum and sort them; everything else stays a string. This is the only
//     place any type coercion happens; the flattener deals in strings.
//   - Column widths are auto-fitted from the header and the first 100 rows
//     of data, capped by configuration.
//
// Sheet names are sanitized for Excel's rules: at most 31 characters, no
// path separators.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/xlcut/xlcut/internal/config"
	"github.com/xlcut/xlcut/internal/salesreport"
	"github.com/xlcut/xlcut/internal/table"
)

// widthSampleRows caps how many data rows are measured for column
// auto-fitting.
const widthSampleRows = 100

// SheetStat reports how many data rows a written sheet holds.
type SheetStat struct {
	Name string
	Rows int
}

// =============================================================================
// WRITER
// =============================================================================

// Writer builds and saves the output workbook.
type Writer struct {
	styling config.StylingConfig
}

// New creates a Writer with the given styling settings.
func New(styling config.StylingConfig) *Writer {
	return &Writer{styling: styling}
}

// Write serializes the sold items and the accumulated tables into a
// workbook at outputPath. At least one item or one table row must be
// present; the caller handles the empty-run case before getting here.
//
// Returns the per-sheet row counts in workbook order. A save failure is
// fatal for the run and is returned wrapped.
func (w *Writer) Write(acc *table.Accumulator, items []salesreport.Item, outputPath string) ([]SheetStat, error) {
	f := excelize.NewFile()
	defer f.Close()

	var stats []SheetStat
	usedNames := make(map[string]bool)

	// The new workbook starts with a default sheet; the first sheet we
	// write renames it, every later sheet is created fresh.
	firstSheet := true
	claimSheet := func(name string) (string, error) {
		name = dedupeName(usedNames, sanitizeSheetName(name))
		usedNames[name] = true
		if firstSheet {
			firstSheet = false
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return "", err
			}
			return name, nil
		}
		if _, err := f.NewSheet(name); err != nil {
			return "", err
		}
		return name, nil
	}

	if len(items) > 0 {
		name, err := claimSheet("Items Sold")
		if err != nil {
			return nil, fmt.Errorf("failed to create sheet: %w", err)
		}
		if err := w.writeItemsSheet(f, name, items); err != nil {
			return nil, err
		}
		stats = append(stats, SheetStat{Name: name, Rows: len(items)})
	}

	tables := acc.Tables()
	includeSource := acc.IncludeSource()

	for _, t := range tables {
		sheetName := t.Shape
		if len(tables) == 1 {
			sheetName = "Data"
		}

		name, err := claimSheet(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheet: %w", err)
		}

		columns := t.Columns(includeSource)
		rows := t.MaterializedRows(includeSource)
		if err := w.writeDataSheet(f, name, columns, rows); err != nil {
			return nil, err
		}
		stats = append(stats, SheetStat{Name: name, Rows: len(rows)})
	}

	if err := f.SaveAs(outputPath); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return stats, nil
}

// =============================================================================
// DATA SHEETS
// =============================================================================

// writeDataSheet writes one table to a worksheet with the standard header
// and stripe styling.
func (w *Writer) writeDataSheet(f *excelize.File, sheet string, columns []string, rows [][]string) error {
	styles, err := w.newSheetStyles(f, w.styling.HeaderColor, w.styling.StripeColor)
	if err != nil {
		return err
	}

	if err := w.writeHeader(f, sheet, columns, styles.header); err != nil {
		return err
	}

	for i, row := range rows {
		excelRow := i + 2
		cellStyle := styles.plain
		if excelRow%2 == 0 {
			cellStyle = styles.striped
		}

		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, excelRow)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, coerceValue(value)); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, cellStyle); err != nil {
				return err
			}
		}
	}

	return w.autoFitColumns(f, sheet, columns, rows)
}

// =============================================================================
// ITEMS SOLD SHEET
// =============================================================================

// writeItemsSheet writes the sold items with the sales styling and currency
// formats on the money columns.
func (w *Writer) writeItemsSheet(f *excelize.File, sheet string, items []salesreport.Item) error {
	styles, err := w.newSheetStyles(f, w.styling.SalesHeaderColor, w.styling.SalesStripeColor)
	if err != nil {
		return err
	}

	currencyFmt := "$#,##0.00"
	currency, err := f.NewStyle(&excelize.Style{
		Border:       thinBorders(),
		CustomNumFmt: &currencyFmt,
	})
	if err != nil {
		return err
	}
	currencyStriped, err := f.NewStyle(&excelize.Style{
		Border:       thinBorders(),
		Fill:         solidFill(w.styling.SalesStripeColor),
		CustomNumFmt: &currencyFmt,
	})
	if err != nil {
		return err
	}

	columns := salesreport.Columns
	if err := w.writeHeader(f, sheet, columns, styles.header); err != nil {
		return err
	}

	// Money columns get the currency format on top of the stripe styling.
	moneyColumns := map[string]bool{"Unit Price": true, "Total": true}

	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = item.Values()

		excelRow := i + 2
		striped := excelRow%2 == 0

		for j, value := range rows[i] {
			cell, err := excelize.CoordinatesToCellName(j+1, excelRow)
			if err != nil {
				return err
			}

			cellStyle := styles.plain
			if striped {
				cellStyle = styles.striped
			}

			if moneyColumns[columns[j]] {
				if amount, err := strconv.ParseFloat(value, 64); err == nil {
					if err := f.SetCellValue(sheet, cell, amount); err != nil {
						return err
					}
					cellStyle = currency
					if striped {
						cellStyle = currencyStriped
					}
				} else if err := f.SetCellValue(sheet, cell, value); err != nil {
					return err
				}
			} else if err := f.SetCellValue(sheet, cell, coerceValue(value)); err != nil {
				return err
			}

			if err := f.SetCellStyle(sheet, cell, cell, cellStyle); err != nil {
				return err
			}
		}
	}

	return w.autoFitColumns(f, sheet, columns, rows)
}

// =============================================================================
// STYLING HELPERS
// =============================================================================

// sheetStyles holds the style IDs shared by all cells of one sheet.
type sheetStyles struct {
	header  int
	plain   int
	striped int
}

// newSheetStyles registers the header, plain and striped cell styles for a
// sheet with the given colors.
func (w *Writer) newSheetStyles(f *excelize.File, headerColor, stripeColor string) (sheetStyles, error) {
	var styles sheetStyles
	var err error

	styles.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: w.styling.HeaderFontColor},
		Fill:      solidFill(headerColor),
		Border:    thinBorders(),
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return styles, err
	}

	styles.plain, err = f.NewStyle(&excelize.Style{Border: thinBorders()})
	if err != nil {
		return styles, err
	}

	styles.striped, err = f.NewStyle(&excelize.Style{
		Border: thinBorders(),
		Fill:   solidFill(stripeColor),
	})
	return styles, err
}

// writeHeader writes and styles the header row of a sheet.
func (w *Writer) writeHeader(f *excelize.File, sheet string, columns []string, style int) error {
	for i, name := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

// autoFitColumns sizes each column from the header and a sample of the
// data, capped by the configured maximum width.
func (w *Writer) autoFitColumns(f *excelize.File, sheet string, columns []string, rows [][]string) error {
	sample := rows
	if len(sample) > widthSampleRows {
		sample = sample[:widthSampleRows]
	}

	for i, name := range columns {
		width := float64(len(name))
		for _, row := range sample {
			if i < len(row) && float64(len(row[i])) > width {
				width = float64(len(row[i]))
			}
		}

		width += 2
		if width > w.styling.MaxColumnWidth {
			width = w.styling.MaxColumnWidth
		}

		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, colName, colName, width); err != nil {
			return err
		}
	}

	return nil
}

// thinBorders returns a thin border on all four sides.
func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1},
		{Type: "right", Style: 1},
		{Type: "top", Style: 1},
		{Type: "bottom", Style: 1},
	}
}

// solidFill returns a solid pattern fill in the given color.
func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
}

// =============================================================================
// VALUE COERCION
// =============================================================================

// coerceValue converts a string to an int64 or float64 when it parses as
// one, so numeric columns behave as numbers in Excel. Everything else is
// returned unchanged.
func coerceValue(value string) interface{} {
	if value == "" {
		return value
	}
	if strings.Contains(value, ".") {
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
		return value
	}
	if v, err := strconv.ParseInt(value, 10, 64); err == nil {
		return v
	}
	return value
}

// =============================================================================
// SHEET NAMING
// =============================================================================

// sanitizeSheetName makes a shape identifier safe for use as an Excel
// sheet name: path separators become dashes and the result is capped at
// Excel's 31-character limit.
func sanitizeSheetName(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	if name == "" {
		name = "Data"
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

// dedupeName resolves collisions between sanitized sheet names by
// appending a counter, staying within the length limit.
func dedupeName(used map[string]bool, name string) string {
	if !used[name] {
		return name
	}
	for i := 2; ; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		base := name
		if len(base)+len(suffix) > 31 {
			base = base[:31-len(suffix)]
		}
		candidate := base + suffix
		if !used[candidate] {
			return candidate
		}
	}
}
