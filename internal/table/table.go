// =============================================================================
// XLCut - Table Assembly Module
// =============================================================================
//
// This module accumulates flattened rows into tables and resolves each
// table's column set:
//
//   - Column order is the order of first appearance of each column across
//     the row sequence, scanned in row order. Appending the same rows twice
//     yields the same order.
//   - A row missing a column that later rows introduced is backfilled with
//     an empty string when the table is materialized. Columns never shift.
//   - Rows are grouped by shape identifier across all input files; rows
//     from different files sharing a shape merge into one table.
//   - When a run processed more than one file, a trailing "_source_file"
//     column records each row's originating file name. With exactly one
//     file the column is omitted entirely.
//
// =============================================================================

package table

import (
	"github.com/xlcut/xlcut/internal/types"
)

// SourceColumn is the name of the trailing column holding the originating
// file name on multi-file runs.
const SourceColumn = "_source_file"

// =============================================================================
// TABLE
// =============================================================================

// Table is an ordered sequence of rows sharing one shape, plus the resolved
// column order across those rows.
type Table struct {
	// Shape is the tag-name identity grouping these rows.
	Shape string

	rows    []*types.Row
	sources []string
	columns []string
	colSeen map[string]bool
}

// newTable creates an empty table for the given shape.
func newTable(shape string) *Table {
	return &Table{
		Shape:   shape,
		colSeen: make(map[string]bool),
	}
}

// append adds one row and records its originating file. New column paths
// are appended to the table's column order as they first appear.
func (t *Table) append(row *types.Row, sourceFile string) {
	for _, key := range row.Keys() {
		if !t.colSeen[key] {
			t.colSeen[key] = true
			t.columns = append(t.columns, key)
		}
	}
	t.rows = append(t.rows, row)
	t.sources = append(t.sources, sourceFile)
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns the resolved column order. When includeSource is true the
// source-file column is appended after the natural column set.
func (t *Table) Columns(includeSource bool) []string {
	columns := make([]string, len(t.columns), len(t.columns)+1)
	copy(columns, t.columns)
	if includeSource {
		columns = append(columns, SourceColumn)
	}
	return columns
}

// MaterializedRows returns every row as a string slice aligned with
// Columns(includeSource). Cells for columns a row never supplied are
// backfilled with the empty string.
func (t *Table) MaterializedRows(includeSource bool) [][]string {
	out := make([][]string, len(t.rows))

	for i, row := range t.rows {
		values := make([]string, 0, len(t.columns)+1)
		for _, col := range t.columns {
			value, _ := row.Get(col)
			values = append(values, value)
		}
		if includeSource {
			values = append(values, t.sources[i])
		}
		out[i] = values
	}

	return out
}

// =============================================================================
// ACCUMULATOR
// =============================================================================

// Accumulator collects rows from the whole run, grouped by shape. It is
// only ever touched by the single processing goroutine; no locking is
// needed.
type Accumulator struct {
	tables  []*Table
	byShape map[string]*Table
	files   map[string]bool
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		byShape: make(map[string]*Table),
		files:   make(map[string]bool),
	}
}

// Add merges one file's rows for a shape into the run. Tables are created
// on first sight of a shape and keep their first-seen order.
func (a *Accumulator) Add(shape, sourceFile string, rows []*types.Row) {
	t, ok := a.byShape[shape]
	if !ok {
		t = newTable(shape)
		a.byShape[shape] = t
		a.tables = append(a.tables, t)
	}

	a.files[sourceFile] = true
	for _, row := range rows {
		t.append(row, sourceFile)
	}
}

// Tables returns the accumulated tables in first-seen shape order.
func (a *Accumulator) Tables() []*Table {
	return a.tables
}

// TotalRows returns the row count across all tables.
func (a *Accumulator) TotalRows() int {
	total := 0
	for _, t := range a.tables {
		total += t.Len()
	}
	return total
}

// IncludeSource reports whether the source-file column applies to this
// run: true only when rows came from more than one file.
func (a *Accumulator) IncludeSource() bool {
	return len(a.files) > 1
}
