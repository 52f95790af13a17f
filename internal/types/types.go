// =============================================================================
// XLCut - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - flattener
//   - table
//   - xlsxwriter
//
// =============================================================================

package types

// =============================================================================
// ROW TYPE
// =============================================================================

// Row is an ordered mapping from column path to scalar string value.
// One Row is produced per detected repeating element. Iteration order is
// the order in which keys were first set, never Go map order; column
// ordering in the output workbook depends on this.
type Row struct {
	keys   []string
	values map[string]string
}

// NewRow creates an empty Row.
func NewRow() *Row {
	return &Row{values: make(map[string]string)}
}

// Set stores a value under the given column path. The first Set of a path
// fixes its position in the key order; later Sets overwrite the value only.
func (r *Row) Set(path, value string) {
	if _, exists := r.values[path]; !exists {
		r.keys = append(r.keys, path)
	}
	r.values[path] = value
}

// Get returns the value stored under the given column path.
func (r *Row) Get(path string) (string, bool) {
	v, ok := r.values[path]
	return v, ok
}

// Keys returns the column paths in first-set order.
func (r *Row) Keys() []string {
	return r.keys
}

// Len returns the number of columns in the row.
func (r *Row) Len() int {
	return len(r.keys)
}
