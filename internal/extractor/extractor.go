// =============================================================================
// XLCut - Row-Set Extractor Module
// =============================================================================
//
// This module decides which elements of a parsed XML document constitute
// "the rows" of the output table. The detection has no prior knowledge of
// the document's schema:
//
//   1. Group the root's immediate children by tag name.
//   2. The tag with the largest count of same-tag siblings occurring more
//      than once is the repeating element. Ties break to the tag whose
//      first occurrence comes earliest in document order.
//   3. If no tag repeats, the root's immediate children themselves are the
//      rows, one row per child regardless of tag.
//   4. A root with no children at all yields ErrNoRows.
//
// The chosen tag name doubles as the table's shape identifier, which names
// the worksheet and merges matching tables across files. The fallback case
// has no repeating tag and uses the default shape.
//
// =============================================================================

package extractor

import (
	"errors"

	"github.com/xlcut/xlcut/internal/xmlparser"
)

// DefaultShape is the shape identifier used when no repeating element is
// detected and the root's children are taken as the row set.
const DefaultShape = "data"

// ErrNoRows is returned when the document root has no child elements.
var ErrNoRows = errors.New("no rows found")

// =============================================================================
// ROW SET
// =============================================================================

// RowSet is the result of repeating-element detection: the row elements in
// document order and the shape identifier for the table they belong to.
type RowSet struct {
	// Rows are the detected row elements, in document order.
	Rows []*xmlparser.Node

	// Shape is the tag name of the detected repeating element, or
	// DefaultShape when the fallback row set was used.
	Shape string
}

// =============================================================================
// DETECTION
// =============================================================================

// Detect examines the root of a parsed document and returns the detected
// row set. It has no side effects on the tree.
func Detect(root *xmlparser.Node) (*RowSet, error) {
	if root == nil || !root.HasChildren() {
		return nil, ErrNoRows
	}

	// Count the root's immediate children by tag, remembering the order in
	// which each tag was first seen. The first-seen order is the tie-break,
	// so a plain map is not enough here.
	counts := make(map[string]int)
	var tagOrder []string

	for _, child := range root.Children {
		if counts[child.Tag] == 0 {
			tagOrder = append(tagOrder, child.Tag)
		}
		counts[child.Tag]++
	}

	// Pick the tag with the highest repeat count above one. Scanning in
	// first-seen order makes the tie-break deterministic: a later tag must
	// strictly beat the current best to win.
	bestTag := ""
	bestCount := 1

	for _, tag := range tagOrder {
		if counts[tag] > bestCount {
			bestTag = tag
			bestCount = counts[tag]
		}
	}

	if bestTag == "" {
		// Nothing repeats: every immediate child is its own row.
		rows := make([]*xmlparser.Node, len(root.Children))
		copy(rows, root.Children)
		return &RowSet{Rows: rows, Shape: DefaultShape}, nil
	}

	var rows []*xmlparser.Node
	for _, child := range root.Children {
		if child.Tag == bestTag {
			rows = append(rows, child)
		}
	}

	return &RowSet{Rows: rows, Shape: bestTag}, nil
}
