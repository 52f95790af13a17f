// =============================================================================
// XLCut - Flattener Module
// =============================================================================
//
// This module converts one row element into a flat path→value mapping using
// dot-notation column names:
//
//   <transaction id="001">
//     <date>2024-01-15</date>
//     <customer><name>Ada</name></customer>
//   </transaction>
//
// becomes
//
//   @id           = "001"
//   date          = "2024-01-15"
//   customer.name = "Ada"
//
// RULES:
//   - Attributes contribute "@name" columns at their own level, so a nested
//     element's attribute becomes e.g. "customer.@id".
//   - A node without element children contributes its path as a column with
//     its trimmed text (empty string when there is no text). At the row's
//     own level the column is named after the row's tag, and only appears
//     when the row actually carries text.
//   - A node with element children contributes no text column of its own;
//     mixed content text is discarded.
//   - When a child tag repeats under one parent, each occurrence gets an
//     index suffix on its path segment ("item[0]", "item[1]", ...) in
//     document order, so repeated nested structures cannot collide.
//
// Values are passed through as strings; any numeric or date coercion is the
// output writer's concern.
//
// =============================================================================

package flattener

import (
	"fmt"

	"github.com/xlcut/xlcut/internal/types"
	"github.com/xlcut/xlcut/internal/xmlparser"
)

// Flatten converts one row element into a Row. Column order in the result
// follows a depth-first walk of the element in document order.
func Flatten(row *xmlparser.Node) *types.Row {
	out := types.NewRow()
	flattenInto(out, row, "")
	return out
}

// flattenInto walks one node and its subtree, writing columns into out.
// path is the dotted prefix for this node; it is empty for the row element
// itself.
func flattenInto(out *types.Row, node *xmlparser.Node, path string) {
	for _, attr := range node.Attributes {
		out.Set(joinPath(path, "@"+attr.Name.Local), attr.Value)
	}

	if !node.HasChildren() {
		text := node.TrimmedText()
		if path == "" {
			// The row element itself is a leaf. The attribute-only case
			// produces no text column at all.
			if text != "" {
				out.Set(node.Tag, text)
			}
			return
		}
		out.Set(path, text)
		return
	}

	// Tags occurring more than once under this parent get indexed path
	// segments; single occurrences keep the plain tag name.
	counts := make(map[string]int)
	for _, child := range node.Children {
		counts[child.Tag]++
	}

	indices := make(map[string]int)
	for _, child := range node.Children {
		segment := child.Tag
		if counts[child.Tag] > 1 {
			segment = fmt.Sprintf("%s[%d]", child.Tag, indices[child.Tag])
			indices[child.Tag]++
		}
		flattenInto(out, child, joinPath(path, segment))
	}
}

// joinPath appends a path segment to a dotted prefix.
func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}
