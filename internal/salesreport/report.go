// =============================================================================
// XLCut - Sales Report Module
// =============================================================================
//
// This module extracts individual sold items from point-of-sale transaction
// documents. Registers export their journal as XML with a structure like:
//
//   <journal>
//     <trans type="sale">
//       <trHeader>
//         <date>2024-01-15T09:30:00Z</date>
//         <cashier>Sam</cashier>
//         <physicalRegisterID>2</physicalRegisterID>
//         <trTickNum><trSeq>1042</trSeq></trTickNum>
//       </trHeader>
//       <trLines>
//         <trLine type="item">
//           <trlSign>1.00</trlSign>
//           <trlDesc>COFFEE 12OZ</trlDesc>
//           ...
//         </trLine>
//       </trLines>
//     </trans>
//   </journal>
//
// Only positive-sign lines with a positive line total are kept: refunds,
// payouts and zero lines are not sales. Documents without sale transactions
// simply yield no items; the generic table pipeline still handles them.
//
// =============================================================================

package salesreport

import (
	"strconv"
	"time"

	"github.com/xlcut/xlcut/internal/xmlparser"
)

// Columns is the fixed column order of the Items Sold sheet.
var Columns = []string{
	"Date", "Register", "Cashier", "Ticket#", "Description",
	"Quantity", "Unit Price", "Total", "Department", "UPC", "Type",
}

// Item is one sold line item extracted from a sale transaction.
type Item struct {
	Date        string
	Register    string
	Cashier     string
	Ticket      string
	Description string
	Quantity    string
	UnitPrice   string
	Total       string
	Department  string
	UPC         string
	LineType    string
}

// Values returns the item's cell values aligned with Columns.
func (it Item) Values() []string {
	return []string{
		it.Date, it.Register, it.Cashier, it.Ticket, it.Description,
		it.Quantity, it.UnitPrice, it.Total, it.Department, it.UPC, it.LineType,
	}
}

// TotalValue returns the item's line total as a float, or 0 when the value
// does not parse.
func (it Item) TotalValue() float64 {
	v, err := strconv.ParseFloat(it.Total, 64)
	if err != nil {
		return 0
	}
	return v
}

// =============================================================================
// EXTRACTION
// =============================================================================

// Extract walks a parsed document and returns the sold items from all sale
// transactions, in document order.
func Extract(root *xmlparser.Node) []Item {
	var items []Item

	for _, trans := range findAll(root, "trans") {
		if attrValue(trans, "type") != "sale" {
			continue
		}

		header := firstChild(trans, "trHeader")
		if header == nil {
			continue
		}

		date := childText(header, "date")
		cashier := childText(header, "cashier")
		register := childText(header, "physicalRegisterID")

		ticket := ""
		if tickNum := firstChild(header, "trTickNum"); tickNum != nil {
			ticket = childText(tickNum, "trSeq")
		}

		lines := firstChild(trans, "trLines")
		if lines == nil {
			continue
		}

		for _, line := range lines.Children {
			if line.Tag != "trLine" {
				continue
			}

			// Sign 1.00 is a sale, -1.00 a payout or refund.
			sign, err := strconv.ParseFloat(childTextDefault(line, "trlSign", "1.00"), 64)
			if err != nil {
				sign = 1.0
			}
			if sign <= 0 {
				continue
			}

			total := childTextDefault(line, "trlLineTot", "0.00")
			totalValue, err := strconv.ParseFloat(total, 64)
			if err != nil || totalValue <= 0 {
				continue
			}

			items = append(items, Item{
				Date:        formatDate(date),
				Register:    register,
				Cashier:     cashier,
				Ticket:      ticket,
				Description: childText(line, "trlDesc"),
				Quantity:    childTextDefault(line, "trlQty", "1"),
				UnitPrice:   childText(line, "trlUnitPrice"),
				Total:       total,
				Department:  childText(line, "trlDept"),
				UPC:         childText(line, "trlUPC"),
				LineType:    attrValue(line, "type"),
			})
		}
	}

	return items
}

// GrandTotal sums the line totals of all items.
func GrandTotal(items []Item) float64 {
	total := 0.0
	for _, it := range items {
		total += it.TotalValue()
	}
	return total
}

// =============================================================================
// TREE HELPERS
// =============================================================================

// findAll returns every element with the given tag anywhere in the subtree,
// in document order.
func findAll(node *xmlparser.Node, tag string) []*xmlparser.Node {
	var found []*xmlparser.Node
	if node.Tag == tag {
		found = append(found, node)
	}
	for _, child := range node.Children {
		found = append(found, findAll(child, tag)...)
	}
	return found
}

// firstChild returns the first immediate child with the given tag, or nil.
func firstChild(node *xmlparser.Node, tag string) *xmlparser.Node {
	for _, child := range node.Children {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// childText returns the trimmed text of the first immediate child with the
// given tag, or "" when the child is absent.
func childText(node *xmlparser.Node, tag string) string {
	if child := firstChild(node, tag); child != nil {
		return child.TrimmedText()
	}
	return ""
}

// childTextDefault is childText with a fallback for absent or empty values.
func childTextDefault(node *xmlparser.Node, tag, fallback string) string {
	if text := childText(node, tag); text != "" {
		return text
	}
	return fallback
}

// attrValue returns the value of the named attribute, or "".
func attrValue(node *xmlparser.Node, name string) string {
	for _, attr := range node.Attributes {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// formatDate reformats an ISO timestamp as "2006-01-02 15:04" for display.
// Values that do not parse are passed through untouched.
func formatDate(value string) string {
	if value == "" {
		return value
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02 15:04")
		}
	}
	return value
}
