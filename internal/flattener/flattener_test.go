package flattener

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlcut/xlcut/internal/xmlparser"
)

func parseRow(t *testing.T, input string) *xmlparser.Node {
	t.Helper()
	root, err := xmlparser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	return root
}

func rowMap(t *testing.T, input string) (map[string]string, []string) {
	t.Helper()
	row := Flatten(parseRow(t, input))
	out := make(map[string]string)
	for _, key := range row.Keys() {
		v, ok := row.Get(key)
		require.True(t, ok)
		out[key] = v
	}
	return out, row.Keys()
}

func TestFlatten_AttributesOnly(t *testing.T) {
	values, keys := rowMap(t, `<row id="7" status="open"/>`)

	// One column per attribute, @-prefixed, nothing else.
	assert.Equal(t, []string{"@id", "@status"}, keys)
	assert.Equal(t, "7", values["@id"])
	assert.Equal(t, "open", values["@status"])
}

func TestFlatten_SimpleTextChildren(t *testing.T) {
	values, keys := rowMap(t, `<row>
		<date> 2024-01-15 </date>
		<amount>99.99</amount>
	</row>`)

	assert.Equal(t, []string{"date", "amount"}, keys)
	assert.Equal(t, "2024-01-15", values["date"], "text should be trimmed")
	assert.Equal(t, "99.99", values["amount"])
}

func TestFlatten_NestedChildren(t *testing.T) {
	values, keys := rowMap(t, `<row>
		<customer>
			<name>Ada</name>
			<email>ada@example.com</email>
		</customer>
	</row>`)

	assert.Equal(t, []string{"customer.name", "customer.email"}, keys)
	assert.Equal(t, "Ada", values["customer.name"])
	assert.Equal(t, "ada@example.com", values["customer.email"])
}

func TestFlatten_NestedAttributes(t *testing.T) {
	values, _ := rowMap(t, `<row>
		<customer id="42">Ada</customer>
	</row>`)

	// The nested element's attribute is prefixed with its own path, and
	// the leaf text lands on the path itself.
	assert.Equal(t, "42", values["customer.@id"])
	assert.Equal(t, "Ada", values["customer"])
}

func TestFlatten_MixedContentTextDiscarded(t *testing.T) {
	values, keys := rowMap(t, `<row>stray text<child>kept</child></row>`)

	assert.Equal(t, []string{"child"}, keys)
	assert.Equal(t, "kept", values["child"])
}

func TestFlatten_EmptyLeafContributesEmptyColumn(t *testing.T) {
	values, keys := rowMap(t, `<row><note/></row>`)

	assert.Equal(t, []string{"note"}, keys)
	assert.Equal(t, "", values["note"])
}

func TestFlatten_RowLevelTextUsesTagName(t *testing.T) {
	values, keys := rowMap(t, `<entry>just text</entry>`)

	assert.Equal(t, []string{"entry"}, keys)
	assert.Equal(t, "just text", values["entry"])
}

func TestFlatten_NestedRepeatsAreIndexed(t *testing.T) {
	values, keys := rowMap(t, `<row>
		<item><sku>A-1</sku></item>
		<item><sku>A-2</sku></item>
		<item><sku>A-3</sku></item>
	</row>`)

	assert.Equal(t, []string{"item[0].sku", "item[1].sku", "item[2].sku"}, keys)
	assert.Equal(t, "A-1", values["item[0].sku"])
	assert.Equal(t, "A-2", values["item[1].sku"])
	assert.Equal(t, "A-3", values["item[2].sku"])
}

func TestFlatten_SingleOccurrenceKeepsPlainSegment(t *testing.T) {
	_, keys := rowMap(t, `<row>
		<item><sku>A-1</sku></item>
		<other>x</other>
	</row>`)

	assert.Equal(t, []string{"item.sku", "other"}, keys)
}

func TestFlatten_ReadmeExample(t *testing.T) {
	input := `<transaction id="001">
		<date>2024-01-15</date>
		<amount>99.99</amount>
		<customer>
			<name>John Smith</name>
			<email>john@example.com</email>
		</customer>
		<status>completed</status>
	</transaction>`

	values, keys := rowMap(t, input)

	assert.Equal(t, []string{"@id", "date", "amount", "customer.name", "customer.email", "status"}, keys)
	assert.Equal(t, "001", values["@id"])
	assert.Equal(t, "2024-01-15", values["date"])
	assert.Equal(t, "99.99", values["amount"])
	assert.Equal(t, "John Smith", values["customer.name"])
	assert.Equal(t, "john@example.com", values["customer.email"])
	assert.Equal(t, "completed", values["status"])
}

func TestFlatten_OrderIsDeterministic(t *testing.T) {
	input := `<row a="1" b="2"><x>1</x><y>2</y><z><q>3</q></z></row>`

	first := Flatten(parseRow(t, input))
	second := Flatten(parseRow(t, input))

	assert.Equal(t, first.Keys(), second.Keys())
}
