package xmlparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TreeStructure(t *testing.T) {
	input := `<orders>
		<order id="1" status="open">
			<customer>Ada</customer>
			<total>10.50</total>
		</order>
		<order id="2">
			<customer>Grace</customer>
		</order>
	</orders>`

	root, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "orders", root.Tag)
	require.Len(t, root.Children, 2)

	first := root.Children[0]
	assert.Equal(t, "order", first.Tag)
	require.Len(t, first.Attributes, 2)

	// Attribute order must follow the document, not map order.
	assert.Equal(t, "id", first.Attributes[0].Name.Local)
	assert.Equal(t, "1", first.Attributes[0].Value)
	assert.Equal(t, "status", first.Attributes[1].Name.Local)
	assert.Equal(t, "open", first.Attributes[1].Value)

	require.Len(t, first.Children, 2)
	assert.Equal(t, "customer", first.Children[0].Tag)
	assert.Equal(t, "Ada", first.Children[0].TrimmedText())
	assert.Equal(t, "total", first.Children[1].Tag)
	assert.Equal(t, "10.50", first.Children[1].TrimmedText())
}

func TestParse_ChildOrderPreserved(t *testing.T) {
	input := `<root><b/><a/><c/><a/></root>`

	root, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	var tags []string
	for _, child := range root.Children {
		tags = append(tags, child.Tag)
	}
	assert.Equal(t, []string{"b", "a", "c", "a"}, tags)
}

func TestParse_TextHandling(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: `<v>hello</v>`, want: "hello"},
		{name: "surrounding whitespace trimmed", in: "<v>\n  hello  \n</v>", want: "hello"},
		{name: "empty element", in: `<v></v>`, want: ""},
		{name: "self closing", in: `<v/>`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Parse(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, root.TrimmedText())
		})
	}
}

func TestParse_MalformedXML(t *testing.T) {
	_, err := Parse(strings.NewReader(`<root><unclosed></root>`))
	assert.Error(t, err)
}

func TestParse_ContentAfterRootRejected(t *testing.T) {
	// A second top-level element must fail the whole document rather than
	// be dropped on the floor.
	_, err := Parse(strings.NewReader(`<orders><tx id="1"/></orders><junk/>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after document root")
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "ok.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<r><x>1</x></r>`), 0644))

	root, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "r", root.Tag)

	empty := filepath.Join(dir, "empty.xml")
	require.NoError(t, os.WriteFile(empty, []byte("   \n"), 0644))

	_, err = ParseFile(empty)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = ParseFile(filepath.Join(dir, "missing.xml"))
	assert.Error(t, err)
}
