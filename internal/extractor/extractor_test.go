package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlcut/xlcut/internal/xmlparser"
)

func parse(t *testing.T, input string) *xmlparser.Node {
	t.Helper()
	root, err := xmlparser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	return root
}

func TestDetect_RepeatingElement(t *testing.T) {
	root := parse(t, `<transactions>
		<meta>header</meta>
		<transaction id="1"/>
		<transaction id="2"/>
		<transaction id="3"/>
	</transactions>`)

	rs, err := Detect(root)
	require.NoError(t, err)

	assert.Equal(t, "transaction", rs.Shape)
	require.Len(t, rs.Rows, 3)

	// Rows come back in document order.
	for i, want := range []string{"1", "2", "3"} {
		assert.Equal(t, want, rs.Rows[i].Attributes[0].Value)
	}
}

func TestDetect_LargestCountWins(t *testing.T) {
	root := parse(t, `<root>
		<a/><b/><a/><b/><b/>
	</root>`)

	rs, err := Detect(root)
	require.NoError(t, err)
	assert.Equal(t, "b", rs.Shape)
	assert.Len(t, rs.Rows, 3)
}

func TestDetect_TieBreaksToFirstTagInDocumentOrder(t *testing.T) {
	root := parse(t, `<root>
		<beta/><alpha/><beta/><alpha/>
	</root>`)

	rs, err := Detect(root)
	require.NoError(t, err)

	// beta and alpha both occur twice; beta appeared first.
	assert.Equal(t, "beta", rs.Shape)
	assert.Len(t, rs.Rows, 2)
}

func TestDetect_FallbackWhenNothingRepeats(t *testing.T) {
	root := parse(t, `<report>
		<summary/><details/><footer/>
	</report>`)

	rs, err := Detect(root)
	require.NoError(t, err)

	// Each immediate child becomes its own row, regardless of tag.
	assert.Equal(t, DefaultShape, rs.Shape)
	require.Len(t, rs.Rows, 3)
	assert.Equal(t, "summary", rs.Rows[0].Tag)
	assert.Equal(t, "details", rs.Rows[1].Tag)
	assert.Equal(t, "footer", rs.Rows[2].Tag)
}

func TestDetect_SingleChildIsOneRow(t *testing.T) {
	root := parse(t, `<root><only>x</only></root>`)

	rs, err := Detect(root)
	require.NoError(t, err)
	assert.Equal(t, DefaultShape, rs.Shape)
	assert.Len(t, rs.Rows, 1)
}

func TestDetect_EmptyRoot(t *testing.T) {
	root := parse(t, `<root></root>`)

	_, err := Detect(root)
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestDetect_NilRoot(t *testing.T) {
	_, err := Detect(nil)
	assert.ErrorIs(t, err, ErrNoRows)
}
