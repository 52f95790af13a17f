package converter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlcut/xlcut/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig() *config.MainConfig {
	return &config.MainConfig{LogLevel: "error"}
}

const ordersDoc = `
<orders>
  <transaction id="T-1001">
    <date>2024-01-15</date>
    <amount>59.90</amount>
    <customer>
      <name>Jane Doe</name>
      <email>jane@example.com</email>
    </customer>
    <status>complete</status>
  </transaction>
  <transaction id="T-1002">
    <date>2024-01-16</date>
    <amount>12.00</amount>
    <customer>
      <name>Bob Roe</name>
      <email>bob@example.com</email>
    </customer>
    <status>pending</status>
  </transaction>
</orders>`

func TestRun_OrdersDocument(t *testing.T) {
	path := writeFile(t, "orders.xml", ordersDoc)

	result := New(path, testConfig(), nil).Run()
	require.True(t, result.Success)
	require.NoError(t, result.Err)

	assert.Equal(t, "transaction", result.Shape)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, 2, result.Stats.RowsExtracted)

	first := result.Rows[0]
	assert.Equal(t,
		[]string{"@id", "date", "amount", "customer.name", "customer.email", "status"},
		first.Keys())

	id, _ := first.Get("@id")
	assert.Equal(t, "T-1001", id)
	name, _ := first.Get("customer.name")
	assert.Equal(t, "Jane Doe", name)

	secondID, _ := result.Rows[1].Get("@id")
	assert.Equal(t, "T-1002", secondID)
}

func TestRun_MalformedXML(t *testing.T) {
	path := writeFile(t, "bad.xml", `<orders><transaction></orders>`)

	result := New(path, testConfig(), nil).Run()
	assert.False(t, result.Success)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "malformed XML in bad.xml")
	assert.False(t, result.NoRows())
}

func TestRun_EmptyFileIsNoRows(t *testing.T) {
	path := writeFile(t, "empty.xml", "   \n")

	result := New(path, testConfig(), nil).Run()
	assert.False(t, result.Success)
	require.Error(t, result.Err)
	assert.True(t, result.NoRows())
}

func TestRun_EmptyRootIsNoRows(t *testing.T) {
	path := writeFile(t, "hollow.xml", `<orders></orders>`)

	result := New(path, testConfig(), nil).Run()
	assert.False(t, result.Success)
	assert.True(t, result.NoRows())
}

func TestRun_SalesItemsExtracted(t *testing.T) {
	doc := `
<journal>
  <trans type="sale">
    <trHeader>
      <date>2024-01-15T09:30:00Z</date>
      <cashier>Sam</cashier>
    </trHeader>
    <trLines>
      <trLine><trlDesc>COFFEE</trlDesc><trlLineTot>5.00</trlLineTot></trLine>
    </trLines>
  </trans>
  <trans type="sale">
    <trHeader><date>2024-01-15T10:00:00Z</date></trHeader>
    <trLines>
      <trLine><trlDesc>TEA</trlDesc><trlLineTot>3.00</trlLineTot></trLine>
    </trLines>
  </trans>
</journal>`
	path := writeFile(t, "journal.xml", doc)

	result := New(path, testConfig(), nil).Run()
	require.True(t, result.Success)

	// The generic pipeline and the sales report both see the same document.
	assert.Equal(t, "trans", result.Shape)
	assert.Len(t, result.Rows, 2)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "COFFEE", result.Items[0].Description)
	assert.Equal(t, 2, result.Stats.ItemsExtracted)
}

func TestRun_SalesReportDisabled(t *testing.T) {
	doc := `
<journal>
  <trans type="sale">
    <trHeader><date>2024-01-15T09:30:00Z</date></trHeader>
    <trLines>
      <trLine><trlDesc>COFFEE</trlDesc><trlLineTot>5.00</trlLineTot></trLine>
    </trLines>
  </trans>
</journal>`
	path := writeFile(t, "journal.xml", doc)

	cfg := testConfig()
	cfg.DisableSalesReport = true

	result := New(path, cfg, nil).Run()
	require.True(t, result.Success)
	assert.Len(t, result.Rows, 1)
	assert.Empty(t, result.Items)
}
