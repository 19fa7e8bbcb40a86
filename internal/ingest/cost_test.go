package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpulse/backend-go/internal/domain"
)

func costRowsFromCSV(t *testing.T, csvData string) []Row {
	t.Helper()
	rows, err := ReadDelimited([]byte(csvData))
	require.NoError(t, err)
	return rows
}

func TestCostNormalization(t *testing.T) {
	rows := costRowsFromCSV(t, `Item,Average Item Rate,Average of Est. Unit Cost,Quantity
ABC123 : Recert Widget,100,60,10
XYZ : Standard Widget,50,20,4
`)

	items, dropped := CostFromRows(rows)
	require.Len(t, items, 2)
	assert.Equal(t, 0, dropped)

	recert := items[0]
	assert.Equal(t, "ABC123", recert.ItemCode)
	assert.Equal(t, "ABC123 : Recert Widget", recert.FullItem)
	assert.Equal(t, domain.ItemTypeReCert, recert.ItemType)
	assert.Equal(t, 100.0, recert.UnitPrice)
	assert.Equal(t, 60.0, recert.UnitCost)
	assert.Equal(t, 10, recert.Quantity)
	assert.Equal(t, 40.0, recert.ProfitPerUnit)
	assert.Equal(t, 40.0, recert.ProfitMargin)
	assert.Equal(t, 400.0, recert.TotalProfit)
	assert.Equal(t, 1000.0, recert.TotalRevenue)
	assert.Equal(t, 600.0, recert.TotalCost)

	assert.Equal(t, domain.ItemTypeNew, items[1].ItemType)
	assert.Equal(t, "XYZ", items[1].ItemCode)
}

func TestCostDropsSubtotalRows(t *testing.T) {
	rows := costRowsFromCSV(t, `Item,Average Item Rate,Average of Est. Unit Cost,Quantity
ABC,100,60,10
Total,,,
Grand Total,,,14
`)

	items, dropped := CostFromRows(rows)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, dropped)
}

func TestCostZeroPriceNoDivision(t *testing.T) {
	rows := costRowsFromCSV(t, `Item,Average Item Rate,Average of Est. Unit Cost,Quantity
FREEBIE,0,25,3
`)

	items, _ := CostFromRows(rows)
	require.Len(t, items, 1)
	assert.Equal(t, 0.0, items[0].ProfitMargin)
	assert.Equal(t, 0.0, items[0].ProfitPerUnit)
	assert.Equal(t, 75.0, items[0].TotalCost)
}

func TestCostKeepsDuplicateCodes(t *testing.T) {
	rows := costRowsFromCSV(t, `Item,Average Item Rate,Average of Est. Unit Cost,Quantity
ABC : New,10,5,1
ABC : ReCert,8,4,2
`)

	items, _ := CostFromRows(rows)
	require.Len(t, items, 2)
	assert.Equal(t, "ABC", items[0].ItemCode)
	assert.Equal(t, "ABC", items[1].ItemCode)
}

func TestCostNegativeValuesClampToZero(t *testing.T) {
	rows := costRowsFromCSV(t, `Item,Average Item Rate,Average of Est. Unit Cost,Quantity
RET,-5,-2,-1
`)

	items, _ := CostFromRows(rows)
	require.Len(t, items, 1)
	assert.Equal(t, 0.0, items[0].UnitPrice)
	assert.Equal(t, 0.0, items[0].UnitCost)
	assert.Equal(t, 0, items[0].Quantity)
}

func TestCostFromGrid(t *testing.T) {
	grid := [][]string{
		{"Cost Export"},
		{"Item", "Average Item Rate", "Average of Est. Unit Cost", "Quantity"},
		{"ABC123 : Recert Widget", "100", "60", "10"},
		{"", "", "", ""},
		{"Total", "", "", ""},
	}

	items, dropped := CostFromGrid(grid)
	require.Len(t, items, 1)
	assert.Equal(t, "ABC123", items[0].ItemCode)
	assert.Equal(t, 600.0, items[0].TotalCost)
	assert.Equal(t, 1, dropped)
}
