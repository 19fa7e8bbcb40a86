package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerSubtotalDetection(t *testing.T) {
	rows, err := ReadDelimited([]byte(`Customer,Amount
Total - Acme Corp,1000
Acme Corp,5000
total - lowercase ltd,200
Total - Zero Co,0
`))
	require.NoError(t, err)

	totals, dropped := CustomersFromRows(rows)
	require.Len(t, totals, 2)
	assert.Equal(t, 2, dropped)

	// Sorted descending by revenue.
	assert.Equal(t, "Acme Corp", totals[0].Customer)
	assert.Equal(t, 1000.0, totals[0].TotalRevenue)
	assert.Equal(t, "lowercase ltd", totals[1].Customer)
}

func TestCustomerIntercompanyExcluded(t *testing.T) {
	rows, err := ReadDelimited([]byte(`Customer,Amount
Total - IC-Branch East,900
Total - Northwind Intercompany,800
Total - Inter-Company Holdings,700
Total - Real Customer,600
`))
	require.NoError(t, err)

	totals, dropped := CustomersFromRows(rows)
	require.Len(t, totals, 1)
	assert.Equal(t, "Real Customer", totals[0].Customer)
	assert.Equal(t, 3, dropped)
}

func TestCustomerFromGrid(t *testing.T) {
	grid := [][]string{
		{"Revenue by Customer"},
		{"Customer", "Amount"},
		{"Total - Acme Corp", "1000"},
		{"Line detail", "400"},
	}

	totals, _ := CustomersFromGrid(grid)
	require.Len(t, totals, 1)
	assert.Equal(t, "Acme Corp", totals[0].Customer)
	assert.Equal(t, 1000.0, totals[0].TotalRevenue)
}
