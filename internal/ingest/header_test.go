package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveHeaderFindsMajorityRow(t *testing.T) {
	grid := [][]string{
		{"Inventory Valuation Report"},
		{"As of 2024-06-30"},
		{},
		{"Item", "Average Item Rate", "Average of Est. Unit Cost", "Quantity"},
		{"ABC123", "100", "60", "10"},
	}

	idx := ResolveHeader(grid, []string{"Item", "Average Item Rate", "Average of Est. Unit Cost", "Quantity"})
	assert.Equal(t, 3, idx)
}

func TestResolveHeaderHalfMatchIsEnough(t *testing.T) {
	// 2 of 4 expected tokens present: meets ceil(0.5 * 4).
	grid := [][]string{
		{"Purchase Orders"},
		{"Item", "Quantity", "Something Else"},
	}
	idx := ResolveHeader(grid, []string{"Item", "Quantity", "Amount", "Date"})
	assert.Equal(t, 1, idx)
}

func TestResolveHeaderBelowThresholdFallsBack(t *testing.T) {
	grid := [][]string{
		{"nothing", "relevant"},
		{"here", "either"},
	}
	idx := ResolveHeader(grid, []string{"Item", "Quantity", "Amount"})
	assert.Equal(t, 0, idx)
}

func TestResolveHeaderScanWindow(t *testing.T) {
	grid := make([][]string, 0, 40)
	for i := 0; i < 35; i++ {
		grid = append(grid, []string{"filler"})
	}
	// Real header sits beyond the scan window; fallback applies.
	grid = append(grid, []string{"Item", "Quantity"})

	idx := ResolveHeader(grid, []string{"Item", "Quantity"})
	assert.Equal(t, 0, idx)
}

func TestFindCol(t *testing.T) {
	header := []string{"Date", "Supplier Name", "Total Amount", "Qty"}

	assert.Equal(t, 3, FindCol(header, "Qty", "Quantity"))
	assert.Equal(t, 1, FindCol(header, "Supplier", "Vendor"))
	assert.Equal(t, 2, FindCol(header, "Amount"))
	assert.Equal(t, -1, FindCol(header, "Margin"))
}

func TestFindColExactBeatsSubstring(t *testing.T) {
	header := []string{"Quantity Sold", "Quantity"}
	// "Quantity" matches column 1 exactly even though column 0 contains it.
	assert.Equal(t, 1, FindCol(header, "Quantity"))
}
