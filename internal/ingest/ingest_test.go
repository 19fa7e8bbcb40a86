package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/stockpulse/backend-go/internal/domain"
)

func TestIngestRejectsWrongExtension(t *testing.T) {
	_, err := Ingest("report.pdf", domain.FormatDelimited, domain.CategoryCost, []byte("Item\n"))
	var formatErr *domain.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "report.pdf", formatErr.Filename)

	// Legacy BIFF workbooks are not decodable and fail the slot check.
	_, err = Ingest("report.xls", domain.FormatWorkbook, domain.CategoryCost, nil)
	require.ErrorAs(t, err, &formatErr)

	// Extension belongs to the other slot.
	_, err = Ingest("report.csv", domain.FormatWorkbook, domain.CategoryCost, nil)
	require.ErrorAs(t, err, &formatErr)
}

func TestIngestParseError(t *testing.T) {
	_, err := Ingest("report.xlsx", domain.FormatWorkbook, domain.CategoryCost, []byte("not a zip container"))
	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.NotNil(t, parseErr.Err)
}

func TestIngestDelimitedCost(t *testing.T) {
	data := []byte(`Item,Average Item Rate,Average of Est. Unit Cost,Quantity
ABC123 : Recert Widget,100,60,10
Subtotal,,,
`)
	res, err := Ingest("cost.csv", domain.FormatDelimited, domain.CategoryCost, data)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryCost, res.Category)
	require.Len(t, res.Cost, 1)
	assert.Equal(t, 1, res.RowsAccepted)
	assert.Equal(t, 1, res.RowsDropped)
}

func TestIngestWorkbookCost(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]any{
		{"Inventory Valuation"},
		{"Generated", "2024-06-30"},
		{"Item", "Average Item Rate", "Average of Est. Unit Cost", "Quantity"},
		{"ABC123 : Recert Widget", 100, 60, 10},
		{"XYZ : Standard Widget", 50, 20, 4},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	res, err := Ingest("cost.xlsx", domain.FormatWorkbook, domain.CategoryCost, buf.Bytes())
	require.NoError(t, err)
	require.Len(t, res.Cost, 2)
	assert.Equal(t, "ABC123", res.Cost[0].ItemCode)
	assert.Equal(t, domain.ItemTypeReCert, res.Cost[0].ItemType)
	assert.Equal(t, 600.0, res.Cost[0].TotalCost)
}

func TestIngestWorkbookSales(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]any{
		{"Item", "Description", "Qty Sold", "Amount"},
		{"ABC123-ReCert", "Recert Widget", 730, 73000},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	res, err := Ingest("sales.xlsx", domain.FormatWorkbook, domain.CategorySales, buf.Bytes())
	require.NoError(t, err)
	require.Contains(t, res.Sales, "ABC123-ReCert")
	assert.Equal(t, 730.0, res.Sales["ABC123-ReCert"].TotalQtySold)
}

func TestDetectFormat(t *testing.T) {
	format, ok := DetectFormat("export.CSV")
	require.True(t, ok)
	assert.Equal(t, domain.FormatDelimited, format)

	format, ok = DetectFormat("export.xlsx")
	require.True(t, ok)
	assert.Equal(t, domain.FormatWorkbook, format)

	_, ok = DetectFormat("export.pdf")
	assert.False(t, ok)
}
