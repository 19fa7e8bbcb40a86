package export

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/stockpulse/backend-go/internal/domain"
)

// WriteDelimited serializes a result set as delimited text: one header line
// of field names, one line per row, every scalar individually double-quoted
// (embedded quotes doubled). The consumer expects the all-quoted form, which
// a stock csv.Writer will not force, so quoting is done here.
func WriteDelimited(header []string, rows [][]string) []byte {
	var buf bytes.Buffer
	writeLine(&buf, header)
	for _, row := range rows {
		writeLine(&buf, row)
	}
	return buf.Bytes()
}

func writeLine(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}

// DerivedItemHeader is the column order of every classified result set
// export.
var DerivedItemHeader = []string{
	"Item Code", "Full Item", "Type", "Quantity",
	"Unit Price", "Unit Cost", "Total Cost", "Total Revenue",
	"Annual Sales", "Daily Sales", "Days Of Inventory", "Days Until Stockout",
	"Reorder Point", "EOQ", "Price Delta", "Annual Impact",
}

// DerivedItemRows projects derived items into export rows. Unbounded day
// counts render as empty cells.
func DerivedItemRows(items []domain.DerivedItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ItemCode,
			it.FullItem,
			string(it.ItemType),
			strconv.Itoa(it.Quantity),
			money(it.UnitPrice),
			money(it.UnitCost),
			money(it.TotalCost),
			money(it.TotalRevenue),
			number(it.AnnualSales),
			number(it.DailySales),
			days(it.DaysOfInventory),
			days(it.DaysUntilStockout),
			number(it.ReorderPoint),
			number(it.EOQ),
			money(it.PriceDelta),
			money(it.AnnualImpact),
		})
	}
	return rows
}

func money(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func days(d domain.Days) string {
	if d.Unbounded() {
		return ""
	}
	return strconv.FormatFloat(float64(d), 'f', 1, 64)
}
