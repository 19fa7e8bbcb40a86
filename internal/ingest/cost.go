package ingest

import (
	"strings"

	"github.com/stockpulse/backend-go/internal/domain"
)

// itemCodeSeparator splits the stable business key from the descriptive tail
// of a composite item label, e.g. "ABC123 : Recert Widget".
const itemCodeSeparator = " : "

// CostFromRows normalizes a delimited cost export.
func CostFromRows(rows []Row) ([]domain.CostItem, int) {
	return normalizeCost(delimitedRecords(rows, costRules))
}

// CostFromGrid normalizes a workbook cost export after header resolution.
func CostFromGrid(grid [][]string) ([]domain.CostItem, int) {
	return normalizeCost(gridRecords(grid, costRules))
}

// normalizeCost builds the cost dataset. Rows missing either the unit price
// or the unit cost value are subtotal/footer noise in the source export and
// are dropped without error. Item codes are not deduped; downstream joins
// must tolerate repeats.
func normalizeCost(recs []record) ([]domain.CostItem, int) {
	items := make([]domain.CostItem, 0, len(recs))
	dropped := 0

	for _, rec := range recs {
		if !rec.has(fieldUnitPrice) || !rec.has(fieldUnitCost) {
			dropped++
			continue
		}

		full := rec.str(fieldItem)
		code := full
		if i := strings.Index(full, itemCodeSeparator); i >= 0 {
			code = full[:i]
		}

		itemType := domain.ItemTypeNew
		if strings.Contains(strings.ToLower(full), "recert") {
			itemType = domain.ItemTypeReCert
		}

		price := nonNegative(rec.num(fieldUnitPrice))
		cost := nonNegative(rec.num(fieldUnitCost))
		qty := int(nonNegative(rec.num(fieldQuantity)))

		// Zero price means profit figures stay zero rather than divide.
		var profitPerUnit, margin float64
		if price > 0 {
			profitPerUnit = price - cost
			margin = profitPerUnit / price * 100
		}

		items = append(items, domain.CostItem{
			ItemCode:      code,
			FullItem:      full,
			ItemType:      itemType,
			UnitPrice:     price,
			UnitCost:      cost,
			Quantity:      qty,
			ProfitPerUnit: profitPerUnit,
			ProfitMargin:  margin,
			TotalProfit:   float64(qty) * profitPerUnit,
			TotalRevenue:  float64(qty) * price,
			TotalCost:     float64(qty) * cost,
		})
	}
	return items, dropped
}
