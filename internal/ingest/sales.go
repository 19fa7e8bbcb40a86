package ingest

import (
	"github.com/stockpulse/backend-go/internal/domain"
)

// salesPlaceholder is a known header-leak artifact in sales exports: the
// column label repeated as a data value.
const salesPlaceholder = "Inventory Item"

// SalesFromRows normalizes a delimited sales export.
func SalesFromRows(rows []Row) (map[string]domain.SalesAggregate, int, int) {
	return normalizeSales(delimitedRecords(rows, salesRules))
}

// SalesFromGrid normalizes a workbook sales export after header resolution.
func SalesFromGrid(grid [][]string) (map[string]domain.SalesAggregate, int, int) {
	return normalizeSales(gridRecords(grid, salesRules))
}

// normalizeSales accumulates quantity and revenue per item key. A row counts
// when its item key is non-empty and not the placeholder artifact, and its
// quantity sold is positive. Repeats of the same key sum into one aggregate.
func normalizeSales(recs []record) (map[string]domain.SalesAggregate, int, int) {
	aggregates := make(map[string]domain.SalesAggregate)
	accepted, dropped := 0, 0

	for _, rec := range recs {
		item := rec.str(fieldItem)
		qty := rec.num(fieldQtySold)
		if item == "" || item == salesPlaceholder || qty <= 0 {
			dropped++
			continue
		}
		accepted++

		agg := aggregates[item]
		agg.Item = item
		if agg.Description == "" {
			agg.Description = rec.str(fieldDescription)
		}
		agg.TotalQtySold += qty
		agg.TotalRevenue += rec.num(fieldRevenue)
		aggregates[item] = agg
	}
	return aggregates, accepted, dropped
}
