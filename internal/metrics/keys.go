package metrics

import "github.com/stockpulse/backend-go/internal/domain"

// salesKeyCandidates lists the join keys tried, in order, when matching a
// cost item against the sales aggregates. Cost exports carry bare item codes
// while sales exports may suffix the condition or use the full label; the
// first key present wins. This is a heuristic join with no foreign-key
// guarantee, so the strategy order is fixed and testable in one place.
func salesKeyCandidates(item domain.CostItem) []string {
	return []string{
		item.ItemCode,
		item.ItemCode + "-New",
		item.ItemCode + "-ReCert",
		item.FullItem,
	}
}

// lookupAnnualSales resolves an item's annual sales volume. A miss returns
// zero, which deliberately conflates "never sold" with "no sales data".
func lookupAnnualSales(item domain.CostItem, sales map[string]domain.SalesAggregate) float64 {
	for _, key := range salesKeyCandidates(item) {
		if agg, ok := sales[key]; ok {
			return agg.TotalQtySold
		}
	}
	return 0
}
