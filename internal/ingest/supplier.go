package ingest

import (
	"sort"
	"strings"

	"github.com/stockpulse/backend-go/internal/domain"
)

// isInternalSupplier filters internal and intercompany suppliers out of the
// subtotal set.
func isInternalSupplier(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "internal") || strings.Contains(n, "intercompany")
}

// SuppliersFromRows normalizes a delimited purchase-order export.
func SuppliersFromRows(rows []Row) ([]domain.SupplierTotal, []domain.SupplierLineItem, int) {
	return normalizeSuppliers(delimitedRecords(rows, supplierRules))
}

// SuppliersFromGrid normalizes a workbook purchase-order export after header
// resolution.
func SuppliersFromGrid(grid [][]string) ([]domain.SupplierTotal, []domain.SupplierLineItem, int) {
	return normalizeSuppliers(gridRecords(grid, supplierRules))
}

// normalizeSuppliers splits the same rows into two disjoint result sets:
// subtotal rows (prefix rule, internal suppliers excluded) and detail line
// items (non-subtotal rows naming a supplier and an item with positive cost).
func normalizeSuppliers(recs []record) ([]domain.SupplierTotal, []domain.SupplierLineItem, int) {
	totals := make([]domain.SupplierTotal, 0, len(recs))
	lines := make([]domain.SupplierLineItem, 0, len(recs))
	dropped := 0

	for _, rec := range recs {
		label := rec.str(fieldSupplier)
		cost := rec.num(fieldCost)

		if name, ok := hasSubtotalPrefix(label); ok {
			if cost <= 0 || isInternalSupplier(name) {
				dropped++
				continue
			}
			totals = append(totals, domain.SupplierTotal{
				Supplier:      name,
				TotalCost:     cost,
				TotalQuantity: rec.num(fieldQuantity),
			})
			continue
		}

		item := rec.str(fieldItem)
		if label == "" || item == "" || cost <= 0 {
			dropped++
			continue
		}
		lines = append(lines, domain.SupplierLineItem{
			Supplier:  label,
			Item:      item,
			TotalCost: cost,
			Quantity:  rec.num(fieldQuantity),
			Date:      rec.str(fieldDate),
		})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].TotalCost > totals[j].TotalCost
	})
	return totals, lines, dropped
}
