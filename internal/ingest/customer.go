package ingest

import (
	"sort"
	"strings"

	"github.com/stockpulse/backend-go/internal/domain"
)

// subtotalPrefix marks aggregate rows in report-style exports; detail rows
// carry the bare entity name.
const subtotalPrefix = "total - "

// hasSubtotalPrefix reports whether a label is a subtotal row, and returns
// the label with the prefix stripped.
func hasSubtotalPrefix(label string) (string, bool) {
	if len(label) < len(subtotalPrefix) {
		return "", false
	}
	if !strings.EqualFold(label[:len(subtotalPrefix)], subtotalPrefix) {
		return "", false
	}
	return strings.TrimSpace(label[len(subtotalPrefix):]), true
}

// isIntercompany filters internal trading entities out of customer totals.
func isIntercompany(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "ic-") ||
		strings.Contains(n, "intercompany") ||
		strings.Contains(n, "inter-company")
}

// CustomersFromRows normalizes a delimited customer revenue export.
func CustomersFromRows(rows []Row) ([]domain.CustomerTotal, int) {
	return normalizeCustomers(delimitedRecords(rows, customerRules))
}

// CustomersFromGrid normalizes a workbook customer export after header
// resolution.
func CustomersFromGrid(grid [][]string) ([]domain.CustomerTotal, int) {
	return normalizeCustomers(gridRecords(grid, customerRules))
}

// normalizeCustomers keeps only subtotal rows with positive revenue. That is
// how subtotal-style exports are told apart from line-level detail; a row
// named "Acme Corp" without the prefix is excluded regardless of amount.
func normalizeCustomers(recs []record) ([]domain.CustomerTotal, int) {
	totals := make([]domain.CustomerTotal, 0, len(recs))
	dropped := 0

	for _, rec := range recs {
		label := rec.str(fieldCustomer)
		amount := rec.num(fieldRevenue)

		name, ok := hasSubtotalPrefix(label)
		if !ok || amount <= 0 || isIntercompany(name) {
			dropped++
			continue
		}
		totals = append(totals, domain.CustomerTotal{
			Customer:     name,
			TotalRevenue: amount,
		})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].TotalRevenue > totals[j].TotalRevenue
	})
	return totals, dropped
}
