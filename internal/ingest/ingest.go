package ingest

import (
	"path/filepath"
	"strings"

	"github.com/stockpulse/backend-go/internal/domain"
)

// acceptedExtensions lists the file extensions each upload slot takes.
// Legacy .xls (BIFF) is deliberately absent: the workbook decoder cannot
// read it, so it is rejected up front as a format error.
var acceptedExtensions = map[domain.Format][]string{
	domain.FormatDelimited: {".csv", ".txt"},
	domain.FormatWorkbook:  {".xlsx", ".xlsm"},
}

// DetectFormat infers the upload format from a filename extension.
func DetectFormat(filename string) (domain.Format, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return domain.FormatDelimited, true
	case ".xlsx", ".xlsm":
		return domain.FormatWorkbook, true
	}
	return "", false
}

// Result is the normalized dataset produced by one upload. Only the fields
// matching the requested category are populated.
type Result struct {
	Category       domain.Category
	Cost           []domain.CostItem
	Sales          map[string]domain.SalesAggregate
	Customers      []domain.CustomerTotal
	SupplierTotals []domain.SupplierTotal
	SupplierLines  []domain.SupplierLineItem
	RowsAccepted   int
	RowsDropped    int
}

// Ingest decodes and normalizes one export file. The extension is validated
// against the declared format before any parsing happens; decode failures
// surface as ParseError. A failed call leaves nothing behind — the caller's
// prior datasets are never touched here.
func Ingest(filename string, format domain.Format, category domain.Category, data []byte) (*Result, error) {
	if !extensionAccepted(filename, format) {
		return nil, &domain.FormatError{Filename: filename, Format: format}
	}

	var (
		rows []Row
		grid [][]string
		err  error
	)
	switch format {
	case domain.FormatDelimited:
		rows, err = ReadDelimited(data)
	case domain.FormatWorkbook:
		grid, err = ReadWorkbook(data)
	}
	if err != nil {
		return nil, &domain.ParseError{Filename: filename, Err: err}
	}

	res := &Result{Category: category}
	switch category {
	case domain.CategoryCost:
		if format == domain.FormatDelimited {
			res.Cost, res.RowsDropped = CostFromRows(rows)
		} else {
			res.Cost, res.RowsDropped = CostFromGrid(grid)
		}
		res.RowsAccepted = len(res.Cost)

	case domain.CategorySales:
		if format == domain.FormatDelimited {
			res.Sales, res.RowsAccepted, res.RowsDropped = SalesFromRows(rows)
		} else {
			res.Sales, res.RowsAccepted, res.RowsDropped = SalesFromGrid(grid)
		}

	case domain.CategoryCustomer:
		if format == domain.FormatDelimited {
			res.Customers, res.RowsDropped = CustomersFromRows(rows)
		} else {
			res.Customers, res.RowsDropped = CustomersFromGrid(grid)
		}
		res.RowsAccepted = len(res.Customers)

	case domain.CategorySupplier:
		if format == domain.FormatDelimited {
			res.SupplierTotals, res.SupplierLines, res.RowsDropped = SuppliersFromRows(rows)
		} else {
			res.SupplierTotals, res.SupplierLines, res.RowsDropped = SuppliersFromGrid(grid)
		}
		res.RowsAccepted = len(res.SupplierTotals) + len(res.SupplierLines)
	}

	return res, nil
}

func extensionAccepted(filename string, format domain.Format) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, accepted := range acceptedExtensions[format] {
		if ext == accepted {
			return true
		}
	}
	return false
}
