package ingest

import "strings"

// Semantic field names shared by the rule tables.
const (
	fieldItem        = "item"
	fieldDescription = "description"
	fieldUnitPrice   = "unit_price"
	fieldUnitCost    = "unit_cost"
	fieldQuantity    = "quantity"
	fieldQtySold     = "qty_sold"
	fieldRevenue     = "revenue"
	fieldCustomer    = "customer"
	fieldSupplier    = "supplier"
	fieldCost        = "cost"
	fieldDate        = "date"
)

// fieldSpec names a semantic field and the column aliases that may carry it,
// in preference order.
type fieldSpec struct {
	name    string
	aliases []string
}

// ruleTable is the single source of truth for one dataset category. The same
// alias lists drive both the delimited path (Row.Pick) and the workbook path
// (FindCol against the resolved header); the two adapters must never diverge.
type ruleTable struct {
	fields []fieldSpec
}

func (t ruleTable) aliases(name string) []string {
	for _, f := range t.fields {
		if f.name == name {
			return f.aliases
		}
	}
	return nil
}

// headerTokens returns the primary alias of every field, which is what the
// header resolver expects to see in the real header row.
func (t ruleTable) headerTokens() []string {
	tokens := make([]string, 0, len(t.fields))
	for _, f := range t.fields {
		if len(f.aliases) > 0 {
			tokens = append(tokens, f.aliases[0])
		}
	}
	return tokens
}

var costRules = ruleTable{fields: []fieldSpec{
	{name: fieldItem, aliases: []string{"Item", "Item Name", "Product/Service"}},
	{name: fieldUnitPrice, aliases: []string{"Average Item Rate", "Avg Item Rate", "Item Rate"}},
	{name: fieldUnitCost, aliases: []string{"Average of Est. Unit Cost", "Est. Unit Cost", "Unit Cost"}},
	{name: fieldQuantity, aliases: []string{"Quantity", "Qty On Hand", "Qty"}},
}}

var salesRules = ruleTable{fields: []fieldSpec{
	{name: fieldItem, aliases: []string{"Item", "Inventory Item", "Product/Service"}},
	{name: fieldDescription, aliases: []string{"Description", "Memo/Description", "Memo"}},
	{name: fieldQtySold, aliases: []string{"Qty Sold", "Quantity", "Qty"}},
	{name: fieldRevenue, aliases: []string{"Amount", "Total Revenue", "Revenue"}},
}}

var customerRules = ruleTable{fields: []fieldSpec{
	{name: fieldCustomer, aliases: []string{"Customer", "Customer Name", "Name"}},
	{name: fieldRevenue, aliases: []string{"Amount", "Total Revenue", "Total"}},
}}

var supplierRules = ruleTable{fields: []fieldSpec{
	{name: fieldSupplier, aliases: []string{"Supplier", "Vendor", "Name"}},
	{name: fieldItem, aliases: []string{"Item", "Product/Service", "Memo"}},
	{name: fieldCost, aliases: []string{"Amount", "Total Cost", "Cost"}},
	{name: fieldQuantity, aliases: []string{"Qty", "Quantity"}},
	{name: fieldDate, aliases: []string{"Date", "Order Date"}},
}}

// record gives the rule logic uniform access to one data row regardless of
// the source format.
type record interface {
	str(field string) string
	num(field string) float64
	has(field string) bool
}

type delimitedRecord struct {
	row   Row
	rules ruleTable
}

func (r delimitedRecord) str(field string) string {
	return r.row.PickString(r.rules.aliases(field)...)
}

func (r delimitedRecord) num(field string) float64 {
	return r.row.PickFloat(r.rules.aliases(field)...)
}

func (r delimitedRecord) has(field string) bool {
	return r.row.Has(r.rules.aliases(field)...)
}

// gridRecord reads cells positionally through a column map resolved once per
// sheet.
type gridRecord struct {
	cols  map[string]int
	cells []string
}

func (g gridRecord) cell(field string) (string, bool) {
	idx, ok := g.cols[field]
	if !ok || idx < 0 || idx >= len(g.cells) {
		return "", false
	}
	return strings.TrimSpace(g.cells[idx]), true
}

func (g gridRecord) str(field string) string {
	s, _ := g.cell(field)
	return s
}

func (g gridRecord) num(field string) float64 {
	s, _ := g.cell(field)
	f, _ := parseNumber(s)
	return f
}

func (g gridRecord) has(field string) bool {
	s, ok := g.cell(field)
	return ok && s != ""
}

func delimitedRecords(rows []Row, rules ruleTable) []record {
	recs := make([]record, 0, len(rows))
	for _, row := range rows {
		if row.Empty() {
			continue
		}
		recs = append(recs, delimitedRecord{row: row, rules: rules})
	}
	return recs
}

func gridRecords(grid [][]string, rules ruleTable) []record {
	if len(grid) == 0 {
		return nil
	}
	headerIdx := ResolveHeader(grid, rules.headerTokens())
	header := grid[headerIdx]

	cols := make(map[string]int, len(rules.fields))
	for _, f := range rules.fields {
		if idx := FindCol(header, f.aliases...); idx >= 0 {
			cols[f.name] = idx
		}
	}

	recs := make([]record, 0, len(grid)-headerIdx-1)
	for _, cells := range grid[headerIdx+1:] {
		blank := true
		for _, c := range cells {
			if strings.TrimSpace(c) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}
		recs = append(recs, gridRecord{cols: cols, cells: cells})
	}
	return recs
}
