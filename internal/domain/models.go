package domain

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Category identifies which dataset slot an uploaded export replaces.
type Category string

const (
	CategoryCost     Category = "cost"
	CategorySales    Category = "sales"
	CategoryCustomer Category = "customer"
	CategorySupplier Category = "supplier"
)

// ParseCategory maps a request path segment to a known category.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryCost:
		return CategoryCost, true
	case CategorySales:
		return CategorySales, true
	case CategoryCustomer, "customers":
		return CategoryCustomer, true
	case CategorySupplier, "suppliers":
		return CategorySupplier, true
	}
	return "", false
}

// Format is the declared encoding of an uploaded file.
type Format string

const (
	FormatDelimited Format = "delimited"
	FormatWorkbook  Format = "workbook"
)

// ItemType distinguishes new stock from recertified stock.
type ItemType string

const (
	ItemTypeNew    ItemType = "New"
	ItemTypeReCert ItemType = "ReCert"
)

// CostItem is one row of the item cost export. ItemCode is not unique across
// rows; downstream joins tolerate duplicates and ingestion never dedups.
type CostItem struct {
	ItemCode      string   `json:"item_code"`
	FullItem      string   `json:"full_item"`
	ItemType      ItemType `json:"item_type"`
	UnitPrice     float64  `json:"unit_price"`
	UnitCost      float64  `json:"unit_cost"`
	Quantity      int      `json:"quantity"`
	ProfitPerUnit float64  `json:"profit_per_unit"`
	ProfitMargin  float64  `json:"profit_margin"`
	TotalProfit   float64  `json:"total_profit"`
	TotalRevenue  float64  `json:"total_revenue"`
	TotalCost     float64  `json:"total_cost"`
}

// SalesAggregate accumulates quantity and revenue across every sales row
// sharing the same item key.
type SalesAggregate struct {
	Item         string  `json:"item"`
	Description  string  `json:"description"`
	TotalQtySold float64 `json:"total_qty_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}

// CustomerTotal is a subtotal row from the customer revenue export with the
// "Total - " prefix stripped.
type CustomerTotal struct {
	Customer     string  `json:"customer"`
	TotalRevenue float64 `json:"total_revenue"`
}

// SupplierTotal is a subtotal row from the purchase-order export.
type SupplierTotal struct {
	Supplier      string  `json:"supplier"`
	TotalCost     float64 `json:"total_cost"`
	TotalQuantity float64 `json:"total_quantity"`
}

// SupplierLineItem is a detail row from the purchase-order export: anything
// that is not a subtotal row and names both a supplier and an item.
type SupplierLineItem struct {
	Supplier  string  `json:"supplier"`
	Item      string  `json:"item"`
	TotalCost float64 `json:"total_cost"`
	Quantity  float64 `json:"quantity"`
	Date      string  `json:"date"`
}

// Days is a day count that is unbounded when daily sales is zero. JSON encodes
// the unbounded case as null because IEEE infinities are not valid JSON.
type Days float64

// Unbounded reports whether the count is infinite.
func (d Days) Unbounded() bool {
	return math.IsInf(float64(d), 1)
}

func (d Days) MarshalJSON() ([]byte, error) {
	f := float64(d)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (d *Days) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Days(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*d = Days(f)
	return nil
}

// DerivedItem is a CostItem extended with the metrics engine output.
// AnnualSales is zero both when the item never sold and when no sales data
// matched any join key; the two cases are intentionally not distinguished.
type DerivedItem struct {
	CostItem
	AnnualSales       float64 `json:"annual_sales"`
	DailySales        float64 `json:"daily_sales"`
	LeadTimeDays      float64 `json:"lead_time_days"`
	SafetyStock       float64 `json:"safety_stock"`
	ReorderPoint      float64 `json:"reorder_point"`
	DaysOfInventory   Days    `json:"days_of_inventory"`
	DaysUntilStockout Days    `json:"days_until_stockout"`
	EOQ               float64 `json:"eoq"`
	TargetPrice       float64 `json:"target_price"`
	PriceDelta        float64 `json:"price_delta"`
	AnnualImpact      float64 `json:"annual_impact"`
}

// Thresholds are the tunable parameters of the metrics engine.
type Thresholds struct {
	SlowMoverCost   float64 `json:"slow_mover_cost"`
	DeadStockCost   float64 `json:"dead_stock_cost"`
	SlowMoverDays   float64 `json:"slow_mover_days"`
	TargetMargin    float64 `json:"target_margin"`
	OrderingCost    float64 `json:"ordering_cost"`
	HoldingCostRate float64 `json:"holding_cost_rate"`
}

// DefaultThresholds returns the stock defaults used when no overrides are
// configured or supplied by the caller.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SlowMoverCost:   400,
		DeadStockCost:   200,
		SlowMoverDays:   180,
		TargetMargin:    0.30,
		OrderingCost:    50,
		HoldingCostRate: 0.25,
	}
}

// Report is the full metrics engine output for one store revision. Buckets
// may overlap: a dead-stock item is usually also a slow mover.
type Report struct {
	Revision           uint64        `json:"revision"`
	Thresholds         Thresholds    `json:"thresholds"`
	GeneratedAt        time.Time     `json:"generated_at"`
	Items              []DerivedItem `json:"items"`
	SlowMovers         []DerivedItem `json:"slow_movers"`
	DeadStock          []DerivedItem `json:"dead_stock"`
	CriticalStockouts  []DerivedItem `json:"critical_stockouts"`
	WarningStockouts   []DerivedItem `json:"warning_stockouts"`
	PriceOpportunities []DerivedItem `json:"price_opportunities"`
}

// IngestSummary describes one completed upload.
type IngestSummary struct {
	DatasetID    string   `json:"dataset_id"`
	Category     Category `json:"category"`
	Filename     string   `json:"filename"`
	RowsAccepted int      `json:"rows_accepted"`
	RowsDropped  int      `json:"rows_dropped"`
}
