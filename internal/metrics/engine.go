package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/stockpulse/backend-go/internal/domain"
)

// Fixed classification floors. Unlike the Thresholds knobs these are part of
// the bucket definitions themselves.
const (
	criticalStockoutDays = 30
	warningStockoutDays  = 60
	criticalStockoutCost = 1000
	warningStockoutCost  = 500
	priceOppRevenueFloor = 5000
)

const daysPerYear = 365

// Lead times in days by item condition.
const (
	leadTimeNew    = 21
	leadTimeReCert = 28
)

// Inputs are the datasets the engine joins.
type Inputs struct {
	Cost  []domain.CostItem
	Sales map[string]domain.SalesAggregate
}

// Compute derives inventory and financial indicators for every cost item and
// classifies them into decision buckets. It is a pure function of its
// arguments: identical inputs and thresholds produce identical output, so it
// can be re-run on every dataset or threshold change.
func Compute(in Inputs, th domain.Thresholds) *domain.Report {
	items := make([]domain.DerivedItem, 0, len(in.Cost))
	for _, ci := range in.Cost {
		items = append(items, derive(ci, in.Sales, th))
	}

	report := &domain.Report{
		Thresholds:  th,
		GeneratedAt: time.Now().UTC(),
		Items:       items,
	}

	for _, it := range items {
		if it.TotalCost > th.SlowMoverCost &&
			(float64(it.DaysOfInventory) > th.SlowMoverDays || it.AnnualSales == 0) &&
			it.Quantity > 0 {
			report.SlowMovers = append(report.SlowMovers, it)
		}
		if it.AnnualSales == 0 && it.TotalCost > th.DeadStockCost && it.Quantity > 0 {
			report.DeadStock = append(report.DeadStock, it)
		}
		if !it.DaysUntilStockout.Unbounded() {
			days := float64(it.DaysUntilStockout)
			if days <= criticalStockoutDays && it.TotalCost > criticalStockoutCost {
				report.CriticalStockouts = append(report.CriticalStockouts, it)
			} else if days > criticalStockoutDays && days <= warningStockoutDays && it.TotalCost > warningStockoutCost {
				report.WarningStockouts = append(report.WarningStockouts, it)
			}
		}
		if it.PriceDelta > 0 && it.AnnualSales > 0 && it.TotalRevenue > priceOppRevenueFloor {
			report.PriceOpportunities = append(report.PriceOpportunities, it)
		}
	}

	byTotalCostDesc := func(s []domain.DerivedItem) {
		sort.SliceStable(s, func(i, j int) bool { return s[i].TotalCost > s[j].TotalCost })
	}
	byStockoutAsc := func(s []domain.DerivedItem) {
		sort.SliceStable(s, func(i, j int) bool { return s[i].DaysUntilStockout < s[j].DaysUntilStockout })
	}
	byTotalCostDesc(report.SlowMovers)
	byTotalCostDesc(report.DeadStock)
	byStockoutAsc(report.CriticalStockouts)
	byStockoutAsc(report.WarningStockouts)
	sort.SliceStable(report.PriceOpportunities, func(i, j int) bool {
		return report.PriceOpportunities[i].AnnualImpact > report.PriceOpportunities[j].AnnualImpact
	})

	return report
}

func derive(ci domain.CostItem, sales map[string]domain.SalesAggregate, th domain.Thresholds) domain.DerivedItem {
	it := domain.DerivedItem{CostItem: ci}

	it.AnnualSales = lookupAnnualSales(ci, sales)
	it.DailySales = it.AnnualSales / daysPerYear

	it.LeadTimeDays = leadTimeNew
	if ci.ItemType == domain.ItemTypeReCert {
		it.LeadTimeDays = leadTimeReCert
	}

	// Safety buffer covers at least a week, otherwise half the lead time.
	it.SafetyStock = it.DailySales * math.Max(7, math.Round(it.LeadTimeDays/2))
	it.ReorderPoint = it.DailySales*it.LeadTimeDays + it.SafetyStock

	days := domain.Days(math.Inf(1))
	if it.DailySales > 0 {
		days = domain.Days(float64(ci.Quantity) / it.DailySales)
	}
	it.DaysOfInventory = days
	it.DaysUntilStockout = days

	holdingCost := ci.UnitCost * th.HoldingCostRate
	if holdingCost > 0 && it.AnnualSales > 0 {
		it.EOQ = math.Round(math.Sqrt(2 * it.AnnualSales * th.OrderingCost / holdingCost))
	} else {
		// Cold start: a three-month supply heuristic.
		it.EOQ = math.Round(it.AnnualSales / 12 * 3)
	}

	if ci.UnitCost > 0 {
		it.TargetPrice = ci.UnitCost / (1 - th.TargetMargin)
	}
	it.PriceDelta = math.Max(0, it.TargetPrice-ci.UnitPrice)
	it.AnnualImpact = it.PriceDelta * it.AnnualSales

	return it
}
