package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stockpulse/backend-go/internal/cache"
	"github.com/stockpulse/backend-go/internal/domain"
	"github.com/stockpulse/backend-go/internal/export"
	"github.com/stockpulse/backend-go/internal/ingest"
	"github.com/stockpulse/backend-go/internal/metrics"
	"github.com/stockpulse/backend-go/internal/store"
)

// InventoryService wires ingestion, the dataset store, the metrics engine
// and the report cache together. It is the whole core surface the HTTP and
// CLI layers talk to.
type InventoryService struct {
	store    *store.Store
	cache    cache.ReportCache
	defaults domain.Thresholds
}

func NewInventoryService(st *store.Store, cacheImpl cache.ReportCache, defaults domain.Thresholds) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &InventoryService{store: st, cache: cacheImpl, defaults: defaults}
}

// IngestFile decodes, normalizes and stores one uploaded export, replacing
// the category's previous dataset wholesale. On any error the previous
// dataset stays in place untouched.
func (s *InventoryService) IngestFile(ctx context.Context, category domain.Category, format domain.Format, filename string, data []byte) (*domain.IngestSummary, error) {
	res, err := ingest.Ingest(filename, format, category, data)
	if err != nil {
		return nil, err
	}

	datasetID := uuid.NewString()
	var revision uint64
	switch category {
	case domain.CategoryCost:
		revision = s.store.ReplaceCost(datasetID, filename, res.Cost)
	case domain.CategorySales:
		revision = s.store.ReplaceSales(datasetID, filename, res.Sales)
	case domain.CategoryCustomer:
		revision = s.store.ReplaceCustomers(datasetID, filename, res.Customers)
	case domain.CategorySupplier:
		revision = s.store.ReplaceSuppliers(datasetID, filename, res.SupplierTotals, res.SupplierLines)
	default:
		return nil, fmt.Errorf("unknown dataset category: %s", category)
	}

	log.Info().
		Str("category", string(category)).
		Str("file", filename).
		Str("dataset_id", datasetID).
		Uint64("revision", revision).
		Int("accepted", res.RowsAccepted).
		Int("dropped", res.RowsDropped).
		Msg("dataset replaced")

	return &domain.IngestSummary{
		DatasetID:    datasetID,
		Category:     category,
		Filename:     filename,
		RowsAccepted: res.RowsAccepted,
		RowsDropped:  res.RowsDropped,
	}, nil
}

// Report computes the derived metrics for the current datasets. A nil
// thresholds argument means the configured defaults. Results are memoized by
// store revision and thresholds.
func (s *InventoryService) Report(ctx context.Context, th *domain.Thresholds) (*domain.Report, error) {
	thresholds := s.defaults
	if th != nil {
		thresholds = *th
	}

	snap := s.store.Snapshot()
	if cached, ok, err := s.cache.Get(ctx, snap.Revision, thresholds); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("metrics: cache get failed")
	}

	report := metrics.Compute(metrics.Inputs{Cost: snap.Cost, Sales: snap.Sales}, thresholds)
	report.Revision = snap.Revision

	if err := s.cache.Set(ctx, report); err != nil {
		log.Warn().Err(err).Msg("metrics: cache set failed")
	}
	return report, nil
}

// Bucket names accepted by ExportBucket.
const (
	BucketItems              = "items"
	BucketSlowMovers         = "slow_movers"
	BucketDeadStock          = "dead_stock"
	BucketCriticalStockouts  = "critical_stockouts"
	BucketWarningStockouts   = "warning_stockouts"
	BucketPriceOpportunities = "price_opportunities"
)

// ExportBucket serializes one classified result set as delimited text.
func (s *InventoryService) ExportBucket(ctx context.Context, bucket string, th *domain.Thresholds) ([]byte, error) {
	report, err := s.Report(ctx, th)
	if err != nil {
		return nil, err
	}

	var items []domain.DerivedItem
	switch bucket {
	case BucketItems:
		items = report.Items
	case BucketSlowMovers:
		items = report.SlowMovers
	case BucketDeadStock:
		items = report.DeadStock
	case BucketCriticalStockouts:
		items = report.CriticalStockouts
	case BucketWarningStockouts:
		items = report.WarningStockouts
	case BucketPriceOpportunities:
		items = report.PriceOpportunities
	default:
		return nil, fmt.Errorf("unknown result set: %s", bucket)
	}

	return export.WriteDelimited(export.DerivedItemHeader, export.DerivedItemRows(items)), nil
}

// Status reports what is loaded per category.
func (s *InventoryService) Status() []store.CategoryStatus {
	return s.store.Status()
}

// Defaults returns the configured default thresholds.
func (s *InventoryService) Defaults() domain.Thresholds {
	return s.defaults
}
