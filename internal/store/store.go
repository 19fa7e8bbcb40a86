package store

import (
	"sync"
	"time"

	"github.com/stockpulse/backend-go/internal/domain"
)

// Store holds the current dataset per category for the session. Replacement
// is always wholesale: an upload swaps the whole dataset of its category, and
// readers see either the old dataset or the new one, never a mix. Every
// replacement bumps the revision, which the metrics cache keys on.
type Store struct {
	mu       sync.RWMutex
	revision uint64

	cost           []domain.CostItem
	sales          map[string]domain.SalesAggregate
	customers      []domain.CustomerTotal
	supplierTotals []domain.SupplierTotal
	supplierLines  []domain.SupplierLineItem

	meta map[domain.Category]CategoryStatus
}

// CategoryStatus describes what is currently loaded for one category.
type CategoryStatus struct {
	Category   domain.Category `json:"category"`
	Loaded     bool            `json:"loaded"`
	Rows       int             `json:"rows"`
	DatasetID  string          `json:"dataset_id,omitempty"`
	SourceFile string          `json:"source_file,omitempty"`
	LoadedAt   time.Time       `json:"loaded_at,omitzero"`
	Revision   uint64          `json:"revision,omitempty"`
}

// Snapshot is a consistent copy of every dataset at one revision.
type Snapshot struct {
	Revision       uint64
	Cost           []domain.CostItem
	Sales          map[string]domain.SalesAggregate
	Customers      []domain.CustomerTotal
	SupplierTotals []domain.SupplierTotal
	SupplierLines  []domain.SupplierLineItem
}

func New() *Store {
	return &Store{
		sales: make(map[string]domain.SalesAggregate),
		meta:  make(map[domain.Category]CategoryStatus),
	}
}

// ReplaceCost swaps the cost dataset.
func (s *Store) ReplaceCost(datasetID, sourceFile string, items []domain.CostItem) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cost = append([]domain.CostItem(nil), items...)
	return s.bump(domain.CategoryCost, datasetID, sourceFile, len(items))
}

// ReplaceSales swaps the sales aggregates.
func (s *Store) ReplaceSales(datasetID, sourceFile string, sales map[string]domain.SalesAggregate) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make(map[string]domain.SalesAggregate, len(sales))
	for k, v := range sales {
		copied[k] = v
	}
	s.sales = copied
	return s.bump(domain.CategorySales, datasetID, sourceFile, len(copied))
}

// ReplaceCustomers swaps the customer totals.
func (s *Store) ReplaceCustomers(datasetID, sourceFile string, totals []domain.CustomerTotal) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append([]domain.CustomerTotal(nil), totals...)
	return s.bump(domain.CategoryCustomer, datasetID, sourceFile, len(totals))
}

// ReplaceSuppliers swaps both supplier result sets together.
func (s *Store) ReplaceSuppliers(datasetID, sourceFile string, totals []domain.SupplierTotal, lines []domain.SupplierLineItem) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supplierTotals = append([]domain.SupplierTotal(nil), totals...)
	s.supplierLines = append([]domain.SupplierLineItem(nil), lines...)
	return s.bump(domain.CategorySupplier, datasetID, sourceFile, len(totals)+len(lines))
}

// Snapshot copies the current state. The copies are the caller's to keep; no
// later replacement mutates them.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sales := make(map[string]domain.SalesAggregate, len(s.sales))
	for k, v := range s.sales {
		sales[k] = v
	}
	return Snapshot{
		Revision:       s.revision,
		Cost:           append([]domain.CostItem(nil), s.cost...),
		Sales:          sales,
		Customers:      append([]domain.CustomerTotal(nil), s.customers...),
		SupplierTotals: append([]domain.SupplierTotal(nil), s.supplierTotals...),
		SupplierLines:  append([]domain.SupplierLineItem(nil), s.supplierLines...),
	}
}

// Status reports the per-category load state in a fixed category order.
func (s *Store) Status() []CategoryStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order := []domain.Category{
		domain.CategoryCost,
		domain.CategorySales,
		domain.CategoryCustomer,
		domain.CategorySupplier,
	}
	statuses := make([]CategoryStatus, 0, len(order))
	for _, cat := range order {
		if st, ok := s.meta[cat]; ok {
			statuses = append(statuses, st)
			continue
		}
		statuses = append(statuses, CategoryStatus{Category: cat})
	}
	return statuses
}

// Revision returns the current store revision.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *Store) bump(cat domain.Category, datasetID, sourceFile string, rows int) uint64 {
	s.revision++
	s.meta[cat] = CategoryStatus{
		Category:   cat,
		Loaded:     true,
		Rows:       rows,
		DatasetID:  datasetID,
		SourceFile: sourceFile,
		LoadedAt:   time.Now(),
		Revision:   s.revision,
	}
	return s.revision
}
