package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpulse/backend-go/internal/domain"
)

func TestReplaceIsWholesale(t *testing.T) {
	s := New()

	s.ReplaceCost("ds-1", "first.csv", []domain.CostItem{
		{ItemCode: "A"}, {ItemCode: "B"},
	})
	s.ReplaceCost("ds-2", "second.csv", []domain.CostItem{
		{ItemCode: "C"},
	})

	snap := s.Snapshot()
	require.Len(t, snap.Cost, 1)
	assert.Equal(t, "C", snap.Cost[0].ItemCode)
}

func TestRevisionBumpsOnEveryReplace(t *testing.T) {
	s := New()
	assert.Equal(t, uint64(0), s.Revision())

	rev1 := s.ReplaceCost("ds-1", "cost.csv", nil)
	rev2 := s.ReplaceSales("ds-2", "sales.csv", map[string]domain.SalesAggregate{
		"A": {Item: "A", TotalQtySold: 1},
	})

	assert.Equal(t, uint64(1), rev1)
	assert.Equal(t, uint64(2), rev2)
	assert.Equal(t, uint64(2), s.Revision())
}

func TestSnapshotIsolation(t *testing.T) {
	s := New()
	s.ReplaceSales("ds-1", "sales.csv", map[string]domain.SalesAggregate{
		"A": {Item: "A", TotalQtySold: 5},
	})

	snap := s.Snapshot()
	s.ReplaceSales("ds-2", "sales2.csv", map[string]domain.SalesAggregate{
		"B": {Item: "B", TotalQtySold: 9},
	})

	// The earlier snapshot still sees the dataset it was taken from.
	require.Contains(t, snap.Sales, "A")
	assert.NotContains(t, snap.Sales, "B")
	assert.Equal(t, uint64(1), snap.Revision)
}

func TestStatusCoversAllCategories(t *testing.T) {
	s := New()
	s.ReplaceCustomers("ds-1", "customers.csv", []domain.CustomerTotal{
		{Customer: "Acme", TotalRevenue: 100},
	})

	statuses := s.Status()
	require.Len(t, statuses, 4)

	byCat := make(map[domain.Category]CategoryStatus)
	for _, st := range statuses {
		byCat[st.Category] = st
	}
	assert.True(t, byCat[domain.CategoryCustomer].Loaded)
	assert.Equal(t, 1, byCat[domain.CategoryCustomer].Rows)
	assert.Equal(t, "ds-1", byCat[domain.CategoryCustomer].DatasetID)
	assert.False(t, byCat[domain.CategoryCost].Loaded)
}

func TestReplaceSuppliersCountsBothSets(t *testing.T) {
	s := New()
	s.ReplaceSuppliers("ds-1", "po.csv",
		[]domain.SupplierTotal{{Supplier: "Parts Co", TotalCost: 100}},
		[]domain.SupplierLineItem{{Supplier: "Parts Co", Item: "BOLT", TotalCost: 10}, {Supplier: "Parts Co", Item: "NUT", TotalCost: 5}},
	)

	statuses := s.Status()
	for _, st := range statuses {
		if st.Category == domain.CategorySupplier {
			assert.Equal(t, 3, st.Rows)
		}
	}
}
