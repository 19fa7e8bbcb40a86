package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickExactMatch(t *testing.T) {
	row := NewRow([]string{"Item", "Quantity"}, []any{"ABC", float64(3)})

	v, ok := row.Pick("quantity")
	require.True(t, ok)
	assert.Equal(t, float64(3), v)
}

func TestPickAliasOrder(t *testing.T) {
	row := NewRow([]string{"Qty", "Quantity"}, []any{float64(1), float64(2)})

	// First alias with an exact match wins even when a later alias also
	// matches.
	v, ok := row.Pick("Quantity", "Qty")
	require.True(t, ok)
	assert.Equal(t, float64(2), v)
}

func TestPickSubstringFallback(t *testing.T) {
	row := NewRow([]string{"quantity sold"}, []any{float64(5)})

	v, ok := row.Pick("Qty", "Quantity")
	require.True(t, ok)
	assert.Equal(t, float64(5), v)
}

func TestPickAbsent(t *testing.T) {
	row := NewRow([]string{"Item"}, []any{"ABC"})

	_, ok := row.Pick("Amount", "Revenue")
	assert.False(t, ok)

	// Absent resolves to zero values, never errors.
	assert.Equal(t, "", row.PickString("Amount"))
	assert.Equal(t, float64(0), row.PickFloat("Amount"))
}

func TestPickDuplicateColumnKeepsFirst(t *testing.T) {
	row := NewRow([]string{"Amount", "Amount"}, []any{float64(10), float64(20)})

	assert.Equal(t, float64(10), row.PickFloat("Amount"))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" 1,234.50 ", 1234.50, true},
		{"$99.95", 99.95, true},
		{"15%", 15, true},
		{"-3", -3, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"12 units", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestRowEmpty(t *testing.T) {
	blank := NewRow([]string{"A", "B"}, []any{"", ""})
	assert.True(t, blank.Empty())

	filled := NewRow([]string{"A", "B"}, []any{"", "x"})
	assert.False(t, filled.Empty())
}
