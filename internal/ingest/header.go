package ingest

import (
	"strings"

	"github.com/stockpulse/backend-go/pkg/logger"
)

// headerScanLimit bounds how deep into a sheet the resolver looks for the
// header row. Exports in the wild carry titles, date stamps and blank rows
// above the real header, but never this many.
const headerScanLimit = 30

// ResolveHeader scans the grid for the row that looks most like a header:
// the first row where at least half of the expected tokens (rounded up)
// appear as exact lowercased cell values. When no row qualifies inside the
// scan window, row 0 is used; mis-detection then degrades quality downstream
// instead of failing the upload.
func ResolveHeader(grid [][]string, expected []string) int {
	if len(expected) == 0 || len(grid) == 0 {
		return 0
	}
	need := (len(expected) + 1) / 2

	for i := 0; i < len(grid) && i < headerScanLimit; i++ {
		cells := make(map[string]bool, len(grid[i]))
		for _, cell := range grid[i] {
			cells[strings.ToLower(strings.TrimSpace(cell))] = true
		}
		hits := 0
		for _, token := range expected {
			if cells[strings.ToLower(token)] {
				hits++
			}
		}
		if hits >= need {
			return i
		}
	}

	logger.Log.Debug().
		Strs("expected", expected).
		Msg("no header row matched, falling back to row 0")
	return 0
}

// FindCol resolves a semantic field to a column index in a flat header row
// using the same two-phase match as Row.Pick: exact case-insensitive first,
// then substring containment. Returns -1 when nothing matches.
func FindCol(header []string, aliases ...string) int {
	norm := make([]string, len(header))
	for i, h := range header {
		norm[i] = strings.ToLower(strings.TrimSpace(h))
	}
	for _, alias := range aliases {
		needle := strings.ToLower(strings.TrimSpace(alias))
		for i, h := range norm {
			if h == needle {
				return i
			}
		}
	}
	for _, alias := range aliases {
		needle := strings.ToLower(strings.TrimSpace(alias))
		if needle == "" {
			continue
		}
		for i, h := range norm {
			if strings.Contains(h, needle) {
				return i
			}
		}
	}
	return -1
}
