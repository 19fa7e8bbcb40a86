package ingest

import (
	"strconv"
	"strings"
)

// Row is one record decoded from a delimited export. Keys are normalized
// (lowercased, trimmed) but kept in file order so the substring fallback in
// Pick scans columns deterministically.
type Row struct {
	keys   []string
	values map[string]any
}

// NewRow builds a row from header labels and the matching record values.
// Duplicate labels keep the first occurrence.
func NewRow(header []string, record []any) Row {
	r := Row{values: make(map[string]any, len(header))}
	for i, label := range header {
		key := strings.ToLower(strings.TrimSpace(label))
		if key == "" {
			continue
		}
		if _, ok := r.values[key]; ok {
			continue
		}
		var v any
		if i < len(record) {
			v = record[i]
		}
		r.keys = append(r.keys, key)
		r.values[key] = v
	}
	return r
}

// Pick resolves a semantic field against the row: first alias with an exact
// case-insensitive key match wins; failing that, the first alias contained in
// any key as a substring. The second return is false when nothing matched,
// which callers treat as "value unknown" rather than an error.
func (r Row) Pick(aliases ...string) (any, bool) {
	for _, alias := range aliases {
		if v, ok := r.values[strings.ToLower(strings.TrimSpace(alias))]; ok {
			return v, true
		}
	}
	for _, alias := range aliases {
		needle := strings.ToLower(strings.TrimSpace(alias))
		if needle == "" {
			continue
		}
		for _, key := range r.keys {
			if strings.Contains(key, needle) {
				return r.values[key], true
			}
		}
	}
	return nil, false
}

// PickString resolves a field as a trimmed string, empty when absent.
func (r Row) PickString(aliases ...string) string {
	v, ok := r.Pick(aliases...)
	if !ok {
		return ""
	}
	return toString(v)
}

// PickFloat resolves a field as a number, zero when absent or unparsable.
func (r Row) PickFloat(aliases ...string) float64 {
	v, ok := r.Pick(aliases...)
	if !ok {
		return 0
	}
	return toFloat(v)
}

// Has reports whether the field resolves to a non-empty value.
func (r Row) Has(aliases ...string) bool {
	v, ok := r.Pick(aliases...)
	return ok && toString(v) != ""
}

// Empty reports whether every cell in the row is blank.
func (r Row) Empty() bool {
	for _, key := range r.keys {
		if toString(r.values[key]) != "" {
			return false
		}
	}
	return true
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, _ := parseNumber(n)
		return f
	default:
		return 0
	}
}

// parseNumber coerces spreadsheet-style numerics ("1,234.50", "$12", "45%").
// Coercion never fails: unparsable input reads as zero.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func nonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
