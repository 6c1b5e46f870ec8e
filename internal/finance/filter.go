package finance

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filters is the conjunctive filter set for expense tables. Zero-valued
// fields are no-ops, so an empty Filters passes every entry through.
type Filters struct {
	Search   string
	Type     string
	Stage    string
	Supplier string
	DateFrom *time.Time
	DateTo   *time.Time
	MinValue *float64
	MaxValue *float64
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases and strips diacritics so "Construção" matches "construcao".
// Supplier and description text is Portuguese free text, so plain
// case-insensitivity is not enough.
func fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

func matchesSearch(e ExpenseEntry, needle string) bool {
	for _, field := range []string{e.Description, e.Supplier, e.InvoiceNumber, e.Class, e.Stage} {
		if strings.Contains(fold(field), needle) {
			return true
		}
	}
	return false
}

// FilterEntries applies every set filter conjunctively. Date and value
// ranges are inclusive.
func FilterEntries(entries []ExpenseEntry, f Filters) []ExpenseEntry {
	needle := fold(strings.TrimSpace(f.Search))

	result := make([]ExpenseEntry, 0, len(entries))
	for _, e := range entries {
		if needle != "" && !matchesSearch(e, needle) {
			continue
		}
		if f.Type != "" && e.Type != f.Type {
			continue
		}
		if f.Stage != "" && e.Stage != f.Stage {
			continue
		}
		if f.Supplier != "" && e.Supplier != f.Supplier {
			continue
		}
		if f.DateFrom != nil && e.Date.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && e.Date.After(*f.DateTo) {
			continue
		}
		if f.MinValue != nil && e.Value < *f.MinValue {
			continue
		}
		if f.MaxValue != nil && e.Value > *f.MaxValue {
			continue
		}
		result = append(result, e)
	}
	return result
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortEntries sorts a copy of entries by the given field. Unknown fields
// leave the order untouched. Equal values keep their relative order.
func SortEntries(entries []ExpenseEntry, field string, order SortOrder) []ExpenseEntry {
	sorted := make([]ExpenseEntry, len(entries))
	copy(sorted, entries)

	var less func(a, b ExpenseEntry) bool
	switch field {
	case "date":
		less = func(a, b ExpenseEntry) bool { return a.Date.Before(b.Date) }
	case "value":
		less = func(a, b ExpenseEntry) bool { return a.Value < b.Value }
	case "supplier":
		less = func(a, b ExpenseEntry) bool { return fold(a.Supplier) < fold(b.Supplier) }
	case "description":
		less = func(a, b ExpenseEntry) bool { return fold(a.Description) < fold(b.Description) }
	case "type":
		less = func(a, b ExpenseEntry) bool { return a.Type < b.Type }
	case "stage":
		less = func(a, b ExpenseEntry) bool { return fold(a.Stage) < fold(b.Stage) }
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortDesc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// NextSort implements the table-header toggle: clicking the active column
// flips the order, clicking a new column resets to descending.
func NextSort(current string, order SortOrder, selected string) (string, SortOrder) {
	if selected == current {
		if order == SortDesc {
			return selected, SortAsc
		}
		return selected, SortDesc
	}
	return selected, SortDesc
}
