package finance

import (
	"math"
	"sort"
)

// KeyFunc extracts the grouping dimension from an entry.
type KeyFunc func(ExpenseEntry) string

func ByType(e ExpenseEntry) string     { return e.Type }
func ByStage(e ExpenseEntry) string    { return e.Stage }
func BySupplier(e ExpenseEntry) string { return e.Supplier }

// ByMonth buckets entries into "YYYY-MM".
func ByMonth(e ExpenseEntry) string { return e.Date.Format("2006-01") }

// AggregateBy groups entries by the given dimension and computes per-group
// sums and percentage of total. Entries with a non-positive value are
// ignored. Groups come back in first-appearance order, so the result is
// deterministic for a given input order.
func AggregateBy(entries []ExpenseEntry, key KeyFunc) []GroupTotal {
	var groups []GroupTotal
	index := make(map[string]int)
	total := 0.0

	for _, e := range entries {
		if e.Value <= 0 {
			continue
		}
		k := key(e)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, GroupTotal{Key: k, Color: ColorFor(k)})
		}
		groups[i].Value += e.Value
		total += e.Value
	}

	for i := range groups {
		if total > 0 {
			groups[i].Percentage = math.Round(groups[i].Value / total * 100)
		}
	}

	return groups
}

// TopGroups returns the n largest groups by value, descending. Ties keep
// their original relative order. The input slice is not modified.
func TopGroups(groups []GroupTotal, n int) []GroupTotal {
	sorted := make([]GroupTotal, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
