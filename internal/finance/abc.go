package finance

import "sort"

const (
	abcThresholdA = 0.80
	abcThresholdB = 0.95
)

// ClassifyABC sorts entries by value descending and partitions them into
// bands by cumulative share of total value: band A runs up to and including
// the first entry where the cumulative ratio reaches 80%, band B up to 95%,
// band C is the remainder. Band B can legitimately be empty when a single
// entry crosses both thresholds.
func ClassifyABC(entries []ExpenseEntry) ABCResult {
	sorted := make([]ExpenseEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})

	total := 0.0
	for _, e := range sorted {
		total += e.Value
	}
	if total <= 0 {
		return ABCResult{}
	}

	var result ABCResult
	accumulated := 0.0
	band := &result.A

	for _, e := range sorted {
		band.Value += e.Value
		band.Count++
		accumulated += e.Value

		ratio := accumulated / total
		if band == &result.A && ratio >= abcThresholdA {
			// One entry can cross both thresholds; B stays empty then.
			if ratio >= abcThresholdB {
				band = &result.C
			} else {
				band = &result.B
			}
		} else if band == &result.B && ratio >= abcThresholdB {
			band = &result.C
		}
	}

	result.A.Percentage = result.A.Value / total * 100
	result.B.Percentage = result.B.Value / total * 100
	result.C.Percentage = result.C.Value / total * 100

	return result
}
