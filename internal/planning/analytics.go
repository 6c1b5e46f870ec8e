package planning

// RecomputeStages returns a new stage list with ExecutedValue, Difference
// and Status derived from the execution entries. Pure and idempotent: the
// derived fields are overwritten from scratch, so running it twice over the
// same input yields the same output. The LATE override is preserved, never
// derived.
func RecomputeStages(stages []Stage, executions []ExecutionEntry) []Stage {
	sums := make(map[string]float64, len(stages))
	for _, e := range executions {
		sums[e.StageID.String()] += e.Value
	}

	result := make([]Stage, len(stages))
	for i, s := range stages {
		s.ExecutedValue = sums[s.ID.String()]
		s.Difference = s.PlannedValue - s.ExecutedValue

		switch {
		case s.ExecutedValue == 0:
			s.Status = StatusNotStarted
		case s.ExecutedValue >= s.PlannedValue:
			s.Status = StatusCompleted
		default:
			s.Status = StatusInProgress
		}

		result[i] = s
	}
	return result
}

// ComputeTotals folds the already-recomputed stage list into the screen
// header aggregates. Always feed it the full updated list; summing
// incrementally drifts.
func ComputeTotals(stages []Stage) Totals {
	var t Totals
	for _, s := range stages {
		t.TotalPlanned += s.PlannedValue
		t.TotalExecuted += s.ExecutedValue
	}
	t.TotalDifference = t.TotalPlanned - t.TotalExecuted
	return t
}
