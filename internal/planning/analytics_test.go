package planning

import (
	"testing"

	"github.com/google/uuid"
)

func stage(id uuid.UUID, name string, planned float64) Stage {
	return Stage{ID: id, Name: name, PlannedValue: planned}
}

func execution(stageID uuid.UUID, value float64) ExecutionEntry {
	return ExecutionEntry{ID: uuid.New(), StageID: stageID, Value: value}
}

// TestRecomputeStages_StatusDerivation covers the three derived statuses:
// no executions, partial execution, and planned value reached or exceeded.
func TestRecomputeStages_StatusDerivation(t *testing.T) {
	idA, idB, idC := uuid.New(), uuid.New(), uuid.New()
	stages := []Stage{
		stage(idA, "Fundação", 1000),
		stage(idB, "Estrutura", 1000),
		stage(idC, "Acabamento", 1000),
	}
	executions := []ExecutionEntry{
		execution(idB, 500),
		execution(idC, 700),
		execution(idC, 500),
	}

	got := RecomputeStages(stages, executions)

	cases := []struct {
		i          int
		status     string
		executed   float64
		difference float64
	}{
		{0, StatusNotStarted, 0, 1000},
		{1, StatusInProgress, 500, 500},
		{2, StatusCompleted, 1200, -200},
	}
	for _, c := range cases {
		s := got[c.i]
		if s.Status != c.status {
			t.Errorf("%s: status %s, want %s", s.Name, s.Status, c.status)
		}
		if s.ExecutedValue != c.executed {
			t.Errorf("%s: executed %f, want %f", s.Name, s.ExecutedValue, c.executed)
		}
		if s.Difference != c.difference {
			t.Errorf("%s: difference %f, want %f", s.Name, s.Difference, c.difference)
		}
	}
}

// TestRecomputeStages_Idempotent verifies running the recompute twice over
// its own output changes nothing.
func TestRecomputeStages_Idempotent(t *testing.T) {
	idA, idB := uuid.New(), uuid.New()
	stages := []Stage{stage(idA, "A", 800), stage(idB, "B", 1200)}
	executions := []ExecutionEntry{execution(idA, 300), execution(idB, 1200)}

	once := RecomputeStages(stages, executions)
	twice := RecomputeStages(once, executions)

	for i := range once {
		if once[i].ExecutedValue != twice[i].ExecutedValue ||
			once[i].Difference != twice[i].Difference ||
			once[i].Status != twice[i].Status {
			t.Errorf("stage %s drifted on second recompute: %+v vs %+v",
				once[i].Name, once[i], twice[i])
		}
	}
}

// TestRecomputeStages_DoesNotMutate verifies the input stage list keeps its
// stale derived fields.
func TestRecomputeStages_DoesNotMutate(t *testing.T) {
	id := uuid.New()
	stages := []Stage{stage(id, "A", 1000)}
	RecomputeStages(stages, []ExecutionEntry{execution(id, 400)})

	if stages[0].ExecutedValue != 0 || stages[0].Status != "" {
		t.Error("RecomputeStages mutated its input")
	}
}

// TestRecomputeStages_LatePreserved verifies the LATE override survives a
// recompute and layers over the derived status.
func TestRecomputeStages_LatePreserved(t *testing.T) {
	id := uuid.New()
	stages := []Stage{{ID: id, Name: "Alvenaria", PlannedValue: 1000, Late: true}}

	got := RecomputeStages(stages, []ExecutionEntry{execution(id, 500)})

	if !got[0].Late {
		t.Fatal("Late flag lost during recompute")
	}
	if got[0].Status != StatusInProgress {
		t.Errorf("derived status: got %s, want %s", got[0].Status, StatusInProgress)
	}
	if got[0].EffectiveStatus() != StatusLate {
		t.Errorf("effective status: got %s, want %s", got[0].EffectiveStatus(), StatusLate)
	}
}

// TestRecomputeStages_IgnoresUnknownStage verifies executions pointing at a
// stage outside the list do not leak into any stage's sum.
func TestRecomputeStages_IgnoresUnknownStage(t *testing.T) {
	id := uuid.New()
	got := RecomputeStages(
		[]Stage{stage(id, "A", 1000)},
		[]ExecutionEntry{execution(uuid.New(), 999)},
	)

	if got[0].ExecutedValue != 0 {
		t.Errorf("executed value: got %f, want 0", got[0].ExecutedValue)
	}
}

func TestComputeTotals(t *testing.T) {
	idA, idB := uuid.New(), uuid.New()
	stages := RecomputeStages(
		[]Stage{stage(idA, "A", 1000), stage(idB, "B", 500)},
		[]ExecutionEntry{execution(idA, 400), execution(idB, 600)},
	)

	totals := ComputeTotals(stages)
	if totals.TotalPlanned != 1500 {
		t.Errorf("planned: got %f, want 1500", totals.TotalPlanned)
	}
	if totals.TotalExecuted != 1000 {
		t.Errorf("executed: got %f, want 1000", totals.TotalExecuted)
	}
	if totals.TotalDifference != 500 {
		t.Errorf("difference: got %f, want 500", totals.TotalDifference)
	}
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals(nil)
	if totals.TotalPlanned != 0 || totals.TotalExecuted != 0 || totals.TotalDifference != 0 {
		t.Errorf("expected zero totals, got %+v", totals)
	}
}
