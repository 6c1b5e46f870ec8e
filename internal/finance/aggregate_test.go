package finance

import (
	"math"
	"testing"
	"time"
)

func entry(desc, supplier, stage, typ string, value float64, date string) ExpenseEntry {
	d, _ := time.Parse("2006-01-02", date)
	return ExpenseEntry{
		Description: desc,
		Supplier:    supplier,
		Stage:       stage,
		Type:        typ,
		Value:       value,
		Date:        d,
	}
}

func sampleEntries() []ExpenseEntry {
	return []ExpenseEntry{
		entry("Concreto usinado", "Concrebras", "Fundação", TypeMaterial, 52000, "2025-03-04"),
		entry("Estacas hélice", "GeoFund", "Fundação", TypeServices, 95000, "2025-02-18"),
		entry("Mão de obra formas", "Equipe Silva", "Fundação", TypeLabor, 41000, "2025-03-21"),
		entry("Concreto lajes", "Concrebras", "Estrutura", TypeMaterial, 88000, "2025-04-15"),
		entry("Locação de grua", "LocaMaq", "Estrutura", TypeRental, 36000, "2025-04-28"),
	}
}

// TestAggregateBy_TotalsFoot verifies the group sums add up to the entry sum.
func TestAggregateBy_TotalsFoot(t *testing.T) {
	entries := sampleEntries()
	groups := AggregateBy(entries, ByType)

	var entryTotal, groupTotal float64
	for _, e := range entries {
		entryTotal += e.Value
	}
	for _, g := range groups {
		groupTotal += g.Value
	}

	if math.Abs(entryTotal-groupTotal) > 1e-9 {
		t.Errorf("group totals %f do not foot with entry total %f", groupTotal, entryTotal)
	}
}

// TestAggregateBy_PercentageBounds verifies every percentage is within
// [0, 100] and they sum to roughly 100 (±1 per-group rounding slack).
func TestAggregateBy_PercentageBounds(t *testing.T) {
	groups := AggregateBy(sampleEntries(), BySupplier)

	var sum float64
	for _, g := range groups {
		if g.Percentage < 0 || g.Percentage > 100 {
			t.Errorf("percentage out of bounds for %s: %f", g.Key, g.Percentage)
		}
		sum += g.Percentage
	}
	if math.Abs(sum-100) > float64(len(groups)) {
		t.Errorf("percentages sum to %f, want ~100", sum)
	}
}

// TestAggregateBy_Empty verifies empty input yields an empty result with no
// division by zero.
func TestAggregateBy_Empty(t *testing.T) {
	groups := AggregateBy(nil, ByType)
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}

// TestAggregateBy_SkipsNonPositive verifies zero-valued entries create no
// group.
func TestAggregateBy_SkipsNonPositive(t *testing.T) {
	entries := []ExpenseEntry{
		entry("válido", "A", "", TypeMaterial, 100, "2025-01-10"),
		entry("zerado", "B", "", TypeLabor, 0, "2025-01-11"),
	}

	groups := AggregateBy(entries, ByType)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Key != TypeMaterial {
		t.Errorf("expected group %s, got %s", TypeMaterial, groups[0].Key)
	}
	if groups[0].Percentage != 100 {
		t.Errorf("expected 100%%, got %f", groups[0].Percentage)
	}
}

// TestAggregateBy_InsertionOrder verifies groups come back in
// first-appearance order regardless of value.
func TestAggregateBy_InsertionOrder(t *testing.T) {
	groups := AggregateBy(sampleEntries(), ByType)

	want := []string{TypeMaterial, TypeServices, TypeLabor, TypeRental}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(groups))
	}
	for i, k := range want {
		if groups[i].Key != k {
			t.Errorf("group %d: expected %s, got %s", i, k, groups[i].Key)
		}
	}
}

// TestAggregateBy_MonthBucket verifies the month dimension groups by
// YYYY-MM.
func TestAggregateBy_MonthBucket(t *testing.T) {
	groups := AggregateBy(sampleEntries(), ByMonth)

	keys := map[string]bool{}
	for _, g := range groups {
		keys[g.Key] = true
	}
	for _, want := range []string{"2025-02", "2025-03", "2025-04"} {
		if !keys[want] {
			t.Errorf("missing month bucket %s", want)
		}
	}
}

// TestTopGroups verifies descending order, truncation and that the input
// slice is left untouched.
func TestTopGroups(t *testing.T) {
	groups := AggregateBy(sampleEntries(), BySupplier)
	firstBefore := groups[0].Key

	top := TopGroups(groups, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(top))
	}
	if top[0].Value < top[1].Value {
		t.Errorf("top groups not descending: %f < %f", top[0].Value, top[1].Value)
	}
	if groups[0].Key != firstBefore {
		t.Error("TopGroups mutated its input")
	}
}
