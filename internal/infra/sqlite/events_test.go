package sqlite

import (
	"testing"

	"github.com/frp/ssnt-nutrition/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ─── Nutrient Ledger ────────────────────────────────────────────────────────

func TestSumPortions_Empty(t *testing.T) {
	db := newTestDB(t)

	sum, ok, err := db.SumPortions("2026-01-01", domain.NutrientProtein)
	if err != nil {
		t.Fatalf("SumPortions() error: %v", err)
	}
	if ok {
		t.Error("ok = true for never-seen key, want false")
	}
	if sum != 0 {
		t.Errorf("sum = %d, want 0", sum)
	}
}

func TestSumPortions_SignedSum(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 3; i++ {
		if err := db.InsertPortionEvent("2026-01-01", domain.NutrientProtein, domain.PortionConsume); err != nil {
			t.Fatalf("InsertPortionEvent() error: %v", err)
		}
	}
	if err := db.InsertPortionEvent("2026-01-01", domain.NutrientProtein, domain.PortionUnconsume); err != nil {
		t.Fatal(err)
	}

	sum, ok, err := db.SumPortions("2026-01-01", domain.NutrientProtein)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("ok = false, want true")
	}
	if sum != 2 {
		t.Errorf("sum = %d, want 2", sum)
	}
}

func TestSumPortions_ZeroStillPresent(t *testing.T) {
	db := newTestDB(t)
	db.InsertPortionEvent("2026-01-01", domain.NutrientFats, domain.PortionConsume)
	db.InsertPortionEvent("2026-01-01", domain.NutrientFats, domain.PortionUnconsume)

	sum, ok, err := db.SumPortions("2026-01-01", domain.NutrientFats)
	if err != nil {
		t.Fatal(err)
	}
	// The key has events, so it is present even though the sum is zero.
	if !ok {
		t.Error("ok = false for key with events, want true")
	}
	if sum != 0 {
		t.Errorf("sum = %d, want 0", sum)
	}
}

func TestAggregateDay(t *testing.T) {
	db := newTestDB(t)
	db.InsertPortionEvent("2026-01-01", domain.NutrientProtein, domain.PortionConsume)
	db.InsertPortionEvent("2026-01-01", domain.NutrientProtein, domain.PortionConsume)
	db.InsertPortionEvent("2026-01-01", domain.NutrientCarbs, domain.PortionConsume)
	db.InsertPortionEvent("2026-01-02", domain.NutrientVegetables, domain.PortionConsume)

	got, err := db.AggregateDay("2026-01-01")
	if err != nil {
		t.Fatalf("AggregateDay() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("AggregateDay() returned %d keys, want 2", len(got))
	}
	if got["protein"] != 2 {
		t.Errorf("protein = %d, want 2", got["protein"])
	}
	if got["carbs"] != 1 {
		t.Errorf("carbs = %d, want 1", got["carbs"])
	}
}

func TestAggregateDay_Empty(t *testing.T) {
	db := newTestDB(t)
	got, err := db.AggregateDay("2026-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("AggregateDay() on empty ledger = %v, want empty map", got)
	}
}

func TestAggregateDay_ScopeIsExactString(t *testing.T) {
	db := newTestDB(t)
	db.InsertPortionEvent("2026-01-01", domain.NutrientProtein, domain.PortionConsume)

	got, err := db.AggregateDay("2026-01-02")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("other date = %v, want empty map", got)
	}
}

func TestListPortionEvents_OrderedByID(t *testing.T) {
	db := newTestDB(t)
	db.InsertPortionEvent("2026-01-01", domain.NutrientProtein, domain.PortionConsume)
	db.InsertPortionEvent("2026-01-01", domain.NutrientCarbs, domain.PortionConsume)
	db.InsertPortionEvent("2026-01-01", domain.NutrientProtein, domain.PortionUnconsume)

	events, err := db.ListPortionEvents("2026-01-01", 100)
	if err != nil {
		t.Fatalf("ListPortionEvents() error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].ID <= events[i-1].ID {
			t.Errorf("events not ordered by id: %d after %d", events[i].ID, events[i-1].ID)
		}
	}
	if events[0].Name != "protein" || events[0].Kind != "consume" {
		t.Errorf("first event = %+v, want protein/consume", events[0])
	}
	if events[0].Timestamp <= 0 {
		t.Errorf("timestamp = %d, want positive millisecond value", events[0].Timestamp)
	}
}

func TestListPortionEvents_Limit(t *testing.T) {
	db := newTestDB(t)
	for i := 0; i < 5; i++ {
		db.InsertPortionEvent("2026-01-01", domain.NutrientProtein, domain.PortionConsume)
	}

	events, err := db.ListPortionEvents("2026-01-01", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Errorf("got %d events, want 2", len(events))
	}
}

// ─── Goal Ledger ────────────────────────────────────────────────────────────

func TestSumGoal_Empty(t *testing.T) {
	db := newTestDB(t)
	sum, ok, err := db.SumGoal(domain.NutrientProtein)
	if err != nil {
		t.Fatal(err)
	}
	if ok || sum != 0 {
		t.Errorf("SumGoal() = (%d, %v), want (0, false)", sum, ok)
	}
}

func TestAggregateGoals(t *testing.T) {
	db := newTestDB(t)
	db.InsertGoalEvent(domain.NutrientProtein, domain.GoalInc)
	db.InsertGoalEvent(domain.NutrientProtein, domain.GoalInc)
	db.InsertGoalEvent(domain.NutrientCarbs, domain.GoalInc)
	db.InsertGoalEvent(domain.NutrientProtein, domain.GoalDec)

	got, err := db.AggregateGoals()
	if err != nil {
		t.Fatalf("AggregateGoals() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d keys, want 2", len(got))
	}
	if got["protein"] != 1 {
		t.Errorf("protein = %d, want 1", got["protein"])
	}
	if got["carbs"] != 1 {
		t.Errorf("carbs = %d, want 1", got["carbs"])
	}
}

func TestAggregateGoals_Empty(t *testing.T) {
	db := newTestDB(t)
	got, err := db.AggregateGoals()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("AggregateGoals() on empty ledger = %v, want empty map", got)
	}
}

func TestListGoalEvents(t *testing.T) {
	db := newTestDB(t)
	db.InsertGoalEvent(domain.NutrientFats, domain.GoalInc)
	db.InsertGoalEvent(domain.NutrientFats, domain.GoalDec)

	events, err := db.ListGoalEvents(100)
	if err != nil {
		t.Fatalf("ListGoalEvents() error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Kind != "inc" || events[1].Kind != "dec" {
		t.Errorf("kinds = %q, %q; want inc, dec", events[0].Kind, events[1].Kind)
	}
}

// ─── Schema Enforcement ─────────────────────────────────────────────────────

func TestCheckConstraint_RejectsUnknownNutrient(t *testing.T) {
	db := newTestDB(t)

	// The application layer never sends these, but the storage boundary
	// mirrors the closed sets as CHECK constraints.
	if err := db.InsertPortionEvent("2026-01-01", domain.Nutrient("sugar"), domain.PortionConsume); err == nil {
		t.Error("insert with unknown nutrient succeeded, want constraint error")
	}
	if err := db.InsertPortionEvent("2026-01-01", domain.NutrientProtein, domain.PortionKind("eat")); err == nil {
		t.Error("insert with unknown kind succeeded, want constraint error")
	}
	if err := db.InsertGoalEvent(domain.Nutrient("sugar"), domain.GoalInc); err == nil {
		t.Error("goal insert with unknown nutrient succeeded, want constraint error")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	db.InsertGoalEvent(domain.NutrientProtein, domain.GoalInc)
	db.Close()

	// Reopen: migrations are IF NOT EXISTS, data survives.
	db2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()

	sum, ok, err := db2.SumGoal(domain.NutrientProtein)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || sum != 1 {
		t.Errorf("after reopen SumGoal = (%d, %v), want (1, true)", sum, ok)
	}
}
