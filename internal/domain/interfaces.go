package domain

// ─── Store Interface ────────────────────────────────────────────────────────
// The interface defines the boundary between layers: infrastructure
// implements it, the application layer depends on it. Both ledgers are
// append-only; the store never updates or deletes a row.

// EventStore abstracts the two append-only event ledgers.
//
// Sum* return ok=false when the (scope, subject) pair has no events at all.
// The aggregates group by subject and omit subjects with zero matching
// events — an empty scope yields an empty map, not zero-valued entries.
type EventStore interface {
	// Nutrient ledger, partitioned by date.
	InsertPortionEvent(date string, n Nutrient, kind PortionKind) error
	SumPortions(date string, n Nutrient) (sum int, ok bool, err error)
	AggregateDay(date string) (map[string]int, error)
	ListPortionEvents(date string, limit int) ([]PortionEvent, error)

	// Goal ledger, no date dimension.
	InsertGoalEvent(n Nutrient, kind GoalKind) error
	SumGoal(n Nutrient) (sum int, ok bool, err error)
	AggregateGoals() (map[string]int, error)
	ListGoalEvents(limit int) ([]GoalEvent, error)
}
