// Package tracker implements the event-log engine: validation, signed
// aggregation, and the serialization gate that keeps check-then-append
// sequences atomic.
package tracker

import (
	"sync"
	"time"

	"github.com/frp/ssnt-nutrition/internal/domain"
	"github.com/frp/ssnt-nutrition/internal/infra/observability"
)

// Tracker owns the event store. One mutex wraps every operation end-to-end:
// operations never overlap, even across unrelated keys. That global
// exclusivity makes the read-decide-append sequences in RecordUnconsumption
// and DecrementGoal atomic without store-level transactions — a deliberate
// simplification bought at the cost of serializing unrelated operations.
type Tracker struct {
	mu    sync.Mutex
	store domain.EventStore
}

// New creates a tracker over the given store.
func New(store domain.EventStore) *Tracker {
	return &Tracker{store: store}
}

// ─── Nutrient Ledger ────────────────────────────────────────────────────────

// RecordConsumption appends a consume event for (date, nutrient).
// Consuming is always allowed once the input validates.
func (t *Tracker) RecordConsumption(date, nutrient string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := validatePortionInput(date, nutrient); err != nil {
		return err
	}
	if err := t.store.InsertPortionEvent(date, domain.Nutrient(nutrient), domain.PortionConsume); err != nil {
		return err
	}
	observability.EventsAppended.WithLabelValues("nutrient", "consume").Inc()
	return nil
}

// RecordUnconsumption appends an unconsume event for (date, nutrient),
// refusing when the current value is absent or zero so the derived count
// can never be observed negative.
func (t *Tracker) RecordUnconsumption(date, nutrient string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := validatePortionInput(date, nutrient); err != nil {
		return err
	}

	// Safe to check and append without a transaction: the gate enforces
	// that no other operation runs between the read and the insert.
	sum, ok, err := t.store.SumPortions(date, domain.Nutrient(nutrient))
	if err != nil {
		return err
	}
	if !ok || sum == 0 {
		observability.CommandsRejected.WithLabelValues("count_at_zero").Inc()
		return domain.ErrCountAtZero
	}

	if err := t.store.InsertPortionEvent(date, domain.Nutrient(nutrient), domain.PortionUnconsume); err != nil {
		return err
	}
	observability.EventsAppended.WithLabelValues("nutrient", "unconsume").Inc()
	return nil
}

// QueryDay returns nutrient → current count for the given date string.
// The date is deliberately not validated here: filtering on an unknown or
// malformed string simply yields an empty map (reference behavior).
func (t *Tracker) QueryDay(date string) (map[string]int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	start := time.Now()
	result, err := t.store.AggregateDay(date)
	observability.QueryDuration.WithLabelValues("day").Observe(time.Since(start).Seconds())
	return result, err
}

// DayLog returns the raw nutrient ledger for a date, oldest first.
func (t *Tracker) DayLog(date string, limit int) ([]domain.PortionEvent, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.ListPortionEvents(date, limit)
}

// ─── Goal Ledger ────────────────────────────────────────────────────────────

// IncrementGoal appends an inc event for the nutrient's goal.
func (t *Tracker) IncrementGoal(nutrient string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !domain.ValidNutrient(nutrient) {
		observability.CommandsRejected.WithLabelValues("invalid_nutrient").Inc()
		return domain.ErrInvalidNutrient
	}
	if err := t.store.InsertGoalEvent(domain.Nutrient(nutrient), domain.GoalInc); err != nil {
		return err
	}
	observability.EventsAppended.WithLabelValues("goal", "inc").Inc()
	return nil
}

// DecrementGoal appends a dec event, refusing at zero.
func (t *Tracker) DecrementGoal(nutrient string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !domain.ValidNutrient(nutrient) {
		observability.CommandsRejected.WithLabelValues("invalid_nutrient").Inc()
		return domain.ErrInvalidNutrient
	}

	sum, ok, err := t.store.SumGoal(domain.Nutrient(nutrient))
	if err != nil {
		return err
	}
	if !ok || sum == 0 {
		observability.CommandsRejected.WithLabelValues("goal_at_zero").Inc()
		return domain.ErrGoalAtZero
	}

	if err := t.store.InsertGoalEvent(domain.Nutrient(nutrient), domain.GoalDec); err != nil {
		return err
	}
	observability.EventsAppended.WithLabelValues("goal", "dec").Inc()
	return nil
}

// QueryGoals returns nutrient → current goal over all goal events.
func (t *Tracker) QueryGoals() (map[string]int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	start := time.Now()
	result, err := t.store.AggregateGoals()
	observability.QueryDuration.WithLabelValues("goals").Observe(time.Since(start).Seconds())
	return result, err
}

// GoalLog returns the raw goal ledger, oldest first.
func (t *Tracker) GoalLog(limit int) ([]domain.GoalEvent, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.ListGoalEvents(limit)
}

// ─── Validation ─────────────────────────────────────────────────────────────

// validatePortionInput checks date shape first, then nutrient membership,
// matching the rejection order of the write endpoints.
func validatePortionInput(date, nutrient string) error {
	if !domain.ValidDate(date) {
		observability.CommandsRejected.WithLabelValues("invalid_date").Inc()
		return domain.ErrInvalidDate
	}
	if !domain.ValidNutrient(nutrient) {
		observability.CommandsRejected.WithLabelValues("invalid_nutrient").Inc()
		return domain.ErrInvalidNutrient
	}
	return nil
}
