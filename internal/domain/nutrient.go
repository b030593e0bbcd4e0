// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

import "regexp"

// ─── Nutrient Types ─────────────────────────────────────────────────────────

// Nutrient is one of the four tracked nutrient categories.
type Nutrient string

const (
	NutrientProtein    Nutrient = "protein"
	NutrientCarbs      Nutrient = "carbs"
	NutrientVegetables Nutrient = "vegetables"
	NutrientFats       Nutrient = "fats"
)

// Nutrients lists every valid nutrient category.
var Nutrients = []Nutrient{NutrientProtein, NutrientCarbs, NutrientVegetables, NutrientFats}

// ValidNutrient reports whether s is exactly one of the four nutrient names.
// The match is case-sensitive.
func ValidNutrient(s string) bool {
	switch Nutrient(s) {
	case NutrientProtein, NutrientCarbs, NutrientVegetables, NutrientFats:
		return true
	}
	return false
}

// dateShape is intentionally unanchored: any string containing a
// digit-run of the form NNNN-NN-NN passes, and no calendar validity
// is checked ("0000-99-99" is accepted).
var dateShape = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// ValidDate reports whether s contains a YYYY-MM-DD shaped date.
func ValidDate(s string) bool {
	return dateShape.MatchString(s)
}

// ─── Event Kinds ────────────────────────────────────────────────────────────

// PortionKind is the polarity tag of a nutrient ledger event.
type PortionKind string

const (
	PortionConsume   PortionKind = "consume"
	PortionUnconsume PortionKind = "unconsume"
)

// GoalKind is the polarity tag of a goal ledger event.
type GoalKind string

const (
	GoalInc GoalKind = "inc"
	GoalDec GoalKind = "dec"
)

// ─── Event Records ──────────────────────────────────────────────────────────
// Events are immutable once appended. The ID is a storage-assigned surrogate
// key used only for ordering — never for business logic. The timestamp is
// capture time in milliseconds and is advisory only.

// PortionEvent is one row of the nutrient ledger.
type PortionEvent struct {
	ID        int64  `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Kind      string `json:"kind"`
}

// GoalEvent is one row of the goal ledger.
type GoalEvent struct {
	ID        int64  `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Nutrient  string `json:"nutrient"`
	Kind      string `json:"kind"`
}
