// Ledger operations: append events and derive current values by signed
// aggregation. Consume/inc count +1, unconsume/dec count −1.
package sqlite

import (
	"database/sql"

	"github.com/frp/ssnt-nutrition/internal/domain"
)

// ─── Nutrient Ledger Operations ─────────────────────────────────────────────

// InsertPortionEvent appends one nutrient ledger event.
func (d *DB) InsertPortionEvent(date string, n domain.Nutrient, kind domain.PortionKind) error {
	_, err := d.db.Exec(`
		INSERT INTO nutrient_events (name, date, type) VALUES (?, ?, ?)
	`, string(n), date, string(kind))
	return err
}

// SumPortions returns the signed event sum for one (date, nutrient) pair.
// ok is false when the pair has no events at all.
func (d *DB) SumPortions(date string, n domain.Nutrient) (int, bool, error) {
	var sum sql.NullInt64
	err := d.db.QueryRow(`
		SELECT SUM(CASE type WHEN 'consume' THEN 1 ELSE -1 END)
		FROM nutrient_events WHERE date = ? AND name = ?
	`, date, string(n)).Scan(&sum)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if !sum.Valid {
		return 0, false, nil
	}
	return int(sum.Int64), true, nil
}

// AggregateDay returns nutrient → signed sum for every nutrient that has at
// least one event on the given date. Unknown dates yield an empty map.
func (d *DB) AggregateDay(date string) (map[string]int, error) {
	rows, err := d.db.Query(`
		SELECT name, SUM(CASE type WHEN 'consume' THEN 1 ELSE -1 END)
		FROM nutrient_events WHERE date = ? GROUP BY name
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var name string
		var sum int
		if err := rows.Scan(&name, &sum); err != nil {
			return nil, err
		}
		result[name] = sum
	}
	return result, rows.Err()
}

// ListPortionEvents returns the raw nutrient ledger for a date, oldest first.
func (d *DB) ListPortionEvents(date string, limit int) ([]domain.PortionEvent, error) {
	rows, err := d.db.Query(`
		SELECT id, timestamp, name, date, type
		FROM nutrient_events WHERE date = ? ORDER BY id LIMIT ?
	`, date, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PortionEvent
	for rows.Next() {
		var e domain.PortionEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Name, &e.Date, &e.Kind); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// ─── Goal Ledger Operations ─────────────────────────────────────────────────

// InsertGoalEvent appends one goal ledger event.
func (d *DB) InsertGoalEvent(n domain.Nutrient, kind domain.GoalKind) error {
	_, err := d.db.Exec(`
		INSERT INTO goal_events (nutrient, type) VALUES (?, ?)
	`, string(n), string(kind))
	return err
}

// SumGoal returns the signed event sum for one nutrient's goal.
// ok is false when the nutrient has no goal events at all.
func (d *DB) SumGoal(n domain.Nutrient) (int, bool, error) {
	var sum sql.NullInt64
	err := d.db.QueryRow(`
		SELECT SUM(CASE type WHEN 'inc' THEN 1 ELSE -1 END)
		FROM goal_events WHERE nutrient = ?
	`, string(n)).Scan(&sum)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if !sum.Valid {
		return 0, false, nil
	}
	return int(sum.Int64), true, nil
}

// AggregateGoals returns nutrient → signed sum over all goal events.
func (d *DB) AggregateGoals() (map[string]int, error) {
	rows, err := d.db.Query(`
		SELECT nutrient, SUM(CASE type WHEN 'inc' THEN 1 ELSE -1 END)
		FROM goal_events GROUP BY nutrient
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var nutrient string
		var sum int
		if err := rows.Scan(&nutrient, &sum); err != nil {
			return nil, err
		}
		result[nutrient] = sum
	}
	return result, rows.Err()
}

// ListGoalEvents returns the raw goal ledger, oldest first.
func (d *DB) ListGoalEvents(limit int) ([]domain.GoalEvent, error) {
	rows, err := d.db.Query(`
		SELECT id, timestamp, nutrient, type
		FROM goal_events ORDER BY id LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.GoalEvent
	for rows.Next() {
		var e domain.GoalEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Nutrient, &e.Kind); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
