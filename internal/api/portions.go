package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/frp/ssnt-nutrition/internal/domain"
)

// ─── Route Table ────────────────────────────────────────────────────────────
// GET  /days/{date}/portions                      — current counts for a day
// GET  /goals                                     — current goals
// POST /days/{date}/portions/{nutrient}/consume   — append consume event
// POST /days/{date}/portions/{nutrient}/unconsume — append unconsume event
// POST /goals/portions/{nutrient}/inc             — append goal inc event
// POST /goals/portions/{nutrient}/dec             — append goal dec event
// GET  /debug/events/days/{date}                  — raw nutrient ledger
// GET  /debug/events/goals                        — raw goal ledger

const defaultLogLimit = 100

// handleQueryDay returns nutrient → count for one date.
// GET /days/{date}/portions
func (s *Server) handleQueryDay(w http.ResponseWriter, r *http.Request) {
	counts, err := s.tracker.QueryDay(chi.URLParam(r, "date"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// handleQueryGoals returns nutrient → current goal.
// GET /goals
func (s *Server) handleQueryGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.tracker.QueryGoals()
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

// handleConsume records one consumed portion.
// POST /days/{date}/portions/{nutrient}/consume
func (s *Server) handleConsume(w http.ResponseWriter, r *http.Request) {
	err := s.tracker.RecordConsumption(chi.URLParam(r, "date"), chi.URLParam(r, "nutrient"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "success")
}

// handleUnconsume takes back one consumed portion.
// POST /days/{date}/portions/{nutrient}/unconsume
func (s *Server) handleUnconsume(w http.ResponseWriter, r *http.Request) {
	err := s.tracker.RecordUnconsumption(chi.URLParam(r, "date"), chi.URLParam(r, "nutrient"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "success")
}

// handleIncGoal raises a nutrient goal by one.
// POST /goals/portions/{nutrient}/inc
func (s *Server) handleIncGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.IncrementGoal(chi.URLParam(r, "nutrient")); err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "success")
}

// handleDecGoal lowers a nutrient goal by one.
// POST /goals/portions/{nutrient}/dec
func (s *Server) handleDecGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DecrementGoal(chi.URLParam(r, "nutrient")); err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "success")
}

// handleDayLog returns the raw nutrient ledger for a date.
// GET /debug/events/days/{date}?limit=N
func (s *Server) handleDayLog(w http.ResponseWriter, r *http.Request) {
	events, err := s.tracker.DayLog(chi.URLParam(r, "date"), logLimit(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	if events == nil {
		events = []domain.PortionEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

// handleGoalLog returns the raw goal ledger.
// GET /debug/events/goals?limit=N
func (s *Server) handleGoalLog(w http.ResponseWriter, r *http.Request) {
	events, err := s.tracker.GoalLog(logLimit(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	if events == nil {
		events = []domain.GoalEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

// logLimit parses the limit query parameter, defaulting to 100.
func logLimit(r *http.Request) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultLogLimit
}
