package adapthttp

import (
	"errors"
	"net/http"
	"strings"

	"proteinflip/internal/domain"
)

var errAmountRequired = errors.New("amount is required")

type amountBody struct {
	Amount *int `json:"amount"`
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	// Today is derived from the clock on every read, so a long-running server
	// never reports yesterday's total.
	writeJSON(w, http.StatusOK, s.ledger.RolloverIfNeeded(r.Context()))
}

func (s *Server) handleTodayAdd(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	var body amountBody
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Amount == nil {
		writeError(w, http.StatusBadRequest, errAmountRequired)
		return
	}
	snap, err := s.ledger.AddSnapshot(r.Context(), *body.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleTodayUndoLast(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	undone, total := s.ledger.UndoLast(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"undone": undone, "total": total})
}

func (s *Server) handleRollover(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	writeJSON(w, http.StatusOK, s.ledger.RolloverIfNeeded(r.Context()))
}

// handleDay serves /days/{day}.
func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPut) {
		return
	}
	day := strings.TrimPrefix(r.URL.Path, "/days/")

	if r.Method == http.MethodPut {
		var body amountBody
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if body.Amount == nil {
			writeError(w, http.StatusBadRequest, errAmountRequired)
			return
		}
		if err := s.ledger.Set(r.Context(), day, *body.Amount); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	if _, err := domain.ParseDay(day); err != nil {
		writeDomainError(w, err)
		return
	}
	amount, recorded := s.ledger.Amount(day)
	writeJSON(w, http.StatusOK, map[string]any{"day": day, "amount": amount, "recorded": recorded})
}
