package adapthttp

import (
	"errors"
	"net/http"
)

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPut) {
		return
	}
	if r.Method == http.MethodPut {
		var body struct {
			Goal *int `json:"goal"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if body.Goal == nil {
			writeError(w, http.StatusBadRequest, errors.New("goal is required"))
			return
		}
		if err := s.ledger.SetGoal(r.Context(), *body.Goal); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"goal": s.ledger.Goal()})
}

// handleGoalSuggest computes a goal from body weight. With apply set the
// goal is stored as well.
func (s *Server) handleGoalSuggest(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	var body struct {
		Weight float64 `json:"weight"`
		Unit   string  `json:"unit"`
		Apply  bool    `json:"apply"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var (
		goal int
		err  error
	)
	if body.Apply {
		goal, err = s.goals.ApplySuggested(r.Context(), body.Weight, body.Unit)
	} else {
		goal, err = s.goals.Suggest(body.Weight, body.Unit)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"goal": goal, "applied": body.Apply})
}
