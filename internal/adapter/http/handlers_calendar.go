package adapthttp

import "net/http"

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	day := r.URL.Query().Get("day")
	if day == "" {
		day = s.ledger.Today()
	}
	month, err := s.calendar.Month(day)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, month)
}
