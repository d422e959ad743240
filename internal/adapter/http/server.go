package adapthttp

import (
	"net/http"

	"go.uber.org/zap"

	"proteinflip/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	ledger   *app.LedgerStore
	calendar *app.CalendarService
	goals    *app.GoalService
	access   *app.AccessService
	log      *zap.Logger
}

// New creates a Server wired to the given application services. A nil
// access service leaves the API open.
func New(ledger *app.LedgerStore, cs *app.CalendarService, gs *app.GoalService, access *app.AccessService, log *zap.Logger) *Server {
	if access == nil {
		access = app.NewAccessService("")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{ledger: ledger, calendar: cs, goals: gs, access: access, log: log}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/today", s.handleToday)
	api.HandleFunc("/today/add", s.handleTodayAdd)
	api.HandleFunc("/today/undo-last", s.handleTodayUndoLast)
	api.HandleFunc("/rollover", s.handleRollover)

	api.HandleFunc("/month", s.handleMonth)
	api.HandleFunc("/days/", s.handleDay)

	api.HandleFunc("/goal", s.handleGoal)
	api.HandleFunc("/goal/suggest", s.handleGoalSuggest)

	root := http.NewServeMux()
	root.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	root.Handle("/api/", http.StripPrefix("/api", s.accessMiddleware(api)))

	return withNoCache(s.loggingMiddleware(root))
}
