// Package server exposes the JSON REST API: record CRUD for people and
// expenses, the derived settlement list, exports, and the login endpoint
// for the authorization gate.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jperaza/divvy/internal/auth"
	"github.com/jperaza/divvy/internal/middleware"
	"github.com/jperaza/divvy/internal/service"
)

// Server holds the handler dependencies.
type Server struct {
	svc  *service.Service
	gate *auth.Gate
}

// New creates a Server over the given service and authorization gate.
func New(svc *service.Service, gate *auth.Gate) *Server {
	return &Server{svc: svc, gate: gate}
}

// Routes builds the full handler chain. Destructive routes (update/delete)
// sit behind the gate; everything else is open.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/people", s.handleListPeople)
	mux.HandleFunc("POST /api/people", s.handleCreatePerson)
	mux.Handle("PUT /api/people/{id}", s.guarded(s.handleUpdatePerson))
	mux.Handle("DELETE /api/people/{id}", s.guarded(s.handleDeletePerson))

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.Handle("DELETE /api/expenses/{id}", s.guarded(s.handleDeleteExpense))

	mux.HandleFunc("GET /api/settlements", s.handleListSettlements)
	mux.HandleFunc("GET /api/export/text", s.handleExportText)
	mux.HandleFunc("GET /api/export/pdf", s.handleExportPDF)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return middleware.Logging(middleware.Metrics(middleware.CORS(middleware.Recovery(mux))))
}

func (s *Server) guarded(h http.HandlerFunc) http.Handler {
	return middleware.RequireSession(s.gate, h)
}

// handleLogin exchanges the shared password for a session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.gate.Login(req.Password)
	if err != nil {
		middleware.WriteError(w, http.StatusUnauthorized, "wrong password")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}
