package server

import (
	"net/http"

	"github.com/jperaza/divvy/internal/middleware"
	"github.com/jperaza/divvy/internal/models"
)

type personRequest struct {
	FullName      string `json:"full_name"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	PartnerID     string `json:"partner_id"`
}

// handleListPeople handles GET /api/people.
func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := s.svc.ListPeople(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"people": people,
		"count":  len(people),
	})
}

// handleCreatePerson handles POST /api/people.
func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	person := &models.Person{
		FullName:      req.FullName,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		PartnerID:     req.PartnerID,
	}
	if err := s.svc.AddPerson(r.Context(), person); err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, person)
}

// handleUpdatePerson handles PUT /api/people/{id} (gated).
func (s *Server) handleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	person := &models.Person{
		ID:            r.PathValue("id"),
		FullName:      req.FullName,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		PartnerID:     req.PartnerID,
	}
	if err := s.svc.UpdatePerson(r.Context(), person); err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, person)
}

// handleDeletePerson handles DELETE /api/people/{id} (gated). Expenses the
// person paid or shared are deleted along with them.
func (s *Server) handleDeletePerson(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeletePerson(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
