package server

import (
	"net/http"

	"github.com/jperaza/divvy/internal/export"
	"github.com/jperaza/divvy/internal/middleware"
)

// settlementView is a settlement resolved for display: ids mapped to names
// and the payee's payment details, amount rendered with exactly two
// decimals.
type settlementView struct {
	From           string `json:"from"`
	FromName       string `json:"from_name"`
	To             string `json:"to"`
	ToName         string `json:"to_name"`
	Amount         string `json:"amount"`
	PaymentDetails string `json:"payment_details,omitempty"`
}

// handleListSettlements handles GET /api/settlements.
func (s *Server) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	people, err := s.svc.ListPeople(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	directory := export.NewDirectory(people)
	settlements := s.svc.Settlements()
	views := make([]settlementView, 0, len(settlements))
	for _, st := range settlements {
		views = append(views, settlementView{
			From:           st.From,
			FromName:       directory.Name(st.From),
			To:             st.To,
			ToName:         directory.Name(st.To),
			Amount:         st.Amount.StringFixed(2),
			PaymentDetails: directory.PaymentDetails(st.To),
		})
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"settlements": views,
		"count":       len(views),
	})
}

// handleExportText handles GET /api/export/text.
func (s *Server) handleExportText(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.svc.ListExpenses(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	people, err := s.svc.ListPeople(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	summary := export.Text(expenses, people, s.svc.Settlements())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(summary))
}

// handleExportPDF handles GET /api/export/pdf.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.svc.ListExpenses(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	people, err := s.svc.ListPeople(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="expense-summary.pdf"`)
	if err := export.PDF(w, expenses, people, s.svc.Settlements()); err != nil {
		writeServiceError(w, err)
		return
	}
}
