package http

import (
	"net/http"

	"orbital/internal/export"
	"orbital/internal/log"
)

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	st, now, ok := s.requestState(w, r)
	if !ok {
		return
	}
	q, err := ParseTableQuery(r.URL.Query())
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	page := s.dashboard.Transactions(r.Context(), st, q)
	NewJSONResponse().JSON(newTransactionsView(page, now)).Write(w)
}

func (s *Server) handleTransactionsCSV(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	st, _, ok := s.requestState(w, r)
	if !ok {
		return
	}
	q, err := ParseTableQuery(r.URL.Query())
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	rows := s.dashboard.Rows(st, q)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	w.WriteHeader(http.StatusOK)

	csvWriter := &export.CSVWriter{}
	if err := csvWriter.Write(w, rows); err != nil {
		// Headers are already sent; all we can do is log.
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to stream CSV",
			log.FieldOperation, log.OpExport, log.FieldError, err)
	}
}
