package http

import (
	"errors"
	"net/http"

	"orbital/internal/log"
	"orbital/internal/services"
)

// handleCreateExport queues the rows the current filters select. The
// filters are read from the query string, exactly as for the table.
func (s *Server) handleCreateExport(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	if s.exports == nil || !s.exports.Enabled() {
		ServiceUnavailableError(services.ErrExportsDisabled.Error()).Write(w)
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

	msg, err := s.exports.Request(r.Context(), clientID(r), st, q)
	if err != nil {
		if errors.Is(err, services.ErrExportsDisabled) {
			ServiceUnavailableError(err.Error()).Write(w)
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to queue export",
			log.FieldOperation, log.OpExport, log.FieldError, err)
		ServiceUnavailableError("export queue unavailable").Write(w)
		return
	}

	NewJSONResponse().
		Status(http.StatusAccepted).
		JSON(ExportAcceptedView{
			ID:          msg.ID,
			Status:      "queued",
			Rows:        len(msg.Rows),
			RequestedAt: msg.RequestedAt,
		}).
		Write(w)
}
