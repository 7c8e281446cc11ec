package http

import (
	"net/http"

	"orbital/internal/log"
	"orbital/internal/state"
)

func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		s.handleGetPreferences(w, r)
	case http.MethodPut:
		s.handleUpdatePreferences(w, r)
	default:
		MethodNotAllowedError("GET, HEAD, PUT").Write(w)
	}
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	p := s.preferences.Load(r.Context(), clientID(r))
	NewJSONResponse().JSON(newPreferencesView(p, prefersDark(r))).Write(w)
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	update, err := ParsePreferenceUpdate(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	actions, err := update.Actions()
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	s.savePreferences(w, r, actions...)
}

func (s *Server) handleToggleSidebar(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	s.savePreferences(w, r, state.ToggleSidebar{})
}

func (s *Server) savePreferences(w http.ResponseWriter, r *http.Request, actions ...state.Action) {
	p, err := s.preferences.Update(r.Context(), clientID(r), actions...)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to save preferences",
			log.FieldOperation, log.OpUpdate, log.FieldError, err)
		InternalServerError("failed to save preferences").Write(w)
		return
	}

	NewJSONResponse().JSON(newPreferencesView(p, prefersDark(r))).Write(w)
}
