package http

import (
	"context"
	"net/http"
	"time"

	"orbital/internal/daterange"
	"orbital/internal/log"
	"orbital/internal/state"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	NewJSONResponse().JSON(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	}).Write(w)
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.ready != nil {
		if err := s.ready(ctx); err != nil {
			checks["preferences_store"] = "failed: " + err.Error()
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["preferences_store"] = "ok"
		}
	} else {
		checks["preferences_store"] = "ok"
	}

	if s.dashboard != nil {
		checks["dataset"] = map[string]any{
			"transactions": len(s.dashboard.Snapshot().Transactions),
			"loading":      s.dashboard.Loading(),
		}
		checks["cache"] = s.dashboard.CacheStats()
	} else {
		checks["dataset"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	}

	checks["exports"] = s.exports != nil && s.exports.Enabled()
	checks["rate_limiter"] = map[string]any{
		"active_clients": s.rateLimiter.ActiveClients(),
	}

	NewJSONResponse().Status(httpStatus).JSON(map[string]any{
		"status": status,
		"checks": checks,
	}).Write(w)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	NotFoundError("no such endpoint: " + r.URL.Path).Write(w)
}

// requestState derives the dashboard state from the filter parameters.
// On failure the 400 response has already been written.
func (s *Server) requestState(w http.ResponseWriter, r *http.Request) (state.AppState, time.Time, bool) {
	now := s.now()
	st, err := ParseDashboardState(r.URL.Query(), state.Default(now), now)
	if err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Invalid filter parameters",
			log.FieldOperation, log.OpParse, log.FieldError, err)
		BadRequestError(err.Error()).Write(w)
		return st, now, false
	}
	return st, now, true
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	st, _, ok := s.requestState(w, r)
	if !ok {
		return
	}

	ov := s.dashboard.Overview(r.Context(), st)
	NewJSONResponse().JSON(newDashboardView(ov, st.GlobalSearch)).Write(w)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	NewJSONResponse().JSON(map[string]any{
		"default": daterange.ThisMonth,
		"presets": newPresetViews(s.now()),
	}).Write(w)
}
