package http

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"orbital/internal/amqp"
	"orbital/internal/middleware/ratelimit"
	"orbital/internal/middleware/trace"
	"orbital/internal/mockdata"
	"orbital/internal/prefs/memory"
	"orbital/internal/services"
)

var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

type fakePublisher struct {
	mu   sync.Mutex
	msgs []*amqp.ExportRequestMessage
	err  error
}

func (f *fakePublisher) PublishExportRequest(_ context.Context, msg *amqp.ExportRequestMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

type testServer struct {
	*Server
	publisher *fakePublisher
}

func newTestServer(t *testing.T, withExports bool, limit ratelimit.Config) *testServer {
	t.Helper()

	clock := func() time.Time { return fixedNow }
	gen := mockdata.NewGenerator(7, clock)
	dash := services.NewDashboardService(gen, services.DashboardConfig{
		TransactionCount: 100,
		BalanceMonths:    6,
		CacheSize:        10,
		CacheTTL:         time.Minute,
	}, clock, nil)

	pub := &fakePublisher{}
	var publisher services.ExportPublisher
	if withExports {
		publisher = pub
	}

	srv := NewServer(":0", Dependencies{
		Dashboard:   dash,
		Preferences: services.NewPreferenceService(memory.New(), nil),
		Exports:     services.NewExportService(dash, publisher, nil),
		RateLimit:   limit,
		Now:         clock,
	})
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	return &testServer{Server: srv, publisher: pub}
}

func (s *testServer) do(t *testing.T, method, target string, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	s.Handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rr.Body.String(), err)
	}
	return v
}

func TestHealthAndReady(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := srv.do(t, http.MethodGet, path, "", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d body=%s", path, rr.Code, rr.Body.String())
		}
		if rr.Header().Get(trace.HeaderRequestID) == "" {
			t.Errorf("%s: missing request id header", path)
		}
	}
}

func TestReadyReportsStoreFailure(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})
	srv.ready = func(context.Context) error { return errors.New("database is locked") }

	rr := srv.do(t, http.MethodGet, "/readyz", "", nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	body := decode[map[string]any](t, rr)
	if body["status"] != "not_ready" {
		t.Errorf("status = %v", body["status"])
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})
	rr := srv.do(t, http.MethodGet, "/api/presets", "", nil)

	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rr.Header().Get("Accept-CH"); got != HeaderPrefersColorScheme {
		t.Errorf("Accept-CH = %q", got)
	}
}

func TestDashboard(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})

	rr := srv.do(t, http.MethodGet, "/api/dashboard?preset=last30days&q=coffee", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	view := decode[DashboardView](t, rr)
	if !view.Range.To.Equal(fixedNow) || !view.Range.From.Equal(fixedNow.AddDate(0, 0, -30)) {
		t.Errorf("unexpected range: %+v", view.Range)
	}
	if view.Search != "coffee" {
		t.Errorf("Search = %q", view.Search)
	}
	if len(view.BalanceEvolution) != 6 {
		t.Errorf("expected 6 balance points, got %d", len(view.BalanceEvolution))
	}
	if !strings.HasPrefix(view.Metrics.Display.TotalBalance, "$") && !strings.HasPrefix(view.Metrics.Display.TotalBalance, "-$") {
		t.Errorf("TotalBalance display = %q", view.Metrics.Display.TotalBalance)
	}
	if view.Loading {
		t.Error("Loading should be false with no loading delay")
	}
}

func TestDashboardSearchDoesNotChangeMetrics(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})

	plain := decode[DashboardView](t, srv.do(t, http.MethodGet, "/api/dashboard?preset=last30days", "", nil))
	searched := decode[DashboardView](t, srv.do(t, http.MethodGet, "/api/dashboard?preset=last30days&q=zzz-no-match", "", nil))

	if plain.Metrics.DashboardMetrics != searched.Metrics.DashboardMetrics {
		t.Errorf("metrics changed with search: %+v vs %+v", plain.Metrics.DashboardMetrics, searched.Metrics.DashboardMetrics)
	}
}

func TestDashboardBadInput(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})

	for _, target := range []string{
		"/api/dashboard?preset=yesterday",
		"/api/dashboard?from=2025-03-10&to=2025-03-01",
		"/api/dashboard?from=not-a-date",
		"/api/dashboard?preset=today&from=2025-03-01",
	} {
		rr := srv.do(t, http.MethodGet, target, "", nil)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rr.Code)
			continue
		}
		if body := decode[ErrorBody](t, rr); body.Error == "" {
			t.Errorf("%s: empty error message", target)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})

	rr := srv.do(t, http.MethodPost, "/api/dashboard", "", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
	if allow := rr.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Errorf("Allow = %q", allow)
	}

	rr = srv.do(t, http.MethodGet, "/api/preferences/sidebar/toggle", "", nil)
	if rr.Code != http.StatusMethodNotAllowed || rr.Header().Get("Allow") != "POST" {
		t.Errorf("toggle: status=%d allow=%q", rr.Code, rr.Header().Get("Allow"))
	}
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})
	rr := srv.do(t, http.MethodGet, "/api/nope", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestTransactions(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})

	rr := srv.do(t, http.MethodGet, "/api/transactions?from=2024-01-01&to=2025-03-15&pageSize=5&sort=amount&desc=true", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	view := decode[TransactionsView](t, rr)
	if view.Total != 100 {
		t.Errorf("Total = %d, want 100", view.Total)
	}
	if len(view.Items) != 5 || view.PageCount != 20 || !view.HasNext || view.HasPrev {
		t.Errorf("unexpected paging: items=%d count=%d next=%v prev=%v", len(view.Items), view.PageCount, view.HasNext, view.HasPrev)
	}
	for i := 1; i < len(view.Items); i++ {
		if view.Items[i].Amount.Cents > view.Items[i-1].Amount.Cents {
			t.Errorf("items not sorted by amount desc at %d", i)
		}
	}
	if view.Items[0].Display.Amount == "" || view.Items[0].CategoryLabel == "" {
		t.Errorf("missing display fields: %+v", view.Items[0])
	}
}

func TestTransactionsEmpty(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})

	rr := srv.do(t, http.MethodGet, "/api/transactions?q=zzz-no-match", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	view := decode[TransactionsView](t, rr)
	if !view.Empty || view.Message != "No transactions found" {
		t.Errorf("expected empty state, got %+v", view)
	}
	if view.Items == nil || len(view.Items) != 0 {
		t.Errorf("Items should be an empty list")
	}
}

func TestTransactionsBadInput(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})

	for _, target := range []string{
		"/api/transactions?status=refunded",
		"/api/transactions?min=abc",
		"/api/transactions?min=50&max=10",
		"/api/transactions?sort=colour",
		"/api/transactions?desc=maybe",
		"/api/transactions?page=-1",
		"/api/transactions?pageSize=7",
	} {
		if rr := srv.do(t, http.MethodGet, target, "", nil); rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rr.Code)
		}
	}
}

func TestTransactionsCSV(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})

	rr := srv.do(t, http.MethodGet, "/api/transactions.csv?from=2024-01-01&to=2025-03-15&status=completed", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}

	records, err := csv.NewReader(rr.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) < 1 || records[0][0] != "ID" {
		t.Fatalf("missing header: %v", records)
	}
	for _, rec := range records[1:] {
		if rec[6] != "Completed" {
			t.Errorf("unexpected status %q", rec[6])
		}
	}
}

func TestPresets(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})

	rr := srv.do(t, http.MethodGet, "/api/presets", "", nil)
	body := decode[struct {
		Default string       `json:"default"`
		Presets []PresetView `json:"presets"`
	}](t, rr)

	if body.Default != "thisMonth" {
		t.Errorf("Default = %q", body.Default)
	}
	if len(body.Presets) != 5 {
		t.Fatalf("expected 5 presets, got %d", len(body.Presets))
	}
	for _, p := range body.Presets {
		if p.From.After(p.To) {
			t.Errorf("%s: inverted range", p.Preset)
		}
	}
}

func TestPreferences(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})

	rr := srv.do(t, http.MethodGet, "/api/preferences", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if cc := rr.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control = %q", cc)
	}
	got := decode[PreferencesView](t, rr)
	if got.Theme != "dark" || got.ResolvedTheme != "dark" || got.SidebarCollapsed {
		t.Errorf("unexpected defaults: %+v", got)
	}

	client := map[string]string{HeaderClientID: "alice", HeaderPrefersColorScheme: "light"}
	rr = srv.do(t, http.MethodPut, "/api/preferences", `{"theme":"system"}`, client)
	if rr.Code != http.StatusOK {
		t.Fatalf("PUT status=%d body=%s", rr.Code, rr.Body.String())
	}
	got = decode[PreferencesView](t, rr)
	if got.Theme != "system" || got.ResolvedTheme != "light" {
		t.Errorf("unexpected update result: %+v", got)
	}

	client[HeaderPrefersColorScheme] = "dark"
	got = decode[PreferencesView](t, srv.do(t, http.MethodGet, "/api/preferences", "", client))
	if got.ResolvedTheme != "dark" {
		t.Errorf("system theme should follow the signal, got %+v", got)
	}

	got = decode[PreferencesView](t, srv.do(t, http.MethodGet, "/api/preferences", "", nil))
	if got.Theme != "dark" {
		t.Errorf("shared client should be untouched, got %+v", got)
	}
}

func TestPreferencesBadInput(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})

	for _, body := range []string{
		`{"theme":"sepia"}`,
		`{"colour":"blue"}`,
		`{not json`,
	} {
		if rr := srv.do(t, http.MethodPut, "/api/preferences", body, nil); rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, rr.Code)
		}
	}

	if rr := srv.do(t, http.MethodPut, "/api/preferences", "", nil); rr.Code != http.StatusBadRequest {
		t.Errorf("empty body: expected 400, got %d", rr.Code)
	}
	if rr := srv.do(t, http.MethodDelete, "/api/preferences", "", nil); rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE: expected 405, got %d", rr.Code)
	}
}

func TestToggleSidebar(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})
	client := map[string]string{HeaderClientID: "bob"}

	got := decode[PreferencesView](t, srv.do(t, http.MethodPost, "/api/preferences/sidebar/toggle", "", client))
	if !got.SidebarCollapsed {
		t.Error("first toggle should collapse")
	}
	got = decode[PreferencesView](t, srv.do(t, http.MethodPost, "/api/preferences/sidebar/toggle", "", client))
	if got.SidebarCollapsed {
		t.Error("second toggle should expand")
	}
}

func TestExportsDisabled(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{})

	rr := srv.do(t, http.MethodPost, "/api/exports", "", nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestExportsQueued(t *testing.T) {
	srv := newTestServer(t, true, ratelimit.Config{})

	rr := srv.do(t, http.MethodPost, "/api/exports?from=2024-01-01&to=2025-03-15&status=pending", "", map[string]string{HeaderClientID: "carol"})
	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d body=%s", rr.Code, rr.Body.String())
	}
	view := decode[ExportAcceptedView](t, rr)
	if view.Status != "queued" || view.ID == "" {
		t.Errorf("unexpected response: %+v", view)
	}

	if len(srv.publisher.msgs) != 1 {
		t.Fatalf("expected one published message, got %d", len(srv.publisher.msgs))
	}
	msg := srv.publisher.msgs[0]
	if msg.ID != view.ID || msg.ClientID != "carol" || len(msg.Rows) != view.Rows {
		t.Errorf("message does not match response: %+v", msg)
	}
	for _, tx := range msg.Rows {
		if tx.Status != "pending" {
			t.Errorf("unexpected status %q", tx.Status)
		}
	}
}

func TestExportsPublishFailure(t *testing.T) {
	srv := newTestServer(t, true, ratelimit.Config{})
	srv.publisher.err = amqp.ErrCircuitOpen

	if rr := srv.do(t, http.MethodPost, "/api/exports", "", nil); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestRateLimitAppliesToMutatingRequests(t *testing.T) {
	srv := newTestServer(t, false, ratelimit.Config{RequestsPerSecond: 0.001, Burst: 1})

	if rr := srv.do(t, http.MethodPost, "/api/preferences/sidebar/toggle", "", nil); rr.Code != http.StatusOK {
		t.Fatalf("first POST: status=%d", rr.Code)
	}
	rr := srv.do(t, http.MethodPost, "/api/preferences/sidebar/toggle", "", nil)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second POST: expected 429, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}

	for i := 0; i < 3; i++ {
		if rr := srv.do(t, http.MethodGet, "/api/preferences", "", nil); rr.Code != http.StatusOK {
			t.Fatalf("GET %d: status=%d", i, rr.Code)
		}
	}
}
