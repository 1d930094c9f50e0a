package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pawshield/adtrack/internal/content"
	"github.com/pawshield/adtrack/internal/metrics"
	"github.com/pawshield/adtrack/internal/model"
	"github.com/pawshield/adtrack/internal/repository"
	"github.com/pawshield/adtrack/internal/tracker"
)

func newTestHandlers(t *testing.T) (*TrackHandler, *AnalyticsHandler) {
	t.Helper()
	store := repository.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := metrics.NewNoop()

	trackerSvc := tracker.New(store, logger, recorder)
	contentSvc := content.NewService(store, nil, time.Hour, logger, recorder)

	return NewTrackHandler(trackerSvc, contentSvc, logger), NewAnalyticsHandler(trackerSvc, logger)
}

func doLanding(t *testing.T, h *TrackHandler, target string) landingResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("User-Agent", "test-browser")
	rr := httptest.NewRecorder()

	h.Landing(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("landing: expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}

	var resp landingResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode landing response: %v", err)
	}
	return resp
}

func TestLanding_TracksAndGeneratesContent(t *testing.T) {
	track, _ := newTestHandlers(t)

	resp := doLanding(t, track, "https://example.com/?utm_source=google&utm_medium=cpc&utm_campaign=spring&utm_term=pet+insurance&gclid=g1")

	if len(resp.SessionID) != 16 {
		t.Fatalf("expected 16-char session id, got %q", resp.SessionID)
	}
	if resp.ClickData.Keyword != "pet insurance" || resp.ClickData.GCLID != "g1" {
		t.Fatalf("click data mismatch: %+v", resp.ClickData)
	}
	if resp.DynamicContent.Headline != "Find the Best Pet Insurance Solutions" {
		t.Fatalf("unexpected headline %q", resp.DynamicContent.Headline)
	}
}

func TestLanding_RepeatGCLIDKeepsSession(t *testing.T) {
	track, _ := newTestHandlers(t)

	first := doLanding(t, track, "https://example.com/?utm_term=pet+insurance&gclid=g1")
	second := doLanding(t, track, "https://example.com/?utm_term=pet+insurance&gclid=g1")

	if first.SessionID != second.SessionID {
		t.Fatalf("expected stable session id for a repeated gclid, got %q then %q", first.SessionID, second.SessionID)
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	track, analytics := newTestHandlers(t)

	landing := doLanding(t, track, "https://example.com/?utm_term=pet+insurance&utm_campaign=spring&gclid=g1")

	body, _ := json.Marshal(map[string]any{"session_id": landing.SessionID, "value": 99.5})
	req := httptest.NewRequest(http.MethodPost, "/convert", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	track.Convert(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("convert: expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/analytics?days=30", nil)
	rr = httptest.NewRecorder()
	analytics.Report(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("analytics: expected 200, got %d", rr.Code)
	}

	var report model.AnalyticsReport
	if err := json.NewDecoder(rr.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.TotalConversions != 1 || report.TotalRevenue != 99.5 || report.ConversionRate != 100.0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestConvert_UnknownSession(t *testing.T) {
	track, _ := newTestHandlers(t)

	body, _ := json.Marshal(map[string]any{"session_id": "does-not-exist"})
	req := httptest.NewRequest(http.MethodPost, "/convert", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	track.Convert(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", rr.Code)
	}
}

func TestConvert_BadRequest(t *testing.T) {
	track, _ := newTestHandlers(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{"},
		{"missing session id", `{"value": 5}`},
	}

	for _, test := range tests {
		req := httptest.NewRequest(http.MethodPost, "/convert", bytes.NewReader([]byte(test.body)))
		rr := httptest.NewRecorder()
		track.Convert(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", test.name, rr.Code)
		}
	}
}

func TestSession_ReturnsStoredClick(t *testing.T) {
	track, _ := newTestHandlers(t)

	landing := doLanding(t, track, "https://example.com/?utm_term=pet+insurance&gclid=g1")

	req := httptest.NewRequest(http.MethodGet, "/sessions/"+landing.SessionID, nil)
	rr := httptest.NewRecorder()
	track.Session(rr, req, landing.SessionID)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var rec model.ClickRecord
	if err := json.NewDecoder(rr.Body).Decode(&rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if rec.GCLID != "g1" || rec.SessionID != landing.SessionID {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestSession_NotFound(t *testing.T) {
	track, _ := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/sessions/missing", nil)
	rr := httptest.NewRecorder()
	track.Session(rr, req, "missing")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestAnalytics_BadWindow(t *testing.T) {
	_, analytics := newTestHandlers(t)

	for _, target := range []string{"/analytics?days=0", "/analytics?days=-3", "/analytics?days=abc"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rr := httptest.NewRecorder()
		analytics.Report(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rr.Code)
		}
	}
}

func TestAnalytics_DefaultWindow(t *testing.T) {
	_, analytics := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/analytics", nil)
	rr := httptest.NewRecorder()
	analytics.Report(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var report model.AnalyticsReport
	if err := json.NewDecoder(rr.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.PeriodDays != defaultWindowDays {
		t.Fatalf("expected default window %d, got %d", defaultWindowDays, report.PeriodDays)
	}
	if report.TotalClicks != 0 || report.ConversionRate != 0 {
		t.Fatalf("expected zero-valued report on empty store, got %+v", report)
	}
}

type pingStub struct{ err error }

func (p pingStub) Ping(ctx context.Context) error { return p.err }

func TestReadyz_NoCacheConfigured(t *testing.T) {
	h := NewHealthHandler(pingStub{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rr := httptest.NewRecorder()
	h.Readyz(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with cache unconfigured, got %d", rr.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Checks["redis"] != "not configured" {
		t.Errorf("expected redis check skipped, got %q", resp.Checks["redis"])
	}
	if resp.Checks["postgres"] != "ok" {
		t.Errorf("expected postgres ok, got %q", resp.Checks["postgres"])
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:51234"
	if got := clientIP(req); got != "203.0.113.9" {
		t.Errorf("expected port stripped, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	if got := clientIP(req); got != "198.51.100.7" {
		t.Errorf("expected first forwarded address, got %q", got)
	}
}
