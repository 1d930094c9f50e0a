package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pawshield/adtrack/internal/adclick"
	"github.com/pawshield/adtrack/internal/content"
	"github.com/pawshield/adtrack/internal/model"
	"github.com/pawshield/adtrack/internal/tracker"
)

// TrackHandler serves the landing entry point and conversion endpoint.
type TrackHandler struct {
	tracker *tracker.Tracker
	content *content.Service
	logger  *slog.Logger
}

// NewTrackHandler creates a new TrackHandler.
func NewTrackHandler(t *tracker.Tracker, c *content.Service, logger *slog.Logger) *TrackHandler {
	return &TrackHandler{
		tracker: t,
		content: c,
		logger:  logger,
	}
}

// landingResponse is the JSON document returned to the content
// generation layer.
type landingResponse struct {
	SessionID      string               `json:"session_id"`
	ClickData      *model.ClickEvent    `json:"click_data"`
	DynamicContent *model.ContentRecord `json:"dynamic_content"`
	GeneratedAt    time.Time            `json:"generated_at"`
}

// Landing records an inbound ad click and returns generated landing
// copy plus the session id for later conversion correlation.
//
// GET /
func (h *TrackHandler) Landing(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()

	event, err := adclick.ParseURL(requestURL(r), now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid landing url")
		return
	}

	req := model.RequestInfo{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}

	sessionID, err := h.tracker.SaveClick(r.Context(), event, req)
	if err != nil {
		h.logger.Error("save click failed",
			slog.String("error", err.Error()),
			slog.String("gclid", event.GCLID),
		)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	copyRec, err := h.content.GetOrGenerate(r.Context(), event.Keyword, event.Campaign)
	if err != nil {
		h.logger.Error("content generation failed",
			slog.String("error", err.Error()),
			slog.String("keyword", event.Keyword),
		)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	writeJSON(w, http.StatusOK, landingResponse{
		SessionID:      sessionID,
		ClickData:      event,
		DynamicContent: copyRec,
		GeneratedAt:    now,
	})
}

// conversionRequest is the body of POST /convert.
type conversionRequest struct {
	SessionID string  `json:"session_id"`
	Value     float64 `json:"value"`
}

// Convert marks the session's click as converted.
//
// POST /convert
func (h *TrackHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req conversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	if err := h.tracker.TrackConversion(r.Context(), req.SessionID, req.Value); err != nil {
		if errors.Is(err, tracker.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		h.logger.Error("track conversion failed",
			slog.String("error", err.Error()),
			slog.String("session_id", req.SessionID),
		)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Session returns the stored click for a session id.
//
// GET /sessions/{sessionID}
func (h *TrackHandler) Session(w http.ResponseWriter, r *http.Request, sessionID string) {
	rec, err := h.tracker.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, tracker.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		h.logger.Error("get session failed",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID),
		)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// requestURL reconstructs the full URL the client hit.
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

// clientIP extracts the client address, preferring X-Forwarded-For
// when the service sits behind a proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
