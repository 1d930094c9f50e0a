package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pawshield/adtrack/internal/tracker"
)

// defaultWindowDays is the report window when ?days is absent.
const defaultWindowDays = 30

// AnalyticsHandler serves the rollup dashboard endpoint.
type AnalyticsHandler struct {
	tracker *tracker.Tracker
	logger  *slog.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(t *tracker.Tracker, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{tracker: t, logger: logger}
}

// Report returns click/conversion rollups for a trailing window.
//
// GET /analytics?days=30
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	days := defaultWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "days must be an integer")
			return
		}
		days = parsed
	}

	report, err := h.tracker.Report(r.Context(), days)
	if err != nil {
		if errors.Is(err, tracker.ErrInvalidWindow) {
			writeError(w, http.StatusBadRequest, "days must be positive")
			return
		}
		h.logger.Error("report failed",
			slog.String("error", err.Error()),
			slog.Int("days", days),
		)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
