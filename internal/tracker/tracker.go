// Package tracker provides click persistence, conversion attribution
// and analytics rollups.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/pawshield/adtrack/internal/metrics"
	"github.com/pawshield/adtrack/internal/model"
	"github.com/pawshield/adtrack/internal/repository"
	"github.com/pawshield/adtrack/internal/session"
)

// Service errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidWindow   = errors.New("window days must be positive")
)

// Store is the storage port the tracker depends on. Both the
// PostgreSQL repository and the in-memory store satisfy it.
type Store interface {
	// InsertOrUpdateClick atomically inserts a click or, for a known
	// non-empty gclid, refreshes the stored timestamp. It returns the
	// session id of the stored record.
	InsertOrUpdateClick(ctx context.Context, rec *model.ClickRecord) (string, error)

	// GetClickBySession returns the latest click for a session id, or
	// repository.ErrSessionNotFound.
	GetClickBySession(ctx context.Context, sessionID string) (*model.ClickRecord, error)

	// MarkConverted flags the latest click for a session as converted.
	MarkConverted(ctx context.Context, sessionID string, value float64) error

	// ClicksSince returns all clicks strictly after the cutoff.
	ClicksSince(ctx context.Context, cutoff time.Time) ([]*model.ClickRecord, error)
}

// Tracker handles click tracking business logic.
type Tracker struct {
	store   Store
	logger  *slog.Logger
	metrics metrics.Recorder
}

// New creates a Tracker.
func New(store Store, logger *slog.Logger, recorder metrics.Recorder) *Tracker {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Tracker{
		store:   store,
		logger:  logger,
		metrics: recorder,
	}
}

// SaveClick persists a click event and returns the session id callers
// use for later conversion correlation. A repeat sighting of a gclid
// collapses into a timestamp refresh on the stored record, and the
// ORIGINAL session id comes back so every id ever handed out keeps
// resolving to the one stored record.
func (t *Tracker) SaveClick(ctx context.Context, event *model.ClickEvent, req model.RequestInfo) (string, error) {
	now := event.Timestamp
	if now.IsZero() {
		now = time.Now().UTC()
	}

	sessionID := session.Resolve(event.GCLID, req.IPAddress, now)

	rec := &model.ClickRecord{
		ID:        ulid.Make().String(),
		SessionID: sessionID,
		Keyword:   event.Keyword,
		Campaign:  event.Campaign,
		Source:    event.Source,
		Medium:    event.Medium,
		Content:   event.Content,
		GCLID:     event.GCLID,
		URL:       event.URL,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
		Timestamp: now,
	}

	storedID, err := t.store.InsertOrUpdateClick(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("save click: %w", err)
	}

	if storedID != sessionID {
		// Existing gclid: only the timestamp moved.
		t.metrics.IncClickDeduplicated()
		t.logger.Debug("click deduplicated",
			slog.String("gclid", event.GCLID),
			slog.String("session_id", storedID),
		)
	} else {
		t.metrics.IncClickSaved()
	}

	return storedID, nil
}

// GetSession returns the stored click for a session id.
func (t *Tracker) GetSession(ctx context.Context, sessionID string) (*model.ClickRecord, error) {
	rec, err := t.store.GetClickBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return rec, nil
}

// TrackConversion marks the click behind a session id as converted and
// attaches a monetary value. Last write wins; repeating a call with
// the same value changes nothing. Returns ErrSessionNotFound when no
// click matches - a conversion is never fabricated.
func (t *Tracker) TrackConversion(ctx context.Context, sessionID string, value float64) error {
	if err := t.store.MarkConverted(ctx, sessionID, value); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("track conversion: %w", err)
	}

	t.metrics.IncConversionTracked()
	t.logger.Info("conversion tracked",
		slog.String("session_id", sessionID),
		slog.Float64("value", value),
	)
	return nil
}
