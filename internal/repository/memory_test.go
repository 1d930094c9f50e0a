package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pawshield/adtrack/internal/model"
)

func TestMemoryStore_InsertOrUpdateClick_Dedupe(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	first := &model.ClickRecord{
		ID:        "01HRECORDA",
		SessionID: "sess-1",
		GCLID:     "g1",
		Timestamp: time.Now().Add(-time.Hour),
	}
	sid, err := store.InsertOrUpdateClick(ctx, first)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if sid != "sess-1" {
		t.Fatalf("expected new session id returned, got %q", sid)
	}

	later := time.Now()
	second := &model.ClickRecord{
		ID:        "01HRECORDB",
		SessionID: "sess-2",
		GCLID:     "g1",
		Timestamp: later,
	}
	sid, err = store.InsertOrUpdateClick(ctx, second)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if sid != "sess-1" {
		t.Fatalf("expected original session id on dedupe, got %q", sid)
	}
	if store.ClickCount() != 1 {
		t.Fatalf("expected single record, got %d", store.ClickCount())
	}

	rec, err := store.GetClickBySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !rec.Timestamp.Equal(later) {
		t.Fatalf("expected refreshed timestamp %v, got %v", later, rec.Timestamp)
	}
}

func TestMemoryStore_GetClickBySession_LatestWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	old := &model.ClickRecord{ID: "01HRECORDA", SessionID: "shared", Keyword: "old", Timestamp: time.Now().Add(-time.Hour)}
	newer := &model.ClickRecord{ID: "01HRECORDB", SessionID: "shared", Keyword: "new", Timestamp: time.Now()}

	if _, err := store.InsertOrUpdateClick(ctx, old); err != nil {
		t.Fatalf("insert old: %v", err)
	}
	if _, err := store.InsertOrUpdateClick(ctx, newer); err != nil {
		t.Fatalf("insert newer: %v", err)
	}

	rec, err := store.GetClickBySession(ctx, "shared")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Keyword != "new" {
		t.Fatalf("expected latest record, got %+v", rec)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	rec := &model.ClickRecord{ID: "01HRECORDA", SessionID: "sess-1", Keyword: "original", Timestamp: time.Now()}
	if _, err := store.InsertOrUpdateClick(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := store.GetClickBySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Keyword = "mutated"

	again, err := store.GetClickBySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if again.Keyword != "original" {
		t.Fatal("mutating a returned record must not affect stored state")
	}
}

func TestMemoryStore_MarkConverted(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	rec := &model.ClickRecord{ID: "01HRECORDA", SessionID: "sess-1", Timestamp: time.Now()}
	if _, err := store.InsertOrUpdateClick(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := store.MarkConverted(ctx, "sess-1", 12.5); err != nil {
		t.Fatalf("mark converted: %v", err)
	}
	got, _ := store.GetClickBySession(ctx, "sess-1")
	if !got.Converted || got.ConversionValue != 12.5 {
		t.Fatalf("expected conversion recorded, got %+v", got)
	}

	if err := store.MarkConverted(ctx, "missing", 1); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryStore_ClicksSince(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	cutoff := time.Now().AddDate(0, 0, -7)
	records := []*model.ClickRecord{
		{ID: "01HRECORDA", SessionID: "s1", Timestamp: cutoff.Add(-time.Minute)},
		{ID: "01HRECORDB", SessionID: "s2", Timestamp: cutoff}, // exactly at cutoff: excluded
		{ID: "01HRECORDC", SessionID: "s3", Timestamp: cutoff.Add(time.Minute)},
	}
	for _, rec := range records {
		if _, err := store.InsertOrUpdateClick(ctx, rec); err != nil {
			t.Fatalf("insert %s: %v", rec.ID, err)
		}
	}

	got, err := store.ClicksSince(ctx, cutoff)
	if err != nil {
		t.Fatalf("clicks since: %v", err)
	}
	if len(got) != 1 || got[0].SessionID != "s3" {
		t.Fatalf("expected only the record after the cutoff, got %+v", got)
	}
}

func TestMemoryStore_ContentUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	first := &model.ContentRecord{
		Keyword:     "pet insurance",
		Headline:    "Old Headline",
		Subheadline: "Old Sub",
		BodyContent: "<p>old</p>",
		CTAText:     "Old CTA",
		UpdatedAt:   time.Now().Add(-time.Hour),
	}
	if err := store.UpsertContent(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &model.ContentRecord{
		Keyword:   "pet insurance",
		Headline:  "New Headline",
		UpdatedAt: time.Now(),
	}
	if err := store.UpsertContent(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := store.GetContent(ctx, "pet insurance")
	if err != nil {
		t.Fatalf("get content: %v", err)
	}
	if got.Headline != "New Headline" {
		t.Errorf("expected replaced headline, got %q", got.Headline)
	}
	// Full replace: no remnants of the first record.
	if got.Subheadline != "" || got.BodyContent != "" || got.CTAText != "" {
		t.Errorf("expected old fields discarded, got %+v", got)
	}
}

func TestMemoryStore_ContentNotFound(t *testing.T) {
	store := NewMemory()

	if _, err := store.GetContent(context.Background(), "missing"); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}
