package session

import (
	"testing"
	"time"
)

func TestResolve_Deterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a := Resolve("gclid-123", "203.0.113.9", now)
	b := Resolve("gclid-123", "203.0.113.9", now)

	if a != b {
		t.Fatalf("expected identical ids for identical inputs, got %q and %q", a, b)
	}
}

func TestResolve_Length(t *testing.T) {
	id := Resolve("g", "127.0.0.1", time.Now())
	if len(id) != IDLength {
		t.Fatalf("expected %d hex chars, got %d (%q)", IDLength, len(id), id)
	}
	for _, c := range id {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			t.Fatalf("expected lowercase hex, got %q", id)
		}
	}
}

func TestResolve_VariesWithInstant(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a := Resolve("gclid-123", "203.0.113.9", now)
	b := Resolve("gclid-123", "203.0.113.9", now.Add(time.Nanosecond))

	if a == b {
		t.Fatalf("expected different ids at different instants, got %q twice", a)
	}
}

func TestResolve_EmptyInputs(t *testing.T) {
	id := Resolve("", "", time.Now())
	if len(id) != IDLength {
		t.Fatalf("expected id for empty gclid and IP, got %q", id)
	}
}
