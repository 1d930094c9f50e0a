// Package model defines domain entities for the application.
package model

import "time"

// ClickEvent represents one inbound landing-page hit carrying ad
// attribution parameters. It has no identity until stored.
type ClickEvent struct {
	Keyword  string `json:"keyword,omitempty"`  // utm_term
	Campaign string `json:"campaign,omitempty"` // utm_campaign
	Source   string `json:"source,omitempty"`   // utm_source
	Medium   string `json:"medium,omitempty"`   // utm_medium
	Content  string `json:"content,omitempty"`  // utm_content (ad variant)
	GCLID    string `json:"gclid,omitempty"`    // Google Click ID, dedup key

	URL       string    `json:"url"`       // Full landing URL as received
	Timestamp time.Time `json:"timestamp"` // Time of the hit
}

// RequestInfo carries request metadata captured alongside a click.
type RequestInfo struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
}

// ClickRecord is a persisted click event.
type ClickRecord struct {
	ID        string `json:"id"`         // ULID (time-sortable)
	SessionID string `json:"session_id"` // SHA256(gclid+ip+now)[0:16]

	Keyword  string `json:"keyword,omitempty"`
	Campaign string `json:"campaign,omitempty"`
	Source   string `json:"source,omitempty"`
	Medium   string `json:"medium,omitempty"`
	Content  string `json:"content,omitempty"`
	GCLID    string `json:"gclid,omitempty"` // Unique when non-empty

	URL       string `json:"url,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`

	Converted       bool    `json:"converted"`
	ConversionValue float64 `json:"conversion_value"`

	Timestamp time.Time `json:"timestamp"` // Refreshed on gclid re-sighting
}

// Clone returns a deep copy of the record. Stores hand out clones so
// callers can never mutate persisted state through a returned pointer.
func (r *ClickRecord) Clone() *ClickRecord {
	c := *r
	return &c
}
