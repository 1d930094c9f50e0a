// Package adclick parses Google Ads attribution parameters from
// landing-page URLs.
package adclick

import (
	"fmt"
	"net/url"
	"time"

	"github.com/pawshield/adtrack/internal/model"
)

// Query parameter names recognized on inbound landing URLs.
const (
	ParamKeyword  = "utm_term"
	ParamCampaign = "utm_campaign"
	ParamSource   = "utm_source"
	ParamMedium   = "utm_medium"
	ParamContent  = "utm_content"
	ParamGCLID    = "gclid"
)

// ParseURL extracts a ClickEvent from a raw landing URL. Missing
// parameters leave the corresponding fields empty; the raw URL is kept
// verbatim on the event.
func ParseURL(rawURL string, now time.Time) (*model.ClickEvent, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse landing url: %w", err)
	}

	q := u.Query()
	return &model.ClickEvent{
		Keyword:   q.Get(ParamKeyword),
		Campaign:  q.Get(ParamCampaign),
		Source:    q.Get(ParamSource),
		Medium:    q.Get(ParamMedium),
		Content:   q.Get(ParamContent),
		GCLID:     q.Get(ParamGCLID),
		URL:       rawURL,
		Timestamp: now,
	}, nil
}
