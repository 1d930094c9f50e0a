package model

import "time"

// KeywordStats aggregates clicks for a single keyword.
type KeywordStats struct {
	Keyword        string  `json:"keyword"`
	Clicks         int64   `json:"clicks"`
	Conversions    int64   `json:"conversions"`
	ConversionRate float64 `json:"conversion_rate"` // percent
}

// CampaignStats aggregates clicks and revenue for a single campaign.
type CampaignStats struct {
	Campaign    string  `json:"campaign"`
	Clicks      int64   `json:"clicks"`
	Conversions int64   `json:"conversions"`
	Revenue     float64 `json:"revenue"`
}

// AnalyticsReport is the rollup over clicks within a trailing window.
// It is computed on demand, never persisted.
type AnalyticsReport struct {
	PeriodDays int `json:"period_days"`

	TotalClicks      int64   `json:"total_clicks"`
	UniqueKeywords   int     `json:"unique_keywords"`
	UniqueCampaigns  int     `json:"unique_campaigns"`
	TotalConversions int64   `json:"total_conversions"`
	TotalRevenue     float64 `json:"total_revenue"`
	ConversionRate   float64 `json:"conversion_rate"` // percent, 0 when no clicks

	TopKeywords  []KeywordStats  `json:"top_keywords"`
	TopCampaigns []CampaignStats `json:"top_campaigns"`

	GeneratedAt time.Time `json:"generated_at"`
}
