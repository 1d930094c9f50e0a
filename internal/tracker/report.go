package tracker

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pawshield/adtrack/internal/model"
)

// topLimit caps the ranked keyword and campaign lists.
const topLimit = 10

// Report computes the analytics rollup over clicks in the trailing
// window of windowDays days. Clicks with a timestamp at or before
// now - windowDays are excluded. An empty window yields zero totals,
// never an error.
func (t *Tracker) Report(ctx context.Context, windowDays int) (*model.AnalyticsReport, error) {
	if windowDays <= 0 {
		return nil, ErrInvalidWindow
	}

	start := time.Now()
	cutoff := start.AddDate(0, 0, -windowDays)

	records, err := t.store.ClicksSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("query window: %w", err)
	}

	report := aggregate(records)
	report.PeriodDays = windowDays
	report.GeneratedAt = start.UTC()

	t.metrics.ObserveReportDuration(time.Since(start))
	return report, nil
}

// aggregate rolls a set of click records up into a report.
func aggregate(records []*model.ClickRecord) *model.AnalyticsReport {
	report := &model.AnalyticsReport{
		TopKeywords:  []model.KeywordStats{},
		TopCampaigns: []model.CampaignStats{},
	}

	keywords := make(map[string]*model.KeywordStats)
	campaigns := make(map[string]*model.CampaignStats)

	for _, rec := range records {
		report.TotalClicks++
		report.TotalRevenue += rec.ConversionValue
		if rec.Converted {
			report.TotalConversions++
		}

		if rec.Keyword != "" {
			kw, ok := keywords[rec.Keyword]
			if !ok {
				kw = &model.KeywordStats{Keyword: rec.Keyword}
				keywords[rec.Keyword] = kw
			}
			kw.Clicks++
			if rec.Converted {
				kw.Conversions++
			}
		}

		if rec.Campaign != "" {
			cp, ok := campaigns[rec.Campaign]
			if !ok {
				cp = &model.CampaignStats{Campaign: rec.Campaign}
				campaigns[rec.Campaign] = cp
			}
			cp.Clicks++
			cp.Revenue += rec.ConversionValue
			if rec.Converted {
				cp.Conversions++
			}
		}
	}

	report.UniqueKeywords = len(keywords)
	report.UniqueCampaigns = len(campaigns)
	report.ConversionRate = rate(report.TotalConversions, report.TotalClicks)

	for _, kw := range keywords {
		kw.ConversionRate = rate(kw.Conversions, kw.Clicks)
		report.TopKeywords = append(report.TopKeywords, *kw)
	}
	for _, cp := range campaigns {
		report.TopCampaigns = append(report.TopCampaigns, *cp)
	}

	// Clicks descending, keyword ascending on ties.
	sort.Slice(report.TopKeywords, func(i, j int) bool {
		a, b := report.TopKeywords[i], report.TopKeywords[j]
		if a.Clicks != b.Clicks {
			return a.Clicks > b.Clicks
		}
		return a.Keyword < b.Keyword
	})

	// Revenue descending, campaign ascending on ties.
	sort.Slice(report.TopCampaigns, func(i, j int) bool {
		a, b := report.TopCampaigns[i], report.TopCampaigns[j]
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.Campaign < b.Campaign
	})

	if len(report.TopKeywords) > topLimit {
		report.TopKeywords = report.TopKeywords[:topLimit]
	}
	if len(report.TopCampaigns) > topLimit {
		report.TopCampaigns = report.TopCampaigns[:topLimit]
	}

	return report
}

// rate returns conversions over clicks as a percentage, 0 when there
// are no clicks.
func rate(conversions, clicks int64) float64 {
	if clicks == 0 {
		return 0
	}
	return float64(conversions) / float64(clicks) * 100
}
