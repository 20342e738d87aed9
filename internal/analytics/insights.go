package analytics

import (
	"fmt"
	"strconv"
)

// InsightKind classifies an insight for display.
type InsightKind string

// Insight kinds.
const (
	InsightWarning    InsightKind = "warning"
	InsightInfo       InsightKind = "info"
	InsightSuggestion InsightKind = "suggestion"
	InsightSuccess    InsightKind = "success"
)

// InsightPriority ranks how urgently an insight should be acted on.
type InsightPriority string

// Insight priorities.
const (
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
	PriorityLow    InsightPriority = "low"
)

// Insight thresholds, in percent.
const (
	LowCTRThreshold           = 5.0
	SourceConcentrationLimit  = 70.0
	UnderperformingLinkCTRMax = 2.0
)

// Insight is one actionable observation about a dashboard.
type Insight struct {
	Kind     InsightKind     `json:"type"`
	Title    string          `json:"title"`
	Message  string          `json:"message"`
	Priority InsightPriority `json:"priority"`
}

// Insights derives observations from a loaded dashboard. Sections that are
// missing are skipped. The result is ordered by rule, not by priority.
func Insights(d *Dashboard) []Insight {
	if d == nil {
		return nil
	}

	var out []Insight

	if d.Profile != nil && d.Profile.TotalMetrics.ClickThroughRate < LowCTRThreshold {
		out = append(out, Insight{
			Kind:  InsightWarning,
			Title: "Low Click-Through Rate",
			Message: fmt.Sprintf("Your CTR is %.2f%%, below %s%%. "+
				"Consider updating your link titles to be more engaging.",
				d.Profile.TotalMetrics.ClickThroughRate, formatPercent(LowCTRThreshold)),
			Priority: PriorityHigh,
		})
	}

	// Sources arrive sorted by clicks, so the first one is the largest.
	if d.Traffic != nil && len(d.Traffic.Sources) > 0 {
		top := d.Traffic.Sources[0]
		if top.Percentage > SourceConcentrationLimit {
			out = append(out, Insight{
				Kind:  InsightInfo,
				Title: "Traffic Concentration",
				Message: fmt.Sprintf("%s accounts for %s%% of your traffic. "+
					"Consider diversifying your promotion channels.",
					top.Source, formatPercent(top.Percentage)),
				Priority: PriorityMedium,
			})
		}
	}

	if d.Profile != nil {
		var weak int
		for _, l := range d.Profile.LinksAnalytics {
			if l.Metrics.ClickThroughRate < UnderperformingLinkCTRMax {
				weak++
			}
		}
		if weak > 0 {
			out = append(out, Insight{
				Kind:  InsightSuggestion,
				Title: "Underperforming Links",
				Message: fmt.Sprintf("%d %s CTR below %s%%. Consider repositioning or removing them.",
					weak, pluralLinks(weak), formatPercent(UnderperformingLinkCTRMax)),
				Priority: PriorityLow,
			})
		}
	}

	if rec := d.BestTimeRecommendation(); rec != "" {
		out = append(out, Insight{
			Kind:     InsightSuccess,
			Title:    "Best Posting Time",
			Message:  rec,
			Priority: PriorityMedium,
		})
	}

	return out
}

// BestTimeRecommendation returns the backend's posting-time advice,
// preferring the hourly analysis over the daily one.
func (d *Dashboard) BestTimeRecommendation() string {
	for _, ta := range []*TimeAnalytics{d.Hourly, d.Daily} {
		if ta != nil && ta.BestTimeRecommendation != nil && *ta.BestTimeRecommendation != "" {
			return *ta.BestTimeRecommendation
		}
	}
	return ""
}

func formatPercent(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func pluralLinks(n int) string {
	if n == 1 {
		return "link has"
	}
	return "links have"
}
