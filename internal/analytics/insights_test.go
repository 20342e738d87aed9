package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func insightDashboard() *Dashboard {
	return &Dashboard{
		Profile: &ProfileAnalytics{
			TotalMetrics: BasicMetrics{ClickThroughRate: 3.2},
			LinksAnalytics: []LinkAnalytics{
				{Title: "Shop", Metrics: BasicMetrics{ClickThroughRate: 12}},
				{Title: "Old post", Metrics: BasicMetrics{ClickThroughRate: 1.5}},
				{Title: "Archive", Metrics: BasicMetrics{ClickThroughRate: 0}},
			},
		},
		Traffic: &TrafficAnalytics{Sources: []TrafficSource{
			{Source: "instagram.com", Percentage: 72.5},
			{Source: "direct", Percentage: 27.5},
		}},
		Hourly: &TimeAnalytics{BestTimeRecommendation: strPtr("Post around 18:00")},
	}
}

func TestInsights_AllRules(t *testing.T) {
	got := Insights(insightDashboard())
	require.Len(t, got, 4)

	assert.Equal(t, InsightWarning, got[0].Kind)
	assert.Equal(t, PriorityHigh, got[0].Priority)
	assert.Contains(t, got[0].Message, "3.20%")

	assert.Equal(t, InsightInfo, got[1].Kind)
	assert.Equal(t, "instagram.com accounts for 72.5% of your traffic. "+
		"Consider diversifying your promotion channels.", got[1].Message)

	assert.Equal(t, InsightSuggestion, got[2].Kind)
	assert.Contains(t, got[2].Message, "2 links have CTR below 2%")

	assert.Equal(t, InsightSuccess, got[3].Kind)
	assert.Equal(t, "Post around 18:00", got[3].Message)
}

func TestInsights_Thresholds(t *testing.T) {
	d := insightDashboard()
	d.Profile.TotalMetrics.ClickThroughRate = LowCTRThreshold
	d.Profile.LinksAnalytics = []LinkAnalytics{{Metrics: BasicMetrics{ClickThroughRate: UnderperformingLinkCTRMax}}}
	d.Traffic.Sources[0].Percentage = SourceConcentrationLimit
	d.Hourly = nil

	assert.Empty(t, Insights(d), "values at a threshold do not trigger")

	d.Profile.LinksAnalytics[0].Metrics.ClickThroughRate = 1.99
	got := Insights(d)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "1 link has CTR below 2%")
}

func TestInsights_MissingSections(t *testing.T) {
	assert.Nil(t, Insights(nil))
	assert.Empty(t, Insights(&Dashboard{}))

	d := &Dashboard{Traffic: &TrafficAnalytics{}}
	assert.Empty(t, Insights(d), "no sources means no concentration insight")
}

func TestDashboard_BestTimeRecommendation(t *testing.T) {
	d := &Dashboard{
		Hourly: &TimeAnalytics{BestTimeRecommendation: strPtr("")},
		Daily:  &TimeAnalytics{BestTimeRecommendation: strPtr("Post on Fridays")},
	}
	assert.Equal(t, "Post on Fridays", d.BestTimeRecommendation())

	d.Hourly.BestTimeRecommendation = strPtr("Post around 18:00")
	assert.Equal(t, "Post around 18:00", d.BestTimeRecommendation())

	assert.Empty(t, (&Dashboard{}).BestTimeRecommendation())
}
