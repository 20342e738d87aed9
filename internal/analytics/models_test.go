package analytics

import (
	"encoding/json"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileAnalytics_Decode(t *testing.T) {
	body := []byte(`{
		"profile_id": 1,
		"username": "ana",
		"title": null,
		"total_metrics": {"total_clicks": 30, "total_views": 120, "unique_clicks": 20,
			"unique_views": 80, "click_through_rate": 25.0},
		"links_analytics": [
			{"link_id": 1, "title": "Blog", "url": "https://a", "position": 0,
			 "metrics": {"total_clicks": 10}, "created_at": "2024-06-01T10:00:00"},
			{"link_id": 2, "title": "Shop", "url": "https://b", "position": 1,
			 "metrics": {"total_clicks": 20}, "created_at": "2024-06-02T10:00:00"}
		],
		"created_at": "2024-06-01T09:00:00.123456"
	}`)

	var p ProfileAnalytics
	require.NoError(t, json.Unmarshal(body, &p))

	assert.Nil(t, p.Title)
	assert.InDelta(t, 25.0, p.TotalMetrics.ClickThroughRate, 1e-9)
	require.NotNil(t, p.TopLink())
	assert.Equal(t, "Shop", p.TopLink().Title)
	assert.Nil(t, (&ProfileAnalytics{}).TopLink())
}

func TestGranularity_Valid(t *testing.T) {
	assert.True(t, GranularityDaily.Valid())
	assert.True(t, GranularityHourly.Valid())
	assert.False(t, Granularity("weekly").Valid())
	assert.False(t, Granularity("").Valid())
}

func TestErrorDetail(t *testing.T) {
	assert.Equal(t, "Profile not found", errorDetail([]byte(`{"detail":"Profile not found"}`)))
	assert.Contains(t, errorDetail([]byte(`{"detail":[{"loc":["query","days"]}]}`)), "days")
	assert.Empty(t, errorDetail([]byte(`<html>`)))
	assert.Empty(t, errorDetail([]byte(`{}`)))
}

func TestAPIError(t *testing.T) {
	err := &APIError{StatusCode: 500, Endpoint: "traffic"}
	assert.Equal(t, "traffic: HTTP 500", err.Error())
	assert.False(t, IsNotFound(err))

	err.Detail = "Error analyzing traffic"
	assert.Equal(t, "traffic: HTTP 500: Error analyzing traffic", err.Error())
}

func TestCompatible(t *testing.T) {
	assert.True(t, Compatible(semver.MustParse("1.4.2")))
	assert.False(t, Compatible(semver.MustParse("2.0.0")))
	assert.False(t, Compatible(nil))
}
