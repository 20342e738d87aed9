package analytics

// Granularity selects the bucket size for time analytics.
type Granularity string

// Supported granularities.
const (
	GranularityDaily  Granularity = "daily"
	GranularityHourly Granularity = "hourly"
)

// Valid reports whether g is a granularity the backend understands.
func (g Granularity) Valid() bool {
	return g == GranularityDaily || g == GranularityHourly
}

// DateRange bounds a query. Empty bounds are omitted from the request.
// Values are dates in YYYY-MM-DD or ISO 8601 form.
type DateRange struct {
	Start string `json:"startDate"`
	End   string `json:"endDate"`
}

// BasicMetrics are the core counters for a profile or link.
type BasicMetrics struct {
	TotalClicks      int     `json:"total_clicks"`
	TotalViews       int     `json:"total_views"`
	UniqueClicks     int     `json:"unique_clicks"`
	UniqueViews      int     `json:"unique_views"`
	ClickThroughRate float64 `json:"click_through_rate"`
}

// LinkAnalytics holds metrics for one link on a profile.
type LinkAnalytics struct {
	LinkID    int          `json:"link_id"`
	Title     string       `json:"title"`
	URL       string       `json:"url"`
	Position  int          `json:"position"`
	Metrics   BasicMetrics `json:"metrics"`
	CreatedAt string       `json:"created_at"`
}

// ProfileAnalytics is the full analytics view of a profile.
type ProfileAnalytics struct {
	ProfileID      int             `json:"profile_id"`
	Username       string          `json:"username"`
	Title          *string         `json:"title"`
	TotalMetrics   BasicMetrics    `json:"total_metrics"`
	LinksAnalytics []LinkAnalytics `json:"links_analytics"`
	CreatedAt      string          `json:"created_at"`
}

// TopLink returns the link with the most clicks, or nil when there are none.
func (p *ProfileAnalytics) TopLink() *LinkAnalytics {
	var top *LinkAnalytics
	for i := range p.LinksAnalytics {
		l := &p.LinksAnalytics[i]
		if top == nil || l.Metrics.TotalClicks > top.Metrics.TotalClicks {
			top = l
		}
	}
	return top
}

// TrafficSource is one referrer bucket.
type TrafficSource struct {
	Source     string  `json:"source"`
	Clicks     int     `json:"clicks"`
	Views      int     `json:"views"`
	Percentage float64 `json:"percentage"`
}

// TrafficAnalytics is the traffic source breakdown of a profile.
type TrafficAnalytics struct {
	ProfileID   int             `json:"profile_id"`
	Sources     []TrafficSource `json:"sources"`
	TotalClicks int             `json:"total_clicks"`
	TotalViews  int             `json:"total_views"`
}

// TimeBasedMetrics are the counters for one period bucket.
type TimeBasedMetrics struct {
	Period         string `json:"period"`
	Clicks         int    `json:"clicks"`
	Views          int    `json:"views"`
	UniqueVisitors int    `json:"unique_visitors"`
}

// TimeAnalytics is the time-pattern analysis of a profile.
type TimeAnalytics struct {
	ProfileID              int                `json:"profile_id"`
	Granularity            Granularity        `json:"granularity"`
	Data                   []TimeBasedMetrics `json:"data"`
	PeakHour               *int               `json:"peak_hour,omitempty"`
	PeakDay                *string            `json:"peak_day,omitempty"`
	BestTimeRecommendation *string            `json:"best_time_recommendation,omitempty"`
}

// QuickStatsSummary is the headline block of QuickStats.
type QuickStatsSummary struct {
	TotalClicks      int     `json:"total_clicks"`
	TotalViews       int     `json:"total_views"`
	ClickThroughRate float64 `json:"click_through_rate"`
	UniqueVisitors   int     `json:"unique_visitors"`
}

// TopPerformingLink is the best link of a QuickStats period.
type TopPerformingLink struct {
	Title  *string `json:"title"`
	Clicks int     `json:"clicks"`
	CTR    float64 `json:"ctr"`
}

// Period is an ISO 8601 start/end pair as returned by the backend.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// QuickStats summarizes the last N days of a profile.
type QuickStats struct {
	ProfileID         int                `json:"profile_id"`
	PeriodDays        int                `json:"period_days"`
	Summary           QuickStatsSummary  `json:"summary"`
	TopPerformingLink *TopPerformingLink `json:"top_performing_link"`
	TotalLinks        int                `json:"total_links"`
	Period            Period             `json:"period"`
}

// ComparisonPeriod is one side of a Comparison.
type ComparisonPeriod struct {
	Days    int          `json:"days"`
	Start   string       `json:"start"`
	End     string       `json:"end"`
	Metrics BasicMetrics `json:"metrics"`
}

// Change is the delta of one metric between periods.
type Change struct {
	Absolute   float64 `json:"absolute"`
	Percentage float64 `json:"percentage"`
}

// Changes groups the per-metric deltas.
type Changes struct {
	Clicks Change `json:"clicks"`
	Views  Change `json:"views"`
	CTR    Change `json:"ctr"`
}

// Comparison compares the current period with the one before it.
type Comparison struct {
	ProfileID      int              `json:"profile_id"`
	CurrentPeriod  ComparisonPeriod `json:"current_period"`
	PreviousPeriod ComparisonPeriod `json:"previous_period"`
	Changes        Changes          `json:"changes"`
}
