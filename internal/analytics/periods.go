package analytics

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/linkstats/internal/logging"
)

// ProfileSource fetches profile analytics for a date range.
type ProfileSource interface {
	ProfileAnalytics(ctx context.Context, profileID int, r DateRange) (*ProfileAnalytics, error)
}

// PeriodSummary is one side of a PeriodComparison.
type PeriodSummary struct {
	Range   DateRange    `json:"range"`
	Metrics BasicMetrics `json:"metrics"`
}

// PeriodComparison contrasts two arbitrary date ranges of a profile.
// Changes are Period2 relative to Period1.
type PeriodComparison struct {
	ProfileID int           `json:"profile_id"`
	Period1   PeriodSummary `json:"period1"`
	Period2   PeriodSummary `json:"period2"`
	Changes   Changes       `json:"changes"`
}

// ComparePeriods fetches the profile analytics of both ranges concurrently
// and computes the per-metric changes. Both fetches go through the source,
// so a cached Client answers repeated ranges without network calls.
func ComparePeriods(ctx context.Context, src ProfileSource, profileID int, p1, p2 DateRange) (*PeriodComparison, error) {
	if profileID < 1 {
		return nil, ErrInvalidProfileID
	}

	var first, second *ProfileAnalytics
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pa, err := src.ProfileAnalytics(gCtx, profileID, p1)
		if err != nil {
			return fmt.Errorf("loading period 1: %w", err)
		}
		first = pa
		return nil
	})
	g.Go(func() error {
		pa, err := src.ProfileAnalytics(gCtx, profileID, p2)
		if err != nil {
			return fmt.Errorf("loading period 2: %w", err)
		}
		second = pa
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a, b := first.TotalMetrics, second.TotalMetrics
	pc := &PeriodComparison{
		ProfileID: profileID,
		Period1:   PeriodSummary{Range: p1, Metrics: a},
		Period2:   PeriodSummary{Range: p2, Metrics: b},
		Changes: Changes{
			Clicks: countChange(b.TotalClicks, a.TotalClicks),
			Views:  countChange(b.TotalViews, a.TotalViews),
			CTR:    rateChange(b.ClickThroughRate, a.ClickThroughRate),
		},
	}

	logging.FromContext(ctx).Debug().
		Str("component", "analytics").
		Int("profile_id", profileID).
		Int("period1_clicks", a.TotalClicks).
		Int("period2_clicks", b.TotalClicks).
		Msg("periods compared")

	return pc, nil
}

// countChange mirrors the backend: growth from zero is reported as +100%.
func countChange(current, previous int) Change {
	if previous == 0 {
		pct := 0.0
		if current > 0 {
			pct = 100
		}
		return Change{Absolute: float64(current), Percentage: pct}
	}
	diff := current - previous
	return Change{
		Absolute:   float64(diff),
		Percentage: round2(float64(diff) / float64(previous) * 100),
	}
}

func rateChange(current, previous float64) Change {
	c := Change{Absolute: round2(current - previous)}
	if previous > 0 {
		c.Percentage = round2((current - previous) / previous * 100)
	}
	return c
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
