package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/linkstats/internal/cache"
	"github.com/rshade/linkstats/internal/logging"
)

// Source is the subset of Client the dashboard loader needs.
type Source interface {
	ProfileAnalytics(ctx context.Context, profileID int, r DateRange) (*ProfileAnalytics, error)
	TrafficAnalytics(ctx context.Context, profileID int, r DateRange) (*TrafficAnalytics, error)
	TimeAnalytics(ctx context.Context, profileID int, g Granularity, r DateRange) (*TimeAnalytics, error)
	QuickStats(ctx context.Context, profileID, days int) (*QuickStats, error)
	Comparison(ctx context.Context, profileID, currentDays, previousDays int) (*Comparison, error)
	ClearCache()
	CacheStats() cache.Stats
}

var _ Source = (*Client)(nil)

// Dashboard is everything the dashboard view renders.
type Dashboard struct {
	ProfileID  int               `json:"profile_id"`
	QuickStats *QuickStats       `json:"quick_stats"`
	Comparison *Comparison       `json:"comparison"`
	Profile    *ProfileAnalytics `json:"profile"`
	Traffic    *TrafficAnalytics `json:"traffic"`
	Daily      *TimeAnalytics    `json:"daily"`
	Hourly     *TimeAnalytics    `json:"hourly"`
	Insights   []Insight         `json:"insights"`
	LoadedAt   time.Time         `json:"loaded_at"`
	Cache      cache.Stats       `json:"cache"`
}

// LoadOptions tunes LoadDashboard.
type LoadOptions struct {
	Range DateRange
	// ForceRefresh clears the cache before loading.
	ForceRefresh bool
	// Now stamps LoadedAt. Defaults to time.Now.
	Now func() time.Time
}

// LoadDashboard fetches the headline numbers first (quick stats, then the
// period comparison) and the detail sections concurrently afterwards.
// Any failure fails the whole load.
func LoadDashboard(ctx context.Context, src Source, profileID int, opts LoadOptions) (*Dashboard, error) {
	if profileID < 1 {
		return nil, ErrInvalidProfileID
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	log := logging.FromContext(ctx)
	if opts.ForceRefresh {
		src.ClearCache()
		log.Debug().Str("component", "dashboard").Msg("cache cleared for forced refresh")
	}

	d := &Dashboard{ProfileID: profileID}

	var err error
	if d.QuickStats, err = src.QuickStats(ctx, profileID, DefaultQuickStatsDays); err != nil {
		return nil, fmt.Errorf("loading quick stats: %w", err)
	}
	if d.Comparison, err = src.Comparison(ctx, profileID, DefaultCompareDays, DefaultCompareDays); err != nil {
		return nil, fmt.Errorf("loading comparison: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, pErr := src.ProfileAnalytics(gCtx, profileID, opts.Range)
		if pErr != nil {
			return fmt.Errorf("loading profile analytics: %w", pErr)
		}
		d.Profile = p
		return nil
	})
	g.Go(func() error {
		t, tErr := src.TrafficAnalytics(gCtx, profileID, opts.Range)
		if tErr != nil {
			return fmt.Errorf("loading traffic analytics: %w", tErr)
		}
		d.Traffic = t
		return nil
	})
	g.Go(func() error {
		t, tErr := src.TimeAnalytics(gCtx, profileID, GranularityDaily, opts.Range)
		if tErr != nil {
			return fmt.Errorf("loading daily time analytics: %w", tErr)
		}
		d.Daily = t
		return nil
	})
	g.Go(func() error {
		t, tErr := src.TimeAnalytics(gCtx, profileID, GranularityHourly, opts.Range)
		if tErr != nil {
			return fmt.Errorf("loading hourly time analytics: %w", tErr)
		}
		d.Hourly = t
		return nil
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	d.Insights = Insights(d)
	d.LoadedAt = now()
	d.Cache = src.CacheStats()

	log.Debug().
		Str("component", "dashboard").
		Int("profile_id", profileID).
		Uint64("cache_hits", d.Cache.Hits).
		Uint64("cache_misses", d.Cache.Misses).
		Float64("cache_hit_ratio", d.Cache.HitRatio()).
		Int("insights", len(d.Insights)).
		Msg("dashboard loaded")

	return d, nil
}
