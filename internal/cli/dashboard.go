package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/linkstats/internal/analytics"
	"github.com/rshade/linkstats/internal/config"
	"github.com/rshade/linkstats/internal/tui"
)

// dashboardParams holds the flags of the dashboard command.
type dashboardParams struct {
	dates        dateRangeFlags
	watch        bool
	interval     time.Duration
	forceRefresh bool
}

// NewDashboardCmd creates the "dashboard" command. Without --watch it prints
// one snapshot; with --watch it refreshes every interval, reusing cached
// responses until they expire.
func NewDashboardCmd() *cobra.Command {
	var params dashboardParams

	cmd := &cobra.Command{
		Use:   "dashboard [profile-id]",
		Short: "Show the analytics dashboard for a profile",
		Long: `Loads quick stats, the period comparison, link analytics, traffic sources and
daily/hourly patterns for a profile.

With --watch the dashboard refreshes every --interval (default from
dashboard.refresh_interval). Responses younger than the cache TTL are reused;
press r in the live view to clear the cache and refetch everything.`,
		Example: `  # One-shot snapshot of the configured profile
  linkstats dashboard

  # Live view of profile 3, refreshing every 10 seconds
  linkstats dashboard 3 --watch --interval 10s`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeDashboard(cmd, args, params)
		},
	}

	params.dates.register(cmd)
	cmd.Flags().BoolVarP(&params.watch, "watch", "w", false, "keep refreshing the dashboard")
	cmd.Flags().DurationVar(&params.interval, "interval", 0,
		"refresh interval in watch mode (0 = use config default)")
	cmd.Flags().BoolVar(&params.forceRefresh, "force-refresh", false, "clear cached responses before the first load")

	return cmd
}

func executeDashboard(cmd *cobra.Command, args []string, params dashboardParams) error {
	s, err := sessionFrom(cmd)
	if err != nil {
		return err
	}

	profileID := s.cfg.Dashboard.ProfileID
	if len(args) == 1 {
		if profileID, err = parseProfileID(args[0]); err != nil {
			return err
		}
	}
	r, err := params.dates.toRange()
	if err != nil {
		return err
	}

	interval := params.interval
	if interval == 0 {
		interval = s.cfg.Dashboard.RefreshInterval
	}
	if interval < config.MinRefreshInterval {
		return fmt.Errorf("--interval must be >= %s, got %s", config.MinRefreshInterval, interval)
	}

	client, err := s.Client()
	if err != nil {
		return err
	}
	load := func(ctx context.Context, force bool) (*analytics.Dashboard, error) {
		return analytics.LoadDashboard(ctx, client, profileID, analytics.LoadOptions{Range: r, ForceRefresh: force})
	}

	ctx := cmd.Context()
	logger.Debug().Ctx(ctx).
		Int("profile_id", profileID).
		Bool("watch", params.watch).
		Dur("interval", interval).
		Bool("cache_enabled", client.CacheEnabled()).
		Dur("cache_ttl", client.CacheTTL()).
		Msg("starting dashboard")

	if !params.watch {
		d, loadErr := load(ctx, params.forceRefresh)
		if loadErr != nil {
			return fmt.Errorf("loading dashboard: %w", loadErr)
		}
		logger.Debug().Ctx(ctx).Str("api_version", client.APIVersion()).Msg("dashboard rendered")
		return render(cmd, s, d, func(w io.Writer) { renderDashboard(w, d) })
	}

	if s.output == outputTable && isTerminal(os.Stdout) && cmd.OutOrStdout() == os.Stdout {
		if params.forceRefresh {
			client.ClearCache()
		}
		return tui.RunDashboard(ctx, load, interval)
	}
	return watchDashboard(ctx, cmd, s, load, interval, params.forceRefresh)
}

// watchDashboard re-renders the dashboard every interval until ctx ends,
// then returns ctx.Err(). Load failures are reported and retried on the next tick.
func watchDashboard(
	ctx context.Context,
	cmd *cobra.Command,
	s *session,
	load tui.LoadFunc,
	interval time.Duration,
	force bool,
) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d, err := load(ctx, force)
		force = false
		switch {
		case analytics.IsCanceled(err) && ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			logger.Warn().Ctx(ctx).Err(err).Msg("dashboard refresh failed")
			cmd.PrintErrf("Warning: refresh failed: %v\n", err)
		default:
			if renderErr := render(cmd, s, d, func(w io.Writer) {
				renderDashboard(w, d)
				fmt.Fprintln(w)
			}); renderErr != nil {
				return renderErr
			}
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func renderDashboard(w io.Writer, d *analytics.Dashboard) {
	fmt.Fprintln(w, tui.RenderSummary(d))
	if d.Profile != nil && len(d.Profile.LinksAnalytics) > 0 {
		writeTable(w, tui.LinkHeaders(), tui.LinkRows(d.Profile.LinksAnalytics))
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Updated %s · %s\n", d.LoadedAt.Format(time.TimeOnly), tui.RenderCacheStats(d.Cache))
}
