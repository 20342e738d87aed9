package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/linkstats/internal/analytics"
	"github.com/rshade/linkstats/internal/tui"
)

// NewTimeCmd creates the "time" command showing daily or hourly patterns.
func NewTimeCmd() *cobra.Command {
	var (
		dates       dateRangeFlags
		granularity string
	)

	cmd := &cobra.Command{
		Use:   "time <profile-id>",
		Short: "Show time-based activity patterns for a profile",
		Example: `  linkstats time 1
  linkstats time 1 --granularity hourly`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseProfileID(args[0])
			if err != nil {
				return err
			}
			g := analytics.Granularity(granularity)
			if !g.Valid() {
				return fmt.Errorf("%w: got %q", analytics.ErrInvalidGranularity, granularity)
			}
			r, err := dates.toRange()
			if err != nil {
				return err
			}
			client, err := s.Client()
			if err != nil {
				return err
			}

			ta, err := client.TimeAnalytics(cmd.Context(), id, g, r)
			if err != nil {
				return fetchError("time analytics", id, err)
			}
			return render(cmd, s, ta, func(w io.Writer) { renderTime(w, ta) })
		},
	}
	dates.register(cmd)
	cmd.Flags().StringVar(&granularity, "granularity", string(analytics.GranularityDaily), "daily or hourly")

	return cmd
}

func renderTime(w io.Writer, ta *analytics.TimeAnalytics) {
	fmt.Fprintln(w, tui.HeaderStyle.Render(fmt.Sprintf("%s activity · profile %d", ta.Granularity, ta.ProfileID)))

	rows := make([][]string, 0, len(ta.Data))
	for _, d := range ta.Data {
		rows = append(rows, []string{
			d.Period,
			tui.FormatCount(d.Clicks),
			tui.FormatCount(d.Views),
			tui.FormatCount(d.UniqueVisitors),
		})
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "No activity recorded.")
	} else {
		writeTable(w, []string{"Period", "Clicks", "Views", "Unique"}, rows)
	}

	fmt.Fprintln(w)
	if ta.PeakHour != nil {
		writeField(w, fieldWidth, "Peak hour", fmt.Sprintf("%02d:00", *ta.PeakHour))
	}
	if ta.PeakDay != nil {
		writeField(w, fieldWidth, "Peak day", *ta.PeakDay)
	}
	if rec := deref(ta.BestTimeRecommendation); rec != "" {
		writeField(w, fieldWidth, "Recommendation", rec)
	}
}
