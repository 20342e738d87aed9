package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/linkstats/internal/analytics"
	"github.com/rshade/linkstats/internal/tui"
)

// compareParams holds the flags of the compare command.
type compareParams struct {
	currentDays  int
	previousDays int
	period1      dateRangeFlags
	period2      dateRangeFlags
}

// customPeriods reports whether any explicit period bound was given.
func (p compareParams) customPeriods() bool {
	return p.period1.start != "" || p.period1.end != "" || p.period2.start != "" || p.period2.end != ""
}

// NewCompareCmd creates the "compare" command contrasting two periods.
func NewCompareCmd() *cobra.Command {
	var params compareParams

	cmd := &cobra.Command{
		Use:   "compare <profile-id>",
		Short: "Compare two periods of a profile",
		Long: `Without period flags, compares the last --current-days with the --previous-days
before them using the backend comparison endpoint.

With --period1-start/--period1-end and --period2-start/--period2-end, fetches the
profile analytics of both date ranges and reports period 2 relative to period 1.`,
		Example: `  linkstats compare 1 --current-days 30 --previous-days 30

  # Two arbitrary ranges
  linkstats compare 1 --period1-start 2025-01-01 --period1-end 2025-01-31 \
    --period2-start 2025-02-01 --period2-end 2025-02-28`,
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
			if params.customPeriods() {
				return runPeriodComparison(cmd, s, id, params)
			}
			if params.currentDays < 1 || params.previousDays < 1 {
				return fmt.Errorf("%w: got --current-days=%d --previous-days=%d",
					analytics.ErrInvalidDays, params.currentDays, params.previousDays)
			}
			client, err := s.Client()
			if err != nil {
				return err
			}

			c, err := client.Comparison(cmd.Context(), id, params.currentDays, params.previousDays)
			if err != nil {
				return fetchError("comparison", id, err)
			}
			return render(cmd, s, c, func(w io.Writer) { renderComparison(w, c) })
		},
	}
	cmd.Flags().IntVar(&params.currentDays, "current-days", analytics.DefaultCompareDays,
		"length of the current period in days")
	cmd.Flags().IntVar(&params.previousDays, "previous-days", analytics.DefaultCompareDays,
		"length of the previous period in days")
	params.period1.registerAs(cmd, "period1-start", "period1-end", "period 1 ")
	params.period2.registerAs(cmd, "period2-start", "period2-end", "period 2 ")
	cmd.MarkFlagsRequiredTogether("period1-start", "period1-end", "period2-start", "period2-end")
	cmd.MarkFlagsMutuallyExclusive("current-days", "period1-start")
	cmd.MarkFlagsMutuallyExclusive("previous-days", "period2-start")

	return cmd
}

func runPeriodComparison(cmd *cobra.Command, s *session, id int, params compareParams) error {
	p1, err := params.period1.toRange()
	if err != nil {
		return err
	}
	p2, err := params.period2.toRange()
	if err != nil {
		return err
	}
	client, err := s.Client()
	if err != nil {
		return err
	}

	pc, err := analytics.ComparePeriods(cmd.Context(), client, id, p1, p2)
	if err != nil {
		return fetchError("period comparison", id, err)
	}
	return render(cmd, s, pc, func(w io.Writer) { renderPeriodComparison(w, pc) })
}

func renderComparison(w io.Writer, c *analytics.Comparison) {
	cur, prev := c.CurrentPeriod, c.PreviousPeriod
	fmt.Fprintln(w, tui.HeaderStyle.Render(fmt.Sprintf(
		"Last %d days vs previous %d days · profile %d", cur.Days, prev.Days, c.ProfileID)))
	writeMetricChanges(w, []string{"Metric", "Current", "Previous", "Change"}, cur.Metrics, prev.Metrics, c.Changes)
}

func renderPeriodComparison(w io.Writer, pc *analytics.PeriodComparison) {
	fmt.Fprintln(w, tui.HeaderStyle.Render(fmt.Sprintf("Period comparison · profile %d", pc.ProfileID)))
	writeField(w, len("Period 1:"), "Period 1", periodLabel(pc.Period1.Range))
	writeField(w, len("Period 1:"), "Period 2", periodLabel(pc.Period2.Range))
	fmt.Fprintln(w)
	writeMetricChanges(w, []string{"Metric", "Period 1", "Period 2", "Change"},
		pc.Period1.Metrics, pc.Period2.Metrics, pc.Changes)
}

// writeMetricChanges writes clicks, views and CTR for two periods. The
// first column of values is a, the second b.
func writeMetricChanges(w io.Writer, headers []string, a, b analytics.BasicMetrics, ch analytics.Changes) {
	rows := [][]string{
		{"Clicks", tui.FormatCount(a.TotalClicks), tui.FormatCount(b.TotalClicks), tui.RenderChange(ch.Clicks)},
		{"Views", tui.FormatCount(a.TotalViews), tui.FormatCount(b.TotalViews), tui.RenderChange(ch.Views)},
		{"CTR", fmt.Sprintf("%.2f%%", a.ClickThroughRate), fmt.Sprintf("%.2f%%", b.ClickThroughRate),
			tui.RenderChange(ch.CTR)},
	}
	writeTable(w, headers, rows)
}

func periodLabel(r analytics.DateRange) string {
	return orDash(r.Start) + " to " + orDash(r.End)
}
