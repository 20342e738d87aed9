package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/linkstats/internal/analytics"
	"github.com/rshade/linkstats/internal/tui"
)

// NewQuickStatsCmd creates the "quick-stats" command summarizing recent days.
func NewQuickStatsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:     "quick-stats <profile-id>",
		Short:   "Summarize the last N days of a profile",
		Example: `  linkstats quick-stats 1 --days 30`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseProfileID(args[0])
			if err != nil {
				return err
			}
			if days < 1 {
				return fmt.Errorf("--days: %w: got %d", analytics.ErrInvalidDays, days)
			}
			client, err := s.Client()
			if err != nil {
				return err
			}

			qs, err := client.QuickStats(cmd.Context(), id, days)
			if err != nil {
				return fetchError("quick stats", id, err)
			}
			return render(cmd, s, qs, func(w io.Writer) { renderQuickStats(w, qs) })
		},
	}
	cmd.Flags().IntVar(&days, "days", analytics.DefaultQuickStatsDays, "number of days to summarize")

	return cmd
}

func renderQuickStats(w io.Writer, qs *analytics.QuickStats) {
	fmt.Fprintln(w, tui.HeaderStyle.Render(fmt.Sprintf("Last %d days · profile %d", qs.PeriodDays, qs.ProfileID)))
	writeField(w, fieldWidth, "Clicks", tui.FormatCount(qs.Summary.TotalClicks))
	writeField(w, fieldWidth, "Views", tui.FormatCount(qs.Summary.TotalViews))
	writeField(w, fieldWidth, "Click-through rate", fmt.Sprintf("%.2f%%", qs.Summary.ClickThroughRate))
	writeField(w, fieldWidth, "Unique visitors", tui.FormatCount(qs.Summary.UniqueVisitors))
	writeField(w, fieldWidth, "Links", tui.FormatCount(qs.TotalLinks))

	top := "-"
	if l := qs.TopPerformingLink; l != nil && l.Title != nil {
		top = fmt.Sprintf("%s (%s clicks, CTR %.2f%%)", *l.Title, tui.FormatCount(l.Clicks), l.CTR)
	}
	writeField(w, fieldWidth, "Top link", top)
	writeField(w, fieldWidth, "Period", fmt.Sprintf("%s to %s", orDash(qs.Period.Start), orDash(qs.Period.End)))
}
