package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/linkstats/internal/analytics"
	"github.com/rshade/linkstats/internal/tui"
)

// NewTrafficCmd creates the "traffic" command showing referrer breakdown.
func NewTrafficCmd() *cobra.Command {
	var dates dateRangeFlags

	cmd := &cobra.Command{
		Use:     "traffic <profile-id>",
		Short:   "Show traffic sources for a profile",
		Example: `  linkstats traffic 1 --start 2025-01-01`,
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
			r, err := dates.toRange()
			if err != nil {
				return err
			}
			client, err := s.Client()
			if err != nil {
				return err
			}

			ta, err := client.TrafficAnalytics(cmd.Context(), id, r)
			if err != nil {
				return fetchError("traffic analytics", id, err)
			}
			return render(cmd, s, ta, func(w io.Writer) { renderTraffic(w, ta) })
		},
	}
	dates.register(cmd)

	return cmd
}

func renderTraffic(w io.Writer, ta *analytics.TrafficAnalytics) {
	fmt.Fprintln(w, tui.HeaderStyle.Render(fmt.Sprintf("Traffic sources · profile %d", ta.ProfileID)))
	if len(ta.Sources) == 0 {
		fmt.Fprintln(w, "No traffic recorded.")
		return
	}

	rows := make([][]string, 0, len(ta.Sources)+1)
	for _, src := range ta.Sources {
		rows = append(rows, []string{
			src.Source,
			tui.FormatCount(src.Clicks),
			tui.FormatCount(src.Views),
			fmt.Sprintf("%.1f%%", src.Percentage),
		})
	}
	rows = append(rows, []string{"Total", tui.FormatCount(ta.TotalClicks), tui.FormatCount(ta.TotalViews), ""})
	writeTable(w, []string{"Source", "Clicks", "Views", "Share"}, rows)
}
