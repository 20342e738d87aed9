package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/linkstats/internal/analytics"
	"github.com/rshade/linkstats/internal/tui"
)

// fieldWidth aligns "label: value" blocks.
const fieldWidth = 18

// parseProfileID parses a positional profile id.
func parseProfileID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: got %q", analytics.ErrInvalidProfileID, arg)
	}
	return id, nil
}

// NewProfileCmd creates the "profile" command showing per-link analytics.
func NewProfileCmd() *cobra.Command {
	var dates dateRangeFlags

	cmd := &cobra.Command{
		Use:   "profile <profile-id>",
		Short: "Show analytics for a profile and its links",
		Example: `  linkstats profile 1
  linkstats profile 1 --start 2025-01-01 --end 2025-01-31 --output json`,
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
			r, err := dates.toRange()
			if err != nil {
				return err
			}
			client, err := s.Client()
			if err != nil {
				return err
			}

			pa, err := client.ProfileAnalytics(cmd.Context(), id, r)
			if err != nil {
				return fetchError("profile analytics", id, err)
			}
			return render(cmd, s, pa, func(w io.Writer) { renderProfile(w, pa) })
		},
	}
	dates.register(cmd)

	return cmd
}

func renderProfile(w io.Writer, pa *analytics.ProfileAnalytics) {
	title := fmt.Sprintf("Profile %d (%s)", pa.ProfileID, pa.Username)
	if t := deref(pa.Title); t != "" {
		title += " " + t
	}
	fmt.Fprintln(w, tui.HeaderStyle.Render(title))

	m := pa.TotalMetrics
	writeField(w, fieldWidth, "Total clicks", tui.FormatCount(m.TotalClicks))
	writeField(w, fieldWidth, "Total views", tui.FormatCount(m.TotalViews))
	writeField(w, fieldWidth, "Unique clicks", tui.FormatCount(m.UniqueClicks))
	writeField(w, fieldWidth, "Unique views", tui.FormatCount(m.UniqueViews))
	writeField(w, fieldWidth, "Click-through rate", fmt.Sprintf("%.2f%%", m.ClickThroughRate))
	if top := pa.TopLink(); top != nil {
		writeField(w, fieldWidth, "Top link", top.Title)
	}
	fmt.Fprintln(w)

	if len(pa.LinksAnalytics) == 0 {
		fmt.Fprintln(w, "No links.")
		return
	}
	writeTable(w, tui.LinkHeaders(), tui.LinkRows(pa.LinksAnalytics))
}
