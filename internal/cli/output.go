package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/linkstats/internal/analytics"
)

// tabPadding separates table columns.
const tabPadding = 2

// render writes v in the session's output format. table renders the
// human-readable form.
func render(cmd *cobra.Command, s *session, v any, table func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if s.output == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding JSON output: %w", err)
		}
		return nil
	}
	table(w)
	return nil
}

// fetchError wraps a failed fetch, naming the profile when the backend
// does not know it.
func fetchError(what string, profileID int, err error) error {
	if analytics.IsNotFound(err) {
		return fmt.Errorf("profile %d not found: %w", profileID, err)
	}
	return fmt.Errorf("fetching %s: %w", what, err)
}

// writeTable writes rows under headers with columns padded to their widest cell.
func writeTable(w io.Writer, headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

// writeField writes a "label: value" line with the label padded to width.
func writeField(w io.Writer, width int, label, value string) {
	fmt.Fprintf(w, "%-*s %s\n", width, label+":", value)
}

// orDash returns s, or "-" when it is empty.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// deref returns *p, or "" when p is nil.
func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
