package cli

import (
	"cmp"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/linkstats/internal/analytics"
)

// ErrInvalidDate is returned for dates the backend would reject.
var ErrInvalidDate = errors.New("invalid date")

// dateLayouts are the accepted --start/--end formats.
//
//nolint:gochecknoglobals // Read-only layout table.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
}

// parseDate parses s in one of dateLayouts.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q: use YYYY-MM-DD or an ISO 8601 date-time", ErrInvalidDate, s)
}

// dateRangeFlags holds a start/end flag pair, --start and --end by default.
type dateRangeFlags struct {
	start     string
	end       string
	startFlag string
	endFlag   string
}

func (f *dateRangeFlags) register(cmd *cobra.Command) {
	f.registerAs(cmd, "start", "end", "")
}

// registerAs registers the pair under custom names; label prefixes the help text.
func (f *dateRangeFlags) registerAs(cmd *cobra.Command, startFlag, endFlag, label string) {
	f.startFlag, f.endFlag = startFlag, endFlag
	cmd.Flags().StringVar(&f.start, startFlag, "", label+"start date (YYYY-MM-DD or ISO 8601)")
	cmd.Flags().StringVar(&f.end, endFlag, "", label+"end date (YYYY-MM-DD or ISO 8601)")
}

// toRange validates the flags and returns the query range. Empty bounds
// are left for the backend to default.
func (f *dateRangeFlags) toRange() (analytics.DateRange, error) {
	startFlag, endFlag := "--"+cmp.Or(f.startFlag, "start"), "--"+cmp.Or(f.endFlag, "end")
	var start, end time.Time
	var err error

	if f.start != "" {
		if start, err = parseDate(f.start); err != nil {
			return analytics.DateRange{}, fmt.Errorf("%s: %w", startFlag, err)
		}
	}
	if f.end != "" {
		if end, err = parseDate(f.end); err != nil {
			return analytics.DateRange{}, fmt.Errorf("%s: %w", endFlag, err)
		}
	}
	if f.start != "" && f.end != "" && start.After(end) {
		return analytics.DateRange{}, fmt.Errorf("%w: %s %s is after %s %s",
			ErrInvalidDate, startFlag, f.start, endFlag, f.end)
	}

	return analytics.DateRange{Start: f.start, End: f.end}, nil
}
