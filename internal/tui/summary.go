package tui

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/linkstats/internal/analytics"
)

// Layout constants.
const (
	maxTitleDisplayLen  = 32
	truncateSuffix      = "..."
	maxTrafficSources   = 5
	maxSourceDisplayLen = 16
	// changeEpsilon hides floating-point noise in percentage changes.
	changeEpsilon = 0.005
)

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatCount formats n with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// RenderChange renders a signed change with a directional arrow. More
// clicks, views or CTR is good, so increases are green.
func RenderChange(c analytics.Change) string {
	var icon, sign string
	var color lipgloss.Color

	switch {
	case c.Percentage > changeEpsilon || (c.Percentage == 0 && c.Absolute > 0):
		icon, sign, color = IconArrowUp, "+", ColorOK
	case c.Percentage < -changeEpsilon || (c.Percentage == 0 && c.Absolute < 0):
		icon, sign, color = IconArrowDown, "", ColorWarning
	default:
		icon, sign, color = IconArrowRight, "", ColorMuted
	}

	abs := sign + formatNumber(c.Absolute)
	pct := fmt.Sprintf("%s%.1f%%", sign, c.Percentage)
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%s (%s) %s", abs, pct, icon))
}

// formatNumber renders whole numbers without decimals and others with two.
func formatNumber(f float64) string {
	if f == math.Trunc(f) {
		return printer.Sprintf("%d", int64(f))
	}
	return printer.Sprintf("%.2f", f)
}

// truncate shortens s to n runes, ending in an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= len(truncateSuffix) {
		return string(runes[:n])
	}
	return string(runes[:n-len(truncateSuffix)]) + truncateSuffix
}

// RenderSummary renders the headline section of the dashboard.
func RenderSummary(d *analytics.Dashboard) string {
	if d == nil {
		return InfoStyle.Render("No data to display.")
	}

	var sb strings.Builder

	title := fmt.Sprintf("LINK ANALYTICS · profile %d", d.ProfileID)
	if d.Profile != nil && d.Profile.Username != "" {
		title += " (" + d.Profile.Username + ")"
	}
	sb.WriteString(HeaderStyle.Render(title))
	sb.WriteString("\n\n")

	if qs := d.QuickStats; qs != nil {
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("Last %d days  ", qs.PeriodDays)))
		sb.WriteString(LabelStyle.Render("Clicks: "))
		sb.WriteString(ValueStyle.Render(FormatCount(qs.Summary.TotalClicks)))
		sb.WriteString(LabelStyle.Render("  Views: "))
		sb.WriteString(ValueStyle.Render(FormatCount(qs.Summary.TotalViews)))
		sb.WriteString(LabelStyle.Render("  CTR: "))
		sb.WriteString(ValueStyle.Render(fmt.Sprintf("%.2f%%", qs.Summary.ClickThroughRate)))
		sb.WriteString(LabelStyle.Render("  Unique visitors: "))
		sb.WriteString(ValueStyle.Render(FormatCount(qs.Summary.UniqueVisitors)))
		sb.WriteString("\n")

		if top := qs.TopPerformingLink; top != nil && top.Title != nil {
			sb.WriteString(LabelStyle.Render("Top link: "))
			sb.WriteString(ValueStyle.Render(truncate(*top.Title, maxTitleDisplayLen)))
			sb.WriteString(LabelStyle.Render(fmt.Sprintf(" (%s clicks, CTR %.2f%%)", FormatCount(top.Clicks), top.CTR)))
			sb.WriteString("\n")
		}
	}

	if comparison := d.Comparison; comparison != nil {
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("vs previous %d days  ", comparison.PreviousPeriod.Days)))
		sb.WriteString(LabelStyle.Render("clicks "))
		sb.WriteString(RenderChange(comparison.Changes.Clicks))
		sb.WriteString(LabelStyle.Render("  views "))
		sb.WriteString(RenderChange(comparison.Changes.Views))
		sb.WriteString(LabelStyle.Render("  ctr "))
		sb.WriteString(RenderChange(comparison.Changes.CTR))
		sb.WriteString("\n")
	}

	if tr := d.Traffic; tr != nil && len(tr.Sources) > 0 {
		sb.WriteString("\n")
		sb.WriteString(HeaderStyle.Render("TRAFFIC SOURCES"))
		sb.WriteString("\n")
		for i, src := range tr.Sources {
			if i == maxTrafficSources {
				sb.WriteString(InfoStyle.Render(fmt.Sprintf("  ... %d more", len(tr.Sources)-i)))
				sb.WriteString("\n")
				break
			}
			name := truncate(src.Source, maxSourceDisplayLen)
			pad := strings.Repeat(" ", max(0, maxSourceDisplayLen-lipgloss.Width(name)))
			sb.WriteString(fmt.Sprintf("  %s%s %6.1f%%  %s clicks\n",
				name, pad, src.Percentage, FormatCount(src.Clicks)))
		}
	}

	// A backend recommendation is shown as an insight below.
	if d.BestTimeRecommendation() == "" {
		if peak := peakTime(d); peak != "" {
			sb.WriteString("\n")
			sb.WriteString(LabelStyle.Render("Best time: "))
			sb.WriteString(ValueStyle.Render(peak))
			sb.WriteString("\n")
		}
	}

	if insights := analytics.Insights(d); len(insights) > 0 {
		sb.WriteString("\n")
		sb.WriteString(HeaderStyle.Render("INSIGHTS"))
		sb.WriteString("\n")
		for _, in := range insights {
			sb.WriteString(RenderInsight(in))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// RenderInsight renders one insight as "icon Title: message".
func RenderInsight(in analytics.Insight) string {
	icon, color := insightIcon(in.Kind)
	head := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon + " " + in.Title + ":")
	return "  " + head + " " + in.Message
}

func insightIcon(k analytics.InsightKind) (string, lipgloss.Color) {
	switch k {
	case analytics.InsightWarning:
		return IconWarning, ColorWarning
	case analytics.InsightSuccess:
		return IconSuccess, ColorOK
	case analytics.InsightSuggestion:
		return IconSuggestion, ColorLabel
	default:
		return IconInfo, ColorHeader
	}
}

// peakTime describes the peak hour, else the peak day.
func peakTime(d *analytics.Dashboard) string {
	if d.Hourly != nil && d.Hourly.PeakHour != nil {
		return fmt.Sprintf("around %02d:00", *d.Hourly.PeakHour)
	}
	if d.Daily != nil && d.Daily.PeakDay != nil {
		return *d.Daily.PeakDay
	}
	return ""
}

// LinkRows converts link analytics into table rows ordered by position.
func LinkRows(links []analytics.LinkAnalytics) [][]string {
	sorted := slices.Clone(links)
	slices.SortStableFunc(sorted, func(a, b analytics.LinkAnalytics) int {
		return cmp.Compare(a.Position, b.Position)
	})

	rows := make([][]string, 0, len(sorted))
	for _, l := range sorted {
		rows = append(rows, []string{
			strconv.Itoa(l.Position + 1),
			truncate(l.Title, maxTitleDisplayLen),
			FormatCount(l.Metrics.TotalClicks),
			FormatCount(l.Metrics.TotalViews),
			fmt.Sprintf("%.2f%%", l.Metrics.ClickThroughRate),
		})
	}
	return rows
}

// LinkHeaders are the column titles matching LinkRows.
func LinkHeaders() []string {
	return []string{"#", "Link", "Clicks", "Views", "CTR"}
}
