package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/linkstats/internal/analytics"
	"github.com/rshade/linkstats/internal/cache"
)

// ViewState is the lifecycle state of the dashboard view.
type ViewState int

// View states.
const (
	ViewStateLoading ViewState = iota
	ViewStateReady
	ViewStateError
	ViewStateQuitting
)

// Layout defaults until the first WindowSizeMsg arrives.
const (
	defaultWidth       = 100
	defaultHeight      = 30
	minTableHeight     = 3
	reservedRows       = 16
	linkTitleColWidth  = maxTitleDisplayLen + 2
	linkNumberColWidth = 10
	linkIndexColWidth  = 4
)

// Key bindings.
const (
	keyQuit    = "q"
	keyCtrlC   = "ctrl+c"
	keyRefresh = "r"
)

// LoadFunc loads the dashboard. force clears the cache first.
type LoadFunc func(ctx context.Context, force bool) (*analytics.Dashboard, error)

// DashboardLoadedMsg carries a completed load.
type DashboardLoadedMsg struct {
	Dashboard *analytics.Dashboard
}

// DashboardErrorMsg carries a failed load.
type DashboardErrorMsg struct {
	Err error
}

// RefreshTickMsg fires when the auto-refresh interval elapses. Ticks from
// an older schedule are ignored.
type RefreshTickMsg struct {
	Generation int
}

// DashboardModel is the Bubble Tea model for the live dashboard.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DashboardModel struct {
	ctx      context.Context
	load     LoadFunc
	interval time.Duration

	state      ViewState
	loading    bool
	generation int
	dashboard  *analytics.Dashboard
	err        error

	spinner spinner.Model
	table   table.Model
	width   int
	height  int
}

// NewDashboardModel creates the live dashboard. interval is the auto-refresh period.
func NewDashboardModel(ctx context.Context, load LoadFunc, interval time.Duration) DashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := DashboardModel{
		ctx:      ctx,
		load:     load,
		interval: interval,
		state:    ViewStateLoading,
		loading:  true,
		spinner:  sp,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.table = m.buildTable(nil)
	return m
}

// Init starts the spinner and the first load (Bubble Tea interface).
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd(false))
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(m.tableHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case DashboardLoadedMsg:
		m.loading = false
		m.state = ViewStateReady
		m.dashboard = msg.Dashboard
		m.err = nil
		var links []analytics.LinkAnalytics
		if msg.Dashboard != nil && msg.Dashboard.Profile != nil {
			links = msg.Dashboard.Profile.LinksAnalytics
		}
		m.table.SetRows(toTableRows(LinkRows(links)))
		if m.height > 0 {
			m.table.SetHeight(m.tableHeight())
		}
		return m, m.scheduleRefresh()

	case DashboardErrorMsg:
		m.loading = false
		m.state = ViewStateError
		m.err = msg.Err
		// Failures are never cached, so the next tick retries.
		return m, m.scheduleRefresh()

	case RefreshTickMsg:
		if msg.Generation != m.generation || m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadCmd(false))

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyRefresh:
		if m.loading {
			return m, nil
		}
		m.loading = true
		if m.state == ViewStateError {
			m.state = ViewStateLoading
		}
		return m, tea.Batch(m.spinner.Tick, m.loadCmd(true))
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the dashboard (Bubble Tea interface).
func (m DashboardModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return fmt.Sprintf("%s Loading analytics data...\n", m.spinner.View())
	case ViewStateError:
		var sb strings.Builder
		sb.WriteString(ErrorStyle.Render("Failed to load analytics data: " + errString(m.err)))
		sb.WriteString("\n")
		sb.WriteString(m.footer())
		return sb.String()
	case ViewStateReady:
	}

	var sb strings.Builder
	sb.WriteString(BoxStyle.Render(strings.TrimRight(RenderSummary(m.dashboard), "\n")))
	sb.WriteString("\n")
	sb.WriteString(HeaderStyle.Render("LINKS"))
	sb.WriteString("\n")
	sb.WriteString(m.table.View())
	sb.WriteString("\n")
	sb.WriteString(m.footer())
	return sb.String()
}

func (m DashboardModel) footer() string {
	var parts []string
	if m.loading {
		parts = append(parts, m.spinner.View()+" refreshing")
	}
	if m.dashboard != nil {
		parts = append(parts, "updated "+m.dashboard.LoadedAt.Format("15:04:05"))
		parts = append(parts, RenderCacheStats(m.dashboard.Cache))
	}
	parts = append(parts, fmt.Sprintf("auto-refresh %s", m.interval), "r refresh", "q quit")
	return InfoStyle.Render(strings.Join(parts, " · "))
}

// RenderCacheStats renders cache counters for the footer.
func RenderCacheStats(s cache.Stats) string {
	return fmt.Sprintf("cache %d hits / %d misses", s.Hits, s.Misses)
}

// State returns the current view state.
func (m DashboardModel) State() ViewState {
	return m.state
}

// Dashboard returns the last successfully loaded dashboard, if any.
func (m DashboardModel) Dashboard() *analytics.Dashboard {
	return m.dashboard
}

func (m DashboardModel) loadCmd(force bool) tea.Cmd {
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		d, err := load(ctx, force)
		if err != nil {
			return DashboardErrorMsg{Err: err}
		}
		return DashboardLoadedMsg{Dashboard: d}
	}
}

// scheduleRefresh starts a new tick generation, invalidating older ticks.
func (m *DashboardModel) scheduleRefresh() tea.Cmd {
	m.generation++
	if m.interval <= 0 {
		return nil
	}
	gen := m.generation
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return RefreshTickMsg{Generation: gen}
	})
}

func (m DashboardModel) tableHeight() int {
	h := m.height - reservedRows
	if n := len(analytics.Insights(m.dashboard)); n > 0 {
		// Header, blank line and one line per insight.
		h -= n + 2
	}
	if h < minTableHeight {
		return minTableHeight
	}
	return h
}

func (m DashboardModel) buildTable(rows []table.Row) table.Model {
	headers := LinkHeaders()
	widths := []int{linkIndexColWidth, linkTitleColWidth, linkNumberColWidth, linkNumberColWidth, linkNumberColWidth}
	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		columns[i] = table.Column{Title: h, Width: widths[i]}
	}

	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
}

func toTableRows(rows [][]string) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row(r)
	}
	return out
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// RunDashboard runs the live dashboard until the user quits or ctx ends.
func RunDashboard(ctx context.Context, load LoadFunc, interval time.Duration) error {
	p := tea.NewProgram(
		NewDashboardModel(ctx, load, interval),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
