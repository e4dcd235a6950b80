package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/calebfornari/listerine/internal/monitor"
	"github.com/calebfornari/listerine/internal/store"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	helpStyle     = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	baseStyle     = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failureStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

type tickMsg time.Time

// Model is the interactive status view: a table of each monitor's latest
// outcome and failure counter, refreshed from the store on a timer.
type Model struct {
	store    *store.Store
	interval time.Duration
	table    table.Model
	err      error
}

// NewModel builds the status view over an open store.
func NewModel(st *store.Store, interval time.Duration) Model {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	columns := []table.Column{
		{Title: "Monitor", Width: 20},
		{Title: "Environment", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Failures", Width: 8},
		{Title: "Last Run", Width: 19},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	return Model{store: st, interval: interval, table: tbl}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh, m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type rowsMsg struct {
	rows []table.Row
	err  error
}

func (m Model) refresh() tea.Msg {
	latest, err := m.store.LatestOutcomes()
	if err != nil {
		return rowsMsg{err: err}
	}
	rows := make([]table.Row, 0, len(latest))
	for _, r := range latest {
		rows = append(rows, table.Row{
			r.Monitor,
			r.Environment,
			statusCell(r.Status),
			fmt.Sprint(m.store.FailureCount(r.Monitor, r.Environment)),
			r.RecordedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return rowsMsg{rows: rows}
}

func statusCell(s monitor.Status) string {
	switch s {
	case monitor.StatusSuccess:
		return successStyle.Render("ok")
	case monitor.StatusFailure:
		return failureStyle.Render("failing")
	case monitor.StatusDisabled:
		return disabledStyle.Render("disabled")
	default:
		return string(s)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.refresh
		}
	case tickMsg:
		return m, tea.Batch(m.refresh, m.tick())
	case rowsMsg:
		m.err = msg.err
		if msg.err == nil {
			m.table.SetRows(msg.rows)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	view := titleStyle.Render("listerine monitors") + "\n"
	view += baseStyle.Render(m.table.View()) + "\n"
	if m.err != nil {
		view += failureStyle.Render("store error: "+m.err.Error()) + "\n"
	}
	view += helpStyle.Render("r refresh · q quit")
	return view
}
