package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sliceit/internal/registry"
	"github.com/vovakirdan/sliceit/internal/storage"
)

// recentRunsShown is how many runs the history view lists.
const recentRunsShown = 15

// scoreboardView selects what the table lists.
type scoreboardView int

const (
	viewTopScores scoreboardView = iota
	viewRecentRuns
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Toggle   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextMode, k.PrevMode, k.Toggle, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Toggle, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextMode: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
		PrevMode: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev mode")),
		Toggle:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "scores/runs")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the high scores and run history of each mode.
type ScoreboardModel struct {
	modes   []registry.GameInfo
	cursor  int
	view    scoreboardView
	store   *storage.Store
	scores  []storage.ScoreEntry
	runs    []storage.RunRecord
	stats   *storage.GameStats
	loadErr error
	table   table.Model
	help    help.Model
	keys    ScoreboardKeyMap
	width   int
	height  int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates the scoreboard. store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

// Mode returns the id of the mode on display.
func (m ScoreboardModel) Mode() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.cursor].ID
}

// reload fetches the data for the current mode and rebuilds the table.
func (m *ScoreboardModel) reload() {
	m.scores, m.runs, m.stats, m.loadErr = nil, nil, nil, nil
	mode := m.Mode()
	if m.store != nil && mode != "" {
		var err error
		if m.scores, err = m.store.TopScores(mode, storage.MaxScores); err != nil {
			m.loadErr = err
		}
		if m.runs, err = m.store.RecentRuns(mode, recentRunsShown); err != nil {
			m.loadErr = err
		}
		if m.stats, err = m.store.GetGameStats(mode); err != nil {
			m.loadErr = err
		}
	}
	m.table = m.buildTable()
}

func (m *ScoreboardModel) buildTable() table.Model {
	var (
		columns []table.Column
		rows    []table.Row
	)

	switch m.view {
	case viewRecentRuns:
		columns = []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Player", Width: maxNameLen},
			{Title: "Score", Width: 8},
			{Title: "Combo", Width: 6},
			{Title: "Lv", Width: 3},
			{Title: "End", Width: 15},
		}
		for _, r := range m.runs {
			rows = append(rows, table.Row{
				r.CreatedAt.Local().Format("Jan 02 15:04"),
				r.Player,
				fmt.Sprintf("%d", r.Score),
				fmt.Sprintf("x%d", r.MaxCombo),
				fmt.Sprintf("%d", r.Level),
				r.EndReason,
			})
		}
	default:
		columns = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Name", Width: maxNameLen},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: 12},
		}
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				s.Name,
				fmt.Sprintf("%d", s.Score),
				s.CreatedAt.Local().Format("Jan 02 15:04"),
			})
		}
	}

	t := newStyledTable(columns, m.height-10)
	t.SetRows(rows)
	return t
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode):
			if len(m.modes) > 0 {
				m.cursor = (m.cursor + 1) % len(m.modes)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			if len(m.modes) > 0 {
				m.cursor = (m.cursor + len(m.modes) - 1) % len(m.modes)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if m.view == viewTopScores {
				m.view = viewRecentRuns
			} else {
				m.view = viewTopScores
			}
			m.table = m.buildTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.buildTable()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if m.view == viewRecentRuns {
		title = "RECENT RUNS"
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	body := m.table.View()
	if len(m.table.Rows()) == 0 {
		body = emptyStyle.Render(m.emptyMessage())
	}
	b.WriteString(centerText(panelStyle.Render(body), m.width))
	b.WriteString("\n")

	if line := m.statsLine(); line != "" {
		b.WriteString(centerText(mutedStyle.Render(line), m.width))
		b.WriteString("\n")
	}
	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Could not load: " + m.loadErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTabs shows every mode with the current one highlighted, or only
// the current one when they do not fit.
func (m ScoreboardModel) renderTabs() string {
	if len(m.modes) == 0 {
		return ""
	}
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = mutedStyle.Render(" " + g.Title + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("< %s >", m.modes[m.cursor].Title)
	}
	return line
}

func (m ScoreboardModel) emptyMessage() string {
	if m.store == nil {
		return "Scores are not being saved."
	}
	if m.view == viewRecentRuns {
		return "No runs recorded yet."
	}
	return "No scores recorded yet.\nSlice something to set a high score!"
}

// statsLine summarizes every recorded run of the mode.
func (m ScoreboardModel) statsLine() string {
	s := m.stats
	if s == nil || s.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs  |  avg %.0f  |  best combo x%d  |  %d sliced  |  %s played",
		s.GamesCount, s.AvgScore, s.BestCombo, s.TotalSliced, s.PlayTime.Round(time.Second))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
