package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sliceit/internal/games/sliceit"
	"github.com/vovakirdan/sliceit/internal/storage"
)

// AchievementsKeyMap defines the key bindings for the achievements list.
type AchievementsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k AchievementsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k AchievementsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultAchievementsKeyMap returns default key bindings.
func DefaultAchievementsKeyMap() AchievementsKeyMap {
	return AchievementsKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// AchievementRow is one line of the achievements list.
type AchievementRow struct {
	ID          string
	Name        string
	Description string
	Unlocked    bool
	UnlockedAt  string
}

// LoadAchievementRows merges the achievement catalogue with the unlocks in
// store, which may be nil.
func LoadAchievementRows(store *storage.Store) ([]AchievementRow, error) {
	unlocked := make(map[string]string)
	var loadErr error
	if store != nil {
		entries, err := store.Achievements()
		if err != nil {
			loadErr = err
		}
		for _, e := range entries {
			unlocked[e.ID] = e.UnlockedAt.Local().Format("Jan 02 15:04")
		}
	}

	defs := sliceit.Definitions()
	rows := make([]AchievementRow, 0, len(defs))
	for _, d := range defs {
		at, ok := unlocked[d.ID]
		rows = append(rows, AchievementRow{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Unlocked:    ok,
			UnlockedAt:  at,
		})
	}
	return rows, loadErr
}

// AchievementsModel lists every achievement and whether it is unlocked.
type AchievementsModel struct {
	rows      []AchievementRow
	loadErr   error
	table     table.Model
	help      help.Model
	keys      AchievementsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewAchievementsModel creates the achievements screen.
func NewAchievementsModel(store *storage.Store, width, height int) AchievementsModel {
	rows, err := LoadAchievementRows(store)
	m := AchievementsModel{
		rows:    rows,
		loadErr: err,
		help:    help.New(),
		keys:    DefaultAchievementsKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	return m
}

func (m *AchievementsModel) createTable() table.Model {
	descWidth := m.width - 4 - 3 - 18 - 14 - 8
	if descWidth < 20 {
		descWidth = 20
	}
	columns := []table.Column{
		{Title: "", Width: 3},
		{Title: "Achievement", Width: 18},
		{Title: "Description", Width: descWidth},
		{Title: "Unlocked", Width: 14},
	}

	t := newStyledTable(columns, m.height-8)

	tableRows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		mark := " · "
		if r.Unlocked {
			mark = " ★ "
		}
		tableRows[i] = table.Row{mark, r.Name, r.Description, r.UnlockedAt}
	}
	t.SetRows(tableRows)
	return t
}

// Unlocked returns how many achievements are unlocked.
func (m AchievementsModel) Unlocked() int {
	n := 0
	for _, r := range m.rows {
		if r.Unlocked {
			n++
		}
	}
	return n
}

// Init initializes the achievements model.
func (m AchievementsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the achievements list.
func (m AchievementsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the achievements list.
func (m AchievementsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("ACHIEVEMENTS  %d/%d", m.Unlocked(), len(m.rows))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	b.WriteString(panelStyle.Render(m.table.View()))
	b.WriteString("\n")

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Could not load unlocks: " + m.loadErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m AchievementsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m AchievementsModel) IsQuitting() bool {
	return m.quitting
}
