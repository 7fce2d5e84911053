package tui

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sliceit/internal/audio"
	"github.com/vovakirdan/sliceit/internal/core"
	"github.com/vovakirdan/sliceit/internal/registry"
	"github.com/vovakirdan/sliceit/internal/settings"
	"github.com/vovakirdan/sliceit/internal/storage"
)

const (
	maxNameLen  = 16
	defaultName = "player"
	volumeStep  = 0.1
)

// Services are the optional collaborators shared by every screen.
// Any of them may be nil.
type Services struct {
	Store    *storage.Store
	Audio    *audio.SoundManager
	Settings *settings.Manager // receives in-game volume changes
	Player   string            // default high-score name
	Log      *log.Logger
}

func (s Services) logger() *log.Logger {
	if s.Log != nil {
		return s.Log
	}
	return log.Default()
}

func (s Services) playerName() string {
	if name := strings.TrimSpace(s.Player); name != "" {
		return name
	}
	return defaultName
}

// gamePhase tracks the run lifecycle as seen by the frontend.
type gamePhase int

const (
	phasePlaying gamePhase = iota
	phaseNameEntry
	phaseRecorded
)

// GameModel runs one game: it feeds keys and mouse drags into the
// simulation, plays cues for its events and records finished runs.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	svc        Services
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	phase      gamePhase
	nameInput  textinput.Model
	rank       int
	quitting   bool
	backToMenu bool
	standalone bool // leaving the game quits the program
	loop       uint64
}

// NewGameModel creates a model for game.
func NewGameModel(game registry.Game, svc Services, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if svc.Store != nil {
		if t, ok := game.(registry.AchievementTracker); ok {
			t.AttachAchievements(svc.Store)
		}
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		svc:        svc,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		loop:       nextLoopID(),
	}
}

// Init initializes the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.phase == phaseNameEntry {
			return m.handleNameKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	if m.phase == phaseNameEntry {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input during play.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "+", "=":
		m.adjustVolume(volumeStep)
		return m, nil
	case "-":
		m.adjustVolume(-volumeStep)
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			return m.leave()
		}
		m.inputFrame.Set(core.ActionPause)
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	case core.ActionPause:
		m.inputFrame.Set(core.ActionPause)
	}
	return m, nil
}

// adjustVolume changes the sound volume and stores it in the settings.
// Changing the volume unmutes.
func (m GameModel) adjustVolume(delta float64) {
	if m.svc.Audio == nil {
		return
	}
	m.svc.Audio.SetVolume(math.Round((m.svc.Audio.Volume()+delta)*20) / 20)
	vol := m.svc.Audio.Volume()

	if p := m.svc.Settings; p != nil {
		p.Update(func(s *settings.Settings) {
			s.SfxVolume = vol
			s.Muted = false
		})
		if err := p.Save(); err != nil {
			m.svc.logger().Warn("could not save volume", "err", err)
		}
	}
}

// handleNameKey feeds the high-score name prompt.
func (m GameModel) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.saveScore(m.nameInput.Value())
		m.phase = phaseRecorded
		return m, nil
	case tea.KeyEsc:
		m.phase = phaseRecorded
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleMouse turns terminal drags into pointer samples for the next tick.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	mapper, ok := m.game.(registry.PointerMapper)
	if !ok || m.phase != phasePlaying {
		return m, nil
	}
	if sample, ok := m.keyMapper.MapMouse(msg, mapper, time.Now()); ok {
		m.inputFrame.AddPointer(sample)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.svc.Audio != nil {
		m.svc.Audio.Handle(result.Events)
	}

	if wasOver && !m.gameState.GameOver {
		m.phase = phasePlaying
		m.rank = 0
	}

	var cmds []tea.Cmd
	if m.gameState.GameOver && !wasOver {
		if cmd := m.finishRun(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, tickCmd(m.config.TickRate, m.loop))
	return m, tea.Batch(cmds...)
}

// finishRun records the run history and opens the name prompt when the
// score makes the high-score list.
func (m *GameModel) finishRun() tea.Cmd {
	m.phase = phaseRecorded
	store := m.svc.Store
	if store == nil {
		return nil
	}
	logger := m.svc.logger()

	if r, ok := m.game.(registry.RunReporter); ok {
		_, err := store.SaveRun(storage.RunFromSummary(m.game.ID(), m.svc.playerName(), r.Summary()))
		if err != nil {
			logger.Warn("could not save run", "err", err)
		}
	}

	if m.gameState.Score <= 0 {
		return nil
	}
	qualifies, err := store.Qualifies(m.game.ID(), m.gameState.Score)
	if err != nil {
		logger.Warn("could not check high scores", "err", err)
		return nil
	}
	if !qualifies {
		return nil
	}

	m.phase = phaseNameEntry
	m.nameInput = newNameInput(m.svc.playerName())
	return textinput.Blink
}

func newNameInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = defaultName
	ti.CharLimit = maxNameLen
	ti.Width = maxNameLen + 2
	if len(value) > maxNameLen {
		value = value[:maxNameLen]
	}
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return ti
}

// saveScore writes the high score under name.
func (m *GameModel) saveScore(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = m.svc.playerName()
	}
	rank, err := m.svc.Store.SaveScore(m.game.ID(), name, m.gameState.Score)
	if err != nil {
		m.svc.logger().Warn("could not save score", "err", err)
		return
	}
	m.rank = rank
}

// leave ends the game screen.
func (m GameModel) leave() (tea.Model, tea.Cmd) {
	m.backToMenu = true
	if m.standalone {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".sliceit", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.svc.logger().Warn("could not create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.svc.logger().Warn("could not save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.phase == phaseNameEntry {
		return m.nameEntryView()
	}

	m.game.Render(m.screen)
	if m.phase == phaseRecorded && m.rank > 0 && m.screen.Height() > 3 {
		m.screen.DrawTextCenteredColor(m.screen.Height()-3,
			fmt.Sprintf("New high score! Rank #%d", m.rank), core.ColorGold)
	}
	return RenderScreen(m.screen)
}

var (
	promptBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("178")).
			Padding(1, 3)
	promptTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229"))
	promptHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func (m GameModel) nameEntryView() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		promptTitleStyle.Render("NEW HIGH SCORE!"),
		"",
		fmt.Sprintf("%s  %d", m.game.Title(), m.gameState.Score),
		"",
		"Name: "+m.nameInput.View(),
		"",
		promptHintStyle.Render("enter save  esc skip"),
	)
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH,
		lipgloss.Center, lipgloss.Center, promptBoxStyle.Render(body))
}

// Rank returns the high-score rank of the last saved run, 0 if none.
func (m GameModel) Rank() int {
	return m.rank
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in its own full-screen program.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, svc, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
