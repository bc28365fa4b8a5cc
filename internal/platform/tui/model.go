package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/horse-dash/internal/core"
	"github.com/vovakirdan/horse-dash/internal/draw"
	"github.com/vovakirdan/horse-dash/internal/registry"
	"github.com/vovakirdan/horse-dash/internal/storage"
)

// helpRows is the number of terminal rows under the field used by the help line.
const helpRows = 1

// Model is the Bubble Tea model that drives one game. It is the loop
// driver: every tick it steps the game once, and View replays the game's
// display list onto the terminal.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	list       *draw.List
	raster     draw.Rasterizer
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	goingBack  bool
	runSaved   bool // Whether the current finished run has been recorded
}

// NewModel creates a model for the given game. cfg.ScreenW and cfg.ScreenH
// are the terminal size in cells; the game gets the matching field size in
// logical pixels.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = log.Default()
	}

	raster := draw.NewRasterizer()
	cols, rows := cfg.ScreenW, cfg.ScreenH
	cfg.ScreenW, cfg.ScreenH = raster.FieldSize(cols, fieldRows(rows))

	h := help.New()
	h.Width = cols

	return Model{
		game:       game,
		screen:     core.NewScreen(cols, fieldRows(rows)),
		list:       draw.NewList(float64(cfg.ScreenW), float64(cfg.ScreenH)),
		raster:     raster,
		store:      store,
		logger:     logger,
		config:     cfg,
		keys:       NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

func fieldRows(rows int) int {
	return max(1, rows-helpRows)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// gameState is set on the first tick (value receiver)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keys.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Actions are collected into the input
// frame and applied on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		} else {
			m.logger.Debug("screenshot saved", "path", path)
		}
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.goingBack = true
		return m, tea.Quit
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize re-synchronizes the field with the terminal. The run keeps
// going; only the field geometry changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	rows := fieldRows(msg.Height)
	w, h := m.raster.FieldSize(msg.Width, rows)

	m.config.ScreenW = w
	m.config.ScreenH = h
	m.screen.Resize(msg.Width, rows)
	m.help.Width = msg.Width
	m.game.Resize(w, h)

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.Restarted {
		m.runSaved = false
	}

	if m.gameState.GameOver() && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished run. Best-effort: the game continues
// without history.
func (m Model) saveRun() {
	if m.store == nil {
		return
	}
	run := storage.NewRun(m.game.ID(), m.game.Recipient(), m.gameState)
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("cannot save run", "err", err)
	}
}

// render draws the current frame into the screen buffer.
func (m Model) render() {
	m.game.Render(m.list)
	m.raster.Rasterize(m.list, m.screen)
}

// saveScreenshot saves the current screen to a file and returns its path.
func (m Model) saveScreenshot() (string, error) {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: cannot find home directory: %w", err)
	}
	dir := filepath.Join(home, ".horsedash", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	m.render()
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// GameState returns the state after the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// IsGoingBack returns true if the player asked to return to the menu.
func (m Model) IsGoingBack() bool {
	return m.goingBack
}

// Run starts the Bubble Tea program for a game. It returns true when the
// player went back rather than quitting.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) (goBack bool, err error) {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Mouse press jumps
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
