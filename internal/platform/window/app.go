package window

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/horse-dash/internal/core"
	"github.com/vovakirdan/horse-dash/internal/draw"
	"github.com/vovakirdan/horse-dash/internal/registry"
	"github.com/vovakirdan/horse-dash/internal/storage"
)

// keyActions maps window keys to game actions.
var keyActions = map[ebiten.Key]core.Action{
	ebiten.KeySpace:   core.ActionJump,
	ebiten.KeyArrowUp: core.ActionJump,
	ebiten.KeyW:       core.ActionJump,
	ebiten.KeyR:       core.ActionRestart,
	ebiten.KeyP:       core.ActionPause,
	ebiten.KeyQ:       core.ActionQuit,
	ebiten.KeyEscape:  core.ActionQuit,
}

// collectInput builds the frame for one tick. justPressed reports keys
// pressed since the previous tick; pointer is a mouse click or a new touch.
func collectInput(justPressed func(ebiten.Key) bool, pointer bool) core.InputFrame {
	frame := core.NewInputFrame()
	for k, a := range keyActions {
		if justPressed(k) {
			frame.Set(a)
		}
	}
	if pointer {
		frame.Set(core.ActionJump)
	}
	return frame
}

// pointerPressed reports a left click or a touch that started this tick.
func pointerPressed() bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	return len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}

// App is the ebiten.Game that drives one registered game: one Step per
// ebiten tick, and the game's display list painted every frame.
type App struct {
	game     registry.Game
	store    *storage.Store
	logger   *log.Logger
	painter  *Painter
	list     *draw.List
	width    int
	height   int
	state    core.GameState
	runSaved bool
}

// NewApp creates an app for game and starts a fresh run with cfg. cfg's
// screen size is the initial window size in pixels.
func NewApp(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) *App {
	if logger == nil {
		logger = log.Default()
	}
	game.Reset(cfg)
	return &App{
		game:   game,
		store:  store,
		logger: logger,
		list:   draw.NewList(float64(cfg.ScreenW), float64(cfg.ScreenH)),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		state:  game.State(),
	}
}

// Update advances the game by one tick.
func (a *App) Update() error {
	in := collectInput(inpututil.IsKeyJustPressed, pointerPressed())
	if in.Has(core.ActionQuit) {
		return ebiten.Termination
	}
	a.step(in)
	return nil
}

// step runs one simulation tick and records a finished run once.
func (a *App) step(in core.InputFrame) {
	result := a.game.Step(in)
	a.state = result.State
	if result.Restarted {
		a.runSaved = false
	}
	if a.state.GameOver() && !a.runSaved {
		a.saveRun()
		a.runSaved = true
	}
}

func (a *App) saveRun() {
	a.logger.Info("run finished",
		"rules", a.game.ID(),
		"phase", a.state.Phase,
		"total", a.state.Total,
		"target", a.state.Target,
	)
	if a.store == nil {
		return
	}
	run := storage.NewRun(a.game.ID(), a.game.Recipient(), a.state)
	if _, err := a.store.SaveRun(run); err != nil {
		a.logger.Warn("cannot save run", "err", err)
	}
}

// Draw paints the current frame. Run sets up the painter before the loop
// starts.
func (a *App) Draw(screen *ebiten.Image) {
	if a.painter == nil {
		return
	}
	a.game.Render(a.list)
	a.painter.Paint(screen, a.list)
}

// Layout uses the window size as the field size, so resizing the window
// resizes the field without restarting the run.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.resize(outsideWidth, outsideHeight)
	return a.width, a.height
}

func (a *App) resize(w, h int) {
	if w <= 0 || h <= 0 || (w == a.width && h == a.height) {
		return
	}
	a.width, a.height = w, h
	a.game.Resize(w, h)
}

// State returns the state after the last tick.
func (a *App) State() core.GameState {
	return a.state
}

// Run opens a window and plays game until the window is closed or the
// player quits.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	painter, err := NewPainter()
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	app := NewApp(game, store, logger, cfg)
	app.painter = painter

	ebiten.SetWindowSize(cfg.ScreenW, cfg.ScreenH)
	ebiten.SetWindowTitle(fmt.Sprintf("Horse Dash - %s", game.Title()))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TickRate)

	if err := ebiten.RunGame(app); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
