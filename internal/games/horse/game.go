package horse

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/horse-dash/internal/config"
	"github.com/vovakirdan/horse-dash/internal/core"
	"github.com/vovakirdan/horse-dash/internal/draw"
	"github.com/vovakirdan/horse-dash/internal/registry"
)

func init() {
	register(config.RulesStamina, config.DefaultStaminaRules().Title)
	register(config.RulesGate, config.DefaultGateRules().Title)
}

func register(name, title string) {
	registry.Register(name, title, func(opts registry.Options) registry.Game {
		logger := opts.Logger
		if logger == nil {
			logger = log.Default()
		}

		rules, err := config.LoadRules(name, opts.ConfigPath)
		if err != nil {
			logger.Warn("using default rules", "rules", name, "err", err)
		}
		recipients, err := config.LoadRecipients(opts.RecipientsPath)
		if err != nil {
			logger.Warn("using default recipients", "err", err)
		}
		return New(rules, recipients)
	})
}

// Game adapts a Session to the registry interface: it owns the seeded RNG,
// resolves the recipient and handles pause.
type Game struct {
	rules      config.Rules
	recipients config.RecipientTable
	session    *Session
	runtime    core.RuntimeConfig
	paused     bool
}

// New creates a game for a ruleset and recipient table. Reset must be
// called before the first Step.
func New(rules config.Rules, recipients config.RecipientTable) *Game {
	return &Game{rules: rules, recipients: recipients}
}

// ID returns the ruleset name.
func (g *Game) ID() string {
	return g.rules.Name
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.rules.Title
}

// Reset starts a new session for the runtime's recipient and seed.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt
	g.paused = false

	seed := rt.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	recipient, _ := g.recipients.Lookup(rt.RecipientID)
	g.session = NewSession(g.rules, recipient, float64(rt.ScreenW), float64(rt.ScreenH), rand.New(rand.NewSource(seed)))
}

// Resize follows a new surface size.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.session != nil {
		g.session.Resize(float64(w), float64(h))
	}
}

// Step applies this tick's input and advances one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	s := g.session

	if in.Has(core.ActionPause) && s.Playing() {
		g.paused = !g.paused
	}

	restarted := false
	switch {
	case in.Has(core.ActionJump):
		if !g.paused || s.Phase.Terminal() {
			restarted = s.Trigger()
		}
	case in.Has(core.ActionRestart) && s.Phase.Terminal():
		restarted = s.Restart()
	}
	if restarted {
		g.paused = false
	}

	if !restarted && !g.paused {
		s.Update()
	}
	return core.StepResult{State: g.State(), Restarted: restarted}
}

// Render emits the current frame.
func (g *Game) Render(dst *draw.List) {
	Render(g.session, dst)
	if g.paused && g.session.Playing() {
		RenderOverlay(dst, "PAUSED", "Press P to resume")
	}
}

// State returns the session summary.
func (g *Game) State() core.GameState {
	st := g.session.State()
	st.Paused = g.paused
	return st
}

// Session exposes the running session, mainly for tests and logs.
func (g *Game) Session() *Session {
	return g.session
}

// Recipient returns the recipient of the current run.
func (g *Game) Recipient() config.Recipient {
	return g.session.Recipient
}

// Rules returns the active ruleset.
func (g *Game) Rules() config.Rules {
	return g.rules
}
