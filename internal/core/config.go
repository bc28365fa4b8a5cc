package core

// RuntimeConfig contains configuration passed to games at initialization.
// Frontends fill it from the terminal or window size and the CLI flags.
type RuntimeConfig struct {
	ScreenW  int   // Field width in logical pixels
	ScreenH  int   // Field height in logical pixels
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// RecipientID selects the recipient record; unknown or empty falls back
	// to the default recipient.
	RecipientID string
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  640,
		ScreenH:  384,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Phase is the top-level session status.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
	PhaseCleared
)

// String returns the phase name used in logs and the run history.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	case PhaseCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the run (gameover or cleared).
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseCleared
}

// CanTransition reports whether moving from p to next is legal.
// Playing may end in either terminal phase; terminal phases only go back to
// playing (restart). There is no edge between gameover and cleared.
func (p Phase) CanTransition(next Phase) bool {
	switch p {
	case PhasePlaying:
		return next.Terminal()
	case PhaseGameOver, PhaseCleared:
		return next == PhasePlaying
	default:
		return false
	}
}

// ParsePhase converts a stored phase name back to a Phase.
func ParsePhase(s string) (Phase, bool) {
	switch s {
	case "playing":
		return PhasePlaying, true
	case "gameover":
		return PhaseGameOver, true
	case "cleared":
		return PhaseCleared, true
	default:
		return PhasePlaying, false
	}
}

// GameState is the summary a game reports to the platform after each tick.
type GameState struct {
	Phase  Phase // Current phase
	Total  int   // Money collected so far
	Target int   // Recipient's target amount
	Score  int   // Obstacles passed (gate ruleset), 0 otherwise
	Frames int   // Simulated frames since the last reset
	Paused bool  // Whether the game is paused
}

// GameOver reports whether the run has ended, in either terminal phase.
func (s GameState) GameOver() bool {
	return s.Phase.Terminal()
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Restarted is set when the tick's input restarted a finished run.
	Restarted bool
}
