package horse

import (
	"fmt"
	"math"

	"github.com/vovakirdan/horse-dash/internal/config"
	"github.com/vovakirdan/horse-dash/internal/core"
)

// Session is the complete state of one run. It is owned by the loop driver
// and mutated only through its methods, once per frame plus input commands
// between frames.
type Session struct {
	Rules     config.Rules
	Recipient config.Recipient

	Phase   core.Phase
	Message string // Final message shown on the overlay

	Horse     Horse
	Items     []Entity
	Obstacles []Entity

	Total      int
	Stamina    float64
	Score      int  // Obstacles passed
	ClearReady bool // Total matched the target at the last money pickup

	ItemSpawner     Spawner
	ObstacleSpawner Spawner
	Frame           int

	FieldW  float64
	FieldH  float64
	GroundY float64

	rng Rand
}

// NewSession creates a session for a fieldW x fieldH field and starts it.
func NewSession(rules config.Rules, recipient config.Recipient, fieldW, fieldH float64, rng Rand) *Session {
	s := &Session{
		Rules:     rules,
		Recipient: recipient,
		rng:       rng,
		ItemSpawner: NewSpawner(
			rules.Items.FirstSpawn, rules.Items.IntervalMin, rules.Items.IntervalRange,
		),
		ObstacleSpawner: NewSpawner(
			rules.Obstacles.FirstSpawn, rules.Obstacles.IntervalMin, rules.Obstacles.IntervalRange,
		),
		Items:     make([]Entity, 0, 8),
		Obstacles: make([]Entity, 0, 8),
	}
	s.setField(fieldW, fieldH)
	s.Reset()
	return s
}

func (s *Session) setField(w, h float64) {
	s.FieldW = w
	s.FieldH = h
	s.GroundY = h * s.Rules.Field.GroundRatio
}

// Reset reinitializes all run state: phase, money, stamina, score, timers,
// entities and the horse.
func (s *Session) Reset() {
	s.Phase = core.PhasePlaying
	s.Message = ""
	s.Frame = 0
	s.Total = 0
	s.Score = 0
	s.ClearReady = false
	s.Stamina = s.Rules.Stamina.Max
	s.Items = s.Items[:0]
	s.Obstacles = s.Obstacles[:0]
	s.ItemSpawner.Reset()
	s.ObstacleSpawner.Reset()
	s.Horse = NewHorse(s.Rules.Horse, s.FieldW, s.FieldH, s.GroundY)
}

// Resize re-synchronizes the field with a new surface size. The ground and
// the horse's anchor follow the new size; the run itself continues. The
// horse is put back on the ground line but keeps its velocity and jump
// count, so a jump in progress carries on from there.
func (s *Session) Resize(fieldW, fieldH float64) {
	if fieldW == s.FieldW && fieldH == s.FieldH {
		return
	}
	s.setField(fieldW, fieldH)
	s.Horse.X = fieldW * s.Rules.Horse.XRatio
	s.Horse.Y = s.GroundY - s.Horse.H
}

// Target returns the recipient's target amount.
func (s *Session) Target() int {
	return s.Recipient.TargetAmount
}

// Playing reports whether the simulation is advancing.
func (s *Session) Playing() bool {
	return s.Phase == core.PhasePlaying
}

// Trigger is the jump-trigger input: it jumps while playing and restarts a
// finished run. It reports whether the run was restarted.
func (s *Session) Trigger() bool {
	if s.Phase.Terminal() {
		return s.Restart()
	}
	s.Jump()
	return false
}

// Jump makes the horse jump if the rules allow it. A refused jump changes
// nothing.
func (s *Session) Jump() bool {
	if !s.Playing() || !s.Horse.CanJump() {
		return false
	}
	if s.Rules.Stamina.Enabled && s.Stamina <= 0 {
		return false
	}

	s.Horse.Jump()
	if s.Rules.Stamina.Enabled {
		s.Stamina = math.Max(0, s.Stamina-s.Rules.Stamina.JumpCost)
	}
	return true
}

// Restart resets a finished run. It is refused while playing.
func (s *Session) Restart() bool {
	if !s.Phase.CanTransition(core.PhasePlaying) {
		return false
	}
	s.Reset()
	return true
}

// finish moves the session into a terminal phase with a message. Only the
// first terminal transition of a frame takes effect.
func (s *Session) finish(phase core.Phase, message string) {
	if !s.Phase.CanTransition(phase) {
		return
	}
	s.Phase = phase
	s.Message = message
}

// Update advances the simulation by one frame. It does nothing unless the
// session is playing.
func (s *Session) Update() {
	if !s.Playing() {
		return
	}

	s.Frame++

	if s.Rules.Stamina.Enabled {
		s.Stamina = math.Max(0, s.Stamina-s.Rules.Stamina.DecayPerFrame)
		if s.Stamina <= 0 {
			s.finish(core.PhaseGameOver, s.Rules.Messages.Exhausted)
			return
		}
	}

	s.Horse.Update(s.GroundY)
	s.updateItems()
	if s.Rules.Obstacles.Enabled {
		s.updateObstacles()
	}
}

func (s *Session) updateItems() {
	if s.ItemSpawner.Tick() {
		s.Items = append(s.Items, spawnItem(s))
		s.ItemSpawner.Rearm(s.rng)
	}

	horse := s.Horse.Rect()
	kept := s.Items[:0]
	for _, item := range s.Items {
		item.Advance()
		if item.OffScreen() {
			continue
		}
		if s.Playing() && horse.Intersects(item.Rect()) {
			s.collectItem(item)
			continue
		}
		kept = append(kept, item)
	}
	s.Items = kept
}

func (s *Session) collectItem(item Entity) {
	switch item.Kind {
	case KindMoney:
		s.Total += item.Value
		target := s.Target()

		if s.Rules.Overshoot.Deferred {
			// Readiness follows the latest total; the gate decides.
			s.ClearReady = s.Total == target
			return
		}
		if s.Total == target {
			s.finish(core.PhaseCleared, s.Recipient.Message)
		} else if s.Total > target {
			s.finish(core.PhaseGameOver, s.Rules.Messages.Overshoot)
		}

	case KindCarrot:
		if s.Rules.Stamina.Enabled {
			s.Stamina = math.Min(s.Rules.Stamina.Max, s.Stamina+s.Rules.Stamina.CarrotRecovery)
		}
	}
}

func (s *Session) updateObstacles() {
	if s.ObstacleSpawner.Tick() {
		s.Obstacles = append(s.Obstacles, spawnObstacle(s))
		s.ObstacleSpawner.Rearm(s.rng)
	}

	horse := s.Horse.Rect()
	kept := s.Obstacles[:0]
	for _, ob := range s.Obstacles {
		ob.Advance()
		if ob.OffScreen() {
			s.Score++
			continue
		}
		if s.Playing() && horse.Intersects(ob.Rect()) {
			s.hitObstacle(ob)
			continue
		}
		kept = append(kept, ob)
	}
	s.Obstacles = kept
}

func (s *Session) hitObstacle(ob Entity) {
	if string(ob.Kind) != s.Rules.Obstacles.Gate {
		s.finish(core.PhaseGameOver, s.Rules.Messages.Crash)
		return
	}
	if s.ClearReady && s.Total == s.Target() {
		s.finish(core.PhaseCleared, s.Recipient.Message)
		return
	}
	s.finish(core.PhaseGameOver, s.Rules.Messages.GateMismatch)
}

// StaminaRatio returns stamina as a fraction of the maximum, 0 when stamina
// is disabled.
func (s *Session) StaminaRatio() float64 {
	if !s.Rules.Stamina.Enabled || s.Rules.Stamina.Max <= 0 {
		return 0
	}
	return math.Max(0, s.Stamina) / s.Rules.Stamina.Max
}

// State summarizes the session for the platform.
func (s *Session) State() core.GameState {
	return core.GameState{
		Phase:  s.Phase,
		Total:  s.Total,
		Target: s.Target(),
		Score:  s.Score,
		Frames: s.Frame,
	}
}

// String is a one-line summary used in logs.
func (s *Session) String() string {
	return fmt.Sprintf("%s total=%d/%d frame=%d score=%d", s.Phase, s.Total, s.Target(), s.Frame, s.Score)
}
