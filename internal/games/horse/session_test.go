package horse

import (
	"math"
	"testing"

	"github.com/vovakirdan/horse-dash/internal/config"
	"github.com/vovakirdan/horse-dash/internal/core"
)

// scriptedRand replays fixed values; once exhausted it returns 0.5 and 0.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

// newTestSession creates a 640x384 session whose spawners never fire, so
// tests control every entity.
func newTestSession(t *testing.T, rules config.Rules, recipientID string) *Session {
	t.Helper()
	recipient, _ := config.DefaultRecipients().Lookup(recipientID)
	s := NewSession(rules, recipient, 640, 384, &scriptedRand{})
	hold(s)
	return s
}

func hold(s *Session) {
	s.ItemSpawner.Timer = math.Inf(1)
	s.ObstacleSpawner.Timer = math.Inf(1)
}

// atHorse returns a motionless entity overlapping the standing horse.
func atHorse(s *Session, kind Kind, value int) Entity {
	return Entity{Kind: kind, X: s.Horse.X, Y: s.Horse.Y, W: 20, H: 20, Value: value}
}

func collect(s *Session, kind Kind, value int) {
	if kind.IsItem() {
		s.Items = append(s.Items, atHorse(s, kind, value))
	} else {
		s.Obstacles = append(s.Obstacles, atHorse(s, kind, value))
	}
	s.Update()
}

func TestHorseStaysWithinBounds(t *testing.T) {
	s := newTestSession(t, config.DefaultStaminaRules(), "hiko")
	top := s.GroundY - s.Horse.H - 2*s.Horse.ApexHeight()

	for frame := 0; frame < 240; frame++ {
		if frame%20 == 0 || frame%20 == 8 {
			s.Jump()
		}
		s.Update()

		if !s.Playing() {
			t.Fatalf("frame %d: run ended unexpectedly: %s", frame, s)
		}
		h := s.Horse
		if h.Y+h.H > s.GroundY+1e-9 {
			t.Fatalf("frame %d: horse below ground: bottom=%v ground=%v", frame, h.Y+h.H, s.GroundY)
		}
		if h.Y < top-1e-9 {
			t.Fatalf("frame %d: horse above reachable top: y=%v top=%v", frame, h.Y, top)
		}
		if h.OnGround && (h.VY != 0 || h.JumpCount != 0) {
			t.Fatalf("frame %d: grounded horse has VY=%v JumpCount=%d", frame, h.VY, h.JumpCount)
		}
	}
}

func TestJumpRefusedAtMaxJumps(t *testing.T) {
	s := newTestSession(t, config.DefaultStaminaRules(), "hiko")

	if !s.Jump() {
		t.Fatal("first jump refused")
	}
	s.Update()
	if !s.Jump() {
		t.Fatal("double jump refused")
	}
	s.Update()

	vy, stamina, count := s.Horse.VY, s.Stamina, s.Horse.JumpCount
	if s.Jump() {
		t.Fatal("third jump accepted")
	}
	if s.Horse.VY != vy || s.Stamina != stamina || s.Horse.JumpCount != count {
		t.Errorf("refused jump changed state: VY %v->%v stamina %v->%v count %d->%d",
			vy, s.Horse.VY, stamina, s.Stamina, count, s.Horse.JumpCount)
	}
}

func TestJumpCostsStamina(t *testing.T) {
	s := newTestSession(t, config.DefaultStaminaRules(), "hiko")
	s.Jump()
	if s.Stamina != 98 {
		t.Errorf("Stamina = %v, expected 98", s.Stamina)
	}

	s = newTestSession(t, config.DefaultStaminaRules(), "hiko")
	s.Stamina = 0
	if s.Jump() {
		t.Error("jump without stamina accepted")
	}
}

func TestGateRulesJumpOnlyFromGround(t *testing.T) {
	s := newTestSession(t, config.DefaultGateRules(), "hiko")
	if !s.Jump() {
		t.Fatal("ground jump refused")
	}
	s.Update()
	if s.Jump() {
		t.Error("air jump accepted with a single jump")
	}

	for i := 0; i < 200 && !s.Horse.OnGround; i++ {
		s.Update()
	}
	if !s.Jump() {
		t.Error("jump after landing refused")
	}
}

func TestImmediateTargetOutcome(t *testing.T) {
	tests := []struct {
		name      string
		recipient string
		values    []int
		wantPhase core.Phase
		wantTotal int
		wantMsg   string
	}{
		{
			name:      "exact",
			recipient: "hiko",
			values:    []int{500, 5},
			wantPhase: core.PhaseCleared,
			wantTotal: 505,
			wantMsg:   "ひこさん、ぴったりお年玉達成！今年もよろしくお願いします！",
		},
		{
			name:      "overshoot",
			recipient: "taro",
			values:    []int{100, 70},
			wantPhase: core.PhaseGameOver,
			wantTotal: 170,
			wantMsg:   config.DefaultStaminaRules().Messages.Overshoot,
		},
		{
			name:      "below target",
			recipient: "taro",
			values:    []int{100, 5, 5},
			wantPhase: core.PhasePlaying,
			wantTotal: 110,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t, config.DefaultStaminaRules(), tc.recipient)
			for _, v := range tc.values {
				collect(s, KindMoney, v)
			}
			if s.Phase != tc.wantPhase {
				t.Errorf("Phase = %v, expected %v", s.Phase, tc.wantPhase)
			}
			if s.Total != tc.wantTotal {
				t.Errorf("Total = %d, expected %d", s.Total, tc.wantTotal)
			}
			if s.Message != tc.wantMsg {
				t.Errorf("Message = %q, expected %q", s.Message, tc.wantMsg)
			}
		})
	}
}

func TestFinishedRunDoesNotAdvance(t *testing.T) {
	s := newTestSession(t, config.DefaultStaminaRules(), "taro")
	collect(s, KindMoney, 500)
	if s.Phase != core.PhaseGameOver {
		t.Fatalf("Phase = %v, expected gameover", s.Phase)
	}

	frame, total := s.Frame, s.Total
	s.Items = append(s.Items, atHorse(s, KindMoney, 5))
	s.Update()
	if s.Frame != frame || s.Total != total || len(s.Items) != 1 {
		t.Errorf("finished run advanced: frame %d->%d total %d->%d items=%d", frame, s.Frame, total, s.Total, len(s.Items))
	}
}

func TestOnlyFirstOutcomeOfFrameCounts(t *testing.T) {
	s := newTestSession(t, config.DefaultStaminaRules(), "hiko")
	s.Items = append(s.Items, atHorse(s, KindMoney, 505), atHorse(s, KindMoney, 5))
	s.Update()

	if s.Phase != core.PhaseCleared {
		t.Errorf("Phase = %v, expected cleared", s.Phase)
	}
	if s.Total != 505 {
		t.Errorf("Total = %d, expected 505", s.Total)
	}
}

func TestStaminaExhaustion(t *testing.T) {
	rules := config.DefaultStaminaRules()
	s := newTestSession(t, rules, "hiko")
	s.Stamina = rules.Stamina.DecayPerFrame / 2
	s.Items = append(s.Items, atHorse(s, KindMoney, 505))
	s.Update()

	if s.Phase != core.PhaseGameOver {
		t.Fatalf("Phase = %v, expected gameover", s.Phase)
	}
	if s.Message != rules.Messages.Exhausted {
		t.Errorf("Message = %q, expected %q", s.Message, rules.Messages.Exhausted)
	}
	if s.Total != 0 {
		t.Errorf("exhausted frame collected money: Total = %d", s.Total)
	}
}

func TestStaminaRunsOut(t *testing.T) {
	s := newTestSession(t, config.DefaultStaminaRules(), "hiko")
	frames := 0
	for s.Playing() && frames < 10000 {
		s.Update()
		frames++
	}
	// 100 / 0.15 = 666.7
	if frames != 667 {
		t.Errorf("stamina ran out after %d frames, expected 667", frames)
	}
}

func TestCarrotRecovery(t *testing.T) {
	tests := []struct {
		start float64
		want  float64
	}{
		{50, 69.85},
		{95, 100},
	}

	for _, tc := range tests {
		s := newTestSession(t, config.DefaultStaminaRules(), "hiko")
		s.Stamina = tc.start
		collect(s, KindCarrot, 0)

		if math.Abs(s.Stamina-tc.want) > 1e-9 {
			t.Errorf("start %v: Stamina = %v, expected %v", tc.start, s.Stamina, tc.want)
		}
		if len(s.Items) != 0 || !s.Playing() {
			t.Errorf("start %v: carrot not consumed cleanly: items=%d phase=%v", tc.start, len(s.Items), s.Phase)
		}
	}
}

func TestRestartResetsSession(t *testing.T) {
	s := newTestSession(t, config.DefaultGateRules(), "taro")
	collect(s, KindMoney, 100)
	s.Score = 4
	collect(s, KindKadomatsu, 0)
	s.Items = append(s.Items, Entity{Kind: KindMoney, X: 400, W: 10, H: 10, Value: 5})
	s.Jump()

	if s.Phase != core.PhaseGameOver {
		t.Fatalf("Phase = %v, expected gameover", s.Phase)
	}
	if !s.Trigger() {
		t.Fatal("Trigger did not restart a finished run")
	}

	if s.Phase != core.PhasePlaying || s.Message != "" {
		t.Errorf("Phase/Message = %v/%q after restart", s.Phase, s.Message)
	}
	if s.Total != 0 || s.Score != 0 || s.Frame != 0 || s.ClearReady {
		t.Errorf("counters not reset: %s ready=%v", s, s.ClearReady)
	}
	if len(s.Items) != 0 || len(s.Obstacles) != 0 {
		t.Errorf("entities not cleared: items=%d obstacles=%d", len(s.Items), len(s.Obstacles))
	}
	if !s.Horse.OnGround || s.Horse.VY != 0 || s.Horse.Y != s.GroundY-s.Horse.H {
		t.Errorf("horse not reset: %+v", s.Horse)
	}
	if s.ItemSpawner.Timer != float64(s.Rules.Items.FirstSpawn) {
		t.Errorf("item timer = %v, expected %d", s.ItemSpawner.Timer, s.Rules.Items.FirstSpawn)
	}
}

func TestRestartRestoresStamina(t *testing.T) {
	s := newTestSession(t, config.DefaultStaminaRules(), "hiko")
	s.Stamina = 0.01
	s.Update()
	if !s.Restart() {
		t.Fatal("Restart refused after exhaustion")
	}
	if s.Stamina != 100 {
		t.Errorf("Stamina = %v, expected 100", s.Stamina)
	}
}

func TestTriggerWhilePlayingJumps(t *testing.T) {
	s := newTestSession(t, config.DefaultStaminaRules(), "hiko")
	if s.Trigger() {
		t.Error("Trigger restarted a running session")
	}
	if s.Horse.OnGround {
		t.Error("Trigger did not jump")
	}
	if s.Restart() {
		t.Error("Restart accepted while playing")
	}
}

func TestOffScreenEntitiesRemoved(t *testing.T) {
	s := newTestSession(t, config.DefaultGateRules(), "hiko")
	s.Items = append(s.Items, Entity{Kind: KindMoney, X: -25, W: 20, H: 20, Speed: 1, Value: 505})
	s.Obstacles = append(s.Obstacles,
		Entity{Kind: KindKadomatsu, X: -15, W: 20, H: 20, Speed: 6},
		Entity{Kind: KindKadomatsu, X: 500, Y: 0, W: 20, H: 20, Speed: 6},
	)
	s.Update()

	if len(s.Items) != 0 {
		t.Errorf("off-screen item kept: %+v", s.Items)
	}
	if len(s.Obstacles) != 1 {
		t.Errorf("obstacles = %d, expected 1", len(s.Obstacles))
	}
	if s.Score != 1 {
		t.Errorf("Score = %d, expected 1", s.Score)
	}
	if s.Total != 0 || !s.Playing() {
		t.Errorf("off-screen entity collided: %s", s)
	}
}

func TestGateDecidesRun(t *testing.T) {
	rules := config.DefaultGateRules()
	tests := []struct {
		name      string
		values    []int
		hit       Kind
		wantReady bool
		wantPhase core.Phase
		wantMsg   string
	}{
		{"exact at gate", []int{500, 5}, KindTorii, true, core.PhaseCleared, "ひこさん、ぴったりお年玉達成！今年もよろしくお願いします！"},
		{"short at gate", []int{500}, KindTorii, false, core.PhaseGameOver, rules.Messages.GateMismatch},
		{"overshoot flips ready", []int{500, 5, 5}, KindTorii, false, core.PhaseGameOver, rules.Messages.GateMismatch},
		{"large overshoot", []int{500, 5, 1000}, KindTorii, false, core.PhaseGameOver, rules.Messages.GateMismatch},
		{"crash while ready", []int{500, 5}, KindKadomatsu, true, core.PhaseGameOver, rules.Messages.Crash},
		{"fish", nil, KindTai, false, core.PhaseGameOver, rules.Messages.Crash},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t, rules, "hiko")
			for _, v := range tc.values {
				collect(s, KindMoney, v)
				if !s.Playing() {
					t.Fatalf("money pickup ended the run: %s", s)
				}
			}
			if s.ClearReady != tc.wantReady {
				t.Errorf("ClearReady = %v, expected %v", s.ClearReady, tc.wantReady)
			}

			collect(s, tc.hit, 0)
			if s.Phase != tc.wantPhase {
				t.Errorf("Phase = %v, expected %v", s.Phase, tc.wantPhase)
			}
			if s.Message != tc.wantMsg {
				t.Errorf("Message = %q, expected %q", s.Message, tc.wantMsg)
			}
		})
	}
}

func TestResizeKeepsRun(t *testing.T) {
	s := newTestSession(t, config.DefaultStaminaRules(), "hiko")
	collect(s, KindMoney, 100)
	s.Jump()
	s.Update()

	s.Resize(800, 480)
	if s.Total != 100 || !s.Playing() {
		t.Errorf("resize changed the run: %s", s)
	}
	if s.GroundY != 480*0.78 {
		t.Errorf("GroundY = %v, expected %v", s.GroundY, 480*0.78)
	}
	if s.Horse.X != 800*0.2 || math.Abs(s.Horse.Y+s.Horse.H-s.GroundY) > 1e-9 {
		t.Errorf("horse not re-anchored: %+v", s.Horse)
	}
}

func TestResizeKeepsJumpInProgress(t *testing.T) {
	s := newTestSession(t, config.DefaultStaminaRules(), "hiko")
	s.Jump()
	s.Update()
	vy, jumps := s.Horse.VY, s.Horse.JumpCount
	if vy >= 0 || jumps != 1 {
		t.Fatalf("horse not rising after a jump: %+v", s.Horse)
	}

	s.Resize(800, 480)
	if s.Horse.VY != vy || s.Horse.JumpCount != jumps || s.Horse.OnGround {
		t.Errorf("resize cancelled the jump: %+v", s.Horse)
	}

	// The jump carries on: the horse rises off the new ground line.
	s.Update()
	if s.Horse.Y+s.Horse.H >= s.GroundY {
		t.Errorf("horse did not leave the ground after resize: %+v", s.Horse)
	}
}

func TestStateSummary(t *testing.T) {
	s := newTestSession(t, config.DefaultStaminaRules(), "ume")
	collect(s, KindMoney, 50)

	st := s.State()
	if st.Total != 50 || st.Target != 880 || st.Frames != 1 || st.Phase != core.PhasePlaying {
		t.Errorf("State() = %+v", st)
	}
	if got := s.StaminaRatio(); math.Abs(got-0.9985) > 1e-9 {
		t.Errorf("StaminaRatio() = %v, expected 0.9985", got)
	}
}
