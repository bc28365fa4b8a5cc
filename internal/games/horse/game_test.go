package horse

import (
	"testing"

	"github.com/vovakirdan/horse-dash/internal/config"
	"github.com/vovakirdan/horse-dash/internal/core"
	"github.com/vovakirdan/horse-dash/internal/registry"
)

func testRuntime(seed int64, recipient string) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	cfg.RecipientID = recipient
	return cfg
}

func newTestGame(rules config.Rules, seed int64, recipient string) *Game {
	g := New(rules, config.DefaultRecipients())
	g.Reset(testRuntime(seed, recipient))
	return g
}

// inputOf builds a frame with the given actions set.
func inputOf(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{config.RulesStamina, config.RulesGate} {
		if !registry.Exists(id) {
			t.Errorf("ruleset %q not registered", id)
		}
	}

	g, err := registry.Create(config.RulesGate, registry.Options{})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != config.RulesGate {
		t.Errorf("ID() = %q, expected %q", g.ID(), config.RulesGate)
	}
}

func TestGameDeterminism(t *testing.T) {
	for _, rules := range []config.Rules{config.DefaultStaminaRules(), config.DefaultGateRules()} {
		t.Run(rules.Name, func(t *testing.T) {
			g1 := newTestGame(rules, 12345, "hiko")
			g2 := newTestGame(rules, 12345, "hiko")

			for i := 0; i < 900; i++ {
				in := core.NewInputFrame()
				if i%25 == 0 {
					in.Set(core.ActionJump)
				}
				r1 := g1.Step(in)
				r2 := g2.Step(in)

				if r1 != r2 {
					t.Fatalf("tick %d: results differ: %+v vs %+v", i, r1, r2)
				}
				if r1.State.GameOver() {
					break
				}
			}

			s1, s2 := g1.Session(), g2.Session()
			if s1.String() != s2.String() || len(s1.Items) != len(s2.Items) || s1.Horse != s2.Horse {
				t.Errorf("sessions diverged:\n %s %+v\n %s %+v", s1, s1.Horse, s2, s2.Horse)
			}
		})
	}
}

func TestTotalNeverDecreasesWhilePlaying(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 99} {
		g := newTestGame(config.DefaultGateRules(), seed, "ume")
		prev := 0
		for i := 0; i < 3000; i++ {
			in := core.NewInputFrame()
			if i%30 == 0 {
				in.Set(core.ActionJump)
			}
			st := g.Step(in).State
			if st.Total < prev {
				t.Fatalf("seed %d tick %d: total went from %d to %d", seed, i, prev, st.Total)
			}
			prev = st.Total
			if st.GameOver() {
				break
			}
		}
	}
}

func TestGameResolvesRecipient(t *testing.T) {
	tests := []struct {
		id     string
		target int
	}{
		{"hiko", 505},
		{"taro", 115},
		{"", 300},
		{"stranger", 300},
	}

	for _, tc := range tests {
		g := newTestGame(config.DefaultStaminaRules(), 1, tc.id)
		if got := g.State().Target; got != tc.target {
			t.Errorf("recipient %q: Target = %d, expected %d", tc.id, got, tc.target)
		}
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(config.DefaultStaminaRules(), 1, "hiko")

	g.Step(inputOf(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("pause did not pause")
	}
	if g.State().Frames != 0 {
		t.Errorf("paused tick advanced: Frames = %d", g.State().Frames)
	}

	g.Step(inputOf(core.ActionJump))
	if !g.Session().Horse.OnGround || g.State().Frames != 0 {
		t.Error("paused game accepted a jump")
	}

	g.Step(inputOf(core.ActionPause))
	if g.State().Paused || g.State().Frames != 1 {
		t.Errorf("unpause: %+v", g.State())
	}
}

func TestGameRestartInputs(t *testing.T) {
	tests := []struct {
		name   string
		action core.Action
	}{
		{"jump trigger", core.ActionJump},
		{"restart key", core.ActionRestart},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(config.DefaultStaminaRules(), 1, "taro")
			s := g.Session()
			hold(s)
			collect(s, KindMoney, 500)
			if !g.State().GameOver() {
				t.Fatalf("expected a finished run, got %s", s)
			}

			res := g.Step(inputOf(tc.action))
			if !res.Restarted {
				t.Fatal("finished run was not restarted")
			}
			if res.State.Phase != core.PhasePlaying || res.State.Total != 0 || res.State.Frames != 0 {
				t.Errorf("state after restart = %+v", res.State)
			}
		})
	}
}

func TestRestartKeyIgnoredWhilePlaying(t *testing.T) {
	g := newTestGame(config.DefaultStaminaRules(), 1, "hiko")
	g.Step(core.NewInputFrame())

	res := g.Step(inputOf(core.ActionRestart))
	if res.Restarted || res.State.Frames != 2 {
		t.Errorf("restart key while playing: %+v", res)
	}
}

func TestGameResize(t *testing.T) {
	g := newTestGame(config.DefaultGateRules(), 1, "hiko")
	g.Step(core.NewInputFrame())
	g.Resize(320, 200)

	s := g.Session()
	if s.FieldW != 320 || s.FieldH != 200 {
		t.Errorf("field = %vx%v, expected 320x200", s.FieldW, s.FieldH)
	}
	if s.Frame != 1 {
		t.Errorf("resize restarted the run: Frame = %d", s.Frame)
	}
}
