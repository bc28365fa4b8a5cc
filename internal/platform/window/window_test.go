package window

import (
	"math"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/vovakirdan/horse-dash/internal/config"
	"github.com/vovakirdan/horse-dash/internal/core"
	"github.com/vovakirdan/horse-dash/internal/draw"
	"github.com/vovakirdan/horse-dash/internal/storage"
)

type stubGame struct {
	state    core.GameState
	finishAt int
	w, h     int
	resizes  int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.w, g.h = cfg.ScreenW, cfg.ScreenH
	g.state = core.GameState{Target: 115}
}

func (g *stubGame) Resize(w, h int) {
	g.w, g.h = w, h
	g.resizes++
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if g.state.GameOver() {
		if in.Has(core.ActionRestart) {
			g.state = core.GameState{Target: 115}
			return core.StepResult{State: g.state, Restarted: true}
		}
		return core.StepResult{State: g.state}
	}
	g.state.Frames++
	if g.state.Frames >= g.finishAt {
		g.state.Phase = core.PhaseCleared
		g.state.Total = 115
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *draw.List) { dst.Reset(float64(g.w), float64(g.h)) }
func (g *stubGame) State() core.GameState { return g.state }

func (g *stubGame) Recipient() config.Recipient {
	return config.Recipient{ID: "taro", Name: "たろうさん"}
}

// inputOf builds a frame with the given actions set.
func inputOf(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestPainterFaces(t *testing.T) {
	p, err := NewPainter()
	if err != nil {
		t.Fatalf("NewPainter() failed: %v", err)
	}

	f16 := p.face(16)
	if p.face(16) != f16 {
		t.Error("same size should reuse the cached face")
	}
	if p.face(0) != f16 {
		t.Error("size 0 should fall back to the default size")
	}
	if p.face(24) == f16 || p.face(24).Size != 24 {
		t.Error("a new size should get its own face")
	}

	for i := 0; i < maxCachedFaces*2; i++ {
		p.face(float64(100 + i))
	}
	if len(p.faces) > maxCachedFaces {
		t.Errorf("face cache holds %d faces, limit %d", len(p.faces), maxCachedFaces)
	}
}

func TestPainterSetsJapaneseText(t *testing.T) {
	p, err := NewPainter()
	if err != nil {
		t.Fatalf("NewPainter() failed: %v", err)
	}
	face := p.face(20)

	// Kana and kanji are full width in M+ 1p: about one em each.
	tests := []string{"お年玉", "ひこ", "円！"}
	for _, s := range tests {
		w, _ := text.Measure(s, face, 0)
		want := 20 * float64(utf8.RuneCountInString(s))
		if math.Abs(w-want) > want*0.15 {
			t.Errorf("Measure(%q) = %v, expected about %v", s, w, want)
		}
	}

	top := textTop(64, face)
	if top >= 64 || top < 64-20 {
		t.Errorf("textTop(64) = %v, expected within one size above the baseline", top)
	}
}

func TestPrimaryAlign(t *testing.T) {
	tests := []struct {
		in   draw.Align
		want text.Align
	}{
		{draw.AlignLeft, text.AlignStart},
		{draw.AlignCenter, text.AlignCenter},
		{draw.AlignRight, text.AlignEnd},
	}
	for _, tt := range tests {
		if got := primaryAlign(tt.in); got != tt.want {
			t.Errorf("primaryAlign(%v) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestCollectInput(t *testing.T) {
	pressed := func(keys ...ebiten.Key) func(ebiten.Key) bool {
		return func(k ebiten.Key) bool {
			for _, p := range keys {
				if p == k {
					return true
				}
			}
			return false
		}
	}

	frame := collectInput(pressed(ebiten.KeySpace, ebiten.KeyR), false)
	if !frame.Has(core.ActionJump) || !frame.Has(core.ActionRestart) || frame.Has(core.ActionPause) {
		t.Errorf("frame = %+v", frame.Actions)
	}

	frame = collectInput(pressed(), true)
	if !frame.Has(core.ActionJump) {
		t.Error("pointer press should jump")
	}

	frame = collectInput(pressed(ebiten.KeyEscape), false)
	if !frame.Has(core.ActionQuit) {
		t.Error("escape should quit")
	}
}

func TestAppSavesFinishedRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	game := &stubGame{finishAt: 2}
	app := NewApp(game, store, nil, core.RuntimeConfig{ScreenW: 640, ScreenH: 384, TickRate: 60})

	for i := 0; i < 5; i++ {
		app.step(core.NewInputFrame())
	}
	app.step(inputOf(core.ActionRestart))
	for i := 0; i < 5; i++ {
		app.step(core.NewInputFrame())
	}

	runs, err := store.RecentRuns("stub", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("saved %d runs, expected 2", len(runs))
	}
	if !runs[0].Cleared() || runs[0].RecipientID != "taro" {
		t.Errorf("saved run = %+v", runs[0])
	}
}

func TestAppLayoutResizes(t *testing.T) {
	game := &stubGame{finishAt: 100}
	app := NewApp(game, nil, nil, core.RuntimeConfig{ScreenW: 640, ScreenH: 384})

	if w, h := app.Layout(640, 384); w != 640 || h != 384 || game.resizes != 0 {
		t.Errorf("same size: Layout() = %dx%d, resizes = %d", w, h, game.resizes)
	}

	app.step(core.NewInputFrame())
	if w, h := app.Layout(800, 450); w != 800 || h != 450 {
		t.Errorf("Layout() = %dx%d, expected 800x450", w, h)
	}
	if game.w != 800 || game.h != 450 || game.resizes != 1 {
		t.Errorf("game field = %dx%d after %d resizes", game.w, game.h, game.resizes)
	}
	if game.state.Frames != 1 {
		t.Error("resize restarted the run")
	}

	app.Layout(0, 0)
	if game.resizes != 1 {
		t.Error("a zero-size layout should be ignored")
	}
}
