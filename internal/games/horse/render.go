package horse

import (
	"fmt"
	"math"

	"github.com/vovakirdan/horse-dash/internal/core"
	"github.com/vovakirdan/horse-dash/internal/draw"
)

// Paints for the field. The second value is the terminal color, chosen for
// dark terminal backgrounds.
var (
	paintBackground = draw.Hex(0xfdf5e6, core.ColorDefault)
	paintGround     = draw.Hex(0xd35b1f, core.ColorOrange)
	paintHorseBody  = draw.Hex(0x5c4033, core.ColorBrown)
	paintHorseHead  = draw.Hex(0x333333, core.ColorGray)
	paintCarrot     = draw.Hex(0xff8c42, core.ColorOrange)
	paintLeaf       = draw.Hex(0x4caf50, core.ColorGreen)
	paintMoneyText  = draw.Hex(0xffffff, core.ColorBrightWhite)
	paintHUD        = draw.Hex(0x222222, core.ColorBrightWhite)
	paintStamina    = draw.Hex(0x4caf50, core.ColorBrightGreen)
	paintBamboo     = draw.Hex(0x2e7d32, core.ColorGreen)
	paintStraw      = draw.Hex(0xa1887f, core.ColorBrown)
	paintFeather    = draw.Hex(0xfafafa, core.ColorWhite)
	paintBead       = draw.Hex(0x212121, core.ColorGray)
	paintFish       = draw.Hex(0xe53935, core.ColorBrightRed)
	paintTorii      = draw.Hex(0xc62828, core.ColorRed)
	paintOverlay    = draw.Hex(0x000000, core.ColorDarkGray).Alpha(0.45)
	paintOverlayTxt = draw.Hex(0xffffff, core.ColorBrightWhite)
	paintReady      = draw.Hex(0xf4b400, core.ColorBrightYellow)

	moneyPaints = []draw.Paint{
		draw.Hex(0xf4b400, core.ColorYellow),
		draw.Hex(0xf0932b, core.ColorBrightYellow),
		draw.Hex(0xd35400, core.ColorOrange),
	}
)

// Render draws the session into l. It only reads the session.
func Render(s *Session, l *draw.List) {
	l.Reset(s.FieldW, s.FieldH)

	renderBackground(s, l)
	renderHorse(&s.Horse, l)
	for i := range s.Obstacles {
		renderObstacle(&s.Obstacles[i], l)
	}
	for i := range s.Items {
		renderItem(s, &s.Items[i], l)
	}
	renderHUD(s, l)

	switch s.Phase {
	case core.PhaseGameOver:
		msg := s.Message
		if msg == "" {
			msg = fmt.Sprintf(s.Rules.Messages.Collected, s.Total)
		}
		RenderOverlay(l, s.Rules.Messages.GameOverTitle, msg, s.Rules.Messages.Retry)
	case core.PhaseCleared:
		msg := s.Message
		if msg == "" {
			msg = s.Rules.Messages.ClearedFallback
		}
		RenderOverlay(l, s.Rules.Messages.ClearedTitle, msg)
	}
}

func renderBackground(s *Session, l *draw.List) {
	l.Clear(paintBackground)
	l.Line(0, s.GroundY+5, s.FieldW, s.GroundY+5, 4, paintGround, '═')
}

func renderHorse(h *Horse, l *draw.List) {
	l.FillRect(h.Rect(), paintHorseBody, '█')
	head := core.NewRectF(h.X+h.W*0.55, h.Y-h.H*0.35, h.W*0.35, h.H*0.35)
	l.FillRect(head, paintHorseHead, '▓')
}

func renderItem(s *Session, e *Entity, l *draw.List) {
	switch e.Kind {
	case KindMoney:
		l.FillRect(e.Rect(), moneyPaints[e.Value%len(moneyPaints)], '▒')
		size := math.Max(12, s.FieldH*0.03)
		l.Text(fmt.Sprint(e.Value), e.X+e.W/2, e.Y+e.H/2+size*0.35, size, draw.AlignCenter, paintMoneyText)
	case KindCarrot:
		l.Triangle(
			[2]float64{e.X, e.Y + e.H},
			[2]float64{e.X + e.W/2, e.Y},
			[2]float64{e.X + e.W, e.Y + e.H},
			paintCarrot, '▼',
		)
		leaf := core.NewRectF(e.X+e.W*0.35, e.Y-e.H*0.2, e.W*0.3, e.H*0.2)
		l.FillRect(leaf, paintLeaf, '♣')
	}
}

func renderObstacle(e *Entity, l *draw.List) {
	switch e.Kind {
	case KindKadomatsu:
		l.FillRect(core.NewRectF(e.X, e.Y, e.W, e.H*0.75), paintBamboo, '║')
		l.FillRect(core.NewRectF(e.X, e.Y+e.H*0.75, e.W, e.H*0.25), paintStraw, '▄')
	case KindHane:
		l.Triangle(
			[2]float64{e.X, e.Y},
			[2]float64{e.X + e.W, e.Y},
			[2]float64{e.X + e.W/2, e.Y + e.H*0.7},
			paintFeather, '▽',
		)
		l.FillRect(core.NewRectF(e.X+e.W*0.3, e.Y+e.H*0.6, e.W*0.4, e.H*0.4), paintBead, '●')
	case KindTai:
		l.FillRect(core.NewRectF(e.X, e.Y, e.W*0.75, e.H), paintFish, '█')
		l.Triangle(
			[2]float64{e.X + e.W*0.7, e.Y + e.H/2},
			[2]float64{e.X + e.W, e.Y},
			[2]float64{e.X + e.W, e.Y + e.H},
			paintFish, '◀',
		)
	case KindTorii:
		l.FillRect(core.NewRectF(e.X, e.Y, e.W, e.H*0.1), paintTorii, '▀')
		l.FillRect(core.NewRectF(e.X+e.W*0.08, e.Y+e.H*0.2, e.W*0.84, e.H*0.06), paintTorii, '─')
		l.FillRect(core.NewRectF(e.X+e.W*0.15, e.Y+e.H*0.1, e.W*0.15, e.H*0.9), paintTorii, '█')
		l.FillRect(core.NewRectF(e.X+e.W*0.7, e.Y+e.H*0.1, e.W*0.15, e.H*0.9), paintTorii, '█')
	default:
		l.FillRect(e.Rect(), paintHUD, '?')
	}
}

func renderHUD(s *Session, l *draw.List) {
	size := math.Max(16, s.FieldH*0.04)
	const margin = 24
	right := s.FieldW - margin

	l.Text("TO: "+s.Recipient.Name, margin, 40, size, draw.AlignLeft, paintHUD)
	l.Text(fmt.Sprintf("MONEY: %d円", s.Total), right, 40, size, draw.AlignRight, paintHUD)
	l.Text(fmt.Sprintf("TARGET: %d円", s.Target()), right, 80, size, draw.AlignRight, paintHUD)

	if s.Rules.Stamina.Enabled {
		ratio := s.StaminaRatio()
		l.Text(fmt.Sprintf("STAMINA: %d%%", int(math.Round(ratio*100))), right, 120, size, draw.AlignRight, paintHUD)

		barW := s.FieldW * 0.25
		bar := core.NewRectF(right-barW, 140, barW, 16)
		l.StrokeRect(bar, 2, paintHUD)
		if ratio > 0 {
			l.FillRect(core.NewRectF(bar.X, bar.Y, barW*ratio, bar.H), paintStamina, '■')
		}
	}

	if s.Rules.Obstacles.Enabled {
		y := 120.0
		if s.Rules.Stamina.Enabled {
			y = 200 // below the stamina bar
		}
		l.Text(fmt.Sprintf("SCORE: %d", s.Score), right, y, size, draw.AlignRight, paintHUD)
		if s.ClearReady {
			l.Text("TORII: READY", right, y+40, size, draw.AlignRight, paintReady)
		} else {
			l.Text("TORII: --", right, y+40, size, draw.AlignRight, paintHUD)
		}
	}
}

// RenderOverlay dims the field and draws a title with message lines
// centered on it.
func RenderOverlay(l *draw.List, title string, lines ...string) {
	l.Dim(paintOverlay)

	cx := l.Width / 2
	cy := l.Height / 2
	l.Text(title, cx, cy-60, math.Max(32, l.Height*0.07), draw.AlignCenter, paintOverlayTxt)

	size := math.Max(20, l.Height*0.04)
	for i, line := range lines {
		l.Text(line, cx, cy+float64(i)*32, size, draw.AlignCenter, paintOverlayTxt)
	}
}
