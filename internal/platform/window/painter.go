// Package window is the desktop frontend. It runs a game on the ebiten loop
// and paints the game's display list onto the window.
package window

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/horse-dash/internal/draw"
)

// defaultTextSize is used for text commands without a size.
const defaultTextSize = 16

// maxCachedFaces bounds the face cache; text sizes follow the window size,
// so every resize brings new ones.
const maxCachedFaces = 32

// Painter replays a draw.List onto an ebiten image at 1 logical pixel per
// window pixel.
type Painter struct {
	white  *ebiten.Image
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// NewPainter creates a painter. Text is set in M+ 1p, which covers kana
// and kanji as well as ASCII.
func NewPainter() (*Painter, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.MPlus1pRegular_ttf))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Painter{
		source: src,
		faces:  make(map[float64]*text.GoTextFace),
	}, nil
}

// Paint draws every command of l onto dst, in order.
func (p *Painter) Paint(dst *ebiten.Image, l *draw.List) {
	for _, c := range l.Commands {
		clr := toNRGBA(c.Paint)
		switch c.Op {
		case draw.OpClear:
			dst.Fill(clr)
		case draw.OpFillRect:
			r := c.Rect
			vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
		case draw.OpStrokeRect:
			r := c.Rect
			vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), float32(c.Stroke), clr, false)
		case draw.OpLine:
			a, b := c.Points[0], c.Points[1]
			vector.StrokeLine(dst, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), float32(max(1, c.Stroke)), clr, true)
		case draw.OpTriangle:
			p.triangle(dst, c.Points, clr)
		case draw.OpText:
			p.text(dst, c, clr)
		case draw.OpDim:
			vector.DrawFilledRect(dst, 0, 0, float32(l.Width), float32(l.Height), clr, false)
		}
	}
}

func (p *Painter) triangle(dst *ebiten.Image, pts [3][2]float64, clr color.NRGBA) {
	if p.white == nil {
		base := ebiten.NewImage(3, 3)
		base.Fill(color.White)
		p.white = base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	r, g, b, a := float32(clr.R)/0xff, float32(clr.G)/0xff, float32(clr.B)/0xff, float32(clr.A)/0xff
	vs := make([]ebiten.Vertex, 3)
	for i, pt := range pts {
		vs[i] = ebiten.Vertex{
			DstX:   float32(pt[0]),
			DstY:   float32(pt[1]),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		}
	}
	dst.DrawTriangles(vs, []uint16{0, 1, 2}, p.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (p *Painter) text(dst *ebiten.Image, c draw.Command, clr color.NRGBA) {
	if c.Text == "" {
		return
	}
	face := p.face(c.Size)

	op := &text.DrawOptions{}
	op.GeoM.Translate(c.Points[0][0], textTop(c.Points[0][1], face))
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = primaryAlign(c.Align)
	text.Draw(dst, c.Text, face, op)
}

// face returns the face for a text size, creating it on first use.
func (p *Painter) face(size float64) *text.GoTextFace {
	if size <= 0 {
		size = defaultTextSize
	}
	if f, ok := p.faces[size]; ok {
		return f
	}
	if len(p.faces) >= maxCachedFaces {
		clear(p.faces)
	}
	f := &text.GoTextFace{Source: p.source, Size: size}
	p.faces[size] = f
	return f
}

// textTop converts a text command's baseline into the line top that
// text.Draw positions by.
func textTop(baseline float64, face text.Face) float64 {
	return baseline - face.Metrics().HAscent
}

func primaryAlign(a draw.Align) text.Align {
	switch a {
	case draw.AlignCenter:
		return text.AlignCenter
	case draw.AlignRight:
		return text.AlignEnd
	}
	return text.AlignStart
}

// toNRGBA converts a paint to a straight-alpha color.
func toNRGBA(p draw.Paint) color.NRGBA {
	return color.NRGBA{R: p.RGBA.R, G: p.RGBA.G, B: p.RGBA.B, A: p.RGBA.A}
}
