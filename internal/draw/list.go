// Package draw defines the display list the renderer produces each frame.
// A List is a plain slice of drawing commands in logical-pixel coordinates;
// frontends replay it onto their surface (terminal cells or a window).
package draw

import (
	"image/color"

	"github.com/vovakirdan/horse-dash/internal/core"
)

// Op identifies the kind of drawing command.
type Op int

const (
	OpClear Op = iota
	OpFillRect
	OpStrokeRect
	OpLine
	OpTriangle
	OpText
	OpDim
)

// Align is the horizontal anchoring of a text command.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Paint pairs a true color with the terminal color used for cells.
type Paint struct {
	RGBA color.RGBA
	Cell core.Color
}

// Hex builds a Paint from a 0xRRGGBB value. The terminal color is picked
// from the palette unless given explicitly.
func Hex(rgb uint32, cell ...core.Color) Paint {
	c := color.RGBA{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 0xff,
	}
	p := Paint{RGBA: c, Cell: core.NearestColor(c)}
	if len(cell) > 0 {
		p.Cell = cell[0]
	}
	return p
}

// Alpha returns a copy of the paint with the given opacity (0..1).
func (p Paint) Alpha(a float64) Paint {
	p.RGBA.A = uint8(core.ClampF(a, 0, 1) * 0xff)
	return p
}

// Command is a single drawing operation. Which fields are meaningful depends
// on Op.
type Command struct {
	Op    Op
	Paint Paint

	// Rect is used by OpFillRect and OpStrokeRect.
	Rect core.RectF

	// Points holds the line endpoints (2) or triangle vertices (3).
	Points [3][2]float64

	// Stroke is the line width for OpStrokeRect and OpLine.
	Stroke float64

	// Glyph is the rune used when a filled shape is rasterized into cells.
	Glyph rune

	Text  string
	Size  float64 // Font size in logical pixels
	Align Align
}

// List is the display list for one frame.
type List struct {
	Width    float64
	Height   float64
	Commands []Command
}

// NewList creates an empty list for a width x height field.
func NewList(width, height float64) *List {
	return &List{Width: width, Height: height, Commands: make([]Command, 0, 64)}
}

// Reset empties the list for reuse, keeping its capacity.
func (l *List) Reset(width, height float64) {
	l.Width = width
	l.Height = height
	l.Commands = l.Commands[:0]
}

// Clear fills the whole field with the background paint.
func (l *List) Clear(p Paint) {
	l.Commands = append(l.Commands, Command{Op: OpClear, Paint: p})
}

// FillRect fills r. glyph is the cell rune used by the terminal rasterizer.
func (l *List) FillRect(r core.RectF, p Paint, glyph rune) {
	l.Commands = append(l.Commands, Command{Op: OpFillRect, Rect: r, Paint: p, Glyph: glyph})
}

// StrokeRect outlines r.
func (l *List) StrokeRect(r core.RectF, stroke float64, p Paint) {
	l.Commands = append(l.Commands, Command{Op: OpStrokeRect, Rect: r, Stroke: stroke, Paint: p})
}

// Line draws a straight line from (x0, y0) to (x1, y1).
func (l *List) Line(x0, y0, x1, y1, stroke float64, p Paint, glyph rune) {
	l.Commands = append(l.Commands, Command{
		Op:     OpLine,
		Points: [3][2]float64{{x0, y0}, {x1, y1}},
		Stroke: stroke,
		Paint:  p,
		Glyph:  glyph,
	})
}

// Triangle fills the triangle (a, b, c).
func (l *List) Triangle(a, b, c [2]float64, p Paint, glyph rune) {
	l.Commands = append(l.Commands, Command{
		Op:     OpTriangle,
		Points: [3][2]float64{a, b, c},
		Paint:  p,
		Glyph:  glyph,
	})
}

// Text draws text whose baseline starts (or centers, or ends) at (x, y).
func (l *List) Text(text string, x, y, size float64, align Align, p Paint) {
	l.Commands = append(l.Commands, Command{
		Op:     OpText,
		Points: [3][2]float64{{x, y}},
		Text:   text,
		Size:   size,
		Align:  align,
		Paint:  p,
	})
}

// Dim darkens everything drawn so far with a translucent full-field layer.
func (l *List) Dim(p Paint) {
	l.Commands = append(l.Commands, Command{Op: OpDim, Paint: p})
}

// Texts returns the text of every OpText command, in order.
func (l *List) Texts() []string {
	var out []string
	for _, c := range l.Commands {
		if c.Op == OpText {
			out = append(out, c.Text)
		}
	}
	return out
}
