package draw

import (
	"math"

	"github.com/vovakirdan/horse-dash/internal/core"
)

// Default size of one terminal cell in logical pixels. Terminal cells are
// roughly twice as tall as they are wide.
const (
	CellW = 8
	CellH = 16
)

// Rasterizer replays a List onto a core.Screen, one cell per CellW x CellH
// block of logical pixels.
type Rasterizer struct {
	CellW float64
	CellH float64
}

// NewRasterizer returns a rasterizer with the default cell size.
func NewRasterizer() Rasterizer {
	return Rasterizer{CellW: CellW, CellH: CellH}
}

// FieldSize converts a terminal size in cells to a field size in logical pixels.
func (r Rasterizer) FieldSize(cols, rows int) (int, int) {
	return int(float64(cols) * r.CellW), int(float64(rows) * r.CellH)
}

// Rasterize draws l onto dst. dst is cleared first.
func (r Rasterizer) Rasterize(l *List, dst *core.Screen) {
	dst.Clear()
	for _, c := range l.Commands {
		switch c.Op {
		case OpClear:
			// The terminal background stays the terminal's own.
			dst.Clear()
		case OpFillRect:
			r.fillRect(dst, c)
		case OpStrokeRect:
			r.strokeRect(dst, c)
		case OpLine:
			r.line(dst, c)
		case OpTriangle:
			r.triangle(dst, c)
		case OpText:
			r.text(dst, c)
		case OpDim:
			dst.Dim(c.Paint.Cell)
		}
	}
}

// cellSpan returns the cells whose centers fall inside [lo, hi).
func cellSpan(lo, hi, size float64) (int, int) {
	first := int(math.Ceil(lo/size - 0.5))
	last := int(math.Ceil(hi/size-0.5)) - 1
	return first, last
}

// clipSpan limits the cell range [lo, hi] to a screen n cells across. A
// range entirely off the screen comes back empty.
func clipSpan(lo, hi, n int) (int, int) {
	if hi < 0 || lo >= n {
		return 0, -1
	}
	return core.Clamp(lo, 0, n-1), core.Clamp(hi, 0, n-1)
}

func (r Rasterizer) fillRect(dst *core.Screen, c Command) {
	glyph := c.Glyph
	if glyph == 0 {
		glyph = '█'
	}
	x0, x1 := cellSpan(c.Rect.X, c.Rect.Right(), r.CellW)
	y0, y1 := cellSpan(c.Rect.Y, c.Rect.Bottom(), r.CellH)

	// Shapes smaller than a cell still occupy the cell under their center.
	if x1 < x0 {
		x0 = int((c.Rect.X + c.Rect.W/2) / r.CellW)
		x1 = x0
	}
	if y1 < y0 {
		y0 = int((c.Rect.Y + c.Rect.H/2) / r.CellH)
		y1 = y0
	}
	x0, x1 = clipSpan(x0, x1, dst.Width())
	y0, y1 = clipSpan(y0, y1, dst.Height())

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dst.SetColor(x, y, glyph, c.Paint.Cell)
		}
	}
}

func (r Rasterizer) strokeRect(dst *core.Screen, c Command) {
	x0 := int(c.Rect.X / r.CellW)
	y0 := int(c.Rect.Y / r.CellH)
	x1 := int((c.Rect.Right() - 1) / r.CellW)
	y1 := int((c.Rect.Bottom() - 1) / r.CellH)
	if x1 <= x0 || y1 <= y0 {
		// Too thin for a box outline; draw it as a bar.
		dst.DrawHLine(x0, y0, x1-x0+1, '▭', c.Paint.Cell)
		return
	}
	dst.DrawBox(core.NewRect(x0, y0, x1-x0+1, y1-y0+1), c.Paint.Cell)
}

func (r Rasterizer) line(dst *core.Screen, c Command) {
	glyph := c.Glyph
	if glyph == 0 {
		glyph = '·'
	}
	ax, ay := c.Points[0][0]/r.CellW, c.Points[0][1]/r.CellH
	bx, by := c.Points[1][0]/r.CellW, c.Points[1][1]/r.CellH

	steps := int(math.Max(math.Abs(bx-ax), math.Abs(by-ay)))
	if steps == 0 {
		dst.SetColor(int(ax), int(ay), glyph, c.Paint.Cell)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := ax + (bx-ax)*t
		y := ay + (by-ay)*t
		dst.SetColor(int(x), int(y), glyph, c.Paint.Cell)
	}
}

func (r Rasterizer) triangle(dst *core.Screen, c Command) {
	glyph := c.Glyph
	if glyph == 0 {
		glyph = '▲'
	}
	p := c.Points
	minX := math.Min(p[0][0], math.Min(p[1][0], p[2][0]))
	maxX := math.Max(p[0][0], math.Max(p[1][0], p[2][0]))
	minY := math.Min(p[0][1], math.Min(p[1][1], p[2][1]))
	maxY := math.Max(p[0][1], math.Max(p[1][1], p[2][1]))

	x0, x1 := cellSpan(minX, maxX, r.CellW)
	y0, y1 := cellSpan(minY, maxY, r.CellH)
	x0, x1 = clipSpan(x0, x1, dst.Width())
	y0, y1 = clipSpan(y0, y1, dst.Height())

	painted := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cx := (float64(x) + 0.5) * r.CellW
			cy := (float64(y) + 0.5) * r.CellH
			if insideTriangle(cx, cy, p) {
				dst.SetColor(x, y, glyph, c.Paint.Cell)
				painted = true
			}
		}
	}
	if !painted {
		cx := (p[0][0] + p[1][0] + p[2][0]) / 3
		cy := (p[0][1] + p[1][1] + p[2][1]) / 3
		dst.SetColor(int(cx/r.CellW), int(cy/r.CellH), glyph, c.Paint.Cell)
	}
}

func insideTriangle(x, y float64, p [3][2]float64) bool {
	d1 := edgeSign(x, y, p[0], p[1])
	d2 := edgeSign(x, y, p[1], p[2])
	d3 := edgeSign(x, y, p[2], p[0])
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func edgeSign(x, y float64, a, b [2]float64) float64 {
	return (x-b[0])*(a[1]-b[1]) - (a[0]-b[0])*(y-b[1])
}

func (r Rasterizer) text(dst *core.Screen, c Command) {
	w := core.TextWidth(c.Text)
	col := int(c.Points[0][0] / r.CellW)
	switch c.Align {
	case AlignCenter:
		col -= w / 2
	case AlignRight:
		col -= w
	}
	// Text y is a baseline; the glyphs sit in the cell just above it.
	row := int(math.Ceil(c.Points[0][1]/r.CellH)) - 1
	if row < 0 {
		row = 0
	}
	dst.DrawTextColor(col, row, c.Text, c.Paint.Cell)
}
