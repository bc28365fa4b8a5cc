package core

import "image/color"

// Color represents a foreground color for a screen cell.
// Each value maps to an ANSI 256-color code in the terminal frontend.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBrown
	ColorDarkGray
	colorCount
)

// palette holds the approximate RGB value of each terminal color, used to
// map drawing-command colors onto cells.
var palette = [colorCount]color.RGBA{
	ColorDefault:       {0xd0, 0xd0, 0xd0, 0xff},
	ColorRed:           {0xcd, 0x00, 0x00, 0xff},
	ColorGreen:         {0x00, 0xcd, 0x00, 0xff},
	ColorYellow:        {0xcd, 0xcd, 0x00, 0xff},
	ColorBlue:          {0x00, 0x00, 0xee, 0xff},
	ColorMagenta:       {0xcd, 0x00, 0xcd, 0xff},
	ColorCyan:          {0x00, 0xcd, 0xcd, 0xff},
	ColorWhite:         {0xe5, 0xe5, 0xe5, 0xff},
	ColorBrightRed:     {0xff, 0x00, 0x00, 0xff},
	ColorBrightGreen:   {0x00, 0xff, 0x00, 0xff},
	ColorBrightYellow:  {0xff, 0xff, 0x00, 0xff},
	ColorBrightBlue:    {0x5c, 0x5c, 0xff, 0xff},
	ColorBrightMagenta: {0xff, 0x00, 0xff, 0xff},
	ColorBrightCyan:    {0x00, 0xff, 0xff, 0xff},
	ColorBrightWhite:   {0xff, 0xff, 0xff, 0xff},
	ColorOrange:        {0xff, 0x87, 0x00, 0xff},
	ColorGray:          {0x8a, 0x8a, 0x8a, 0xff},
	ColorBrown:         {0x87, 0x5f, 0x00, 0xff},
	ColorDarkGray:      {0x30, 0x30, 0x30, 0xff},
}

// RGBA returns the approximate RGB value of the color.
func (c Color) RGBA() color.RGBA {
	if c >= colorCount {
		return palette[ColorDefault]
	}
	return palette[c]
}

// NearestColor returns the palette color closest to c (squared RGB distance).
// ColorDefault is never chosen so explicit colors stay explicit.
func NearestColor(c color.RGBA) Color {
	best := ColorWhite
	bestDist := -1
	for i := ColorRed; i < colorCount; i++ {
		p := palette[i]
		dr := int(p.R) - int(c.R)
		dg := int(p.G) - int(c.G)
		db := int(p.B) - int(c.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
