package horse

import (
	"math"

	"github.com/vovakirdan/horse-dash/internal/core"
)

// Kind tags an entity.
type Kind string

// Entity kinds. Money and carrots are items, the rest are obstacles.
const (
	KindMoney     Kind = "money"
	KindCarrot    Kind = "carrot"
	KindKadomatsu Kind = "kadomatsu"
	KindHane      Kind = "hane"
	KindTai       Kind = "tai"
	KindTorii     Kind = "torii"
)

// IsItem reports whether the kind is a collectible.
func (k Kind) IsItem() bool {
	return k == KindMoney || k == KindCarrot
}

// Wave makes an entity swim up and down:
// y = BaseY + Amplitude*sin(Phase + Frequency*age), never below Floor.
type Wave struct {
	BaseY     float64
	Amplitude float64
	Frequency float64
	Phase     float64
	Floor     float64
}

// At returns the wave's top edge after age frames.
func (w Wave) At(age int) float64 {
	y := w.BaseY + w.Amplitude*math.Sin(w.Phase+w.Frequency*float64(age))
	return math.Min(y, w.Floor)
}

// Entity is a scrolling item or obstacle.
type Entity struct {
	Kind  Kind
	X, Y  float64
	W, H  float64
	Speed float64 // Leftward pixels per frame
	Value int     // Yen, money only
	Wave  *Wave   // Swimming obstacles only
	Age   int     // Frames since spawn
}

// Rect returns the collision rectangle.
func (e *Entity) Rect() core.RectF {
	return core.NewRectF(e.X, e.Y, e.W, e.H)
}

// Advance scrolls the entity one frame to the left.
func (e *Entity) Advance() {
	e.X -= e.Speed
	e.Age++
	if e.Wave != nil {
		e.Y = e.Wave.At(e.Age)
	}
}

// OffScreen reports whether the entity has fully left the field on the left.
func (e *Entity) OffScreen() bool {
	return e.X+e.W < 0
}
