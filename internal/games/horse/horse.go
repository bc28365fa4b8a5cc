// Package horse implements Horse Dash: a horse runs along the ground,
// jumps, and collects money until the total matches the recipient's target
// exactly. The stamina ruleset adds double jumps, stamina and carrots; the
// gate ruleset adds obstacles and a torii gate that decides the run.
package horse

import (
	"math"

	"github.com/vovakirdan/horse-dash/internal/config"
	"github.com/vovakirdan/horse-dash/internal/core"
)

// Rand is the random source used for spawning. *math/rand.Rand satisfies it;
// tests inject scripted sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Horse is the player character. Coordinates are logical pixels, y grows
// downward, and Y is the top edge.
type Horse struct {
	X, Y      float64
	W, H      float64
	VY        float64 // Vertical velocity, negative = up
	Gravity   float64
	JumpForce float64
	OnGround  bool
	JumpCount int
	MaxJumps  int
}

// NewHorse creates a horse standing on the ground, sized for the field.
func NewHorse(rules config.HorseRules, fieldW, fieldH, groundY float64) Horse {
	w := math.Max(rules.MinSize, fieldW*rules.WidthRatio)
	h := math.Max(rules.MinSize, fieldH*rules.HeightRatio)
	return Horse{
		X:         fieldW * rules.XRatio,
		Y:         groundY - h,
		W:         w,
		H:         h,
		Gravity:   fieldH * rules.GravityRatio,
		JumpForce: fieldH * rules.JumpForceRatio,
		OnGround:  true,
		MaxJumps:  rules.MaxJumps,
	}
}

// Rect returns the collision rectangle.
func (h *Horse) Rect() core.RectF {
	return core.NewRectF(h.X, h.Y, h.W, h.H)
}

// CanJump reports whether another jump is allowed by the jump count.
// A horse limited to one jump may only jump from the ground.
func (h *Horse) CanJump() bool {
	if h.MaxJumps <= 1 && !h.OnGround {
		return false
	}
	return h.JumpCount < h.MaxJumps
}

// Jump launches the horse upward. Callers check CanJump first.
func (h *Horse) Jump() {
	h.VY = -h.JumpForce
	h.OnGround = false
	h.JumpCount++
}

// Update integrates one frame of gravity and lands the horse on groundY.
func (h *Horse) Update(groundY float64) {
	h.VY += h.Gravity
	h.Y += h.VY

	if h.Y+h.H >= groundY {
		h.Land(groundY)
	}
}

// Land puts the horse on the ground and resets its jump state.
func (h *Horse) Land(groundY float64) {
	h.Y = groundY - h.H
	h.VY = 0
	h.OnGround = true
	h.JumpCount = 0
}

// ApexHeight returns how far above its take-off point a single jump
// carries the horse.
func (h *Horse) ApexHeight() float64 {
	if h.Gravity <= 0 {
		return 0
	}
	// Discrete integration: velocity is applied after gravity each frame.
	height := 0.0
	for v := -h.JumpForce + h.Gravity; v < 0; v += h.Gravity {
		height -= v
	}
	return height
}
