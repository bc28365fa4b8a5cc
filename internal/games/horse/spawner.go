package horse

import (
	"math"

	"github.com/vovakirdan/horse-dash/internal/config"
)

// Spawner is a frame-counted countdown that fires at zero and then rearms
// with a randomized interval.
type Spawner struct {
	Timer         float64
	first         float64
	intervalMin   float64
	intervalRange float64
}

// NewSpawner creates a spawner that fires after first frames.
func NewSpawner(first int, intervalMin, intervalRange float64) Spawner {
	return Spawner{
		Timer:         float64(first),
		first:         float64(first),
		intervalMin:   intervalMin,
		intervalRange: intervalRange,
	}
}

// Reset rearms the spawner with its first delay.
func (sp *Spawner) Reset() {
	sp.Timer = sp.first
}

// Tick counts one frame down and reports whether it fired. When it fires
// the caller spawns first, then calls Rearm, so spawn randomness is drawn
// before the interval randomness.
func (sp *Spawner) Tick() bool {
	sp.Timer--
	return sp.Timer <= 0
}

// Rearm sets the next randomized interval.
func (sp *Spawner) Rearm(rng Rand) {
	sp.Timer = sp.intervalMin + rng.Float64()*sp.intervalRange
}

// itemSize returns the size shared by all items.
func itemSize(rules config.ItemRules, fieldW, fieldH float64) (float64, float64) {
	return fieldW * rules.WidthRatio, fieldH * rules.HeightRatio
}

// scrollSpeed returns the leftward speed of everything that scrolls.
func scrollSpeed(rules config.ItemRules, fieldW float64) float64 {
	return fieldW*rules.SpeedRatio + rules.SpeedBase
}

// spawnItem creates a money or carrot item just past the right edge, at a
// random height within the horse's reach from the ground.
func spawnItem(s *Session) Entity {
	rules := s.Rules.Items
	w, h := itemSize(rules, s.FieldW, s.FieldH)
	y := s.GroundY - h - s.rng.Float64()*s.Horse.H

	kind := KindCarrot
	if s.rng.Float64() < rules.MoneyProbability {
		kind = KindMoney
	}
	value := 0
	if kind == KindMoney {
		value = rules.Values[s.rng.Intn(len(rules.Values))]
	}

	return Entity{
		Kind:  kind,
		X:     s.FieldW + w,
		Y:     y,
		W:     w,
		H:     h,
		Value: value,
		Speed: scrollSpeed(rules, s.FieldW),
	}
}

// pickObstacleKind draws a kind by weight.
func pickObstacleKind(rules config.ObstacleRules, rng Rand) config.ObstacleKindRules {
	total := rules.TotalWeight()
	n := rng.Intn(total)
	for _, k := range rules.Kinds {
		if k.Weight <= 0 {
			continue
		}
		if n < k.Weight {
			return k
		}
		n -= k.Weight
	}
	return rules.Kinds[len(rules.Kinds)-1]
}

// spawnObstacle creates a weighted-random obstacle just past the right edge.
// Ground obstacles stand on the ground, the shuttlecock flies at head
// height, and the fish swims around mid-height.
func spawnObstacle(s *Session) Entity {
	kr := pickObstacleKind(s.Rules.Obstacles, s.rng)
	w := s.FieldW * kr.WidthRatio
	h := s.FieldH * kr.HeightRatio

	e := Entity{
		Kind:  Kind(kr.Kind),
		X:     s.FieldW + w,
		W:     w,
		H:     h,
		Speed: scrollSpeed(s.Rules.Items, s.FieldW),
	}

	switch e.Kind {
	case KindHane:
		e.Y = s.GroundY - s.Horse.H*0.6 - h
	case KindTai:
		wave := &Wave{
			BaseY:     s.GroundY - s.Horse.H*0.5 - h/2,
			Amplitude: s.FieldH * s.Rules.Obstacles.WaveAmplitudeRatio,
			Frequency: s.Rules.Obstacles.WaveFrequency,
			Phase:     s.rng.Float64() * 2 * math.Pi,
			Floor:     s.GroundY - h,
		}
		e.Wave = wave
		e.Y = wave.At(0)
	default:
		e.Y = s.GroundY - h
	}
	return e
}
