// Package config provides YAML-based rulesets and the recipient table.
// Both game variants share one Rules type; the variant is just a named set
// of rule values.
package config

import (
	"errors"
	"fmt"
)

// Rules is the complete, configurable ruleset of one game variant.
type Rules struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`

	Field     FieldRules     `yaml:"field"`
	Horse     HorseRules     `yaml:"horse"`
	Stamina   StaminaRules   `yaml:"stamina"`
	Items     ItemRules      `yaml:"items"`
	Obstacles ObstacleRules  `yaml:"obstacles"`
	Messages  MessageRules   `yaml:"messages"`
	Overshoot OvershootRules `yaml:"overshoot"`
}

// FieldRules positions the ground relative to the field height.
type FieldRules struct {
	GroundRatio float64 `yaml:"ground_ratio"`
}

// HorseRules sizes the horse and its physics relative to the field.
type HorseRules struct {
	XRatio         float64 `yaml:"x_ratio"`
	WidthRatio     float64 `yaml:"width_ratio"`
	HeightRatio    float64 `yaml:"height_ratio"`
	MinSize        float64 `yaml:"min_size"`
	GravityRatio   float64 `yaml:"gravity_ratio"`
	JumpForceRatio float64 `yaml:"jump_force_ratio"`
	MaxJumps       int     `yaml:"max_jumps"` // 1 = only from the ground
}

// StaminaRules configures the depletable jump resource.
type StaminaRules struct {
	Enabled        bool    `yaml:"enabled"`
	Max            float64 `yaml:"max"`
	DecayPerFrame  float64 `yaml:"decay_per_frame"`
	JumpCost       float64 `yaml:"jump_cost"`
	CarrotRecovery float64 `yaml:"carrot_recovery"`
}

// ItemRules configures money and carrot spawning.
type ItemRules struct {
	WidthRatio       float64 `yaml:"width_ratio"`
	HeightRatio      float64 `yaml:"height_ratio"`
	SpeedRatio       float64 `yaml:"speed_ratio"`
	SpeedBase        float64 `yaml:"speed_base"`
	MoneyProbability float64 `yaml:"money_probability"`
	Values           []int   `yaml:"values"`
	FirstSpawn       int     `yaml:"first_spawn"`
	IntervalMin      float64 `yaml:"interval_min"`
	IntervalRange    float64 `yaml:"interval_range"`
}

// ObstacleKindRules sizes one obstacle kind relative to the field.
type ObstacleKindRules struct {
	Kind        string  `yaml:"kind"`
	Weight      int     `yaml:"weight"`
	WidthRatio  float64 `yaml:"width_ratio"`
	HeightRatio float64 `yaml:"height_ratio"`
}

// ObstacleRules configures scrolling obstacles and the gate.
type ObstacleRules struct {
	Enabled       bool                `yaml:"enabled"`
	Gate          string              `yaml:"gate"`
	FirstSpawn    int                 `yaml:"first_spawn"`
	IntervalMin   float64             `yaml:"interval_min"`
	IntervalRange float64             `yaml:"interval_range"`
	Kinds         []ObstacleKindRules `yaml:"kinds"`

	// Wave parameters of the swimming fish, relative to the field height
	// and in radians per frame.
	WaveAmplitudeRatio float64 `yaml:"wave_amplitude_ratio"`
	WaveFrequency      float64 `yaml:"wave_frequency"`
}

// OvershootRules decides when collecting more than the target ends the run.
type OvershootRules struct {
	// Deferred postpones the overshoot check until the gate is reached.
	Deferred bool `yaml:"deferred"`
}

// MessageRules holds the user-facing texts.
type MessageRules struct {
	Exhausted       string `yaml:"exhausted"`
	Overshoot       string `yaml:"overshoot"`
	Crash           string `yaml:"crash"`
	GateMismatch    string `yaml:"gate_mismatch"`
	GameOverTitle   string `yaml:"gameover_title"`
	ClearedTitle    string `yaml:"cleared_title"`
	Retry           string `yaml:"retry"`
	ClearedFallback string `yaml:"cleared_fallback"`
	Collected       string `yaml:"collected"` // fmt format with one %d
}

// Kind returns the rules for the named obstacle kind.
func (o ObstacleRules) Kind(kind string) (ObstacleKindRules, bool) {
	for _, k := range o.Kinds {
		if k.Kind == kind {
			return k, true
		}
	}
	return ObstacleKindRules{}, false
}

// TotalWeight sums the spawn weights of all obstacle kinds.
func (o ObstacleRules) TotalWeight() int {
	total := 0
	for _, k := range o.Kinds {
		if k.Weight > 0 {
			total += k.Weight
		}
	}
	return total
}

// Validate reports rule values the simulator cannot work with.
func (r Rules) Validate() error {
	var errs []error

	if r.Field.GroundRatio <= 0 || r.Field.GroundRatio > 1 {
		errs = append(errs, fmt.Errorf("field.ground_ratio %v out of (0, 1]", r.Field.GroundRatio))
	}
	if r.Horse.MaxJumps < 1 {
		errs = append(errs, fmt.Errorf("horse.max_jumps must be at least 1, got %d", r.Horse.MaxJumps))
	}
	if r.Horse.GravityRatio <= 0 {
		errs = append(errs, errors.New("horse.gravity_ratio must be positive"))
	}
	if r.Stamina.Enabled && r.Stamina.Max <= 0 {
		errs = append(errs, errors.New("stamina.max must be positive when stamina is enabled"))
	}
	if len(r.Items.Values) == 0 {
		errs = append(errs, errors.New("items.values must not be empty"))
	}
	if r.Items.MoneyProbability < 0 || r.Items.MoneyProbability > 1 {
		errs = append(errs, fmt.Errorf("items.money_probability %v out of [0, 1]", r.Items.MoneyProbability))
	}
	if r.Items.IntervalMin <= 0 {
		errs = append(errs, errors.New("items.interval_min must be positive"))
	}
	if r.Obstacles.Enabled {
		if r.Obstacles.TotalWeight() == 0 {
			errs = append(errs, errors.New("obstacles.kinds need a positive total weight"))
		}
		if r.Obstacles.IntervalMin <= 0 {
			errs = append(errs, errors.New("obstacles.interval_min must be positive"))
		}
		if r.Obstacles.Gate != "" {
			if _, ok := r.Obstacles.Kind(r.Obstacles.Gate); !ok {
				errs = append(errs, fmt.Errorf("obstacles.gate %q is not a listed kind", r.Obstacles.Gate))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid rules %q: %w", r.Name, errors.Join(errs...))
	}
	return nil
}
