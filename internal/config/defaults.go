package config

import (
	_ "embed"
)

//go:embed defaults/stamina.yaml
var defaultStaminaYAML []byte

//go:embed defaults/gate.yaml
var defaultGateYAML []byte

//go:embed defaults/recipients.yaml
var defaultRecipientsYAML []byte

// Ruleset names.
const (
	RulesStamina = "stamina"
	RulesGate    = "gate"
)

func defaultMessages() MessageRules {
	return MessageRules{
		Exhausted:       "馬がバテてしまいました…。次は体力に気をつけて挑戦してみてください。",
		Overshoot:       "お金を集めすぎてしまいました…。また挑戦してみてください。",
		Crash:           "障害物にぶつかってしまいました…。",
		GateMismatch:    "鳥居に着いたけど金額がぴったりではありませんでした…。",
		GameOverTitle:   "GAME OVER",
		ClearedTitle:    "おつかれさまでした！",
		Retry:           "Tap or Press Space to Retry",
		ClearedFallback: "あけましておめでとうございます。今年もよろしくお願いします。",
		Collected:       "集めた金額: %d円",
	}
}

func defaultHorse(maxJumps int) HorseRules {
	return HorseRules{
		XRatio:         0.2,
		WidthRatio:     0.08,
		HeightRatio:    0.18,
		MinSize:        40,
		GravityRatio:   0.0025,
		JumpForceRatio: 0.04,
		MaxJumps:       maxJumps,
	}
}

func defaultItems(moneyProbability float64) ItemRules {
	return ItemRules{
		WidthRatio:       0.04,
		HeightRatio:      0.08,
		SpeedRatio:       0.004,
		SpeedBase:        3,
		MoneyProbability: moneyProbability,
		Values:           []int{5, 50, 100, 500, 1000},
		FirstSpawn:       90,
		IntervalMin:      80,
		IntervalRange:    120,
	}
}

// DefaultStaminaRules returns the stamina ruleset: double jump, decaying
// stamina, carrots, immediate overshoot.
func DefaultStaminaRules() Rules {
	return Rules{
		Name:  RulesStamina,
		Title: "Horse Dash",
		Field: FieldRules{GroundRatio: 0.78},
		Horse: defaultHorse(2),
		Stamina: StaminaRules{
			Enabled:        true,
			Max:            100,
			DecayPerFrame:  0.15,
			JumpCost:       2,
			CarrotRecovery: 20,
		},
		Items:    defaultItems(0.75),
		Messages: defaultMessages(),
	}
}

// DefaultGateRules returns the gate ruleset: ground-only jump, obstacles,
// win decided at the torii gate.
func DefaultGateRules() Rules {
	return Rules{
		Name:  RulesGate,
		Title: "Horse Dash - Torii Gate",
		Field: FieldRules{GroundRatio: 0.78},
		Horse: defaultHorse(1),
		Items: defaultItems(1.0),
		Obstacles: ObstacleRules{
			Enabled:            true,
			Gate:               "torii",
			FirstSpawn:         120,
			IntervalMin:        100,
			IntervalRange:      140,
			WaveAmplitudeRatio: 0.08,
			WaveFrequency:      0.08,
			Kinds: []ObstacleKindRules{
				{Kind: "kadomatsu", Weight: 4, WidthRatio: 0.05, HeightRatio: 0.14},
				{Kind: "hane", Weight: 3, WidthRatio: 0.03, HeightRatio: 0.05},
				{Kind: "tai", Weight: 3, WidthRatio: 0.07, HeightRatio: 0.07},
				{Kind: "torii", Weight: 1, WidthRatio: 0.1, HeightRatio: 0.4},
			},
		},
		Overshoot: OvershootRules{Deferred: true},
		Messages:  defaultMessages(),
	}
}

// DefaultRules returns the hard-coded ruleset for a name.
func DefaultRules(name string) (Rules, bool) {
	switch name {
	case RulesStamina:
		return DefaultStaminaRules(), true
	case RulesGate:
		return DefaultGateRules(), true
	default:
		return Rules{}, false
	}
}

// DefaultRecipients returns the built-in recipient table.
func DefaultRecipients() RecipientTable {
	return RecipientTable{
		Default: Recipient{
			Name:         "ゲスト",
			TargetAmount: 300,
			Message:      "ぴったり達成！素敵な一年をお過ごしください。",
		},
		Recipients: []Recipient{
			{
				ID:           "hiko",
				Name:         "ひこさん",
				TargetAmount: 505,
				Message:      "ひこさん、ぴったりお年玉達成！今年もよろしくお願いします！",
			},
			{
				ID:           "taro",
				Name:         "たろうさん",
				TargetAmount: 115,
				Message:      "たろうさん、見事ジャストです！新年の運試し大成功！",
			},
			{
				ID:           "ume",
				Name:         "梅子さん",
				TargetAmount: 880,
				Message:      "梅子さん、福を抱えて新しい年も駆け抜けましょう！",
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a ruleset or for
// "recipients".
func GetDefaultYAML(name string) []byte {
	switch name {
	case RulesStamina:
		return defaultStaminaYAML
	case RulesGate:
		return defaultGateYAML
	case "recipients":
		return defaultRecipientsYAML
	default:
		return nil
	}
}
