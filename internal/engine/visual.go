package engine

import "time"

// VisualStep is one timed transform the presentation layer applies to the
// affected cell. Steps run in order; none of them gate engine state.
type VisualStep struct {
	Effect   string        `json:"effect"` // translate_x | scale | rotate | alpha
	Value    float64       `json:"value"`
	Duration time.Duration `json:"duration"`
}

// shakeSteps alternates a horizontal offset and settles back to zero.
func shakeSteps(offset float64, swings int) []VisualStep {
	steps := make([]VisualStep, 0, swings+1)
	for i := 0; i < swings; i++ {
		v := -offset
		if i%2 == 1 {
			v = offset
		}
		steps = append(steps, VisualStep{Effect: "translate_x", Value: v, Duration: 50 * time.Millisecond})
	}
	return append(steps, VisualStep{Effect: "translate_x", Value: 0, Duration: 50 * time.Millisecond})
}

func pulseSteps(scale float64) []VisualStep {
	return []VisualStep{
		{Effect: "scale", Value: scale, Duration: 200 * time.Millisecond},
		{Effect: "scale", Value: 1, Duration: 200 * time.Millisecond},
	}
}

func damageSteps() []VisualStep {
	return []VisualStep{
		{Effect: "alpha", Value: 0.5, Duration: 200 * time.Millisecond},
		{Effect: "alpha", Value: 1, Duration: 200 * time.Millisecond},
	}
}

func destroySteps() []VisualStep {
	return []VisualStep{
		{Effect: "scale", Value: 0.5, Duration: 600 * time.Millisecond},
		{Effect: "alpha", Value: 0.5, Duration: 600 * time.Millisecond},
	}
}

// AbilitySteps returns the animation sequence for an ability trigger.
func AbilitySteps(kind AbilityKind) []VisualStep {
	switch kind {
	case AbilityRoseColor:
		return []VisualStep{
			{Effect: "rotate", Value: 360, Duration: 500 * time.Millisecond},
			{Effect: "scale", Value: 1.3, Duration: 500 * time.Millisecond},
			{Effect: "rotate", Value: 0, Duration: 0},
			{Effect: "scale", Value: 1, Duration: 200 * time.Millisecond},
		}
	case AbilityDogFear:
		return append(shakeSteps(15, 4), pulseSteps(1.4)...)
	case AbilityFearRepel:
		return shakeSteps(20, 2)
	case AbilityCatTeleport:
		return []VisualStep{
			{Effect: "scale", Value: 0.3, Duration: 0},
			{Effect: "scale", Value: 1, Duration: 400 * time.Millisecond},
		}
	}
	return nil
}

// IncomingAttackSteps is the shake played on a cell targeted by the AI.
func IncomingAttackSteps() []VisualStep { return shakeSteps(10, 3) }
