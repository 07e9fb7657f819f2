package engine

import (
	"fmt"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
)

// TieBreak decides a round-cap finish with equal survivor counts.
type TieBreak string

const (
	// TieBreakStarter awards the match to the side that opens every round.
	TieBreakStarter TieBreak = "starter"
	// TieBreakDraw ends the match without a winner.
	TieBreakDraw TieBreak = "draw"
)

// Rules holds the tunable constants of a match.
type Rules struct {
	MaxRounds          int      `json:"max_rounds" yaml:"max_rounds"`
	TieBreak           TieBreak `json:"tie_break" yaml:"tie_break"`
	GardenHoseCooldown int      `json:"garden_hose_cooldown" yaml:"garden_hose_cooldown"`
	RelocationCooldown int      `json:"relocation_cooldown" yaml:"relocation_cooldown"`
	SpyDroneCooldown   int      `json:"spy_drone_cooldown" yaml:"spy_drone_cooldown"`
	FenceCooldown      int      `json:"fence_shield_cooldown" yaml:"fence_shield_cooldown"`
	FertilizerCooldown int      `json:"fertilizer_cooldown" yaml:"fertilizer_cooldown"`
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		MaxRounds:          30,
		TieBreak:           TieBreakStarter,
		GardenHoseCooldown: 3,
		RelocationCooldown: 5,
		SpyDroneCooldown:   4,
		FenceCooldown:      6,
		FertilizerCooldown: 7,
	}
}

// Validate checks the rule set for impossible values.
func (r Rules) Validate() error {
	if r.MaxRounds < 1 {
		return fmt.Errorf("max_rounds must be positive, got %d", r.MaxRounds)
	}
	switch r.TieBreak {
	case TieBreakStarter, TieBreakDraw:
	default:
		return fmt.Errorf("unknown tie_break %q", r.TieBreak)
	}
	for name, v := range map[string]int{
		"garden_hose_cooldown":  r.GardenHoseCooldown,
		"relocation_cooldown":   r.RelocationCooldown,
		"spy_drone_cooldown":    r.SpyDroneCooldown,
		"fence_shield_cooldown": r.FenceCooldown,
		"fertilizer_cooldown":   r.FertilizerCooldown,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	return nil
}

// tier2Cooldown returns the cooldown of the chosen tier-2 power.
func (r Rules) tier2Cooldown(k game.Tier2Kind) int {
	switch k {
	case game.PowerSpyDrone:
		return r.SpyDroneCooldown
	case game.PowerFence:
		return r.FenceCooldown
	case game.PowerFertilizer:
		return r.FertilizerCooldown
	}
	return 0
}
