package engine

import (
	"fmt"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
)

// PowerState is one side's power economy. Cooldowns count completed rounds
// until the power is usable again.
type PowerState struct {
	GardenHoseCooldown int            `json:"garden_hose_cooldown"`
	GardenHoseActive   bool           `json:"garden_hose_active"`
	RelocationCooldown int            `json:"relocation_cooldown"`
	Tier2              game.Tier2Kind `json:"tier2"`
	Tier2Cooldown      int            `json:"tier2_cooldown"`
	// FenceProtected is the own cell shielded against the next attack.
	FenceProtected *game.Position `json:"fence_protected,omitempty"`
}

func (p PowerState) CanUseGardenHose() bool {
	return p.GardenHoseCooldown <= 0 && !p.GardenHoseActive
}

func (p PowerState) CanUseRelocation() bool { return p.RelocationCooldown <= 0 }

func (p PowerState) CanUseTier2() bool { return p.Tier2Cooldown <= 0 }

// DecrementCooldowns runs once per completed round.
func (p *PowerState) DecrementCooldowns() {
	p.GardenHoseCooldown = decrement(p.GardenHoseCooldown)
	p.RelocationCooldown = decrement(p.RelocationCooldown)
	p.Tier2Cooldown = decrement(p.Tier2Cooldown)
}

func decrement(v int) int {
	if v <= 1 {
		return 0
	}
	return v - 1
}

// shields reports whether the fence covers (row, col).
func (p *PowerState) shields(row, col int) bool {
	return p.FenceProtected != nil && p.FenceProtected.Row == row && p.FenceProtected.Col == col
}

// PowerParams carries the target of a power. Relocation uses the own cell
// plus Direction; Spy Drone centers on an enemy cell; Fence Shield and
// Fertilizer name an own cell.
type PowerParams struct {
	Row       int            `json:"row"`
	Col       int            `json:"col"`
	Direction game.Direction `json:"direction,omitempty"`
}

// PowerResult describes what an activation changed.
type PowerResult struct {
	Power game.PowerKind `json:"power"`
	// Revealed counts newly uncovered cells for Spy Drone.
	Revealed int        `json:"revealed,omitempty"`
	Unit     *game.Unit `json:"unit,omitempty"`
}

// ActivatePower spends one of side's powers. The turn owner may activate
// powers until the turn's attack is committed.
func (m *Match) ActivatePower(side game.Side, kind game.PowerKind, params PowerParams) (PowerResult, error) {
	if err := m.checkTurn(side); err != nil {
		return PowerResult{}, err
	}
	if m.attacked {
		return PowerResult{}, ErrAlreadyAttacked
	}
	ps := &m.powers[side]
	var res PowerResult
	var err error
	switch kind {
	case game.PowerGardenHose:
		res, err = m.activateGardenHose(ps)
	case game.PowerRelocation:
		res, err = m.activateRelocation(side, ps, params)
	case game.PowerSpyDrone, game.PowerFence, game.PowerFertilizer:
		if kind != ps.Tier2 {
			return PowerResult{}, fmt.Errorf("%w: %s was not chosen for this match", ErrUnknownPower, kind)
		}
		if !ps.CanUseTier2() {
			return PowerResult{}, fmt.Errorf("%w: %s ready in %d round(s)", ErrPowerOnCooldown, kind, ps.Tier2Cooldown)
		}
		res, err = m.activateTier2(side, ps, params)
	default:
		return PowerResult{}, fmt.Errorf("%w: %q", ErrUnknownPower, kind)
	}
	if err != nil {
		return PowerResult{}, err
	}
	res.Power = kind
	m.stats[side].PowersUsed++
	m.sink.RecordPowerUsage(PowerRecord{MatchID: m.id, Side: side, Power: kind, Round: m.round})
	return res, nil
}

func (m *Match) activateGardenHose(ps *PowerState) (PowerResult, error) {
	if ps.GardenHoseActive {
		return PowerResult{}, ErrPowerAlreadyActive
	}
	if !ps.CanUseGardenHose() {
		return PowerResult{}, fmt.Errorf("%w: garden hose ready in %d round(s)", ErrPowerOnCooldown, ps.GardenHoseCooldown)
	}
	ps.GardenHoseActive = true
	ps.GardenHoseCooldown = m.rules.GardenHoseCooldown
	return PowerResult{}, nil
}

func (m *Match) activateRelocation(side game.Side, ps *PowerState, params PowerParams) (PowerResult, error) {
	if !ps.CanUseRelocation() {
		return PowerResult{}, fmt.Errorf("%w: relocation ready in %d round(s)", ErrPowerOnCooldown, ps.RelocationCooldown)
	}
	u := m.board.UnitAt(side, params.Row, params.Col)
	if u == nil {
		return PowerResult{}, fmt.Errorf("%w: no unit at (%d,%d)", ErrNoTarget, params.Row, params.Col)
	}
	dr, dc, ok := params.Direction.Delta()
	if !ok {
		return PowerResult{}, fmt.Errorf("%w: unknown direction %q", ErrInvalidMove, params.Direction)
	}
	from := u.Pos()
	if err := m.board.MoveUnit(u, from.Row+dr, from.Col+dc); err != nil {
		return PowerResult{}, err
	}
	if ps.shields(from.Row, from.Col) {
		ps.FenceProtected = nil
	}
	ps.RelocationCooldown = m.rules.RelocationCooldown
	moved := *u
	return PowerResult{Unit: &moved}, nil
}

func (m *Match) activateTier2(side game.Side, ps *PowerState, params PowerParams) (PowerResult, error) {
	var res PowerResult
	switch ps.Tier2 {
	case game.PowerSpyDrone:
		if !(game.Position{Row: params.Row, Col: params.Col}).OnGrid() {
			return PowerResult{}, fmt.Errorf("%w: (%d,%d) is off the grid", ErrNoTarget, params.Row, params.Col)
		}
		enemy := side.Opponent()
		for r := params.Row - 1; r <= params.Row+1; r++ {
			for c := params.Col - 1; c <= params.Col+1; c++ {
				if m.board.Reveal(enemy, r, c) {
					res.Revealed++
				}
			}
		}
	case game.PowerFence:
		u := m.board.UnitAt(side, params.Row, params.Col)
		if u == nil {
			return PowerResult{}, fmt.Errorf("%w: no unit at (%d,%d)", ErrNoTarget, params.Row, params.Col)
		}
		p := u.Pos()
		ps.FenceProtected = &p
		shielded := *u
		res.Unit = &shielded
	case game.PowerFertilizer:
		u := m.board.UnitAt(side, params.Row, params.Col)
		if u == nil {
			return PowerResult{}, fmt.Errorf("%w: no unit at (%d,%d)", ErrNoTarget, params.Row, params.Col)
		}
		if u.Health >= game.StartingHealth {
			return PowerResult{}, ErrAlreadyFullHealth
		}
		u.Health = game.StartingHealth
		healed := *u
		res.Unit = &healed
	}
	ps.Tier2Cooldown = m.rules.tier2Cooldown(ps.Tier2)
	return res, nil
}
