package engine

import (
	"fmt"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
)

// Opponent makes the computer player's choices.
type Opponent interface {
	// ChooseTarget returns an index into candidates, which is never empty.
	ChooseTarget(candidates []game.Unit, rng Rand) int
	// AttackPicks returns n distinct duel numbers.
	AttackPicks(n int, rng Rand) []int
	DefensePick(rng Rand) int
}

// RandomOpponent draws every choice uniformly.
type RandomOpponent struct{}

func (RandomOpponent) ChooseTarget(candidates []game.Unit, rng Rand) int {
	return rng.Intn(len(candidates))
}

func (RandomOpponent) AttackPicks(n int, rng Rand) []int { return randomDistinctPicks(rng, n) }

func (RandomOpponent) DefensePick(rng Rand) int { return RandomPick(rng) }

// aiTarget picks the unit the computer attacks on defender's board. Feared
// units are skipped while any other unit lives; when only feared units
// remain one is chosen and its fear is cleared.
func (m *Match) aiTarget(defender game.Side) (*game.Unit, error) {
	var calm, feared []*game.Unit
	for _, u := range m.board.LiveUnits(defender) {
		if u.FearActive {
			feared = append(feared, u)
		} else {
			calm = append(calm, u)
		}
	}
	pool, forced := calm, false
	if len(pool) == 0 {
		pool, forced = feared, true
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: side %s has no live units", ErrNoTarget, defender)
	}
	view := make([]game.Unit, len(pool))
	for i, u := range pool {
		view[i] = *u
	}
	idx := m.opp.ChooseTarget(view, m.rng)
	if idx < 0 || idx >= len(pool) {
		return nil, fmt.Errorf("%w: opponent chose index %d of %d", ErrNoTarget, idx, len(pool))
	}
	u := pool[idx]
	if forced {
		u.FearActive = false
	}
	return u, nil
}

// aiAttackPicks draws the computer's attacking picks and validates them.
func (m *Match) aiAttackPicks(n int) ([]int, error) {
	picks := m.opp.AttackPicks(n, m.rng)
	if err := ValidatePicks(picks, n); err != nil {
		return nil, err
	}
	return picks, nil
}

func (m *Match) aiDefensePick() (int, error) {
	p := m.opp.DefensePick(m.rng)
	if p < MinPick || p > MaxPick {
		return 0, fmt.Errorf("%w: defender pick %d", ErrInvalidPick, p)
	}
	return p, nil
}
