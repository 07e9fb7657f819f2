package engine

import "github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"

var roseColors = []game.RoseColor{game.RoseBlue, game.RoseWhite, game.RoseBlack}

// strike applies one landed attack to u. A hit is lethal; a miss grazes for
// one point. The fence is checked first, then damage, then abilities.
func (m *Match) strike(u *game.Unit, hit bool) game.ResultKind {
	defender := &m.powers[u.Side]
	if defender.shields(u.Row, u.Col) {
		defender.FenceProtected = nil
		m.obs.OnShieldAbsorbed(*u)
		return game.ResultDefended
	}
	if hit || u.Health <= 1 {
		return m.lethal(u)
	}
	u.Health--
	m.obs.OnUnitDamaged(*u)
	m.onDamaged(u)
	return game.ResultDamaged
}

// onDamaged runs the non-lethal triggers. Each unit fires at most once.
func (m *Match) onDamaged(u *game.Unit) {
	if u.AbilityUsed {
		return
	}
	switch u.Type {
	case game.Rose:
		u.RoseColor = roseColors[m.rng.Intn(len(roseColors))]
		u.AbilityUsed = true
		m.obs.OnAbilityTriggered(*u, AbilityRoseColor)
	case game.Dog:
		u.FearActive = true
		u.AbilityUsed = true
		m.obs.OnAbilityTriggered(*u, AbilityDogFear)
	}
}

// lethal destroys u unless an unused cat can escape to an empty cell.
func (m *Match) lethal(u *game.Unit) game.ResultKind {
	if u.Type == game.Cat && !u.AbilityUsed && m.teleport(u) {
		return game.ResultTeleported
	}
	from := u.Pos()
	u.Health = 0
	u.FearActive = false
	if ps := &m.powers[u.Side]; ps.shields(from.Row, from.Col) {
		ps.FenceProtected = nil
	}
	m.stats[u.Side.Opponent()].UnitsDestroyed++
	m.obs.OnUnitDestroyed(*u)
	return game.ResultDestroyed
}

// teleport moves the cat to a random empty cell of its garden at health 1.
// With no empty cell it fails and leaves the latch untouched.
func (m *Match) teleport(u *game.Unit) bool {
	from := u.Pos()
	cells := m.board.EmptyCells(u.Side, from)
	if len(cells) == 0 {
		return false
	}
	dest := cells[m.rng.Intn(len(cells))]
	if err := m.board.MoveUnit(u, dest.Row, dest.Col); err != nil {
		return false
	}
	u.Health = 1
	u.AbilityUsed = true
	if ps := &m.powers[u.Side]; ps.shields(from.Row, from.Col) {
		ps.FenceProtected = nil
	}
	m.board.Reveal(u.Side, dest.Row, dest.Col)
	m.obs.OnAbilityTriggered(*u, AbilityCatTeleport)
	return true
}

// repel handles an attack landing on a frightened dog: the fear breaks and
// nothing else happens.
func (m *Match) repel(u *game.Unit) {
	u.FearActive = false
	m.obs.OnAbilityTriggered(*u, AbilityFearRepel)
}
