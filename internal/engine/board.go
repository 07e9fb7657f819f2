package engine

import (
	"fmt"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
)

// Board holds both sides' units and the fog-of-war mask. Each side has its
// own 8x8 garden; occupancy is always derived from the unit lists.
type Board struct {
	units [2][]game.Unit
	// revealed[s] marks cells of side s's garden the opponent has seen.
	revealed [2][game.BoardSize][game.BoardSize]bool
}

// NewBoard validates the placements and copies them into a fresh board.
func NewBoard(a, b []game.Unit) (*Board, error) {
	bd := &Board{}
	for side, units := range [2][]game.Unit{a, b} {
		s := game.Side(side)
		if len(units) == 0 {
			return nil, fmt.Errorf("%w: side %s has no units", ErrInvalidPlacement, s)
		}
		seen := make(map[game.Position]struct{}, len(units))
		list := make([]game.Unit, 0, len(units))
		for _, u := range units {
			if !u.Type.Valid() {
				return nil, fmt.Errorf("%w: unknown unit type %q", ErrInvalidPlacement, u.Type)
			}
			if !u.Pos().OnGrid() {
				return nil, fmt.Errorf("%w: %s %s off grid", ErrInvalidPlacement, u.Type, u.Pos())
			}
			if _, dup := seen[u.Pos()]; dup {
				return nil, fmt.Errorf("%w: two units at %s", ErrInvalidPlacement, u.Pos())
			}
			seen[u.Pos()] = struct{}{}
			u.Side = s
			if u.Health <= 0 || u.Health > game.StartingHealth {
				u.Health = game.StartingHealth
			}
			if u.Type == game.Rose && u.RoseColor == "" {
				u.RoseColor = game.RoseRed
			}
			list = append(list, u)
		}
		bd.units[side] = list
	}
	return bd, nil
}

// UnitAt returns the live unit of side at (row, col), or nil.
func (b *Board) UnitAt(side game.Side, row, col int) *game.Unit {
	list := b.units[side]
	for i := range list {
		if list[i].Alive() && list[i].Row == row && list[i].Col == col {
			return &list[i]
		}
	}
	return nil
}

// EmptyCells lists every cell of side's garden without a live unit, minus
// the excluded cell.
func (b *Board) EmptyCells(side game.Side, excluding game.Position) []game.Position {
	var occupied [game.BoardSize][game.BoardSize]bool
	for _, u := range b.units[side] {
		if u.Alive() {
			occupied[u.Row][u.Col] = true
		}
	}
	out := make([]game.Position, 0, game.BoardSize*game.BoardSize)
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			p := game.Position{Row: r, Col: c}
			if occupied[r][c] || p == excluding {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

// MoveUnit relocates u in place. The destination must be on the grid and
// free of live units of u's side.
func (b *Board) MoveUnit(u *game.Unit, row, col int) error {
	dest := game.Position{Row: row, Col: col}
	if !dest.OnGrid() {
		return fmt.Errorf("%w: %s is off the grid", ErrInvalidMove, dest)
	}
	if other := b.UnitAt(u.Side, row, col); other != nil && other != u {
		return fmt.Errorf("%w: %s is occupied", ErrInvalidMove, dest)
	}
	u.Row, u.Col = row, col
	return nil
}

// LiveUnits returns pointers to side's units that are still alive.
func (b *Board) LiveUnits(side game.Side) []*game.Unit {
	list := b.units[side]
	out := make([]*game.Unit, 0, len(list))
	for i := range list {
		if list[i].Alive() {
			out = append(out, &list[i])
		}
	}
	return out
}

// Alive counts side's live units.
func (b *Board) Alive(side game.Side) int {
	n := 0
	for _, u := range b.units[side] {
		if u.Alive() {
			n++
		}
	}
	return n
}

// Units returns a copy of side's unit list, destroyed units included.
func (b *Board) Units(side game.Side) []game.Unit {
	out := make([]game.Unit, len(b.units[side]))
	copy(out, b.units[side])
	return out
}

// Reveal marks a cell of side's garden as seen by the opponent. It reports
// whether the cell was hidden before.
func (b *Board) Reveal(side game.Side, row, col int) bool {
	if !(game.Position{Row: row, Col: col}).OnGrid() || b.revealed[side][row][col] {
		return false
	}
	b.revealed[side][row][col] = true
	return true
}

// Revealed reports whether the opponent has seen the cell.
func (b *Board) Revealed(side game.Side, row, col int) bool {
	if !(game.Position{Row: row, Col: col}).OnGrid() {
		return false
	}
	return b.revealed[side][row][col]
}

// RandomPlacement scatters roster over distinct random cells of a garden.
func RandomPlacement(rng Rand, side game.Side, roster []game.UnitType) []game.Unit {
	cells := rng.Perm(game.BoardSize * game.BoardSize)
	out := make([]game.Unit, 0, len(roster))
	for i, t := range roster {
		idx := cells[i]
		out = append(out, game.NewUnit(side, t, idx/game.BoardSize, idx%game.BoardSize))
	}
	return out
}

// ReplaceUnits overwrites side's unit list with an authoritative copy. The
// copy must hold the same number of units and respect placement rules.
func (b *Board) ReplaceUnits(side game.Side, units []game.Unit) error {
	if len(units) != len(b.units[side]) {
		return fmt.Errorf("%w: expected %d units, got %d", ErrInvalidPlacement, len(b.units[side]), len(units))
	}
	seen := make(map[game.Position]struct{}, len(units))
	list := make([]game.Unit, len(units))
	for i, u := range units {
		if !u.Type.Valid() || !u.Pos().OnGrid() || u.Health < 0 || u.Health > game.StartingHealth {
			return fmt.Errorf("%w: bad unit %s at %s", ErrInvalidPlacement, u.Type, u.Pos())
		}
		if u.Alive() {
			if _, dup := seen[u.Pos()]; dup {
				return fmt.Errorf("%w: two units at %s", ErrInvalidPlacement, u.Pos())
			}
			seen[u.Pos()] = struct{}{}
		}
		u.Side = side
		list[i] = u
	}
	b.units[side] = list
	return nil
}
