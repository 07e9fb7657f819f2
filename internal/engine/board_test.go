package engine

import (
	"testing"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
	"github.com/stretchr/testify/require"
)

func TestNewBoard_RejectsBadPlacement(t *testing.T) {
	ok := roster(game.SideB)

	_, err := NewBoard([]game.Unit{
		game.NewUnit(game.SideA, game.Dog, 1, 1),
		game.NewUnit(game.SideA, game.Cat, 1, 1),
	}, ok)
	require.ErrorIs(t, err, ErrInvalidPlacement)

	_, err = NewBoard([]game.Unit{game.NewUnit(game.SideA, game.Dog, 8, 0)}, ok)
	require.ErrorIs(t, err, ErrInvalidPlacement)

	_, err = NewBoard([]game.Unit{{Type: "tulip"}}, ok)
	require.ErrorIs(t, err, ErrInvalidPlacement)

	_, err = NewBoard(nil, ok)
	require.ErrorIs(t, err, ErrInvalidPlacement)
}

func TestNewBoard_NormalizesUnits(t *testing.T) {
	b, err := NewBoard([]game.Unit{{Type: game.Rose, Row: 3, Col: 3, Side: game.SideB}}, roster(game.SideB))
	require.NoError(t, err)
	u := b.UnitAt(game.SideA, 3, 3)
	require.NotNil(t, u)
	require.Equal(t, game.SideA, u.Side)
	require.Equal(t, game.StartingHealth, u.Health)
	require.Equal(t, game.RoseRed, u.RoseColor)
}

func TestBoard_EmptyCellsAndMove(t *testing.T) {
	b, err := NewBoard(roster(game.SideA), roster(game.SideB))
	require.NoError(t, err)

	cells := b.EmptyCells(game.SideA, game.Position{Row: 7, Col: 7})
	require.Len(t, cells, 64-7-1)
	require.NotContains(t, cells, game.Position{Row: 0, Col: 0})
	require.NotContains(t, cells, game.Position{Row: 7, Col: 7})

	u := b.UnitAt(game.SideA, 0, 0)
	require.ErrorIs(t, b.MoveUnit(u, 0, 2), ErrInvalidMove)
	require.ErrorIs(t, b.MoveUnit(u, -1, 0), ErrInvalidMove)
	require.NoError(t, b.MoveUnit(u, 1, 0))
	require.Nil(t, b.UnitAt(game.SideA, 0, 0))
	require.Equal(t, game.Sunflower, b.UnitAt(game.SideA, 1, 0).Type)

	// destroyed units free their cell
	u.Health = 0
	require.Nil(t, b.UnitAt(game.SideA, 1, 0))
	require.Equal(t, 6, b.Alive(game.SideA))
	require.Len(t, b.LiveUnits(game.SideA), 6)
	require.Len(t, b.Units(game.SideA), 7)
}

func TestBoard_RevealOnce(t *testing.T) {
	b, err := NewBoard(roster(game.SideA), roster(game.SideB))
	require.NoError(t, err)
	require.False(t, b.Revealed(game.SideB, 2, 2))
	require.True(t, b.Reveal(game.SideB, 2, 2))
	require.False(t, b.Reveal(game.SideB, 2, 2))
	require.True(t, b.Revealed(game.SideB, 2, 2))
	require.False(t, b.Revealed(game.SideA, 2, 2))
	require.False(t, b.Reveal(game.SideB, -1, 2))
}

func TestRandomPlacement_DistinctCells(t *testing.T) {
	units := RandomPlacement(NewRand(3), game.SideB, game.DefaultRoster)
	require.Len(t, units, len(game.DefaultRoster))
	seen := map[game.Position]bool{}
	for _, u := range units {
		require.True(t, u.Pos().OnGrid())
		require.False(t, seen[u.Pos()])
		seen[u.Pos()] = true
		require.Equal(t, game.SideB, u.Side)
	}
	_, err := NewBoard(units, roster(game.SideB))
	require.NoError(t, err)
}

func TestBoard_ReplaceUnits(t *testing.T) {
	b, err := NewBoard(roster(game.SideA), roster(game.SideB))
	require.NoError(t, err)

	next := b.Units(game.SideB)
	next[0].Health = 1
	require.NoError(t, b.ReplaceUnits(game.SideB, next))
	require.Equal(t, 1, b.UnitAt(game.SideB, 0, 0).Health)

	require.ErrorIs(t, b.ReplaceUnits(game.SideB, next[:3]), ErrInvalidPlacement)
	next[1].Row, next[1].Col = next[0].Row, next[0].Col
	require.ErrorIs(t, b.ReplaceUnits(game.SideB, next), ErrInvalidPlacement)
}
