package engine

import (
	"testing"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
	"github.com/stretchr/testify/require"
)

// scriptedOpponent returns fixed choices.
type scriptedOpponent struct {
	attack  []int
	defense int
}

func (o scriptedOpponent) ChooseTarget(candidates []game.Unit, rng Rand) int { return 0 }
func (o scriptedOpponent) AttackPicks(n int, rng Rand) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = o.attack[i]
	}
	return out
}
func (o scriptedOpponent) DefensePick(rng Rand) int { return o.defense }

type recordingSink struct {
	moves    []MoveRecord
	powers   []PowerRecord
	outcomes []OutcomeRecord
}

func (s *recordingSink) RecordMove(r MoveRecord)        { s.moves = append(s.moves, r) }
func (s *recordingSink) RecordPowerUsage(r PowerRecord) { s.powers = append(s.powers, r) }
func (s *recordingSink) RecordOutcome(r OutcomeRecord)  { s.outcomes = append(s.outcomes, r) }

func roster(side game.Side) []game.Unit {
	return []game.Unit{
		game.NewUnit(side, game.Sunflower, 0, 0),
		game.NewUnit(side, game.Sunflower, 0, 2),
		game.NewUnit(side, game.Sunflower, 0, 4),
		game.NewUnit(side, game.Rose, 2, 0),
		game.NewUnit(side, game.Rose, 2, 2),
		game.NewUnit(side, game.Dog, 4, 4),
		game.NewUnit(side, game.Cat, 6, 6),
	}
}

func baseConfig() MatchConfig {
	return MatchConfig{
		ID:          "m1",
		Rules:       DefaultRules(),
		Units:       [2][]game.Unit{roster(game.SideA), roster(game.SideB)},
		Tier2:       [2]game.Tier2Kind{game.PowerFence, game.PowerFence},
		Controllers: [2]Controller{Human, Human},
		Starter:     game.SideA,
		Seed:        1,
	}
}

func newTestMatch(t *testing.T, mutate func(*MatchConfig)) *Match {
	t.Helper()
	cfg := baseConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := NewMatch(cfg)
	require.NoError(t, err)
	return m
}

// duel runs a full duel where the attacker picks a and the defender d.
func duel(t *testing.T, m *Match, attacker game.Side, row, col int, a []int, d int) AttackResult {
	t.Helper()
	res, err := m.SubmitAttack(attacker, row, col)
	require.NoError(t, err)
	require.True(t, res.DuelPending)
	_, err = m.SubmitDuelPick(attacker.Opponent(), d)
	require.NoError(t, err)
	res, err = m.SubmitDuelPick(attacker, a...)
	require.NoError(t, err)
	require.False(t, res.DuelPending)
	return res
}

// pass spends side's turn on an empty cell of the opponent's board.
func pass(t *testing.T, m *Match, side game.Side) {
	t.Helper()
	res, err := m.SubmitAttack(side, 7, 7)
	require.NoError(t, err)
	require.Equal(t, game.ResultMissed, res.Kind)
}
