package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return NewSQLiteRepository(db)
}

func TestGetOrCreatePlayer_Idempotent(t *testing.T) {
	repo := newTestRepo(t)

	p1, err := repo.GetOrCreatePlayer("  Rosa Maria ", false)
	require.NoError(t, err)
	require.NotZero(t, p1.ID)
	require.Equal(t, "Rosa Maria", p1.Name)

	p2, err := repo.GetOrCreatePlayer("rosa   maria", false)
	require.NoError(t, err)
	require.Equal(t, p1.ID, p2.ID)

	_, err = repo.GetOrCreatePlayer("   ", false)
	require.ErrorIs(t, err, ErrEmptyName)

	got, err := repo.GetPlayerByName("ROSA MARIA")
	require.NoError(t, err)
	require.Equal(t, p1.ID, got.ID)
}

func TestFinishMatch_CreditsPlayersOnce(t *testing.T) {
	repo := newTestRepo(t)
	alice, err := repo.GetOrCreatePlayer("alice", false)
	require.NoError(t, err)
	bot, err := repo.GetOrCreatePlayer("neighbor-bot", true)
	require.NoError(t, err)

	m := &game.Match{MatchKey: "k1", Mode: game.ModeSolo, Status: game.StatusInProgress, PlayerAID: alice.ID, PlayerBID: bot.ID, MaxRounds: 30, CurrentRound: 1}
	require.NoError(t, repo.CreateMatch(m))
	require.NoError(t, repo.UpdateMatchRound(m.ID, 4))

	require.NoError(t, repo.SaveMove(&game.Move{MatchID: m.ID, RoundNumber: 1, AttackingPlayerID: alice.ID, TargetRow: 2, TargetCol: 3, WasHit: true, AttackerChoice: 2, DefenderChoice: 2, Result: game.ResultDestroyed}))
	require.NoError(t, repo.SaveMove(&game.Move{MatchID: m.ID, RoundNumber: 1, AttackingPlayerID: bot.ID, AttackingSide: game.SideB, Result: game.ResultMissed}))
	require.NoError(t, repo.SavePowerUsage(&game.PowerUsage{MatchID: m.ID, PlayerID: alice.ID, PowerName: game.PowerGardenHose, UsedAtRound: 1}))

	res := MatchResult{
		MatchID:  m.ID,
		Outcome:  game.OutcomeSideAWins,
		WinnerID: &alice.ID,
		LoserID:  &bot.ID,
		Rounds:   5,
		Stats: []game.MatchStats{
			{PlayerID: alice.ID, TotalAttacks: 4, SuccessfulHits: 3, UnitsDestroyed: 7, PowersUsed: 1, AccuracyPercentage: 75},
			{PlayerID: bot.ID, TotalAttacks: 4},
		},
	}
	require.NoError(t, repo.FinishMatch(res))
	require.NoError(t, repo.FinishMatch(res))

	got, err := repo.GetMatchByKey("k1")
	require.NoError(t, err)
	require.Equal(t, game.StatusFinished, got.Status)
	require.Equal(t, game.OutcomeSideAWins, got.Outcome)
	require.Equal(t, 5, got.CurrentRound)
	require.NotNil(t, got.WinnerID)
	require.Equal(t, alice.ID, *got.WinnerID)
	require.NotNil(t, got.FinishedAt)

	a, err := repo.GetPlayerByName("alice")
	require.NoError(t, err)
	require.Equal(t, 1, a.TotalGames)
	require.Equal(t, 1, a.TotalWins)
	require.Equal(t, 0, a.TotalLosses)
	b, err := repo.GetPlayerByName("neighbor-bot")
	require.NoError(t, err)
	require.Equal(t, 1, b.TotalLosses)

	moves, err := repo.GetMoves(m.ID)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	require.Equal(t, game.ResultDestroyed, moves[0].Result)
	require.Equal(t, game.SideB, moves[1].AttackingSide)

	powers, err := repo.GetPowerUsages(m.ID)
	require.NoError(t, err)
	require.Len(t, powers, 1)

	stats, err := repo.GetMatchStats(m.ID)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	require.InDelta(t, 75.0, stats[0].AccuracyPercentage, 0.01)

	top, err := repo.GetTopPlayers(5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.Equal(t, "alice", top[0].Name)
}

func TestAbandonMatch(t *testing.T) {
	repo := newTestRepo(t)
	m := &game.Match{MatchKey: "k2", Status: game.StatusInProgress}
	require.NoError(t, repo.CreateMatch(m))
	require.NoError(t, repo.AbandonMatch(m.ID))

	got, err := repo.GetMatchByKey("k2")
	require.NoError(t, err)
	require.Equal(t, game.StatusAbandoned, got.Status)

	// finishing an abandoned match credits nobody
	require.NoError(t, repo.FinishMatch(MatchResult{MatchID: m.ID, Outcome: game.OutcomeDraw}))
	got, err = repo.GetMatchByKey("k2")
	require.NoError(t, err)
	require.Equal(t, game.StatusAbandoned, got.Status)
}

func TestOpenAndMigrate_AbandonsLeftovers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restart.db")
	db, err := OpenAndMigrate(path)
	require.NoError(t, err)
	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.CreateMatch(&game.Match{MatchKey: "left", Status: game.StatusInProgress}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	db, err = OpenAndMigrate(path)
	require.NoError(t, err)
	got, err := NewSQLiteRepository(db).GetMatchByKey("left")
	require.NoError(t, err)
	require.Equal(t, game.StatusAbandoned, got.Status)
}
