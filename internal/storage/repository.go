package storage

import (
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
)

// MatchResult closes a match header and credits both players.
type MatchResult struct {
	MatchID  uint
	Status   string
	Outcome  game.Outcome
	WinnerID *uint
	LoserID  *uint
	Rounds   int
	Stats    []game.MatchStats
}

type Repository interface {
	// GetOrCreatePlayer returns the player whose canonical key matches name,
	// creating it when missing.
	GetOrCreatePlayer(name string, isAI bool) (*game.Player, error)
	GetPlayerByName(name string) (*game.Player, error)
	// Leaderboard
	GetTopPlayers(limit int) ([]game.Player, error)

	CreateMatch(m *game.Match) error
	GetMatchByKey(key string) (*game.Match, error)
	UpdateMatchRound(matchID uint, round int) error
	FinishMatch(res MatchResult) error
	// AbandonMatch marks an unfinished match abandoned without crediting
	// anyone.
	AbandonMatch(matchID uint) error
	// AbandonInProgress closes matches left running by a previous process.
	AbandonInProgress() (int64, error)

	SaveMove(mv *game.Move) error
	GetMoves(matchID uint) ([]game.Move, error)
	SavePowerUsage(pu *game.PowerUsage) error
	GetPowerUsages(matchID uint) ([]game.PowerUsage, error)
	GetMatchStats(matchID uint) ([]game.MatchStats, error)
}
