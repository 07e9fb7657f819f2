package game

import (
	"time"

	"gorm.io/gorm"
)

// Match modes.
const (
	ModeSolo        = "solo_vs_ai"
	ModeMultiplayer = "multiplayer"
)

// Match statuses.
const (
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
	StatusAbandoned  = "abandoned"
)

// Player is a named participant, looked up by the canonical form of its
// name. AI opponents get their own row so move records can reference them
// like any other player.
type Player struct {
	gorm.Model
	Key         string `json:"-" gorm:"column:player_key;uniqueIndex"`
	Name        string `json:"name"`
	IsAI        bool   `json:"is_ai"`
	TotalGames  int    `json:"total_games"`
	TotalWins   int    `json:"total_wins"`
	TotalLosses int    `json:"total_losses"`
}

// Store participants under a descriptive table name.
func (Player) TableName() string { return "neighbor_players" }

// Match is the persisted header of one battle. The engine never reads it
// back while the battle runs.
type Match struct {
	gorm.Model
	MatchKey     string     `json:"match_key" gorm:"uniqueIndex"`
	RoomCode     string     `json:"room_code"`
	Mode         string     `json:"mode"`
	Status       string     `json:"status"`
	PlayerAID    uint       `json:"player_a_id"`
	PlayerBID    uint       `json:"player_b_id"`
	Tier2A       PowerKind  `json:"tier2_a"`
	Tier2B       PowerKind  `json:"tier2_b"`
	WinnerID     *uint      `json:"winner_id"`
	Outcome      Outcome    `json:"outcome"`
	CurrentRound int        `json:"current_round"`
	MaxRounds    int        `json:"max_rounds"`
	FinishedAt   *time.Time `json:"finished_at"`
}

func (Match) TableName() string { return "matches" }

// Move is one attack as emitted by the engine's persistence sink.
type Move struct {
	gorm.Model
	MatchID           uint       `json:"match_id" gorm:"index"`
	RoundNumber       int        `json:"round_number"`
	AttackingPlayerID uint       `json:"attacking_player_id"`
	AttackingSide     Side       `json:"attacking_side"`
	TargetRow         int        `json:"target_row"`
	TargetCol         int        `json:"target_col"`
	WasHit            bool       `json:"was_hit"`
	AttackerChoice    int        `json:"attacker_choice"`
	AttackerSecond    int        `json:"attacker_second_choice"`
	DefenderChoice    int        `json:"defender_choice"`
	Result            ResultKind `json:"result"`
}

func (Move) TableName() string { return "match_moves" }

// PowerUsage records one successful power activation.
type PowerUsage struct {
	gorm.Model
	MatchID     uint      `json:"match_id" gorm:"index"`
	PlayerID    uint      `json:"player_id"`
	PowerName   PowerKind `json:"power_name"`
	UsedAtRound int       `json:"used_at_round"`
}

func (PowerUsage) TableName() string { return "power_usages" }

// MatchStats holds the per-player aggregate counters of a finished match.
type MatchStats struct {
	gorm.Model
	MatchID            uint    `json:"match_id" gorm:"uniqueIndex:idx_match_stats_player"`
	PlayerID           uint    `json:"player_id" gorm:"uniqueIndex:idx_match_stats_player"`
	TotalAttacks       int     `json:"total_attacks"`
	SuccessfulHits     int     `json:"successful_hits"`
	UnitsDestroyed     int     `json:"units_destroyed"`
	PowersUsed         int     `json:"powers_used"`
	AccuracyPercentage float64 `json:"accuracy_percentage"`
}

func (MatchStats) TableName() string { return "match_stats" }
