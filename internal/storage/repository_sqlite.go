package storage

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/keys"
)

// ErrEmptyName is returned when a player name has no visible characters.
var ErrEmptyName = errors.New("player name is empty")

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) GetOrCreatePlayer(name string, isAI bool) (*game.Player, error) {
	key := keys.PlayerKey(name)
	if key == "" {
		return nil, ErrEmptyName
	}
	p := game.Player{Key: key, Name: strings.TrimSpace(name), IsAI: isAI}
	// A concurrent insert of the same key loses the race silently and the
	// lookup below returns the winner's row.
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_key"}},
		DoNothing: true,
	}).Create(&p).Error; err != nil {
		return nil, err
	}
	var out game.Player
	if err := r.db.Where("player_key = ?", key).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sqliteRepository) GetPlayerByName(name string) (*game.Player, error) {
	var p game.Player
	if err := r.db.Where("player_key = ?", keys.PlayerKey(name)).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetTopPlayers returns top N players ordered by wins desc, then games desc.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.Player, error) {
	if limit <= 0 {
		limit = 10
	}
	var players []game.Player
	if err := r.db.Model(&game.Player{}).
		Where("is_ai = ?", false).
		Order("total_wins DESC").
		Order("total_games DESC").
		Limit(limit).
		Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (r *sqliteRepository) CreateMatch(m *game.Match) error {
	return r.db.Create(m).Error
}

func (r *sqliteRepository) GetMatchByKey(key string) (*game.Match, error) {
	var m game.Match
	if err := r.db.Where("match_key = ?", key).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *sqliteRepository) UpdateMatchRound(matchID uint, round int) error {
	return r.db.Model(&game.Match{}).Where("id = ?", matchID).Update("current_round", round).Error
}

func (r *sqliteRepository) FinishMatch(res MatchResult) error {
	status := res.Status
	if status == "" {
		status = game.StatusFinished
	}
	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		upd := tx.Model(&game.Match{}).
			Where("id = ? AND status = ?", res.MatchID, game.StatusInProgress).
			Updates(map[string]interface{}{
				"status":        status,
				"outcome":       res.Outcome,
				"winner_id":     res.WinnerID,
				"current_round": res.Rounds,
				"finished_at":   now,
			})
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			// already closed; credit nobody twice
			return nil
		}

		var m game.Match
		if err := tx.First(&m, res.MatchID).Error; err != nil {
			return err
		}
		for _, pid := range []uint{m.PlayerAID, m.PlayerBID} {
			if pid == 0 {
				continue
			}
			if err := tx.Model(&game.Player{}).Where("id = ?", pid).
				Update("total_games", gorm.Expr("total_games + ?", 1)).Error; err != nil {
				return err
			}
		}
		if res.WinnerID != nil {
			if err := tx.Model(&game.Player{}).Where("id = ?", *res.WinnerID).
				Update("total_wins", gorm.Expr("total_wins + ?", 1)).Error; err != nil {
				return err
			}
		}
		if res.LoserID != nil {
			if err := tx.Model(&game.Player{}).Where("id = ?", *res.LoserID).
				Update("total_losses", gorm.Expr("total_losses + ?", 1)).Error; err != nil {
				return err
			}
		}
		for i := range res.Stats {
			res.Stats[i].MatchID = res.MatchID
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "match_id"}, {Name: "player_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"total_attacks", "successful_hits", "units_destroyed", "powers_used", "accuracy_percentage"}),
			}).Create(&res.Stats[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sqliteRepository) AbandonMatch(matchID uint) error {
	now := time.Now()
	return r.db.Model(&game.Match{}).
		Where("id = ? AND status = ?", matchID, game.StatusInProgress).
		Updates(map[string]interface{}{"status": game.StatusAbandoned, "finished_at": now}).Error
}

func (r *sqliteRepository) AbandonInProgress() (int64, error) {
	now := time.Now()
	res := r.db.Model(&game.Match{}).
		Where("status = ?", game.StatusInProgress).
		Updates(map[string]interface{}{"status": game.StatusAbandoned, "finished_at": now})
	return res.RowsAffected, res.Error
}

func (r *sqliteRepository) SaveMove(mv *game.Move) error {
	return r.db.Create(mv).Error
}

func (r *sqliteRepository) GetMoves(matchID uint) ([]game.Move, error) {
	var moves []game.Move
	if err := r.db.Where("match_id = ?", matchID).Order("id ASC").Find(&moves).Error; err != nil {
		return nil, err
	}
	return moves, nil
}

func (r *sqliteRepository) SavePowerUsage(pu *game.PowerUsage) error {
	return r.db.Create(pu).Error
}

func (r *sqliteRepository) GetPowerUsages(matchID uint) ([]game.PowerUsage, error) {
	var out []game.PowerUsage
	if err := r.db.Where("match_id = ?", matchID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sqliteRepository) GetMatchStats(matchID uint) ([]game.MatchStats, error) {
	var out []game.MatchStats
	if err := r.db.Where("match_id = ?", matchID).Order("player_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
