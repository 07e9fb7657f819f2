package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/logging"
)

// OpenAndMigrate opens the sqlite database and brings the schema up to
// date. Matches a previous process left running are closed as abandoned,
// since engine state lives only in memory.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&game.Player{}, &game.Match{}, &game.Move{}, &game.PowerUsage{}, &game.MatchStats{})
	if err != nil {
		return nil, err
	}

	n, err := NewSQLiteRepository(db).AbandonInProgress()
	if err != nil {
		return nil, err
	}
	if n > 0 {
		logging.Warn("abandoned matches left over from a previous run", logging.Fields{constants.LogFieldCount: n})
	}
	return db, nil
}
