package service

import (
	"strings"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/dedupe"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/keys"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/storage"
)

// AIPlayerName is the player row move records of the computer point at.
const AIPlayerName = "Neighbor Bot"

// registerPlayer returns the player row for name, collapsing concurrent
// registrations of the same canonical name into one insert.
func registerPlayer(repo storage.Repository, name string, isAI bool) (*game.Player, error) {
	key := keys.PlayerKey(name)
	if key == "" {
		return nil, ErrNameRequired
	}
	v, err, _ := dedupe.PlayerGroup.Do(dedupe.PlayerKey(key), func() (interface{}, error) {
		return repo.GetOrCreatePlayer(strings.TrimSpace(name), isAI)
	})
	if err != nil {
		return nil, err
	}
	p := *v.(*game.Player)
	return &p, nil
}
