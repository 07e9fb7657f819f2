package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
)

var tier2Choices = []game.Tier2Kind{game.PowerSpyDrone, game.PowerFence, game.PowerFertilizer}

// newSeed draws a match seed from a fresh random UUID.
func newSeed() uint64 {
	u := uuid.New()
	var s uint64
	for _, b := range u[:8] {
		s = s<<8 | uint64(b)
	}
	return s
}

// placement rebuilds a requested placement as fresh units of side and
// checks it is exactly the default roster. An empty request gets a random
// placement.
func placement(rng engine.Rand, side game.Side, req []game.Unit) ([]game.Unit, error) {
	if len(req) == 0 {
		return engine.RandomPlacement(rng, side, game.DefaultRoster), nil
	}
	want := make(map[game.UnitType]int)
	for _, t := range game.DefaultRoster {
		want[t]++
	}
	out := make([]game.Unit, 0, len(req))
	for _, u := range req {
		if want[u.Type] == 0 {
			return nil, fmt.Errorf("%w: unexpected %q", engine.ErrInvalidPlacement, u.Type)
		}
		want[u.Type]--
		out = append(out, game.NewUnit(side, u.Type, u.Row, u.Col))
	}
	for t, n := range want {
		if n > 0 {
			return nil, fmt.Errorf("%w: missing %d %s", engine.ErrInvalidPlacement, n, t)
		}
	}
	// NewBoard repeats these checks for the whole match; failing here keeps
	// a bad placement out of the room log.
	if _, err := engine.NewBoard(out, out); err != nil {
		return nil, err
	}
	return out, nil
}

func checkTier2(k game.Tier2Kind) error {
	if !game.ValidTier2(k) {
		return fmt.Errorf("%w: tier-2 %q", engine.ErrUnknownPower, k)
	}
	return nil
}
