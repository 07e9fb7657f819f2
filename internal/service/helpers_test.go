package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/keys"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/storage"
)

// mockRepo keeps rows in memory.
type mockRepo struct {
	mu      sync.Mutex
	players map[string]*game.Player
	matches map[uint]*game.Match
	moves   []game.Move
	powers  []game.PowerUsage
	results []storage.MatchResult
	rounds  map[uint]int
	nextID  uint
}

func newMockRepo() *mockRepo {
	return &mockRepo{players: map[string]*game.Player{}, matches: map[uint]*game.Match{}, rounds: map[uint]int{}}
}

func (r *mockRepo) id() uint { r.nextID++; return r.nextID }

func (r *mockRepo) GetOrCreatePlayer(name string, isAI bool) (*game.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := keys.PlayerKey(name)
	if k == "" {
		return nil, storage.ErrEmptyName
	}
	p, ok := r.players[k]
	if !ok {
		p = &game.Player{Key: k, Name: name, IsAI: isAI}
		p.ID = r.id()
		r.players[k] = p
	}
	cp := *p
	return &cp, nil
}

func (r *mockRepo) GetPlayerByName(name string) (*game.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[keys.PlayerKey(name)]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *p
	return &cp, nil
}

func (r *mockRepo) GetTopPlayers(limit int) ([]game.Player, error) { return nil, nil }

func (r *mockRepo) CreateMatch(m *game.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.id()
	cp := *m
	r.matches[m.ID] = &cp
	return nil
}

func (r *mockRepo) GetMatchByKey(key string) (*game.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.MatchKey == key {
			cp := *m
			return &cp, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *mockRepo) UpdateMatchRound(matchID uint, round int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rounds[matchID] = round
	return nil
}

func (r *mockRepo) FinishMatch(res storage.MatchResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.matches[res.MatchID]
	if m == nil || m.Status != game.StatusInProgress {
		return nil
	}
	m.Status = game.StatusFinished
	m.Outcome = res.Outcome
	m.WinnerID = res.WinnerID
	r.results = append(r.results, res)
	return nil
}

func (r *mockRepo) AbandonMatch(matchID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m := r.matches[matchID]; m != nil && m.Status == game.StatusInProgress {
		m.Status = game.StatusAbandoned
	}
	return nil
}

func (r *mockRepo) AbandonInProgress() (int64, error) { return 0, nil }

func (r *mockRepo) SaveMove(mv *game.Move) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	mv.ID = r.id()
	r.moves = append(r.moves, *mv)
	return nil
}

func (r *mockRepo) GetMoves(matchID uint) ([]game.Move, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []game.Move
	for _, mv := range r.moves {
		if mv.MatchID == matchID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (r *mockRepo) SavePowerUsage(pu *game.PowerUsage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.powers = append(r.powers, *pu)
	return nil
}

func (r *mockRepo) GetPowerUsages(matchID uint) ([]game.PowerUsage, error) { return nil, nil }
func (r *mockRepo) GetMatchStats(matchID uint) ([]game.MatchStats, error)  { return nil, nil }

func (r *mockRepo) match(key string) game.Match {
	m, _ := r.GetMatchByKey(key)
	if m == nil {
		return game.Match{}
	}
	return *m
}

// fixedOpponent always targets the first candidate and picks fixed numbers.
type fixedOpponent struct {
	attack  int
	defense int
}

func (o fixedOpponent) ChooseTarget([]game.Unit, engine.Rand) int { return 0 }
func (o fixedOpponent) AttackPicks(n int, _ engine.Rand) []int {
	out := []int{o.attack}
	for p := engine.MinPick; len(out) < n; p++ {
		if p != o.attack {
			out = append(out, p)
		}
	}
	return out
}
func (o fixedOpponent) DefensePick(engine.Rand) int { return o.defense }

func placementFor(side game.Side) []game.Unit {
	return []game.Unit{
		game.NewUnit(side, game.Sunflower, 0, 0),
		game.NewUnit(side, game.Sunflower, 0, 1),
		game.NewUnit(side, game.Sunflower, 0, 2),
		game.NewUnit(side, game.Rose, 1, 0),
		game.NewUnit(side, game.Rose, 1, 1),
		game.NewUnit(side, game.Dog, 2, 0),
		game.NewUnit(side, game.Cat, 3, 3),
	}
}

// units reads a side's unit list straight from the session's engine.
func units(t *testing.T, m *Manager, id string, side game.Side) []game.Unit {
	t.Helper()
	s, err := m.get(id)
	require.NoError(t, err)
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotNil(t, s.match)
	return s.match.Units(side)
}

func firstAlive(list []game.Unit) (game.Unit, bool) {
	for _, u := range list {
		if u.Alive() {
			return u, true
		}
	}
	return game.Unit{}, false
}
