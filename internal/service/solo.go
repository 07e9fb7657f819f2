package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/logging"
)

// SoloRequest starts a match against the computer. Units may be left empty
// for a random placement; only type, row and col of each unit are read.
type SoloRequest struct {
	Name  string         `json:"name"`
	Tier2 game.Tier2Kind `json:"tier2"`
	Units []game.Unit    `json:"units,omitempty"`
	// Seed fixes every random draw of the match, the computer's hidden
	// placement included. Zero picks a fresh one; clients cannot set it.
	Seed uint64 `json:"-"`
}

// StartSolo opens a match where the caller plays side A against the
// computer on side B. The human always starts.
func (m *Manager) StartSolo(req SoloRequest) (State, error) {
	if strings.TrimSpace(req.Name) == "" {
		return State{}, ErrNameRequired
	}
	if err := checkTier2(req.Tier2); err != nil {
		return State{}, err
	}
	seed := req.Seed
	if seed == 0 {
		seed = newSeed()
	}
	rng := engine.NewRand(seed)
	units, err := placement(rng, game.SideA, req.Units)
	if err != nil {
		return State{}, err
	}
	aiTier2 := tier2Choices[rng.Intn(len(tier2Choices))]
	aiUnits := engine.RandomPlacement(rng, game.SideB, game.DefaultRoster)

	s := &Session{
		id:         uuid.NewString(),
		mode:       game.ModeSolo,
		local:      game.SideA,
		names:      [2]string{strings.TrimSpace(req.Name), AIPlayerName},
		recorder:   &engine.Recorder{},
		lastActive: m.now(),
	}
	cfg := engine.MatchConfig{
		ID:          s.id,
		Rules:       m.rules,
		Units:       [2][]game.Unit{units, aiUnits},
		Tier2:       [2]game.Tier2Kind{req.Tier2, aiTier2},
		Controllers: [2]engine.Controller{engine.Human, engine.AI},
		Starter:     game.SideA,
		Seed:        seed,
		Observer:    s.recorder,
		Opponent:    m.opponent,
		AutoPlay:    m.aiDelay <= 0,
	}
	if m.repo != nil {
		s.sink = &repoSink{repo: m.repo, round: 1}
		cfg.Sink = s.sink
		cfg.Observer = engine.Observers(s.recorder, s.sink)
	}
	match, err := engine.NewMatch(cfg)
	if err != nil {
		return State{}, err
	}
	s.match = match
	if err := m.persist(s, [2]bool{false, true}); err != nil {
		return State{}, err
	}

	m.add(s)
	logging.Info("solo match started", logging.Fields{
		constants.LogFieldMatchID: s.id,
		constants.LogFieldPlayer:  s.names[game.SideA],
	})
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(), nil
}

// persist registers both players and creates the match header the sink
// writes against. It is a no-op without a repository.
func (m *Manager) persist(s *Session, ai [2]bool) error {
	if s.sink == nil {
		return nil
	}
	var ids [2]uint
	for side, name := range s.names {
		p, err := registerPlayer(m.repo, name, ai[side])
		if err != nil {
			return err
		}
		ids[side] = p.ID
	}
	a, b := s.match.Powers(game.SideA), s.match.Powers(game.SideB)
	row := &game.Match{
		MatchKey:     s.id,
		RoomCode:     s.room,
		Mode:         s.mode,
		Status:       game.StatusInProgress,
		PlayerAID:    ids[game.SideA],
		PlayerBID:    ids[game.SideB],
		Tier2A:       a.Tier2,
		Tier2B:       b.Tier2,
		MaxRounds:    s.match.Rules().MaxRounds,
		CurrentRound: s.match.Round(),
	}
	if err := m.repo.CreateMatch(row); err != nil {
		return err
	}
	s.sink.players = ids
	s.sink.matchID = row.ID
	return nil
}
