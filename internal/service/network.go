package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/keys"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/logging"
)

// RoomRequest creates or joins a networked room. Code is read on join only.
type RoomRequest struct {
	Code  string         `json:"code,omitempty"`
	Name  string         `json:"name"`
	Tier2 game.Tier2Kind `json:"tier2"`
	Units []game.Unit    `json:"units,omitempty"`
}

func (m *Manager) setupAction(side game.Side, req RoomRequest) (engine.Action, error) {
	if m.channel == nil {
		return engine.Action{}, ErrRoomsDisabled
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return engine.Action{}, ErrNameRequired
	}
	if err := checkTier2(req.Tier2); err != nil {
		return engine.Action{}, err
	}
	units, err := placement(engine.NewRand(newSeed()), side, req.Units)
	if err != nil {
		return engine.Action{}, err
	}
	return engine.Action{Kind: engine.ActionSetup, Side: side, Name: name, Tier2: req.Tier2, Units: units}, nil
}

// CreateRoom opens a room under a fresh code and plays side A in it. The
// host's setup carries the seed and rules both copies run with.
func (m *Manager) CreateRoom(ctx context.Context, req RoomRequest) (State, error) {
	setup, err := m.setupAction(game.SideA, req)
	if err != nil {
		return State{}, err
	}
	code, err := keys.NewRoomCode()
	if err != nil {
		return State{}, err
	}
	if err := m.channel.Open(ctx, code); err != nil {
		return State{}, err
	}
	rules := m.rules
	setup.Seed = newSeed()
	setup.Rules = &rules
	return m.enterRoom(ctx, code, setup)
}

// JoinRoom enters an existing room as side B.
func (m *Manager) JoinRoom(ctx context.Context, req RoomRequest) (State, error) {
	code, ok := keys.NormalizeRoomCode(req.Code)
	if !ok {
		return State{}, ErrInvalidRoomCode
	}
	setup, err := m.setupAction(game.SideB, req)
	if err != nil {
		return State{}, err
	}
	if seats, ok := m.channel.(interface{ Seated(string, game.Side) bool }); ok && seats.Seated(code, game.SideB) {
		return State{}, ErrRoomFull
	}
	return m.enterRoom(ctx, code, setup)
}

func (m *Manager) enterRoom(ctx context.Context, code string, setup engine.Action) (State, error) {
	s := &Session{
		id:         uuid.NewString(),
		mode:       game.ModeMultiplayer,
		local:      setup.Side,
		room:       code,
		recorder:   &engine.Recorder{},
		lastActive: m.now(),
	}
	s.names[setup.Side] = setup.Name
	setup.Peer = s.id

	unsub, err := m.channel.Subscribe(code, func(a engine.Action) { m.receive(s, a) })
	if err != nil {
		return State{}, err
	}
	s.mu.Lock()
	s.unsub = unsub
	s.mu.Unlock()
	m.add(s)

	if err := m.channel.Publish(ctx, code, setup); err != nil {
		m.mu.Lock()
		delete(m.sessions, s.id)
		m.mu.Unlock()
		unsub()
		return State{}, err
	}
	logging.Info("entered room", logging.Fields{
		constants.LogFieldRoomCode: code,
		constants.LogFieldMatchID:  s.id,
		constants.LogFieldSide:     setup.Side.String(),
		constants.LogFieldPlayer:   setup.Name,
	})
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(), nil
}

// receive applies one entry of the room log. The first setup for a side
// seats its peer; actions for that side from any other peer are dropped.
func (m *Manager) receive(s *Session, a engine.Action) {
	s.mu.Lock()
	if s.closed || !a.Side.Valid() {
		s.mu.Unlock()
		return
	}
	if a.Seq != 0 {
		if a.Seq <= s.lastSeq {
			s.mu.Unlock()
			return
		}
		s.lastSeq = a.Seq
	}
	fields := logging.Fields{
		constants.LogFieldRoomCode: s.room,
		constants.LogFieldAction:   string(a.Kind),
		constants.LogFieldSide:     a.Side.String(),
	}

	var out []engine.Action
	switch {
	case a.Kind == engine.ActionSetup:
		m.seat(s, a, fields)
	case a.Side == s.local, s.full:
	case s.match == nil:
		logging.Warn("action arrived before both players joined", fields)
	case a.Peer != s.setups[a.Side].Peer:
		logging.Warn("dropped action from a player without a seat", fields)
	default:
		s.lastActive = m.now()
		if err := s.match.Apply(a); err != nil {
			logging.Warn("rejected remote action", logging.Fields{
				constants.LogFieldRoomCode: s.room,
				constants.LogFieldAction:   string(a.Kind),
				"error":                    err.Error(),
			})
		}
		out = s.resolutions()
	}
	room := s.room
	s.mu.Unlock()
	m.publish(room, out)
}

// seat records a setup. Caller holds s.mu.
func (m *Manager) seat(s *Session, a engine.Action, fields logging.Fields) {
	if s.setups[a.Side] != nil {
		if a.Side != s.local {
			logging.Warn("ignored setup for a taken seat", fields)
		}
		return
	}
	cp := a
	s.setups[a.Side] = &cp
	if a.Side == s.local && a.Peer != s.id {
		s.full = true
		logging.Warn("room already has a player on this side", fields)
		return
	}
	s.names[a.Side] = a.Name
	s.lastActive = m.now()
	if s.match == nil && s.setups[game.SideA] != nil && s.setups[game.SideB] != nil {
		if err := m.startNetworked(s); err != nil {
			logging.Error("failed to start networked match", err, fields)
		}
	}
}

// startNetworked builds the local copy once both setups are known. Caller
// holds s.mu.
func (m *Manager) startNetworked(s *Session) error {
	host, guest := s.setups[game.SideA], s.setups[game.SideB]
	rules := m.rules
	if host.Rules != nil {
		rules = *host.Rules
	}
	var controllers [2]engine.Controller
	controllers[s.local] = engine.Human
	controllers[s.local.Opponent()] = engine.Remote

	cfg := engine.MatchConfig{
		ID:          s.id,
		Rules:       rules,
		Units:       [2][]game.Unit{host.Units, guest.Units},
		Tier2:       [2]game.Tier2Kind{host.Tier2, guest.Tier2},
		Controllers: controllers,
		Starter:     game.SideA,
		Seed:        host.Seed,
		Observer:    s.recorder,
	}
	if m.repo != nil {
		s.sink = &repoSink{repo: m.repo, round: 1}
		cfg.Sink = s.sink
		cfg.Observer = engine.Observers(s.recorder, s.sink)
	}
	match, err := engine.NewMatch(cfg)
	if err != nil {
		return err
	}
	s.match = match
	if err := m.persist(s, [2]bool{}); err != nil {
		// the match still runs; it just is not recorded
		logging.Error("failed to persist networked match", err, logging.Fields{constants.LogFieldMatchID: s.id})
	}
	logging.Info("room ready", logging.Fields{
		constants.LogFieldRoomCode: s.room,
		constants.LogFieldMatchID:  s.id,
	})
	return nil
}

// resolutions returns the authoritative unit list the local side owes the
// room after one of its units was attacked. Caller holds s.mu.
func (s *Session) resolutions() []engine.Action {
	if s.match == nil || s.room == "" {
		return nil
	}
	n := s.match.ResolvedDuels()
	if n <= s.seenDuels {
		return nil
	}
	s.seenDuels = n
	last, ok := s.match.LastResult()
	if !ok || last.Attacker == s.local {
		return nil
	}
	a := s.match.ResolutionAction(s.local)
	a.Peer = s.id
	return []engine.Action{a}
}
