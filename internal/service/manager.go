// Package service hosts live matches: it builds engines for solo and
// networked play, persists what they emit and paces the computer opponent.
package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/logging"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/remote"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/storage"
)

// Options configures a Manager. Repo and Channel are optional.
type Options struct {
	Repo              storage.Repository
	Channel           remote.Channel
	Rules             engine.Rules
	AIDelay           time.Duration
	InactivityTimeout time.Duration
	// Opponent overrides the computer's choices, mainly for tests.
	Opponent engine.Opponent
	Now      func() time.Time
}

// Manager owns every live session of the process.
type Manager struct {
	repo     storage.Repository
	channel  remote.Channel
	rules    engine.Rules
	aiDelay  time.Duration
	timeout  time.Duration
	opponent engine.Opponent
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rules == (engine.Rules{}) {
		opts.Rules = engine.DefaultRules()
	}
	return &Manager{
		repo:     opts.Repo,
		channel:  opts.Channel,
		rules:    opts.Rules,
		aiDelay:  opts.AIDelay,
		timeout:  opts.InactivityTimeout,
		opponent: opts.Opponent,
		now:      opts.Now,
		sessions: make(map[string]*Session),
	}
}

// Session is one live match as seen from the side this process drives.
type Session struct {
	mu         sync.Mutex
	id         string
	mode       string
	local      game.Side
	room       string
	names      [2]string
	match      *engine.Match
	recorder   *engine.Recorder
	sink       *repoSink
	lastActive time.Time
	aiTimer    *time.Timer
	closed     bool
	// full marks a networked session whose side was taken by another peer.
	full bool

	// networked only
	setups    [2]*engine.Action
	lastSeq   int64
	seenDuels int
	unsub     func()
}

// State is what a client needs to render its session.
type State struct {
	MatchID  string            `json:"match_id"`
	Mode     string            `json:"mode"`
	RoomCode string            `json:"room_code,omitempty"`
	Side     game.Side         `json:"side"`
	Players  [2]string         `json:"players"`
	Ready    bool              `json:"ready"`
	View     *engine.MatchView `json:"view,omitempty"`
}

func (s *Session) state() State {
	st := State{MatchID: s.id, Mode: s.mode, RoomCode: s.room, Side: s.local, Players: s.names}
	if s.match != nil {
		v := s.match.Snapshot(s.local)
		st.Ready = true
		st.View = &v
	}
	return st
}

func (m *Manager) add(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.id] = s
}

func (m *Manager) get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return s, nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// State returns the session as its local side sees it.
func (m *Manager) State(id string) (State, error) {
	s, err := m.get(id)
	if err != nil {
		return State{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.full {
		return State{}, ErrRoomFull
	}
	return s.state(), nil
}

// Events returns the session's recorded events after seq.
func (m *Manager) Events(id string, since int) ([]engine.Event, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recorder.Since(since), nil
}

// Moves returns the persisted move log of a session.
func (m *Manager) Moves(id string) ([]game.Move, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	if m.repo == nil {
		return nil, ErrPersistence
	}
	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()
	if sink == nil {
		return []game.Move{}, nil
	}
	return m.repo.GetMoves(sink.matchID)
}

// Attack targets (row, col) on the opponent's garden.
func (m *Manager) Attack(id string, row, col int) (engine.AttackResult, error) {
	var res engine.AttackResult
	err := m.mutate(id, func(s *Session) (engine.Action, error) {
		var err error
		res, err = s.match.SubmitAttack(s.local, row, col)
		return engine.Action{Kind: engine.ActionAttack, TargetRow: row, TargetCol: col}, err
	})
	return res, err
}

// DuelPick submits the local side's numbers for the pending duel.
func (m *Manager) DuelPick(id string, picks []int) (engine.AttackResult, error) {
	var res engine.AttackResult
	err := m.mutate(id, func(s *Session) (engine.Action, error) {
		var err error
		res, err = s.match.SubmitDuelPick(s.local, picks...)
		return engine.Action{Kind: engine.ActionDuelPick, Picks: picks}, err
	})
	return res, err
}

// ActivatePower uses one of the local side's powers.
func (m *Manager) ActivatePower(id string, kind game.PowerKind, params engine.PowerParams) (engine.PowerResult, error) {
	var res engine.PowerResult
	err := m.mutate(id, func(s *Session) (engine.Action, error) {
		var err error
		res, err = s.match.ActivatePower(s.local, kind, params)
		return engine.Action{Kind: engine.ActionPower, Power: kind, Params: params}, err
	})
	return res, err
}

// Resign concedes the match for the local side.
func (m *Manager) Resign(id string) error {
	return m.mutate(id, func(s *Session) (engine.Action, error) {
		return engine.Action{Kind: engine.ActionResign}, s.match.Resign(s.local)
	})
}

// mutate runs op on a ready session under its lock, then publishes the
// resulting actions to the room outside of it.
func (m *Manager) mutate(id string, op func(*Session) (engine.Action, error)) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.full {
		s.mu.Unlock()
		return ErrRoomFull
	}
	if s.match == nil {
		s.mu.Unlock()
		return ErrMatchNotReady
	}
	s.lastActive = m.now()
	round := s.match.Round()
	a, err := op(s)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	var out []engine.Action
	if s.room != "" {
		a.Side = s.local
		a.Round = round
		a.Peer = s.id
		out = append(out, s.match.Describe(a))
		out = append(out, s.resolutions()...)
	}
	m.scheduleAI(s)
	room := s.room
	s.mu.Unlock()

	m.publish(room, out)
	return nil
}

func (m *Manager) publish(room string, out []engine.Action) {
	if room == "" || m.channel == nil {
		return
	}
	for _, a := range out {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := m.channel.Publish(ctx, room, a)
		cancel()
		if err != nil {
			logging.Error("failed to publish action", err, logging.Fields{
				constants.LogFieldRoomCode: room,
				constants.LogFieldAction:   string(a.Kind),
			})
		}
	}
}

// scheduleAI arms the pacing timer when the computer owns an open attack
// phase. Caller holds s.mu.
func (m *Manager) scheduleAI(s *Session) {
	if s.closed || s.aiTimer != nil || s.match == nil || s.match.Over() {
		return
	}
	if s.match.Phase() != engine.PhaseAttack || s.match.Controller(s.match.TurnOwner()) != engine.AI {
		return
	}
	s.aiTimer = time.AfterFunc(m.aiDelay, func() { m.playAI(s) })
}

func (m *Manager) playAI(s *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aiTimer = nil
	if s.closed {
		return
	}
	if _, err := s.match.PlayOpponentTurn(); err != nil {
		if !errors.Is(err, engine.ErrMatchOver) && !errors.Is(err, engine.ErrNotAIControlled) {
			logging.Error("computer turn failed", err, logging.Fields{constants.LogFieldMatchID: s.id})
		}
		return
	}
	m.scheduleAI(s)
}

// ExpireInactive closes sessions idle for longer than the inactivity
// timeout. Unfinished matches are marked abandoned and credit nobody.
func (m *Manager) ExpireInactive(now time.Time) int {
	if m.timeout <= 0 {
		return 0
	}
	m.mu.Lock()
	var idle []*Session
	for id, s := range m.sessions {
		s.mu.Lock()
		if now.Sub(s.lastActive) >= m.timeout {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
		s.mu.Unlock()
	}
	m.mu.Unlock()

	sort.Slice(idle, func(i, j int) bool { return idle[i].id < idle[j].id })
	for _, s := range idle {
		m.close(s)
	}
	return len(idle)
}

func (m *Manager) close(s *Session) {
	s.mu.Lock()
	s.closed = true
	if s.aiTimer != nil {
		s.aiTimer.Stop()
		s.aiTimer = nil
	}
	unsub := s.unsub
	s.unsub = nil
	running := s.match == nil || !s.match.Over()
	sink := s.sink
	room := s.room
	if s.full {
		room = ""
	}
	s.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	if d, ok := m.channel.(interface{ Drop(string) }); ok && room != "" {
		d.Drop(room)
	}
	if running && m.repo != nil && sink != nil {
		if err := m.repo.AbandonMatch(sink.matchID); err != nil {
			logging.Error("failed to abandon match", err, logging.Fields{constants.LogFieldMatchID: s.id})
		}
	}
	if running {
		logging.Info("Match ended due to inactivity", logging.Fields{constants.LogFieldMatchID: s.id, constants.LogFieldRoomCode: room})
	}
}

// Run expires idle sessions until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	if m.timeout <= 0 {
		return
	}
	every := m.timeout / 4
	if every < time.Second {
		every = time.Second
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := m.ExpireInactive(now); n > 0 {
				logging.Info("expired idle sessions", logging.Fields{constants.LogFieldCount: n})
			}
		}
	}
}

// Shutdown stops every session without touching persisted state.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range all {
		s.mu.Lock()
		s.closed = true
		if s.aiTimer != nil {
			s.aiTimer.Stop()
		}
		unsub := s.unsub
		s.mu.Unlock()
		if unsub != nil {
			unsub()
		}
	}
}
