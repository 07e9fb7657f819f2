package engine

import (
	"fmt"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
)

// Controller says who drives a side.
type Controller string

const (
	Human  Controller = "human"
	AI     Controller = "ai"
	Remote Controller = "remote"
)

// Phase is the turn controller's state.
type Phase string

const (
	PhaseAttack    Phase = "attack"
	PhaseDuel      Phase = "duel_pending"
	PhaseMatchOver Phase = "match_over"
)

// MatchConfig describes a match at battle start.
type MatchConfig struct {
	ID    string
	Rules Rules
	// Units holds each side's placement; an empty slot is filled with a
	// random placement of game.DefaultRoster.
	Units       [2][]game.Unit
	Tier2       [2]game.Tier2Kind
	Controllers [2]Controller
	// Starter opens every round.
	Starter  game.Side
	Seed     uint64
	Observer Observer
	Sink     Sink
	Opponent Opponent
	// AutoPlay runs AI turns as soon as they come up. Without it the caller
	// paces them through PlayOpponentTurn.
	AutoPlay bool
}

type pendingDuel struct {
	attacker      game.Side
	row, col      int
	picksRequired int
	attackerPicks []int
	defenderPick  int
}

func (d *pendingDuel) ready() bool {
	return d.attackerPicks != nil && d.defenderPick != 0
}

// AttackResult reports what an attack or pick submission did. Kind is empty
// while the duel still waits for picks.
type AttackResult struct {
	Attacker      game.Side       `json:"attacker"`
	Round         int             `json:"round"`
	Row           int             `json:"row"`
	Col           int             `json:"col"`
	Kind          game.ResultKind `json:"result,omitempty"`
	DuelPending   bool            `json:"duel_pending"`
	WasHit        bool            `json:"was_hit"`
	AttackerPicks []int           `json:"attacker_picks,omitempty"`
	DefenderPick  int             `json:"defender_pick,omitempty"`
	// Unit is the target after resolution.
	Unit *game.Unit `json:"unit,omitempty"`
}

// Match is one battle. It exclusively owns both boards and power states and
// is not safe for concurrent use.
type Match struct {
	id          string
	rules       Rules
	board       *Board
	powers      [2]PowerState
	controllers [2]Controller
	starter     game.Side
	rng         Rand
	obs         Observer
	sink        Sink
	opp         Opponent
	autoPlay    bool

	round     int
	turnOwner game.Side
	attacked  bool
	duel      *pendingDuel
	outcome   game.Outcome
	stats     [2]game.SideStats
	last      *AttackResult
	duels     int
}

// NewMatch validates cfg and opens round 1 with the starter's attack phase.
func NewMatch(cfg MatchConfig) (*Match, error) {
	if err := cfg.Rules.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Starter.Valid() {
		return nil, fmt.Errorf("invalid starting side %d", cfg.Starter)
	}
	m := &Match{
		id:          cfg.ID,
		rules:       cfg.Rules,
		controllers: cfg.Controllers,
		starter:     cfg.Starter,
		rng:         NewRand(cfg.Seed),
		obs:         cfg.Observer,
		sink:        cfg.Sink,
		opp:         cfg.Opponent,
		autoPlay:    cfg.AutoPlay,
		round:       1,
		turnOwner:   cfg.Starter,
		outcome:     game.OutcomeOngoing,
	}
	if m.obs == nil {
		m.obs = NopObserver{}
	}
	if m.sink == nil {
		m.sink = NopSink{}
	}
	if m.opp == nil {
		m.opp = RandomOpponent{}
	}
	for s := range m.controllers {
		switch m.controllers[s] {
		case "":
			m.controllers[s] = Human
		case Human, AI, Remote:
		default:
			return nil, fmt.Errorf("unknown controller %q", m.controllers[s])
		}
		if !game.ValidTier2(cfg.Tier2[s]) {
			return nil, fmt.Errorf("%w: tier-2 %q for side %s", ErrUnknownPower, cfg.Tier2[s], game.Side(s))
		}
		m.powers[s].Tier2 = cfg.Tier2[s]
	}
	units := cfg.Units
	for s := range units {
		if len(units[s]) == 0 {
			units[s] = RandomPlacement(m.rng, game.Side(s), game.DefaultRoster)
		}
	}
	b, err := NewBoard(units[game.SideA], units[game.SideB])
	if err != nil {
		return nil, err
	}
	m.board = b
	m.drive()
	return m, nil
}

func (m *Match) ID() string                        { return m.id }
func (m *Match) Round() int                        { return m.round }
func (m *Match) TurnOwner() game.Side              { return m.turnOwner }
func (m *Match) Starter() game.Side                { return m.starter }
func (m *Match) Outcome() game.Outcome             { return m.outcome }
func (m *Match) Rules() Rules                      { return m.rules }
func (m *Match) Controller(s game.Side) Controller { return m.controllers[s] }
func (m *Match) Stats(s game.Side) game.SideStats  { return m.stats[s] }
func (m *Match) Powers(s game.Side) PowerState     { return m.powers[s] }
func (m *Match) Units(s game.Side) []game.Unit     { return m.board.Units(s) }
func (m *Match) AttackedThisTurn() bool            { return m.attacked }
func (m *Match) Over() bool                        { return m.outcome != game.OutcomeOngoing }

// Phase returns the current controller state.
func (m *Match) Phase() Phase {
	switch {
	case m.Over():
		return PhaseMatchOver
	case m.duel != nil:
		return PhaseDuel
	}
	return PhaseAttack
}

// ResolvedDuels counts duels resolved so far.
func (m *Match) ResolvedDuels() int { return m.duels }

// LastResult returns the most recent attack result, if any.
func (m *Match) LastResult() (AttackResult, bool) {
	if m.last == nil {
		return AttackResult{}, false
	}
	return *m.last, true
}

func (m *Match) checkTurn(side game.Side) error {
	if m.Over() {
		return ErrMatchOver
	}
	if !side.Valid() || side != m.turnOwner {
		return ErrNotYourTurn
	}
	if m.duel != nil {
		return ErrDuelPending
	}
	return nil
}

// SubmitAttack targets (row, col) on the opponent's board. An empty cell is
// an immediate miss; an occupied one opens a duel.
func (m *Match) SubmitAttack(side game.Side, row, col int) (AttackResult, error) {
	if err := m.checkTurn(side); err != nil {
		return AttackResult{}, err
	}
	if m.attacked {
		return AttackResult{}, ErrAlreadyAttacked
	}
	if !(game.Position{Row: row, Col: col}).OnGrid() {
		return AttackResult{}, fmt.Errorf("%w: (%d,%d) is off the grid", ErrNoTarget, row, col)
	}
	res, err := m.attack(side, row, col)
	if err != nil {
		return AttackResult{}, err
	}
	m.drive()
	return res, nil
}

func (m *Match) attack(side game.Side, row, col int) (AttackResult, error) {
	defender := side.Opponent()
	target := m.board.UnitAt(defender, row, col)
	res := AttackResult{Attacker: side, Round: m.round, Row: row, Col: col}

	picks := 1
	if m.powers[side].GardenHoseActive {
		picks = 2
	}
	// AI numbers are drawn before any mutation.
	var aiPicks []int
	var aiDefense int
	if target != nil && !target.FearActive {
		var err error
		if m.controllers[side] == AI {
			if aiPicks, err = m.aiAttackPicks(picks); err != nil {
				return AttackResult{}, err
			}
		}
		if m.controllers[defender] == AI {
			if aiDefense, err = m.aiDefensePick(); err != nil {
				return AttackResult{}, err
			}
		}
	}

	m.board.Reveal(defender, row, col)
	switch {
	case target == nil:
		m.attacked = true
		m.stats[side].Attacks++
		res.Kind = game.ResultMissed
		m.obs.OnMiss(defender, row, col)
		m.recordMove(res)
		m.last = &res
		m.endTurn()
		return res, nil
	case target.FearActive:
		m.repel(target)
		res.Kind = game.ResultRepelled
		u := *target
		res.Unit = &u
		m.recordMove(res)
		m.last = &res
		return res, nil
	}

	m.attacked = true
	m.duel = &pendingDuel{attacker: side, row: row, col: col, picksRequired: picks, attackerPicks: aiPicks, defenderPick: aiDefense}
	res.DuelPending = true
	m.last = &res
	if m.duel.ready() {
		return m.resolve(), nil
	}
	return res, nil
}

// SubmitDuelPick records side's numbers for the pending duel. The attacker
// gives one pick, or two distinct picks under Garden Hose; the defender
// gives one. The duel resolves once both have picked.
func (m *Match) SubmitDuelPick(side game.Side, picks ...int) (AttackResult, error) {
	if m.Over() {
		return AttackResult{}, ErrMatchOver
	}
	d := m.duel
	if d == nil {
		return AttackResult{}, ErrNoDuelPending
	}
	switch side {
	case d.attacker:
		if d.attackerPicks != nil {
			return AttackResult{}, ErrPickSubmitted
		}
		if err := ValidatePicks(picks, d.picksRequired); err != nil {
			return AttackResult{}, err
		}
		d.attackerPicks = append([]int(nil), picks...)
	case d.attacker.Opponent():
		if d.defenderPick != 0 {
			return AttackResult{}, ErrPickSubmitted
		}
		if err := ValidatePicks(picks, 1); err != nil {
			return AttackResult{}, err
		}
		d.defenderPick = picks[0]
	default:
		return AttackResult{}, ErrNotYourTurn
	}
	if !d.ready() {
		return *m.last, nil
	}
	res := m.resolve()
	m.drive()
	return res, nil
}

// resolve applies a duel whose picks are all in.
func (m *Match) resolve() AttackResult {
	d := m.duel
	m.duel = nil
	m.duels++
	hit, err := ResolveDuel(d.attackerPicks, d.defenderPick)
	if err != nil {
		// picks are checked as they are submitted
		panic(fmt.Sprintf("engine: resolving unchecked duel picks: %v", err))
	}
	m.powers[d.attacker].GardenHoseActive = false

	res := AttackResult{
		Attacker:      d.attacker,
		Round:         m.round,
		Row:           d.row,
		Col:           d.col,
		WasHit:        hit,
		AttackerPicks: d.attackerPicks,
		DefenderPick:  d.defenderPick,
	}
	m.stats[d.attacker].Attacks++
	if hit {
		m.stats[d.attacker].Hits++
	}
	target := m.board.UnitAt(d.attacker.Opponent(), d.row, d.col)
	if target == nil {
		// The target left the cell while the duel was open; nothing to hit.
		res.Kind = game.ResultMissed
		m.obs.OnMiss(d.attacker.Opponent(), d.row, d.col)
	} else {
		res.Kind = m.strike(target, hit)
		u := *target
		res.Unit = &u
	}
	m.recordMove(res)
	m.last = &res

	if o := CheckTermination(m.board); o != game.OutcomeOngoing {
		m.finish(o)
		return res
	}
	m.endTurn()
	return res
}

func (m *Match) recordMove(res AttackResult) {
	m.sink.RecordMove(MoveRecord{
		MatchID:       m.id,
		Round:         res.Round,
		Attacker:      res.Attacker,
		Row:           res.Row,
		Col:           res.Col,
		WasHit:        res.WasHit,
		AttackerPicks: res.AttackerPicks,
		DefenderPick:  res.DefenderPick,
		Result:        res.Kind,
	})
}

// endTurn hands the attack phase to the other side. The round advances
// after the second attack of the pair and the cap is checked there.
func (m *Match) endTurn() {
	m.attacked = false
	if m.turnOwner != m.starter {
		m.round++
		for s := range m.powers {
			m.powers[s].DecrementCooldowns()
		}
		if m.round > m.rules.MaxRounds {
			m.finish(RoundCapOutcome(m.board, m.starter, m.rules.TieBreak))
			return
		}
	}
	m.turnOwner = m.turnOwner.Opponent()
	m.obs.OnTurnChanged(m.turnOwner, m.round)
}

func (m *Match) finish(o game.Outcome) {
	m.outcome = o
	m.duel = nil
	m.attacked = false
	m.obs.OnMatchOver(o, m.round)
	m.sink.RecordOutcome(OutcomeRecord{MatchID: m.id, Outcome: o, Rounds: m.round, Stats: m.stats})
}

// PlayOpponentTurn plays one computer turn for the current turn owner.
func (m *Match) PlayOpponentTurn() (AttackResult, error) {
	res, err := m.playAI()
	if err != nil {
		return AttackResult{}, err
	}
	m.drive()
	return res, nil
}

func (m *Match) playAI() (AttackResult, error) {
	if err := m.checkTurn(m.turnOwner); err != nil {
		return AttackResult{}, err
	}
	if m.controllers[m.turnOwner] != AI {
		return AttackResult{}, ErrNotAIControlled
	}
	if m.attacked {
		return AttackResult{}, ErrAlreadyAttacked
	}
	target, err := m.aiTarget(m.turnOwner.Opponent())
	if err != nil {
		return AttackResult{}, err
	}
	return m.attack(m.turnOwner, target.Row, target.Col)
}

// drive plays AI turns back to back when AutoPlay is on. It stops at a duel
// waiting on a human or remote pick.
func (m *Match) drive() {
	for m.autoPlay && !m.Over() && m.duel == nil && m.controllers[m.turnOwner] == AI {
		if _, err := m.playAI(); err != nil {
			return
		}
	}
}

// Resign ends the match in favour of side's opponent. A pending duel is
// dropped without being applied.
func (m *Match) Resign(side game.Side) error {
	if m.Over() {
		return ErrMatchOver
	}
	if !side.Valid() {
		return fmt.Errorf("invalid side %d", side)
	}
	m.finish(game.WinOutcome(side.Opponent()))
	return nil
}

// AwaitingPick reports whether side still owes a number to the pending duel.
func (m *Match) AwaitingPick(side game.Side) bool {
	d := m.duel
	if d == nil {
		return false
	}
	if side == d.attacker {
		return d.attackerPicks == nil
	}
	return d.defenderPick == 0
}
