package engine

import (
	"fmt"
	"reflect"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
)

// ActionKind tags a message exchanged between networked copies of a match.
type ActionKind string

const (
	ActionAttack   ActionKind = "attack"
	ActionDuelPick ActionKind = "duel_pick"
	ActionPower    ActionKind = "power"
	ActionResign   ActionKind = "resign"
	// ActionSetup announces a player's placement and tier-2 choice before
	// battle. The host's setup also carries the shared seed.
	ActionSetup ActionKind = "setup"
	// ActionResolution carries the defending side's units after an attack.
	// It comes from the owner of those units and wins any disagreement.
	ActionResolution ActionKind = "resolution"
)

// Action is one entry of the room's action log. It mirrors the move record
// and adds the turn owner and duel flag after the action.
type Action struct {
	Seq         int64           `json:"seq"`
	Kind        ActionKind      `json:"type"`
	Side        game.Side       `json:"player"`
	Round       int             `json:"round"`
	TargetRow   int             `json:"targetRow"`
	TargetCol   int             `json:"targetCol"`
	Picks       []int           `json:"picks,omitempty"`
	Power       game.PowerKind  `json:"power,omitempty"`
	Params      PowerParams     `json:"params,omitempty"`
	WasHit      bool            `json:"wasHit"`
	Result      game.ResultKind `json:"result,omitempty"`
	TurnOwner   game.Side       `json:"currentTurn"`
	DuelPending bool            `json:"duelPending"`
	Units       []game.Unit     `json:"units,omitempty"`
	Name        string          `json:"name,omitempty"`
	Seed        uint64          `json:"seed,omitempty"`
	Tier2       game.Tier2Kind  `json:"tier2,omitempty"`
	Rules       *Rules          `json:"rules,omitempty"`
	// Peer identifies the session that published the action. Only the peer
	// whose setup took a side may act for it.
	Peer        string          `json:"peer,omitempty"`
	Timestamp   int64           `json:"timestamp"`
}

// Apply replays an action produced by the other copy of the match.
func (m *Match) Apply(a Action) error {
	var err error
	switch a.Kind {
	case ActionAttack:
		_, err = m.SubmitAttack(a.Side, a.TargetRow, a.TargetCol)
	case ActionDuelPick:
		_, err = m.SubmitDuelPick(a.Side, a.Picks...)
	case ActionPower:
		_, err = m.ActivatePower(a.Side, a.Power, a.Params)
	case ActionResign:
		err = m.Resign(a.Side)
	case ActionResolution:
		_, err = m.Reconcile(a)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}
	return err
}

// Reconcile adopts the unit list carried by a resolution message when it
// differs from the local copy. It reports whether anything changed.
func (m *Match) Reconcile(a Action) (bool, error) {
	if a.Kind != ActionResolution {
		return false, fmt.Errorf("%w: %q is not a resolution", ErrUnknownAction, a.Kind)
	}
	if !a.Side.Valid() {
		return false, fmt.Errorf("%w: invalid side %d", ErrUnknownAction, a.Side)
	}
	local := m.board.Units(a.Side)
	if reflect.DeepEqual(local, a.Units) {
		return false, nil
	}
	if err := m.board.ReplaceUnits(a.Side, a.Units); err != nil {
		return false, err
	}
	if ps := &m.powers[a.Side]; ps.FenceProtected != nil && m.board.UnitAt(a.Side, ps.FenceProtected.Row, ps.FenceProtected.Col) == nil {
		ps.FenceProtected = nil
	}
	if !m.Over() {
		if o := CheckTermination(m.board); o != game.OutcomeOngoing {
			m.finish(o)
		}
	}
	return true, nil
}

// ResolutionAction builds the authoritative message side publishes after
// one of its units was attacked.
func (m *Match) ResolutionAction(side game.Side) Action {
	a := Action{
		Kind:        ActionResolution,
		Side:        side,
		Round:       m.round,
		TurnOwner:   m.turnOwner,
		DuelPending: m.duel != nil,
		Units:       m.board.Units(side),
	}
	if last := m.last; last != nil {
		a.TargetRow, a.TargetCol = last.Row, last.Col
		a.WasHit = last.WasHit
		a.Result = last.Kind
	}
	return a
}

// Describe fills the turn fields of an outgoing action from the current
// state.
func (m *Match) Describe(a Action) Action {
	a.TurnOwner = m.turnOwner
	a.DuelPending = m.duel != nil
	if a.Round == 0 {
		a.Round = m.round
	}
	if last := m.last; last != nil && (a.Kind == ActionAttack || a.Kind == ActionDuelPick) {
		a.WasHit = last.WasHit
		a.Result = last.Kind
	}
	return a
}
