package engine

import "github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"

// MoveRecord is emitted once per resolved attack.
type MoveRecord struct {
	MatchID       string
	Round         int
	Attacker      game.Side
	Row           int
	Col           int
	WasHit        bool
	AttackerPicks []int
	DefenderPick  int
	Result        game.ResultKind
}

// PowerRecord is emitted once per power activation.
type PowerRecord struct {
	MatchID string
	Side    game.Side
	Power   game.PowerKind
	Round   int
}

// OutcomeRecord closes a match.
type OutcomeRecord struct {
	MatchID string
	Outcome game.Outcome
	Rounds  int
	Stats   [2]game.SideStats
}

// Sink receives persistence records. Calls are fire-and-forget: failures
// belong to the implementation and never reach match state.
type Sink interface {
	RecordMove(MoveRecord)
	RecordPowerUsage(PowerRecord)
	RecordOutcome(OutcomeRecord)
}

// NopSink discards every record.
type NopSink struct{}

func (NopSink) RecordMove(MoveRecord)        {}
func (NopSink) RecordPowerUsage(PowerRecord) {}
func (NopSink) RecordOutcome(OutcomeRecord)  {}
