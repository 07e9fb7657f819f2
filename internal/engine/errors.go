package engine

import "errors"

// Errors returned by the engine's mutators. None of them leave a partial
// change behind: every check runs before the first mutation.
var (
	ErrNotYourTurn        = errors.New("not your turn")
	ErrAlreadyAttacked    = errors.New("already attacked this turn")
	ErrPowerOnCooldown    = errors.New("power is on cooldown")
	ErrPowerAlreadyActive = errors.New("power is already active")
	ErrInvalidMove        = errors.New("invalid move")
	ErrNoTarget           = errors.New("no valid target")
	ErrAlreadyFullHealth  = errors.New("unit is already at full health")
	ErrDuplicateDuelPick  = errors.New("second pick must differ from the first")

	ErrMatchOver        = errors.New("match is over")
	ErrDuelPending      = errors.New("a duel is waiting for picks")
	ErrNoDuelPending    = errors.New("no duel is pending")
	ErrInvalidPick      = errors.New("duel pick must be between 1 and 4")
	ErrPickSubmitted    = errors.New("pick already submitted")
	ErrInvalidPlacement = errors.New("invalid unit placement")
	ErrNotAIControlled  = errors.New("side is not controlled by the AI")
	ErrUnknownPower     = errors.New("unknown power")
	ErrUnknownAction    = errors.New("unknown action")
)
