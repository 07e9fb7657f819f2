package engine

import "github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"

// CheckTermination reports the outcome implied by the board alone: a side
// with no live units has lost.
func CheckTermination(b *Board) game.Outcome {
	a, bb := b.Alive(game.SideA), b.Alive(game.SideB)
	switch {
	case a == 0 && bb == 0:
		return game.OutcomeDraw
	case a == 0:
		return game.OutcomeSideBWins
	case bb == 0:
		return game.OutcomeSideAWins
	}
	return game.OutcomeOngoing
}

// RoundCapOutcome decides a match that ran out of rounds: more survivors
// win and equal counts follow the tie-break policy.
func RoundCapOutcome(b *Board, starter game.Side, tb TieBreak) game.Outcome {
	if o := CheckTermination(b); o != game.OutcomeOngoing {
		return o
	}
	a, bb := b.Alive(game.SideA), b.Alive(game.SideB)
	switch {
	case a > bb:
		return game.OutcomeSideAWins
	case bb > a:
		return game.OutcomeSideBWins
	}
	if tb == TieBreakDraw {
		return game.OutcomeDraw
	}
	return game.WinOutcome(starter)
}
