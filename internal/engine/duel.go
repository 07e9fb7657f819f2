package engine

import "fmt"

// Duel numbers are drawn from MinPick..MaxPick inclusive.
const (
	MinPick = 1
	MaxPick = 4
)

// ValidatePicks checks an attacker's picks for range and, with several
// picks, that they differ.
func ValidatePicks(picks []int, want int) error {
	if len(picks) != want {
		return fmt.Errorf("%w: want %d pick(s), got %d", ErrInvalidPick, want, len(picks))
	}
	for i, p := range picks {
		if p < MinPick || p > MaxPick {
			return fmt.Errorf("%w: %d is outside %d..%d", ErrInvalidPick, p, MinPick, MaxPick)
		}
		for _, q := range picks[:i] {
			if q == p {
				return fmt.Errorf("%w: %d picked twice", ErrDuplicateDuelPick, p)
			}
		}
	}
	return nil
}

// ResolveDuel reports whether the defender's number is among the
// attacker's picks.
func ResolveDuel(attackerPicks []int, defenderPick int) (bool, error) {
	if len(attackerPicks) == 0 {
		return false, fmt.Errorf("%w: attacker submitted no pick", ErrInvalidPick)
	}
	if err := ValidatePicks(attackerPicks, len(attackerPicks)); err != nil {
		return false, err
	}
	if defenderPick < MinPick || defenderPick > MaxPick {
		return false, fmt.Errorf("%w: defender pick %d is outside %d..%d", ErrInvalidPick, defenderPick, MinPick, MaxPick)
	}
	for _, p := range attackerPicks {
		if p == defenderPick {
			return true, nil
		}
	}
	return false, nil
}
