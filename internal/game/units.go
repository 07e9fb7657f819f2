package game

import "fmt"

// BoardSize is the width and height of each side's garden.
const BoardSize = 8

// StartingHealth is the health every unit is placed with.
const StartingHealth = 2

// Side identifies one of the two participants of a match. SideA is the
// human player in solo mode and the room host in networked mode.
type Side int

const (
	SideA Side = iota
	SideB
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

func (s Side) Valid() bool { return s == SideA || s == SideB }

func (s Side) String() string {
	switch s {
	case SideA:
		return "a"
	case SideB:
		return "b"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

// ParseSide accepts "a"/"b" and the room document keys "player1"/"player2".
func ParseSide(s string) (Side, error) {
	switch s {
	case "a", "A", "player1":
		return SideA, nil
	case "b", "B", "player2":
		return SideB, nil
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

// UnitType is the kind of a placed unit.
type UnitType string

const (
	Sunflower UnitType = "sunflower"
	Rose      UnitType = "rose"
	Dog       UnitType = "dog"
	Cat       UnitType = "cat"
)

func (t UnitType) Valid() bool {
	switch t {
	case Sunflower, Rose, Dog, Cat:
		return true
	}
	return false
}

// RoseColor is the cosmetic color a rose shows. Every rose starts red.
type RoseColor string

const (
	RoseRed   RoseColor = "red"
	RoseBlue  RoseColor = "blue"
	RoseWhite RoseColor = "white"
	RoseBlack RoseColor = "black"
)

// Position is a cell coordinate on a side's board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) OnGrid() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Unit is one placed piece. Units are plain values owned by the match that
// created them; a unit with Health 0 stays in the list as a scoring record.
type Unit struct {
	Side        Side      `json:"side"`
	Row         int       `json:"row"`
	Col         int       `json:"col"`
	Type        UnitType  `json:"type"`
	Health      int       `json:"health"`
	AbilityUsed bool      `json:"ability_used"`
	RoseColor   RoseColor `json:"rose_color,omitempty"`
	FearActive  bool      `json:"fear_active"`
}

// NewUnit returns a full-health unit of the given type at (row, col).
func NewUnit(side Side, t UnitType, row, col int) Unit {
	u := Unit{Side: side, Row: row, Col: col, Type: t, Health: StartingHealth}
	if t == Rose {
		u.RoseColor = RoseRed
	}
	return u
}

func (u *Unit) Alive() bool { return u.Health > 0 }

func (u *Unit) Pos() Position { return Position{Row: u.Row, Col: u.Col} }

// DefaultRoster is the set of units each side places before battle.
var DefaultRoster = []UnitType{Sunflower, Sunflower, Sunflower, Rose, Rose, Dog, Cat}

// PowerKind names a tactical power.
type PowerKind string

const (
	PowerGardenHose PowerKind = "garden_hose"
	PowerRelocation PowerKind = "nighttime_relocation"
	PowerSpyDrone   PowerKind = "spy_drone"
	PowerFence      PowerKind = "fence_shield"
	PowerFertilizer PowerKind = "fertilizer"
)

// Tier2Kind is the special power chosen at match start. Its values are the
// matching PowerKind names.
type Tier2Kind = PowerKind

// ValidTier2 reports whether k can be chosen as a tier-2 power.
func ValidTier2(k PowerKind) bool {
	return k == PowerSpyDrone || k == PowerFence || k == PowerFertilizer
}

// Direction is a cardinal step used by nighttime relocation.
type Direction string

const (
	North Direction = "up"
	South Direction = "down"
	West  Direction = "left"
	East  Direction = "right"
)

// Delta returns the row/col offset for d.
func (d Direction) Delta() (int, int, bool) {
	switch d {
	case North:
		return -1, 0, true
	case South:
		return 1, 0, true
	case West:
		return 0, -1, true
	case East:
		return 0, 1, true
	}
	return 0, 0, false
}

// ResultKind classifies how an attack ended. Stored on move records.
type ResultKind string

const (
	ResultMissed     ResultKind = "missed"
	ResultDamaged    ResultKind = "damaged"
	ResultDestroyed  ResultKind = "destroyed"
	ResultDefended   ResultKind = "defended"
	ResultTeleported ResultKind = "teleported"
	ResultRepelled   ResultKind = "repelled"
)

// Outcome is the state of a match as judged by the evaluator.
type Outcome string

const (
	OutcomeOngoing   Outcome = "ongoing"
	OutcomeSideAWins Outcome = "side_a_wins"
	OutcomeSideBWins Outcome = "side_b_wins"
	OutcomeDraw      Outcome = "draw"
)

// WinOutcome returns the outcome in which s wins.
func WinOutcome(s Side) Outcome {
	if s == SideA {
		return OutcomeSideAWins
	}
	return OutcomeSideBWins
}

// Winner returns the winning side, or false for ongoing matches and draws.
func (o Outcome) Winner() (Side, bool) {
	switch o {
	case OutcomeSideAWins:
		return SideA, true
	case OutcomeSideBWins:
		return SideB, true
	}
	return 0, false
}

// SideStats are the per-player aggregate counters emitted at match end.
type SideStats struct {
	Attacks        int `json:"attacks"`
	Hits           int `json:"hits"`
	UnitsDestroyed int `json:"units_destroyed"`
	PowersUsed     int `json:"powers_used"`
}

// Accuracy returns hits as a percentage of attacks.
func (s SideStats) Accuracy() float64 {
	if s.Attacks == 0 {
		return 0
	}
	return float64(s.Hits) * 100 / float64(s.Attacks)
}
