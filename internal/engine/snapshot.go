package engine

import "github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"

// EnemyCell is a revealed cell of the opponent's garden. Unit is nil for
// an empty cell.
type EnemyCell struct {
	Row  int        `json:"row"`
	Col  int        `json:"col"`
	Unit *game.Unit `json:"unit,omitempty"`
}

type PowerView struct {
	PowerState
	CanUseGardenHose bool `json:"can_use_garden_hose"`
	CanUseRelocation bool `json:"can_use_relocation"`
	CanUseTier2      bool `json:"can_use_tier2"`
}

type DuelView struct {
	Attacker         game.Side `json:"attacker"`
	Row              int       `json:"row"`
	Col              int       `json:"col"`
	PicksRequired    int       `json:"picks_required"`
	AwaitingAttacker bool      `json:"awaiting_attacker"`
	AwaitingDefender bool      `json:"awaiting_defender"`
}

// MatchView is the match as one side is allowed to see it.
type MatchView struct {
	ID          string         `json:"id"`
	Viewer      game.Side      `json:"viewer"`
	Round       int            `json:"round"`
	MaxRounds   int            `json:"max_rounds"`
	TurnOwner   game.Side      `json:"turn_owner"`
	Starter     game.Side      `json:"starter"`
	Phase       Phase          `json:"phase"`
	Outcome     game.Outcome   `json:"outcome"`
	Attacked    bool           `json:"attacked_this_turn"`
	Own         []game.Unit    `json:"own_units"`
	Enemy       []EnemyCell    `json:"enemy_cells"`
	EnemyAlive  int            `json:"enemy_alive"`
	Powers      PowerView      `json:"powers"`
	EnemyTier2  game.Tier2Kind `json:"enemy_tier2"`
	Stats       game.SideStats `json:"stats"`
	Duel        *DuelView      `json:"duel,omitempty"`
	Last        *AttackResult  `json:"last,omitempty"`
	Controllers [2]Controller  `json:"controllers"`
}

// Snapshot renders the match for viewer. Enemy cells stay hidden until
// attacked, spied on or revealed by a teleport; a finished match shows
// everything.
func (m *Match) Snapshot(viewer game.Side) MatchView {
	enemy := viewer.Opponent()
	ps := m.powers[viewer]
	v := MatchView{
		ID:          m.id,
		Viewer:      viewer,
		Round:       m.round,
		MaxRounds:   m.rules.MaxRounds,
		TurnOwner:   m.turnOwner,
		Starter:     m.starter,
		Phase:       m.Phase(),
		Outcome:     m.outcome,
		Attacked:    m.attacked,
		Own:         m.board.Units(viewer),
		EnemyAlive:  m.board.Alive(enemy),
		EnemyTier2:  m.powers[enemy].Tier2,
		Stats:       m.stats[viewer],
		Controllers: m.controllers,
		Powers: PowerView{
			PowerState:       ps,
			CanUseGardenHose: ps.CanUseGardenHose(),
			CanUseRelocation: ps.CanUseRelocation(),
			CanUseTier2:      ps.CanUseTier2(),
		},
	}
	if ps.FenceProtected != nil {
		p := *ps.FenceProtected
		v.Powers.FenceProtected = &p
	}

	units := m.board.Units(enemy)
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			if !m.Over() && !m.board.Revealed(enemy, r, c) {
				continue
			}
			cell := EnemyCell{Row: r, Col: c}
			for i := range units {
				if units[i].Row == r && units[i].Col == c {
					u := units[i]
					cell.Unit = &u
					if u.Alive() {
						break
					}
				}
			}
			if cell.Unit == nil && m.Over() {
				continue
			}
			v.Enemy = append(v.Enemy, cell)
		}
	}

	if d := m.duel; d != nil {
		v.Duel = &DuelView{
			Attacker:         d.attacker,
			Row:              d.row,
			Col:              d.col,
			PicksRequired:    d.picksRequired,
			AwaitingAttacker: d.attackerPicks == nil,
			AwaitingDefender: d.defenderPick == 0,
		}
	}
	if m.last != nil {
		last := *m.last
		v.Last = &last
	}
	return v
}
