package engine

import "github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"

// AbilityKind names a reactive unit ability.
type AbilityKind string

const (
	AbilityRoseColor   AbilityKind = "rose_color_change"
	AbilityDogFear     AbilityKind = "dog_fear"
	AbilityFearRepel   AbilityKind = "dog_fear_repel"
	AbilityCatTeleport AbilityKind = "cat_teleport"
)

// Observer receives state changes synchronously, in the order they are
// applied. Implementations must not call back into the match.
type Observer interface {
	OnUnitDamaged(u game.Unit)
	OnUnitDestroyed(u game.Unit)
	OnAbilityTriggered(u game.Unit, kind AbilityKind)
	OnShieldAbsorbed(u game.Unit)
	OnMiss(side game.Side, row, col int)
	OnTurnChanged(owner game.Side, round int)
	OnMatchOver(outcome game.Outcome, rounds int)
}

// NopObserver ignores every callback.
type NopObserver struct{}

func (NopObserver) OnUnitDamaged(game.Unit)                   {}
func (NopObserver) OnUnitDestroyed(game.Unit)                 {}
func (NopObserver) OnAbilityTriggered(game.Unit, AbilityKind) {}
func (NopObserver) OnShieldAbsorbed(game.Unit)                {}
func (NopObserver) OnMiss(game.Side, int, int)                {}
func (NopObserver) OnTurnChanged(game.Side, int)              {}
func (NopObserver) OnMatchOver(game.Outcome, int)             {}

// EventKind tags a recorded callback.
type EventKind string

const (
	EventUnitDamaged   EventKind = "unit_damaged"
	EventUnitDestroyed EventKind = "unit_destroyed"
	EventAbility       EventKind = "ability_triggered"
	EventShield        EventKind = "shield_absorbed"
	EventMiss          EventKind = "miss"
	EventTurnChanged   EventKind = "turn_changed"
	EventMatchOver     EventKind = "match_over"
)

// Event is a recorded callback together with the visual steps the
// presentation layer should play for it.
type Event struct {
	Seq     int          `json:"seq"`
	Kind    EventKind    `json:"kind"`
	Unit    *game.Unit   `json:"unit,omitempty"`
	Ability AbilityKind  `json:"ability,omitempty"`
	Side    game.Side    `json:"side"`
	Row     int          `json:"row"`
	Col     int          `json:"col"`
	Round   int          `json:"round,omitempty"`
	Outcome game.Outcome `json:"outcome,omitempty"`
	Steps   []VisualStep `json:"steps,omitempty"`
}

// Recorder is an Observer that keeps every callback as an Event.
type Recorder struct {
	Events []Event
}

func (r *Recorder) push(e Event) {
	e.Seq = len(r.Events) + 1
	r.Events = append(r.Events, e)
}

func (r *Recorder) OnUnitDamaged(u game.Unit) {
	r.push(Event{Kind: EventUnitDamaged, Unit: &u, Side: u.Side, Row: u.Row, Col: u.Col, Steps: damageSteps()})
}

func (r *Recorder) OnUnitDestroyed(u game.Unit) {
	r.push(Event{Kind: EventUnitDestroyed, Unit: &u, Side: u.Side, Row: u.Row, Col: u.Col, Steps: destroySteps()})
}

func (r *Recorder) OnAbilityTriggered(u game.Unit, kind AbilityKind) {
	r.push(Event{Kind: EventAbility, Unit: &u, Ability: kind, Side: u.Side, Row: u.Row, Col: u.Col, Steps: AbilitySteps(kind)})
}

func (r *Recorder) OnShieldAbsorbed(u game.Unit) {
	r.push(Event{Kind: EventShield, Unit: &u, Side: u.Side, Row: u.Row, Col: u.Col, Steps: pulseSteps(1.3)})
}

func (r *Recorder) OnMiss(side game.Side, row, col int) {
	r.push(Event{Kind: EventMiss, Side: side, Row: row, Col: col})
}

func (r *Recorder) OnTurnChanged(owner game.Side, round int) {
	r.push(Event{Kind: EventTurnChanged, Side: owner, Round: round})
}

func (r *Recorder) OnMatchOver(outcome game.Outcome, rounds int) {
	r.push(Event{Kind: EventMatchOver, Outcome: outcome, Round: rounds})
}

// Since returns the events recorded after seq.
func (r *Recorder) Since(seq int) []Event {
	if seq < 0 {
		seq = 0
	}
	if seq >= len(r.Events) {
		return nil
	}
	out := make([]Event, len(r.Events)-seq)
	copy(out, r.Events[seq:])
	return out
}

// multiObserver fans callbacks out to several observers.
type multiObserver []Observer

// Observers combines observers into one, skipping nils.
func Observers(obs ...Observer) Observer {
	out := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (m multiObserver) OnUnitDamaged(u game.Unit) {
	for _, o := range m {
		o.OnUnitDamaged(u)
	}
}

func (m multiObserver) OnUnitDestroyed(u game.Unit) {
	for _, o := range m {
		o.OnUnitDestroyed(u)
	}
}

func (m multiObserver) OnAbilityTriggered(u game.Unit, kind AbilityKind) {
	for _, o := range m {
		o.OnAbilityTriggered(u, kind)
	}
}

func (m multiObserver) OnShieldAbsorbed(u game.Unit) {
	for _, o := range m {
		o.OnShieldAbsorbed(u)
	}
}

func (m multiObserver) OnMiss(side game.Side, row, col int) {
	for _, o := range m {
		o.OnMiss(side, row, col)
	}
}

func (m multiObserver) OnTurnChanged(owner game.Side, round int) {
	for _, o := range m {
		o.OnTurnChanged(owner, round)
	}
}

func (m multiObserver) OnMatchOver(outcome game.Outcome, rounds int) {
	for _, o := range m {
		o.OnMatchOver(outcome, rounds)
	}
}
