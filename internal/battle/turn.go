package battle

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/KirkDiggler/pokeduel/internal/errors"
)

// ActionKind is what a trainer does on a turn.
type ActionKind int

// Action kinds
const (
	ActionMove ActionKind = iota
	ActionSwitch
)

// switchPriority puts switches ahead of every move.
const switchPriority = 7

// Action is one trainer's choice for a turn. Index is a move slot for
// ActionMove and a party slot for ActionSwitch.
type Action struct {
	Kind  ActionKind
	Index int
}

// MoveAction selects the move in slot i.
func MoveAction(i int) Action { return Action{Kind: ActionMove, Index: i} }

// SwitchAction switches to party member i.
func SwitchAction(i int) Action { return Action{Kind: ActionSwitch, Index: i} }

// Start sends out both lead creatures and runs their switch-in effects.
func (b *Battle) Start(ctx context.Context) error {
	if b.started {
		return errors.FailedPrecondition("battle has already started")
	}
	b.started = true

	for _, t := range b.Trainers() {
		b.Narrate(fmt.Sprintf("%s sent out %s!\n", t.Name, t.Current().Name()))
	}
	for _, p := range b.speedOrder() {
		b.onSwitchIn(p)
	}

	slog.Debug("Battle started",
		"battle_id", b.ID,
		"trainer1", b.Trainer1.ID,
		"trainer2", b.Trainer2.ID,
	)
	return b.flush(ctx)
}

type queuedAction struct {
	trainer  *Trainer
	action   Action
	priority int
	// bracket orders actions within a priority: -1 first, 1 last
	bracket int
	speed   int
	tie     int
}

// RunTurn resolves one turn with actions[0] for Trainer1 and actions[1] for
// Trainer2. Invalid choices are rejected before anything changes.
func (b *Battle) RunTurn(ctx context.Context, actions [2]Action) error {
	if !b.started {
		return errors.FailedPrecondition("battle has not started")
	}
	if b.ended {
		return errors.FailedPrecondition("battle is already over")
	}

	trainers := b.Trainers()
	for i, t := range trainers {
		a, err := b.resolveAction(t, actions[i])
		if err != nil {
			return errors.Wrapf(err, "invalid action for %s", t.Name)
		}
		actions[i] = a
	}

	b.Turn++
	b.Narrate(fmt.Sprintf("--- Turn %d ---\n", b.Turn))

	queue := make([]queuedAction, 0, len(trainers))
	for i, t := range trainers {
		queue = append(queue, b.queue(t, actions[i]))
	}
	slices.SortStableFunc(queue, compareActions(b.TrickRoom.Active()))

	for _, q := range queue {
		b.execute(q)
		b.handleMidTurnRemovals()
		if b.checkWinner() {
			return b.flush(ctx)
		}
	}

	b.endOfTurn()
	b.replaceFainted()
	b.checkWinner()
	b.emit(EventTurnCompleted, b, nil, nil)

	slog.Debug("Turn completed",
		"battle_id", b.ID,
		"turn", b.Turn,
		"ended", b.ended,
	)
	return b.flush(ctx)
}

// resolveAction validates a, replacing it with the locked move when the
// active creature is committed to one.
func (b *Battle) resolveAction(t *Trainer, a Action) (Action, error) {
	p := t.Current()
	if p == nil || p.Fainted() {
		return a, errors.FailedPreconditionf("%s has no creature able to act", t.Name)
	}
	if p.Locked != nil {
		if i := slices.Index(p.Moves, p.Locked.Move); i >= 0 {
			return MoveAction(i), nil
		}
	}

	switch a.Kind {
	case ActionMove:
		if a.Index < 0 || a.Index >= len(p.Moves) {
			return a, errors.InvalidArgumentf("move index %d out of range", a.Index)
		}
		if p.ChoiceMove != nil && p.Moves[a.Index] != p.ChoiceMove && p.choiceLocked(b) {
			return a, errors.InvalidArgumentf("%s is locked into %s", p.Name(), p.ChoiceMove.Name())
		}
	case ActionSwitch:
		if err := t.canSwitchTo(a.Index); err != nil {
			return a, err
		}
	default:
		return a, errors.InvalidArgumentf("unknown action kind %d", a.Kind)
	}
	return a, nil
}

func (p *Pokemon) choiceLocked(b *Battle) bool {
	switch p.HeldItem.Get(b) {
	case "choice-band", "choice-specs", "choice-scarf":
		return true
	}
	return false
}

func (b *Battle) queue(t *Trainer, a Action) queuedAction {
	p := t.Current()
	q := queuedAction{
		trainer: t,
		action:  a,
		speed:   p.EffectiveSpeed(b),
		tie:     b.randint(1, 1000),
	}
	if a.Kind == ActionSwitch {
		q.priority = switchPriority
		return q
	}
	q.priority = p.Moves[a.Index].Priority()
	switch {
	case p.CustapBerryAte:
		q.bracket = -1
		p.CustapBerryAte = false
	case p.HeldItem.MovesLast(b):
		q.bracket = 1
	}
	return q
}

func compareActions(trickRoom bool) func(a, c queuedAction) int {
	return func(a, c queuedAction) int {
		if a.priority != c.priority {
			return c.priority - a.priority
		}
		if a.bracket != c.bracket {
			return a.bracket - c.bracket
		}
		if a.speed != c.speed {
			if trickRoom {
				return a.speed - c.speed
			}
			return c.speed - a.speed
		}
		return a.tie - c.tie
	}
}

// execute performs one queued action. A move that errors is logged and
// narrated as a failure; the turn carries on.
func (b *Battle) execute(q queuedAction) {
	t := q.trainer
	user := t.Current()
	if user == nil || user.Fainted() {
		return
	}

	if q.action.Kind == ActionSwitch {
		// a forced switch earlier in the turn may have sent this member in
		if t.canSwitchTo(q.action.Index) != nil {
			return
		}
		user.Metronome.Reset()
		b.switchIn(t, q.action.Index)
		return
	}

	m := user.Moves[q.action.Index]
	msg, err := b.useMove(user, b.Opponent(user), m)
	b.Narrate(msg)
	if err == nil {
		return
	}
	slog.Warn("Move failed",
		"battle_id", b.ID,
		"pokemon", user.ID,
		"move", m.Identifier(),
		"error", err,
	)
	b.Narrate(butItFailed)
}

// handleMidTurnRemovals performs switches forced by Red Card, Eject Button
// and Baton Pass.
func (b *Battle) handleMidTurnRemovals() {
	for _, t := range b.Trainers() {
		if !t.MidTurnRemove {
			continue
		}
		t.MidTurnRemove = false
		if p := t.Current(); p == nil || p.Fainted() {
			continue
		}
		if idx := t.NextHealthy(); idx >= 0 {
			b.switchIn(t, idx)
		}
	}
}

// switchIn withdraws t's active creature and sends out party member idx.
func (b *Battle) switchIn(t *Trainer, idx int) {
	if out := t.Current(); out != nil {
		if !out.Fainted() {
			b.Narrate(fmt.Sprintf("%s withdrew %s!\n", t.Name, out.Name()))
		}
		out.clearVolatile()
	}
	t.active = idx
	in := t.Current()
	b.Narrate(fmt.Sprintf("%s sent out %s!\n", t.Name, in.Name()))
	if t.BatonPass != nil {
		t.BatonPass.Apply(in)
		t.BatonPass = nil
	}
	b.onSwitchIn(in)
}

var abilityWeather = map[string]WeatherKind{
	AbilityDrizzle:       WeatherRain,
	AbilityDrought:       WeatherSun,
	AbilitySandStream:    WeatherSandstorm,
	AbilitySnowWarning:   WeatherHail,
	AbilityPrimordialSea: WeatherHeavyRain,
	AbilityDesolateLand:  WeatherHeavySun,
	AbilityDeltaStream:   WeatherHeavyWind,
}

var abilityTerrain = map[string]TerrainKind{
	AbilityElectricSurge: TerrainElectric,
	AbilityGrassySurge:   TerrainGrassy,
	AbilityMistySurge:    TerrainMisty,
	AbilityPsychicSurge:  TerrainPsychic,
}

// onSwitchIn runs the field effects of p entering battle.
func (b *Battle) onSwitchIn(p *Pokemon) {
	b.Weather.RecheckAbilityWeather(b)

	if kind, ok := abilityWeather[p.Ability()]; ok {
		b.Narrate(b.Weather.Set(b, kind, p))
	}
	if kind, ok := abilityTerrain[p.Ability()]; ok && b.Terrain.Get() != kind {
		b.Narrate(b.Terrain.Set(b, kind, p))
	} else {
		b.Narrate(b.Terrain.applyTo(b, p))
	}
	b.Narrate(refreshForecast(b))
	b.Narrate(p.HeldItem.ActivateOnSwitchIn(b))
}

// speedOrder returns the active, healthy creatures fastest first (slowest
// first under Trick Room).
func (b *Battle) speedOrder() []*Pokemon {
	var order []*Pokemon
	for _, p := range b.Actives() {
		if p != nil && !p.Fainted() {
			order = append(order, p)
		}
	}
	if len(order) == 2 {
		s0, s1 := order[0].EffectiveSpeed(b), order[1].EffectiveSpeed(b)
		if b.TrickRoom.Active() {
			s0, s1 = s1, s0
		}
		if s1 > s0 || (s1 == s0 && b.randint(0, 1) == 1) {
			order[0], order[1] = order[1], order[0]
		}
	}
	return order
}

// replaceFainted sends in the first healthy party member for each fainted
// active creature.
func (b *Battle) replaceFainted() {
	for _, t := range b.Trainers() {
		p := t.Current()
		if p == nil || !p.Fainted() {
			continue
		}
		if idx := t.NextHealthy(); idx >= 0 {
			b.switchIn(t, idx)
		}
	}
}

// checkWinner ends the battle once a side has nothing left to send out.
func (b *Battle) checkWinner() bool {
	if b.ended {
		return true
	}
	left1, left2 := b.Trainer1.Remaining(), b.Trainer2.Remaining()
	switch {
	case left1 == 0 && left2 == 0:
		b.finish(nil)
	case left1 == 0:
		b.finish(b.Trainer2)
	case left2 == 0:
		b.finish(b.Trainer1)
	default:
		return false
	}
	return true
}
