package battle

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/pokeduel/internal/errors"
)

// Event types published on the event bus after each turn.
const (
	EventTurnCompleted  = "pokeduel.turn.completed"
	EventStatusApplied  = "pokeduel.status.applied"
	EventItemConsumed   = "pokeduel.item.consumed"
	EventPokemonFainted = "pokeduel.pokemon.fainted"
	EventWeatherChanged = "pokeduel.weather.changed"
	EventTerrainChanged = "pokeduel.terrain.changed"
	EventBattleEnded    = "pokeduel.battle.ended"
)

// Event context keys
const (
	KeyBattleID = "battle_id"
	KeyTurn     = "turn"
	KeyStatus   = "status"
	KeyWeather  = "weather"
	KeyTerrain  = "terrain"
	KeyItem     = "item"
	KeySpecies  = "species"
)

// emit queues an event; queued events are published when the turn ends so
// that handlers never observe a half-resolved turn.
func (b *Battle) emit(eventType string, source, target core.Entity, data map[string]any) {
	if b.bus == nil {
		return
	}
	e := events.NewGameEvent(eventType, source, target)
	e.Context().Set(KeyBattleID, b.ID)
	e.Context().Set(KeyTurn, b.Turn)
	for k, v := range data {
		e.Context().Set(k, v)
	}
	b.pending = append(b.pending, e)
}

// entityOf avoids wrapping a nil creature in a non-nil interface.
func entityOf(p *Pokemon) core.Entity {
	if p == nil {
		return nil
	}
	return p
}

// flush publishes the queued events.
func (b *Battle) flush(ctx context.Context) error {
	queued := b.pending
	b.pending = nil
	if b.bus == nil {
		return nil
	}
	for _, e := range queued {
		if err := b.bus.Publish(ctx, e); err != nil {
			return errors.Wrapf(err, "failed to publish %s", e.Type())
		}
	}
	return nil
}
