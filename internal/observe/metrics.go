// Package observe turns battle events into OpenTelemetry counters.
package observe

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/KirkDiggler/pokeduel/internal/battle"
	"github.com/KirkDiggler/pokeduel/internal/errors"
)

// MeterName identifies the instruments registered by this package.
const MeterName = "github.com/KirkDiggler/pokeduel"

// Metrics holds one counter per battle event type.
type Metrics struct {
	turns    metric.Int64Counter
	statuses metric.Int64Counter
	items    metric.Int64Counter
	faints   metric.Int64Counter
	weather  metric.Int64Counter
	terrain  metric.Int64Counter
	ended    metric.Int64Counter
}

// New registers the counters on meter.
func New(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		return nil, errors.InvalidArgument("meter is required")
	}

	m := &Metrics{}
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.turns, "pokeduel.turns", "Turns resolved"},
		{&m.statuses, "pokeduel.statuses", "Non-volatile statuses applied"},
		{&m.items, "pokeduel.items.consumed", "Held items consumed"},
		{&m.faints, "pokeduel.faints", "Creatures fainted"},
		{&m.weather, "pokeduel.weather.changes", "Weather changes"},
		{&m.terrain, "pokeduel.terrain.changes", "Terrain changes"},
		{&m.ended, "pokeduel.battles.ended", "Battles finished"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create counter %s", c.name)
		}
		*c.dst = counter
	}
	return m, nil
}

// Subscribe attaches the counters to bus and returns the subscription IDs.
func (m *Metrics) Subscribe(bus events.EventBus) []string {
	subs := []struct {
		eventType string
		counter   metric.Int64Counter
		key       string
	}{
		{battle.EventTurnCompleted, m.turns, ""},
		{battle.EventStatusApplied, m.statuses, battle.KeyStatus},
		{battle.EventItemConsumed, m.items, battle.KeyItem},
		{battle.EventPokemonFainted, m.faints, battle.KeySpecies},
		{battle.EventWeatherChanged, m.weather, battle.KeyWeather},
		{battle.EventTerrainChanged, m.terrain, battle.KeyTerrain},
		{battle.EventBattleEnded, m.ended, ""},
	}

	ids := make([]string, 0, len(subs))
	for _, s := range subs {
		ids = append(ids, bus.SubscribeFunc(s.eventType, 0, count(s.counter, s.key)))
	}
	return ids
}

// count adds one per event, labelled with the event's key value if any.
func count(counter metric.Int64Counter, key string) events.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		if key == "" {
			counter.Add(ctx, 1)
			return nil
		}
		label := "unknown"
		if v, ok := e.Context().Get(key); ok {
			label = fmt.Sprint(v)
		}
		counter.Add(ctx, 1, metric.WithAttributes(attribute.String(key, label)))
		return nil
	}
}
