package battle

import (
	"context"
	"fmt"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokeduel/internal/dex"
)

// scriptedRoller replays queued results and otherwise rolls the maximum,
// which keeps crits, secondary effects and misses out of the way.
type scriptedRoller struct {
	rolls []int
}

func (r *scriptedRoller) Roll(size int) (int, error) {
	if len(r.rolls) == 0 {
		return size, nil
	}
	v := r.rolls[0]
	r.rolls = r.rolls[1:]
	return max(1, min(v, size)), nil
}

func (r *scriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i], _ = r.Roll(size)
	}
	return out, nil
}

var _ dice.Roller = (*scriptedRoller)(nil)

// recordingBus keeps published events in order.
type recordingBus struct {
	published []events.Event
}

func (r *recordingBus) Publish(_ context.Context, e events.Event) error {
	r.published = append(r.published, e)
	return nil
}
func (r *recordingBus) Subscribe(_ string, _ events.Handler) string { return "sub-id" }
func (r *recordingBus) SubscribeFunc(_ string, _ int, _ events.HandlerFunc) string {
	return "sub-id"
}
func (r *recordingBus) Unsubscribe(_ string) error { return nil }
func (r *recordingBus) Clear(_ string)             {}
func (r *recordingBus) ClearAll()                  {}

func (r *recordingBus) types() []string {
	out := make([]string, 0, len(r.published))
	for _, e := range r.published {
		out = append(out, e.Type())
	}
	return out
}

func testStore(t *testing.T) *dex.Store {
	t.Helper()
	store, err := dex.Default()
	require.NoError(t, err)
	return store
}

// mon is a shorthand config; moves default to tackle.
func mon(species string, opts ...func(*PokemonConfig)) *PokemonConfig {
	cfg := &PokemonConfig{Species: species, Moves: []string{"tackle"}}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func withItem(item string) func(*PokemonConfig) {
	return func(c *PokemonConfig) { c.Item = item }
}

func withAbility(ability string) func(*PokemonConfig) {
	return func(c *PokemonConfig) { c.Ability = ability }
}

func withMoves(moves ...string) func(*PokemonConfig) {
	return func(c *PokemonConfig) { c.Moves = moves }
}

func buildTrainer(t *testing.T, store *dex.Store, id string, cfgs []*PokemonConfig) *Trainer {
	t.Helper()
	party := make([]*Pokemon, 0, len(cfgs))
	for i, cfg := range cfgs {
		if cfg.ID == "" {
			cfg.ID = fmt.Sprintf("%s-mon-%d", id, i)
		}
		p, err := NewPokemon(store, cfg)
		require.NoError(t, err)
		party = append(party, p)
	}
	tr, err := NewTrainer(id, id, party)
	require.NoError(t, err)
	return tr
}

// newTestBattle builds an unstarted battle between two parties.
func newTestBattle(t *testing.T, roller dice.Roller, side1, side2 []*PokemonConfig) *Battle {
	t.Helper()
	if roller == nil {
		roller = &scriptedRoller{}
	}
	store := testStore(t)
	b, err := New(&Config{
		ID:       "battle-1",
		Trainer1: buildTrainer(t, store, "ash", side1),
		Trainer2: buildTrainer(t, store, "gary", side2),
		Dex:      store,
		Roller:   roller,
	})
	require.NoError(t, err)
	return b
}

func mustMove(t *testing.T, b *Battle, identifier string) *dex.Move {
	t.Helper()
	data, ok := b.Dex.Move(identifier)
	require.True(t, ok, identifier)
	return data
}
