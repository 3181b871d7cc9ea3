package observe_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokeduel/internal/battle"
	"github.com/KirkDiggler/pokeduel/internal/observe"
)

func TestProviderServesCounters(t *testing.T) {
	ctx := context.Background()
	provider, err := observe.NewProvider(observe.ProviderConfig{})
	require.NoError(t, err)
	defer func() { assert.NoError(t, provider.Shutdown(ctx)) }()

	m, err := observe.New(provider.Meter())
	require.NoError(t, err)

	bus := events.NewBus()
	m.Subscribe(bus)
	e := events.NewGameEvent(battle.EventTurnCompleted, entity{id: "duel_1"}, nil)
	require.NoError(t, bus.Publish(ctx, e))

	rec := httptest.NewRecorder()
	provider.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), "pokeduel_turns")
	assert.Contains(t, string(body), "go_goroutines")
}
