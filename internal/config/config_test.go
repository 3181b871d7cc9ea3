package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokeduel/internal/config"
	"github.com/KirkDiggler/pokeduel/internal/errors"
	"github.com/KirkDiggler/pokeduel/internal/repositories/userconfig"
)

const fullConfig = `
log_level: debug
discord:
  token_env: POKEDUEL_TOKEN
  sprites:
    snorlax: https://img.example/143.png
    "351": https://img.example/351.png
store:
  backend: redis
  duel_ttl: 2h
redis:
  addr: redis:6379
  db: 2
metrics:
  addr: ":9100"
defaults:
  use_threads: true
  party:
    - species: snorlax
      nickname: Lax
      item: leftovers
      moves: [tackle, rest]
      disliked_flavor: spicy
`

func TestLoadFromReader(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader(fullConfig))
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "POKEDUEL_TOKEN", cfg.Discord.TokenEnv)
	assert.Equal(t, "https://img.example/351.png", cfg.Discord.Sprites["351"])
	assert.Equal(t, config.StoreRedis, cfg.Store.Backend)
	assert.Equal(t, 2*time.Hour, cfg.Store.DuelTTL)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, ":9100", cfg.Metrics.Addr)
	// Untouched sections keep their defaults.
	assert.Equal(t, ":50051", cfg.Health.Addr)

	assert.Equal(t, userconfig.Defaults{
		UseThreads: true,
		Party: []userconfig.PartyMember{{
			Species:        "snorlax",
			Nickname:       "Lax",
			Item:           "leftovers",
			Moves:          []string{"tackle", "rest"},
			DislikedFlavor: "spicy",
		}},
	}, cfg.UserDefaults())
}

func TestLoadFromReaderEmpty(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadFromReaderErrors(t *testing.T) {
	testCases := []struct {
		name    string
		yaml    string
		errPart string
	}{
		{name: "unknown key", yaml: "colour: red\n", errPart: "colour"},
		{name: "bad log level", yaml: "log_level: loud\n", errPart: "log_level"},
		{name: "bad backend", yaml: "store:\n  backend: postgres\n", errPart: "store.backend"},
		{name: "redis without addr", yaml: "store:\n  backend: redis\nredis:\n  addr: \"\"\n", errPart: "redis.addr"},
		{name: "negative ttl", yaml: "store:\n  duel_ttl: -1h\n", errPart: "store.duel_ttl"},
		{name: "default party without species", yaml: "defaults:\n  party:\n    - moves: [tackle]\n", errPart: "defaults.party"},
		{name: "no token env", yaml: "discord:\n  token_env: \"\"\n", errPart: "discord.token_env"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.LoadFromReader(strings.NewReader(tc.yaml))
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err), "got %v", err)
			assert.Contains(t, err.Error(), tc.errPart)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokeduel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDiscordToken(t *testing.T) {
	cfg := config.Default()
	cfg.Discord.TokenEnv = "POKEDUEL_TEST_TOKEN"

	t.Setenv("POKEDUEL_TEST_TOKEN", "")
	_, err := cfg.DiscordToken()
	assert.True(t, errors.IsFailedPrecondition(err))

	t.Setenv("POKEDUEL_TEST_TOKEN", "secret")
	token, err := cfg.DiscordToken()
	require.NoError(t, err)
	assert.Equal(t, "secret", token)
}
