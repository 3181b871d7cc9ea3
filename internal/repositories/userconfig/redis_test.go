package userconfig_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokeduel/internal/errors"
	"github.com/KirkDiggler/pokeduel/internal/repositories/userconfig"
	"github.com/KirkDiggler/pokeduel/internal/testutils"
)

func TestNewRedis(t *testing.T) {
	testCases := []struct {
		name   string
		config *userconfig.RedisConfig
	}{
		{name: "nil config", config: nil},
		{name: "nil client", config: &userconfig.RedisConfig{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, err := userconfig.NewRedis(tc.config)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			assert.Nil(t, repo)
		})
	}
}

func TestRedisStoresHashFields(t *testing.T) {
	var mr *miniredis.Miniredis
	client, cleanup := testutils.CreateTestRedisClientWithContext(t, func(m *miniredis.Miniredis) {
		mr = m
	})
	defer cleanup()

	repo, err := userconfig.NewRedis(&userconfig.RedisConfig{Client: client})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = repo.SetUseThreads(ctx, &userconfig.SetUseThreadsInput{GuildID: "guild-1", UseThreads: true})
	require.NoError(t, err)
	assert.Equal(t, "true", mr.HGet("userconfig:guild:guild-1", "use_threads"))

	_, err = repo.SetParty(ctx, &userconfig.SetPartyInput{
		MemberID: "member-1",
		Party:    []userconfig.PartyMember{{Species: "snorlax", Moves: []string{"tackle"}}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"species":"snorlax","moves":["tackle"]}]`, mr.HGet("userconfig:member:member-1", "party"))
}

func TestRedisCorruptValues(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClientWithContext(t, func(mr *miniredis.Miniredis) {
		mr.HSet("userconfig:member:member-1", "party", "{not json")
		mr.HSet("userconfig:guild:guild-1", "use_threads", "maybe")
	})
	defer cleanup()

	repo, err := userconfig.NewRedis(&userconfig.RedisConfig{Client: client})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = repo.GetMember(ctx, &userconfig.GetMemberInput{MemberID: "member-1"})
	require.Error(t, err)
	assert.True(t, errors.IsInternal(err))

	_, err = repo.GetGuild(ctx, &userconfig.GetGuildInput{GuildID: "guild-1"})
	require.Error(t, err)
	assert.True(t, errors.IsInternal(err))
}

func TestRedisUnreachable(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClient(t)
	cleanup()

	repo, err := userconfig.NewRedis(&userconfig.RedisConfig{Client: client})
	require.NoError(t, err)

	_, err = repo.GetMember(context.Background(), &userconfig.GetMemberInput{MemberID: "member-1"})
	assert.Error(t, err)
}

func TestFindCorrupt(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClientWithContext(t, func(mr *miniredis.Miniredis) {
		mr.HSet("userconfig:member:good", "party", `[{"species":"snorlax","moves":["tackle"]}]`)
		mr.HSet("userconfig:member:bad", "party", "{not json")
		mr.HSet("userconfig:guild:good", "use_threads", "true")
		mr.HSet("userconfig:guild:bad", "use_threads", "maybe")
	})
	defer cleanup()

	corrupt, err := userconfig.FindCorrupt(context.Background(), client)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"userconfig:member:bad", "userconfig:guild:bad"}, corrupt)
}
