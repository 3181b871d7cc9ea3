package discord_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokeduel/internal/discord"
	"github.com/KirkDiggler/pokeduel/internal/discord/mock"
	"github.com/KirkDiggler/pokeduel/internal/errors"
	"github.com/KirkDiggler/pokeduel/internal/repositories/duels"
	"github.com/KirkDiggler/pokeduel/internal/testutils"
)

func newSink(t *testing.T, channelID string) (*discord.ChannelSink, *mock.Session) {
	t.Helper()
	repo := duels.NewInMemory(nil)
	_, err := repo.Create(context.Background(), &duels.CreateInput{Record: &duels.Record{
		ID:        "duel_1",
		ChannelID: channelID,
		MemberIDs: [2]string{testutils.TestMemberAsh, testutils.TestMemberGary},
	}})
	require.NoError(t, err)

	session := mock.NewSession()
	sink, err := discord.NewChannelSink(&discord.SinkConfig{Session: session, Duels: repo})
	require.NoError(t, err)
	return sink, session
}

func TestNewChannelSinkValidation(t *testing.T) {
	_, err := discord.NewChannelSink(nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = discord.NewChannelSink(&discord.SinkConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Session")
}

func TestChannelSinkSend(t *testing.T) {
	sink, session := newSink(t, testutils.TestChannelID)

	require.NoError(t, sink.Send(context.Background(), "duel_1", "Lax used Tackle!\nChansey took 283 damage!\n"))

	batches := session.Messages[testutils.TestChannelID]
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 1)
	assert.Equal(t, "Lax used Tackle!\nChansey took 283 damage!", batches[0][0].Description)
}

func TestChannelSinkBatchesLongNarration(t *testing.T) {
	sink, session := newSink(t, testutils.TestChannelID)

	line := strings.Repeat("a", 999)
	text := strings.Repeat(line+"\n", 20)
	require.NoError(t, sink.Send(context.Background(), "duel_1", text))

	batches := session.Messages[testutils.TestChannelID]
	sizes := make([]int, 0, len(batches))
	for _, b := range batches {
		sizes = append(sizes, len(b))
	}
	assert.Equal(t, []int{3, 3, 3, 1}, sizes)
}

func TestChannelSinkSkipsEmptyText(t *testing.T) {
	sink, session := newSink(t, testutils.TestChannelID)

	require.NoError(t, sink.Send(context.Background(), "unknown-duel", "  \n"))
	assert.Empty(t, session.Messages)
}

func TestChannelSinkErrors(t *testing.T) {
	sink, session := newSink(t, testutils.TestChannelID)

	err := sink.Send(context.Background(), "unknown-duel", "text")
	assert.True(t, errors.IsNotFound(err))

	session.Err = assert.AnError
	err = sink.Send(context.Background(), "duel_1", "text")
	assert.True(t, errors.IsUnavailable(err))
}

func TestChannelSinkWithoutChannel(t *testing.T) {
	sink, session := newSink(t, "")

	require.NoError(t, sink.Send(context.Background(), "duel_1", "text"))
	assert.Empty(t, session.Messages)
}

func TestChannelSinkStartThread(t *testing.T) {
	sink, session := newSink(t, testutils.TestChannelID)

	id, err := sink.StartThread(context.Background(), testutils.TestChannelID, "Ash vs Gary")
	require.NoError(t, err)
	assert.Equal(t, "mock-thread", id)
	assert.Equal(t, []string{testutils.TestChannelID + "|Ash vs Gary"}, session.Threads)

	session.Err = assert.AnError
	_, err = sink.StartThread(context.Background(), testutils.TestChannelID, "again")
	assert.True(t, errors.IsUnavailable(err))
}
