package duel

import (
	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/pokeduel/internal/battle"
	"github.com/KirkDiggler/pokeduel/internal/repositories/duels"
)

// Participant is a member taking one side of a duel.
type Participant struct {
	MemberID string
	Name     string
}

// StartDuelInput defines the request for starting a duel
type StartDuelInput struct {
	GuildID    string
	ChannelID  string
	Challenger Participant
	Opponent   Participant
	// Seed makes the duel deterministic when set.
	Seed *uint64
}

// StartDuelOutput defines the response for starting a duel
type StartDuelOutput struct {
	DuelID string
	// ChannelID is where narration goes; a thread when the guild uses them.
	ChannelID string
	Narration string
}

// SubmitActionInput defines the request for choosing a side's action
type SubmitActionInput struct {
	DuelID   string
	MemberID string
	Action   battle.Action
}

// SubmitActionOutput defines the response for choosing a side's action.
// Resolved is false while the other side has not chosen yet.
type SubmitActionOutput struct {
	Resolved  bool
	Turn      int
	Narration string
	Ended     bool
	WinnerID  string
}

// GetDuelInput defines the request for reading a duel
type GetDuelInput struct {
	DuelID string
}

// GetDuelOutput defines the response for reading a duel. Summary is empty
// once the duel is no longer live.
type GetDuelOutput struct {
	Record  *duels.Record
	Summary string
	Embed   *discordgo.MessageEmbed
	// Waiting lists members whose action is still due this turn.
	Waiting []string
}

// ForfeitInput defines the request for giving up a duel
type ForfeitInput struct {
	DuelID   string
	MemberID string
}

// ForfeitOutput defines the response for giving up a duel
type ForfeitOutput struct {
	WinnerID  string
	Narration string
}
