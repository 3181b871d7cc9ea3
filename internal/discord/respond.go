package discord

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/pokeduel/internal/errors"
)

// RespondEphemeral sends a text reply only the invoker sees.
func RespondEphemeral(s Session, i *discordgo.InteractionCreate, content string) {
	respond(s, i, &discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

// RespondPublic sends a text reply visible to the channel.
func RespondPublic(s Session, i *discordgo.InteractionCreate, content string) {
	respond(s, i, &discordgo.InteractionResponseData{Content: content})
}

// RespondEmbed sends an embed visible to the channel.
func RespondEmbed(s Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	respond(s, i, &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}})
}

// RespondError reports err to the invoker. Caller mistakes are shown as
// is; anything else is logged and hidden.
func RespondError(s Session, i *discordgo.InteractionCreate, err error) {
	switch {
	case errors.IsInvalidArgument(err), errors.IsFailedPrecondition(err),
		errors.IsNotFound(err), errors.IsPermissionDenied(err), errors.IsAlreadyExists(err):
		RespondEphemeral(s, i, errors.RootMessage(err))
	case errors.IsUnavailable(err):
		slog.Warn("Command hit an unavailable dependency",
			"interaction_id", i.ID,
			"error", err,
		)
		RespondEphemeral(s, i, "The duel store is unreachable right now, try again in a moment.")
	default:
		slog.Error("Command failed",
			"interaction_id", i.ID,
			"error", err,
		)
		RespondEphemeral(s, i, "Something went wrong, try again later.")
	}
}

func respond(s Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		slog.Warn("Failed to respond to interaction",
			"interaction_id", i.ID,
			"error", err,
		)
	}
}
