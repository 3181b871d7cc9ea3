// Package discord connects duels to Discord: narration goes to channels as
// embeds and slash commands drive the duel service.
package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Session is the part of *discordgo.Session the bot uses.
type Session interface {
	ChannelMessageSendEmbeds(channelID string, embeds []*discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ThreadStart(channelID, name string, typ discordgo.ChannelType, archiveDuration int, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

var _ Session = (*discordgo.Session)(nil)
