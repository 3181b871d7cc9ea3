package discord

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/pokeduel/internal/errors"
	"github.com/KirkDiggler/pokeduel/internal/narration"
	"github.com/KirkDiggler/pokeduel/internal/render"
	"github.com/KirkDiggler/pokeduel/internal/repositories/duels"
)

// Discord message limits
const (
	maxEmbedsPerMessage = 10
	maxEmbedChars       = 6000
	// threadArchiveMinutes archives idle duel threads after a day.
	threadArchiveMinutes = 1440
)

// SinkConfig holds the dependencies for ChannelSink
type SinkConfig struct {
	Session Session
	Duels   duels.Repository
}

// Validate ensures all required dependencies are provided
func (c *SinkConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Session == nil {
		vb.RequiredField("Session")
	}
	if c.Duels == nil {
		vb.RequiredField("Duels")
	}
	return vb.Build()
}

// ChannelSink posts narration to the channel a duel was started in.
type ChannelSink struct {
	session Session
	duels   duels.Repository
}

var _ narration.Sink = (*ChannelSink)(nil)

// NewChannelSink creates a sink posting through session.
func NewChannelSink(cfg *SinkConfig) (*ChannelSink, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &ChannelSink{session: cfg.Session, duels: cfg.Duels}, nil
}

// Send posts text as paginated embeds, several pages per message.
func (c *ChannelSink) Send(ctx context.Context, duelID string, text string) error {
	embeds := render.NarrationEmbeds(text)
	if len(embeds) == 0 {
		return nil
	}

	rec, err := c.duels.Get(ctx, &duels.GetInput{DuelID: duelID})
	if err != nil {
		return errors.Wrapf(err, "failed to find channel of duel %s", duelID)
	}
	if rec.Record.ChannelID == "" {
		slog.Warn("Duel has no channel, dropping narration",
			"duel_id", duelID,
		)
		return nil
	}

	for _, batch := range batchEmbeds(embeds) {
		if _, err := c.session.ChannelMessageSendEmbeds(rec.Record.ChannelID, batch, discordgo.WithContext(ctx)); err != nil {
			return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to post narration")
		}
	}
	return nil
}

// StartThread opens a public thread under channelID.
func (c *ChannelSink) StartThread(ctx context.Context, channelID, name string) (string, error) {
	ch, err := c.session.ThreadStart(channelID, name, discordgo.ChannelTypeGuildPublicThread, threadArchiveMinutes, discordgo.WithContext(ctx))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "failed to start thread")
	}
	return ch.ID, nil
}

// batchEmbeds groups embeds so no message exceeds Discord's embed count or
// total text limits.
func batchEmbeds(embeds []*discordgo.MessageEmbed) [][]*discordgo.MessageEmbed {
	var (
		batches [][]*discordgo.MessageEmbed
		current []*discordgo.MessageEmbed
		chars   int
	)
	for _, e := range embeds {
		n := utf8.RuneCountInString(e.Title) + utf8.RuneCountInString(e.Description)
		if len(current) > 0 && (len(current) == maxEmbedsPerMessage || chars+n > maxEmbedChars) {
			batches = append(batches, current)
			current, chars = nil, 0
		}
		current = append(current, e)
		chars += n
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}
