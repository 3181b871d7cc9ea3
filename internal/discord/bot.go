package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/pokeduel/internal/errors"
)

// BotConfig holds what the gateway connection needs.
type BotConfig struct {
	Token string
	// GuildID registers commands in one guild only; empty means global.
	GuildID string
}

// Validate ensures all required values are provided
func (c *BotConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Token", c.Token, vb)
	return vb.Build()
}

// Bot owns the gateway session and routes interactions to the router.
type Bot struct {
	session *discordgo.Session
	router  *Router
	guildID string
}

// NewBot creates the session. Call Open before Run.
func NewBot(cfg *BotConfig, router *Router) (*Bot, error) {
	if cfg == nil || router == nil {
		return nil, errors.InvalidArgument("config and router are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create discord session")
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	return &Bot{session: session, router: router, guildID: cfg.GuildID}, nil
}

// Session returns the underlying session for sinks and thread starters.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// Open connects to the gateway.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to open discord session")
	}
	return nil
}

// Run registers the slash commands and serves interactions until ctx is
// done.
func (b *Bot) Run(ctx context.Context) error {
	remove := b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.router.Handle(ctx, s, i)
	})
	defer remove()

	appID := b.session.State.User.ID
	registered, err := b.session.ApplicationCommandBulkOverwrite(appID, b.guildID, b.router.ApplicationCommands())
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to register commands")
	}
	slog.Info("Discord commands registered", "count", len(registered))

	<-ctx.Done()
	return nil
}

// Close disconnects from the gateway.
func (b *Bot) Close() error {
	if err := b.session.Close(); err != nil {
		return errors.Wrap(err, "failed to close discord session")
	}
	return nil
}
