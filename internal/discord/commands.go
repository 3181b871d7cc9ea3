package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/pokeduel/internal/battle"
	"github.com/KirkDiggler/pokeduel/internal/errors"
	"github.com/KirkDiggler/pokeduel/internal/orchestrators/duel"
	"github.com/KirkDiggler/pokeduel/internal/repositories/duels"
	"github.com/KirkDiggler/pokeduel/internal/repositories/userconfig"
)

// CommandsConfig holds the dependencies for the slash commands
type CommandsConfig struct {
	Duel       duel.Service
	Duels      duels.Repository
	UserConfig userconfig.Repository
}

// Validate ensures all required dependencies are provided
func (c *CommandsConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Duel == nil {
		vb.RequiredField("Duel")
	}
	if c.Duels == nil {
		vb.RequiredField("Duels")
	}
	if c.UserConfig == nil {
		vb.RequiredField("UserConfig")
	}
	return vb.Build()
}

// Commands implements /duel, /party and /settings.
type Commands struct {
	duel    duel.Service
	duels   duels.Repository
	configs userconfig.Repository
}

// NewCommands creates the command handlers.
func NewCommands(cfg *CommandsConfig) (*Commands, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Commands{duel: cfg.Duel, duels: cfg.Duels, configs: cfg.UserConfig}, nil
}

// Register adds every command to router.
func (c *Commands) Register(router *Router) {
	for _, def := range Definitions() {
		router.RegisterCommand(def)
	}
	router.RegisterHandler("duel/challenge", c.handleChallenge)
	router.RegisterHandler("duel/move", c.handleMove)
	router.RegisterHandler("duel/switch", c.handleSwitch)
	router.RegisterHandler("duel/forfeit", c.handleForfeit)
	router.RegisterHandler("duel/status", c.handleStatus)
	router.RegisterHandler("party/show", c.handlePartyShow)
	router.RegisterHandler("party/set", c.handlePartySet)
	router.RegisterHandler("settings/threads", c.handleThreads)
}

// Definitions returns the slash command definitions.
func Definitions() []*discordgo.ApplicationCommand {
	slot := func(desc string) []*discordgo.ApplicationCommandOption {
		return []*discordgo.ApplicationCommandOption{{
			Name:        "slot",
			Description: desc,
			Type:        discordgo.ApplicationCommandOptionInteger,
			Required:    true,
			MinValue:    floatPtr(1),
			MaxValue:    6,
		}}
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "duel",
			Description: "Battle another trainer",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "challenge",
					Description: "Start a duel",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{{
						Name:        "opponent",
						Description: "Who to battle",
						Type:        discordgo.ApplicationCommandOptionUser,
						Required:    true,
					}},
				},
				{Name: "move", Description: "Use a move", Type: discordgo.ApplicationCommandOptionSubCommand, Options: slot("Move slot")},
				{Name: "switch", Description: "Switch creatures", Type: discordgo.ApplicationCommandOptionSubCommand, Options: slot("Party slot")},
				{Name: "forfeit", Description: "Give up", Type: discordgo.ApplicationCommandOptionSubCommand},
				{Name: "status", Description: "Show the battlefield", Type: discordgo.ApplicationCommandOptionSubCommand},
			},
		},
		{
			Name:        "party",
			Description: "Manage your party",
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "show", Description: "Show your party", Type: discordgo.ApplicationCommandOptionSubCommand},
				{
					Name:        "set",
					Description: "Replace your party",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{{
						Name:        "team",
						Description: "nickname=species@item:move,move; ...",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
					}},
				},
			},
		},
		{
			Name:        "settings",
			Description: "Server settings",
			Options: []*discordgo.ApplicationCommandOption{{
				Name:        "threads",
				Description: "Run duels in threads",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{{
					Name:        "enabled",
					Description: "Whether new duels open a thread",
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Required:    true,
				}},
			}},
		},
	}
}

func (c *Commands) handleChallenge(ctx context.Context, s Session, i *discordgo.InteractionCreate) {
	challenger := invoker(i)
	opt, ok := subOptions(i)["opponent"]
	if challenger == nil || !ok {
		RespondEphemeral(s, i, "Pick someone to battle.")
		return
	}
	opponent := opt.UserValue(nil)
	name := opponent.ID
	if resolved := i.ApplicationCommandData().Resolved; resolved != nil {
		if u, ok := resolved.Users[opponent.ID]; ok {
			name = u.Username
		}
	}

	out, err := c.duel.StartDuel(ctx, &duel.StartDuelInput{
		GuildID:    i.GuildID,
		ChannelID:  i.ChannelID,
		Challenger: duel.Participant{MemberID: challenger.ID, Name: challenger.Username},
		Opponent:   duel.Participant{MemberID: opponent.ID, Name: name},
	})
	if err != nil {
		RespondError(s, i, err)
		return
	}

	msg := fmt.Sprintf("%s challenged %s! Choose with `/duel move` or `/duel switch`.", challenger.Username, name)
	if out.ChannelID != "" && out.ChannelID != i.ChannelID {
		msg += fmt.Sprintf(" The battle continues in <#%s>.", out.ChannelID)
	}
	RespondPublic(s, i, msg)
}

func (c *Commands) handleMove(ctx context.Context, s Session, i *discordgo.InteractionCreate) {
	c.submit(ctx, s, i, battle.MoveAction)
}

func (c *Commands) handleSwitch(ctx context.Context, s Session, i *discordgo.InteractionCreate) {
	c.submit(ctx, s, i, battle.SwitchAction)
}

func (c *Commands) submit(ctx context.Context, s Session, i *discordgo.InteractionCreate, action func(int) battle.Action) {
	member := invoker(i)
	opt, ok := subOptions(i)["slot"]
	if member == nil || !ok {
		RespondEphemeral(s, i, "Pick a slot.")
		return
	}

	duelID, err := c.activeDuel(ctx, member.ID)
	if err != nil {
		RespondError(s, i, err)
		return
	}

	// Slots are shown to players starting at 1.
	out, err := c.duel.SubmitAction(ctx, &duel.SubmitActionInput{
		DuelID:   duelID,
		MemberID: member.ID,
		Action:   action(int(opt.IntValue()) - 1),
	})
	if err != nil {
		RespondError(s, i, err)
		return
	}

	switch {
	case out.Ended:
		RespondEphemeral(s, i, "The battle is over!")
	case out.Resolved:
		RespondEphemeral(s, i, fmt.Sprintf("Turn %d resolved.", out.Turn))
	default:
		RespondEphemeral(s, i, "Choice locked in. Waiting for your opponent.")
	}
}

func (c *Commands) handleForfeit(ctx context.Context, s Session, i *discordgo.InteractionCreate) {
	member := invoker(i)
	if member == nil {
		RespondEphemeral(s, i, errUnknownInvoker)
		return
	}
	duelID, err := c.activeDuel(ctx, member.ID)
	if err != nil {
		RespondError(s, i, err)
		return
	}
	if _, err := c.duel.Forfeit(ctx, &duel.ForfeitInput{DuelID: duelID, MemberID: member.ID}); err != nil {
		RespondError(s, i, err)
		return
	}
	RespondPublic(s, i, fmt.Sprintf("%s forfeited.", member.Username))
}

func (c *Commands) handleStatus(ctx context.Context, s Session, i *discordgo.InteractionCreate) {
	member := invoker(i)
	if member == nil {
		RespondEphemeral(s, i, errUnknownInvoker)
		return
	}
	duelID, err := c.activeDuel(ctx, member.ID)
	if err != nil {
		RespondError(s, i, err)
		return
	}
	out, err := c.duel.GetDuel(ctx, &duel.GetDuelInput{DuelID: duelID})
	if err != nil {
		RespondError(s, i, err)
		return
	}
	if out.Embed == nil {
		RespondEphemeral(s, i, "That duel is over.")
		return
	}
	RespondEmbed(s, i, out.Embed)
}

func (c *Commands) handlePartyShow(ctx context.Context, s Session, i *discordgo.InteractionCreate) {
	member := invoker(i)
	if member == nil {
		RespondEphemeral(s, i, errUnknownInvoker)
		return
	}
	out, err := c.configs.GetMember(ctx, &userconfig.GetMemberInput{MemberID: member.ID})
	if err != nil {
		RespondError(s, i, err)
		return
	}
	RespondEphemeral(s, i, FormatParty(out.Member.Party))
}

func (c *Commands) handlePartySet(ctx context.Context, s Session, i *discordgo.InteractionCreate) {
	member := invoker(i)
	opt, ok := subOptions(i)["team"]
	if member == nil || !ok {
		RespondEphemeral(s, i, "Describe your team.")
		return
	}
	party, err := ParseParty(opt.StringValue())
	if err != nil {
		RespondError(s, i, err)
		return
	}
	out, err := c.configs.SetParty(ctx, &userconfig.SetPartyInput{MemberID: member.ID, Party: party})
	if err != nil {
		RespondError(s, i, err)
		return
	}
	RespondEphemeral(s, i, "Party saved.\n"+FormatParty(out.Member.Party))
}

func (c *Commands) handleThreads(ctx context.Context, s Session, i *discordgo.InteractionCreate) {
	opt, ok := subOptions(i)["enabled"]
	if i.GuildID == "" || !ok {
		RespondEphemeral(s, i, "Threads can only be set in a server.")
		return
	}
	out, err := c.configs.SetUseThreads(ctx, &userconfig.SetUseThreadsInput{
		GuildID:    i.GuildID,
		UseThreads: opt.BoolValue(),
	})
	if err != nil {
		RespondError(s, i, err)
		return
	}
	if out.Guild.UseThreads {
		RespondEphemeral(s, i, "New duels will open a thread.")
	} else {
		RespondEphemeral(s, i, "New duels will stay in the channel.")
	}
}

func (c *Commands) activeDuel(ctx context.Context, memberID string) (string, error) {
	out, err := c.duels.FindActive(ctx, &duels.FindActiveInput{MemberID: memberID})
	if err != nil {
		if errors.IsNotFound(err) {
			return "", errors.FailedPrecondition("You are not in a duel.")
		}
		return "", err
	}
	return out.Record.ID, nil
}

// invoker returns the user behind an interaction in a guild or a DM.
func invoker(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

const errUnknownInvoker = "Could not tell who you are."

func floatPtr(f float64) *float64 { return &f }
