package discord

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// HandlerFunc handles one slash command invocation.
type HandlerFunc func(ctx context.Context, s Session, i *discordgo.InteractionCreate)

// Router dispatches slash commands keyed "command" or "command/subcommand".
type Router struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	commands map[string]*discordgo.ApplicationCommand
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]HandlerFunc),
		commands: make(map[string]*discordgo.ApplicationCommand),
	}
}

// RegisterCommand adds a top-level command definition for registration
// with Discord.
func (r *Router) RegisterCommand(cmd *discordgo.ApplicationCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.Name] = cmd
}

// RegisterHandler routes key to handler.
func (r *Router) RegisterHandler(key string, handler HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[key] = handler
}

// ApplicationCommands returns the registered definitions.
func (r *Router) ApplicationCommands() []*discordgo.ApplicationCommand {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmds := make([]*discordgo.ApplicationCommand, 0, len(r.commands))
	for _, c := range r.commands {
		cmds = append(cmds, c)
	}
	return cmds
}

// Handle dispatches an interaction. Only slash commands are routed.
func (r *Router) Handle(ctx context.Context, s Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		slog.Debug("Ignoring interaction", "type", i.Type)
		return
	}

	key := interactionKey(i.ApplicationCommandData())
	r.mu.RLock()
	handler, ok := r.handlers[key]
	r.mu.RUnlock()

	if !ok {
		slog.Warn("Unknown command", "key", key)
		RespondEphemeral(s, i, "Unknown command.")
		return
	}
	handler(ctx, s, i)
}

func interactionKey(data discordgo.ApplicationCommandInteractionData) string {
	key := data.Name
	if len(data.Options) > 0 && data.Options[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		key += "/" + data.Options[0].Name
	}
	return key
}

// subOptions returns the options of the invoked subcommand by name.
func subOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	data := i.ApplicationCommandData()
	opts := data.Options
	if len(opts) > 0 && opts[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		opts = opts[0].Options
	}
	for _, o := range opts {
		out[o.Name] = o
	}
	return out
}
