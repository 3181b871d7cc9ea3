// Package duel runs many battles side by side: it builds parties from the
// party store, collects each side's action and resolves turns.
package duel

//go:generate mockgen -destination=mock/mock_service.go -package=duelmock github.com/KirkDiggler/pokeduel/internal/orchestrators/duel Service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/pokeduel/internal/battle"
	"github.com/KirkDiggler/pokeduel/internal/dex"
	"github.com/KirkDiggler/pokeduel/internal/errors"
	"github.com/KirkDiggler/pokeduel/internal/narration"
	"github.com/KirkDiggler/pokeduel/internal/pkg/idgen"
	"github.com/KirkDiggler/pokeduel/internal/render"
	"github.com/KirkDiggler/pokeduel/internal/repositories/duels"
	"github.com/KirkDiggler/pokeduel/internal/repositories/userconfig"
)

// Service defines the interface for duel operations
type Service interface {
	// StartDuel builds both parties and sends out the leads
	StartDuel(ctx context.Context, input *StartDuelInput) (*StartDuelOutput, error)

	// SubmitAction records a side's choice and resolves the turn once both are in
	SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error)

	// GetDuel returns the stored record and, while live, the battle summary
	GetDuel(ctx context.Context, input *GetDuelInput) (*GetDuelOutput, error)

	// Forfeit ends a duel in favour of the other side
	Forfeit(ctx context.Context, input *ForfeitInput) (*ForfeitOutput, error)
}

// ThreadStarter opens a thread under a channel for a duel's narration.
type ThreadStarter interface {
	StartThread(ctx context.Context, channelID, name string) (string, error)
}

// Config holds the dependencies for the duel orchestrator
type Config struct {
	IDGenerator idgen.Generator
	UserConfig  userconfig.Repository
	Duels       duels.Repository
	Dex         *dex.Store
	Sink        narration.Sink

	// Optional
	EventBus events.EventBus
	Threads  ThreadStarter
	Roller   dice.Roller
	Sprites  render.SpriteIndex
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.UserConfig == nil {
		vb.RequiredField("UserConfig")
	}
	if c.Duels == nil {
		vb.RequiredField("Duels")
	}
	if c.Dex == nil {
		vb.RequiredField("Dex")
	}
	if c.Sink == nil {
		vb.RequiredField("Sink")
	}

	return vb.Build()
}

type orchestrator struct {
	idGen   idgen.Generator
	configs userconfig.Repository
	duels   duels.Repository
	dex     *dex.Store
	sink    narration.Sink
	bus     events.EventBus
	threads ThreadStarter
	roller  dice.Roller
	sprites render.SpriteIndex

	mu   sync.RWMutex
	live map[string]*liveDuel
}

// liveDuel is one running battle. Its mutex serialises every operation on
// the battle. The registry lock may be taken while holding it, never the
// other way round.
type liveDuel struct {
	mu        sync.Mutex
	battle    *battle.Battle
	memberIDs [2]string
	pending   [2]*battle.Action
}

func (d *liveDuel) side(memberID string) (int, bool) {
	for i, id := range d.memberIDs {
		if id == memberID {
			return i, true
		}
	}
	return 0, false
}

// NewOrchestrator creates a new duel orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.DefaultRoller
	}

	return &orchestrator{
		idGen:   cfg.IDGenerator,
		configs: cfg.UserConfig,
		duels:   cfg.Duels,
		dex:     cfg.Dex,
		sink:    cfg.Sink,
		bus:     cfg.EventBus,
		threads: cfg.Threads,
		roller:  roller,
		sprites: cfg.Sprites,
		live:    make(map[string]*liveDuel),
	}, nil
}

// StartDuel builds both parties and sends out the leads
func (o *orchestrator) StartDuel(ctx context.Context, input *StartDuelInput) (*StartDuelOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Challenger.MemberID", input.Challenger.MemberID, vb)
	errors.ValidateRequired("Opponent.MemberID", input.Opponent.MemberID, vb)
	if input.Challenger.MemberID != "" && input.Challenger.MemberID == input.Opponent.MemberID {
		vb.InvalidField("Opponent", "cannot duel yourself")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	participants := [2]Participant{input.Challenger, input.Opponent}
	for _, p := range participants {
		_, err := o.duels.FindActive(ctx, &duels.FindActiveInput{MemberID: p.MemberID})
		if err == nil {
			return nil, errors.FailedPreconditionf("%s is already in a duel", displayName(p))
		}
		if !errors.IsNotFound(err) {
			return nil, errors.Wrapf(err, "failed to check duels of %s", p.MemberID)
		}
	}

	duelID := o.idGen.Generate()

	var trainers [2]*battle.Trainer
	for i, p := range participants {
		t, err := o.buildTrainer(ctx, duelID, p)
		if err != nil {
			return nil, err
		}
		trainers[i] = t
	}

	roller := o.roller
	if input.Seed != nil {
		roller = battle.NewSeededRoller(*input.Seed)
	}

	b, err := battle.New(&battle.Config{
		ID:       duelID,
		Trainer1: trainers[0],
		Trainer2: trainers[1],
		Dex:      o.dex,
		Roller:   roller,
		EventBus: o.bus,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create battle")
	}

	channelID := o.narrationChannel(ctx, input, participants)

	_, err = o.duels.Create(ctx, &duels.CreateInput{Record: &duels.Record{
		ID:        duelID,
		GuildID:   input.GuildID,
		ChannelID: channelID,
		MemberIDs: [2]string{input.Challenger.MemberID, input.Opponent.MemberID},
	}})
	if errors.IsFailedPrecondition(err) {
		// Lost a race with another challenge that claimed a member first.
		memberID, _ := errors.GetMeta(err)[duels.MetaMemberID].(string)
		for _, p := range participants {
			if p.MemberID == memberID {
				return nil, errors.FailedPreconditionf("%s is already in a duel", displayName(p))
			}
		}
		return nil, err
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to store duel")
	}

	d := &liveDuel{
		battle:    b,
		memberIDs: [2]string{input.Challenger.MemberID, input.Opponent.MemberID},
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	o.mu.Lock()
	o.live[duelID] = d
	o.mu.Unlock()

	if err := b.Start(ctx); err != nil {
		o.forget(duelID)
		if _, delErr := o.duels.Delete(ctx, &duels.DeleteInput{DuelID: duelID}); delErr != nil {
			slog.Warn("Failed to remove unstarted duel",
				"duel_id", duelID,
				"error", delErr,
			)
		}
		return nil, errors.Wrap(err, "failed to start battle")
	}

	slog.Info("Duel started",
		"duel_id", duelID,
		"guild_id", input.GuildID,
		"challenger", input.Challenger.MemberID,
		"opponent", input.Opponent.MemberID,
	)

	return &StartDuelOutput{
		DuelID:    duelID,
		ChannelID: channelID,
		Narration: o.publish(ctx, b),
	}, nil
}

// SubmitAction records a side's choice and resolves the turn once both are in
func (o *orchestrator) SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	d, err := o.lookup(input.DuelID)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.battle.Ended() {
		return nil, errors.FailedPrecondition("duel is already over")
	}
	side, ok := d.side(input.MemberID)
	if !ok {
		return nil, errors.PermissionDeniedf("%s is not in duel %s", input.MemberID, input.DuelID)
	}
	if d.pending[side] != nil {
		return nil, errors.FailedPrecondition("action already submitted this turn")
	}

	action := input.Action
	d.pending[side] = &action
	if d.pending[0] == nil || d.pending[1] == nil {
		return &SubmitActionOutput{Turn: d.battle.Turn}, nil
	}

	actions := [2]battle.Action{*d.pending[0], *d.pending[1]}
	d.pending = [2]*battle.Action{}

	if err := d.battle.RunTurn(ctx, actions); err != nil {
		// Rejected choices leave the battle untouched; both sides choose again.
		return nil, errors.Wrapf(err, "failed to resolve turn of duel %s", input.DuelID)
	}

	out := &SubmitActionOutput{
		Resolved:  true,
		Turn:      d.battle.Turn,
		Narration: o.publish(ctx, d.battle),
	}

	status := duels.StatusActive
	if d.battle.Ended() {
		status = duels.StatusFinished
		out.Ended = true
		out.WinnerID = winnerID(d.battle)
		o.forget(input.DuelID)
		slog.Info("Duel finished",
			"duel_id", input.DuelID,
			"turn", d.battle.Turn,
			"winner", out.WinnerID,
		)
	}

	_, err = o.duels.Update(ctx, &duels.UpdateInput{
		DuelID:   input.DuelID,
		Turn:     d.battle.Turn,
		Status:   status,
		WinnerID: out.WinnerID,
	})
	if err != nil {
		slog.Error("Failed to record duel progress",
			"duel_id", input.DuelID,
			"error", err,
		)
	}

	return out, nil
}

// GetDuel returns the stored record and, while live, the battle summary
func (o *orchestrator) GetDuel(ctx context.Context, input *GetDuelInput) (*GetDuelOutput, error) {
	if input == nil || input.DuelID == "" {
		return nil, errors.InvalidArgument("duel ID is required")
	}

	rec, err := o.duels.Get(ctx, &duels.GetInput{DuelID: input.DuelID})
	if err != nil {
		return nil, err
	}
	out := &GetDuelOutput{Record: rec.Record}

	o.mu.RLock()
	d, ok := o.live[input.DuelID]
	o.mu.RUnlock()
	if !ok {
		return out, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	out.Summary = render.Summary(d.battle)
	out.Embed = render.Embed(d.battle, o.sprites)
	for i, id := range d.memberIDs {
		if d.pending[i] == nil && !d.battle.Ended() {
			out.Waiting = append(out.Waiting, id)
		}
	}
	return out, nil
}

// Forfeit ends a duel in favour of the other side
func (o *orchestrator) Forfeit(ctx context.Context, input *ForfeitInput) (*ForfeitOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	d, err := o.lookup(input.DuelID)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	side, ok := d.side(input.MemberID)
	if !ok {
		return nil, errors.PermissionDeniedf("%s is not in duel %s", input.MemberID, input.DuelID)
	}
	if err := d.battle.Forfeit(ctx, d.battle.Trainers()[side]); err != nil {
		return nil, errors.Wrapf(err, "failed to forfeit duel %s", input.DuelID)
	}
	o.forget(input.DuelID)

	out := &ForfeitOutput{
		WinnerID:  winnerID(d.battle),
		Narration: o.publish(ctx, d.battle),
	}

	_, err = o.duels.Update(ctx, &duels.UpdateInput{
		DuelID:   input.DuelID,
		Turn:     d.battle.Turn,
		Status:   duels.StatusForfeited,
		WinnerID: out.WinnerID,
	})
	if err != nil {
		slog.Error("Failed to record forfeit",
			"duel_id", input.DuelID,
			"error", err,
		)
	}

	slog.Info("Duel forfeited",
		"duel_id", input.DuelID,
		"member_id", input.MemberID,
	)
	return out, nil
}

func (o *orchestrator) lookup(duelID string) (*liveDuel, error) {
	if duelID == "" {
		return nil, errors.InvalidArgument("duel ID is required")
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	d, ok := o.live[duelID]
	if !ok {
		return nil, errors.NotFoundf("duel %s is not running", duelID)
	}
	return d, nil
}

func (o *orchestrator) forget(duelID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.live, duelID)
}

// buildTrainer loads and materialises a member's saved party.
func (o *orchestrator) buildTrainer(ctx context.Context, duelID string, p Participant) (*battle.Trainer, error) {
	member, err := o.configs.GetMember(ctx, &userconfig.GetMemberInput{MemberID: p.MemberID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load party of %s", p.MemberID)
	}
	return BuildTrainer(o.dex, duelID, p, member.Member.Party)
}

// narrationChannel returns the channel to narrate in, opening a thread
// when the guild asks for one. Failures fall back to the channel itself.
func (o *orchestrator) narrationChannel(ctx context.Context, input *StartDuelInput, participants [2]Participant) string {
	if o.threads == nil || input.GuildID == "" || input.ChannelID == "" {
		return input.ChannelID
	}

	guild, err := o.configs.GetGuild(ctx, &userconfig.GetGuildInput{GuildID: input.GuildID})
	if err != nil {
		slog.Warn("Failed to load guild settings",
			"guild_id", input.GuildID,
			"error", err,
		)
		return input.ChannelID
	}
	if !guild.Guild.UseThreads {
		return input.ChannelID
	}

	name := fmt.Sprintf("%s vs %s", displayName(participants[0]), displayName(participants[1]))
	threadID, err := o.threads.StartThread(ctx, input.ChannelID, name)
	if err != nil {
		slog.Warn("Failed to start duel thread",
			"guild_id", input.GuildID,
			"channel_id", input.ChannelID,
			"error", err,
		)
		return input.ChannelID
	}
	return threadID
}

// publish drains the battle's narration into the sink and returns it.
func (o *orchestrator) publish(ctx context.Context, b *battle.Battle) string {
	text := b.Drain()
	if text == "" {
		return ""
	}
	if err := o.sink.Send(ctx, b.ID, text); err != nil {
		slog.Warn("Failed to send narration",
			"duel_id", b.ID,
			"error", err,
		)
	}
	return text
}

func winnerID(b *battle.Battle) string {
	if w := b.Winner(); w != nil {
		return w.ID
	}
	return ""
}

func displayName(p Participant) string {
	if p.Name != "" {
		return p.Name
	}
	return p.MemberID
}
