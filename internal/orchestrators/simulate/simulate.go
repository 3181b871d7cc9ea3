// Package simulate plays whole battles between two saved parties without a
// chat front end, picking moves at random from a seed.
package simulate

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/pokeduel/internal/battle"
	"github.com/KirkDiggler/pokeduel/internal/dex"
	"github.com/KirkDiggler/pokeduel/internal/errors"
	"github.com/KirkDiggler/pokeduel/internal/narration"
	"github.com/KirkDiggler/pokeduel/internal/orchestrators/duel"
	"github.com/KirkDiggler/pokeduel/internal/repositories/userconfig"
)

// DefaultMaxTurns stops battles that stall, such as two walls healing.
const DefaultMaxTurns = 200

// duelID names the single battle a run plays.
const duelID = "simulation"

// Side is one trainer and their party.
type Side struct {
	Participant duel.Participant
	Party       []userconfig.PartyMember
}

// RunInput defines the request for playing a battle
type RunInput struct {
	Sides [2]Side
	// Seed fixes the battle's dice and both sides' choices.
	Seed     uint64
	MaxTurns int
}

// RunOutput defines the result of a battle. WinnerID is empty when the
// battle hit MaxTurns.
type RunOutput struct {
	Turns     int
	Ended     bool
	WinnerID  string
	Narration string
}

// Service plays battles.
//
//go:generate mockgen -destination=mock/mock_service.go -package=simulatemock github.com/KirkDiggler/pokeduel/internal/orchestrators/simulate Service
type Service interface {
	Run(ctx context.Context, input *RunInput) (*RunOutput, error)
}

// Config holds the dependencies for the simulator
type Config struct {
	Dex *dex.Store

	// Optional
	EventBus events.EventBus
	// Sink receives narration as each turn resolves.
	Sink narration.Sink
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Dex == nil {
		vb.RequiredField("Dex")
	}
	return vb.Build()
}

type simulator struct {
	dex  *dex.Store
	bus  events.EventBus
	sink narration.Sink
}

// New creates a simulator.
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &simulator{dex: cfg.Dex, bus: cfg.EventBus, sink: cfg.Sink}, nil
}

// Run plays until one side wins or MaxTurns pass.
func (s *simulator) Run(ctx context.Context, input *RunInput) (*RunOutput, error) {
	if err := validateRunInput(input); err != nil {
		return nil, err
	}
	maxTurns := input.MaxTurns
	if maxTurns == 0 {
		maxTurns = DefaultMaxTurns
	}

	var trainers [2]*battle.Trainer
	for i, side := range input.Sides {
		t, err := duel.BuildTrainer(s.dex, duelID, side.Participant, side.Party)
		if err != nil {
			return nil, err
		}
		trainers[i] = t
	}

	b, err := battle.New(&battle.Config{
		ID:       duelID,
		Trainer1: trainers[0],
		Trainer2: trainers[1],
		Dex:      s.dex,
		Roller:   battle.NewSeededRoller(input.Seed),
		EventBus: s.bus,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create battle")
	}

	var text strings.Builder
	if err := b.Start(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to start battle")
	}
	s.publish(ctx, b, &text)

	// Choices use their own stream so they do not shift the battle's dice.
	chooser := battle.NewSeededRoller(input.Seed + 1)
	for !b.Ended() && b.Turn < maxTurns {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "simulation canceled")
		}

		actions := [2]battle.Action{
			choose(chooser, trainers[0].Current()),
			choose(chooser, trainers[1].Current()),
		}
		if err := b.RunTurn(ctx, actions); err != nil {
			return nil, errors.Wrapf(err, "failed to resolve turn %d", b.Turn+1)
		}
		s.publish(ctx, b, &text)
	}

	out := &RunOutput{Turns: b.Turn, Ended: b.Ended(), Narration: text.String()}
	if w := b.Winner(); w != nil {
		out.WinnerID = w.ID
	}

	slog.Info("Simulation finished",
		"turns", out.Turns,
		"ended", out.Ended,
		"winner_id", out.WinnerID,
	)
	return out, nil
}

func (s *simulator) publish(ctx context.Context, b *battle.Battle, text *strings.Builder) {
	chunk := b.Drain()
	text.WriteString(chunk)
	if s.sink == nil || chunk == "" {
		return
	}
	if err := s.sink.Send(ctx, duelID, chunk); err != nil {
		slog.Warn("Failed to send narration",
			"turn", b.Turn,
			"error", err,
		)
	}
}

// choose picks a random move, staying with a choice item's lock.
func choose(r dice.Roller, p *battle.Pokemon) battle.Action {
	if p.ChoiceMove != nil {
		if i := slices.Index(p.Moves, p.ChoiceMove); i >= 0 {
			return battle.MoveAction(i)
		}
	}
	roll, err := r.Roll(len(p.Moves))
	if err != nil {
		return battle.MoveAction(0)
	}
	return battle.MoveAction(roll - 1)
}

func validateRunInput(input *RunInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	for i, side := range input.Sides {
		errors.ValidateRequired(fmt.Sprintf("Sides[%d].Participant.MemberID", i), side.Participant.MemberID, vb)
	}
	if input.Sides[0].Participant.MemberID != "" && input.Sides[0].Participant.MemberID == input.Sides[1].Participant.MemberID {
		vb.InvalidField("Sides[1].Participant.MemberID", "must differ from Sides[0]")
	}
	if input.MaxTurns < 0 {
		vb.Field("MaxTurns", "cannot be negative")
	}
	return vb.Build()
}
