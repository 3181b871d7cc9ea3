// Package battle implements the rules engine of a two-trainer creature
// battle: field state, statuses, held items and turn resolution.
//
// Every operation that needs field state takes the *Battle explicitly.
// A Battle is not safe for concurrent use; callers serialise access.
package battle

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/pokeduel/internal/dex"
	"github.com/KirkDiggler/pokeduel/internal/errors"
)

// Config holds what a battle needs to run.
type Config struct {
	ID       string
	Trainer1 *Trainer
	Trainer2 *Trainer
	Dex      *dex.Store
	Roller   dice.Roller
	// EventBus is optional; events are dropped when nil.
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("ID", c.ID, vb)
	if c.Trainer1 == nil {
		vb.RequiredField("Trainer1")
	}
	if c.Trainer2 == nil {
		vb.RequiredField("Trainer2")
	}
	if c.Trainer1 != nil && c.Trainer1 == c.Trainer2 {
		vb.InvalidField("Trainer2", "must differ from Trainer1")
	}
	if c.Dex == nil {
		vb.RequiredField("Dex")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Battle is the shared state of one duel.
type Battle struct {
	ID       string
	Trainer1 *Trainer
	Trainer2 *Trainer

	Weather   Weather
	Terrain   Terrain
	TrickRoom ExpiringEffect
	MagicRoom ExpiringEffect

	Turn   int
	Dex    *dex.Store
	roller dice.Roller
	bus    events.EventBus

	msg     strings.Builder
	pending []events.Event

	started bool
	ended   bool
	winner  *Trainer
}

// New creates a battle. Call Start before the first turn.
func New(cfg *Config) (*Battle, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid battle config")
	}

	return &Battle{
		ID:       cfg.ID,
		Trainer1: cfg.Trainer1,
		Trainer2: cfg.Trainer2,
		Dex:      cfg.Dex,
		roller:   cfg.Roller,
		bus:      cfg.EventBus,
	}, nil
}

// GetID implements core.Entity.
func (b *Battle) GetID() string { return b.ID }

// GetType implements core.Entity.
func (b *Battle) GetType() string { return "battle" }

// Trainers returns both sides in order.
func (b *Battle) Trainers() [2]*Trainer {
	return [2]*Trainer{b.Trainer1, b.Trainer2}
}

// Actives returns both active creatures; either may be nil.
func (b *Battle) Actives() [2]*Pokemon {
	return [2]*Pokemon{b.Trainer1.Current(), b.Trainer2.Current()}
}

// OpposingTrainer returns the other side.
func (b *Battle) OpposingTrainer(t *Trainer) *Trainer {
	if t == b.Trainer1 {
		return b.Trainer2
	}
	return b.Trainer1
}

// Opponent returns the creature facing p, or nil.
func (b *Battle) Opponent(p *Pokemon) *Pokemon {
	if p == nil || p.Owner == nil {
		return nil
	}
	return b.OpposingTrainer(p.Owner).Current()
}

// Ended reports whether the battle is over.
func (b *Battle) Ended() bool { return b.ended }

// Winner returns the winning trainer, nil while running or on a draw.
func (b *Battle) Winner() *Trainer { return b.winner }

// Narrate appends text to the narration buffer.
func (b *Battle) Narrate(text string) {
	b.msg.WriteString(text)
}

// Narration returns the buffered text without clearing it.
func (b *Battle) Narration() string {
	return b.msg.String()
}

// Drain returns and clears the buffered narration.
func (b *Battle) Drain() string {
	text := b.msg.String()
	b.msg.Reset()
	return text
}

// randint returns a uniform integer in [lo, hi].
func (b *Battle) randint(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	roll, err := b.roller.Roll(hi - lo + 1)
	if err != nil {
		slog.Warn("Dice roll failed",
			"battle_id", b.ID,
			"error", err,
		)
		return lo
	}
	return lo + roll - 1
}

// chance succeeds with probability percent/100.
func (b *Battle) chance(percent int) bool {
	if percent >= 100 {
		return true
	}
	return b.randint(1, 100) <= percent
}

// Forfeit ends the battle in favour of t's opponent.
func (b *Battle) Forfeit(ctx context.Context, t *Trainer) error {
	if b.ended {
		return errors.FailedPrecondition("battle is already over")
	}
	if t != b.Trainer1 && t != b.Trainer2 {
		return errors.InvalidArgument("trainer is not in this battle")
	}
	b.Narrate(t.Name + " forfeited!\n")
	b.finish(b.OpposingTrainer(t))
	return b.flush(ctx)
}

func (b *Battle) finish(winner *Trainer) {
	b.ended = true
	b.winner = winner
	if winner != nil {
		b.Narrate(winner.Name + " won the battle!\n")
	} else {
		b.Narrate("The battle ended in a draw!\n")
	}
	var target core.Entity
	if winner != nil {
		target = winner
	}
	b.emit(EventBattleEnded, b, target, nil)
}
