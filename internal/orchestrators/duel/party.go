package duel

import (
	"fmt"

	"github.com/KirkDiggler/pokeduel/internal/battle"
	"github.com/KirkDiggler/pokeduel/internal/dex"
	"github.com/KirkDiggler/pokeduel/internal/errors"
	"github.com/KirkDiggler/pokeduel/internal/repositories/userconfig"
)

// BuildTrainer materialises a saved party for one side of duelID.
// Creature IDs are "duel:member:slot".
func BuildTrainer(store *dex.Store, duelID string, p Participant, members []userconfig.PartyMember) (*battle.Trainer, error) {
	if len(members) == 0 {
		return nil, errors.FailedPreconditionf("%s has no party", displayName(p))
	}

	party := make([]*battle.Pokemon, 0, len(members))
	for i, m := range members {
		mon, err := battle.NewPokemon(store, &battle.PokemonConfig{
			ID:             fmt.Sprintf("%s:%s:%d", duelID, p.MemberID, i),
			Species:        m.Species,
			Nickname:       m.Nickname,
			Level:          m.Level,
			Ability:        m.Ability,
			Item:           m.Item,
			Moves:          m.Moves,
			DislikedFlavor: m.DislikedFlavor,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "invalid party member %d of %s", i, p.MemberID)
		}
		party = append(party, mon)
	}

	return battle.NewTrainer(p.MemberID, displayName(p), party)
}
