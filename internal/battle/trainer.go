package battle

import (
	"github.com/KirkDiggler/pokeduel/internal/errors"
)

// MaxPartySize is the largest party a trainer may bring.
const MaxPartySize = 6

// Trainer is one side of a battle.
type Trainer struct {
	ID   string
	Name string

	Party  []*Pokemon
	active int

	Safeguard ExpiringEffect
	Wish      ExpiringWish

	// MidTurnRemove asks for the active creature to be switched out as soon
	// as the current action resolves.
	MidTurnRemove bool
	// BatonPass is handed to the next creature sent in.
	BatonPass *BatonPass
}

// NewTrainer creates a trainer owning party, with the first member active.
func NewTrainer(id, name string, party []*Pokemon) (*Trainer, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", id, vb)
	errors.ValidateRequired("name", name, vb)
	switch {
	case len(party) == 0:
		vb.Field("party", "is empty")
	case len(party) > MaxPartySize:
		vb.Fieldf("party", "has %d members, at most %d allowed", len(party), MaxPartySize)
	}
	for i, p := range party {
		if p == nil {
			vb.Fieldf("party", "member %d is nil", i)
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	t := &Trainer{ID: id, Name: name, Party: party}
	for _, p := range party {
		p.Owner = t
	}
	return t, nil
}

// GetID implements core.Entity.
func (t *Trainer) GetID() string { return t.ID }

// GetType implements core.Entity.
func (t *Trainer) GetType() string { return "trainer" }

// Current returns the active creature, or nil while waiting on a
// replacement.
func (t *Trainer) Current() *Pokemon {
	if t.active < 0 || t.active >= len(t.Party) {
		return nil
	}
	return t.Party[t.active]
}

// ActiveIndex returns the party index of the active creature, -1 if none.
func (t *Trainer) ActiveIndex() int {
	return t.active
}

// Remaining counts the creatures that can still battle.
func (t *Trainer) Remaining() int {
	n := 0
	for _, p := range t.Party {
		if !p.Fainted() {
			n++
		}
	}
	return n
}

// NextHealthy returns the first healthy party member other than the active
// one, or -1.
func (t *Trainer) NextHealthy() int {
	for i, p := range t.Party {
		if i != t.active && !p.Fainted() {
			return i
		}
	}
	return -1
}

// canSwitchTo validates a switch to party index i.
func (t *Trainer) canSwitchTo(i int) error {
	if i < 0 || i >= len(t.Party) {
		return errors.InvalidArgumentf("party index %d out of range", i)
	}
	if i == t.active {
		return errors.InvalidArgumentf("%s is already in battle", t.Party[i].Name())
	}
	if t.Party[i].Fainted() {
		return errors.InvalidArgumentf("%s has fainted", t.Party[i].Name())
	}
	return nil
}
