package battle

import (
	"strings"

	"github.com/KirkDiggler/pokeduel/internal/dex"
	"github.com/KirkDiggler/pokeduel/internal/errors"
)

// unremovable items can never be taken, swapped or suppressed.
var unremovable = map[string]bool{
	// plates
	"draco-plate": true, "dread-plate": true, "earth-plate": true, "fist-plate": true,
	"flame-plate": true, "icicle-plate": true, "insect-plate": true, "iron-plate": true,
	"meadow-plate": true, "mind-plate": true, "pixie-plate": true, "sky-plate": true,
	"splash-plate": true, "spooky-plate": true, "stone-plate": true, "toxic-plate": true,
	"zap-plate": true,
	// memories
	"dragon-memory": true, "dark-memory": true, "ground-memory": true, "fighting-memory": true,
	"fire-memory": true, "ice-memory": true, "bug-memory": true, "steel-memory": true,
	"grass-memory": true, "psychic-memory": true, "fairy-memory": true, "flying-memory": true,
	"water-memory": true, "ghost-memory": true, "rock-memory": true, "poison-memory": true,
	"electric-memory": true,
	// orbs and relics
	"primal-orb": true, "griseous-orb": true, "blue-orb": true, "red-orb": true,
	"rusty-sword": true, "rusty-shield": true,
	// mega stones
	"mega-stone": true, "mega-stone-x": true, "mega-stone-y": true,
}

// HeldItem is a creature's item slot.
type HeldItem struct {
	item  *dex.Item
	owner *Pokemon

	// LastUsed is the most recently consumed item, for Recycle.
	LastUsed    *dex.Item
	EverHadItem bool
}

// NewHeldItem creates the slot for owner, optionally holding item.
func NewHeldItem(item *dex.Item, owner *Pokemon) *HeldItem {
	return &HeldItem{
		item:        item,
		owner:       owner,
		EverHadItem: item != nil,
	}
}

// Item returns the held item record regardless of suppression, or nil.
func (h *HeldItem) Item() *dex.Item {
	return h.item
}

// Name returns the held item identifier regardless of suppression.
func (h *HeldItem) Name() string {
	if h.item == nil {
		return ""
	}
	return h.item.Identifier
}

// HasItem reports whether anything is held, suppressed or not.
func (h *HeldItem) HasItem() bool {
	return h.item != nil
}

// Get returns the effective item identifier, or "" when nothing is held or
// the item is suppressed. Unremovable items are never suppressed.
func (h *HeldItem) Get(b *Battle) string {
	if h.item == nil {
		return ""
	}
	if !h.CanRemove() {
		return h.item.Identifier
	}
	if h.owner.Embargo.Active() {
		return ""
	}
	if b != nil && b.MagicRoom.Active() {
		return ""
	}
	if h.owner.Ability() == AbilityKlutz {
		return ""
	}
	if h.owner.CorrosiveGas {
		return ""
	}
	return h.item.Identifier
}

// Is reports whether the effective item is name.
func (h *HeldItem) Is(b *Battle, name string) bool {
	return name != "" && h.Get(b) == name
}

// CanRemove reports whether the held item may be taken from the slot.
func (h *HeldItem) CanRemove() bool {
	return !unremovable[h.Name()]
}

// IsBerry reports whether an active, usable berry is held.
func (h *HeldItem) IsBerry(b *Battle) bool {
	return strings.HasSuffix(h.Get(b), "-berry")
}

func (h *HeldItem) removable() error {
	if !h.CanRemove() {
		return errors.FailedPreconditionf("%s cannot be removed", h.Name()).
			WithMeta("pokemon", h.owner.Name())
	}
	return nil
}

// Remove clears the slot.
func (h *HeldItem) Remove() error {
	if err := h.removable(); err != nil {
		return err
	}
	h.item = nil
	return nil
}

// Use consumes the item, remembering it for Recycle.
func (h *HeldItem) Use() error {
	if err := h.removable(); err != nil {
		return err
	}
	h.LastUsed = h.item
	h.owner.ChoiceMove = nil
	h.item = nil
	return nil
}

// Transfer moves this item into other and clears this slot.
func (h *HeldItem) Transfer(other *HeldItem) error {
	if err := h.removable(); err != nil {
		return err
	}
	if err := other.removable(); err != nil {
		return err
	}
	other.item = h.item
	other.EverHadItem = other.EverHadItem || other.item != nil
	h.item = nil
	return nil
}

// Swap exchanges the items of both slots.
func (h *HeldItem) Swap(other *HeldItem) error {
	if err := h.removable(); err != nil {
		return err
	}
	if err := other.removable(); err != nil {
		return err
	}
	h.item, other.item = other.item, h.item
	h.owner.ChoiceMove = nil
	other.owner.ChoiceMove = nil
	h.EverHadItem = h.EverHadItem || h.item != nil
	other.EverHadItem = other.EverHadItem || other.item != nil
	return nil
}

// Recover claims other's last used item.
func (h *HeldItem) Recover(other *HeldItem) {
	h.item = other.LastUsed
	other.LastUsed = nil
	h.EverHadItem = h.EverHadItem || h.item != nil
}

// consume uses the item inside a trigger and reports it on the event bus.
// Triggers only fire for effective items, which are always removable.
func (h *HeldItem) consume(b *Battle) {
	name := h.Name()
	if err := h.Use(); err != nil {
		return
	}
	b.emit(EventItemConsumed, h.owner, nil, map[string]any{KeyItem: name})
}

// Metronome tracks consecutive uses of the same move for the metronome item.
type Metronome struct {
	move  string
	count int
}

// Reset clears the streak after a failed move or a non-move action.
func (m *Metronome) Reset() {
	m.move = ""
	m.count = 0
}

// Use records a use of move.
func (m *Metronome) Use(move string) {
	if m.move == move {
		m.count++
		return
	}
	m.move = move
	m.count = 1
}

// Buff returns the damage multiplier for move: +20% per consecutive use,
// capped at double.
func (m *Metronome) Buff(move string) float64 {
	if m.move != move {
		return 1
	}
	return min(2, 1+0.2*float64(m.count))
}
